// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConversionEvent records one successful conversion.
type ConversionEvent struct {
	// Timestamp is when the conversion completed.
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`

	// Filename is the converted file's name, or nil when the workflow
	// did not supply one. A pointer so a missing name round-trips as
	// JSON null in the usage file.
	Filename *string `json:"filename" yaml:"filename"`
}

// UsageSummary is a point-in-time view of today's quota consumption.
type UsageSummary struct {
	Date           string  `json:"date" yaml:"date"`
	Count          int     `json:"count" yaml:"count"`
	Limit          int     `json:"limit" yaml:"limit"`
	Remaining      int     `json:"remaining" yaml:"remaining"`
	PercentageUsed float64 `json:"percentage_used" yaml:"percentage_used"`
}

// TrackerConfig holds settings for the usage tracker.
type TrackerConfig struct {
	// StateDir is the per-user state directory (default ~/.adobe-helper).
	StateDir string `json:"state_dir" yaml:"state_dir"`

	// DailyLimit is the maximum free conversions per day (default 2).
	DailyLimit int `json:"daily_limit" yaml:"daily_limit"`
}

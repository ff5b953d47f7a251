// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package usage tracks free-tier conversion usage with a daily reset.
//
// The tracker persists a date-scoped record to a per-user JSON file and
// re-reads it at the start of every operation, so separate processes see
// reasonably fresh state. Day rollover, a missing file, and a corrupt
// file all yield an empty record for the current day: losing a day's
// count is low-stakes, so the tracker favors availability and never
// surfaces a load or save error to the caller.
package usage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/pdiddy/adobe-helper/internal/endpoints"
	"github.com/pdiddy/adobe-helper/internal/logger"
	"github.com/pdiddy/adobe-helper/pkg/types"
)

const (
	usageFilename = "usage.json"
	lockFilename  = "usage.json.lock"
	dateLayout    = "2006-01-02"
)

// DefaultDailyLimit is the number of free conversions the service's
// free tier allows per calendar day.
const DefaultDailyLimit = 2

// record is the on-disk usage document.
type record struct {
	Date        string                  `json:"date"`
	Count       int                     `json:"count"`
	Conversions []types.ConversionEvent `json:"conversions"`
}

// Tracker enforces the daily conversion quota.
type Tracker struct {
	file       string
	dailyLimit int
	lock       *flock.Flock
	log        logger.Logger

	rec record
}

// NewTracker creates the state directory if needed and loads today's
// record. StateDir defaults to ~/.adobe-helper and DailyLimit to
// DefaultDailyLimit when unset.
func NewTracker(cfg types.TrackerConfig, log logger.Logger) (*Tracker, error) {
	if log == nil {
		log = logger.Nop()
	}

	dir := cfg.StateDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("locating home directory: %w", err)
		}
		dir = filepath.Join(home, endpoints.DefaultStateDirName)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state directory %s: %w", dir, err)
	}

	limit := cfg.DailyLimit
	if limit <= 0 {
		limit = DefaultDailyLimit
	}

	t := &Tracker{
		file:       filepath.Join(dir, usageFilename),
		dailyLimit: limit,
		lock:       flock.New(filepath.Join(dir, lockFilename)),
		log:        log,
	}
	t.rec = t.load()
	return t, nil
}

// DailyLimit returns the configured daily cap.
func (t *Tracker) DailyLimit() int { return t.dailyLimit }

// CanConvert reports whether another conversion fits in today's quota.
func (t *Tracker) CanConvert() bool {
	var ok bool
	t.withLock(true, func() {
		t.rec = t.load()
		ok = t.rec.Count < t.dailyLimit
	})
	if !ok {
		t.log.Warn("daily conversion limit reached",
			logger.Int("count", t.rec.Count), logger.Int("limit", t.dailyLimit))
	}
	return ok
}

// IncrementUsage records one successful conversion. Every call counts;
// the caller invokes it at most once per conversion. filename may be
// empty when the workflow has no name for the converted file.
func (t *Tracker) IncrementUsage(filename string) {
	t.withLock(false, func() {
		t.rec = t.load()
		event := types.ConversionEvent{Timestamp: time.Now()}
		if filename != "" {
			event.Filename = &filename
		}
		t.rec.Conversions = append(t.rec.Conversions, event)
		t.rec.Count = len(t.rec.Conversions)
		t.persist()
	})

	if remaining := t.remaining(); remaining <= 1 {
		t.log.Warn("approaching daily limit", logger.Int("remaining", remaining))
	} else {
		t.log.Info("conversion tracked",
			logger.Int("count", t.rec.Count), logger.Int("limit", t.dailyLimit))
	}
}

// CurrentCount returns the number of conversions recorded today.
func (t *Tracker) CurrentCount() int {
	var n int
	t.withLock(true, func() {
		t.rec = t.load()
		n = t.rec.Count
	})
	return n
}

// Remaining returns how many free conversions are left today, never negative.
func (t *Tracker) Remaining() int {
	var r int
	t.withLock(true, func() {
		t.rec = t.load()
		r = t.remaining()
	})
	return r
}

// ConversionHistory returns today's conversion events, oldest first.
func (t *Tracker) ConversionHistory() []types.ConversionEvent {
	var events []types.ConversionEvent
	t.withLock(true, func() {
		t.rec = t.load()
		events = append([]types.ConversionEvent(nil), t.rec.Conversions...)
	})
	return events
}

// UsageSummary returns today's usage statistics.
func (t *Tracker) UsageSummary() types.UsageSummary {
	var s types.UsageSummary
	t.withLock(true, func() {
		t.rec = t.load()
		s = types.UsageSummary{
			Date:      t.rec.Date,
			Count:     t.rec.Count,
			Limit:     t.dailyLimit,
			Remaining: t.remaining(),
		}
		if t.dailyLimit > 0 {
			s.PercentageUsed = float64(t.rec.Count) / float64(t.dailyLimit) * 100
		}
	})
	return s
}

// Reset unconditionally replaces today's record with an empty one, for
// manual or administrative use.
func (t *Tracker) Reset() {
	t.withLock(false, func() {
		t.rec = emptyRecord()
		t.persist()
	})
	t.log.Info("usage data reset")
}

func (t *Tracker) remaining() int {
	if r := t.dailyLimit - t.rec.Count; r > 0 {
		return r
	}
	return 0
}

// withLock runs fn while holding the usage file lock: exclusive for
// mutations, shared for queries. A lock failure degrades to running
// unlocked — an occasional lost increment is preferable to blocking the
// conversion workflow.
func (t *Tracker) withLock(shared bool, fn func()) {
	var err error
	if shared {
		err = t.lock.RLock()
	} else {
		err = t.lock.Lock()
	}
	if err != nil {
		t.log.Warn("could not lock usage file", logger.Err(err))
		fn()
		return
	}
	defer func() {
		if uerr := t.lock.Unlock(); uerr != nil {
			t.log.Warn("could not unlock usage file", logger.Err(uerr))
		}
	}()
	fn()
}

// load reads the usage file and applies day rollover. Any failure yields
// a fresh record for today.
func (t *Tracker) load() record {
	rec, err := t.read()
	if err != nil {
		if !os.IsNotExist(err) {
			t.log.Warn("failed to load usage data", logger.Err(err))
		}
		return emptyRecord()
	}

	if rec.Date != today() {
		t.log.Info("new day detected, resetting usage counter",
			logger.String("previous", rec.Date))
		return emptyRecord()
	}

	// The count is derived from the event list so the two cannot
	// diverge, even when the file was edited by hand.
	if rec.Count != len(rec.Conversions) {
		t.log.Debug("usage count out of sync with history, deriving from history",
			logger.Int("count", rec.Count), logger.Int("events", len(rec.Conversions)))
	}
	rec.Count = len(rec.Conversions)
	if rec.Conversions == nil {
		rec.Conversions = []types.ConversionEvent{}
	}
	return rec
}

func (t *Tracker) read() (record, error) {
	data, err := os.ReadFile(t.file)
	if err != nil {
		return record{}, err
	}
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return record{}, fmt.Errorf("parsing %s: %w", t.file, err)
	}
	return rec, nil
}

// persist writes the record to disk. Failures are logged, not returned:
// the in-memory record stays correct for the rest of the process.
func (t *Tracker) persist() {
	data, err := json.MarshalIndent(t.rec, "", "  ")
	if err != nil {
		t.log.Error("failed to encode usage data", logger.Err(err))
		return
	}
	if err := os.WriteFile(t.file, data, 0o644); err != nil {
		t.log.Error("failed to save usage data", logger.Err(err))
		return
	}
	t.log.Debug("usage data saved", logger.Int("count", t.rec.Count))
}

func emptyRecord() record {
	return record{Date: today(), Count: 0, Conversions: []types.ConversionEvent{}}
}

func today() string { return time.Now().Format(dateLayout) }

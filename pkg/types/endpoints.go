// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// EndpointSet maps the four logical conversion endpoints to URLs.
// Every field is non-empty after resolution: built-in defaults fill any
// endpoint a discovery file or environment override does not supply.
type EndpointSet struct {
	// Upload receives the source PDF.
	Upload string `json:"upload" yaml:"upload"`

	// Conversion starts a conversion job for an uploaded file.
	Conversion string `json:"conversion" yaml:"conversion"`

	// Status reports the progress of a conversion job.
	Status string `json:"status" yaml:"status"`

	// Download serves the converted document.
	Download string `json:"download" yaml:"download"`
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package endpoints

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/adobe-helper/internal/logger"
	"github.com/pdiddy/adobe-helper/pkg/types"
)

// Environment variables honored by Resolve. The URL variables override
// single endpoints; EnvEndpointsFile points at a custom discovery file.
const (
	EnvUploadURL     = "ADOBE_HELPER_UPLOAD_URL"
	EnvConversionURL = "ADOBE_HELPER_CONVERSION_URL"
	EnvStatusURL     = "ADOBE_HELPER_STATUS_URL"
	EnvDownloadURL   = "ADOBE_HELPER_DOWNLOAD_URL"
	EnvEndpointsFile = "ADOBE_HELPER_ENDPOINTS_FILE"
)

// DefaultStateDirName is the per-user directory under $HOME that holds
// the discovery file, the usage record, and the conversion journal.
const DefaultStateDirName = ".adobe-helper"

const discoveryFilename = "discovered_endpoints.json"

// endpointNames are the logical endpoint keys, in resolution order. They
// double as the JSON keys of the discovery file.
var endpointNames = []string{"upload", "conversion", "status", "download"}

var envVars = map[string]string{
	"upload":     EnvUploadURL,
	"conversion": EnvConversionURL,
	"status":     EnvStatusURL,
	"download":   EnvDownloadURL,
}

// Defaults returns the built-in endpoint set.
func Defaults() types.EndpointSet {
	return types.EndpointSet{
		Upload:     APIUpload,
		Conversion: APIConvert,
		Status:     APIStatus,
		Download:   APIDownload,
	}
}

// Resolve returns the endpoint set after layering, in increasing
// priority: built-in defaults, the first usable discovery file, and
// environment-variable overrides. It never fails; any I/O or parse
// problem is logged and the affected layer contributes nothing.
func Resolve(explicitPath string, log logger.Logger) types.EndpointSet {
	if log == nil {
		log = logger.Nop()
	}

	set := Defaults()
	apply(&set, loadConfigured(explicitPath, log))
	apply(&set, envOverrides(log))
	return set
}

// apply overwrites only the endpoints present in overrides.
func apply(set *types.EndpointSet, overrides map[string]string) {
	targets := map[string]*string{
		"upload":     &set.Upload,
		"conversion": &set.Conversion,
		"status":     &set.Status,
		"download":   &set.Download,
	}
	for name, dst := range targets {
		if v, ok := overrides[name]; ok {
			*dst = v
		}
	}
}

// loadConfigured probes the candidate discovery files in priority order
// and returns the endpoints of the first one that yields any. A file
// that exists but yields nothing does not stop the search.
func loadConfigured(explicitPath string, log logger.Logger) map[string]string {
	for _, candidate := range candidateFiles(explicitPath) {
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		loaded, err := loadDiscoveryFile(candidate)
		if err != nil {
			log.Warn("unusable endpoint discovery file",
				logger.String("path", candidate), logger.Err(err))
			continue
		}
		if len(loaded) > 0 {
			log.Info("loaded API endpoints from discovery file",
				logger.String("path", candidate), logger.Int("endpoints", len(loaded)))
			return loaded
		}
	}
	return nil
}

// candidateFiles returns the discovery file paths to probe, in priority
// order: explicit path, EnvEndpointsFile, the working directory, the
// executable's directory, and the per-user state directory. Duplicates
// are dropped on their absolute form; a path whose absolute form cannot
// be determined is kept under its literal form.
func candidateFiles(explicitPath string) []string {
	var candidates []string

	if explicitPath != "" {
		candidates = append(candidates, expandUser(explicitPath))
	}
	if envPath := os.Getenv(EnvEndpointsFile); envPath != "" {
		candidates = append(candidates, expandUser(envPath))
	}
	candidates = append(candidates, discoveryFilename)
	if exe, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(exe), discoveryFilename))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultStateDirName, discoveryFilename))
	}

	seen := make(map[string]struct{}, len(candidates))
	unique := make([]string, 0, len(candidates))
	for _, c := range candidates {
		key := c
		if abs, err := filepath.Abs(c); err == nil {
			key = abs
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, c)
	}
	return unique
}

// loadDiscoveryFile parses one discovery file. The document must be a
// JSON object with an "endpoints" object; entries that are neither a
// non-empty string nor an object with a non-empty "url" string are
// skipped for that key.
func loadDiscoveryFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var doc struct {
		Endpoints map[string]json.RawMessage `json:"endpoints"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if doc.Endpoints == nil {
		return nil, fmt.Errorf("%s does not contain an %q mapping", path, "endpoints")
	}

	extracted := make(map[string]string)
	for _, name := range endpointNames {
		raw, ok := doc.Endpoints[name]
		if !ok {
			continue
		}
		if url := extractURL(raw); url != "" {
			extracted[name] = url
		}
	}
	return extracted, nil
}

// extractURL accepts either a bare URL string or an object carrying a
// "url" string field; any other shape yields "".
func extractURL(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var obj struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return strings.TrimSpace(obj.URL)
	}
	return ""
}

// envOverrides collects the per-endpoint environment overrides. A
// variable counts only when its trimmed value is non-empty.
func envOverrides(log logger.Logger) map[string]string {
	overrides := make(map[string]string)
	for name, envVar := range envVars {
		if v := strings.TrimSpace(os.Getenv(envVar)); v != "" {
			overrides[name] = v
		}
	}
	if len(overrides) > 0 {
		log.Info("loaded API endpoint overrides from environment",
			logger.Int("endpoints", len(overrides)))
	}
	return overrides
}

func expandUser(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

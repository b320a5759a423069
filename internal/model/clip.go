// Package model defines the core CLIP data types shared across the toolkit.
package model

import (
	"strings"
	"time"
)

// Severity classifies a diagnostic. Only error-severity diagnostics affect
// validity; warnings are advisory.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic is a single formatted validation finding.
type Diagnostic struct {
	Field      string   `json:"field"`
	Message    string   `json:"message"`
	RawValue   any      `json:"rawValue,omitempty"`
	Suggestion string   `json:"suggestion,omitempty"`
	Severity   Severity `json:"severity"`
}

// Statistics summarizes the structural content of a CLIP document.
type Statistics struct {
	Type               string `json:"type"`
	HasLocation        bool   `json:"hasLocation"`
	FeatureCount       int    `json:"featureCount"`
	ActionCount        int    `json:"actionCount"`
	ServiceCount       int    `json:"serviceCount"`
	HasPersona         bool   `json:"hasPersona"`
	EstimatedSizeBytes int    `json:"estimatedSizeBytes"`
	LastUpdated        string `json:"lastUpdated,omitempty"`
	Completeness       int    `json:"completeness"`
}

// ValidationResult is the immutable outcome of validating one document.
// Valid is true iff Diagnostics contains no error-severity entry.
type ValidationResult struct {
	Valid       bool         `json:"valid"`
	Diagnostics []Diagnostic `json:"diagnostics"`
	Warnings    []string     `json:"warnings"`
	Stats       Statistics   `json:"stats"`
}

// Origin records which acquisition source produced a schema record.
type Origin string

const (
	OriginRemote Origin = "remote"
	OriginCache  Origin = "cache"
	OriginLocal  Origin = "local"
)

// SchemaRecord is an acquired schema plus its provenance metadata.
type SchemaRecord struct {
	Schema    map[string]any `json:"schema"`
	Version   string         `json:"version"`
	FetchedAt time.Time      `json:"fetchedAt"`
	Origin    Origin         `json:"origin"`
}

// ValidTypes are the CLIP object types defined by the protocol.
var ValidTypes = map[string]bool{
	"Venue":       true,
	"Device":      true,
	"SoftwareApp": true,
}

// Document is a parsed CLIP object with convenience accessors. Validation
// operates on the raw map; these helpers exist for callers that want typed
// access without re-asserting everywhere.
type Document map[string]any

func (d Document) str(key string) string {
	s, _ := d[key].(string)
	return s
}

// Context returns the @context value.
func (d Document) Context() string { return d.str("@context") }

// Type returns the object type, e.g. "Venue".
func (d Document) Type() string { return d.str("type") }

// ID returns the CLIP identifier.
func (d Document) ID() string { return d.str("id") }

// Name returns the human-readable name.
func (d Document) Name() string { return d.str("name") }

// Description returns the description text.
func (d Document) Description() string { return d.str("description") }

// LastUpdated returns the raw lastUpdated string.
func (d Document) LastUpdated() string { return d.str("lastUpdated") }

// HasLocation reports whether a location section is present.
func (d Document) HasLocation() bool {
	_, ok := d["location"]
	return ok
}

// HasPersona reports whether a persona section is present.
func (d Document) HasPersona() bool {
	_, ok := d["persona"]
	return ok
}

func (d Document) arrayLen(key string) int {
	arr, _ := d[key].([]any)
	return len(arr)
}

// FeatureCount returns the number of entries in the features array.
func (d Document) FeatureCount() int { return d.arrayLen("features") }

// ActionCount returns the number of entries in the actions array.
func (d Document) ActionCount() int { return d.arrayLen("actions") }

// ServiceCount returns the number of entries in the services array.
func (d Document) ServiceCount() int { return d.arrayLen("services") }

// IsCLIPObject reports whether a parsed value plausibly is a CLIP object:
// a CLIP @context, a known type, or a clip: id prefix.
func IsCLIPObject(v any) bool {
	m, ok := v.(map[string]any)
	if !ok {
		return false
	}
	d := Document(m)
	if strings.Contains(d.Context(), "clipprotocol.org") {
		return true
	}
	if ValidTypes[d.Type()] {
		return true
	}
	return strings.HasPrefix(d.ID(), "clip:")
}

// HasCLIPStructure reports whether a parsed value carries the minimal CLIP
// shape: @context, type and id all present, with a CLIP @context value.
func HasCLIPStructure(v any) bool {
	m, ok := v.(map[string]any)
	if !ok {
		return false
	}
	d := Document(m)
	if d.Context() == "" || !strings.Contains(d.Context(), "clipprotocol.org") {
		return false
	}
	_, hasType := m["type"]
	_, hasID := m["id"]
	return hasType && hasID
}

package engine

import (
	json "github.com/goccy/go-json"

	"github.com/clip-organization/clip-toolkit/internal/model"
)

// Stats derives Statistics purely from the input document. Non-object input
// short-circuits to a zero-valued record.
func Stats(doc any) model.Statistics {
	m, ok := asMap(doc)
	if !ok {
		return model.Statistics{Type: "unknown"}
	}
	d := model.Document(m)

	typ := d.Type()
	if typ == "" {
		typ = "unknown"
	}

	size := 0
	if raw, err := json.Marshal(m); err == nil {
		size = len(raw)
	}

	return model.Statistics{
		Type:               typ,
		HasLocation:        d.HasLocation(),
		FeatureCount:       d.FeatureCount(),
		ActionCount:        d.ActionCount(),
		ServiceCount:       d.ServiceCount(),
		HasPersona:         d.HasPersona(),
		EstimatedSizeBytes: size,
		LastUpdated:        d.LastUpdated(),
		Completeness:       completeness(d),
	}
}

// completeness scores populated optional sections on top of a 40-point
// baseline. The baseline is awarded to any object-shaped document, even one
// missing required fields; that historical quirk is deliberate and pinned by
// tests.
func completeness(d model.Document) int {
	score := 40
	if d.HasLocation() {
		score += 15
	}
	if d.FeatureCount() > 0 {
		score += 15
	}
	if d.ActionCount() > 0 {
		score += 10
	}
	if d.HasPersona() {
		score += 10
	}
	if d.ServiceCount() > 0 {
		score += 10
	}
	if score > 100 {
		score = 100
	}
	return score
}

func asMap(doc any) (map[string]any, bool) {
	switch v := doc.(type) {
	case map[string]any:
		return v, v != nil
	case model.Document:
		return v, v != nil
	}
	return nil, false
}

package engine

import (
	"errors"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/clip-organization/clip-toolkit/internal/model"
)

const clipSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"$id": "https://clipprotocol.org/schemas/v1/clip.schema.json",
	"title": "CLIP",
	"type": "object",
	"required": ["@context", "type", "id", "name", "description", "lastUpdated"],
	"properties": {
		"@context": {"type": "string"},
		"type": {"type": "string", "enum": ["Venue", "Device", "SoftwareApp"]},
		"id": {"type": "string"},
		"name": {"type": "string", "minLength": 1},
		"description": {"type": "string"},
		"lastUpdated": {"type": "string", "format": "date-time"},
		"location": {"type": "object"},
		"features": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {"name": {"type": "string"}}
			}
		},
		"actions": {"type": "array"},
		"services": {"type": "array"},
		"persona": {"type": "object"}
	}
}`

func testEngine(t *testing.T) *Engine {
	t.Helper()
	var schema map[string]any
	if err := json.Unmarshal([]byte(clipSchema), &schema); err != nil {
		t.Fatalf("parse schema fixture: %v", err)
	}
	e, err := Compile(schema)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	return e
}

func validDoc() map[string]any {
	return map[string]any{
		"@context":    "https://clipprotocol.org/v1",
		"type":        "Venue",
		"id":          "clip:us:ny:gym:x",
		"name":        "X",
		"description": "test gym",
		"lastUpdated": "2023-01-01T00:00:00Z",
	}
}

func errorCount(res model.ValidationResult) int {
	n := 0
	for _, d := range res.Diagnostics {
		if d.Severity == model.SeverityError {
			n++
		}
	}
	return n
}

func TestValidDocument(t *testing.T) {
	e := testEngine(t)

	res := e.Validate(validDoc())
	if !res.Valid {
		t.Fatalf("expected valid, diagnostics: %+v", res.Diagnostics)
	}
	if errorCount(res) != 0 {
		t.Errorf("expected no error diagnostics, got %+v", res.Diagnostics)
	}
	if res.Stats.Completeness != 40 {
		t.Errorf("expected completeness 40 with no optional sections, got %d", res.Stats.Completeness)
	}
	if res.Stats.Type != "Venue" {
		t.Errorf("expected type Venue, got %q", res.Stats.Type)
	}
	if res.Stats.EstimatedSizeBytes == 0 {
		t.Error("expected non-zero estimated size")
	}
}

func TestMissingNameSuggestion(t *testing.T) {
	e := testEngine(t)

	doc := validDoc()
	delete(doc, "name")

	res := e.Validate(doc)
	if res.Valid {
		t.Fatal("expected invalid")
	}
	if len(res.Diagnostics) != 1 {
		t.Fatalf("expected exactly 1 diagnostic, got %+v", res.Diagnostics)
	}
	d := res.Diagnostics[0]
	if d.Field != "name" {
		t.Errorf("expected field name, got %q", d.Field)
	}
	if !strings.Contains(d.Message, "Missing required field: name") {
		t.Errorf("unexpected message %q", d.Message)
	}
	if d.Suggestion == "" {
		t.Error("expected a non-empty suggestion")
	}
}

func TestEmptyObjectReportsEveryMissingField(t *testing.T) {
	e := testEngine(t)

	res := e.Validate(map[string]any{})
	if res.Valid {
		t.Fatal("expected invalid")
	}
	if len(res.Diagnostics) != 6 {
		t.Fatalf("expected 6 diagnostics (one per required field), got %d: %+v",
			len(res.Diagnostics), res.Diagnostics)
	}
	for _, d := range res.Diagnostics {
		if d.Suggestion == "" {
			t.Errorf("expected a suggestion for %q", d.Field)
		}
	}
}

// The 40-point baseline is awarded to any object-shaped input, even {} with
// every required field missing. Deliberately preserved, not fixed.
func TestEmptyObjectCompletenessBaseline(t *testing.T) {
	e := testEngine(t)

	res := e.Validate(map[string]any{})
	if res.Stats.Completeness != 40 {
		t.Errorf("expected baseline completeness 40 for {}, got %d", res.Stats.Completeness)
	}
}

func TestCompletenessMonotonicWithFeatures(t *testing.T) {
	e := testEngine(t)

	doc := validDoc()
	base := e.Validate(doc).Stats.Completeness

	doc["features"] = []any{map[string]any{"name": "pool"}}
	withFeatures := e.Validate(doc).Stats.Completeness

	if withFeatures != base+15 {
		t.Errorf("expected +15 for non-empty features, got %d -> %d", base, withFeatures)
	}
}

func TestCompletenessCapsAtHundred(t *testing.T) {
	doc := validDoc()
	doc["location"] = map[string]any{"address": "1 Main St"}
	doc["features"] = []any{map[string]any{"name": "pool"}}
	doc["actions"] = []any{map[string]any{"label": "book"}}
	doc["services"] = []any{map[string]any{"type": "booking"}}
	doc["persona"] = map[string]any{"role": "assistant"}

	if got := Stats(doc).Completeness; got != 100 {
		t.Errorf("expected 100, got %d", got)
	}
}

func TestTypeMismatch(t *testing.T) {
	e := testEngine(t)

	doc := validDoc()
	doc["name"] = float64(42)

	res := e.Validate(doc)
	if res.Valid {
		t.Fatal("expected invalid")
	}
	if len(res.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %+v", res.Diagnostics)
	}
	d := res.Diagnostics[0]
	if d.Field != "name" {
		t.Errorf("expected field name, got %q", d.Field)
	}
	if !strings.HasPrefix(d.Message, "Expected string, got ") {
		t.Errorf("unexpected message %q", d.Message)
	}
	if d.Suggestion == "" {
		t.Error("expected a conversion hint")
	}
}

func TestEnumViolation(t *testing.T) {
	e := testEngine(t)

	doc := validDoc()
	doc["type"] = "Restaurant"

	res := e.Validate(doc)
	if res.Valid {
		t.Fatal("expected invalid")
	}
	d := res.Diagnostics[0]
	if d.Field != "type" {
		t.Errorf("expected field type, got %q", d.Field)
	}
	if !strings.HasPrefix(d.Message, "Value must be one of: ") {
		t.Errorf("unexpected message %q", d.Message)
	}
	for _, want := range []string{"Venue", "Device", "SoftwareApp"} {
		if !strings.Contains(d.Message, want) {
			t.Errorf("expected %q in message %q", want, d.Message)
		}
	}
	if d.Suggestion != strings.Replace(d.Message, "Value must be one of: ", "Use one of: ", 1) {
		t.Errorf("expected suggestion to repeat the allowed list, got %q", d.Suggestion)
	}
	if d.RawValue != "Restaurant" {
		t.Errorf("expected raw value Restaurant, got %v", d.RawValue)
	}
}

func TestFormatViolation(t *testing.T) {
	e := testEngine(t)

	doc := validDoc()
	doc["lastUpdated"] = "yesterday"

	res := e.Validate(doc)
	if res.Valid {
		t.Fatal("expected invalid")
	}
	d := res.Diagnostics[0]
	if d.Message != "Invalid date-time format" {
		t.Errorf("unexpected message %q", d.Message)
	}
	if !strings.Contains(d.Suggestion, "ISO 8601") {
		t.Errorf("expected ISO 8601 example, got %q", d.Suggestion)
	}
}

func TestMinLengthViolation(t *testing.T) {
	e := testEngine(t)

	doc := validDoc()
	doc["name"] = ""

	res := e.Validate(doc)
	if res.Valid {
		t.Fatal("expected invalid")
	}
	if got := res.Diagnostics[0].Message; got != "Must be at least 1 characters long" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestNestedPathNormalization(t *testing.T) {
	e := testEngine(t)

	doc := validDoc()
	doc["features"] = []any{map[string]any{"name": float64(7)}}

	res := e.Validate(doc)
	if res.Valid {
		t.Fatal("expected invalid")
	}
	d := res.Diagnostics[0]
	if d.Field != "features[0].name" {
		t.Errorf("expected features[0].name, got %q", d.Field)
	}
}

func TestValidateBatchIndependence(t *testing.T) {
	e := testEngine(t)

	docs := []any{validDoc(), map[string]any{}}
	results := e.ValidateBatch(docs)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	solo0 := e.Validate(docs[0])
	solo1 := e.Validate(docs[1])
	if results[0].Valid != solo0.Valid || results[1].Valid != solo1.Valid {
		t.Error("batch validity differs from individual validation")
	}
	if len(results[1].Diagnostics) != len(solo1.Diagnostics) {
		t.Errorf("batch diagnostics differ: %d vs %d",
			len(results[1].Diagnostics), len(solo1.Diagnostics))
	}
}

func TestStatsNonObjectInput(t *testing.T) {
	for _, doc := range []any{nil, "text", float64(3), []any{"a"}, true} {
		stats := Stats(doc)
		if stats.Type != "unknown" {
			t.Errorf("expected type unknown for %T, got %q", doc, stats.Type)
		}
		if stats.Completeness != 0 {
			t.Errorf("expected completeness 0 for %T, got %d", doc, stats.Completeness)
		}
		if stats.EstimatedSizeBytes != 0 {
			t.Errorf("expected size 0 for %T, got %d", doc, stats.EstimatedSizeBytes)
		}
	}
}

func TestWarningsHeuristics(t *testing.T) {
	doc := map[string]any{
		"type":        "Venue",
		"description": "short",
		"lastUpdated": "2020-01-01T00:00:00Z",
	}
	warnings := Warnings(doc)

	wantFragments := []string{
		"days old",
		"too short",
		"location",
		"features",
		"actions",
	}
	for _, frag := range wantFragments {
		found := false
		for _, w := range warnings {
			if strings.Contains(w, frag) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected a warning mentioning %q, got %v", frag, warnings)
		}
	}
}

func TestWarningsInvalidDate(t *testing.T) {
	warnings := Warnings(map[string]any{"lastUpdated": "not-a-date"})
	found := false
	for _, w := range warnings {
		if strings.Contains(w, "invalid date format") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected invalid-date warning, got %v", warnings)
	}
}

func TestWarningsNeverAffectValidity(t *testing.T) {
	e := testEngine(t)

	doc := validDoc()
	doc["description"] = "x" // triggers the too-short warning
	res := e.Validate(doc)
	if !res.Valid {
		t.Fatalf("warnings must not affect validity: %+v", res.Diagnostics)
	}
	if len(res.Warnings) == 0 {
		t.Error("expected at least one warning")
	}
}

func TestCompileInvalidSchema(t *testing.T) {
	_, err := Compile(map[string]any{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type":    float64(123),
	})
	if !errors.Is(err, ErrInvalidSchema) {
		t.Fatalf("expected ErrInvalidSchema, got %v", err)
	}
}

func TestFieldPath(t *testing.T) {
	cases := []struct {
		tokens []string
		want   string
	}{
		{nil, "root"},
		{[]string{"name"}, "name"},
		{[]string{"features", "0", "name"}, "features[0].name"},
		{[]string{"actions", "12"}, "actions[12]"},
	}
	for _, c := range cases {
		if got := fieldPath(c.tokens); got != c.want {
			t.Errorf("fieldPath(%v) = %q, want %q", c.tokens, got, c.want)
		}
	}
}

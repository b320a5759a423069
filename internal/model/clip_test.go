package model

import "testing"

func venue() Document {
	return Document{
		"@context":    "https://clipprotocol.org/v1",
		"type":        "Venue",
		"id":          "clip:us:ny:gym:x",
		"name":        "X",
		"description": "test gym",
		"features":    []any{map[string]any{"name": "pool"}},
	}
}

func TestDocumentAccessors(t *testing.T) {
	d := venue()

	if d.Type() != "Venue" {
		t.Errorf("expected Venue, got %q", d.Type())
	}
	if d.ID() != "clip:us:ny:gym:x" {
		t.Errorf("unexpected id %q", d.ID())
	}
	if d.FeatureCount() != 1 {
		t.Errorf("expected 1 feature, got %d", d.FeatureCount())
	}
	if d.ActionCount() != 0 {
		t.Errorf("expected 0 actions, got %d", d.ActionCount())
	}
	if d.HasLocation() {
		t.Error("expected no location")
	}
	if d.LastUpdated() != "" {
		t.Errorf("expected empty lastUpdated, got %q", d.LastUpdated())
	}
}

func TestIsCLIPObject(t *testing.T) {
	cases := []struct {
		name string
		doc  any
		want bool
	}{
		{"clip context", map[string]any{"@context": "https://clipprotocol.org/v1"}, true},
		{"known type", map[string]any{"type": "Device"}, true},
		{"clip id", map[string]any{"id": "clip:us:x"}, true},
		{"plain object", map[string]any{"hello": "world"}, false},
		{"not an object", "text", false},
		{"nil", nil, false},
	}
	for _, c := range cases {
		if got := IsCLIPObject(c.doc); got != c.want {
			t.Errorf("%s: IsCLIPObject = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestHasCLIPStructure(t *testing.T) {
	full := map[string]any{
		"@context": "https://clipprotocol.org/v1",
		"type":     "Venue",
		"id":       "clip:x",
	}
	if !HasCLIPStructure(full) {
		t.Error("expected full structure to pass")
	}

	noID := map[string]any{"@context": "https://clipprotocol.org/v1", "type": "Venue"}
	if HasCLIPStructure(noID) {
		t.Error("expected missing id to fail")
	}

	wrongContext := map[string]any{"@context": "https://other.org", "type": "Venue", "id": "clip:x"}
	if HasCLIPStructure(wrongContext) {
		t.Error("expected foreign context to fail")
	}
}

// Package template generates skeleton CLIP documents for each object type.
package template

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

var entropy = rand.New(rand.NewSource(time.Now().UnixNano()))

func newID(objType string) string {
	id := ulid.MustNew(ulid.Timestamp(time.Now()), entropy)
	return fmt.Sprintf("clip:local:%s:%s", strings.ToLower(objType), strings.ToLower(id.String()))
}

// Generate returns a skeleton CLIP object for the given type (Venue, Device
// or SoftwareApp) with a fresh id and timestamp.
func Generate(objType string) (map[string]any, error) {
	base := map[string]any{
		"@context":    "https://clipprotocol.org/v1",
		"type":        objType,
		"id":          newID(objType),
		"name":        "Example " + objType,
		"description": fmt.Sprintf("Describe what this %s offers and who it is for", strings.ToLower(objType)),
		"lastUpdated": time.Now().UTC().Format(time.RFC3339),
		"features":    []any{},
		"actions":     []any{},
	}

	switch objType {
	case "Venue":
		base["location"] = map[string]any{
			"address": "",
			"coordinates": map[string]any{
				"latitude":  0.0,
				"longitude": 0.0,
			},
		}
	case "Device":
		base["services"] = []any{}
	case "SoftwareApp":
		base["persona"] = map[string]any{
			"role": "assistant",
		}
	default:
		return nil, fmt.Errorf("unknown CLIP type %q (want Venue, Device or SoftwareApp)", objType)
	}

	return base, nil
}

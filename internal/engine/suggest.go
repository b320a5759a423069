package engine

import (
	"fmt"
	"strings"
)

// requiredSuggestions are field-specific fixes for the core CLIP fields.
// The lookup strips a leading @ so "@context" and "context" resolve alike.
var requiredSuggestions = map[string]string{
	"context":     `Add "@context": "https://clipprotocol.org/v1"`,
	"type":        `Set "type" to one of: Venue, Device, SoftwareApp`,
	"id":          `Add an "id" like "clip:us:ny:gym:example"`,
	"name":        `Add a short human-readable "name"`,
	"description": `Add a "description" explaining what this object is`,
	"lastUpdated": `Add "lastUpdated" as an ISO 8601 timestamp, e.g. "2024-01-15T12:00:00Z"`,
}

func requiredSuggestion(name string) string {
	if s, ok := requiredSuggestions[strings.TrimPrefix(name, "@")]; ok {
		return s
	}
	return fmt.Sprintf("Add the %q field to your CLIP object", name)
}

func typeSuggestion(want []string) string {
	if len(want) == 0 {
		return "Convert the value to the expected type"
	}
	switch want[0] {
	case "string":
		return "Quote the value so it is a JSON string"
	case "number", "integer":
		return "Remove quotes so the value is numeric"
	case "boolean":
		return "Use true or false without quotes"
	case "array":
		return "Wrap the value in [ ] to make it an array"
	case "object":
		return "Wrap the value in { } to make it an object"
	case "null":
		return "Use null for this field"
	}
	return "Convert the value to " + want[0]
}

func formatSuggestion(format string) string {
	switch format {
	case "date-time":
		return `Use ISO 8601, e.g. "2024-01-15T12:00:00Z"`
	case "uri":
		return `Use a full URL, e.g. "https://example.com/resource"`
	case "email":
		return `Use a valid address, e.g. "user@example.com"`
	}
	return fmt.Sprintf("Check the %s format for this field", format)
}

package engine

import (
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/clip-organization/clip-toolkit/internal/model"
)

var printer = message.NewPrinter(language.English)

// diagnose flattens the validator's error tree into leaf errors and rewrites
// each one into a diagnostic.
func diagnose(root *jsonschema.ValidationError, doc any) []model.Diagnostic {
	var leaves []*jsonschema.ValidationError
	collectLeaves(root, &leaves)

	var diags []model.Diagnostic
	for _, leaf := range leaves {
		diags = append(diags, describe(leaf, doc)...)
	}
	return diags
}

func collectLeaves(err *jsonschema.ValidationError, out *[]*jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		*out = append(*out, err)
		return
	}
	for _, cause := range err.Causes {
		collectLeaves(cause, out)
	}
}

// describe dispatches on the validator's typed error kinds. Known keywords
// get rewritten messages and suggestions; anything else passes the
// validator's own message through.
func describe(err *jsonschema.ValidationError, doc any) []model.Diagnostic {
	path := fieldPath(err.InstanceLocation)

	switch k := err.ErrorKind.(type) {
	case *kind.Required:
		diags := make([]model.Diagnostic, 0, len(k.Missing))
		for _, name := range k.Missing {
			diags = append(diags, model.Diagnostic{
				Field:      childPath(path, name),
				Message:    "Missing required field: " + name,
				Suggestion: requiredSuggestion(name),
				Severity:   model.SeverityError,
			})
		}
		return diags

	case *kind.Type:
		want := strings.Join(k.Want, " or ")
		return single(path,
			fmt.Sprintf("Expected %s, got %s", want, k.Got),
			typeSuggestion(k.Want),
			valueAt(doc, err.InstanceLocation))

	case *kind.Enum:
		list := joinValues(k.Want)
		return single(path,
			"Value must be one of: "+list,
			"Use one of: "+list,
			valueAt(doc, err.InstanceLocation))

	case *kind.Format:
		return single(path,
			fmt.Sprintf("Invalid %s format", k.Want),
			formatSuggestion(k.Want),
			valueAt(doc, err.InstanceLocation))

	case *kind.Const:
		return single(path,
			"Must be exactly: "+formatValue(k.Want),
			"",
			valueAt(doc, err.InstanceLocation))

	case *kind.MinLength:
		return single(path,
			fmt.Sprintf("Must be at least %d characters long", k.Want),
			"",
			valueAt(doc, err.InstanceLocation))

	case *kind.MaxLength:
		return single(path,
			fmt.Sprintf("Must be at most %d characters long", k.Want),
			"",
			valueAt(doc, err.InstanceLocation))

	default:
		return single(path,
			err.ErrorKind.LocalizedString(printer),
			"",
			valueAt(doc, err.InstanceLocation))
	}
}

func single(field, msg, suggestion string, rawValue any) []model.Diagnostic {
	return []model.Diagnostic{{
		Field:      field,
		Message:    msg,
		RawValue:   rawValue,
		Suggestion: suggestion,
		Severity:   model.SeverityError,
	}}
}

// fieldPath converts JSON-pointer tokens into a dotted path with array
// indices as [n]. An empty pointer is the document root.
func fieldPath(tokens []string) string {
	if len(tokens) == 0 {
		return "root"
	}
	var b strings.Builder
	for _, tok := range tokens {
		if isIndex(tok) {
			b.WriteString("[" + tok + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(tok)
	}
	return b.String()
}

func childPath(path, name string) string {
	if path == "root" {
		return name
	}
	return path + "." + name
}

func isIndex(tok string) bool {
	if tok == "" {
		return false
	}
	for _, r := range tok {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// valueAt walks the document along JSON-pointer tokens to recover the raw
// offending value for a diagnostic.
func valueAt(doc any, tokens []string) any {
	cur := doc
	for _, tok := range tokens {
		switch c := cur.(type) {
		case map[string]any:
			cur = c[tok]
		case model.Document:
			cur = c[tok]
		case []any:
			i, err := strconv.Atoi(tok)
			if err != nil || i < 0 || i >= len(c) {
				return nil
			}
			cur = c[i]
		default:
			return nil
		}
	}
	return cur
}

func joinValues(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = formatValue(v)
	}
	return strings.Join(parts, ", ")
}

func formatValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

// Package engine compiles a CLIP JSON Schema once and validates many parsed
// documents against it, rewriting raw validator errors into actionable
// diagnostics and computing statistics and heuristic warnings.
package engine

import (
	"errors"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/clip-organization/clip-toolkit/internal/model"
)

// ErrInvalidSchema indicates the schema itself failed meta-schema
// compilation. An engine is never produced from such a schema.
var ErrInvalidSchema = errors.New("invalid schema")

const resourceURL = "clip.schema.json"

// Engine is a compiled validator. Compilation is expensive relative to
// validation, so callers hold on to one Engine per schema.
type Engine struct {
	schema *jsonschema.Schema
}

// Compile builds an Engine from a parsed schema document.
func Compile(schemaDoc map[string]any) (*Engine, error) {
	c := jsonschema.NewCompiler()
	c.AssertFormat()

	if err := c.AddResource(resourceURL, schemaDoc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	compiled, err := c.Compile(resourceURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}

	return &Engine{schema: compiled}, nil
}

// Validate runs the compiled schema against one parsed document. All schema
// violations are collected, never just the first; warnings and statistics are
// computed from the raw document so they apply to invalid input too. It never
// returns an error: per-document problems are diagnostics, not failures.
func (e *Engine) Validate(doc any) model.ValidationResult {
	diags := []model.Diagnostic{}

	if err := e.schema.Validate(doc); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			diags = append(diags, diagnose(verr, doc)...)
		} else {
			diags = append(diags, model.Diagnostic{
				Field:    "root",
				Message:  err.Error(),
				Severity: model.SeverityError,
			})
		}
	}

	valid := true
	for _, d := range diags {
		if d.Severity == model.SeverityError {
			valid = false
			break
		}
	}

	return model.ValidationResult{
		Valid:       valid,
		Diagnostics: diags,
		Warnings:    Warnings(doc),
		Stats:       Stats(doc),
	}
}

// ValidateBatch validates each document independently. One bad document
// never affects its neighbors.
func (e *Engine) ValidateBatch(docs []any) []model.ValidationResult {
	results := make([]model.ValidationResult, len(docs))
	for i, doc := range docs {
		results[i] = e.Validate(doc)
	}
	return results
}

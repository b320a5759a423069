package engine

import (
	"fmt"
	"time"

	"github.com/clip-organization/clip-toolkit/internal/model"
)

const staleDays = 30

// Warnings generates advisory quality hints from the raw document. They are
// computed independently of schema validity and never affect it.
func Warnings(doc any) []string {
	m, ok := asMap(doc)
	if !ok {
		return []string{}
	}
	d := model.Document(m)
	warnings := []string{}

	if _, present := m["lastUpdated"]; present {
		if t, err := time.Parse(time.RFC3339, d.LastUpdated()); err == nil {
			if days := int(time.Since(t).Hours() / 24); days > staleDays {
				warnings = append(warnings,
					fmt.Sprintf("lastUpdated is %d days old - consider updating", days))
			}
		} else {
			warnings = append(warnings, "lastUpdated field has invalid date format")
		}
	}

	if len(d.Description()) < 10 {
		warnings = append(warnings, "Description is too short - consider providing more detail")
	}

	if d.Type() == "Venue" && !d.HasLocation() {
		warnings = append(warnings, "Venues typically should include location information")
	}

	if d.FeatureCount() == 0 {
		warnings = append(warnings, "Consider adding features to describe what this object offers")
	}

	if d.ActionCount() == 0 {
		warnings = append(warnings, "Consider adding actions to make this object interactive")
	}

	return warnings
}

// Package validate scores a populated component store for clarity and
// completeness. Scoring is a pure function of current store contents and is
// recomputed on demand, never cached across store mutations.
package validate

import (
	"github.com/mkret/promptsmith/internal/prompt"
	"github.com/mkret/promptsmith/internal/schema"
)

// Result is the outcome of validating a component store. Issues block
// validity; suggestions are advisory only.
type Result struct {
	IsValid      bool     `json:"is_valid"`
	Clarity      float64  `json:"clarity_score"`      // 0-10
	Completeness float64  `json:"completeness_score"` // 0.0-1.0
	Issues       []string `json:"issues"`
	Suggestions  []string `json:"suggestions"`
}

// OverallScore combines clarity and completeness into a single 0-1 quality
// figure, weighting both halves equally.
func (r Result) OverallScore() float64 {
	return r.Clarity/10*0.5 + r.Completeness*0.5
}

// Validate scores the store. Clarity starts from the role (8.0 when present
// and descriptive, 6.0 when present but short, 3.0 when absent) and is then
// capped, never raised: to 3.0 for a missing task, to 7.0 for a terse task,
// and to 6.0 for a Full-tier store below 70% completeness. A store with every
// field empty yields clarity 3.0, completeness 0.0 and IsValid false.
func Validate(s *prompt.Store) Result {
	var issues, suggestions []string

	var clarity float64
	switch role := s.Text(schema.FieldRole); {
	case !s.Filled(schema.FieldRole):
		issues = append(issues, "Role is not defined")
		clarity = 3.0
	case len(role) < 20:
		suggestions = append(suggestions, "Consider adding more detail to the role description")
		clarity = 6.0
	default:
		clarity = 8.0
	}

	switch task := s.Text(schema.FieldTask); {
	case !s.Filled(schema.FieldTask):
		issues = append(issues, "Task is not defined")
		clarity = min(clarity, 3.0)
	case len(task) < 30:
		suggestions = append(suggestions, "Task could be more specific")
		clarity = min(clarity, 7.0)
	}

	if len(s.List(schema.FieldConstraints)) == 0 {
		suggestions = append(suggestions, "Consider adding constraints to guide behavior")
	}

	completeness := float64(s.FilledCount()) / float64(schema.TotalFields(s.Tier()))

	if s.Tier() == schema.TierFull && completeness < 0.7 {
		clarity = min(clarity, 6.0)
		suggestions = append(suggestions, "The full tier works best when more of the advanced components are filled in")
	}

	return Result{
		IsValid:      len(issues) == 0,
		Clarity:      clarity,
		Completeness: completeness,
		Issues:       issues,
		Suggestions:  suggestions,
	}
}

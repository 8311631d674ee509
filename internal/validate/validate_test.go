package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkret/promptsmith/internal/prompt"
	"github.com/mkret/promptsmith/internal/schema"
)

func TestValidateEmptyStore(t *testing.T) {
	s := prompt.NewStore(schema.TierMinimal)
	result := Validate(s)

	assert.False(t, result.IsValid, "a store with no role and no task is invalid")
	assert.Equal(t, 3.0, result.Clarity)
	assert.Equal(t, 0.0, result.Completeness)
	assert.Contains(t, result.Issues, "Role is not defined")
	assert.Contains(t, result.Issues, "Task is not defined")
	assert.InDelta(t, 0.15, result.OverallScore(), 1e-9)
}

func TestValidateMinimalHappyPath(t *testing.T) {
	s := prompt.NewStore(schema.TierMinimal)
	require.NoError(t, s.SetText(schema.FieldRole, "a senior Python developer"))
	require.NoError(t, s.SetText(schema.FieldTask, "review code for bugs and security issues"))
	require.NoError(t, s.Append(schema.FieldConstraints, "Be constructive"))

	result := Validate(s)

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Issues)
	assert.Equal(t, 8.0, result.Clarity, "a descriptive role and task earn the top clarity score")
	assert.Equal(t, 1.0, result.Completeness)
	assert.InDelta(t, 0.9, result.OverallScore(), 1e-9)
}

func TestValidateShortRole(t *testing.T) {
	s := prompt.NewStore(schema.TierMinimal)
	require.NoError(t, s.SetText(schema.FieldRole, "a coder")) // under 20 chars
	require.NoError(t, s.SetText(schema.FieldTask, "review code for bugs and security issues"))
	require.NoError(t, s.Append(schema.FieldConstraints, "Be brief"))

	result := Validate(s)

	assert.True(t, result.IsValid, "a short role is a suggestion, not an issue")
	assert.Equal(t, 6.0, result.Clarity)
	assert.Contains(t, result.Suggestions, "Consider adding more detail to the role description")
}

func TestValidateShortTask(t *testing.T) {
	s := prompt.NewStore(schema.TierMinimal)
	require.NoError(t, s.SetText(schema.FieldRole, "a senior Python developer"))
	require.NoError(t, s.SetText(schema.FieldTask, "review code")) // under 30 chars
	require.NoError(t, s.Append(schema.FieldConstraints, "Be brief"))

	result := Validate(s)

	assert.True(t, result.IsValid)
	assert.Equal(t, 7.0, result.Clarity, "a terse task caps clarity at 7.0")
	assert.Contains(t, result.Suggestions, "Task could be more specific")
}

func TestValidateMissingTaskCapsClarity(t *testing.T) {
	s := prompt.NewStore(schema.TierMinimal)
	require.NoError(t, s.SetText(schema.FieldRole, "a senior Python developer"))

	result := Validate(s)

	assert.False(t, result.IsValid)
	assert.Contains(t, result.Issues, "Task is not defined")
	assert.Equal(t, 3.0, result.Clarity, "a missing task caps clarity at 3.0 even with a good role")
}

func TestValidateEmptyConstraintsSuggestion(t *testing.T) {
	s := prompt.NewStore(schema.TierMinimal)
	require.NoError(t, s.SetText(schema.FieldRole, "a senior Python developer"))
	require.NoError(t, s.SetText(schema.FieldTask, "review code for bugs and security issues"))

	result := Validate(s)
	assert.Contains(t, result.Suggestions, "Consider adding constraints to guide behavior")
}

func TestValidateFullTierSparse(t *testing.T) {
	// Only 2 of the 11 full-tier fields filled.
	s := prompt.NewStore(schema.TierFull)
	require.NoError(t, s.SetText(schema.FieldRole, "a senior Python developer"))
	require.NoError(t, s.SetText(schema.FieldTask, "review code for bugs and security issues"))

	result := Validate(s)

	assert.True(t, result.IsValid, "sparseness is a suggestion, not an issue")
	assert.InDelta(t, 2.0/11.0, result.Completeness, 1e-9)
	assert.Equal(t, 6.0, result.Clarity, "a sparse full-tier store caps clarity at 6.0")
	assert.NotEmpty(t, result.Suggestions)
}

func TestValidateFullTierComplete(t *testing.T) {
	s := prompt.NewStore(schema.TierFull)
	require.NoError(t, s.SetText(schema.FieldRole, "a senior Python developer"))
	require.NoError(t, s.SetText(schema.FieldTask, "review code for bugs and security issues"))
	require.NoError(t, s.Append(schema.FieldConstraints, "Be constructive"))
	require.NoError(t, s.SetText(schema.FieldContext, "an open source project"))
	require.NoError(t, s.AppendPair(schema.FieldExamples, prompt.Example{Input: "diff", Output: "findings"}))
	require.NoError(t, s.SetText(schema.FieldOutputFormat, "markdown list"))
	require.NoError(t, s.SetText(schema.FieldReasoningPattern, "analytical"))
	require.NoError(t, s.Append(schema.FieldSuccessCriteria, "No false positives"))
	require.NoError(t, s.Append(schema.FieldEdgeCases, "Generated code"))
	require.NoError(t, s.SetText(schema.FieldPerformanceRequirements, "Respond within a page"))
	require.NoError(t, s.Append(schema.FieldCustomInstructions, "Cite line numbers"))

	result := Validate(s)

	assert.True(t, result.IsValid)
	assert.Equal(t, 1.0, result.Completeness)
	assert.Equal(t, 8.0, result.Clarity, "a complete full-tier store keeps the full clarity score")
}

// TestValidateRecomputes verifies scoring reflects the store's current state,
// not a value cached at first validation.
func TestValidateRecomputes(t *testing.T) {
	s := prompt.NewStore(schema.TierMinimal)
	first := Validate(s)
	assert.False(t, first.IsValid)

	require.NoError(t, s.SetText(schema.FieldRole, "a senior Python developer"))
	require.NoError(t, s.SetText(schema.FieldTask, "review code for bugs and security issues"))
	second := Validate(s)
	assert.True(t, second.IsValid)
	assert.Greater(t, second.Completeness, first.Completeness)
}

func TestOverallScore(t *testing.T) {
	r := Result{Clarity: 8.0, Completeness: 1.0}
	assert.InDelta(t, 0.9, r.OverallScore(), 1e-9)

	r = Result{Clarity: 10.0, Completeness: 1.0}
	assert.InDelta(t, 1.0, r.OverallScore(), 1e-9, "a perfect result scores exactly 1.0")

	r = Result{Clarity: 0, Completeness: 0}
	assert.Equal(t, 0.0, r.OverallScore())
}

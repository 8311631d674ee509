package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierString(t *testing.T) {
	assert.Equal(t, "minimal", TierMinimal.String())
	assert.Equal(t, "guided", TierGuided.String())
	assert.Equal(t, "full", TierFull.String())
	assert.Equal(t, "tier(42)", Tier(42).String())
}

func TestParseTier(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		for _, tier := range []Tier{TierMinimal, TierGuided, TierFull} {
			parsed, err := ParseTier(tier.String())
			require.NoError(t, err, "ParseTier should accept %q", tier.String())
			assert.Equal(t, tier, parsed)
		}
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := ParseTier("expert")
		require.Error(t, err, "ParseTier should reject unknown tier names")
		assert.Contains(t, err.Error(), "expert")
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := ParseTier("")
		require.Error(t, err)
	})
}

func TestTotalFields(t *testing.T) {
	assert.Equal(t, 3, TotalFields(TierMinimal))
	assert.Equal(t, 6, TotalFields(TierGuided))
	assert.Equal(t, 11, TotalFields(TierFull))
}

// TestTierSupersets verifies that each richer tier's field list is a strict
// extension of the one below it: same fields, same order, more appended.
func TestTierSupersets(t *testing.T) {
	minimal := FieldsFor(TierMinimal)
	guided := FieldsFor(TierGuided)
	full := FieldsFor(TierFull)

	require.Equal(t, minimal, guided[:len(minimal)], "Guided must start with the Minimal sequence")
	require.Equal(t, guided, full[:len(guided)], "Full must start with the Guided sequence")
}

func TestFieldsForOrdering(t *testing.T) {
	wantFull := []string{
		FieldRole, FieldTask, FieldConstraints,
		FieldContext, FieldExamples, FieldOutputFormat,
		FieldReasoningPattern, FieldSuccessCriteria, FieldEdgeCases,
		FieldPerformanceRequirements, FieldCustomInstructions,
	}
	got := FieldsFor(TierFull)
	require.Len(t, got, len(wantFull))
	for i, fd := range got {
		assert.Equal(t, wantFull[i], fd.Name, "field %d out of order", i)
	}
}

func TestRequiredFields(t *testing.T) {
	required := map[string]bool{}
	for _, fd := range FieldsFor(TierFull) {
		required[fd.Name] = fd.Required
	}

	assert.True(t, required[FieldRole], "role must be required")
	assert.True(t, required[FieldTask], "task must be required")
	for name, req := range required {
		if name == FieldRole || name == FieldTask {
			continue
		}
		assert.False(t, req, "field %s should be optional", name)
	}
}

func TestReasoningPatterns(t *testing.T) {
	// The wizard relies on "custom" being present to trigger free-text entry.
	assert.Contains(t, ReasoningPatterns, "custom")
	assert.Equal(t, "analytical", ReasoningPatterns[0], "analytical is the default choice")
}

// Package schema defines the complexity tiers of the prompt wizard and the
// ordered set of component fields each tier collects.
package schema

import "fmt"

// Tier is the wizard complexity level. It is fixed when a component store is
// created and determines which fields exist and the denominator used for
// completeness ratios.
type Tier int

const (
	// TierMinimal collects the three essential components: role, task, constraints.
	TierMinimal Tier = iota
	// TierGuided adds context, examples and output format on top of Minimal.
	TierGuided
	// TierFull adds the advanced components: reasoning pattern, success
	// criteria, edge cases, performance requirements, custom instructions.
	TierFull
)

// String returns the lowercase name of the tier as used in config files,
// CLI flags and persisted snapshots.
func (t Tier) String() string {
	switch t {
	case TierMinimal:
		return "minimal"
	case TierGuided:
		return "guided"
	case TierFull:
		return "full"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// ParseTier maps a tier name back to its Tier value.
func ParseTier(s string) (Tier, error) {
	switch s {
	case "minimal":
		return TierMinimal, nil
	case "guided":
		return TierGuided, nil
	case "full":
		return TierFull, nil
	default:
		return TierMinimal, fmt.Errorf("unknown tier %q (expected minimal, guided or full)", s)
	}
}

// FieldKind describes the value shape of a component field.
type FieldKind int

const (
	// KindText is a single free-text value.
	KindText FieldKind = iota
	// KindTextList is an ordered list of free-text items.
	KindTextList
	// KindPairList is an ordered list of input/output example pairs.
	KindPairList
)

// Field names shared by the store, renderer, validator and wizard.
const (
	FieldRole                    = "role"
	FieldTask                    = "task"
	FieldConstraints             = "constraints"
	FieldContext                 = "context"
	FieldExamples                = "examples"
	FieldOutputFormat            = "output_format"
	FieldReasoningPattern        = "reasoning_pattern"
	FieldSuccessCriteria         = "success_criteria"
	FieldEdgeCases               = "edge_cases"
	FieldPerformanceRequirements = "performance_requirements"
	FieldCustomInstructions      = "custom_instructions"
)

// FieldDescriptor describes one component field of a tier's schema.
type FieldDescriptor struct {
	Name     string
	Kind     FieldKind
	Required bool
}

// Descriptor tables are tier supersets: Guided runs the Minimal sequence
// first and appends its own fields, Full does the same on top of Guided.
var (
	minimalFields = []FieldDescriptor{
		{Name: FieldRole, Kind: KindText, Required: true},
		{Name: FieldTask, Kind: KindText, Required: true},
		{Name: FieldConstraints, Kind: KindTextList, Required: false},
	}

	guidedFields = append(minimalFields[:len(minimalFields):len(minimalFields)],
		FieldDescriptor{Name: FieldContext, Kind: KindText, Required: false},
		FieldDescriptor{Name: FieldExamples, Kind: KindPairList, Required: false},
		FieldDescriptor{Name: FieldOutputFormat, Kind: KindText, Required: false},
	)

	fullFields = append(guidedFields[:len(guidedFields):len(guidedFields)],
		FieldDescriptor{Name: FieldReasoningPattern, Kind: KindText, Required: false},
		FieldDescriptor{Name: FieldSuccessCriteria, Kind: KindTextList, Required: false},
		FieldDescriptor{Name: FieldEdgeCases, Kind: KindTextList, Required: false},
		FieldDescriptor{Name: FieldPerformanceRequirements, Kind: KindText, Required: false},
		FieldDescriptor{Name: FieldCustomInstructions, Kind: KindTextList, Required: false},
	)
)

// FieldsFor returns the ordered field descriptors for the given tier.
// The returned slice must not be mutated by callers.
func FieldsFor(t Tier) []FieldDescriptor {
	switch t {
	case TierGuided:
		return guidedFields
	case TierFull:
		return fullFields
	default:
		return minimalFields
	}
}

// TotalFields returns the number of fields defined for the tier.
func TotalFields(t Tier) int {
	return len(FieldsFor(t))
}

// ReasoningPatterns is the fixed enumeration of built-in reasoning patterns
// offered by the wizard. "custom" lets the user type their own instruction.
var ReasoningPatterns = []string{"analytical", "creative", "technical", "step-by-step", "comparative", "custom"}

package prompt

import (
	"fmt"
	"strings"

	"github.com/mkret/promptsmith/internal/schema"
)

// reasoningInstructions expands a built-in reasoning pattern into the
// instruction sentence emitted in the rendered prompt. Values outside this
// table (including "custom" patterns typed by the user) are emitted verbatim.
var reasoningInstructions = map[string]string{
	"analytical":   "Think through this step-by-step, showing your reasoning.",
	"creative":     "Explore multiple approaches before selecting the best one.",
	"technical":    "Break down the technical requirements systematically.",
	"step-by-step": "Approach this methodically, one step at a time.",
	"comparative":  "Compare different options and explain your choice.",
}

// ReasoningInstruction returns the instruction sentence for a reasoning
// pattern: the canned sentence for a known pattern, the raw value otherwise.
func ReasoningInstruction(pattern string) string {
	if instr, ok := reasoningInstructions[pattern]; ok {
		return instr
	}
	return pattern
}

// Render produces the final prompt text from the store. It is deterministic
// and total: absent or empty fields are silently skipped, sections appear in
// fixed schema order, and list items keep their insertion order. Sections are
// separated by a blank line except bullet lists, which follow their heading
// directly.
func Render(s *Store) string {
	var parts []string

	if s.Filled(schema.FieldRole) {
		parts = append(parts, fmt.Sprintf("You are %s.", s.Text(schema.FieldRole)))
	}

	if s.Filled(schema.FieldContext) {
		parts = append(parts, fmt.Sprintf("\nContext: %s", s.Text(schema.FieldContext)))
	}

	if s.Filled(schema.FieldTask) {
		parts = append(parts, fmt.Sprintf("\nYour task is to %s.", s.Text(schema.FieldTask)))
	}

	if constraints := s.List(schema.FieldConstraints); len(constraints) > 0 {
		parts = append(parts, "\nConstraints:")
		for _, c := range constraints {
			parts = append(parts, "- "+c)
		}
	}

	if examples := s.Pairs(schema.FieldExamples); len(examples) > 0 {
		parts = append(parts, "\nExamples:")
		for i, ex := range examples {
			parts = append(parts, fmt.Sprintf("\nExample %d:", i+1))
			parts = append(parts, "Input: "+ex.Input)
			parts = append(parts, "Output: "+ex.Output)
		}
	}

	if s.Filled(schema.FieldReasoningPattern) {
		parts = append(parts, "\n"+ReasoningInstruction(s.Text(schema.FieldReasoningPattern)))
	}

	if s.Filled(schema.FieldOutputFormat) {
		parts = append(parts, fmt.Sprintf("\nOutput Format: %s", s.Text(schema.FieldOutputFormat)))
	}

	if criteria := s.List(schema.FieldSuccessCriteria); len(criteria) > 0 {
		parts = append(parts, "\nSuccess Criteria:")
		for _, c := range criteria {
			parts = append(parts, "- "+c)
		}
	}

	if edgeCases := s.List(schema.FieldEdgeCases); len(edgeCases) > 0 {
		parts = append(parts, "\nConsider these edge cases:")
		for _, e := range edgeCases {
			parts = append(parts, "- "+e)
		}
	}

	if s.Filled(schema.FieldPerformanceRequirements) {
		parts = append(parts, fmt.Sprintf("\nPerformance Requirements: %s", s.Text(schema.FieldPerformanceRequirements)))
	}

	if custom := s.List(schema.FieldCustomInstructions); len(custom) > 0 {
		parts = append(parts, "\nAdditional Instructions:")
		for _, instr := range custom {
			parts = append(parts, "- "+instr)
		}
	}

	return strings.Join(parts, "\n")
}

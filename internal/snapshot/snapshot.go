// Package snapshot persists a completed wizard run as a flat JSON record:
// the component values, the rendered prompt text, the run metrics and the
// validation scores. Field names and nesting are stable so saved files can
// be reloaded and re-displayed.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mkret/promptsmith/internal/metrics"
	"github.com/mkret/promptsmith/internal/prompt"
	"github.com/mkret/promptsmith/internal/schema"
	"github.com/mkret/promptsmith/internal/validate"
)

// Components mirrors the component store field-for-field.
type Components struct {
	Role                    string           `json:"role"`
	Task                    string           `json:"task"`
	Constraints             []string         `json:"constraints"`
	Context                 string           `json:"context,omitempty"`
	Examples                []prompt.Example `json:"examples,omitempty"`
	OutputFormat            string           `json:"output_format,omitempty"`
	ReasoningPattern        string           `json:"reasoning_pattern,omitempty"`
	SuccessCriteria         []string         `json:"success_criteria,omitempty"`
	EdgeCases               []string         `json:"edge_cases,omitempty"`
	PerformanceRequirements string           `json:"performance_requirements,omitempty"`
	CustomInstructions      []string         `json:"custom_instructions,omitempty"`
}

// Validation holds the four validation sub-scores plus issue/suggestion lists.
type Validation struct {
	IsValid           bool     `json:"is_valid"`
	ClarityScore      float64  `json:"clarity_score"`
	CompletenessScore float64  `json:"completeness_score"`
	OverallScore      float64  `json:"overall_score"`
	Issues            []string `json:"issues"`
	Suggestions       []string `json:"suggestions"`
}

// Snapshot is the persisted record of one wizard run.
type Snapshot struct {
	Tier         string           `json:"tier"`
	Components   Components       `json:"components"`
	RenderedText string           `json:"rendered_text"`
	Metrics      metrics.Snapshot `json:"metrics"`
	Validation   Validation       `json:"validation"`
	Timestamp    time.Time        `json:"timestamp"`
}

// New assembles a snapshot from the live run objects.
func New(store *prompt.Store, tracker *metrics.Tracker, result validate.Result) Snapshot {
	return Snapshot{
		Tier:         store.Tier().String(),
		Components:   componentsFromStore(store),
		RenderedText: prompt.Render(store),
		Metrics:      tracker.Snapshot(),
		Validation: Validation{
			IsValid:           result.IsValid,
			ClarityScore:      result.Clarity,
			CompletenessScore: result.Completeness,
			OverallScore:      result.OverallScore(),
			Issues:            result.Issues,
			Suggestions:       result.Suggestions,
		},
		Timestamp: time.Now(),
	}
}

func componentsFromStore(s *prompt.Store) Components {
	return Components{
		Role:                    s.Text(schema.FieldRole),
		Task:                    s.Text(schema.FieldTask),
		Constraints:             s.List(schema.FieldConstraints),
		Context:                 s.Text(schema.FieldContext),
		Examples:                s.Pairs(schema.FieldExamples),
		OutputFormat:            s.Text(schema.FieldOutputFormat),
		ReasoningPattern:        s.Text(schema.FieldReasoningPattern),
		SuccessCriteria:         s.List(schema.FieldSuccessCriteria),
		EdgeCases:               s.List(schema.FieldEdgeCases),
		PerformanceRequirements: s.Text(schema.FieldPerformanceRequirements),
		CustomInstructions:      s.List(schema.FieldCustomInstructions),
	}
}

// Store rebuilds a component store from the snapshot. Fields outside the
// snapshot tier's schema are ignored; tiers are supersets, so the lower
// tier's fields always restore cleanly.
func (sn Snapshot) Store() (*prompt.Store, error) {
	tier, err := schema.ParseTier(sn.Tier)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	s := prompt.NewStore(tier)
	c := sn.Components

	if err := s.SetText(schema.FieldRole, c.Role); err != nil {
		return nil, err
	}
	if err := s.SetText(schema.FieldTask, c.Task); err != nil {
		return nil, err
	}
	for _, item := range c.Constraints {
		if err := s.Append(schema.FieldConstraints, item); err != nil {
			return nil, err
		}
	}

	if tier == schema.TierMinimal {
		return s, nil
	}

	if err := s.SetText(schema.FieldContext, c.Context); err != nil {
		return nil, err
	}
	for _, pair := range c.Examples {
		if err := s.AppendPair(schema.FieldExamples, pair); err != nil {
			return nil, err
		}
	}
	if err := s.SetText(schema.FieldOutputFormat, c.OutputFormat); err != nil {
		return nil, err
	}

	if tier == schema.TierGuided {
		return s, nil
	}

	if err := s.SetText(schema.FieldReasoningPattern, c.ReasoningPattern); err != nil {
		return nil, err
	}
	for _, item := range c.SuccessCriteria {
		if err := s.Append(schema.FieldSuccessCriteria, item); err != nil {
			return nil, err
		}
	}
	for _, item := range c.EdgeCases {
		if err := s.Append(schema.FieldEdgeCases, item); err != nil {
			return nil, err
		}
	}
	if err := s.SetText(schema.FieldPerformanceRequirements, c.PerformanceRequirements); err != nil {
		return nil, err
	}
	for _, item := range c.CustomInstructions {
		if err := s.Append(schema.FieldCustomInstructions, item); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// DefaultFilename returns the conventional snapshot file name for a tier,
// e.g. prompt_guided_20240131_154503.json.
func DefaultFilename(tier schema.Tier) string {
	return fmt.Sprintf("prompt_%s_%s.json", tier, time.Now().Format("20060102_150405"))
}

// Save writes the snapshot to path as indented JSON with owner-only
// permissions.
func Save(sn Snapshot, path string) error {
	data, err := json.MarshalIndent(sn, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to write snapshot file")
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	log.Info().Str("path", path).Msg("Snapshot saved")
	return nil
}

// Load reads a snapshot previously written by Save.
func Load(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to read snapshot file")
		return Snapshot{}, fmt.Errorf("%w: %w", ErrRead, err)
	}

	var sn Snapshot
	if err := json.Unmarshal(data, &sn); err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to parse snapshot file")
		return Snapshot{}, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return sn, nil
}

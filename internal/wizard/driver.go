package wizard

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mkret/promptsmith/internal/metrics"
	"github.com/mkret/promptsmith/internal/prompt"
	"github.com/mkret/promptsmith/internal/schema"
	"github.com/mkret/promptsmith/internal/suggest"
)

// fieldGuidance holds the display title and hint shown before a field is
// collected.
type fieldGuidance struct {
	title string
	hint  string
}

var guidance = map[string]fieldGuidance{
	schema.FieldRole: {
		title: "Define the Role",
		hint:  "Who is the AI agent? What expertise should it have?\nExamples: 'a senior Python developer', 'a marketing expert', 'a data scientist'",
	},
	schema.FieldTask: {
		title: "Define the Task",
		hint:  "What should the agent do? Be specific about the goal.\nExamples: 'review code for bugs', 'write marketing copy', 'analyze data trends'",
	},
	schema.FieldConstraints: {
		title: "Define Constraints",
		hint:  "What rules or limitations should the agent follow?\nExamples: 'Be concise', 'Use simple language', 'Focus on security'",
	},
	schema.FieldContext: {
		title: "Add Context (optional)",
		hint:  "Provide background information or domain context.",
	},
	schema.FieldExamples: {
		title: "Add Examples (optional)",
		hint:  "Input-output pairs that demonstrate the expected behavior.",
	},
	schema.FieldOutputFormat: {
		title: "Define Output Format (optional)",
		hint:  "How should the agent structure its response?",
	},
	schema.FieldReasoningPattern: {
		title: "Choose a Reasoning Pattern",
		hint:  "How should the agent approach the problem?",
	},
	schema.FieldSuccessCriteria: {
		title: "Define Success Criteria",
		hint:  "How will you know the agent did well?",
	},
	schema.FieldEdgeCases: {
		title: "Define Edge Cases (optional)",
		hint:  "Unusual inputs or situations the agent must handle.",
	},
	schema.FieldPerformanceRequirements: {
		title: "Performance Requirements (optional)",
		hint:  "Latency, length or quality expectations for the response.",
	},
	schema.FieldCustomInstructions: {
		title: "Custom Instructions (optional)",
		hint:  "Anything else the agent must follow.",
	},
}

// Driver walks the active tier's fields strictly in schema order, delegating
// all input gathering to the Asker. There are no backward transitions and no
// skipping: an optional field left empty still counts as visited, only not
// filled. Collection is strictly sequential and single-session.
type Driver struct {
	store     *prompt.Store
	tracker   *metrics.Tracker
	asker     Asker
	suggester suggest.Suggester // nil means suggestions are unavailable
}

// NewDriver wires a driver for one wizard run. suggester may be nil, which
// puts the run in reduced-capability mode (no suggestion rounds).
func NewDriver(store *prompt.Store, tracker *metrics.Tracker, asker Asker, suggester suggest.Suggester) *Driver {
	return &Driver{store: store, tracker: tracker, asker: asker, suggester: suggester}
}

// Run collects every field of the store's tier. It returns ErrAborted (via
// the asker) when the user interrupts; any other error is a programmer error
// surfaced loudly.
func (d *Driver) Run(ctx context.Context) error {
	fields := schema.FieldsFor(d.store.Tier())
	for i, fd := range fields {
		g := guidance[fd.Name]
		d.asker.Show(fmt.Sprintf("\n[%d/%d] %s", i+1, len(fields), g.title))
		if g.hint != "" {
			d.asker.Show(g.hint)
		}

		if err := d.collectField(ctx, fd); err != nil {
			return err
		}

		if d.store.Filled(fd.Name) {
			d.tracker.RecordFill(fd.Name)
		}
	}
	return nil
}

func (d *Driver) collectField(ctx context.Context, fd schema.FieldDescriptor) error {
	switch fd.Name {
	case schema.FieldReasoningPattern:
		return d.collectReasoningPattern()
	case schema.FieldExamples:
		return d.collectExamples(fd.Name)
	default:
		switch fd.Kind {
		case schema.KindText:
			return d.collectText(ctx, fd)
		case schema.KindTextList:
			return d.collectList(fd.Name)
		case schema.KindPairList:
			return d.collectExamples(fd.Name)
		}
	}
	return nil
}

// collectText gathers a scalar text field. Required fields are re-asked
// until non-empty; optional fields accept an empty response as a skip. The
// role field additionally gets a suggestion round in Guided and Full tiers.
func (d *Driver) collectText(ctx context.Context, fd schema.FieldDescriptor) error {
	label := promptLabel(fd.Name)
	if !fd.Required {
		label += " (Enter to skip)"
	}
	for {
		value, err := d.asker.Ask(label, "")
		if err != nil {
			return err
		}
		if strings.TrimSpace(value) == "" && fd.Required {
			d.asker.Show("This component is required.")
			continue
		}
		if err := d.store.SetText(fd.Name, value); err != nil {
			return err
		}
		break
	}

	if fd.Name == schema.FieldRole && d.store.Tier() != schema.TierMinimal {
		return d.offerSuggestion(ctx, fd.Name)
	}
	return nil
}

// offerSuggestion runs one suggestion round for a field. Service failures
// are degraded-mode by design: they are reported and the current value is
// kept unmodified, never crashing the session.
func (d *Driver) offerSuggestion(ctx context.Context, field string) error {
	if d.suggester == nil {
		return nil
	}

	current := d.store.Text(field)
	suggestion, err := d.suggester.Suggest(ctx, field, current)
	if err != nil {
		log.Warn().Err(err).Str("field", field).Msg("Suggestion service unavailable, keeping current value")
		d.asker.Show("(suggestion service unavailable, continuing without it)")
		return nil
	}
	d.tracker.SuggestionsOffered++

	d.asker.Show(fmt.Sprintf("\nSuggestion for %s:\n%s", field, suggestion))
	apply, err := d.asker.Confirm("Apply this suggestion?", false)
	if err != nil {
		return err
	}
	if !apply {
		return nil
	}

	enhanced, err := d.asker.Ask(fmt.Sprintf("Enhanced %s", field), current)
	if err != nil {
		return err
	}
	if err := d.store.SetText(field, enhanced); err != nil {
		return err
	}
	d.tracker.SuggestionsAccepted++
	return nil
}

// collectList gathers list items one per prompt until an empty response.
func (d *Driver) collectList(field string) error {
	label := promptLabel(field)
	for n := 1; ; n++ {
		item, err := d.asker.Ask(fmt.Sprintf("%s #%d (Enter to finish)", label, n), "")
		if err != nil {
			return err
		}
		if strings.TrimSpace(item) == "" {
			return nil
		}
		if err := d.store.Append(field, item); err != nil {
			return err
		}
		d.asker.Show("Added: " + item)
	}
}

// collectExamples gathers input/output pairs after an initial confirmation.
func (d *Driver) collectExamples(field string) error {
	add, err := d.asker.Confirm("Would you like to add examples?", false)
	if err != nil {
		return err
	}
	if !add {
		return nil
	}

	for {
		input, err := d.asker.Ask("Example input (Enter to finish)", "")
		if err != nil {
			return err
		}
		if strings.TrimSpace(input) == "" {
			return nil
		}
		output, err := d.asker.Ask("Expected output", "")
		if err != nil {
			return err
		}
		if err := d.store.AppendPair(field, prompt.Example{Input: input, Output: output}); err != nil {
			return err
		}
	}
}

// collectReasoningPattern offers the fixed pattern enumeration; choosing
// "custom" asks for a free-text pattern stored verbatim.
func (d *Driver) collectReasoningPattern() error {
	choice, err := d.asker.AskChoice("Choose reasoning pattern", schema.ReasoningPatterns, 0)
	if err != nil {
		return err
	}

	pattern := schema.ReasoningPatterns[choice]
	if pattern == "custom" {
		pattern, err = d.asker.Ask("Define custom reasoning pattern", "")
		if err != nil {
			return err
		}
	}
	return d.store.SetText(schema.FieldReasoningPattern, pattern)
}

// promptLabel turns a field name into the label shown at the input prompt.
func promptLabel(field string) string {
	label := strings.ReplaceAll(field, "_", " ")
	return strings.ToUpper(label[:1]) + label[1:]
}

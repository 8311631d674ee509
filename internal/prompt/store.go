// Package prompt holds the component store populated by the wizard and the
// renderer that turns it into the final prompt text.
package prompt

import (
	"fmt"
	"strings"

	"github.com/mkret/promptsmith/internal/schema"
)

// Example is a single input/output demonstration pair.
type Example struct {
	Input  string `json:"input" yaml:"input"`
	Output string `json:"output" yaml:"output"`
}

// Value holds the current content of one component field. Exactly one of the
// payload members is meaningful, selected by Kind.
type Value struct {
	Kind  schema.FieldKind
	Text  string
	List  []string
	Pairs []Example
}

// Filled reports whether the value counts as a filled component: text must be
// non-empty after trimming, lists must contain at least one item. This is the
// single definition of "filled" shared by the metrics fill counter and the
// validator's completeness ratio.
func (v Value) Filled() bool {
	switch v.Kind {
	case schema.KindText:
		return strings.TrimSpace(v.Text) != ""
	case schema.KindTextList:
		return len(v.List) > 0
	case schema.KindPairList:
		return len(v.Pairs) > 0
	default:
		return false
	}
}

// Store is the mutable record holding the component values of one wizard run.
// Every field of the active tier's schema exists from construction on,
// defaulting to an empty value; fields are only ever overwritten or appended
// to, never deleted. A Store is owned by a single wizard run and is not safe
// for concurrent use.
type Store struct {
	tier   schema.Tier
	values map[string]*Value
}

// NewStore creates a store for the given tier with every schema field present
// and empty.
func NewStore(tier schema.Tier) *Store {
	values := make(map[string]*Value, schema.TotalFields(tier))
	for _, fd := range schema.FieldsFor(tier) {
		values[fd.Name] = &Value{Kind: fd.Kind}
	}
	return &Store{tier: tier, values: values}
}

// Tier returns the tier the store was created with.
func (s *Store) Tier() schema.Tier {
	return s.tier
}

func (s *Store) value(field string) (*Value, error) {
	v, ok := s.values[field]
	if !ok {
		return nil, fmt.Errorf("%w: %q (tier %s)", ErrUnknownField, field, s.tier)
	}
	return v, nil
}

// SetText overwrites a text field.
func (s *Store) SetText(field, text string) error {
	v, err := s.value(field)
	if err != nil {
		return err
	}
	if v.Kind != schema.KindText {
		return fmt.Errorf("%w: %q is not a text field", ErrTypeMismatch, field)
	}
	v.Text = text
	return nil
}

// Append adds one item to a text-list field, preserving insertion order.
// Items are never deduplicated.
func (s *Store) Append(field, item string) error {
	v, err := s.value(field)
	if err != nil {
		return err
	}
	if v.Kind != schema.KindTextList {
		return fmt.Errorf("%w: %q is not a list field", ErrTypeMismatch, field)
	}
	v.List = append(v.List, item)
	return nil
}

// AppendPair adds one example pair to a pair-list field.
func (s *Store) AppendPair(field string, pair Example) error {
	v, err := s.value(field)
	if err != nil {
		return err
	}
	if v.Kind != schema.KindPairList {
		return fmt.Errorf("%w: %q is not an example list field", ErrTypeMismatch, field)
	}
	v.Pairs = append(v.Pairs, pair)
	return nil
}

// Get returns a copy of the field's current value.
func (s *Store) Get(field string) (Value, error) {
	v, err := s.value(field)
	if err != nil {
		return Value{}, err
	}
	return *v, nil
}

// Text returns the text of a field, or "" when the field is absent from the
// tier or not a text field. Used by the renderer, which skips absent fields
// rather than failing.
func (s *Store) Text(field string) string {
	v, ok := s.values[field]
	if !ok || v.Kind != schema.KindText {
		return ""
	}
	return v.Text
}

// List returns the items of a text-list field, or nil when absent.
func (s *Store) List(field string) []string {
	v, ok := s.values[field]
	if !ok || v.Kind != schema.KindTextList {
		return nil
	}
	return v.List
}

// Pairs returns the example pairs of a pair-list field, or nil when absent.
func (s *Store) Pairs(field string) []Example {
	v, ok := s.values[field]
	if !ok || v.Kind != schema.KindPairList {
		return nil
	}
	return v.Pairs
}

// Filled reports whether the given field currently holds a non-empty value.
// Unknown fields report false.
func (s *Store) Filled(field string) bool {
	v, ok := s.values[field]
	return ok && v.Filled()
}

// FilledCount returns the number of fields holding a non-empty value.
func (s *Store) FilledCount() int {
	n := 0
	for _, fd := range schema.FieldsFor(s.tier) {
		if s.values[fd.Name].Filled() {
			n++
		}
	}
	return n
}

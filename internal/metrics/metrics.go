// Package metrics tracks timing and quality figures for a single wizard run.
package metrics

import (
	"time"

	"github.com/mkret/promptsmith/internal/schema"
)

// Estimated success base rates per tier. Richer tiers, fully completed, are
// assumed to perform better. These are heuristic display values carried over
// from field experience, not measured probabilities.
var baseRates = map[schema.Tier]float64{
	schema.TierMinimal: 0.85,
	schema.TierGuided:  0.92,
	schema.TierFull:    0.98,
}

// Tracker records the metrics of one wizard run. It is created together with
// the component store and, like the store, is owned by the single active run.
type Tracker struct {
	tier            schema.Tier
	start           time.Time
	end             time.Time // zero until Finalize
	totalComponents int

	filled map[string]struct{}

	SuggestionsOffered  int
	SuggestionsAccepted int
	ValidationScore     float64
	Satisfaction        *float64
}

// NewTracker starts tracking a run. The start timestamp is fixed here.
func NewTracker(tier schema.Tier) *Tracker {
	return &Tracker{
		tier:            tier,
		start:           time.Now(),
		totalComponents: schema.TotalFields(tier),
		filled:          make(map[string]struct{}),
	}
}

// Tier returns the tier the tracker was created for.
func (t *Tracker) Tier() schema.Tier {
	return t.tier
}

// RecordFill counts a field as filled. Each field is counted at most once,
// on the first non-empty value it receives.
func (t *Tracker) RecordFill(field string) {
	t.filled[field] = struct{}{}
}

// ComponentsFilled returns the number of distinct fields recorded as filled.
func (t *Tracker) ComponentsFilled() int {
	return len(t.filled)
}

// TotalComponents returns the field count of the tracker's tier.
func (t *Tracker) TotalComponents() int {
	return t.totalComponents
}

// Finalize fixes the end timestamp. It is idempotent: later calls never
// advance the end time again.
func (t *Tracker) Finalize() {
	if t.end.IsZero() {
		t.end = time.Now()
	}
}

// TimeToCreate returns the wall-clock duration of the run: end minus start
// once finalized, otherwise a live value relative to now.
func (t *Tracker) TimeToCreate() time.Duration {
	if !t.end.IsZero() {
		return t.end.Sub(t.start)
	}
	return time.Since(t.start)
}

// SuccessRate estimates how well the generated prompt will perform, as the
// tier's base rate scaled by current completeness. Computed live, so it
// reflects fills recorded after Finalize.
func (t *Tracker) SuccessRate() float64 {
	total := t.totalComponents
	if total < 1 {
		total = 1
	}
	return baseRates[t.tier] * float64(len(t.filled)) / float64(total)
}

// Snapshot is the serializable form of the tracker, persisted alongside the
// prompt. Field names are stable for round-trip reconstruction.
type Snapshot struct {
	Tier                string   `json:"tier"`
	TimeToCreateSeconds float64  `json:"time_to_create_seconds"`
	ComponentsFilled    int      `json:"components_filled"`
	TotalComponents     int      `json:"total_components"`
	SuggestionsOffered  int      `json:"suggestions_offered"`
	SuggestionsAccepted int      `json:"suggestions_accepted"`
	ValidationScore     float64  `json:"validation_score"`
	EstimatedSuccess    float64  `json:"estimated_success_rate"`
	UserSatisfaction    *float64 `json:"user_satisfaction"`
}

// Snapshot captures the tracker's current values.
func (t *Tracker) Snapshot() Snapshot {
	return Snapshot{
		Tier:                t.tier.String(),
		TimeToCreateSeconds: t.TimeToCreate().Seconds(),
		ComponentsFilled:    len(t.filled),
		TotalComponents:     t.totalComponents,
		SuggestionsOffered:  t.SuggestionsOffered,
		SuggestionsAccepted: t.SuggestionsAccepted,
		ValidationScore:     t.ValidationScore,
		EstimatedSuccess:    t.SuccessRate(),
		UserSatisfaction:    t.Satisfaction,
	}
}

package feature

import (
	"fmt"
)

// Names lists every feature the assembler emits, in canonical order. The
// trained model persists its own copy of this list; the persisted list is
// the source of truth at prediction time and the two are checked against
// each other, never assumed equal.
var Names = []string{
	"fifa_rank_diff",
	"team1_last5_points",
	"team2_last5_points",
	"team1_last5_goal_diff",
	"team2_last5_goal_diff",
	"team1_can_win_rate",
	"team2_can_win_rate",
	"h2h_total_matches",
	"h2h_team1_win_rate",
	"team1_is_host",
	"team2_is_host",
	"stage_group",
	"days_since_last_match_team1",
	"days_since_last_match_team2",
	"team1_can_titles",
	"team2_can_titles",
	"form_momentum_diff",
	"can_performance_diff",
	"h2h_dominance",
	"titles_advantage",
}

// Vector is a mapping from feature name to value. Ordering is imposed at
// read time by Ordered, against the model's persisted name list.
type Vector struct {
	values map[string]float64
}

// NewVector builds a vector sized for the given name list.
func NewVector(names []string) Vector {
	return Vector{
		values: make(map[string]float64, len(names)),
	}
}

func (v Vector) set(name string, value float64) {
	v.values[name] = value
}

// Value returns the named feature.
func (v Vector) Value(name string) (float64, bool) {
	x, ok := v.values[name]
	return x, ok
}

// Len returns the number of features in the vector.
func (v Vector) Len() int {
	return len(v.values)
}

// Ordered returns the values in the order of the expected name list,
// failing with ErrSchemaMismatch when the name sets disagree in size or
// membership. This is the guard against silent misalignment between the
// training-time and inference-time schemas.
func (v Vector) Ordered(expected []string) ([]float64, error) {
	if len(expected) != len(v.values) {
		return nil, fmt.Errorf("%w: assembled %d features, model expects %d",
			ErrSchemaMismatch, len(v.values), len(expected))
	}
	out := make([]float64, len(expected))
	for i, name := range expected {
		x, ok := v.values[name]
		if !ok {
			return nil, fmt.Errorf("%w: model expects feature %q which was not assembled",
				ErrSchemaMismatch, name)
		}
		out[i] = x
	}
	return out, nil
}

package feature

import (
	"context"
	"time"

	"github.com/okian/afcon/internal/domain/teamref"
	"github.com/okian/afcon/pkg/metrics"
)

// Fixture identifies one pairing to derive features for. Team names are in
// the display locale; the assembler translates to canonical names before
// querying history. AsOf is the temporal cut: no match dated on or after
// it contributes to any feature.
type Fixture struct {
	Team1      string
	Team2      string
	AsOf       time.Time
	Year       int    // tournament edition, for the host flags
	Tournament string // empty for live bracket fixtures
}

// Assembler merges derived statistics and static context into the ordered
// feature vector the classifier consumes.
type Assembler struct {
	deriver *Deriver
}

// NewAssembler builds an Assembler on top of a Deriver.
func NewAssembler(deriver *Deriver) *Assembler {
	return &Assembler{deriver: deriver}
}

// Assemble computes the full feature set for a fixture. The returned
// vector carries the canonical name order; the caller aligns it to the
// model's persisted list, which is where a schema mismatch surfaces.
func (a *Assembler) Assemble(ctx context.Context, fx Fixture) Vector {
	start := time.Now()
	defer func() {
		metrics.RecordFeatureLatency(float64(time.Since(start).Nanoseconds()) / 1e6)
	}()

	d := a.deriver
	refs := d.Refs()
	policy := d.Policy()

	// History is stored under normalized names; the canonical mapping
	// value alone is not enough (acronym names like "DR Congo" change
	// under title-casing), so the query side normalizes symmetrically.
	hist1 := teamref.Normalize(refs.Canonical(fx.Team1))
	hist2 := teamref.Normalize(refs.Canonical(fx.Team2))

	form1 := d.TeamForm(ctx, hist1, fx.AsOf)
	form2 := d.TeamForm(ctx, hist2, fx.AsOf)
	h2h := d.HeadToHead(ctx, hist1, hist2, fx.AsOf)

	rank1 := refs.Rank(fx.Team1)
	rank2 := refs.Rank(fx.Team2)
	titles1 := refs.Titles(fx.Team1)
	titles2 := refs.Titles(fx.Team2)
	rate1 := d.CANWinRate(fx.Team1)
	rate2 := d.CANWinRate(fx.Team2)

	v := NewVector(Names)
	v.set("fifa_rank_diff", float64(rank1-rank2))
	v.set("team1_last5_points", form1.Points)
	v.set("team2_last5_points", form2.Points)
	v.set("team1_last5_goal_diff", form1.GoalDiff)
	v.set("team2_last5_goal_diff", form2.GoalDiff)
	v.set("team1_can_win_rate", rate1)
	v.set("team2_can_win_rate", rate2)
	v.set("h2h_total_matches", float64(h2h.Total))
	v.set("h2h_team1_win_rate", h2h.WinRate)
	v.set("team1_is_host", boolFlag(refs.IsHost(fx.Team1, fx.Year)))
	v.set("team2_is_host", boolFlag(refs.IsHost(fx.Team2, fx.Year)))
	v.set("stage_group", d.StageFlag(fx.Tournament))
	v.set("days_since_last_match_team1", policy.DaysSinceLastMatch)
	v.set("days_since_last_match_team2", policy.DaysSinceLastMatch)
	v.set("team1_can_titles", float64(titles1))
	v.set("team2_can_titles", float64(titles2))
	v.set("form_momentum_diff", form1.GoalDiff-form2.GoalDiff)
	v.set("can_performance_diff", rate1-rate2)
	v.set("h2h_dominance", h2h.WinRate-0.5)
	v.set("titles_advantage", float64(titles1-titles2))
	return v
}

func boolFlag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

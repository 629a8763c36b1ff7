package feature

import (
	"context"
	"strings"
	"time"

	"github.com/okian/afcon/internal/adapters/repository"
	"github.com/okian/afcon/internal/domain/teamref"
)

// Canonical tournament-name fragments for the stage flag.
const (
	tournamentNameFragment = "african cup of nations"
	tournamentAbbrFragment = "can"
	qualifierFragment      = "qualif"
)

// Form is a team's record over its most recent prior matches.
type Form struct {
	Points   float64 // 3 per win, 1 per draw, 0 per loss
	GoalDiff float64 // average goal differential per match
	Matches  int     // prior matches found, at most the form window
}

// H2H is the head-to-head record between a pair, from team1's perspective.
type H2H struct {
	Total     int
	WinRate   float64
	Defaulted bool // no shared history; WinRate is the neutral default
}

// Deriver computes leakage-safe statistics against a repository snapshot.
// It holds no mutable state.
type Deriver struct {
	store  repository.Store
	refs   *teamref.Table
	policy Policy
}

// NewDeriver builds a Deriver over a snapshot and reference tables.
func NewDeriver(store repository.Store, refs *teamref.Table, policy Policy) *Deriver {
	return &Deriver{store: store, refs: refs, policy: policy}
}

// Policy exposes the deriver's default policy.
func (d *Deriver) Policy() Policy {
	return d.policy
}

// Refs exposes the static reference tables.
func (d *Deriver) Refs() *teamref.Table {
	return d.refs
}

// TeamForm computes last-N form for a team as of a date. team must be a
// canonical (historical-dataset) name. Zero prior matches yields the
// neutral defaults from the policy.
func (d *Deriver) TeamForm(ctx context.Context, team string, asOf time.Time) Form {
	matches := d.store.MatchesBefore(ctx, team, asOf, d.policy.FormWindow)
	if len(matches) == 0 {
		return Form{
			Points:   d.policy.NeutralFormPoints,
			GoalDiff: d.policy.NeutralGoalDiff,
		}
	}
	var points, goalDiff float64
	for _, m := range matches {
		points += float64(m.PointsFor(team))
		goalDiff += float64(m.GoalDiffFor(team))
	}
	return Form{
		Points:   points,
		GoalDiff: goalDiff / float64(len(matches)),
		Matches:  len(matches),
	}
}

// HeadToHead computes the prior record between two canonical team names as
// of a date. A pair with no shared history gets the neutral default rate.
func (d *Deriver) HeadToHead(ctx context.Context, team1, team2 string, asOf time.Time) H2H {
	prior := d.store.HeadToHead(ctx, team1, team2, asOf)
	if len(prior) == 0 {
		return H2H{WinRate: d.policy.DefaultH2HWinRate, Defaulted: true}
	}
	wins := 0
	for _, m := range prior {
		if m.WonBy(team1) {
			wins++
		}
	}
	return H2H{
		Total:   len(prior),
		WinRate: float64(wins) / float64(len(prior)),
	}
}

// StageFlag reports whether a tournament name denotes a main-tournament
// match (1) versus a qualifier or other friendly (0). The tests are
// case-insensitive substring matches; an empty name follows the policy's
// tournament-context assumption.
func (d *Deriver) StageFlag(tournament string) float64 {
	if tournament == "" {
		if d.policy.AssumeTournamentStage {
			return 1
		}
		return 0
	}
	lower := strings.ToLower(tournament)
	isMain := strings.Contains(lower, tournamentNameFragment) ||
		strings.Contains(lower, tournamentAbbrFragment)
	if isMain && !strings.Contains(lower, qualifierFragment) {
		return 1
	}
	return 0
}

// CANWinRate returns a team's tournament win rate under the active policy:
// either the exact historical rate from the reference table or the
// titles-based approximation. name is a display-locale name.
func (d *Deriver) CANWinRate(name string) float64 {
	if d.policy.UseApproxCANRate {
		return d.policy.ApproxCANRateBase +
			d.policy.ApproxCANRatePerTitle*float64(d.refs.Titles(name))
	}
	return d.refs.WinRate(name)
}

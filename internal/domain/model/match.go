// Package model contains domain models passed between layers.
package model

import "time"

// Outcome is a match result from team1's perspective.
type Outcome string

// Result codes. W means team1 won, L means team1 lost.
const (
	Win  Outcome = "W"
	Draw Outcome = "D"
	Loss Outcome = "L"
)

// DeriveOutcome computes the result code from a final score,
// from the home side's perspective.
func DeriveOutcome(homeScore, awayScore int) Outcome {
	switch {
	case homeScore > awayScore:
		return Win
	case homeScore < awayScore:
		return Loss
	default:
		return Draw
	}
}

// Match is one historical fixture. Records are created once during load
// and immutable thereafter; team names are normalized before storage.
type Match struct {
	ID         int
	Date       time.Time
	Team1      string // home side
	Team2      string // away side
	HomeScore  int
	AwayScore  int
	Result     Outcome // from Team1's perspective
	Tournament string
	Stage      string
	Year       int
}

// Involves reports whether team played in this match on either side.
func (m *Match) Involves(team string) bool {
	return m.Team1 == team || m.Team2 == team
}

// PointsFor returns league points (3/1/0) earned by team in this match.
// A loss for Team1 is a win for Team2.
func (m *Match) PointsFor(team string) int {
	var won bool
	switch team {
	case m.Team1:
		won = m.Result == Win
	case m.Team2:
		won = m.Result == Loss
	default:
		return 0
	}
	if won {
		return 3
	}
	if m.Result == Draw {
		return 1
	}
	return 0
}

// GoalDiffFor returns the goal differential from team's perspective.
func (m *Match) GoalDiffFor(team string) int {
	if team == m.Team2 {
		return m.AwayScore - m.HomeScore
	}
	return m.HomeScore - m.AwayScore
}

// WonBy reports whether team won this match outright.
func (m *Match) WonBy(team string) bool {
	return (m.Team1 == team && m.Result == Win) || (m.Team2 == team && m.Result == Loss)
}

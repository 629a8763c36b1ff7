// Package repository defines the historical match store and its loaders.
package repository

import (
	"context"
	"sort"
	"time"

	"github.com/okian/afcon/internal/domain/model"
	"github.com/okian/afcon/pkg/metrics"
)

// IndexStore is the in-memory Store implementation.
//
// Matches are indexed per team and per pair, each sequence sorted by date
// ascending, so "everything strictly before asOf" is a binary-search cut
// rather than a full-table scan.
type IndexStore struct {
	byTeam map[string][]*model.Match
	byPair map[string][]*model.Match
	teams  []string
	total  int
}

// NewIndexStore builds the indexes from a loaded snapshot. The input slice
// is not retained; matches are shared by pointer between indexes.
func NewIndexStore(matches []model.Match) *IndexStore {
	s := &IndexStore{
		byTeam: make(map[string][]*model.Match),
		byPair: make(map[string][]*model.Match),
	}
	ordered := make([]*model.Match, len(matches))
	for i := range matches {
		ordered[i] = &matches[i]
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})
	for _, m := range ordered {
		s.byTeam[m.Team1] = append(s.byTeam[m.Team1], m)
		s.byTeam[m.Team2] = append(s.byTeam[m.Team2], m)
		key := pairKey(m.Team1, m.Team2)
		s.byPair[key] = append(s.byPair[key], m)
	}
	s.teams = make([]string, 0, len(s.byTeam))
	for team := range s.byTeam {
		s.teams = append(s.teams, team)
	}
	sort.Strings(s.teams)
	s.total = len(ordered)
	metrics.UpdateRepositoryMatches(s.total)
	metrics.UpdateRepositoryTeams(len(s.teams))
	return s
}

// pairKey is orientation-independent: (a,b) and (b,a) share one sequence.
func pairKey(a, b string) string {
	if a < b {
		return a + "|" + b
	}
	return b + "|" + a
}

// cutBefore returns the prefix of seq dated strictly before asOf.
// seq must be sorted ascending by date.
func cutBefore(seq []*model.Match, asOf time.Time) []*model.Match {
	n := sort.Search(len(seq), func(i int) bool {
		return !seq[i].Date.Before(asOf)
	})
	return seq[:n]
}

// MatchesBefore implements Store.
func (s *IndexStore) MatchesBefore(ctx context.Context, team string, asOf time.Time, limit int) []*model.Match {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Nanoseconds()) / 1e6)
	}()

	prior := cutBefore(s.byTeam[team], asOf)
	if limit > 0 && len(prior) > limit {
		prior = prior[len(prior)-limit:]
	}
	// Reverse into a copy: callers expect most recent first and the index
	// slices are shared.
	out := make([]*model.Match, len(prior))
	for i, m := range prior {
		out[len(prior)-1-i] = m
	}
	return out
}

// HeadToHead implements Store.
func (s *IndexStore) HeadToHead(ctx context.Context, teamA, teamB string, asOf time.Time) []*model.Match {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Nanoseconds()) / 1e6)
	}()

	prior := cutBefore(s.byPair[pairKey(teamA, teamB)], asOf)
	out := make([]*model.Match, len(prior))
	copy(out, prior)
	return out
}

// Count implements Store.
func (s *IndexStore) Count(ctx context.Context) int {
	return s.total
}

// Teams implements Store.
func (s *IndexStore) Teams(ctx context.Context) []string {
	out := make([]string, len(s.teams))
	copy(out, s.teams)
	return out
}

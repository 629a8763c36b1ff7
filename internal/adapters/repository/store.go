// Package repository defines the historical match store and its loaders.
package repository

import (
	"context"
	"time"

	"github.com/okian/afcon/internal/domain/model"
)

// Store provides read access to the historical match snapshot.
//
// Both query methods are leakage-safe: they never return a match dated on
// or after asOf. The snapshot is read-only for the lifetime of the store;
// ingestion is an offline phase that completes before serving starts.
type Store interface {
	// MatchesBefore returns the limit most recent matches strictly before
	// asOf in which team appeared on either side, ordered by date
	// descending. limit <= 0 means no cap.
	MatchesBefore(ctx context.Context, team string, asOf time.Time, limit int) []*model.Match

	// HeadToHead returns all matches strictly before asOf between exactly
	// this pair of teams, in either home/away orientation, ordered by date
	// ascending.
	HeadToHead(ctx context.Context, teamA, teamB string, asOf time.Time) []*model.Match

	// Count returns the number of matches in the snapshot.
	Count(ctx context.Context) int

	// Teams returns the distinct normalized team names in the snapshot.
	Teams(ctx context.Context) []string
}

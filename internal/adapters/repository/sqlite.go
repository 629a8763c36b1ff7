package repository

import (
	"database/sql"
	"fmt"

	"github.com/okian/afcon/internal/domain/model"
	"github.com/okian/afcon/internal/domain/teamref"

	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver
)

// LoadSQLite reads the match snapshot from a SQLite database written by the
// cleaning pipeline. The matches table carries the same column contract as
// the CSV export.
func LoadSQLite(path string) ([]model.Match, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenSnapshot, err)
	}
	defer db.Close()

	rows, err := db.Query(`
		SELECT match_id, date, team1, team2, home_score, away_score,
		       COALESCE(tournament, ''), COALESCE(stage, ''), COALESCE(year, 0)
		FROM matches
		WHERE home_score IS NOT NULL AND away_score IS NOT NULL
		ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenSnapshot, err)
	}
	defer rows.Close()

	var matches []model.Match
	for rows.Next() {
		var (
			m       model.Match
			dateRaw string
		)
		if err := rows.Scan(&m.ID, &dateRaw, &m.Team1, &m.Team2,
			&m.HomeScore, &m.AwayScore, &m.Tournament, &m.Stage, &m.Year); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadRecord, err)
		}
		date, err := parseDate(dateRaw)
		if err != nil {
			return nil, fmt.Errorf("%w: match %d: %w", ErrBadRecord, m.ID, err)
		}
		m.Date = date
		m.Team1 = teamref.Normalize(m.Team1)
		m.Team2 = teamref.Normalize(m.Team2)
		m.Result = model.DeriveOutcome(m.HomeScore, m.AwayScore)
		if m.Year == 0 {
			m.Year = date.Year()
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadRecord, err)
	}
	return matches, nil
}

package repository

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/okian/afcon/internal/domain/model"
	"github.com/okian/afcon/internal/domain/teamref"
)

// Accepted date layouts in the cleaned snapshot, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
}

// LoadCSV reads the finalized match table produced by the cleaning
// pipeline. The header row is required; column order is free. team1/team2
// and home_team/away_team are accepted interchangeably.
//
// Rows without scores carry no result signal and are skipped, as are
// penalty-shootout decisions (the ninety-minute result is a draw and the
// shootout outcome would leak a false W/L code).
func LoadCSV(path string) ([]model.Match, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenSnapshot, err)
	}
	defer f.Close()
	return readCSV(f)
}

func readCSV(r io.Reader) ([]model.Match, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %w", ErrOpenSnapshot, err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}

	field := func(row []string, names ...string) (string, bool) {
		for _, n := range names {
			if i, ok := col[n]; ok && i < len(row) {
				return strings.TrimSpace(row[i]), true
			}
		}
		return "", false
	}

	for _, required := range [][]string{
		{"date"},
		{"team1", "home_team"},
		{"team2", "away_team"},
		{"home_score"},
		{"away_score"},
	} {
		found := false
		for _, n := range required {
			if _, ok := col[n]; ok {
				found = true
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required[0])
		}
	}

	var matches []model.Match
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrBadRecord, line, err)
		}

		if special, ok := field(row, "specialwinconditions", "special_win_conditions"); ok {
			if strings.Contains(strings.ToLower(special), "penalt") {
				continue
			}
		}

		homeRaw, _ := field(row, "home_score")
		awayRaw, _ := field(row, "away_score")
		if homeRaw == "" || awayRaw == "" {
			continue
		}
		home, err := strconv.Atoi(homeRaw)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: home_score %q", ErrBadRecord, line, homeRaw)
		}
		away, err := strconv.Atoi(awayRaw)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: away_score %q", ErrBadRecord, line, awayRaw)
		}

		dateRaw, _ := field(row, "date")
		date, err := parseDate(dateRaw)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: date %q", ErrBadRecord, line, dateRaw)
		}

		team1, _ := field(row, "team1", "home_team")
		team2, _ := field(row, "team2", "away_team")
		if team1 == "" || team2 == "" {
			return nil, fmt.Errorf("%w: line %d: empty team name", ErrBadRecord, line)
		}

		m := model.Match{
			Date:      date,
			Team1:     teamref.Normalize(team1),
			Team2:     teamref.Normalize(team2),
			HomeScore: home,
			AwayScore: away,
			Result:    model.DeriveOutcome(home, away),
			Year:      date.Year(),
		}
		if v, ok := field(row, "result"); ok && v != "" {
			if model.Outcome(v) != m.Result {
				return nil, fmt.Errorf("%w: line %d: result %q inconsistent with score %d-%d",
					ErrBadRecord, line, v, home, away)
			}
		}
		if v, ok := field(row, "match_id"); ok && v != "" {
			if id, err := strconv.Atoi(v); err == nil {
				m.ID = id
			}
		}
		if m.ID == 0 {
			m.ID = len(matches) + 1
		}
		if v, ok := field(row, "tournament"); ok {
			m.Tournament = v
		}
		if v, ok := field(row, "stage"); ok {
			m.Stage = v
		}
		if v, ok := field(row, "year"); ok && v != "" {
			if y, err := strconv.Atoi(v); err == nil {
				m.Year = y
			}
		}
		matches = append(matches, m)
	}
	return matches, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// Package teamref holds the static reference data used for prediction
// context: FIFA rankings, continental titles, tournament hosts and the
// display/canonical team-name mapping.
//
// Every lookup falls back to a configured default when the team is absent.
// Unknown teams must never fail a request; they are anchored to neutral
// context values instead.
package teamref

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Fallbacks applied when a team is missing from the static tables.
const (
	defaultFifaRank   = 100
	defaultCANWinRate = 0.35
	defaultCANTitles  = 0
)

var titleCaser = cases.Title(language.Und)

// Normalize canonicalizes a team name: trimmed and title-cased.
// The historical dataset is normalized the same way at load time, so
// equality on normalized names is exact.
func Normalize(name string) string {
	return titleCaser.String(strings.TrimSpace(name))
}

// Table bundles the static context tables. Construct once at startup and
// treat as read-only.
type Table struct {
	ranks    map[string]int
	titles   map[string]int
	winRates map[string]float64
	hosts    map[int][]string // tournament year -> canonical host names (co-hosts possible)
	toCanon  map[string]string
	toLocal  map[string]string

	defaultRank    int
	defaultWinRate float64
	defaultTitles  int
}

// Option applies a configuration option to the Table.
type Option func(*Table)

// WithRanks replaces the FIFA ranking table (display-locale keys).
func WithRanks(ranks map[string]int) Option {
	return func(t *Table) {
		if len(ranks) > 0 {
			t.ranks = ranks
		}
	}
}

// WithTitles replaces the continental-titles table (display-locale keys).
func WithTitles(titles map[string]int) Option {
	return func(t *Table) {
		if len(titles) > 0 {
			t.titles = titles
		}
	}
}

// WithWinRates sets historical tournament win rates per team.
func WithWinRates(rates map[string]float64) Option {
	return func(t *Table) {
		if len(rates) > 0 {
			t.winRates = rates
		}
	}
}

// WithHosts replaces the per-year hosts table (canonical names).
func WithHosts(hosts map[int][]string) Option {
	return func(t *Table) {
		if len(hosts) > 0 {
			t.hosts = hosts
		}
	}
}

// WithNameMapping replaces the display->canonical name mapping. The
// reverse direction is derived.
func WithNameMapping(mapping map[string]string) Option {
	return func(t *Table) {
		if len(mapping) == 0 {
			return
		}
		t.toCanon = mapping
		t.toLocal = make(map[string]string, len(mapping))
		for local, canon := range mapping {
			t.toLocal[canon] = local
		}
	}
}

// WithDefaults overrides the default-on-miss values.
func WithDefaults(rank int, winRate float64, titles int) Option {
	return func(t *Table) {
		if rank > 0 {
			t.defaultRank = rank
		}
		if winRate > 0 {
			t.defaultWinRate = winRate
		}
		if titles >= 0 {
			t.defaultTitles = titles
		}
	}
}

// New builds a Table with the embedded default data, then applies options.
func New(opts ...Option) *Table {
	t := &Table{
		ranks:          defaultRankTable(),
		titles:         defaultTitleTable(),
		winRates:       map[string]float64{},
		hosts:          defaultHostTable(),
		defaultRank:    defaultFifaRank,
		defaultWinRate: defaultCANWinRate,
		defaultTitles:  defaultCANTitles,
	}
	WithNameMapping(defaultNameMapping())(t)
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Canonical translates a display-locale name to the canonical
// historical-dataset name. Unmapped names pass through unchanged.
func (t *Table) Canonical(name string) string {
	if canon, ok := t.toCanon[name]; ok {
		return canon
	}
	return name
}

// Display translates a canonical name back to the display locale.
func (t *Table) Display(name string) string {
	if local, ok := t.toLocal[name]; ok {
		return local
	}
	return name
}

// Known reports whether the team appears in any static table or the
// name mapping. Callers use this to surface an unknown-team warning
// while still proceeding on defaults.
func (t *Table) Known(name string) bool {
	if _, ok := t.toCanon[name]; ok {
		return true
	}
	if _, ok := t.ranks[name]; ok {
		return true
	}
	_, ok := t.titles[name]
	return ok
}

// Rank returns the FIFA rank for a team; lower is stronger.
func (t *Table) Rank(name string) int {
	if r, ok := t.ranks[name]; ok {
		return r
	}
	return t.defaultRank
}

// Titles returns the number of continental titles held by a team.
func (t *Table) Titles(name string) int {
	if n, ok := t.titles[name]; ok {
		return n
	}
	return t.defaultTitles
}

// WinRate returns the historical tournament win rate for a team.
func (t *Table) WinRate(name string) float64 {
	if r, ok := t.winRates[name]; ok {
		return r
	}
	return t.defaultWinRate
}

// IsHost reports whether the team (display or canonical name) hosts the
// tournament in the given year. Co-hosted editions list several teams.
func (t *Table) IsHost(name string, year int) bool {
	hosts, ok := t.hosts[year]
	if !ok {
		return false
	}
	canon := t.Canonical(name)
	for _, h := range hosts {
		if h == name || h == canon {
			return true
		}
	}
	return false
}

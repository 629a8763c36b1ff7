package loadtest

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/okian/afcon/pkg/logger"
)

// teamPool lists the display-locale team names the service ships static
// context for. Pairings drawn from it exercise the full table; the last
// two entries are deliberately absent from the tables to exercise the
// default-on-miss path.
var teamPool = []string{
	"Maroc",
	"Sénégal",
	"Égypte",
	"Côte d'Ivoire",
	"Nigeria",
	"Tunisie",
	"Algérie",
	"Cameroun",
	"Mali",
	"Afrique du Sud",
	"RD Congo",
	"Burkina Faso",
	"Bénin",
	"Tanzanie",
	"Mozambique",
	"Soudan",
	"Madagascar",
	"Comores",
}

// randomIndex returns a random index below n using crypto/rand.
func randomIndex(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// generateFixtures creates the specified number of distinct-team pairings.
func generateFixtures(ctx context.Context, config *Config, stats *Stats) ([]Fixture, error) {
	logger.Get().Info(ctx, "generating fixtures", logger.Int("numFixtures", config.NumFixtures))

	fixtures := make([]Fixture, 0, config.NumFixtures)
	for i := 0; i < config.NumFixtures; i++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during fixture generation: %w", ctx.Err())
		default:
		}
		fixtures = append(fixtures, generateSingleFixture())
	}

	stats.FixturesGenerated = len(fixtures)
	logger.Get().Info(ctx, "generated fixtures successfully", logger.Int("count", len(fixtures)))

	return fixtures, nil
}

// generateSingleFixture draws a pairing of two distinct teams.
func generateSingleFixture() Fixture {
	i := randomIndex(len(teamPool))
	j := randomIndex(len(teamPool) - 1)
	if j >= i {
		j++
	}
	return Fixture{Team1: teamPool[i], Team2: teamPool[j]}
}

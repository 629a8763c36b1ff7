package loadtest

import (
	"fmt"
	"log"
	"math"
)

// verifyPredictions checks the served contract on every successful
// prediction: percentages that sum to roughly one hundred, a confidence
// equal to the strongest outcome, and a winner consistent with it.
func verifyPredictions(fixtures []Fixture, predictions []Prediction, stats *Stats) {
	log.Println("🔍 Verifying predictions...")

	invalid := 0
	for i, p := range predictions {
		if p.Winner == "" {
			continue // failed request, already counted
		}
		if err := verifySinglePrediction(fixtures[i], p); err != nil {
			invalid++
			log.Printf("⚠️  Invalid prediction for %s vs %s: %v",
				fixtures[i].Team1, fixtures[i].Team2, err)
		}
	}

	stats.PredictionsInvalid = invalid
	if invalid == 0 {
		log.Println("✅ All predictions satisfy the serving contract")
	} else {
		log.Printf("⚠️  %d predictions violate the serving contract", invalid)
	}
}

// verifySinglePrediction validates one prediction against its fixture.
func verifySinglePrediction(fx Fixture, p Prediction) error {
	sum := p.Team1WinProb + p.DrawProb + p.Team2WinProb
	if math.Abs(sum-PercentageMultiplier) > ProbabilityTolerance {
		return fmt.Errorf("probabilities sum to %.2f", sum)
	}

	top := math.Max(p.Team1WinProb, math.Max(p.DrawProb, p.Team2WinProb))
	if p.Confidence != top {
		return fmt.Errorf("confidence %.1f does not match strongest outcome %.1f", p.Confidence, top)
	}

	switch p.Winner {
	case fx.Team1, fx.Team2, "draw":
	default:
		return fmt.Errorf("winner %q names neither side", p.Winner)
	}
	return nil
}

// verifySimulation checks the structural invariants of a bracket run:
// rounds halve down to a single fixture and every winner comes from its
// own pairing, the champion from the last.
func verifySimulation(result SimulationResult) error {
	log.Println("🔍 Verifying simulation structure...")

	if len(result.Rounds) == 0 {
		return fmt.Errorf("no rounds in result")
	}

	expected := len(result.Rounds[0].Fixtures)
	for _, round := range result.Rounds {
		if len(round.Fixtures) != expected {
			return fmt.Errorf("round %d has %d fixtures, expected %d",
				round.Index, len(round.Fixtures), expected)
		}
		for _, fr := range round.Fixtures {
			if fr.Winner != fr.TeamA && fr.Winner != fr.TeamB {
				return fmt.Errorf("round %d: winner %q played neither side of %s vs %s",
					round.Index, fr.Winner, fr.TeamA, fr.TeamB)
			}
		}
		expected /= 2
	}

	final := result.Rounds[len(result.Rounds)-1]
	if len(final.Fixtures) != 1 {
		return fmt.Errorf("final round has %d fixtures", len(final.Fixtures))
	}
	if result.Champion != final.Fixtures[0].Winner {
		return fmt.Errorf("champion %q does not match final winner %q",
			result.Champion, final.Fixtures[0].Winner)
	}

	log.Println("✅ Simulation structure verified")
	return nil
}

// displayTopWinners shows the most frequently predicted winners.
func displayTopWinners(predictions []Prediction, verbose bool) {
	wins := make(map[string]int)
	for _, p := range predictions {
		if p.Winner != "" && p.Winner != "draw" {
			wins[p.Winner]++
		}
	}
	if len(wins) == 0 {
		return
	}

	log.Println("🏆 Predicted winners by frequency:")
	for team, count := range wins {
		log.Printf("   %s: %d", team, count)
	}

	if verbose {
		var sum float64
		n := 0
		for _, p := range predictions {
			if p.Winner != "" {
				sum += p.Confidence
				n++
			}
		}
		if n > 0 {
			log.Printf("📊 Average confidence: %.1f%%", sum/float64(n))
		}
	}
}

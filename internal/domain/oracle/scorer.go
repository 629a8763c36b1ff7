package oracle

import (
	"context"
	"fmt"
	"math"

	"github.com/okian/afcon/internal/domain/feature"
	"github.com/okian/afcon/internal/domain/model"
)

// DrawSentinel is the winner value when neither team is predicted to win.
const DrawSentinel = "Draw"

// probTolerance bounds the acceptable drift of a distribution's sum from 1.
const probTolerance = 1e-6

// classPriority fixes the tie-break order between equal probabilities.
// This mirrors the scorer's implicit class index order and is a documented
// policy, not an accident of map iteration.
var classPriority = []model.Outcome{model.Win, model.Draw, model.Loss}

// Distribution holds outcome probabilities from team1's perspective.
type Distribution struct {
	Win  float64 // team1 wins
	Draw float64
	Loss float64 // team2 wins
}

// Of returns the probability of a result code.
func (d Distribution) Of(o model.Outcome) float64 {
	switch o {
	case model.Win:
		return d.Win
	case model.Loss:
		return d.Loss
	default:
		return d.Draw
	}
}

// Validate checks that each probability lies in [0,1] and the three sum to
// one within tolerance.
func (d Distribution) Validate() error {
	for _, p := range []float64{d.Win, d.Draw, d.Loss} {
		if p < 0 || p > 1 || math.IsNaN(p) {
			return fmt.Errorf("%w: probability %v outside [0,1]", ErrInvalidDistribution, p)
		}
	}
	if sum := d.Win + d.Draw + d.Loss; math.Abs(sum-1) > probTolerance {
		return fmt.Errorf("%w: probabilities sum to %v", ErrInvalidDistribution, sum)
	}
	return nil
}

// Outcome returns the class with the strictly highest probability; exact
// ties resolve by the fixed class priority Win > Draw > Loss.
func (d Distribution) Outcome() model.Outcome {
	best := classPriority[0]
	for _, c := range classPriority[1:] {
		if d.Of(c) > d.Of(best) {
			best = c
		}
	}
	return best
}

// WinnerName maps the predicted outcome back to a team identity, or the
// draw sentinel.
func (d Distribution) WinnerName(team1, team2 string) string {
	switch d.Outcome() {
	case model.Win:
		return team1
	case model.Loss:
		return team2
	default:
		return DrawSentinel
	}
}

// Scorer is the scored-probability oracle contract.
type Scorer interface {
	Predict(ctx context.Context, v feature.Vector) (Distribution, error)
}

// ScorerFunc adapts a function to the Scorer interface.
type ScorerFunc func(ctx context.Context, v feature.Vector) (Distribution, error)

// Predict implements Scorer.
func (f ScorerFunc) Predict(ctx context.Context, v feature.Vector) (Distribution, error) {
	return f(ctx, v)
}

// Adapter scores a feature vector with the loaded bundle: align to the
// persisted feature order, standardize, apply the linear classifier,
// softmax the class scores.
type Adapter struct {
	bundle *Bundle
}

// NewAdapter wraps an already loaded bundle.
func NewAdapter(bundle *Bundle) *Adapter {
	return &Adapter{bundle: bundle}
}

// Predict implements Scorer.
func (a *Adapter) Predict(ctx context.Context, v feature.Vector) (Distribution, error) {
	x, err := v.Ordered(a.bundle.FeatureNames)
	if err != nil {
		return Distribution{}, err
	}

	for i := range x {
		scale := a.bundle.Scaler.Scale[i]
		if scale == 0 {
			// Zero-variance feature at training time; standardized value
			// carries no signal either way.
			x[i] = 0
			continue
		}
		x[i] = (x[i] - a.bundle.Scaler.Mean[i]) / scale
	}

	scores := make([]float64, len(a.bundle.Classes))
	for c, row := range a.bundle.Coefficients() {
		s := a.bundle.Model.Intercepts[c]
		for i, w := range row {
			s += w * x[i]
		}
		scores[c] = s
	}

	probs := softmax(scores)
	var d Distribution
	for c, class := range a.bundle.Classes {
		switch class {
		case model.Win:
			d.Win = probs[c]
		case model.Draw:
			d.Draw = probs[c]
		case model.Loss:
			d.Loss = probs[c]
		}
	}
	if err := d.Validate(); err != nil {
		return Distribution{}, err
	}
	return d, nil
}

// Coefficients exposes the weight rows in class order.
func (b *Bundle) Coefficients() [][]float64 {
	return b.Model.Coefficients
}

// softmax converts raw class scores into a probability distribution,
// shifted by the max score for numeric stability.
func softmax(scores []float64) []float64 {
	maxScore := scores[0]
	for _, s := range scores[1:] {
		if s > maxScore {
			maxScore = s
		}
	}
	exp := make([]float64, len(scores))
	var sum float64
	for i, s := range scores {
		exp[i] = math.Exp(s - maxScore)
		sum += exp[i]
	}
	for i := range exp {
		exp[i] /= sum
	}
	return exp
}

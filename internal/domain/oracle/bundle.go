// Package oracle wraps the externally trained match classifier behind a
// scored-probability interface. The trained artifacts are loaded once at
// startup into an immutable Bundle and injected where needed; there is no
// module-level model state.
package oracle

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/okian/afcon/internal/domain/feature"
	"github.com/okian/afcon/internal/domain/model"
)

// Artifact file names inside the model directory.
const (
	featureNamesFile = "feature_names.json"
	scalerFile       = "scaler.json"
	modelFile        = "model.json"
	labelEncoderFile = "label_encoder.json"
)

// Scaler standardizes a feature vector: (x - Mean) / Scale, per feature.
type Scaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// LinearModel is the persisted classifier: one weight row and intercept
// per class, scored by softmax over the linear outputs. Row order follows
// the label encoder's class order.
type LinearModel struct {
	Coefficients [][]float64 `json:"coefficients"`
	Intercepts   []float64   `json:"intercepts"`
}

// labelEncoder maps classifier row indices to result codes.
type labelEncoder struct {
	Classes []model.Outcome `json:"classes"`
}

// Bundle is the immutable set of trained artifacts. FeatureNames is the
// source of truth for vector order at prediction time.
type Bundle struct {
	FeatureNames []string
	Scaler       Scaler
	Model        LinearModel
	Classes      []model.Outcome
}

// LoadBundle reads and cross-validates the four artifacts from dir. A
// missing file is ErrModelArtifactMissing; artifacts that disagree about
// dimensions are a feature.ErrSchemaMismatch.
func LoadBundle(dir string) (*Bundle, error) {
	b := &Bundle{}
	if err := readArtifact(dir, featureNamesFile, &b.FeatureNames); err != nil {
		return nil, err
	}
	if err := readArtifact(dir, scalerFile, &b.Scaler); err != nil {
		return nil, err
	}
	if err := readArtifact(dir, modelFile, &b.Model); err != nil {
		return nil, err
	}
	var enc labelEncoder
	if err := readArtifact(dir, labelEncoderFile, &enc); err != nil {
		return nil, err
	}
	b.Classes = enc.Classes

	if err := b.validate(); err != nil {
		return nil, err
	}
	return b, nil
}

func readArtifact(dir, name string, out any) error {
	raw, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrModelArtifactMissing, name, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrModelArtifactMissing, name, err)
	}
	return nil
}

func (b *Bundle) validate() error {
	n := len(b.FeatureNames)
	if n == 0 {
		return fmt.Errorf("%w: empty feature-name list", feature.ErrSchemaMismatch)
	}
	if len(b.Scaler.Mean) != n || len(b.Scaler.Scale) != n {
		return fmt.Errorf("%w: scaler covers %d/%d features, expected %d",
			feature.ErrSchemaMismatch, len(b.Scaler.Mean), len(b.Scaler.Scale), n)
	}
	if len(b.Classes) == 0 {
		return fmt.Errorf("%w: label encoder has no classes", feature.ErrSchemaMismatch)
	}
	if len(b.Model.Coefficients) != len(b.Classes) || len(b.Model.Intercepts) != len(b.Classes) {
		return fmt.Errorf("%w: model has %d weight rows and %d intercepts for %d classes",
			feature.ErrSchemaMismatch, len(b.Model.Coefficients), len(b.Model.Intercepts), len(b.Classes))
	}
	for i, row := range b.Model.Coefficients {
		if len(row) != n {
			return fmt.Errorf("%w: weight row %d has %d coefficients, expected %d",
				feature.ErrSchemaMismatch, i, len(row), n)
		}
	}
	return nil
}

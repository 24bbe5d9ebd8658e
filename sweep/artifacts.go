package sweep

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/Mathildevib/DAKI2-grp3-final/calibrate"
	"github.com/Mathildevib/DAKI2-grp3-final/features"
	"github.com/Mathildevib/DAKI2-grp3-final/labels"
	"github.com/Mathildevib/DAKI2-grp3-final/quantity"
	"github.com/Mathildevib/DAKI2-grp3-final/ranking"
	"github.com/Mathildevib/DAKI2-grp3-final/serialization"
)

// Artifact file names inside an export directory. The four files belong
// together; mixing files from different runs is undefined.
const (
	TransformerFile = "transformer.json.gz"
	PresenceFile    = "presence.json.gz"
	SpaceFile       = "labelspace.json"
	QuantityFile    = "quantity.json.gz"
)

// Artifacts are the exportable outcome of a training run. The model maps are
// keyed by label index; the Space is the single authority translating
// indices to part identifiers.
type Artifacts struct {
	Transformer *features.Transformer
	Presence    map[int]*calibrate.Model
	Space       *labels.Space
	Quantity    map[int]*quantity.Model
}

// Save writes the four artifact files into dir, creating it if needed.
func (a *Artifacts) Save(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "error creating %s", dir)
	}
	if err := serialization.Encode(filepath.Join(dir, TransformerFile), a.Transformer); err != nil {
		return err
	}
	if err := serialization.Encode(filepath.Join(dir, PresenceFile), a.Presence); err != nil {
		return err
	}
	if err := serialization.Encode(filepath.Join(dir, SpaceFile), a.Space); err != nil {
		return err
	}
	return serialization.Encode(filepath.Join(dir, QuantityFile), a.Quantity)
}

// LoadArtifacts reads a saved artifact directory.
func LoadArtifacts(dir string) (*Artifacts, error) {
	var a Artifacts
	if err := serialization.Decode(filepath.Join(dir, TransformerFile), &a.Transformer); err != nil {
		return nil, err
	}
	if err := serialization.Decode(filepath.Join(dir, PresenceFile), &a.Presence); err != nil {
		return nil, err
	}
	if err := serialization.Decode(filepath.Join(dir, SpaceFile), &a.Space); err != nil {
		return nil, err
	}
	if err := serialization.Decode(filepath.Join(dir, QuantityFile), &a.Quantity); err != nil {
		return nil, err
	}
	return &a, nil
}

// Recommendation is one ranked part suggestion.
type Recommendation struct {
	Part        string
	Probability float64
	Quantity    int
}

// Predict applies the artifacts to one preprocessed instruction and asset
// category: transform, per-label presence probability, top-k selection,
// per-label quantity with the zero-quantity safeguard.
func (a *Artifacts) Predict(instruction, asset string, k int) []Recommendation {
	x := a.Transformer.Transform(instruction, asset)

	proba := make([]float64, a.Space.Len())
	for l, m := range a.Presence {
		proba[l] = m.PredictProba(x)
	}

	var recs []Recommendation
	for _, l := range ranking.TopK(proba, k) {
		q := 0
		if m, ok := a.Quantity[l]; ok {
			q = m.Predict(x)
		}
		if q == 0 {
			q = 1
		}
		recs = append(recs, Recommendation{
			Part:        a.Space.Label(l),
			Probability: proba[l],
			Quantity:    q,
		})
	}
	return recs
}

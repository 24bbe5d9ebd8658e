package calibrate

import (
	"math/rand"

	"github.com/pkg/errors"

	"github.com/Mathildevib/DAKI2-grp3-final/sparse"
	"github.com/Mathildevib/DAKI2-grp3-final/svm"
)

// Outcome reports which calibration path produced a model.
type Outcome string

const (
	// OutcomeCalibrated is the cross-validated ensemble path.
	OutcomeCalibrated Outcome = "calibrated"
	// OutcomeFallback means stratified sub-splitting was infeasible and the
	// sigmoid was fitted on the already-trained classifier's own decisions.
	OutcomeFallback Outcome = "fallback"
)

// Member pairs one base classifier with the sigmoid fitted to its held-out
// decision values.
type Member struct {
	Base    *svm.Classifier `json:"base"`
	Sigmoid Sigmoid         `json:"sigmoid"`
}

// Model is a calibrated binary presence classifier.
type Model struct {
	Outcome Outcome  `json:"outcome"`
	Members []Member `json:"members"`
}

// PredictProba averages the member probabilities for x.
func (m *Model) PredictProba(x sparse.Vector) float64 {
	var sum float64
	for _, mem := range m.Members {
		sum += mem.Sigmoid.Evaluate(mem.Base.Decision(x))
	}
	return sum / float64(len(m.Members))
}

// Fit trains a presence classifier and calibrates its decision values into
// probabilities. Preferred path: split (X, y) into subfolds stratified folds,
// train a fresh classifier per fold on the complement, fit its sigmoid on the
// held-out decisions, and predict with the member average. When either class
// has fewer rows than subfolds that split is infeasible, and the sigmoid is
// fitted directly on the full classifier's training decisions instead. With
// no rows or a single presence value there is nothing left to degrade to and
// Fit returns an error.
func Fit(X []sparse.Vector, y []int, numFeatures int, base svm.Options, subfolds int, seed int64) (*Model, error) {
	if len(X) == 0 {
		return nil, errors.New("calibration needs training rows")
	}
	var pos, neg int
	for _, v := range y {
		if v == 1 {
			pos++
		} else {
			neg++
		}
	}
	if pos == 0 || neg == 0 {
		return nil, errors.Errorf("calibration needs both presence values, have %d positive of %d rows", pos, len(y))
	}

	full := svm.Train(X, y, numFeatures, base)

	if pos < subfolds || neg < subfolds {
		sigmoid := fitSigmoid(decisions(full, X), y)
		return &Model{
			Outcome: OutcomeFallback,
			Members: []Member{{Base: full, Sigmoid: sigmoid}},
		}, nil
	}

	folds := stratifiedFolds(y, subfolds, seed)
	members := make([]Member, 0, subfolds)
	for f := 0; f < subfolds; f++ {
		var trainX, heldX []sparse.Vector
		var trainY, heldY []int
		for i := range X {
			if folds[i] == f {
				heldX = append(heldX, X[i])
				heldY = append(heldY, y[i])
			} else {
				trainX = append(trainX, X[i])
				trainY = append(trainY, y[i])
			}
		}
		member := svm.Train(trainX, trainY, numFeatures, base)
		sigmoid := fitSigmoid(decisions(member, heldX), heldY)
		members = append(members, Member{Base: member, Sigmoid: sigmoid})
	}
	return &Model{Outcome: OutcomeCalibrated, Members: members}, nil
}

func decisions(c *svm.Classifier, X []sparse.Vector) []float64 {
	scores := make([]float64, len(X))
	for i, x := range X {
		scores[i] = c.Decision(x)
	}
	return scores
}

// stratifiedFolds deals each class's rows round-robin across k folds after a
// seeded shuffle, so every fold holds rows of both classes whenever each
// class has at least k rows.
func stratifiedFolds(y []int, k int, seed int64) []int {
	rng := rand.New(rand.NewSource(seed))
	folds := make([]int, len(y))
	for _, class := range []int{0, 1} {
		var idx []int
		for i, v := range y {
			if v == class {
				idx = append(idx, i)
			}
		}
		rng.Shuffle(len(idx), func(i, j int) {
			idx[i], idx[j] = idx[j], idx[i]
		})
		for j, i := range idx {
			folds[i] = j % k
		}
	}
	return folds
}

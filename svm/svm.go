package svm

import (
	"math"
	"math/rand"

	"github.com/Mathildevib/DAKI2-grp3-final/sparse"
)

// Options configure training of a linear classifier.
type Options struct {
	// C is the misclassification cost.
	C float64
	// Tol stops the optimizer once the largest projected gradient of a pass
	// falls below it.
	Tol float64
	// MaxIter is a hard cap on optimizer passes. Training always terminates,
	// converged or not.
	MaxIter int
	// Seed drives the coordinate permutation each pass.
	Seed int64
}

// Classifier is a binary linear max-margin classifier. The decision value is
// Weights·x + Bias; positive means the positive class.
type Classifier struct {
	Weights []float64 `json:"weights"`
	Bias    float64   `json:"bias"`
}

// Decision returns the signed distance proxy of x to the separating plane.
func (c *Classifier) Decision(x sparse.Vector) float64 {
	return x.Dot(c.Weights) + c.Bias
}

// Train fits a binary classifier with L2-regularized squared hinge loss by
// dual coordinate descent. y holds 0/1 presence values; both values must
// occur. The bias is trained as an implicit always-one feature. Deterministic
// for a fixed (X, y, opts).
func Train(X []sparse.Vector, y []int, numFeatures int, opts Options) *Classifier {
	n := len(X)
	w := make([]float64, numFeatures)
	var bias float64

	// diagonal term that turns the dual into the squared-hinge form
	diag := 1 / (2 * opts.C)

	signs := make([]float64, n)
	qii := make([]float64, n)
	for i, x := range X {
		signs[i] = float64(2*y[i] - 1)
		qii[i] = x.SquaredNorm() + 1 + diag
	}

	alpha := make([]float64, n)
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	for iter := 0; iter < opts.MaxIter; iter++ {
		rng.Shuffle(n, func(i, j int) {
			perm[i], perm[j] = perm[j], perm[i]
		})

		var maxViolation float64
		for _, i := range perm {
			yi := signs[i]
			g := yi*(X[i].Dot(w)+bias) - 1 + diag*alpha[i]

			pg := g
			if alpha[i] == 0 && g > 0 {
				pg = 0
			}
			if v := math.Abs(pg); v > maxViolation {
				maxViolation = v
			}
			if pg == 0 {
				continue
			}

			old := alpha[i]
			alpha[i] = math.Max(old-g/qii[i], 0)
			if d := (alpha[i] - old) * yi; d != 0 {
				X[i].AddTo(w, d)
				bias += d
			}
		}

		if maxViolation < opts.Tol {
			break
		}
	}

	return &Classifier{Weights: w, Bias: bias}
}

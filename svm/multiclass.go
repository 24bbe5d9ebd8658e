package svm

import (
	"sort"

	"github.com/Mathildevib/DAKI2-grp3-final/sparse"
)

// Multiclass is a one-vs-rest ensemble over a discrete class set, used for
// quantity prediction. Classes are ascending; prediction never leaves the
// observed set.
type Multiclass struct {
	Classes []int `json:"classes"`
	// Classifiers runs parallel to Classes, except with exactly two classes,
	// where a single classifier separates Classes[1] (positive) from
	// Classes[0].
	Classifiers []*Classifier `json:"classifiers"`
}

// TrainMulticlass fits one-vs-rest classifiers for the distinct values in y.
func TrainMulticlass(X []sparse.Vector, y []int, numFeatures int, opts Options) *Multiclass {
	seen := make(map[int]bool)
	for _, v := range y {
		seen[v] = true
	}
	classes := make([]int, 0, len(seen))
	for v := range seen {
		classes = append(classes, v)
	}
	sort.Ints(classes)

	m := &Multiclass{Classes: classes}
	switch len(classes) {
	case 1:
		// degenerate; Predict falls back to the single class
	case 2:
		m.Classifiers = []*Classifier{Train(X, binarize(y, classes[1]), numFeatures, opts)}
	default:
		for _, c := range classes {
			m.Classifiers = append(m.Classifiers, Train(X, binarize(y, c), numFeatures, opts))
		}
	}
	return m
}

// Predict returns the class with the highest decision value; ties go to the
// lowest class.
func (m *Multiclass) Predict(x sparse.Vector) int {
	switch len(m.Classifiers) {
	case 0:
		return m.Classes[0]
	case 1:
		if m.Classifiers[0].Decision(x) > 0 {
			return m.Classes[1]
		}
		return m.Classes[0]
	}

	best := 0
	bestScore := m.Classifiers[0].Decision(x)
	for i := 1; i < len(m.Classifiers); i++ {
		if score := m.Classifiers[i].Decision(x); score > bestScore {
			best = i
			bestScore = score
		}
	}
	return m.Classes[best]
}

func binarize(y []int, positive int) []int {
	out := make([]int, len(y))
	for i, v := range y {
		if v == positive {
			out[i] = 1
		}
	}
	return out
}

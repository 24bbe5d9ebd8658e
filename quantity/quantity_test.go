package quantity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mathildevib/DAKI2-grp3-final/labels"
	"github.com/Mathildevib/DAKI2-grp3-final/sparse"
	"github.com/Mathildevib/DAKI2-grp3-final/svm"
)

func testOptions() Options {
	return Options{
		Base:    svm.Options{C: 1, Tol: 1e-4, MaxIter: 1000},
		MinRows: 3,
		Seed:    42,
		Workers: 2,
	}
}

func point(coords ...float64) sparse.Vector {
	var v sparse.Vector
	for i, c := range coords {
		if c != 0 {
			v = append(v, sparse.Coord{Index: i, Value: c})
		}
	}
	return v
}

func TestMode(t *testing.T) {
	type modeTC struct {
		name     string
		vals     []int
		expected int
	}

	tcs := []modeTC{
		{name: "plain majority", vals: []int{2, 2, 3}, expected: 2},
		{name: "tie takes smallest", vals: []int{3, 2, 2, 3}, expected: 2},
		{name: "single value", vals: []int{5}, expected: 5},
		{name: "empty", vals: nil, expected: 0},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Mode(tc.vals))
		})
	}
}

func TestTrainFallsBackToConstant(t *testing.T) {
	// label A: two usages, below MinRows; label B: four usages of one value
	X := []sparse.Vector{point(1, 0), point(0.9, 0), point(0, 1), point(0, 0.9), point(0.1, 1), point(1, 0.1)}
	yCnt := [][]int{
		{2, 3},
		{2, 3},
		{0, 3},
		{0, 3},
		{0, 0},
		{0, 0},
	}
	rows := []int{0, 1, 2, 3, 4, 5}
	space := labels.Fit([][]string{{"A", "B"}})

	ens := Train(X, yCnt, rows, space, 2, testOptions())

	require.Contains(t, ens.Models, 0)
	require.Contains(t, ens.Models, 1)
	assert.Equal(t, KindConstant, ens.Models[0].Kind)
	assert.Equal(t, 2, ens.Models[0].Constant)
	assert.Equal(t, KindConstant, ens.Models[1].Kind, "a single distinct value cannot train a classifier")
	assert.Equal(t, 3, ens.Models[1].Constant)
}

func TestTrainCoversUnusedLabels(t *testing.T) {
	X := []sparse.Vector{point(1, 0), point(0, 1)}
	yCnt := [][]int{{1, 0}, {1, 0}}
	rows := []int{0, 1}
	space := labels.Fit([][]string{{"A", "B"}})

	ens := Train(X, yCnt, rows, space, 2, testOptions())

	require.Contains(t, ens.Models, 1)
	assert.Equal(t, KindConstant, ens.Models[1].Kind)
	assert.Equal(t, 0, ens.Models[1].Constant)
}

func TestTrainClassifiesQuantities(t *testing.T) {
	// quantity 1 lives on the x axis, quantity 2 on the y axis
	var X []sparse.Vector
	var yCnt [][]int
	for _, scale := range []float64{0.8, 1.0, 1.2} {
		X = append(X, point(scale, 0))
		yCnt = append(yCnt, []int{1})
		X = append(X, point(0, scale))
		yCnt = append(yCnt, []int{2})
	}
	rows := []int{0, 1, 2, 3, 4, 5}
	space := labels.Fit([][]string{{"A"}})

	ens := Train(X, yCnt, rows, space, 2, testOptions())

	require.Contains(t, ens.Models, 0)
	require.Equal(t, KindSVC, ens.Models[0].Kind)
	assert.Equal(t, 1, ens.Models[0].Predict(point(1.1, 0)))
	assert.Equal(t, 2, ens.Models[0].Predict(point(0, 1.1)))
}

func TestPredictIntoFillsGivenRows(t *testing.T) {
	X := []sparse.Vector{point(1, 0), point(0, 1), point(0.5, 0.5)}
	yCnt := [][]int{{4}, {4}, {4}}
	rows := []int{0, 1, 2}
	space := labels.Fit([][]string{{"A"}})

	ens := Train(X, yCnt, rows, space, 2, testOptions())
	require.Equal(t, KindConstant, ens.Models[0].Kind)

	qty := make([][]int, len(X))
	for i := range qty {
		qty[i] = make([]int, space.Len())
	}
	ens.PredictInto(X, []int{0, 2}, qty)

	assert.Equal(t, 4, qty[0][0])
	assert.Equal(t, 0, qty[1][0], "row 1 is outside the call and must stay zero")
	assert.Equal(t, 4, qty[2][0])
}

func TestTrainDeterministic(t *testing.T) {
	var X []sparse.Vector
	var yCnt [][]int
	for _, scale := range []float64{0.8, 1.0, 1.2} {
		X = append(X, point(scale, 0))
		yCnt = append(yCnt, []int{1})
		X = append(X, point(0, scale))
		yCnt = append(yCnt, []int{2})
	}
	rows := []int{0, 1, 2, 3, 4, 5}
	space := labels.Fit([][]string{{"A"}})

	a := Train(X, yCnt, rows, space, 2, testOptions())
	b := Train(X, yCnt, rows, space, 2, testOptions())
	assert.Equal(t, a.Models[0], b.Models[0])
}

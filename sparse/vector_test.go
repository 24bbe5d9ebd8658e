package sparse

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromMap(t *testing.T) {
	v := FromMap(map[int]float64{4: 2, 0: 1, 7: 0, 2: -3})
	require.Len(t, v, 3)

	assert.Equal(t, 0, v[0].Index)
	assert.Equal(t, 2, v[1].Index)
	assert.Equal(t, 4, v[2].Index)
	assert.Equal(t, -3.0, v[1].Value)
}

func TestDot(t *testing.T) {
	v := Vector{{Index: 0, Value: 1}, {Index: 2, Value: 2}, {Index: 5, Value: 3}}
	dense := []float64{2, 9, 0.5, 9, 9, -1}

	assert.Equal(t, 2+1.0-3.0, v.Dot(dense))

	// coordinates past the end of the dense slice are ignored
	assert.Equal(t, 3.0, v.Dot([]float64{2, 9, 0.5}))
}

func TestAddTo(t *testing.T) {
	v := Vector{{Index: 1, Value: 2}, {Index: 3, Value: -1}}
	dense := make([]float64, 4)
	v.AddTo(dense, 0.5)

	assert.Equal(t, []float64{0, 1, 0, -0.5}, dense)
}

func TestNorm(t *testing.T) {
	v := Vector{{Index: 0, Value: 3}, {Index: 9, Value: 4}}

	assert.Equal(t, 25.0, v.SquaredNorm())
	assert.Equal(t, 5.0, v.Norm())

	v.Scale(1 / v.Norm())
	assert.InDelta(t, 1.0, v.Norm(), 1e-12)
	assert.True(t, math.Abs(v[0].Value-0.6) < 1e-12)
}

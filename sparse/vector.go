package sparse

import (
	"math"
	"sort"
)

// Coord is a single non-zero entry of a Vector.
type Coord struct {
	Index int
	Value float64
}

// Vector is a sparse feature vector: non-zero coordinates sorted by
// ascending index.
type Vector []Coord

// FromMap builds a Vector from an index->value map, dropping zeros.
func FromMap(m map[int]float64) Vector {
	v := make(Vector, 0, len(m))
	for i, x := range m {
		if x == 0 {
			continue
		}
		v = append(v, Coord{Index: i, Value: x})
	}
	sort.Slice(v, func(a, b int) bool { return v[a].Index < v[b].Index })
	return v
}

// Dot returns the inner product of v with a dense weight slice. Coordinates
// beyond the end of dense contribute nothing.
func (v Vector) Dot(dense []float64) float64 {
	var sum float64
	for _, c := range v {
		if c.Index >= len(dense) {
			break
		}
		sum += c.Value * dense[c.Index]
	}
	return sum
}

// AddTo adds scale*v into a dense accumulator.
func (v Vector) AddTo(dense []float64, scale float64) {
	for _, c := range v {
		dense[c.Index] += scale * c.Value
	}
}

// Scale multiplies every coordinate of v by s in place.
func (v Vector) Scale(s float64) {
	for i := range v {
		v[i].Value *= s
	}
}

// SquaredNorm returns the squared euclidean norm of v.
func (v Vector) SquaredNorm() float64 {
	var sum float64
	for _, c := range v {
		sum += c.Value * c.Value
	}
	return sum
}

// Norm returns the euclidean norm of v.
func (v Vector) Norm() float64 {
	return math.Sqrt(v.SquaredNorm())
}

package features

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformerLayout(t *testing.T) {
	tr := Fit(
		[]string{"skift olie", "kontrol"},
		[]string{"Pumpe", "Motor"},
		Options{NGramMin: 1, NGramMax: 1},
	)
	require.Equal(t, 5, tr.NumFeatures())

	vec := tr.Transform("skift olie", "Pumpe")
	require.Len(t, vec, 3)

	// text block first: kontrol=0, olie=1, skift=2
	assert.Equal(t, 1, vec[0].Index)
	assert.Equal(t, 2, vec[1].Index)
	assert.InDelta(t, 1/math.Sqrt2, vec[0].Value, 1e-12)

	// category indicator lands after the text block
	assert.Equal(t, 4, vec[2].Index)
	assert.Equal(t, 1.0, vec[2].Value)
}

func TestTransformerUnknownCategory(t *testing.T) {
	tr := Fit([]string{"skift olie"}, []string{"Pumpe"}, Options{NGramMin: 1, NGramMax: 1})

	vec := tr.Transform("skift olie", "Gear")
	for _, c := range vec {
		assert.True(t, c.Index < tr.Text.NumFeatures())
	}
}

func TestTransformAll(t *testing.T) {
	tr := Fit([]string{"skift olie", "kontrol"}, []string{"Pumpe", "Motor"}, Options{NGramMin: 1, NGramMax: 1})

	rows := tr.TransformAll([]string{"skift olie", "kontrol"}, []string{"Pumpe", "Motor"})
	require.Len(t, rows, 2)
	assert.NotEmpty(t, rows[0])
	assert.NotEmpty(t, rows[1])
}

func TestTransformerJSONRoundTrip(t *testing.T) {
	tr := Fit([]string{"skift olie", "kontrol af ventil"}, []string{"Pumpe", "Motor"}, Options{NGramMin: 1, NGramMax: 2})

	buf, err := json.Marshal(tr)
	require.NoError(t, err)

	var loaded Transformer
	require.NoError(t, json.Unmarshal(buf, &loaded))
	require.Equal(t, tr.NumFeatures(), loaded.NumFeatures())

	assert.Equal(t, tr.Transform("kontrol af ventil", "Motor"), loaded.Transform("kontrol af ventil", "Motor"))
}

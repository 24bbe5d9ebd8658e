package features

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mathildevib/DAKI2-grp3-final/text"
)

func TestTrainVocabularyOrder(t *testing.T) {
	docs := []string{"skift olie filter", "skift olie", "kontrol ventil"}
	v := Train(docs, Options{NGramMin: 1, NGramMax: 1})
	require.Equal(t, 5, v.NumFeatures())

	// columns are assigned in lexicographic n-gram order
	expected := map[string]int{"filter": 0, "kontrol": 1, "olie": 2, "skift": 3, "ventil": 4}
	assert.Equal(t, expected, v.Vocabulary)

	// smoothed idf: ln((1+n)/(1+df)) + 1
	assert.InDelta(t, math.Log(4.0/3.0)+1, v.IDF[3], 1e-12)
	assert.InDelta(t, math.Log(2.0)+1, v.IDF[0], 1e-12)
}

func TestTransformNormalized(t *testing.T) {
	docs := []string{"skift olie filter", "skift olie", "kontrol ventil"}
	v := Train(docs, Options{NGramMin: 1, NGramMax: 1})

	vec := v.Transform("skift olie")
	require.Len(t, vec, 2)

	// equal counts and equal idf give two equal weights, L2 normalized
	assert.Equal(t, 2, vec[0].Index)
	assert.Equal(t, 3, vec[1].Index)
	assert.InDelta(t, 1/math.Sqrt2, vec[0].Value, 1e-12)
	assert.InDelta(t, 1/math.Sqrt2, vec[1].Value, 1e-12)
	assert.InDelta(t, 1.0, vec.Norm(), 1e-12)
}

func TestTransformSublinearTF(t *testing.T) {
	docs := []string{"skift olie filter", "skift olie", "kontrol ventil"}
	v := Train(docs, Options{NGramMin: 1, NGramMax: 1})

	vec := v.Transform("skift skift olie")
	require.Len(t, vec, 2)

	// repeated term weighs 1+ln(2) relative to a single occurrence
	assert.InDelta(t, 1+math.Log(2), vec[1].Value/vec[0].Value, 1e-12)
}

func TestTransformUnknownTerms(t *testing.T) {
	docs := []string{"skift olie"}
	v := Train(docs, Options{NGramMin: 1, NGramMax: 1})

	assert.Empty(t, v.Transform("ukendt tekst her"))
}

func TestTrainMaxFeatures(t *testing.T) {
	docs := []string{"skift olie filter", "skift olie", "kontrol ventil"}
	v := Train(docs, Options{NGramMin: 1, NGramMax: 1, MaxFeatures: 2})

	assert.Equal(t, map[string]int{"olie": 0, "skift": 1}, v.Vocabulary)
}

func TestTrainMaxFeaturesTieBreak(t *testing.T) {
	docs := []string{"bb aa", "aa bb", "cc aa bb"}
	v := Train(docs, Options{NGramMin: 1, NGramMax: 1, MaxFeatures: 1})

	// aa and bb tie on corpus frequency; the lexicographically smaller wins
	assert.Equal(t, map[string]int{"aa": 0}, v.Vocabulary)
}

func TestTrainStopWordsBeforeNGrams(t *testing.T) {
	sw := text.StopWords{"og": true}
	docs := []string{"skift og olie"}
	v := Train(docs, Options{NGramMin: 1, NGramMax: 2, StopWords: sw})

	// the stop word is removed before bigrams form, so "skift olie" appears
	expected := map[string]int{"olie": 0, "skift": 1, "skift olie": 2}
	assert.Equal(t, expected, v.Vocabulary)
}

func TestTrainDropsShortTokens(t *testing.T) {
	docs := []string{"7 x olie på a7"}
	v := Train(docs, Options{NGramMin: 1, NGramMax: 1})

	expected := map[string]int{"a7": 0, "olie": 1, "på": 2}
	assert.Equal(t, expected, v.Vocabulary)
}

func TestVocabularySize(t *testing.T) {
	docs := []string{"skift og olie"}

	// the probe ignores stop words, unlike the vectorizer itself
	assert.Equal(t, 3, VocabularySize(docs, 1, 1))
	assert.Equal(t, 5, VocabularySize(docs, 1, 2))

	sw := text.StopWords{"og": true}
	v := Train(docs, Options{NGramMin: 1, NGramMax: 1, StopWords: sw})
	assert.Equal(t, 2, v.NumFeatures())
}

package features

import (
	"math"
	"sort"

	"github.com/Mathildevib/DAKI2-grp3-final/sparse"
	"github.com/Mathildevib/DAKI2-grp3-final/text"
)

// Tokens shorter than this are dropped before n-gram construction. Single
// characters in maintenance text are almost always unit letters or list
// markers, not vocabulary.
const minTokenRunes = 2

// Options configure feature extraction.
type Options struct {
	// MaxFeatures caps the n-gram vocabulary; the most frequent terms across
	// the corpus are kept. Zero means no cap.
	MaxFeatures int
	// NGramMin and NGramMax bound the word n-gram orders.
	NGramMin int
	NGramMax int
	// StopWords are removed from the token stream before n-grams are built.
	StopWords text.StopWords
}

// Vectorizer turns preprocessed instruction text into tf-idf weighted sparse
// vectors. All fields are exported so a fitted vectorizer round-trips through
// JSON with the trained artifacts.
type Vectorizer struct {
	// Vocabulary maps an n-gram to its column, columns in lexicographic
	// n-gram order.
	Vocabulary map[string]int `json:"vocabulary"`
	// IDF holds the inverse document frequency per column.
	IDF []float64 `json:"idf"`

	NGramMin  int            `json:"ngram_min"`
	NGramMax  int            `json:"ngram_max"`
	StopWords text.StopWords `json:"stop_words"`
}

// Train fits a Vectorizer on the corpus: count n-gram occurrences, keep the
// MaxFeatures most frequent terms (ties go to the lexicographically smaller
// n-gram), and compute smoothed IDF weights.
func Train(docs []string, opts Options) *Vectorizer {
	v := &Vectorizer{
		Vocabulary: make(map[string]int),
		NGramMin:   opts.NGramMin,
		NGramMax:   opts.NGramMax,
		StopWords:  opts.StopWords,
	}

	counts := make(map[string]int)
	dfs := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool)
		for _, t := range v.terms(doc) {
			counts[t]++
			seen[t] = true
		}
		for t := range seen {
			dfs[t]++
		}
	}

	terms := make([]string, 0, len(counts))
	for t := range counts {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if opts.MaxFeatures > 0 && len(terms) > opts.MaxFeatures {
		terms = terms[:opts.MaxFeatures]
	}
	sort.Strings(terms)

	v.IDF = make([]float64, len(terms))
	n := float64(len(docs))
	for i, t := range terms {
		v.Vocabulary[t] = i
		v.IDF[i] = math.Log((1+n)/(1+float64(dfs[t]))) + 1
	}
	return v
}

// Transform computes the tf-idf vector of one document: sublinear term
// frequency (1+ln tf) times IDF, L2 normalized. Terms outside the vocabulary
// contribute nothing.
func (v *Vectorizer) Transform(doc string) sparse.Vector {
	counts := make(map[int]int)
	for _, t := range v.terms(doc) {
		if col, ok := v.Vocabulary[t]; ok {
			counts[col]++
		}
	}
	weights := make(map[int]float64, len(counts))
	for col, c := range counts {
		weights[col] = (1 + math.Log(float64(c))) * v.IDF[col]
	}
	vec := sparse.FromMap(weights)
	if norm := vec.Norm(); norm > 0 {
		vec.Scale(1 / norm)
	}
	return vec
}

// NumFeatures returns the vocabulary size.
func (v *Vectorizer) NumFeatures() int {
	return len(v.Vocabulary)
}

// terms builds the n-gram stream of one document: whitespace tokens, short
// tokens dropped, stop words removed, then every n-gram order in range.
func (v *Vectorizer) terms(doc string) []string {
	proc := text.NewProcessor(text.DropShort(minTokenRunes), text.RemoveStopWords(v.StopWords))
	toks := proc.Apply(text.Tokenize(doc))
	return text.NGramRange(v.NGramMin, v.NGramMax, toks)
}

// VocabularySize counts the distinct n-grams of the corpus without a feature
// cap and without stop-word removal. The sweep uses it to discard feature
// sizes no smaller than the full vocabulary, where capping would change
// nothing.
func VocabularySize(docs []string, ngramMin, ngramMax int) int {
	dropShort := text.DropShort(minTokenRunes)
	seen := make(map[string]bool)
	for _, doc := range docs {
		toks := dropShort(text.Tokenize(doc))
		for _, g := range text.NGramRange(ngramMin, ngramMax, toks) {
			seen[g] = true
		}
	}
	return len(seen)
}

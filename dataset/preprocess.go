package dataset

import (
	"strings"

	"github.com/sbwhitecap/tqdm"
	"github.com/sbwhitecap/tqdm/iterators"

	"github.com/Mathildevib/DAKI2-grp3-final/text"
)

// PreprocessInstruction normalizes one instruction text and stems every
// token, returning the space-joined stemmed form the vectorizer consumes.
func PreprocessInstruction(s string) string {
	toks := text.Stem(text.Tokenize(text.Normalize(s)))
	return strings.Join(toks, " ")
}

// Preprocess rewrites every sample's instruction text into its stemmed form,
// in place. Stemming a full dump takes a moment, so progress is reported.
func Preprocess(samples []Sample) {
	tqdm.With(iterators.Interval(0, len(samples)), "Preprocessing instructions", func(c interface{}) (brk bool) {
		i := c.(int)
		samples[i].Instructions = PreprocessInstruction(samples[i].Instructions)
		return
	})
}

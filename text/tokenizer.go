package text

import (
	"bufio"
	"bytes"
	"unicode/utf8"

	"github.com/blevesearch/snowballstem"
	"github.com/blevesearch/snowballstem/danish"
	lru "github.com/hashicorp/golang-lru"
)

// TokenFunc defines a type of function that takes in an array of tokens and
// returns an array of tokens.
type TokenFunc func(Tokens) Tokens

// Tokens represents a slice of strings
type Tokens []string

// Processor consists of a list of text processing rules.
type Processor struct {
	filters []TokenFunc
}

// NewProcessor takes a list of TokenFuncs to instantiate a Processor.
func NewProcessor(funcs ...TokenFunc) *Processor {
	f := &Processor{}
	for _, fn := range funcs {
		f.filters = append(f.filters, fn)
	}
	return f
}

// Apply applies a list of TokenFunc to transform the input tokens
func (f *Processor) Apply(ts Tokens) Tokens {
	for _, fn := range f.filters {
		ts = fn(ts)
	}
	return ts
}

// Tokenize splits s on whitespace. Input is expected to be normalized first,
// so token boundaries are exactly the whitespace runs Normalize left behind.
func Tokenize(s string) Tokens {
	var tokens Tokens
	scanner := bufio.NewScanner(bytes.NewBufferString(s))
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		tokens = append(tokens, scanner.Text())
	}
	return tokens
}

// Vocabulary probes and vectorizer training stem every token of every
// instruction, so raw snowball calls add up. The distinct-token count of a
// work-order corpus is small; 64k cache entries covers it with room to spare.
var stemCache, _ = lru.New(1 << 16)

// StemWord reduces a single Danish word to its snowball stem.
func StemWord(w string) string {
	if cached, ok := stemCache.Get(w); ok {
		return cached.(string)
	}
	env := snowballstem.NewEnv(w)
	danish.Stem(env)
	stemmed := env.Current()
	stemCache.Add(w, stemmed)
	return stemmed
}

// Stem stems each token in the input token array.
func Stem(ts Tokens) Tokens {
	var stemmed Tokens
	for _, t := range ts {
		stemmed = append(stemmed, StemWord(t))
	}
	return stemmed
}

// DropShort removes tokens shorter than min runes.
func DropShort(min int) TokenFunc {
	return func(ts Tokens) Tokens {
		var kept Tokens
		for _, t := range ts {
			if utf8.RuneCountInString(t) >= min {
				kept = append(kept, t)
			}
		}
		return kept
	}
}

// RemoveStopWords removes the tokens found in sw.
func RemoveStopWords(sw StopWords) TokenFunc {
	return func(ts Tokens) Tokens {
		var kept Tokens
		for _, t := range ts {
			if sw[t] {
				continue
			}
			kept = append(kept, t)
		}
		return kept
	}
}

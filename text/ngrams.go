package text

import "strings"

// NGramRange constructs the space-joined n-grams of every order in [min, max]
// for the given token stream, lowest order first. Orders longer than the
// token stream contribute nothing.
func NGramRange(min, max int, toks Tokens) []string {
	var grams []string
	for n := min; n <= max; n++ {
		if n < 1 || len(toks) < n {
			continue
		}
		for i := 0; i+n <= len(toks); i++ {
			grams = append(grams, strings.Join(toks[i:i+n], " "))
		}
	}
	return grams
}

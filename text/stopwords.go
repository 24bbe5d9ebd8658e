package text

import (
	"bufio"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// StopWords is the set of stemmed Danish stop words removed before feature
// extraction. It is loaded once and passed explicitly to the components that
// filter tokens.
type StopWords map[string]bool

// LoadStopWords reads one stop word per line from path, normalizes and stems
// each, and returns the resulting set. Entries go through the same
// normalization and stemming as instruction tokens, so the set matches the
// token stream it filters.
func LoadStopWords(path string) (StopWords, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening stop word list")
	}
	defer f.Close()

	sw := make(StopWords)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		w := strings.TrimSpace(Normalize(scanner.Text()))
		if w == "" {
			continue
		}
		sw[StemWord(w)] = true
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading stop word list")
	}
	return sw, nil
}

package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	text := "Skift O-ring (type a/2) på pumpe #4 - 2 stk."
	text = Normalize(text)

	assert.Equal(t, "skift o ring  type a 2  på pumpe  4   2 stk ", text)
}

func TestNormalizeKeepsDanishVowels(t *testing.T) {
	assert.Equal(t, "bør væske påfyldes ", Normalize("Bør væske påfyldes?"))
}

package text

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadStopWords(t *testing.T) {
	dir, err := ioutil.TempDir("", "stopwords")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "stopord.txt")
	err = ioutil.WriteFile(path, []byte("Og\n  på \n\nikke\n"), 0644)
	require.NoError(t, err)

	sw, err := LoadStopWords(path)
	require.NoError(t, err)
	require.Len(t, sw, 3)

	assert.True(t, sw["og"])
	assert.True(t, sw["på"])
	// entries are stemmed so they match stemmed instruction tokens
	assert.True(t, sw["ikk"])
	assert.False(t, sw["ikke"])
}

func TestLoadStopWordsMissingFile(t *testing.T) {
	_, err := LoadStopWords("testdata/no-such-file.txt")
	assert.Error(t, err)
}

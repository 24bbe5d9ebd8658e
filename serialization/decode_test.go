package serialization

import (
	"bytes"
	"compress/gzip"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type part struct {
	ID       string
	Quantity int
}

func gzipString(x string) []byte {
	var b bytes.Buffer
	w := gzip.NewWriter(&b)
	w.Write([]byte(x))
	w.Close()
	return b.Bytes()
}

func TestJSON(t *testing.T) {
	var p part
	d := []byte(`{"ID": "x", "Quantity": 2}`)
	err := decodeAs(bytes.NewBuffer(d), "foo.json", &p)
	require.NoError(t, err)
	assert.EqualValues(t, "x", p.ID)
	assert.EqualValues(t, 2, p.Quantity)
}

func TestGzippedJSON(t *testing.T) {
	var p part
	d := gzipString(`{"ID": "y", "Quantity": 3}`)
	err := decodeAs(bytes.NewBuffer(d), "bar.json.gz", &p)
	require.NoError(t, err)
	assert.EqualValues(t, "y", p.ID)
	assert.EqualValues(t, 3, p.Quantity)
}

func TestUnknownExtension(t *testing.T) {
	var p part
	err := decodeAs(bytes.NewBufferString("x"), "foo.csv", &p)
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	dir, err := ioutil.TempDir("", "serialization")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	in := map[int]part{
		0: {ID: "a", Quantity: 1},
		7: {ID: "b", Quantity: 4},
	}

	for _, name := range []string{"parts.json", "parts.json.gz", "parts.gob", "parts.gob.gz"} {
		path := filepath.Join(dir, name)
		require.NoError(t, Encode(path, in))

		var out map[int]part
		require.NoError(t, Decode(path, &out))
		assert.Equal(t, in, out, name)
	}
}

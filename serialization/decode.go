package serialization

import (
	"compress/gzip"
	"encoding/gob"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Decoder is an interface that matches gob.Decoder and json.Decoder
type Decoder interface {
	// Decode extracts an object from the stream
	Decode(interface{}) error
}

// Decode loads an object from a file. If the path ends with .gz then the
// contents will be decompressed. The encoding is then determined by the
// remaining file extension, which can be .json or .gob.
//
//   var model Model
//   err := serialization.Decode("models/presence.json.gz", &model)
func Decode(path string, obj interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "error loading %s", path)
	}
	defer f.Close()
	return decodeAs(f, path, obj)
}

// decodeAs is like Decode but uses the provided path to determine the
// compression and encoding used in the stream.
func decodeAs(r io.Reader, path string, obj interface{}) error {
	trimmed := path
	if strings.HasSuffix(trimmed, ".gz") {
		trimmed = strings.TrimSuffix(trimmed, ".gz")
		rd, err := gzip.NewReader(r)
		if err != nil {
			return errors.Wrapf(err, "error loading %s", path)
		}
		defer rd.Close()
		r = rd
	}

	var d Decoder
	switch {
	case strings.HasSuffix(trimmed, ".json"):
		d = json.NewDecoder(r)
	case strings.HasSuffix(trimmed, ".gob"):
		d = gob.NewDecoder(r)
	default:
		return errors.Errorf("could not find decoder for %s", path)
	}

	if err := d.Decode(obj); err != nil {
		return errors.Wrapf(err, "error decoding %s", path)
	}
	return nil
}

package fileutil

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Encoding names a structured file format.
type Encoding string

// Supported encodings.
const (
	EncodingYAML Encoding = "yaml"
	EncodingTOML Encoding = "toml"
	EncodingJSON Encoding = "json"
)

// ErrUnknownEncoding is returned for formats other than YAML, TOML and JSON.
var ErrUnknownEncoding = errors.New("unknown encoding")

// ParseEncoding validates a user-supplied format name.
func ParseEncoding(s string) (Encoding, error) {
	switch e := Encoding(strings.ToLower(s)); e {
	case EncodingYAML, EncodingTOML, EncodingJSON:
		return e, nil
	case "yml":
		return EncodingYAML, nil
	default:
		return "", errors.Wrapf(ErrUnknownEncoding, "%q (valid: yaml, toml, json)", s)
	}
}

// EncodingForPath picks the encoding from the file extension.
func EncodingForPath(path string) (Encoding, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", errors.Wrapf(ErrUnknownEncoding, "no extension on %s", path)
	}
	return ParseEncoding(ext)
}

// Marshal encodes v. The result always ends in a newline.
func Marshal(enc Encoding, v any) (data []byte, err error) {
	switch enc {
	case EncodingYAML:
		// yaml.Marshal panics on unmarshalable types; recover and return error
		defer func() {
			if r := recover(); r != nil {
				err = errors.Newf("marshaling YAML: %v", r)
			}
		}()
		data, err = yaml.Marshal(v)
	case EncodingTOML:
		data, err = toml.Marshal(v)
	case EncodingJSON:
		data, err = json.MarshalIndent(v, "", "  ")
	default:
		return nil, errors.Wrapf(ErrUnknownEncoding, "%q", enc)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "marshaling %s", strings.ToUpper(string(enc)))
	}

	if len(data) == 0 || data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	return data, nil
}

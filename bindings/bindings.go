package bindings

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
)

// ErrUnsupportedFormat is returned for files whose extension is not
// .yaml, .yml or .json.
var ErrUnsupportedFormat = errors.New("unsupported bindings format")

// Load reads a bindings file and returns its flattened contents. The
// decoder is chosen by file extension.
func Load(path string) (map[string]string, error) {
	const errCtx = "loading bindings"

	raw, err := os.ReadFile(path) //nolint:gosec // paths from CLI flags
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	out, err := Decode(filepath.Ext(path), raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", errCtx, path, err)
	}

	return out, nil
}

// Decode parses raw according to ext (".yaml", ".yml" or ".json") and
// flattens the resulting document.
func Decode(ext string, raw []byte) (map[string]string, error) {
	const errCtx = "decoding bindings"

	var doc interface{}

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("%s: yaml: %w", errCtx, err)
		}
	case ".json":
		// Numbers stay json.Number so integers keep their
		// source form instead of float64 formatting.
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()

		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%s: json: %w", errCtx, err)
		}
	default:
		return nil, fmt.Errorf(
			"%s: %w: %q", errCtx, ErrUnsupportedFormat, ext,
		)
	}

	out := make(map[string]string)

	// An empty document decodes to nil.
	if doc == nil {
		return out, nil
	}

	switch doc.(type) {
	case map[string]interface{}, map[interface{}]interface{}:
	default:
		return nil, fmt.Errorf(
			"%s: top level must be a mapping, got %T",
			errCtx, doc,
		)
	}

	flatten(out, "", doc)

	return out, nil
}

// LoadAll loads every path in order and merges the results. Later
// files override earlier ones.
func LoadAll(paths []string) (map[string]string, error) {
	const errCtx = "loading all bindings"

	out := make(map[string]string)

	for _, pa := range paths {
		bi, err := Load(pa)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		Merge(out, bi)
	}

	return out, nil
}

// Merge copies every entry of src into dst, overwriting existing keys.
func Merge(dst, src map[string]string) {
	for key, val := range src {
		dst[key] = val
	}
}

func flatten(out map[string]string, prefix string, val interface{}) {
	switch vv := val.(type) {
	case map[string]interface{}:
		for key, child := range vv {
			flatten(out, join(prefix, key), child)
		}
	case map[interface{}]interface{}:
		for key, child := range vv {
			flatten(out, join(prefix, fmt.Sprint(key)), child)
		}
	case []interface{}:
		for idx, child := range vv {
			flatten(out, join(prefix, strconv.Itoa(idx)), child)
		}
	case nil:
		out[prefix] = ""
	default:
		out[prefix] = fmt.Sprint(vv)
	}
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}

	return prefix + "." + key
}

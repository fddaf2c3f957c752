package catalog

import (
	"bytes"
	"embed"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/teranos/jazzgraph/errors"
)

//go:embed data/*.json
var embedded embed.FS

// document is the on-disk shape shared by every format. A combined dataset file
// fills all three keys; the per-kind files in a dataset directory fill one each.
type document struct {
	Artists []Artist `json:"artists" yaml:"artists" toml:"artists"`
	Albums  []Album  `json:"albums" yaml:"albums" toml:"albums"`
	Eras    []Era    `json:"eras" yaml:"eras" toml:"eras"`
}

// Format is a dataset encoding, chosen by file extension
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFor maps a file name to its dataset format
func FormatFor(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".toml":
		return FormatTOML, true
	}
	return "", false
}

func decode(data []byte, format Format) (*document, error) {
	var doc document
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Wrap(err, "invalid JSON dataset")
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(err, "invalid YAML dataset")
		}
	case FormatTOML:
		if _, err := toml.Decode(string(data), &doc); err != nil {
			return nil, errors.Wrap(err, "invalid TOML dataset")
		}
	default:
		return nil, errors.NewInvalidRequestError("unsupported dataset format %q", format)
	}
	return &doc, nil
}

// Parse decodes a combined dataset document
func Parse(data []byte, format Format) (*Catalog, error) {
	doc, err := decode(data, format)
	if err != nil {
		return nil, err
	}
	return New(doc.Artists, doc.Albums, doc.Eras)
}

// LoadFile reads a combined dataset file (artists, albums and eras in one document)
func LoadFile(path string) (*Catalog, error) {
	format, ok := FormatFor(path)
	if !ok {
		return nil, errors.WithHint(
			errors.NewInvalidRequestError("unsupported dataset file %s", path),
			"use a .json, .yaml, .yml or .toml file")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read dataset %s", path)
	}
	c, err := Parse(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load dataset %s", path)
	}
	return c, nil
}

// LoadDir reads artists.*, albums.* and eras.* from dir. Each kind may use any
// supported format; a missing kind loads as empty.
func LoadDir(dir string) (*Catalog, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open dataset directory %s", dir)
	}
	if !info.IsDir() {
		return nil, errors.NewInvalidRequestError("%s is not a directory", dir)
	}

	var merged document
	for _, kind := range []string{"artists", "albums", "eras"} {
		path, err := findKindFile(dir, kind)
		if err != nil {
			return nil, err
		}
		if path == "" {
			continue
		}
		format, _ := FormatFor(path)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", path)
		}
		doc, err := decode(data, format)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse %s", path)
		}
		switch kind {
		case "artists":
			merged.Artists = doc.Artists
		case "albums":
			merged.Albums = doc.Albums
		case "eras":
			merged.Eras = doc.Eras
		}
	}

	return New(merged.Artists, merged.Albums, merged.Eras)
}

func findKindFile(dir, kind string) (string, error) {
	var found []string
	for _, ext := range []string{".json", ".yaml", ".yml", ".toml"} {
		p := filepath.Join(dir, kind+ext)
		if _, err := os.Stat(p); err == nil {
			found = append(found, p)
		}
	}
	switch len(found) {
	case 0:
		return "", nil
	case 1:
		return found[0], nil
	default:
		return "", errors.NewInvalidRequestError("ambiguous dataset: %s", strings.Join(found, ", "))
	}
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the dataset compiled into the binary, parsed once
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		var merged document
		for _, kind := range []string{"artists", "albums", "eras"} {
			data, err := embedded.ReadFile("data/" + kind + ".json")
			if err != nil {
				defaultErr = errors.Wrapf(err, "embedded %s missing", kind)
				return
			}
			doc, err := decode(data, FormatJSON)
			if err != nil {
				defaultErr = errors.Wrapf(err, "embedded %s", kind)
				return
			}
			merged.Artists = append(merged.Artists, doc.Artists...)
			merged.Albums = append(merged.Albums, doc.Albums...)
			merged.Eras = append(merged.Eras, doc.Eras...)
		}
		defaultCatalog, defaultErr = New(merged.Artists, merged.Albums, merged.Eras)
	})
	return defaultCatalog, defaultErr
}

// Encode writes c as a combined dataset document in the given format
func Encode(c *Catalog, format Format) ([]byte, error) {
	doc := document{Artists: c.Artists, Albums: c.Albums, Eras: c.Eras}
	switch format {
	case FormatJSON:
		return json.MarshalIndent(doc, "", "  ")
	case FormatYAML:
		return yaml.Marshal(doc)
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
			return nil, errors.Wrap(err, "failed to encode TOML dataset")
		}
		return buf.Bytes(), nil
	}
	return nil, errors.NewInvalidRequestError("unsupported dataset format %q", format)
}

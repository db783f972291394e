package document

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var ErrFrontmatterInvalid = stderrors.New("invalid frontmatter")

const (
	frontmatterFormatYAML = "yaml"
	frontmatterFormatJSON = "json"
	frontmatterFormatTOML = "toml"
)

// Frontmatter is the parsed view of a document's leading metadata section.
// The tree always serializes the raw text verbatim; this type exists for
// collaborators that want the fields.
type Frontmatter struct {
	Title string   `yaml:"title,omitempty" json:"title,omitempty" toml:"title,omitempty"`
	Tags  []string `yaml:"tags,omitempty" json:"tags,omitempty" toml:"tags,omitempty"`

	format string
	raw    string // using string to be able to compare using ==
}

func (f *Frontmatter) IsEmpty() bool {
	return f == nil || f.raw == ""
}

func (f *Frontmatter) Format() string { return f.format }

// Marshal re-encodes the frontmatter with the current field values merged
// over the original document, delimiters included.
func (f *Frontmatter) Marshal() ([]byte, error) {
	if f == nil {
		return nil, nil
	}

	switch f.format {
	case frontmatterFormatYAML:
		m := make(map[string]interface{})
		if err := yaml.Unmarshal([]byte(f.raw), &m); err != nil {
			return nil, errors.WithStack(err)
		}
		f.mergeInto(m)

		var buf bytes.Buffer
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(m); err != nil {
			return nil, errors.WithStack(err)
		}
		if err := encoder.Close(); err != nil {
			return nil, errors.WithStack(err)
		}
		return append(append([]byte("---\n"), buf.Bytes()...), []byte("---")...), nil

	case frontmatterFormatJSON:
		m := make(map[string]interface{})
		if err := json.Unmarshal([]byte(f.raw), &m); err != nil {
			return nil, errors.WithStack(err)
		}
		f.mergeInto(m)

		data, err := json.Marshal(m)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		return append(append([]byte("---\n"), data...), []byte("---")...), nil

	case frontmatterFormatTOML:
		m := make(map[string]interface{})
		if err := toml.Unmarshal([]byte(f.raw), &m); err != nil {
			return nil, errors.WithStack(err)
		}
		f.mergeInto(m)

		data, err := toml.Marshal(m)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		return append(append([]byte("+++\n"), data...), []byte("+++")...), nil

	default:
		panic("invariant: Frontmatter created with invalid format")
	}
}

func (f *Frontmatter) mergeInto(m map[string]interface{}) {
	if f.Title != "" {
		m["title"] = f.Title
	}
	if len(f.Tags) > 0 {
		m["tags"] = f.Tags
	}
}

// FrontmatterRaw returns the document's metadata section verbatim,
// delimiters included, or "" when there is none.
func (t *Tree) FrontmatterRaw() string {
	return t.frontmatterRaw
}

// Frontmatter lazily parses the metadata section, trying YAML, JSON, and
// TOML in that order. It returns nil for a document without frontmatter.
func (t *Tree) Frontmatter() (*Frontmatter, error) {
	t.onceFrontmatter.Do(func() {
		t.frontmatter, t.parseFrontmatterErr = ParseFrontmatter(t.frontmatterRaw)
	})
	return t.frontmatter, t.parseFrontmatterErr
}

// ParseFrontmatter parses a raw frontmatter section including delimiters.
func ParseFrontmatter(raw string) (*Frontmatter, error) {
	if raw == "" {
		return nil, nil
	}

	lines := strings.Split(raw, "\n")
	if len(lines) < 2 || strings.TrimSpace(lines[0]) != strings.TrimSpace(lines[len(lines)-1]) {
		return nil, errors.WithStack(ErrFrontmatterInvalid)
	}
	body := strings.Join(lines[1:len(lines)-1], "\n")

	var f Frontmatter

	parsers := []func([]byte, any) error{
		yaml.Unmarshal,
		json.Unmarshal,
		toml.Unmarshal,
	}
	parserNames := []string{
		frontmatterFormatYAML,
		frontmatterFormatJSON,
		frontmatterFormatTOML,
	}

	var firstError error
	for idx, parser := range parsers {
		err := parser([]byte(body), &f)
		if err == nil {
			f.format = parserNames[idx]
			f.raw = body
			return &f, nil
		}
		if firstError == nil {
			firstError = errors.Wrap(err, "failed to parse frontmatter content")
		}
	}
	return nil, firstError
}

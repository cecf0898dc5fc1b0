// Package langmap maps between host MIME types and embedded editor
// language identifiers. Tables are injected configuration, never
// module-level state, so different adapters can carry different
// mappings. A table is deterministic: the same input always yields
// the same output.
package langmap

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/odvcencio/bindery/pkg/errors"
)

// Fallbacks used when a table has no explicit default.
const (
	FallbackMime     = "text/plain"
	FallbackLanguage = "plaintext"
)

// Entry is one MIME↔language pairing.
type Entry struct {
	Mime     string `yaml:"mime"`
	Language string `yaml:"language"`
}

// File is the YAML shape of a language table.
type File struct {
	DefaultMime     string  `yaml:"default_mime"`
	DefaultLanguage string  `yaml:"default_language"`
	Entries         []Entry `yaml:"entries"`
}

// Table is a bidirectional MIME↔language mapping.
type Table struct {
	byMime      map[string]string
	byLang      map[string]string
	defaultMime string
	defaultLang string
}

// New builds a table from entries. When two entries share a MIME type
// or language id, the first wins for the reverse direction.
func New(defaultMime, defaultLang string, entries []Entry) *Table {
	if defaultMime == "" {
		defaultMime = FallbackMime
	}
	if defaultLang == "" {
		defaultLang = FallbackLanguage
	}
	t := &Table{
		byMime:      make(map[string]string, len(entries)),
		byLang:      make(map[string]string, len(entries)),
		defaultMime: defaultMime,
		defaultLang: defaultLang,
	}
	for _, e := range entries {
		if _, dup := t.byMime[e.Mime]; !dup {
			t.byMime[e.Mime] = e.Language
		}
		if _, dup := t.byLang[e.Language]; !dup {
			t.byLang[e.Language] = e.Mime
		}
	}
	return t
}

// Default returns a table covering common editor languages.
func Default() *Table {
	return New(FallbackMime, FallbackLanguage, []Entry{
		{Mime: "text/plain", Language: "plaintext"},
		{Mime: "text/x-python", Language: "python"},
		{Mime: "text/x-go", Language: "go"},
		{Mime: "text/javascript", Language: "javascript"},
		{Mime: "text/typescript", Language: "typescript"},
		{Mime: "application/json", Language: "json"},
		{Mime: "text/x-yaml", Language: "yaml"},
		{Mime: "text/markdown", Language: "markdown"},
		{Mime: "text/html", Language: "html"},
		{Mime: "text/css", Language: "css"},
		{Mime: "text/x-csrc", Language: "c"},
		{Mime: "text/x-rustsrc", Language: "rust"},
		{Mime: "text/x-sh", Language: "shell"},
		{Mime: "text/x-sql", Language: "sql"},
	})
}

// Parse builds a table from YAML.
func Parse(data []byte) (*Table, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeLangmapParse, "invalid language table")
	}
	return New(f.DefaultMime, f.DefaultLanguage, f.Entries), nil
}

// Load reads a YAML table from disk.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeLangmapLoad, "cannot read language table").
			WithContext("path", path)
	}
	return Parse(data)
}

// LanguageFor returns the language id for mime. Unmapped MIME types
// return the default language with ok == false.
func (t *Table) LanguageFor(mime string) (lang string, ok bool) {
	if lang, ok = t.byMime[mime]; ok {
		return lang, true
	}
	return t.defaultLang, false
}

// MimeFor returns the MIME type for a language id. Unmapped ids
// return the default MIME type with ok == false.
func (t *Table) MimeFor(lang string) (mime string, ok bool) {
	if mime, ok = t.byLang[lang]; ok {
		return mime, true
	}
	return t.defaultMime, false
}

// DefaultMime returns the table's default MIME type.
func (t *Table) DefaultMime() string {
	return t.defaultMime
}

// DefaultLanguage returns the table's default language id.
func (t *Table) DefaultLanguage() string {
	return t.defaultLang
}

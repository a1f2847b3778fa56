package document

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/adrg/frontmatter"
)

// ErrInvalidUTF8 is returned when the document bytes are not valid UTF-8 text.
var ErrInvalidUTF8 = errors.New("document is not valid UTF-8")

// Document is the text read from disk for one render pass. Raw is rendered
// as-is; front matter is only read for Meta.
type Document struct {
	Path string // Path as configured (relative to the working directory by default)
	Raw  string // Full file contents
	Meta Meta
}

// Meta holds optional front matter fields.
type Meta struct {
	Title       string `yaml:"title" toml:"title" json:"title"`
	Description string `yaml:"description" toml:"description" json:"description"`
}

// Load reads the whole file at path. Filesystem errors are wrapped so callers
// can still match fs.ErrNotExist. Only IO and UTF-8 problems fail a load.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("load document %s: %w", path, ErrInvalidUTF8)
	}

	doc := &Document{
		Path: path,
		Raw:  string(data),
	}
	doc.Meta, _ = readMeta(doc.Raw)
	return doc, nil
}

// readMeta parses a leading front matter block. A document that merely opens
// with a horizontal rule, or whose block is not valid YAML/TOML, yields an
// empty Meta.
func readMeta(s string) (Meta, bool) {
	if !hasFrontMatter(s) {
		return Meta{}, false
	}
	var meta Meta
	if _, err := frontmatter.Parse(strings.NewReader(s), &meta); err != nil {
		return Meta{}, false
	}
	return meta, true
}

// hasFrontMatter reports whether s opens with a YAML or TOML delimiter line.
func hasFrontMatter(s string) bool {
	for _, delim := range []string{"---", "+++"} {
		if strings.HasPrefix(s, delim+"\n") || strings.HasPrefix(s, delim+"\r\n") {
			return true
		}
	}
	return false
}

// Package nix renders pinned manifests as Nix attribute sets.
package nix

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/Erisia/cursetool/manifest"
)

var ErrMissingAttr = errors.New("missing required attribute")

// DefaultRequired is the attribute set every entry must provide
// unless overridden by configuration.
var DefaultRequired = []string{"download_url"}

// Builder accumulates manifest entries into a Nix attribute set
// expression. Entries render in the order they are added, so output
// is byte-identical for identical input.
type Builder struct {
	required []string
	buf      bytes.Buffer
}

// NewBuilder returns a builder enforcing the given required
// attributes per entry. A nil slice selects DefaultRequired.
func NewBuilder(required []string) *Builder {
	if required == nil {
		required = DefaultRequired
	}
	return &Builder{required: required}
}

func (b *Builder) Add(m manifest.Mod) error {
	attrs := entryAttrs(m)
	for _, name := range b.required {
		if _, ok := attrs[name]; !ok {
			return eris.Wrapf(ErrMissingAttr, "mod %q: %s", m.ID, name)
		}
	}

	fmt.Fprintf(&b.buf, "  %s = {", attrName(m.ID))
	for _, name := range attrOrder {
		v, ok := attrs[name]
		if !ok {
			continue
		}
		fmt.Fprintf(&b.buf, " %s = %s;", name, v)
	}
	b.buf.WriteString(" };\n")
	return nil
}

// Bytes returns the complete expression for the entries added so far.
func (b *Builder) Bytes() []byte {
	var out bytes.Buffer
	out.Grow(b.buf.Len() + 4)
	out.WriteString("{\n")
	out.Write(b.buf.Bytes())
	out.WriteString("}\n")
	return out.Bytes()
}

// Generate renders the whole manifest with the given required
// attribute set.
func Generate(m *manifest.Manifest, required []string) ([]byte, error) {
	b := NewBuilder(required)
	for _, mod := range m.Mods {
		if err := b.Add(mod); err != nil {
			return nil, err
		}
	}
	return b.Bytes(), nil
}

// attrOrder matches the key order of the YAML manifest schema, minus
// the id, which becomes the attribute name.
var attrOrder = []string{
	"name",
	"version",
	"download_url",
	"checksum",
	"side",
	"required",
	"maturity",
	"page_url",
}

func entryAttrs(m manifest.Mod) map[string]string {
	attrs := make(map[string]string, len(attrOrder))
	put := func(name, value string) {
		if value != "" {
			attrs[name] = quote(value)
		}
	}
	put("name", m.Name)
	put("version", m.Version)
	put("download_url", m.DownloadURL)
	put("checksum", m.Checksum)
	put("side", m.Side)
	put("maturity", m.Maturity)
	put("page_url", m.PageURL)
	if m.Required != nil {
		attrs["required"] = fmt.Sprintf("%t", *m.Required)
	}
	return attrs
}

// escaper covers the Nix double-quoted string rules: backslashes and
// quotes, the "${" interpolation trigger, and control characters that
// have escape forms.
var escaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"${", `\${`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

func quote(s string) string {
	return `"` + escaper.Replace(s) + `"`
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_'-]*$`)

var keywords = map[string]struct{}{
	"assert":  {},
	"else":    {},
	"if":      {},
	"in":      {},
	"inherit": {},
	"let":     {},
	"or":      {},
	"rec":     {},
	"then":    {},
	"with":    {},
}

// attrName quotes attribute names that are not plain Nix identifiers,
// e.g. the "projectID:fileID" ids produced by curse mode.
func attrName(s string) string {
	if _, kw := keywords[s]; !kw && identRe.MatchString(s) {
		return s
	}
	return quote(s)
}

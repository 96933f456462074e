// Package pack reads and writes the tool's YAML manifest format.
package pack

import (
	"bytes"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/Erisia/cursetool/manifest"
	"github.com/Erisia/cursetool/pack/yamlspec"
)

// Encode serializes a manifest in canonical form: entries in manifest
// order, fixed key order per entry, two-space indent. The same
// manifest always encodes to the same bytes.
func Encode(m *manifest.Manifest) ([]byte, error) {
	doc := make(yamlspec.Manifest, len(m.Mods))
	for i, mod := range m.Mods {
		doc[i] = yamlspec.Mod{
			ID:          mod.ID,
			Name:        mod.Name,
			Version:     mod.Version,
			DownloadURL: mod.DownloadURL,
			Checksum:    mod.Checksum,
			Side:        mod.Side,
			Required:    mod.Required,
			Maturity:    mod.Maturity,
			PageURL:     mod.PageURL,
		}
	}

	var buf bytes.Buffer
	e := yaml.NewEncoder(&buf)
	e.SetIndent(2)
	if err := e.Encode(doc); err != nil {
		return nil, eris.Wrap(err, "encode yaml manifest")
	}
	if err := e.Close(); err != nil {
		return nil, eris.Wrap(err, "encode yaml manifest")
	}
	return buf.Bytes(), nil
}

// Decode parses a YAML manifest. Unknown keys are ignored; a missing
// id or version, a scalar of the wrong type, or a duplicate id is an
// error.
func Decode(src []byte) (*manifest.Manifest, error) {
	var doc yamlspec.Manifest
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, eris.Wrap(err, "parse yaml manifest")
	}

	mods := make([]manifest.Mod, 0, len(doc))
	for i, e := range doc {
		if e.ID == "" {
			return nil, eris.Wrapf(manifest.ErrMissingField, "entry %d: id", i)
		}
		if e.Version == "" {
			return nil, eris.Wrapf(manifest.ErrMissingField, "entry %q: version", e.ID)
		}
		mods = append(mods, manifest.Mod{
			ID:          e.ID,
			Name:        e.Name,
			Version:     e.Version,
			DownloadURL: e.DownloadURL,
			Checksum:    e.Checksum,
			Side:        e.Side,
			Required:    e.Required,
			Maturity:    e.Maturity,
			PageURL:     e.PageURL,
		})
	}

	m, err := manifest.New(mods)
	if err != nil {
		return nil, eris.Wrap(err, "yaml manifest")
	}
	return m, nil
}

// Format rewrites a YAML manifest into canonical encoding.
func Format(src []byte) ([]byte, error) {
	m, err := Decode(src)
	if err != nil {
		return nil, err
	}
	return Encode(m)
}

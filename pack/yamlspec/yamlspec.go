// Package yamlspec defines the tool's own YAML manifest schema. The
// schema is versioned: unknown keys are accepted so older tools keep
// reading newer manifests.
package yamlspec

type Manifest = []Mod

type Mod struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name,omitempty"`
	Version     string `yaml:"version"`
	DownloadURL string `yaml:"download_url,omitempty"`
	Checksum    string `yaml:"checksum,omitempty"`
	Side        string `yaml:"side,omitempty"`
	Required    *bool  `yaml:"required,omitempty"`
	Maturity    string `yaml:"maturity,omitempty"`
	PageURL     string `yaml:"page_url,omitempty"`
}

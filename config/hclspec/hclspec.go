// Package hclspec defines the optional cursetool configuration file.
// Both blocks and all attributes may be omitted; missing values fall
// back to compiled-in defaults.
package hclspec

type Config struct {
	Curse *Curse `hcl:"curse,block"`
	Nix   *Nix   `hcl:"nix,block"`
}

type Curse struct {
	// BaseURL overrides the Forge service endpoint used to derive
	// pinned download URLs.
	BaseURL string `hcl:"base_url,optional"`
}

type Nix struct {
	// Required lists the attributes every generated entry must
	// provide.
	Required []string `hcl:"required,optional"`
}

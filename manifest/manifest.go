package manifest

import (
	"github.com/rotisserie/eris"
)

type Mod struct {
	// ID is the stable identifier for the mod within a manifest.
	// For entries imported from a Curse manifest this is the
	// "projectID:fileID" pair; for hand-written manifests it is
	// usually the mod slug.
	ID string

	// Name is the human-readable mod name.
	Name string

	// Version is the pinned release identifier.
	// For Curse entries this is the file ID.
	Version string

	// DownloadURL is the source location of the pinned artifact.
	DownloadURL string

	// Checksum is an algorithm-prefixed integrity hash
	// (e.g. "sha256:…"), when known.
	Checksum string

	// Side specifies where the mod is loaded ("client", "server").
	Side string

	// Required reports whether the mod is mandatory for the pack.
	Required *bool

	// Maturity is the release maturity ("alpha", "beta", "release").
	Maturity string

	// PageURL is the mod project page.
	PageURL string
}

type Manifest struct {
	Mods []Mod
}

// New builds a manifest from mods, preserving their order.
func New(mods []Mod) (*Manifest, error) {
	seen := make(map[string]struct{}, len(mods))
	for _, m := range mods {
		if _, ok := seen[m.ID]; ok {
			return nil, eris.Wrapf(ErrDuplicateEntry, "mod %q", m.ID)
		}
		seen[m.ID] = struct{}{}
	}
	return &Manifest{Mods: mods}, nil
}

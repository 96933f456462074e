// Package curse decodes Curse API modpack manifests into pinned
// manifests.
package curse

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/Erisia/cursetool/curse/jsonspec"
	"github.com/Erisia/cursetool/manifest"
)

// DefaultBaseURL is the Forge service endpoint the download URLs are
// derived from.
const DefaultBaseURL = "https://addons-ecs.forgesvc.net/api/v2"

// Decode parses a Curse JSON manifest into a pinned manifest,
// preserving file order. Entries are identified by their
// "projectID:fileID" pair and pinned to the download URL derived from
// baseURL. An empty baseURL selects DefaultBaseURL.
func Decode(src []byte, baseURL string) (*manifest.Manifest, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	var cm jsonspec.Manifest
	d := json.NewDecoder(bytes.NewReader(src))
	if err := d.Decode(&cm); err != nil {
		return nil, eris.Wrap(err, "parse curse manifest")
	}

	mods := make([]manifest.Mod, 0, len(cm.Files))
	for i, cf := range cm.Files {
		if cf.ProjectID <= 0 {
			return nil, eris.Wrapf(manifest.ErrMissingField, "file %d: projectID", i)
		}
		if cf.FileID <= 0 {
			return nil, eris.Wrapf(manifest.ErrMissingField, "file %d: fileID", i)
		}
		required := cf.Required
		mods = append(mods, manifest.Mod{
			ID:          FileID(cf),
			Version:     strconv.Itoa(cf.FileID),
			DownloadURL: downloadURL(baseURL, cf.ProjectID, cf.FileID),
			Required:    &required,
		})
	}

	m, err := manifest.New(mods)
	if err != nil {
		return nil, eris.Wrap(err, "curse manifest")
	}
	return m, nil
}

// FileID is the manifest identifier for a Curse manifest file entry.
func FileID(f jsonspec.File) string {
	return fmt.Sprintf("%d:%d", f.ProjectID, f.FileID)
}

func downloadURL(baseURL string, projectID, fileID int) string {
	return fmt.Sprintf("%s/addon/%d/file/%d/download-url", baseURL, projectID, fileID)
}

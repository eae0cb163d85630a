package build

import (
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/docsite/internal/gitinfo"
	"git.home.luguber.info/inful/docsite/internal/manifest"
)

// GitLastUpdated returns a factory that reads last-updated times from the git
// repository containing the content directory. root is the OS directory the
// service filesystem is based on.
func GitLastUpdated(root string) LastUpdatedFactory {
	return func(contentDir string) (manifest.LastUpdatedFunc, error) {
		dir := filepath.Join(root, contentDir)
		repo, err := gitinfo.Open(dir)
		if err != nil {
			return nil, err
		}
		return func(path string) (time.Time, error) {
			return repo.LastUpdated(filepath.Join(dir, filepath.FromSlash(path)))
		}, nil
	}
}

package scanner

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"imagemerger/logging"
	"imagemerger/types"
)

// CollectImages lists the immediate entries of dir and returns the regular
// files with a supported image extension. Subdirectories are not descended.
// The result carries no meaningful order; callers sort it.
func CollectImages(dir string) ([]types.ImageFileEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot list folder %s", dir)
	}

	var images []types.ImageFileEntry
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if !IsImageFile(path) {
			continue
		}

		// Stat follows symlinks so a link to an image counts like the image itself
		info, err := os.Stat(path)
		if err != nil {
			logging.LogWarning("Cannot stat %s: %v", path, err)
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}

		images = append(images, types.ImageFileEntry{
			Path:    path,
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	if len(images) == 0 {
		return nil, &types.NoImagesFoundError{Dir: dir}
	}

	logging.DebugLog("Found %d image files in %s", len(images), dir)
	return images, nil
}

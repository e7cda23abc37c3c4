package imageprocessor

import (
	"fmt"
	"image"
	"runtime/debug"

	"imagemerger/logging"
	"imagemerger/types"
)

// LoadedImage is a decoded input together with the file it came from
type LoadedImage struct {
	Entry types.ImageFileEntry
	Image image.Image
}

// LoadResult reports the outcome of decoding one file
type LoadResult struct {
	Entry types.ImageFileEntry
	Size  image.Point
	Err   error
}

// Success reports whether the file was decoded
func (r LoadResult) Success() bool { return r.Err == nil }

// loadOne decodes a single file, turning a decoder panic into an error
func loadOne(registry *ImageLoaderRegistry, path string) (img image.Image, err error) {
	defer func() {
		if r := recover(); r != nil {
			stackTrace := debug.Stack()
			err = fmt.Errorf("panic during image loading: %v", r)
			logging.LogError("Panic during image loading: %v, file: %s\nStack trace: %s", r, path, string(stackTrace))
			img = nil
		}
	}()

	return registry.LoadImage(path)
}

// LoadAll decodes entries in order. Files that fail to decode are reported
// and left out; the others keep their relative order. report may be nil.
// When nothing could be decoded a *types.NoLoadableImagesError is returned.
func LoadAll(registry *ImageLoaderRegistry, entries []types.ImageFileEntry, report func(LoadResult)) ([]LoadedImage, error) {
	loaded := make([]LoadedImage, 0, len(entries))

	for _, entry := range entries {
		img, err := loadOne(registry, entry.Path)
		result := LoadResult{Entry: entry, Err: err}
		if err == nil {
			result.Size = img.Bounds().Size()
			loaded = append(loaded, LoadedImage{Entry: entry, Image: img})
			logging.LogImageLoaded(entry.Path, true, "")
		} else {
			logging.LogImageLoaded(entry.Path, false, err.Error())
		}
		if report != nil {
			report(result)
		}
	}

	if len(loaded) == 0 {
		return nil, &types.NoLoadableImagesError{Attempted: len(entries)}
	}
	return loaded, nil
}

// Images returns the rasters of loaded in order
func Images(loaded []LoadedImage) []image.Image {
	images := make([]image.Image, len(loaded))
	for i, l := range loaded {
		images[i] = l.Image
	}
	return images
}

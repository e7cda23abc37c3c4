// Package imageprocessor decodes input files into rasters and composites
// them into a single canvas.
package imageprocessor

import "image"

// ImageLoader is the interface that all image loaders must implement
type ImageLoader interface {
	// CanLoad checks if the loader can handle the given file
	CanLoad(path string) bool

	// LoadImage decodes the file and returns the raster. The file handle is
	// released before LoadImage returns.
	LoadImage(path string) (image.Image, error)
}

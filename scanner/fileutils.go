package scanner

import "imagemerger/imageprocessor"

// IsImageFile checks if a file extension belongs to a supported input image.
// The collector accepts exactly the extensions the loader registry decodes.
func IsImageFile(path string) bool {
	return imageprocessor.IsImageFile(path)
}

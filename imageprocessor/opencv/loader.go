// Package opencv provides an OpenCV-backed fallback decoder for inputs the
// Go decoders reject, such as BMP variants golang.org/x/image/bmp does not
// handle.
package opencv

import (
	"fmt"
	"image"
	"os"

	"gocv.io/x/gocv"

	"imagemerger/imageprocessor"
)

// Loader decodes images with gocv.IMRead
type Loader struct {
	Flags gocv.IMReadFlag
}

// NewLoader creates a loader that reads images as 3-channel color
func NewLoader() *Loader {
	return &Loader{Flags: gocv.IMReadColor}
}

// CanLoad checks the extension and that the file is readable
func (l *Loader) CanLoad(path string) bool {
	if !imageprocessor.IsImageFile(path) {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// LoadImage reads path with OpenCV and converts the Mat to an image.Image
func (l *Loader) LoadImage(path string) (image.Image, error) {
	mat := gocv.IMRead(path, l.Flags)
	defer mat.Close()

	if mat.Empty() {
		return nil, fmt.Errorf("failed to load image with OpenCV: %s", path)
	}

	img, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("cannot convert OpenCV image %s: %w", path, err)
	}
	return img, nil
}

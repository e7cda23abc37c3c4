package types

import "fmt"

// InvalidPathError is returned when the source folder does not exist or is not a directory
type InvalidPathError struct {
	Path string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("path '%s' is not a valid folder", e.Path)
}

// NoImagesFoundError is returned when the source folder holds no supported image files
type NoImagesFoundError struct {
	Dir string
}

func (e *NoImagesFoundError) Error() string {
	return fmt.Sprintf("no image files found in '%s'", e.Dir)
}

// NoLoadableImagesError is returned when every collected file failed to decode
type NoLoadableImagesError struct {
	Attempted int
}

func (e *NoLoadableImagesError) Error() string {
	if e.Attempted == 0 {
		return "no valid images to merge"
	}
	return fmt.Sprintf("no valid images to merge (%d file(s) could not be loaded)", e.Attempted)
}

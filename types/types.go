package types

import "time"

// ImageFileEntry describes one candidate input file found in the source folder
type ImageFileEntry struct {
	Path    string    `json:"path"`
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"modified_at"`
}

// SortMode selects how collected files are ordered before merging
type SortMode int

// Sort modes, numbered the way they are offered to the operator
const (
	SortAlphabetical SortMode = iota + 1
	SortNatural
	SortModTimeAsc
	SortModTimeDesc
	SortSizeAsc
	SortSizeDesc
)

// Direction is the axis along which images are concatenated
type Direction string

const (
	Horizontal Direction = "h"
	Vertical   Direction = "v"
)

// OutputFormat is the encoding used for the merged image
type OutputFormat string

const (
	FormatJPG OutputFormat = "jpg"
	FormatPNG OutputFormat = "png"
	FormatBMP OutputFormat = "bmp"
)

// Extension returns the file extension (with leading dot) for the format
func (f OutputFormat) Extension() string {
	return "." + string(f)
}

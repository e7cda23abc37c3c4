// Package output encodes the merged canvas and places it in the destination
// folder, resolving name collisions with an existing file.
package output

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/image/bmp"

	"imagemerger/logging"
	"imagemerger/types"
	"imagemerger/utils"
)

// DefaultJPEGQuality matches the quality the merged JPEGs have always been written with
const DefaultJPEGQuality = 75

// DefaultBaseName returns the suggested output name for a merge started at now
func DefaultBaseName(now time.Time) string {
	return "merged_image_" + utils.Timestamp(now)
}

// ParseFormat maps the operator's answer to an output format. Anything
// unrecognized, including a blank answer, selects JPEG.
func ParseFormat(answer string) types.OutputFormat {
	switch types.OutputFormat(strings.ToLower(strings.TrimSpace(answer))) {
	case types.FormatPNG:
		return types.FormatPNG
	case types.FormatBMP:
		return types.FormatBMP
	default:
		return types.FormatJPG
	}
}

// Resolution records what happened to a pre-existing file at the target path
type Resolution struct {
	// Replaced is set when an existing file was deleted so the new one can take its name
	Replaced bool
	// Renamed is set when the existing file could not be deleted and a
	// timestamped name was chosen instead
	Renamed bool
	// Warning holds the deletion error behind a rename
	Warning error
}

// Writer saves merged images into Dir
type Writer struct {
	Dir         string
	JPEGQuality int
	Now         func() time.Time
	Remove      func(string) error
}

// NewWriter creates a writer for dir using the real clock and filesystem
func NewWriter(dir string, jpegQuality int) *Writer {
	return &Writer{
		Dir:         dir,
		JPEGQuality: jpegQuality,
		Now:         time.Now,
		Remove:      os.Remove,
	}
}

// ResolvePath returns the path the image will be written to. When a file
// already exists there it is deleted; if the delete fails, or the name is
// taken by a directory, the base name gets a timestamp suffix and the
// existing entry is left alone.
func (w *Writer) ResolvePath(base string, format types.OutputFormat) (string, Resolution) {
	var res Resolution
	path := filepath.Join(w.Dir, base+format.Extension())

	info, err := os.Lstat(path)
	if err != nil {
		return path, res
	}

	if info.IsDir() {
		err = errors.Errorf("%s is a directory", path)
	} else if err = w.remove(path); err == nil {
		logging.LogInfo("Deleted existing file: %s", path)
		res.Replaced = true
		return path, res
	}

	res.Renamed = true
	res.Warning = err
	renamed := filepath.Join(w.Dir, base+"_"+utils.Timestamp(w.now())+format.Extension())
	logging.LogWarning("Could not delete %s (%v), using %s", path, res.Warning, renamed)
	return renamed, res
}

// Save encodes img in the given format and writes it under base in Dir.
// The image is encoded in memory and written to a temporary file that is
// renamed into place, so the output name never holds a partial image.
func (w *Writer) Save(img image.Image, base string, format types.OutputFormat) (string, Resolution, error) {
	data, err := w.encode(img, format)
	if err != nil {
		return "", Resolution{}, errors.Wrapf(err, "failed to encode %s image", format)
	}

	tmpPath, err := writeTemp(w.Dir, base, data)
	if err != nil {
		return "", Resolution{}, err
	}

	path, res := w.ResolvePath(base, format)
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", res, errors.Wrapf(err, "failed to write %s", path)
	}

	logging.LogInfo("Saved merged image: %s (%s)", path, utils.FormatKB(int64(len(data))))
	return path, res, nil
}

// writeTemp stores data in a hidden temporary file inside dir
func writeTemp(dir, base string, data []byte) (string, error) {
	f, err := os.CreateTemp(dir, "."+base+"-*.tmp")
	if err != nil {
		return "", errors.Wrapf(err, "failed to create output file in %s", dir)
	}
	tmpPath := f.Name()

	_, err = f.Write(data)
	if err == nil {
		err = f.Chmod(0644)
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmpPath)
		return "", errors.Wrapf(err, "failed to write %s", tmpPath)
	}
	return tmpPath, nil
}

func (w *Writer) encode(img image.Image, format types.OutputFormat) ([]byte, error) {
	var buf bytes.Buffer
	var err error

	switch format {
	case types.FormatPNG:
		err = png.Encode(&buf, img)
	case types.FormatBMP:
		err = bmp.Encode(&buf, img)
	case types.FormatJPG:
		quality := w.JPEGQuality
		if quality <= 0 {
			quality = DefaultJPEGQuality
		}
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality})
	default:
		err = errors.Errorf("unsupported output format %q", format)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (w *Writer) now() time.Time {
	if w.Now == nil {
		return time.Now()
	}
	return w.Now()
}

func (w *Writer) remove(path string) error {
	if w.Remove == nil {
		return os.Remove(path)
	}
	return w.Remove(path)
}

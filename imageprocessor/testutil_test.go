package imageprocessor

import (
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"

	"imagemerger/types"
)

// solid returns a w×h image filled with c
func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// writeImage encodes img into dir/name using the format implied by the extension
func writeImage(t *testing.T, dir, name string, img image.Image) types.ImageFileEntry {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	switch GetFileFormat(path) {
	case FormatPNG:
		err = png.Encode(f, img)
	case FormatJPEG:
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 95})
	case FormatGIF:
		err = gif.Encode(f, img, nil)
	case FormatBMP:
		err = bmp.Encode(f, img)
	default:
		t.Fatalf("unsupported test format: %s", name)
	}
	if err != nil {
		t.Fatal(err)
	}

	info, err := f.Stat()
	if err != nil {
		t.Fatal(err)
	}
	return types.ImageFileEntry{Path: path, Name: name, Size: info.Size(), ModTime: info.ModTime()}
}

// writeGarbage creates a file with an image extension but no image content
func writeGarbage(t *testing.T, dir, name string) types.ImageFileEntry {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("definitely not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	return types.ImageFileEntry{Path: path, Name: name, Size: 23}
}

func renameFile(from, to string) error {
	return os.Rename(from, to)
}

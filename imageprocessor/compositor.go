package imageprocessor

import (
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/draw"

	"imagemerger/types"
)

// Background is the color of canvas areas no image covers, and the color
// transparent pixels are flattened onto
var Background = color.RGBA{A: 0xff}

// ParseDirection maps the operator's answer to a direction. A blank answer
// selects def; "h" selects horizontal and anything else vertical.
func ParseDirection(answer string, def types.Direction) types.Direction {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "":
		if def == types.Horizontal {
			return types.Horizontal
		}
		return types.Vertical
	case string(types.Horizontal):
		return types.Horizontal
	default:
		return types.Vertical
	}
}

// Layout computes the canvas bounds and the top-left offset of every image
// for concatenation along dir. Horizontal layouts are top-aligned and
// vertical layouts are left-aligned; nothing is centered or scaled.
func Layout(sizes []image.Point, dir types.Direction) (image.Rectangle, []image.Point) {
	offsets := make([]image.Point, len(sizes))
	var width, height int

	for i, sz := range sizes {
		if dir == types.Horizontal {
			offsets[i] = image.Pt(width, 0)
			width += sz.X
			height = max(height, sz.Y)
		} else {
			offsets[i] = image.Pt(0, height)
			height += sz.Y
			width = max(width, sz.X)
		}
	}

	return image.Rect(0, 0, width, height), offsets
}

// Composite concatenates images along dir onto a new canvas. The canvas is
// fully opaque: uncovered areas are Background and images with an alpha
// channel are drawn over Background, so the output carries color channels
// only. The canvas size is fixed by Layout before any pixel is copied.
func Composite(images []image.Image, dir types.Direction) (*image.RGBA, error) {
	if len(images) == 0 {
		return nil, &types.NoLoadableImagesError{}
	}

	sizes := make([]image.Point, len(images))
	for i, img := range images {
		sizes[i] = img.Bounds().Size()
	}
	bounds, offsets := Layout(sizes, dir)

	canvas := image.NewRGBA(bounds)
	draw.Draw(canvas, bounds, image.NewUniform(Background), image.Point{}, draw.Src)

	for i, img := range images {
		target := image.Rectangle{Min: offsets[i], Max: offsets[i].Add(sizes[i])}
		draw.Draw(canvas, target, img, img.Bounds().Min, draw.Over)
	}

	return canvas, nil
}

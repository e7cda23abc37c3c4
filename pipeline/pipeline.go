// Package pipeline holds the merge stages. Order, Load, Merge and Save are
// the steps the interactive session calls between its questions; Run chains
// them for a fully resolved Plan and performs no prompting.
package pipeline

import (
	"image"
	"time"

	"github.com/pkg/errors"

	"imagemerger/imageprocessor"
	"imagemerger/logging"
	"imagemerger/ordering"
	"imagemerger/output"
	"imagemerger/scanner"
	"imagemerger/types"
)

// Plan is the complete set of answers for one merge
type Plan struct {
	SourceDir   string
	OutputDir   string
	Mode        types.SortMode
	Permutation []int // 1-based, nil keeps the sorted order
	Direction   types.Direction
	BaseName    string // blank selects the timestamped default
	Format      types.OutputFormat
}

// Options carries the collaborators Run needs
type Options struct {
	Registry    *imageprocessor.ImageLoaderRegistry
	JPEGQuality int
	Now         func() time.Time
	// Report, when set, is called after every decode attempt
	Report func(imageprocessor.LoadResult)
}

// Result describes a finished merge
type Result struct {
	Path       string
	Resolution output.Resolution
	Size       image.Point
	Merged     []types.ImageFileEntry
	Skipped    []types.ImageFileEntry
	// OrderIgnored is set when Permutation named a missing position and the
	// sorted order was used instead
	OrderIgnored bool
}

// Order sorts entries by mode and then applies perm
func Order(entries []types.ImageFileEntry, mode types.SortMode, perm []int) []types.ImageFileEntry {
	return ordering.ApplyPermutation(ordering.Sort(entries, mode), perm)
}

// Merge concatenates the loaded images along dir
func Merge(loaded []imageprocessor.LoadedImage, dir types.Direction) (*image.RGBA, error) {
	if dir != types.Horizontal {
		dir = types.Vertical
	}
	return imageprocessor.Composite(imageprocessor.Images(loaded), dir)
}

// Load decodes entries in order, skipping files that fail. A nil registry
// uses the built-in decoders.
func Load(registry *imageprocessor.ImageLoaderRegistry, entries []types.ImageFileEntry, report func(imageprocessor.LoadResult)) ([]imageprocessor.LoadedImage, error) {
	if registry == nil {
		registry = imageprocessor.NewImageLoaderRegistry()
	}
	return imageprocessor.LoadAll(registry, entries, report)
}

// Save writes canvas into dir. A blank base selects the timestamped default
// name and a blank format selects JPEG.
func Save(canvas image.Image, dir, base string, format types.OutputFormat, opts Options) (string, output.Resolution, error) {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	if base == "" {
		base = output.DefaultBaseName(now())
	}
	if format == "" {
		format = types.FormatJPG
	}

	writer := output.NewWriter(dir, opts.JPEGQuality)
	writer.Now = now
	path, res, err := writer.Save(canvas, base, format)
	if err != nil {
		return "", res, errors.Wrap(err, "saving merged image")
	}
	return path, res, nil
}

// Run collects, orders, loads, composites and saves according to plan
func Run(plan Plan, opts Options) (*Result, error) {
	entries, err := scanner.CollectImages(plan.SourceDir)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	perm := plan.Permutation
	for _, idx := range perm {
		if idx < 1 || idx > len(entries) {
			logging.LogWarning("Ignoring manual order %v: position %d outside 1-%d", perm, idx, len(entries))
			result.OrderIgnored = true
			perm = nil
			break
		}
	}
	ordered := Order(entries, plan.Mode, perm)
	logging.DebugLog("Merging %d file(s) from %s, sorted by %s", len(ordered), plan.SourceDir, ordering.ModeLabel(plan.Mode))

	loaded, err := Load(opts.Registry, ordered, func(r imageprocessor.LoadResult) {
		if !r.Success() {
			result.Skipped = append(result.Skipped, r.Entry)
		}
		if opts.Report != nil {
			opts.Report(r)
		}
	})
	if err != nil {
		return nil, err
	}
	for _, l := range loaded {
		result.Merged = append(result.Merged, l.Entry)
	}

	canvas, err := Merge(loaded, plan.Direction)
	if err != nil {
		return nil, err
	}
	result.Size = canvas.Bounds().Size()

	outDir := plan.OutputDir
	if outDir == "" {
		outDir = plan.SourceDir
	}
	result.Path, result.Resolution, err = Save(canvas, outDir, plan.BaseName, plan.Format, opts)
	if err != nil {
		return nil, err
	}
	return result, nil
}

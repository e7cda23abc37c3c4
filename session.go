package main

import (
	"fmt"
	"image"
	"path/filepath"
	"runtime/debug"
	"time"

	"imagemerger/config"
	"imagemerger/imageprocessor"
	"imagemerger/logging"
	"imagemerger/ordering"
	"imagemerger/output"
	"imagemerger/pipeline"
	"imagemerger/prompt"
	"imagemerger/scanner"
	"imagemerger/types"
)

// session walks the operator through one merge
type session struct {
	prompter   *prompt.Prompter
	cfg        *config.Config
	registry   *imageprocessor.ImageLoaderRegistry
	workingDir string
	now        func() time.Time
}

// runAndWait runs the merge, reports the outcome and waits for the operator
// to acknowledge it, whether the merge succeeded or not
func (s *session) runAndWait() {
	p := s.prompter
	p.Println("Image Merger")
	p.Println("------------")

	if err := s.run(); err != nil {
		logging.LogError("Merge aborted: %v", err)
		p.Error("%v", err)
	} else {
		p.Success("Done!")
	}
	p.WaitForExit()
}

func (s *session) run() (err error) {
	defer func() {
		if r := recover(); r != nil {
			logging.LogError("Unexpected panic: %v\nStack trace: %s", r, string(debug.Stack()))
			err = fmt.Errorf("unexpected error: %v", r)
		}
	}()

	sourceDir, outputDir, err := s.askFolders()
	if err != nil {
		return err
	}

	entries, err := scanner.CollectImages(sourceDir)
	if err != nil {
		return err
	}

	ordered, err := s.askOrder(entries)
	if err != nil {
		return err
	}

	loaded, err := s.load(ordered)
	if err != nil {
		return err
	}

	canvas, err := s.composite(loaded)
	if err != nil {
		return err
	}

	return s.save(canvas, outputDir)
}

func (s *session) askFolders() (string, string, error) {
	p := s.prompter

	answer, err := p.Ask("Folder containing the images (Enter for the current folder): ")
	if err != nil {
		return "", "", err
	}
	sourceDir, err := scanner.ResolveSourceDir(answer, s.workingDir)
	if err != nil {
		return "", "", err
	}
	if scanner.NormalizePathInput(answer) == "" {
		p.Info("Using current working folder: %s", sourceDir)
	}
	p.Info("Using folder: %s", sourceDir)

	answer, err = p.Ask("Folder to save the result in (Enter for the same folder): ")
	if err != nil {
		return "", "", err
	}
	outputDir, created, warning := scanner.ResolveOutputDir(answer, sourceDir)
	switch {
	case warning != nil:
		p.Warn("%v", warning)
		p.Info("Saving to the source folder instead: %s", outputDir)
	case created:
		p.Info("Created output folder: %s", outputDir)
	}

	return sourceDir, outputDir, nil
}

func (s *session) askOrder(entries []types.ImageFileEntry) ([]types.ImageFileEntry, error) {
	p := s.prompter

	p.Println()
	p.Println("How should the images be ordered?")
	for _, mode := range ordering.Modes() {
		p.Printf("%d. %s\n", mode, ordering.ModeLabel(mode))
	}
	answer, err := p.Ask(fmt.Sprintf("Choice (1-6, default %d): ", s.cfg.Defaults.Sort))
	if err != nil {
		return nil, err
	}
	mode := types.SortMode(s.cfg.Defaults.Sort)
	if answer != "" {
		mode = ordering.ParseSortMode(answer)
	}

	ordered := pipeline.Order(entries, mode, nil)
	p.Info("Sorted %s", ordering.ModeLabel(mode))

	p.Println()
	p.Println("Files in merge order:")
	prompt.PrintEntries(p.Out(), ordered, true)

	p.Println()
	adjust, err := p.AskYesNo("Adjust the order manually? (y/n, default n): ", false)
	if err != nil || !adjust {
		return ordered, err
	}

	p.Println()
	p.Println("Enter the new order, e.g. '3,1,2,4' puts the 3rd file first, then the 1st, and so on.")
	answer, err = p.Ask("New order (comma separated, Enter keeps the current order): ")
	if err != nil {
		return nil, err
	}
	perm, err := ordering.ParsePermutation(answer, len(ordered))
	if err != nil {
		logging.LogWarning("Manual order rejected: %v", err)
		p.Warn("%v; keeping the current order", err)
		return ordered, nil
	}
	if perm == nil {
		return ordered, nil
	}

	ordered = pipeline.Order(entries, mode, perm)
	p.Info("New order applied")
	p.Println()
	p.Println("Adjusted order:")
	prompt.PrintEntries(p.Out(), ordered, false)
	return ordered, nil
}

func (s *session) load(entries []types.ImageFileEntry) ([]imageprocessor.LoadedImage, error) {
	p := s.prompter

	p.Println()
	p.Printf("Preparing to merge %d image file(s)...\n", len(entries))

	tracker := imageprocessor.NewLoadTracker()
	loaded, err := pipeline.Load(s.registry, entries, func(r imageprocessor.LoadResult) {
		tracker.Record(r)
		if r.Success() {
			p.Printf("Loaded: %s\n", r.Entry.Name)
			return
		}
		p.Warn("cannot load image %s: %v", r.Entry.Path, r.Err)
	})
	if len(tracker.Failed()) > 0 {
		tracker.PrintCompletionStats(p.Out())
	}
	return loaded, err
}

func (s *session) composite(loaded []imageprocessor.LoadedImage) (*image.RGBA, error) {
	def := types.Direction(s.cfg.Defaults.Direction)
	defLabel := "vertical"
	if def == types.Horizontal {
		defLabel = "horizontal"
	}

	answer, err := s.prompter.Ask(fmt.Sprintf("Merge direction (h = horizontal, v = vertical, default %s): ", defLabel))
	if err != nil {
		return nil, err
	}
	dir := imageprocessor.ParseDirection(answer, def)
	logging.DebugLog("Compositing %d image(s), direction %s", len(loaded), dir)
	return pipeline.Merge(loaded, dir)
}

func (s *session) save(canvas image.Image, outputDir string) error {
	p := s.prompter

	base, err := p.Ask("Output file name without extension (Enter for a timestamped name): ")
	if err != nil {
		return err
	}
	if base == "" {
		base = output.DefaultBaseName(s.now())
	}

	answer, err := p.Ask(fmt.Sprintf("Output format (jpg/png/bmp, default %s): ", s.cfg.Defaults.Format))
	if err != nil {
		return err
	}
	if answer == "" {
		answer = s.cfg.Defaults.Format
	}
	format := output.ParseFormat(answer)

	path, res, err := pipeline.Save(canvas, outputDir, base, format, pipeline.Options{
		Registry:    s.registry,
		JPEGQuality: s.cfg.Output.JPEGQuality,
		Now:         s.now,
	})

	target := filepath.Join(outputDir, base+format.Extension())
	switch {
	case res.Replaced:
		p.Info("Deleted existing file: %s", target)
	case res.Renamed:
		p.Warn("cannot delete existing file %s: %v", target, res.Warning)
		p.Info("Using new file name: %s", filepath.Base(path))
	}
	if err != nil {
		return err
	}

	p.Success("Images merged, saved as: %s", path)
	return nil
}

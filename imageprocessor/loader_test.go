package imageprocessor

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"imagemerger/types"
)

func TestStandardLoader_AllFormats(t *testing.T) {
	dir := t.TempDir()
	registry := NewImageLoaderRegistry()
	src := solid(7, 5, color.RGBA{R: 200, G: 10, B: 10, A: 255})

	for _, name := range []string{"a.png", "b.jpg", "c.jpeg", "d.gif", "e.bmp", "F.PNG"} {
		t.Run(name, func(t *testing.T) {
			entry := writeImage(t, dir, name, src)
			if !registry.CanLoadFile(entry.Path) {
				t.Fatalf("CanLoadFile(%s) = false", name)
			}
			img, err := registry.LoadImage(entry.Path)
			if err != nil {
				t.Fatal(err)
			}
			if got := img.Bounds().Size(); got != image.Pt(7, 5) {
				t.Errorf("size = %v, want 7x5", got)
			}
		})
	}
}

func TestStandardLoader_MislabeledFile(t *testing.T) {
	dir := t.TempDir()
	// PNG content behind a .jpg name is still decoded
	entry := writeImage(t, dir, "real.png", solid(3, 3, color.White))
	renamed := entry.Path[:len(entry.Path)-len(".png")] + ".jpg"
	if err := renameFile(entry.Path, renamed); err != nil {
		t.Fatal(err)
	}
	if _, err := NewImageLoaderRegistry().LoadImage(renamed); err != nil {
		t.Fatalf("LoadImage(mislabeled) error = %v", err)
	}
}

func TestRegistry_UnknownExtension(t *testing.T) {
	registry := NewImageLoaderRegistry()
	if registry.CanLoadFile("x.tiff") {
		t.Error("CanLoadFile(.tiff) = true")
	}
	if _, err := registry.LoadImage("x.tiff"); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

type stubLoader struct {
	img   image.Image
	err   error
	calls int
}

func (s *stubLoader) CanLoad(path string) bool { return true }

func (s *stubLoader) LoadImage(path string) (image.Image, error) {
	s.calls++
	return s.img, s.err
}

func TestRegistry_Fallback(t *testing.T) {
	dir := t.TempDir()
	bad := writeGarbage(t, dir, "odd.bmp")

	registry := NewImageLoaderRegistry()
	fb := &stubLoader{img: solid(2, 2, color.Black)}
	registry.RegisterFallback(fb)

	img, err := registry.LoadImage(bad.Path)
	if err != nil {
		t.Fatalf("LoadImage with fallback error = %v", err)
	}
	if img.Bounds().Dx() != 2 || fb.calls != 1 {
		t.Errorf("fallback not used: size %v, calls %d", img.Bounds(), fb.calls)
	}

	// Fallback is not consulted when the primary loader succeeds
	good := writeImage(t, dir, "ok.png", solid(4, 4, color.White))
	if _, err := registry.LoadImage(good.Path); err != nil {
		t.Fatal(err)
	}
	if fb.calls != 1 {
		t.Errorf("fallback calls = %d, want 1", fb.calls)
	}
}

func TestRegistry_FallbackFailureReturnsPrimaryError(t *testing.T) {
	bad := writeGarbage(t, t.TempDir(), "odd.png")
	registry := NewImageLoaderRegistry()
	registry.RegisterFallback(&stubLoader{err: errors.New("fallback failed")})

	_, err := registry.LoadImage(bad.Path)
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() == "fallback failed" {
		t.Error("expected the primary decoder error, got the fallback error")
	}
}

type panicLoader struct{}

func (panicLoader) CanLoad(string) bool { return true }

func (panicLoader) LoadImage(string) (image.Image, error) { panic("decoder exploded") }

func TestLoadAll_SkipsFailures(t *testing.T) {
	dir := t.TempDir()
	entries := []types.ImageFileEntry{
		writeImage(t, dir, "1.png", solid(10, 10, color.White)),
		writeGarbage(t, dir, "2.png"),
		writeImage(t, dir, "3.jpg", solid(20, 5, color.White)),
	}

	var results []LoadResult
	tracker := NewLoadTracker()
	loaded, err := LoadAll(NewImageLoaderRegistry(), entries, func(r LoadResult) {
		results = append(results, r)
		tracker.Record(r)
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 2 {
		t.Fatalf("loaded %d images, want 2", len(loaded))
	}
	if loaded[0].Entry.Name != "1.png" || loaded[1].Entry.Name != "3.jpg" {
		t.Errorf("order = %s, %s", loaded[0].Entry.Name, loaded[1].Entry.Name)
	}
	if len(results) != 3 || results[1].Success() || !results[0].Success() {
		t.Errorf("unexpected results: %+v", results)
	}
	if results[2].Size != image.Pt(20, 5) {
		t.Errorf("reported size = %v, want 20x5", results[2].Size)
	}
	if tracker.Loaded() != 2 || len(tracker.Failed()) != 1 || tracker.Failed()[0] != entries[1].Path {
		t.Errorf("tracker loaded=%d failed=%v", tracker.Loaded(), tracker.Failed())
	}
	if got := len(Images(loaded)); got != 2 {
		t.Errorf("Images() len = %d", got)
	}
}

func TestLoadAll_NothingLoadable(t *testing.T) {
	dir := t.TempDir()
	entries := []types.ImageFileEntry{writeGarbage(t, dir, "a.png"), writeGarbage(t, dir, "b.gif")}

	_, err := LoadAll(NewImageLoaderRegistry(), entries, nil)
	var noLoadable *types.NoLoadableImagesError
	if !errors.As(err, &noLoadable) {
		t.Fatalf("error = %v, want NoLoadableImagesError", err)
	}
	if noLoadable.Attempted != 2 {
		t.Errorf("Attempted = %d, want 2", noLoadable.Attempted)
	}
}

func TestLoadAll_RecoversDecoderPanic(t *testing.T) {
	dir := t.TempDir()
	good := writeImage(t, dir, "good.png", solid(2, 2, color.White))

	registry := NewImageLoaderRegistry()
	registry.RegisterLoader(".gif", panicLoader{})
	boom := writeGarbage(t, dir, "boom.gif")

	loaded, err := LoadAll(registry, []types.ImageFileEntry{boom, good}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 1 || loaded[0].Entry.Name != "good.png" {
		t.Errorf("loaded = %+v", loaded)
	}
}

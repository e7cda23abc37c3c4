package imageprocessor

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"imagemerger/logging"
)

// LoadTracker counts decode outcomes while inputs are loaded
type LoadTracker struct {
	processed int
	errors    int
	failed    []string
	start     time.Time
}

// NewLoadTracker starts tracking a load pass
func NewLoadTracker() *LoadTracker {
	return &LoadTracker{start: time.Now()}
}

// Record updates the tracker with one load result
func (p *LoadTracker) Record(result LoadResult) {
	p.processed++
	if !result.Success() {
		p.errors++
		p.failed = append(p.failed, result.Entry.Path)
	}
}

// Loaded returns how many files decoded successfully
func (p *LoadTracker) Loaded() int { return p.processed - p.errors }

// Failed returns the paths of files that could not be decoded
func (p *LoadTracker) Failed() []string { return p.failed }

// PrintCompletionStats writes a short summary of the load pass to w
func (p *LoadTracker) PrintCompletionStats(w io.Writer) {
	elapsed := time.Since(p.start)

	logging.DebugLog("Loading completed in %v. Processed: %d, Errors: %d", elapsed, p.processed, p.errors)

	fmt.Fprintf(w, "Loaded %d/%d images.\n", p.Loaded(), p.processed)
	if p.errors > 0 {
		fmt.Fprintf(w, "Skipped %d file(s) that could not be loaded:\n", p.errors)
		for _, path := range p.failed {
			fmt.Fprintf(w, "  - %s\n", filepath.Base(path))
		}
	}
}

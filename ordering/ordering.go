// Package ordering sorts collected image files and applies the operator's
// manual reordering.
package ordering

import (
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"imagemerger/types"
)

// modeLabels are shown to the operator when choosing and after applying an ordering
var modeLabels = map[types.SortMode]string{
	types.SortAlphabetical: "by file name, alphabetical (a.jpg, b.jpg, ...)",
	types.SortNatural:      "by file name, natural (1.jpg, 2.jpg, 10.jpg, ...)",
	types.SortModTimeAsc:   "by modification time (oldest first)",
	types.SortModTimeDesc:  "by modification time (newest first)",
	types.SortSizeAsc:      "by file size (smallest first)",
	types.SortSizeDesc:     "by file size (largest first)",
}

// Modes returns all sort modes in menu order
func Modes() []types.SortMode {
	return []types.SortMode{
		types.SortAlphabetical,
		types.SortNatural,
		types.SortModTimeAsc,
		types.SortModTimeDesc,
		types.SortSizeAsc,
		types.SortSizeDesc,
	}
}

// ModeLabel returns the human-readable description of mode
func ModeLabel(mode types.SortMode) string {
	if label, ok := modeLabels[mode]; ok {
		return label
	}
	return modeLabels[types.SortAlphabetical]
}

// ParseSortMode converts the operator's menu answer ("1".."6") into a mode.
// Anything else selects alphabetical order.
func ParseSortMode(answer string) types.SortMode {
	n, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		return types.SortAlphabetical
	}
	mode := types.SortMode(n)
	if _, ok := modeLabels[mode]; !ok {
		return types.SortAlphabetical
	}
	return mode
}

// Sort returns a sorted copy of entries. Entries with equal keys keep their
// relative order, for the descending modes too.
func Sort(entries []types.ImageFileEntry, mode types.SortMode) []types.ImageFileEntry {
	sorted := make([]types.ImageFileEntry, len(entries))
	copy(sorted, entries)

	switch mode {
	case types.SortNatural:
		folder := cases.Fold()
		keys := make(map[string][]naturalChunk, len(sorted))
		for _, e := range sorted {
			keys[e.Path] = naturalKey(filepath.Base(e.Path), folder)
		}
		sort.SliceStable(sorted, func(i, j int) bool {
			return compareKeys(keys[sorted[i].Path], keys[sorted[j].Path]) < 0
		})
	case types.SortModTimeAsc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].ModTime.Before(sorted[j].ModTime)
		})
	case types.SortModTimeDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].ModTime.After(sorted[j].ModTime)
		})
	case types.SortSizeAsc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Size < sorted[j].Size
		})
	case types.SortSizeDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Size > sorted[j].Size
		})
	default:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Path < sorted[j].Path
		})
	}
	return sorted
}

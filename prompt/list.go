package prompt

import (
	"fmt"
	"io"
	"strconv"

	"github.com/mattn/go-runewidth"

	"imagemerger/types"
	"imagemerger/utils"
)

// PrintEntries writes the numbered file list, one "N. name (size KB)" line
// per entry. Names are padded into a column and truncated so each line fits
// the terminal. When withSize is false only index and name are shown.
func PrintEntries(w io.Writer, entries []types.ImageFileEntry, withSize bool) {
	width, ok := TerminalWidth(w)
	if !ok {
		width = defaultWidth
	}

	indexWidth := len(strconv.Itoa(len(entries)))
	nameWidth := 0
	sizes := make([]string, len(entries))
	sizeWidth := 0
	for i, e := range entries {
		nameWidth = max(nameWidth, runewidth.StringWidth(e.Name))
		if withSize {
			sizes[i] = "(" + utils.FormatKB(e.Size) + ")"
			sizeWidth = max(sizeWidth, len(sizes[i]))
		}
	}

	// index, ". ", name, " ", size
	avail := width - indexWidth - 2
	if withSize {
		avail -= sizeWidth + 1
	}
	if avail < 10 {
		avail = 10
	}
	nameWidth = min(nameWidth, avail)

	for i, e := range entries {
		name := utils.TruncateToWidth(e.Name, nameWidth)
		if !withSize {
			fmt.Fprintf(w, "%*d. %s\n", indexWidth, i+1, name)
			continue
		}
		fmt.Fprintf(w, "%*d. %s %s\n", indexWidth, i+1, utils.PadToWidth(name, nameWidth), sizes[i])
	}
}

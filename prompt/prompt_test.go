package prompt

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"imagemerger/types"
)

func noColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func TestAskReturnsTrimmedAnswers(t *testing.T) {
	out := &bytes.Buffer{}
	p := New(strings.NewReader("  /tmp/pics \r\n\nlast"), out)

	want := []string{"/tmp/pics", "", "last", ""}
	for i, w := range want {
		got, err := p.Ask("Q: ")
		if err != nil {
			t.Fatalf("Ask #%d: %v", i, err)
		}
		if got != w {
			t.Errorf("Ask #%d = %q, want %q", i, got, w)
		}
	}
	if c := strings.Count(out.String(), "Q: "); c != 4 {
		t.Errorf("question printed %d times, want 4", c)
	}
}

func TestAskYesNo(t *testing.T) {
	tests := []struct {
		in   string
		def  bool
		want bool
	}{
		{"y\n", false, true},
		{"YES\n", false, true},
		{"n\n", true, false},
		{"maybe\n", true, false},
		{"\n", false, false},
		{"\n", true, true},
		{"", true, true},
	}
	for _, tt := range tests {
		p := New(strings.NewReader(tt.in), &bytes.Buffer{})
		got, err := p.AskYesNo("Adjust? ", tt.def)
		if err != nil {
			t.Fatalf("AskYesNo(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("AskYesNo(%q, %v) = %v, want %v", tt.in, tt.def, got, tt.want)
		}
	}
}

func TestWaitForExitOnClosedInput(t *testing.T) {
	out := &bytes.Buffer{}
	p := New(strings.NewReader(""), out)

	done := make(chan struct{})
	go func() {
		p.WaitForExit()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("WaitForExit blocked on exhausted input")
	}
	if !strings.Contains(out.String(), "Press Enter to exit...") {
		t.Errorf("output = %q", out.String())
	}
}

func TestStatusLines(t *testing.T) {
	noColor(t)
	out := &bytes.Buffer{}
	p := New(strings.NewReader(""), out)

	p.Info("Using folder: %s", "/a")
	p.Warn("cannot create %s", "/b")
	p.Error("path '%s' is not a valid folder", "/c")
	p.Success("Saved as %s", "/d/out.jpg")

	want := "Using folder: /a\n" +
		"Warning: cannot create /b\n" +
		"Error: path '/c' is not a valid folder\n" +
		"Saved as /d/out.jpg\n"
	if out.String() != want {
		t.Errorf("output =\n%s\nwant\n%s", out.String(), want)
	}
}

func TestPrintEntries(t *testing.T) {
	entries := []types.ImageFileEntry{
		{Name: "a.png", Size: 1536},
		{Name: "画像10.png", Size: 2048},
	}

	out := &bytes.Buffer{}
	PrintEntries(out, entries, true)
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %q", len(lines), out.String())
	}
	if lines[0] != "1. a.png      (1.5 KB)" {
		t.Errorf("line 1 = %q", lines[0])
	}
	if lines[1] != "2. 画像10.png (2.0 KB)" {
		t.Errorf("line 2 = %q", lines[1])
	}

	out.Reset()
	PrintEntries(out, entries[:1], false)
	if out.String() != "1. a.png\n" {
		t.Errorf("without size = %q", out.String())
	}
}

func TestPrintEntriesTruncatesLongNames(t *testing.T) {
	long := strings.Repeat("x", 200) + ".png"
	out := &bytes.Buffer{}
	PrintEntries(out, []types.ImageFileEntry{{Name: long, Size: 10}}, true)

	line := strings.TrimRight(out.String(), "\n")
	if len(line) > defaultWidth {
		t.Errorf("line is %d cells wide, want <= %d", len(line), defaultWidth)
	}
	if !strings.Contains(line, "...") || !strings.HasSuffix(line, "(0.0 KB)") {
		t.Errorf("line = %q", line)
	}
}

package scanner

import (
	"os"
	"strings"

	"github.com/mattn/go-shellwords"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"

	"imagemerger/logging"
	"imagemerger/types"
)

// NormalizePathInput cleans a path typed or pasted by the operator.
// Surrounding quotes (as added by terminals on drag-and-drop) are removed
// and a leading ~ is expanded to the home directory.
func NormalizePathInput(input string) string {
	s := strings.TrimSpace(input)
	if s == "" {
		return ""
	}

	if strings.ContainsAny(s[:1], `"'`) {
		if strings.Contains(s, `\`) {
			// Windows paths: backslashes are separators, not escapes
			s = strings.Trim(s, `"'`)
		} else if words, err := shellwords.Parse(s); err == nil && len(words) == 1 {
			s = words[0]
		}
	}

	if expanded, err := homedir.Expand(s); err == nil {
		s = expanded
	}
	return s
}

// ResolveSourceDir returns the folder to read images from. A blank input
// selects workingDir, which the caller resolves once at startup.
func ResolveSourceDir(input, workingDir string) (string, error) {
	dir := NormalizePathInput(input)
	if dir == "" {
		dir = workingDir
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", &types.InvalidPathError{Path: dir}
	}
	return dir, nil
}

// ResolveOutputDir returns the folder the merged image is written to.
// A blank input selects sourceDir. A missing folder is created; when that
// fails the source folder is used instead and the failure is returned as a
// warning. created reports whether a folder was made.
func ResolveOutputDir(input, sourceDir string) (dir string, created bool, warning error) {
	dir = NormalizePathInput(input)
	if dir == "" {
		return sourceDir, false, nil
	}

	if _, err := os.Stat(dir); err == nil {
		return dir, false, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		logging.LogWarning("Cannot create output folder %s: %v", dir, err)
		return sourceDir, false, errors.Wrapf(err, "cannot create output folder %s", dir)
	}
	return dir, true, nil
}

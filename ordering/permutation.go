package ordering

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"imagemerger/types"
)

// ErrIndexOutOfRange marks a manual order that names a position outside the list
var ErrIndexOutOfRange = errors.New("index out of range")

// PermutationError describes a manual order that was rejected; the previous order stays in effect
type PermutationError struct {
	Input string
	N     int
	Err   error
}

func (e *PermutationError) Error() string {
	return fmt.Sprintf("invalid order %q for %d files: %v", e.Input, e.N, e.Err)
}

func (e *PermutationError) Unwrap() error { return e.Err }

// ParsePermutation parses a comma-separated list of 1-based positions into
// the displayed list of n files, e.g. "3,1,2". A blank input returns nil
// without error, meaning "keep the current order". Every position must lie
// in [1, n]; repeated and omitted positions are accepted, so the result may
// duplicate or drop files.
func ParsePermutation(input string, n int) ([]int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}

	parts := strings.Split(input, ",")
	perm := make([]int, 0, len(parts))
	for _, part := range parts {
		idx, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, &PermutationError{Input: input, N: n, Err: errors.Wrapf(err, "not a number: %q", strings.TrimSpace(part))}
		}
		perm = append(perm, idx)
	}

	for _, idx := range perm {
		if idx < 1 || idx > n {
			return nil, &PermutationError{Input: input, N: n, Err: errors.Wrapf(ErrIndexOutOfRange, "position %d", idx)}
		}
	}
	return perm, nil
}

// ApplyPermutation returns the entries at the given 1-based positions, in
// that order. perm must have been validated by ParsePermutation against
// len(entries).
func ApplyPermutation(entries []types.ImageFileEntry, perm []int) []types.ImageFileEntry {
	if perm == nil {
		return entries
	}
	reordered := make([]types.ImageFileEntry, 0, len(perm))
	for _, idx := range perm {
		reordered = append(reordered, entries[idx-1])
	}
	return reordered
}

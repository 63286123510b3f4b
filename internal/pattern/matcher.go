package pattern

import (
	"bytes"

	"github.com/muurk/haxomatic/internal/firmware"
)

// MatchSet holds absolute match offsets in ascending order.
type MatchSet []int

// First returns the first match, or -1 when the set is empty.
func (ms MatchSet) First() int {
	if len(ms) == 0 {
		return -1
	}
	return ms[0]
}

// Matcher searches one firmware image.
type Matcher struct {
	code []byte
	base int
}

// NewMatcher creates a matcher over img using the image's base address.
func NewMatcher(img *firmware.Image) *Matcher {
	return &Matcher{code: img.View(), base: img.Base()}
}

// Search returns every offset of pattern in the image, or only the first
// one when stopAtFirst is set.
func (m *Matcher) Search(pattern []byte, stopAtFirst bool) MatchSet {
	return Search(m.code, m.base, pattern, stopAtFirst)
}

// Search scans code for pattern and reports matches as base+offset.
// An empty pattern never matches.
func Search(code []byte, base int, pattern []byte, stopAtFirst bool) MatchSet {
	if len(pattern) == 0 {
		return MatchSet{}
	}

	matches := MatchSet{}
	start := 0
	for start <= len(code)-len(pattern) {
		idx := bytes.Index(code[start:], pattern)
		if idx < 0 {
			break
		}
		offset := start + idx
		matches = append(matches, base+offset)
		if stopAtFirst {
			break
		}
		start = offset + 1
	}
	return matches
}

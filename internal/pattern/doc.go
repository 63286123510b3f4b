// Package pattern finds literal byte sequences in firmware code and turns
// raw image offsets into the addresses the running firmware uses.
//
// Searching is a plain left-to-right substring scan. After a hit at offset o
// the scan resumes at o+1, so overlapping occurrences are all reported:
//
//	m := pattern.NewMatcher(img)
//	hits := m.Search([]byte{0x2b, 0x68, 0x30, 0x1c, 0x98, 0x47}, false)
//	addr := pattern.Normalize(hits[0])
//
// Normalize adds the bootloader partition offset and the Thumb bit, because
// only the application partition is scanned and branch targets on the
// target core must be odd.
package pattern

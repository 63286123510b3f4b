package gadget

import (
	"fmt"
	"strings"

	"github.com/muurk/haxomatic/internal/variant"
)

// MatchCountMismatchError means a pattern occurred a different number of
// times than the variant declares. This usually indicates a wrong
// classification or a build that drifted within a known variant.
type MatchCountMismatchError struct {
	// Kind is the gadget being resolved
	Kind variant.Kind
	// Pattern is the searched bytes as hex
	Pattern string
	// Expected is the declared count
	Expected int
	// Found is the number of matches in the image
	Found int
	// Check is the count rule that was violated
	Check CountCheck
}

func (e *MatchCountMismatchError) Error() string {
	bound := "expected"
	if e.Check == CountAtMost {
		bound = "expected at most"
	}
	return fmt.Sprintf("failed to find %s address: pattern %s found %d times, %s %d",
		e.Kind, e.Pattern, e.Found, bound, e.Expected)
}

// MissingMatchError means a match index taken from the variant does not
// exist in the match list. The count checks normally rule this out, so it
// points at an inconsistent catalog entry.
type MissingMatchError struct {
	Kind  variant.Kind
	Index int
	Found int
}

func (e *MissingMatchError) Error() string {
	return fmt.Sprintf("%s match index %d does not exist (only %d matches found)", e.Kind, e.Index, e.Found)
}

// NullByteInAddressError means no candidate address can be embedded as a
// 3-byte immediate inside a null-terminated string.
type NullByteInAddressError struct {
	// Kind is the gadget being resolved
	Kind variant.Kind
	// Candidates lists every address rejected, preferred first
	Candidates []uint32
	// MissingAlternate is set when an alternate was declared but the
	// match list had no entry for it
	MissingAlternate bool
	// Found is the number of matches in the image
	Found int
}

func (e *NullByteInAddressError) Error() string {
	addrs := make([]string, len(e.Candidates))
	for i, a := range e.Candidates {
		addrs[i] = fmt.Sprintf("0x%X", a)
	}
	msg := fmt.Sprintf("%s address contains a null byte, unable to continue (rejected %s)",
		e.Kind, strings.Join(addrs, ", "))
	if e.MissingAlternate {
		msg += fmt.Sprintf("; no alternative match available (found %d)", e.Found)
	}
	return msg
}

// OffsetOverflowError means a normalized address does not fit the 24-bit
// immediate used by the patch payload.
type OffsetOverflowError struct {
	Kind    variant.Kind
	Offset  int
	Address int
}

func (e *OffsetOverflowError) Error() string {
	return fmt.Sprintf("%s address 0x%X (offset 0x%X) exceeds the 3-byte immediate range", e.Kind, e.Address, e.Offset)
}

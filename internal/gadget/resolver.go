package gadget

import (
	"go.uber.org/zap"

	"github.com/muurk/haxomatic/internal/firmware"
	"github.com/muurk/haxomatic/internal/logging"
	"github.com/muurk/haxomatic/internal/pattern"
	"github.com/muurk/haxomatic/internal/variant"
)

// CountCheck selects how the number of matches is validated.
type CountCheck int

const (
	// CountExact requires exactly the declared number of matches.
	CountExact CountCheck = iota
	// CountAtMost requires at least one match and no more than declared.
	// A declared count of zero is treated as a bound of one.
	CountAtMost
)

// String returns the check name.
func (c CountCheck) String() string {
	switch c {
	case CountExact:
		return "exact"
	case CountAtMost:
		return "at-most"
	default:
		return "unknown"
	}
}

// Policy controls validation for one call site.
type Policy struct {
	Count CountCheck

	// FallbackOnNull allows one retry with the next match when the
	// preferred address has a null byte and the gadget declares a
	// positive count
	FallbackOnNull bool
}

var (
	// PayloadPolicy applies to payload gadgets.
	PayloadPolicy = Policy{Count: CountExact}

	// FinishPolicy applies to the finish gadget.
	FinishPolicy = Policy{Count: CountAtMost, FallbackOnNull: true}
)

// contextBytes is how much code around a match is logged at debug level.
const contextBytes = 8

// Resolved is a validated gadget address.
type Resolved struct {
	Kind    variant.Kind
	Address uint32

	// MatchIndex is the position in the match list that supplied Address
	MatchIndex int

	// Alternative is set when the preferred match was rejected
	Alternative bool
}

// Resolver locates gadgets in one image.
type Resolver struct {
	img     *firmware.Image
	matcher *pattern.Matcher
}

// NewResolver creates a resolver for img.
func NewResolver(img *firmware.Image) *Resolver {
	return &Resolver{img: img, matcher: pattern.NewMatcher(img)}
}

// ResolvePayload resolves a payload gadget.
func (r *Resolver) ResolvePayload(g variant.Gadget) (*Resolved, error) {
	return r.Resolve(g, PayloadPolicy)
}

// ResolveFinish resolves the finish gadget.
func (r *Resolver) ResolveFinish(g variant.Gadget) (*Resolved, error) {
	return r.Resolve(g, FinishPolicy)
}

// Resolve searches for g's pattern, validates the match count under
// policy, and returns the normalized address of the preferred match.
func (r *Resolver) Resolve(g variant.Gadget, policy Policy) (*Resolved, error) {
	matches := r.matcher.Search(g.Pattern, false)
	logging.LogMatches(string(g.Kind), g.PatternHex(), matches)

	if err := checkCount(g, policy.Count, len(matches)); err != nil {
		return nil, err
	}

	addr, err := r.candidate(g, matches, g.PreferredIndex)
	if err != nil {
		return nil, err
	}
	if !pattern.HasNullByte(addr) {
		logging.LogGadget(string(g.Kind), addr, g.PreferredIndex, false)
		return &Resolved{Kind: g.Kind, Address: addr, MatchIndex: g.PreferredIndex}, nil
	}

	nullErr := &NullByteInAddressError{Kind: g.Kind, Candidates: []uint32{addr}, Found: len(matches)}
	if !policy.FallbackOnNull || g.ExpectedCount == 0 {
		return nil, nullErr
	}

	altIndex := g.PreferredIndex + 1
	if altIndex >= len(matches) {
		nullErr.MissingAlternate = true
		return nil, nullErr
	}

	logging.Warn("Preferred address contained a null byte, using available alternative",
		zap.String("kind", string(g.Kind)),
		zap.Int("preferred_index", g.PreferredIndex),
		zap.Int("alternative_index", altIndex),
	)

	alt, err := r.candidate(g, matches, altIndex)
	if err != nil {
		return nil, err
	}
	if pattern.HasNullByte(alt) {
		nullErr.Candidates = append(nullErr.Candidates, alt)
		return nil, nullErr
	}

	logging.LogGadget(string(g.Kind), alt, altIndex, true)
	return &Resolved{Kind: g.Kind, Address: alt, MatchIndex: altIndex, Alternative: true}, nil
}

func checkCount(g variant.Gadget, check CountCheck, found int) error {
	mismatch := &MatchCountMismatchError{
		Kind:     g.Kind,
		Pattern:  g.PatternHex(),
		Expected: g.ExpectedCount,
		Found:    found,
		Check:    check,
	}

	switch check {
	case CountAtMost:
		limit := g.ExpectedCount
		if limit < 1 {
			limit = 1
		}
		if found == 0 || found > limit {
			return mismatch
		}
	default:
		if found == 0 || found != g.ExpectedCount {
			return mismatch
		}
	}
	return nil
}

// candidate normalizes the match at index and checks it fits an immediate.
func (r *Resolver) candidate(g variant.Gadget, matches pattern.MatchSet, index int) (uint32, error) {
	if index < 0 || index >= len(matches) {
		return 0, &MissingMatchError{Kind: g.Kind, Index: index, Found: len(matches)}
	}

	offset := matches[index]
	r.logContext(g, offset)

	addr := pattern.Normalize(offset)
	if addr < 0 || addr > pattern.MaxImmediate {
		return 0, &OffsetOverflowError{Kind: g.Kind, Offset: offset, Address: addr}
	}
	return uint32(addr), nil
}

func (r *Resolver) logContext(g variant.Gadget, offset int) {
	code := r.img.View()
	start := offset - r.img.Base() - contextBytes
	if start < 0 {
		start = 0
	}
	end := offset - r.img.Base() + len(g.Pattern) + contextBytes
	if end > len(code) {
		end = len(code)
	}
	if start >= end {
		return
	}
	logging.LogRawBytes(string(g.Kind)+" match context", code[start:end])
}

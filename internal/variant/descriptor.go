package variant

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/muurk/haxomatic/internal/firmware"
)

// Kind identifies what a gadget address is used for.
type Kind string

const (
	// KindDatagram is a payload written from a received datagram.
	KindDatagram Kind = "datagram"
	// KindSSID is a payload written through the SSID buffer.
	KindSSID Kind = "ssid"
	// KindPasswd is a payload written through the password buffer.
	KindPasswd Kind = "passwd"
	// KindFinish is the continuation point after the payload runs.
	KindFinish Kind = "finish"
)

// PayloadKinds lists the kinds a payload gadget may have.
var PayloadKinds = []Kind{KindDatagram, KindSSID, KindPasswd}

// IsPayload reports whether k is a valid payload kind.
func (k Kind) IsPayload() bool {
	for _, pk := range PayloadKinds {
		if k == pk {
			return true
		}
	}
	return false
}

// Gadget describes how to locate one gadget address.
type Gadget struct {
	// Kind is what the address is used for
	Kind Kind

	// Pattern is the literal instruction bytes to search for
	Pattern []byte

	// ExpectedCount is the exact number of payload matches, or the upper
	// bound on finish matches
	ExpectedCount int

	// PreferredIndex selects the match to use from the ordered match list
	PreferredIndex int
}

// PatternHex returns the search pattern as lowercase hex.
func (g *Gadget) PatternHex() string {
	return hex.EncodeToString(g.Pattern)
}

// Clone returns a copy of g that shares no memory with it.
func (g *Gadget) Clone() Gadget {
	cp := *g
	cp.Pattern = append([]byte(nil), g.Pattern...)
	return cp
}

// Descriptor identifies one supported firmware build.
type Descriptor struct {
	// Rule is the catalog rule that produced this descriptor
	Rule string

	// Chipset is the SoC identifier written to the chip artifact
	Chipset string

	// PatternVersion distinguishes pattern sets for the same chipset
	PatternVersion int

	// Payload is nil when the build has no payload gadget
	Payload *Gadget

	// Finish locates the continuation gadget
	Finish Gadget
}

// PayloadKind returns the payload kind, or an empty kind when there is none.
func (d *Descriptor) PayloadKind() Kind {
	if d.Payload == nil {
		return ""
	}
	return d.Payload.Kind
}

// Clone returns a deep copy of d.
func (d *Descriptor) Clone() *Descriptor {
	if d == nil {
		return nil
	}
	cp := *d
	if d.Payload != nil {
		payload := d.Payload.Clone()
		cp.Payload = &payload
	}
	cp.Finish = d.Finish.Clone()
	return &cp
}

// String returns a short human-readable name for the build.
func (d *Descriptor) String() string {
	kind := string(d.PayloadKind())
	if kind == "" {
		kind = "none"
	}
	return fmt.Sprintf("%s version %d, payload type %s", d.Chipset, d.PatternVersion, kind)
}

// Rule maps a set of firmware markers to a descriptor, or to a known
// build that has no usable pattern.
type Rule struct {
	// Name is the unique rule identifier
	Name string

	// Description is free text shown by the variants listing
	Description string

	// Markers holds alternative marker sets. A rule matches when every
	// marker in at least one set is present.
	Markers [][]string

	// Descriptor is set for supported builds
	Descriptor *Descriptor

	// Unsupported holds the reason a recognized build cannot be handled
	Unsupported string
}

// Supported reports whether the rule resolves to a descriptor.
func (r *Rule) Supported() bool {
	return r.Descriptor != nil
}

// Clone returns a deep copy of r.
func (r *Rule) Clone() *Rule {
	cp := *r
	cp.Markers = make([][]string, len(r.Markers))
	for i, set := range r.Markers {
		cp.Markers[i] = append([]string(nil), set...)
	}
	cp.Descriptor = r.Descriptor.Clone()
	return &cp
}

// Matches reports whether img carries this rule's markers.
func (r *Rule) Matches(img *firmware.Image) bool {
	for _, set := range r.Markers {
		if matchesAll(img, set) {
			return true
		}
	}
	return false
}

func matchesAll(img *firmware.Image, markers []string) bool {
	if len(markers) == 0 {
		return false
	}
	for _, m := range markers {
		if !img.Contains(m) {
			return false
		}
	}
	return true
}

// MarkerSummary joins the marker sets for display.
func (r *Rule) MarkerSummary() string {
	sets := make([]string, 0, len(r.Markers))
	for _, set := range r.Markers {
		sets = append(sets, strings.Join(set, " + "))
	}
	return strings.Join(sets, " | ")
}

package variant

import (
	"errors"
	"strings"
	"testing"

	"github.com/muurk/haxomatic/internal/firmware"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	if c.RequiredMarker() != "TUYA" {
		t.Errorf("RequiredMarker() = %q, want TUYA", c.RequiredMarker())
	}

	if c.Count() != 5 {
		t.Errorf("Count() = %d, want 5", c.Count())
	}

	c2, err := Default()
	if err != nil {
		t.Fatalf("second Default() error = %v", err)
	}
	if c != c2 {
		t.Error("expected Default to return the same instance")
	}

	if len(c.Supported()) != 4 {
		t.Errorf("Supported() returned %d descriptors, want 4", len(c.Supported()))
	}
}

func TestDefault_DescriptorInvariants(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	for _, d := range c.Supported() {
		if d.Payload != nil && d.Payload.PreferredIndex >= d.Payload.ExpectedCount {
			t.Errorf("%s: payload index %d >= count %d", d.Rule, d.Payload.PreferredIndex, d.Payload.ExpectedCount)
		}
		if d.Finish.ExpectedCount > 0 && d.Finish.PreferredIndex >= d.Finish.ExpectedCount {
			t.Errorf("%s: finish index %d >= count %d", d.Rule, d.Finish.PreferredIndex, d.Finish.ExpectedCount)
		}
		if d.Finish.Kind != KindFinish {
			t.Errorf("%s: finish kind = %q", d.Rule, d.Finish.Kind)
		}
	}
}

func TestDefault_FirstRule(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	d := c.Rules()[0].Descriptor
	if d == nil {
		t.Fatal("first rule should be supported")
	}
	if d.Chipset != "BK7231T" || d.PatternVersion != 1 {
		t.Errorf("first rule = %s", d)
	}
	if d.Payload.Kind != KindDatagram {
		t.Errorf("payload kind = %q, want datagram", d.Payload.Kind)
	}
	if d.Payload.PatternHex() != "041e07d1119b211c00" {
		t.Errorf("payload pattern = %s", d.Payload.PatternHex())
	}
	if d.Payload.ExpectedCount != 3 || d.Payload.PreferredIndex != 1 {
		t.Errorf("payload count/index = %d/%d, want 3/1", d.Payload.ExpectedCount, d.Payload.PreferredIndex)
	}
	if d.Finish.PatternHex() != "2b68301c9847" {
		t.Errorf("finish pattern = %s", d.Finish.PatternHex())
	}
}

func TestCatalog_AccessorsReturnCopies(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	rules := c.Rules()
	rules[0].Markers[0][0] = "CHANGED"
	rules[0].Descriptor.Finish.Pattern[0] = 0xFF
	rules[0] = nil

	for _, d := range c.Supported() {
		d.Finish.Pattern[0] = 0xFF
		if d.Payload != nil {
			d.Payload.Pattern[0] = 0xFF
		}
	}

	first := c.Rules()[0]
	if first == nil {
		t.Fatal("Rules() exposed the catalog slice")
	}
	if first.Markers[0][0] != "TUYA IOT SDK V:2.0.0" {
		t.Errorf("marker = %q", first.Markers[0][0])
	}
	if first.Descriptor.Finish.PatternHex() != "2b68301c9847" {
		t.Errorf("finish pattern = %s", first.Descriptor.Finish.PatternHex())
	}
	if first.Descriptor.Payload.PatternHex() != "041e07d1119b211c00" {
		t.Errorf("payload pattern = %s", first.Descriptor.Payload.PatternHex())
	}
}

func TestParse_ValidationCollectsAllErrors(t *testing.T) {
	data := []byte(`
required_marker: ""
rules:
  - name: bad-hex
    markers: [["A"]]
    variant:
      chipset: X
      payload: {kind: datagram, pattern: "zz", count: 1, index: 0}
      finish: {pattern: "00", count: 1, index: 0}
  - name: bad-index
    markers: [["B"]]
    variant:
      chipset: X
      payload: {kind: ssid, pattern: "01", count: 1, index: 1}
      finish: {pattern: "02", count: 1, index: 3}
  - name: bad-kind
    markers: [["C"]]
    variant:
      chipset: X
      payload: {kind: bluetooth, pattern: "01", count: 1, index: 0}
      finish: {pattern: "02", count: 1, index: 0}
  - name: nothing
    markers: [["D"]]
  - name: nothing
    markers: []
    unsupported: "dup"
`)

	_, err := Parse(data)
	if err == nil {
		t.Fatal("expected validation error")
	}

	var catErr *CatalogError
	if !errors.As(err, &catErr) {
		t.Fatalf("expected CatalogError, got %T", err)
	}

	msg := err.Error()
	for _, want := range []string{
		"required_marker is empty",
		"invalid pattern",
		"payload: index 1 out of range for count 1",
		"finish: index 3 out of range for count 1",
		`unknown kind "bluetooth"`,
		"needs either a variant or an unsupported reason",
		`duplicate name "nothing"`,
		"no markers",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("error message missing %q:\n%s", want, msg)
		}
	}
}

func TestParse_OptionalPayloadAndZeroFinishCount(t *testing.T) {
	data := []byte(`
required_marker: "TUYA"
rules:
  - name: finish-only
    markers: [["ONLY"]]
    variant:
      chipset: BK7231T
      pattern_version: 3
      finish: {pattern: "041e00d10ce7", count: 0, index: 0}
`)

	c, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	d := c.Rules()[0].Descriptor
	if d.Payload != nil {
		t.Error("expected no payload gadget")
	}
	if d.PayloadKind() != "" {
		t.Errorf("PayloadKind() = %q, want empty", d.PayloadKind())
	}
	if !strings.Contains(d.String(), "payload type none") {
		t.Errorf("String() = %q", d.String())
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("rules: [")); err == nil {
		t.Error("expected YAML error")
	}
}

func TestRule_MarkerSummary(t *testing.T) {
	r := &Rule{Markers: [][]string{{"A", "B"}, {"C"}}}
	if got := r.MarkerSummary(); got != "A + B | C" {
		t.Errorf("MarkerSummary() = %q", got)
	}
}

func TestRule_MatchesRequiresWholeSet(t *testing.T) {
	r := &Rule{Markers: [][]string{{"TUYA IOT SDK V:2.0.0", "AT 8710_2M"}}}

	if r.Matches(firmware.NewImage([]byte("TUYA IOT SDK V:2.0.0 only"))) {
		t.Error("rule should not match with one marker of the set missing")
	}
	if !r.Matches(firmware.NewImage([]byte("AT 8710_2M ... TUYA IOT SDK V:2.0.0"))) {
		t.Error("rule should match regardless of marker order")
	}
}

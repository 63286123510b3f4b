package ui

import (
	"errors"
	"strings"
	"testing"
)

func TestResult_RenderSuccess(t *testing.T) {
	out := NewSuccessResult("Gadgets resolved",
		Detail{Key: "Chipset", Value: "BK7231T"},
		Detail{Key: "Finish", Value: "0x12346"},
	).SetWidth(80).Render()

	for _, want := range []string{"SUCCESS", "Gadgets resolved", "BK7231T", "0x12346"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered output missing %q", want)
		}
	}
	if strings.Index(out, "BK7231T") > strings.Index(out, "0x12346") {
		t.Error("details should render in insertion order")
	}
}

func TestResult_RenderFailure(t *testing.T) {
	out := NewFailureResult("Analysis failed", errors.New("first line\nsecond line"), "Open an issue").
		SetWidth(80).Render()

	for _, want := range []string{"FAILED", "first line", "second line", "Next steps", "Open an issue"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered output missing %q", want)
		}
	}
}

func TestResult_AddDetail(t *testing.T) {
	r := NewWarningResult("Skipped").AddDetail("Reason", "already processed")
	if len(r.Details) != 1 || r.Details[0].Value != "already processed" {
		t.Errorf("Details = %+v", r.Details)
	}
	if !strings.Contains(r.SetWidth(20).Render(), "WARNING") {
		t.Error("warning box should contain WARNING")
	}
}

func TestHeader_Render(t *testing.T) {
	out := NewHeader("Gadget Analysis", "haxomatic analyze",
		Detail{Key: "Image", Value: "dump.bin"},
	).SetWidth(70).Render()

	for _, want := range []string{"GADGET ANALYSIS", "haxomatic analyze", "Image:", "dump.bin"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q", want)
		}
	}
}

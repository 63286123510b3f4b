package sink

import (
	"fmt"

	"github.com/muurk/haxomatic/internal/analysis"
	"github.com/muurk/haxomatic/internal/variant"
)

const (
	// ChipArtifact holds the chipset identifier.
	ChipArtifact = "chip.txt"

	// FinishArtifact holds the finish address and marks an image as processed.
	FinishArtifact = "address_finish.txt"
)

// Artifact is one named output value.
type Artifact struct {
	Name    string
	Content string
}

// AddressArtifact returns the artifact name for a gadget kind.
func AddressArtifact(kind variant.Kind) string {
	return fmt.Sprintf("address_%s.txt", kind)
}

// FormatAddress renders an address the way downstream tooling expects.
func FormatAddress(addr uint32) string {
	return fmt.Sprintf("0x%X", addr)
}

// Artifacts lists the outputs for result in write order. The finish
// artifact is always last.
func Artifacts(result *analysis.RunResult) []Artifact {
	artifacts := []Artifact{{Name: ChipArtifact, Content: result.Chipset}}
	if result.Payload != nil {
		artifacts = append(artifacts, Artifact{
			Name:    AddressArtifact(result.Payload.Kind),
			Content: FormatAddress(result.Payload.Address),
		})
	}
	artifacts = append(artifacts, Artifact{
		Name:    FinishArtifact,
		Content: FormatAddress(result.Finish.Address),
	})
	return artifacts
}

package analysis

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/muurk/haxomatic/internal/firmware"
	"github.com/muurk/haxomatic/internal/gadget"
	"github.com/muurk/haxomatic/internal/logging"
	"github.com/muurk/haxomatic/internal/variant"
)

// RunResult is the outcome of a successful run.
type RunResult struct {
	Chipset        string
	Rule           string
	PatternVersion int

	// Payload is nil when the variant has no payload gadget
	Payload *gadget.Resolved

	Finish gadget.Resolved
}

// Sink receives results for persistence.
type Sink interface {
	// Exists reports whether a previous run already produced output.
	Exists() (bool, error)
	// Emit stores a result.
	Emit(result *RunResult) error
}

// Classifier selects a variant descriptor for an image.
type Classifier interface {
	Classify(img *firmware.Image) (*variant.Descriptor, error)
}

// Analyzer runs classification and gadget resolution.
type Analyzer struct {
	classifier Classifier
}

// New creates an analyzer using the given classifier.
func New(classifier Classifier) *Analyzer {
	return &Analyzer{classifier: classifier}
}

// NewDefault creates an analyzer backed by the embedded variant catalog.
func NewDefault() (*Analyzer, error) {
	c, err := variant.Default()
	if err != nil {
		return nil, err
	}
	return New(c), nil
}

// Run analyzes img and returns the resolved gadgets.
func (a *Analyzer) Run(ctx context.Context, img *firmware.Image) (*RunResult, error) {
	logging.Info("Searching for known exploit patterns", zap.Int("image_size", img.Len()))

	desc, err := a.classifier.Classify(img)
	if err != nil {
		return nil, err
	}
	logging.Info(fmt.Sprintf("Matched pattern for %s", desc))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resolver := gadget.NewResolver(img)
	result := &RunResult{
		Chipset:        desc.Chipset,
		Rule:           desc.Rule,
		PatternVersion: desc.PatternVersion,
	}

	if desc.Payload != nil {
		payload, err := resolver.ResolvePayload(*desc.Payload)
		if err != nil {
			return nil, err
		}
		result.Payload = payload
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	finish, err := resolver.ResolveFinish(desc.Finish)
	if err != nil {
		return nil, err
	}
	result.Finish = *finish

	return result, nil
}

// Process runs the analysis and emits the result to sink.
// It returns skipped=true without analyzing when the sink already holds
// output for this image.
func (a *Analyzer) Process(ctx context.Context, img *firmware.Image, sink Sink) (result *RunResult, skipped bool, err error) {
	exists, err := sink.Exists()
	if err != nil {
		return nil, false, fmt.Errorf("failed to check for previous output: %w", err)
	}
	if exists {
		logging.Info("Analysis has already been run for this image")
		return nil, true, nil
	}

	result, err = a.Run(ctx, img)
	if err != nil {
		return nil, false, err
	}

	if err := sink.Emit(result); err != nil {
		return nil, false, fmt.Errorf("failed to write results: %w", err)
	}
	return result, false, nil
}

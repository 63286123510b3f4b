package variant

import (
	"go.uber.org/zap"

	"github.com/muurk/haxomatic/internal/firmware"
	"github.com/muurk/haxomatic/internal/logging"
)

// Classify selects the descriptor for img. The returned descriptor is a
// copy and may be modified by the caller.
//
// The required marker is checked first. Rules are then tried in catalog
// order and the first match decides the outcome, even when that rule is
// an unsupported build.
func (c *Catalog) Classify(img *firmware.Image) (*Descriptor, error) {
	if !img.Contains(c.requiredMarker) {
		return nil, &NotDecryptedError{Marker: c.requiredMarker}
	}

	for _, rule := range c.rules {
		if !rule.Matches(img) {
			continue
		}

		if !rule.Supported() {
			logging.Warn("Recognized unsupported firmware build",
				zap.String("rule", rule.Name),
				zap.String("reason", rule.Unsupported),
			)
			return nil, &UnsupportedVariantError{Rule: rule.Name, Reason: rule.Unsupported}
		}

		logging.Info("Matched firmware variant",
			zap.String("rule", rule.Name),
			zap.String("chipset", rule.Descriptor.Chipset),
			zap.Int("pattern_version", rule.Descriptor.PatternVersion),
			zap.String("payload_kind", string(rule.Descriptor.PayloadKind())),
		)
		return rule.Descriptor.Clone(), nil
	}

	return nil, &UnknownVariantError{RulesChecked: len(c.rules)}
}

// Classify selects a descriptor using the embedded catalog.
func Classify(img *firmware.Image) (*Descriptor, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}
	return c.Classify(img)
}

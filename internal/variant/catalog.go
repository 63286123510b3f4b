package variant

import (
	_ "embed"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

//go:embed catalog/variants.yaml
var variantsYAML []byte

// Catalog is the ordered rule table used for classification.
type Catalog struct {
	requiredMarker string
	rules          []*Rule
}

// catalogFile is for YAML unmarshaling
type catalogFile struct {
	RequiredMarker string     `yaml:"required_marker"`
	Rules          []ruleSpec `yaml:"rules"`
}

type ruleSpec struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Markers     [][]string   `yaml:"markers"`
	Variant     *variantSpec `yaml:"variant,omitempty"`
	Unsupported string       `yaml:"unsupported,omitempty"`
}

type variantSpec struct {
	Chipset        string      `yaml:"chipset"`
	PatternVersion int         `yaml:"pattern_version"`
	Payload        *gadgetSpec `yaml:"payload,omitempty"`
	Finish         gadgetSpec  `yaml:"finish"`
}

type gadgetSpec struct {
	Kind    string `yaml:"kind,omitempty"`
	Pattern string `yaml:"pattern"`
	Count   int    `yaml:"count"`
	Index   int    `yaml:"index"`
}

var (
	// defaultCatalog is built from the embedded rule table
	defaultCatalog     *Catalog
	defaultCatalogOnce sync.Once
	defaultCatalogErr  error
)

// Default returns the embedded catalog. It is parsed only once.
func Default() (*Catalog, error) {
	defaultCatalogOnce.Do(func() {
		defaultCatalog, defaultCatalogErr = Parse(variantsYAML)
	})
	return defaultCatalog, defaultCatalogErr
}

// Parse builds a catalog from YAML and validates every rule.
// All problems found are reported together.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse variant catalog: %w", err)
	}

	var errs error
	if file.RequiredMarker == "" {
		errs = multierror.Append(errs, fmt.Errorf("required_marker is empty"))
	}
	if len(file.Rules) == 0 {
		errs = multierror.Append(errs, fmt.Errorf("catalog has no rules"))
	}

	seen := make(map[string]bool)
	rules := make([]*Rule, 0, len(file.Rules))
	for i, spec := range file.Rules {
		if spec.Name == "" {
			errs = multierror.Append(errs, fmt.Errorf("rule %d: name is empty", i))
		} else if seen[spec.Name] {
			errs = multierror.Append(errs, fmt.Errorf("rule %d: duplicate name %q", i, spec.Name))
		}
		seen[spec.Name] = true

		rule, err := buildRule(spec)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("rule %q: %w", spec.Name, err))
			continue
		}
		rules = append(rules, rule)
	}

	if errs != nil {
		return nil, &CatalogError{Err: errs}
	}

	return &Catalog{requiredMarker: file.RequiredMarker, rules: rules}, nil
}

func buildRule(spec ruleSpec) (*Rule, error) {
	var errs error

	if len(spec.Markers) == 0 {
		errs = multierror.Append(errs, fmt.Errorf("no markers"))
	}
	for i, set := range spec.Markers {
		if len(set) == 0 {
			errs = multierror.Append(errs, fmt.Errorf("marker set %d is empty", i))
		}
		for _, m := range set {
			if m == "" {
				errs = multierror.Append(errs, fmt.Errorf("marker set %d contains an empty marker", i))
			}
		}
	}

	switch {
	case spec.Variant == nil && spec.Unsupported == "":
		errs = multierror.Append(errs, fmt.Errorf("needs either a variant or an unsupported reason"))
	case spec.Variant != nil && spec.Unsupported != "":
		errs = multierror.Append(errs, fmt.Errorf("cannot have both a variant and an unsupported reason"))
	}

	rule := &Rule{
		Name:        spec.Name,
		Description: spec.Description,
		Markers:     spec.Markers,
		Unsupported: spec.Unsupported,
	}

	if spec.Variant != nil {
		desc, err := buildDescriptor(spec.Name, spec.Variant)
		if err != nil {
			errs = multierror.Append(errs, err)
		}
		rule.Descriptor = desc
	}

	if errs != nil {
		return nil, errs
	}
	return rule, nil
}

func buildDescriptor(name string, spec *variantSpec) (*Descriptor, error) {
	var errs error

	if spec.Chipset == "" {
		errs = multierror.Append(errs, fmt.Errorf("chipset is empty"))
	}

	desc := &Descriptor{
		Rule:           name,
		Chipset:        spec.Chipset,
		PatternVersion: spec.PatternVersion,
	}

	if spec.Payload != nil {
		kind := Kind(spec.Payload.Kind)
		if !kind.IsPayload() {
			errs = multierror.Append(errs, fmt.Errorf("payload: unknown kind %q", spec.Payload.Kind))
		}
		payload, err := buildGadget(kind, spec.Payload)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("payload: %w", err))
		}
		if spec.Payload.Count < 1 {
			errs = multierror.Append(errs, fmt.Errorf("payload: count must be positive, got %d", spec.Payload.Count))
		} else if spec.Payload.Index >= spec.Payload.Count {
			errs = multierror.Append(errs, fmt.Errorf("payload: index %d out of range for count %d",
				spec.Payload.Index, spec.Payload.Count))
		}
		desc.Payload = payload
	}

	finish, err := buildGadget(KindFinish, &spec.Finish)
	if err != nil {
		errs = multierror.Append(errs, fmt.Errorf("finish: %w", err))
	} else {
		desc.Finish = *finish
	}
	if spec.Finish.Count < 0 {
		errs = multierror.Append(errs, fmt.Errorf("finish: count must not be negative, got %d", spec.Finish.Count))
	} else if spec.Finish.Count > 0 && spec.Finish.Index >= spec.Finish.Count {
		errs = multierror.Append(errs, fmt.Errorf("finish: index %d out of range for count %d",
			spec.Finish.Index, spec.Finish.Count))
	}

	if errs != nil {
		return nil, errs
	}
	return desc, nil
}

func buildGadget(kind Kind, spec *gadgetSpec) (*Gadget, error) {
	pattern, err := hex.DecodeString(spec.Pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", spec.Pattern, err)
	}
	if len(pattern) == 0 {
		return nil, fmt.Errorf("pattern is empty")
	}
	if spec.Index < 0 {
		return nil, fmt.Errorf("index must not be negative, got %d", spec.Index)
	}
	return &Gadget{
		Kind:           kind,
		Pattern:        pattern,
		ExpectedCount:  spec.Count,
		PreferredIndex: spec.Index,
	}, nil
}

// RequiredMarker returns the substring every decrypted image must contain.
func (c *Catalog) RequiredMarker() string {
	return c.requiredMarker
}

// Rules returns copies of the rules in priority order.
func (c *Catalog) Rules() []*Rule {
	out := make([]*Rule, len(c.rules))
	for i, r := range c.rules {
		out[i] = r.Clone()
	}
	return out
}

// Count returns the number of rules in the catalog.
func (c *Catalog) Count() int {
	return len(c.rules)
}

// Supported returns copies of the descriptors of all supported builds.
func (c *Catalog) Supported() []*Descriptor {
	descs := make([]*Descriptor, 0)
	for _, r := range c.rules {
		if r.Supported() {
			descs = append(descs, r.Descriptor.Clone())
		}
	}
	return descs
}

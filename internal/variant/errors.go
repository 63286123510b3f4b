package variant

import "fmt"

// NotDecryptedError means the image lacks the marker every decrypted
// application partition of this chipset family carries.
type NotDecryptedError struct {
	// Marker is the substring that was not found
	Marker string
}

func (e *NotDecryptedError) Error() string {
	return fmt.Sprintf("app binary does not appear to be correctly decrypted, or has no %s references", e.Marker)
}

// UnknownVariantError means no catalog rule matched the image.
type UnknownVariantError struct {
	// RulesChecked is the number of rules evaluated
	RulesChecked int
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("unknown firmware variant: none of %d known patterns matched\n"+
		"Please open a new issue and include the decrypted binary.", e.RulesChecked)
}

// UnsupportedVariantError means the build was recognized but has no
// gadget pattern mapped yet.
type UnsupportedVariantError struct {
	// Rule is the catalog rule that recognized the build
	Rule string
	// Reason explains why the build cannot be handled
	Reason string
}

func (e *UnsupportedVariantError) Error() string {
	return fmt.Sprintf("unsupported firmware variant %s: %s", e.Rule, e.Reason)
}

// CatalogError wraps every validation problem found in a rule table.
type CatalogError struct {
	Err error
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("invalid variant catalog: %v", e.Err)
}

func (e *CatalogError) Unwrap() error {
	return e.Err
}

package analysis

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/muurk/haxomatic/internal/gadget"
	"github.com/muurk/haxomatic/internal/variant"
)

// ErrorType represents the category of a failed run
type ErrorType int

const (
	// ErrTypeNotDecrypted indicates the image lacks the decrypted marker
	ErrTypeNotDecrypted ErrorType = iota
	// ErrTypeUnknownVariant indicates no catalog rule matched
	ErrTypeUnknownVariant
	// ErrTypeUnsupportedVariant indicates a recognized build with no pattern
	ErrTypeUnsupportedVariant
	// ErrTypeMatchCount indicates a pattern occurred an unexpected number of times
	ErrTypeMatchCount
	// ErrTypeNullByte indicates every candidate address contained a null byte
	ErrTypeNullByte
	// ErrTypeCatalog indicates an inconsistent catalog entry or rule table
	ErrTypeCatalog
	// ErrTypeIO indicates a file could not be read or written
	ErrTypeIO
	// ErrTypeCanceled indicates the run was canceled
	ErrTypeCanceled
	// ErrTypeUnknown indicates an unknown or unexpected error
	ErrTypeUnknown
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNotDecrypted:
		return "Not Decrypted"
	case ErrTypeUnknownVariant:
		return "Unknown Variant"
	case ErrTypeUnsupportedVariant:
		return "Unsupported Variant"
	case ErrTypeMatchCount:
		return "Match Count Mismatch"
	case ErrTypeNullByte:
		return "Null Byte In Address"
	case ErrTypeCatalog:
		return "Catalog Error"
	case ErrTypeIO:
		return "I/O Error"
	case ErrTypeCanceled:
		return "Canceled"
	case ErrTypeUnknown:
		return "Unknown Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// ClassifyError returns the category of err by inspecting its chain.
func ClassifyError(err error) ErrorType {
	var (
		notDecrypted *variant.NotDecryptedError
		unknown      *variant.UnknownVariantError
		unsupported  *variant.UnsupportedVariantError
		catalog      *variant.CatalogError
		mismatch     *gadget.MatchCountMismatchError
		nullByte     *gadget.NullByteInAddressError
		overflow     *gadget.OffsetOverflowError
		missing      *gadget.MissingMatchError
		pathErr      *fs.PathError
	)

	switch {
	case errors.As(err, &notDecrypted):
		return ErrTypeNotDecrypted
	case errors.As(err, &unknown):
		return ErrTypeUnknownVariant
	case errors.As(err, &unsupported):
		return ErrTypeUnsupportedVariant
	case errors.As(err, &mismatch):
		return ErrTypeMatchCount
	case errors.As(err, &nullByte):
		return ErrTypeNullByte
	case errors.As(err, &catalog), errors.As(err, &overflow), errors.As(err, &missing):
		return ErrTypeCatalog
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ErrTypeCanceled
	case errors.As(err, &pathErr):
		return ErrTypeIO
	default:
		return ErrTypeUnknown
	}
}

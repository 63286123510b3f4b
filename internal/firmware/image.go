package firmware

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ulikunitz/xz"
)

// xzMagic is the stream header of an xz container.
var xzMagic = []byte{0xFD, '7', 'z', 'X', 'Z', 0x00}

// Image is a decrypted application partition held in memory.
// It is never modified after construction.
type Image struct {
	data []byte
	base int
}

// NewImage wraps data as an image with a base address of 0.
// The slice is copied so later changes by the caller are not observed.
func NewImage(data []byte) *Image {
	return NewImageAt(data, 0)
}

// NewImageAt wraps data as an image mapped at base.
func NewImageAt(data []byte, base int) *Image {
	cp := make([]byte, len(data))
	copy(cp, data)
	return &Image{data: cp, base: base}
}

// Load reads a decrypted application image from disk.
// Files compressed with xz are decompressed transparently.
func Load(path string) (*Image, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read firmware image: %w", err)
	}

	if strings.HasSuffix(path, ".xz") || bytes.HasPrefix(raw, xzMagic) {
		raw, err = decompressXZ(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress firmware image %s: %w", path, err)
		}
	}

	if len(raw) == 0 {
		return nil, fmt.Errorf("firmware image %s is empty", path)
	}

	return &Image{data: raw}, nil
}

func decompressXZ(raw []byte) ([]byte, error) {
	r, err := xz.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}

// Base returns the logical address of the first byte.
func (img *Image) Base() int {
	return img.base
}

// Len returns the image size in bytes.
func (img *Image) Len() int {
	return len(img.data)
}

// Contains reports whether marker occurs anywhere in the image.
func (img *Image) Contains(marker string) bool {
	return bytes.Contains(img.data, []byte(marker))
}

// View returns the underlying contents without copying.
// Callers must not modify the returned slice.
func (img *Image) View() []byte {
	return img.data
}

package pattern

const (
	// BootloaderOffset is where the application partition starts in flash.
	BootloaderOffset = 0x10000

	// ThumbBit marks a branch target as Thumb code.
	ThumbBit = 1

	// MaxImmediate is the largest address that fits a 3-byte immediate.
	MaxImmediate = 0xFFFFFF
)

// Normalize converts an offset within the application image into the
// address used by the running firmware.
func Normalize(offset int) int {
	return offset + BootloaderOffset + ThumbBit
}

// ImmediateBytes returns the low three bytes of addr in little-endian order.
func ImmediateBytes(addr uint32) [3]byte {
	return [3]byte{byte(addr), byte(addr >> 8), byte(addr >> 16)}
}

// HasNullByte reports whether addr would contain a zero byte once encoded
// as a 3-byte little-endian immediate.
func HasNullByte(addr uint32) bool {
	for _, b := range ImmediateBytes(addr) {
		if b == 0 {
			return true
		}
	}
	return false
}

// Package sink stores analysis results as sidecar text files next to the
// analyzed image.
//
// For an image named "<prefix>app_1.00_decrypted.bin" (the layout produced
// by the dump dissector), the artifacts are "<prefix>chip.txt",
// "<prefix>address_finish.txt" and, when the variant has a payload,
// "<prefix>address_<kind>.txt". Any other image path gets "_<artifact>"
// appended instead.
//
// The finish artifact doubles as the "already processed" marker, so it is
// always written last.
package sink

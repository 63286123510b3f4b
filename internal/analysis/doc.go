// Package analysis runs the full gadget search for one firmware image.
//
// A run classifies the image, resolves the payload gadget when the variant
// defines one, and then resolves the finish gadget. The result is only
// handed to a Sink once every step has succeeded, so a failed run never
// leaves artifacts behind.
package analysis

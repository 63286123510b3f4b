// Package gadget resolves payload and finish gadget addresses.
//
// Each gadget is located by searching for its literal instruction bytes,
// checking the number of hits against the variant, picking the preferred
// hit and normalizing it to a runtime Thumb address. The payload and finish
// call sites validate differently:
//
//   - payload: the match count must equal the declared count, and a null
//     byte in the address is fatal
//   - finish: the match count must be non-zero and no greater than the
//     declared count, and a null byte allows a single retry with the next
//     match when the declared count is positive
//
// The finish rule is more lenient than the payload rule. Existing catalog
// entries depend on that, so the two are kept separate.
package gadget

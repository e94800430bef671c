// Package remnantsav decodes and re-encodes the chunked, zlib-compressed,
// CRC-protected save-game container produced by a UE-family game engine, and
// the reflection-style object/property archive nested inside it.
//
// A round trip is Decode -> (inspect/modify the tree) -> Encode, and is
// expected to reproduce the original bytes exactly when the tree is left
// unmodified. Bytes that an object body carries beyond its property list
// and padding word are skipped on decode and are not written back.
package remnantsav

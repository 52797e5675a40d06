// Package codec is the compression passthrough: stateless compress and
// decompress entry points per codec family plus byte shuffling.
//
// The entry points follow the blosc calling convention so they can be
// exported to C unchanged:
//
//	n > 0   bytes written to dst
//	n == 0  dst too small; discard its contents
//	n < 0   error (see the Status constants)
//
// Every compressed buffer is a frame: a 12-byte header (codec id, flags,
// raw length) followed by the payload. When a codec cannot shrink the input
// the raw bytes are stored instead, so a destination of Bound(len(src))
// bytes always succeeds. Levels run from 0 (store only) to 9.
//
// Compress and Decompress are slice helpers for Go callers; they size the
// destination themselves and return errors.
package codec

// Package codec serializes rows of column values into the on-disk record
// format and parses them back.
//
// # Record Format
//
// An encoded record is a header followed by the column payloads:
//
//	[header size varint][serial type varint per column][payload bytes]
//
// The header-size varint counts itself plus the serial type varints. Each
// serial type identifies one column's storage class and, for
// variable-length columns, its encoded length:
//
//	0        NULL, no payload
//	6        64-bit signed integer, 8 bytes big-endian
//	7        64-bit float, 8 bytes big-endian (IEEE 754 bits)
//	2n+13    text of n bytes
//	2n+12    blob of n bytes
//
// Payload bytes follow the header in column order. NULL columns contribute
// nothing.
//
// # Compatibility
//
// The layout matches the reference embedded-database row format with one
// simplification: integers and floats are always written with the
// fixed-width 8-byte serial types, never the variable-width small-integer
// types (1-5, 8, 9) the reference format supports for compact storage.
// Decode accepts the full set, so records produced by the reference engine
// parse correctly; records produced here are valid for the reference
// engine but may be larger than it would have written.
//
// # Limits and Failure Modes
//
// Only headers up to 126 bytes are supported, which keeps the header-size
// prefix in a single varint byte. Exceeding the limit, or encoding a row
// containing Agg or Record values, is a programming error and panics.
// Malformed input to Decode is a recoverable error.
package codec

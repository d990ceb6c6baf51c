// Package varint implements the variable-length unsigned integer encoding
// used by record headers: 1 to 9 bytes, most-significant groups first,
// every byte's high bit set except the last. Values needing more than 56
// bits spill their low 8 bits into a ninth byte.
package varint

// MaxLen is the largest encoded size; Write requires a buffer of at least
// this many bytes.
const MaxLen = 9

// TruncatedError reports an encoded varint cut short by the end of its
// buffer.
type TruncatedError struct{}

func (*TruncatedError) Error() string { return "varint: truncated encoding" }

// ErrTruncated is returned by Read for incomplete input.
var ErrTruncated = &TruncatedError{}

// Write encodes v into buf and returns the number of bytes written,
// between 1 and MaxLen. buf must hold at least MaxLen bytes.
func Write(buf []byte, v uint64) int {
	if v <= 0x7f {
		buf[0] = byte(v)
		return 1
	}
	if v >= 1<<56 {
		// All nine bytes: the last one carries 8 raw bits.
		buf[8] = byte(v)
		v >>= 8
		for i := 7; i >= 0; i-- {
			buf[i] = byte(v&0x7f) | 0x80
			v >>= 7
		}
		return 9
	}
	var tmp [8]byte
	n := 0
	for v > 0 {
		tmp[n] = byte(v&0x7f) | 0x80
		v >>= 7
		n++
	}
	tmp[0] &^= 0x80 // least-significant group terminates the encoding
	for i := 0; i < n; i++ {
		buf[i] = tmp[n-1-i]
	}
	return n
}

// Read decodes a varint from the front of buf, returning the value and the
// number of bytes consumed.
func Read(buf []byte) (uint64, int, error) {
	var v uint64
	for i := 0; i < 8; i++ {
		if i >= len(buf) {
			return 0, 0, ErrTruncated
		}
		c := buf[i]
		if c&0x80 == 0 {
			return v<<7 | uint64(c), i + 1, nil
		}
		v = v<<7 | uint64(c&0x7f)
	}
	if len(buf) < 9 {
		return 0, 0, ErrTruncated
	}
	return v<<8 | uint64(buf[8]), 9, nil
}

// Len returns the encoded size of v without encoding it.
func Len(v uint64) int {
	if v >= 1<<56 {
		return 9
	}
	n := 1
	for v >>= 7; v > 0; v >>= 7 {
		n++
	}
	return n
}

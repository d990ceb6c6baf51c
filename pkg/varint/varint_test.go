package varint

import (
	"bytes"
	"math"
	"testing"
)

func TestWriteReadRoundTrip(t *testing.T) {
	values := []uint64{
		0, 1, 0x7f, 0x80, 0x3fff, 0x4000,
		1<<21 - 1, 1 << 21,
		1<<56 - 1, 1 << 56,
		math.MaxUint64,
	}

	for _, v := range values {
		buf := make([]byte, MaxLen)
		n := Write(buf, v)
		if n < 1 || n > MaxLen {
			t.Fatalf("Write(%d) wrote %d bytes", v, n)
		}
		if want := Len(v); n != want {
			t.Errorf("Write(%d) wrote %d bytes, Len says %d", v, n, want)
		}

		got, read, err := Read(buf[:n])
		if err != nil {
			t.Fatalf("Read failed for %d: %v", v, err)
		}
		if got != v {
			t.Errorf("round trip mismatch: got %d, want %d", got, v)
		}
		if read != n {
			t.Errorf("Read consumed %d bytes, want %d", read, n)
		}
	}
}

func TestWriteKnownEncodings(t *testing.T) {
	testCases := []struct {
		value uint64
		want  []byte
	}{
		{0x00, []byte{0x00}},
		{0x7f, []byte{0x7f}},
		{0x80, []byte{0x81, 0x00}},
		{0xf0, []byte{0x81, 0x70}},
		{0x3fff, []byte{0xff, 0x7f}},
		{0x4000, []byte{0x81, 0x80, 0x00}},
	}

	for _, tc := range testCases {
		buf := make([]byte, MaxLen)
		n := Write(buf, tc.value)
		if !bytes.Equal(buf[:n], tc.want) {
			t.Errorf("Write(%#x) = % x, want % x", tc.value, buf[:n], tc.want)
		}
	}
}

func TestNineByteEncoding(t *testing.T) {
	buf := make([]byte, MaxLen)
	n := Write(buf, math.MaxUint64)
	if n != 9 {
		t.Fatalf("expected 9 bytes for MaxUint64, got %d", n)
	}
	for i := 0; i < 8; i++ {
		if buf[i]&0x80 == 0 {
			t.Errorf("byte %d should have its continuation bit set", i)
		}
	}
	if buf[8] != 0xff {
		t.Errorf("ninth byte should carry the raw low bits, got %#x", buf[8])
	}
}

func TestReadTruncated(t *testing.T) {
	buf := make([]byte, MaxLen)

	n := Write(buf, 0x4000)
	if _, _, err := Read(buf[:n-1]); err != ErrTruncated {
		t.Errorf("expected ErrTruncated for short two-byte input, got %v", err)
	}

	n = Write(buf, math.MaxUint64)
	if _, _, err := Read(buf[:n-1]); err != ErrTruncated {
		t.Errorf("expected ErrTruncated for short nine-byte input, got %v", err)
	}

	if _, _, err := Read(nil); err != ErrTruncated {
		t.Errorf("expected ErrTruncated for empty input, got %v", err)
	}
}

package codec

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/kestreldb/kestrel/pkg/types"
	"github.com/kestreldb/kestrel/pkg/varint"
)

// Serial type codes for the fixed-width kinds. Text columns use 2*len+13,
// blob columns 2*len+12.
const (
	SerialNull    uint64 = 0
	SerialInt64   uint64 = 6
	SerialFloat64 uint64 = 7
)

// MaxHeaderSize is the largest supported record header, chosen so the
// header-size prefix always fits in a single varint byte. Rows whose
// header would exceed it fail fast rather than corrupt the record.
const MaxHeaderSize = 126

// SerialTypeOf returns the serial type code for a single column value.
// Agg and Record values never reach the on-disk format; asking for their
// serial type is a caller defect.
func SerialTypeOf(v types.OwnedValue) uint64 {
	switch v.Kind() {
	case types.KindNull:
		return SerialNull
	case types.KindInteger:
		return SerialInt64
	case types.KindFloat:
		return SerialFloat64
	case types.KindText:
		return uint64(len(v.Str()))*2 + 13
	case types.KindBlob:
		return uint64(len(v.Bytes()))*2 + 12
	}
	panic(fmt.Sprintf("codec: %s values are not serializable", v.Kind()))
}

// Encode serializes a row into the on-disk record format:
//
//	[header size varint][serial type varints][payload]
//
// Integers and floats are always stored as 8-byte big-endian regardless of
// magnitude. The reference format's variable-width small-integer serial
// types are accepted by Decode but never produced here; records we write
// are readable by the reference engine but not byte-identical to what it
// would have written.
//
// Encode panics if the row contains Agg or Record values or if the header
// exceeds MaxHeaderSize.
func Encode(rec *types.OwnedRecord) []byte {
	return AppendEncode(nil, rec)
}

// AppendEncode appends the encoded form of rec to dst and returns the
// extended buffer.
func AppendEncode(dst []byte, rec *types.OwnedRecord) []byte {
	var scratch [varint.MaxLen]byte

	serials := make([]byte, 0, len(rec.Values))
	for _, v := range rec.Values {
		n := varint.Write(scratch[:], SerialTypeOf(v))
		serials = append(serials, scratch[:n]...)
	}

	// The header is its own size varint plus the serial type varints.
	headerSize := len(serials) + 1
	if headerSize > MaxHeaderSize {
		panic(fmt.Sprintf("codec: record header of %d bytes exceeds the %d byte limit", headerSize, MaxHeaderSize))
	}

	dst = append(dst, byte(headerSize))
	dst = append(dst, serials...)

	for _, v := range rec.Values {
		switch v.Kind() {
		case types.KindNull:
		case types.KindInteger:
			dst = binary.BigEndian.AppendUint64(dst, uint64(v.Int()))
		case types.KindFloat:
			dst = binary.BigEndian.AppendUint64(dst, math.Float64bits(v.Float64()))
		case types.KindText:
			dst = append(dst, v.Str()...)
		case types.KindBlob:
			dst = append(dst, v.Bytes()...)
		default:
			panic(fmt.Sprintf("codec: %s values are not serializable", v.Kind()))
		}
	}

	return dst
}

// Decode parses an encoded record back into an owning row. Unlike Encode
// it understands the reference format's full set of scalar serial types,
// so rows written by the reference engine read back correctly. Malformed
// or truncated input is a recoverable error, not a panic.
func Decode(data []byte) (*types.OwnedRecord, error) {
	headerSize, n, err := varint.Read(data)
	if err != nil {
		return nil, fmt.Errorf("record header size: %w", err)
	}
	if headerSize < uint64(n) || headerSize > uint64(len(data)) {
		return nil, fmt.Errorf("record header size %d out of range for %d byte record", headerSize, len(data))
	}

	serials := data[n:headerSize]
	payload := data[headerSize:]

	var values []types.OwnedValue
	for len(serials) > 0 {
		st, m, err := varint.Read(serials)
		if err != nil {
			return nil, fmt.Errorf("serial type: %w", err)
		}
		serials = serials[m:]

		v, size, err := decodeColumn(st, payload)
		if err != nil {
			return nil, err
		}
		payload = payload[size:]
		values = append(values, v)
	}

	return types.NewOwnedRecord(values), nil
}

// decodeColumn decodes one column's payload for serial type st and
// returns the value and the number of payload bytes consumed.
func decodeColumn(st uint64, payload []byte) (types.OwnedValue, int, error) {
	need := func(n int) error {
		if len(payload) < n {
			return fmt.Errorf("payload too short for serial type %d: have %d bytes, need %d", st, len(payload), n)
		}
		return nil
	}

	switch st {
	case SerialNull:
		return types.Null(), 0, nil
	case 1:
		if err := need(1); err != nil {
			return types.OwnedValue{}, 0, err
		}
		return types.Integer(int64(int8(payload[0]))), 1, nil
	case 2:
		if err := need(2); err != nil {
			return types.OwnedValue{}, 0, err
		}
		return types.Integer(int64(int16(binary.BigEndian.Uint16(payload)))), 2, nil
	case 3:
		if err := need(3); err != nil {
			return types.OwnedValue{}, 0, err
		}
		v := int64(payload[0])<<16 | int64(payload[1])<<8 | int64(payload[2])
		if v&0x800000 != 0 {
			v -= 1 << 24
		}
		return types.Integer(v), 3, nil
	case 4:
		if err := need(4); err != nil {
			return types.OwnedValue{}, 0, err
		}
		return types.Integer(int64(int32(binary.BigEndian.Uint32(payload)))), 4, nil
	case 5:
		if err := need(6); err != nil {
			return types.OwnedValue{}, 0, err
		}
		v := int64(binary.BigEndian.Uint16(payload))<<32 | int64(binary.BigEndian.Uint32(payload[2:]))
		if v&0x800000000000 != 0 {
			v -= 1 << 48
		}
		return types.Integer(v), 6, nil
	case SerialInt64:
		if err := need(8); err != nil {
			return types.OwnedValue{}, 0, err
		}
		return types.Integer(int64(binary.BigEndian.Uint64(payload))), 8, nil
	case SerialFloat64:
		if err := need(8); err != nil {
			return types.OwnedValue{}, 0, err
		}
		return types.Float(math.Float64frombits(binary.BigEndian.Uint64(payload))), 8, nil
	case 8:
		return types.Integer(0), 0, nil
	case 9:
		return types.Integer(1), 0, nil
	case 10, 11:
		return types.OwnedValue{}, 0, fmt.Errorf("reserved serial type %d", st)
	}

	length := int((st - 12) / 2)
	if err := need(length); err != nil {
		return types.OwnedValue{}, 0, err
	}
	if st%2 == 0 {
		blob := make([]byte, length)
		copy(blob, payload)
		return types.Blob(blob), length, nil
	}
	return types.Text(string(payload[:length])), length, nil
}

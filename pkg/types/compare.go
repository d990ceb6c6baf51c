package types

import (
	"bytes"
	"fmt"
	"strings"
)

// typeClass is the fixed precedence used when comparing values of
// different types: NULL < numeric < TEXT < BLOB.
func typeClass(k Kind) int {
	switch k {
	case KindNull:
		return 0
	case KindInteger, KindFloat:
		return 1
	case KindText:
		return 2
	case KindBlob:
		return 3
	}
	panic(fmt.Sprintf("types: %s values have no type class", k))
}

// Compare orders v against other and returns -1, 0 or 1. The order is
// total for every pair the engine actually produces: values rank by type
// class first, numerics compare after promoting integers to float, text
// and blobs compare bytewise. Aggregates compare through their running
// state (same kind) or their FinalValue projection (against non
// aggregates). Record values have no defined order; comparing them is a
// caller defect and panics.
func (v OwnedValue) Compare(other OwnedValue) int {
	if v.kind == KindAgg || other.kind == KindAgg {
		switch {
		case v.kind == KindAgg && other.kind == KindAgg:
			return v.agg.Compare(other.agg)
		case v.kind == KindAgg:
			return v.agg.FinalValue().Compare(other)
		default:
			return v.Compare(other.agg.FinalValue())
		}
	}

	lc, rc := typeClass(v.kind), typeClass(other.kind)
	if lc != rc {
		if lc < rc {
			return -1
		}
		return 1
	}

	switch lc {
	case 0: // NULL vs NULL
		return 0
	case 1:
		return compareNumeric(v, other)
	case 2:
		return strings.Compare(v.s, other.s)
	default:
		return bytes.Compare(v.b, other.b)
	}
}

// Equals reports whether the two values compare equal.
func (v OwnedValue) Equals(other OwnedValue) bool { return v.Compare(other) == 0 }

func compareNumeric(a, b OwnedValue) int {
	if a.kind == KindInteger && b.kind == KindInteger {
		switch {
		case a.n < b.n:
			return -1
		case a.n > b.n:
			return 1
		default:
			return 0
		}
	}
	// Mixed or float pair: promote to float.
	af, bf := a.f, b.f
	if a.kind == KindInteger {
		af = float64(a.n)
	}
	if b.kind == KindInteger {
		bf = float64(b.n)
	}
	switch {
	case af < bf:
		return -1
	case af > bf:
		return 1
	default:
		return 0
	}
}

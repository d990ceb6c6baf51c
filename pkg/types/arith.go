package types

import "strconv"

// Add computes lhs + rhs under the engine's coercion rules: numeric pairs
// add (integers promote to float when mixed), text pairs concatenate, a
// text/numeric pair concatenates with the numeric rendered canonically,
// and NULL is absorbed (NULL + x = x, x + NULL = x). Any remaining
// combination collapses to Float(0.0); callers depend on that fallback,
// so it is preserved rather than turned into an error.
func Add(lhs, rhs OwnedValue) OwnedValue {
	switch {
	case lhs.kind == KindInteger && rhs.kind == KindInteger:
		return Integer(lhs.n + rhs.n)
	case lhs.kind == KindInteger && rhs.kind == KindFloat:
		return Float(float64(lhs.n) + rhs.f)
	case lhs.kind == KindFloat && rhs.kind == KindInteger:
		return Float(lhs.f + float64(rhs.n))
	case lhs.kind == KindFloat && rhs.kind == KindFloat:
		return Float(lhs.f + rhs.f)
	case lhs.kind == KindText && rhs.kind == KindText:
		return Text(lhs.s + rhs.s)
	case lhs.kind == KindText && rhs.kind == KindInteger:
		return Text(lhs.s + strconv.FormatInt(rhs.n, 10))
	case lhs.kind == KindInteger && rhs.kind == KindText:
		return Text(strconv.FormatInt(lhs.n, 10) + rhs.s)
	case lhs.kind == KindText && rhs.kind == KindFloat:
		return Text(lhs.s + formatFloat(rhs.f))
	case lhs.kind == KindFloat && rhs.kind == KindText:
		return Text(formatFloat(lhs.f) + rhs.s)
	case rhs.kind == KindNull:
		return lhs
	case lhs.kind == KindNull:
		return rhs
	default:
		return Float(0.0)
	}
}

// AddInt64 adds a raw integer to a numeric value. Used by the aggregate
// driver on accumulator slots, which are numeric by construction.
func (v OwnedValue) AddInt64(rhs int64) OwnedValue {
	switch v.kind {
	case KindInteger:
		return Integer(v.n + rhs)
	case KindFloat:
		return Float(v.f + float64(rhs))
	}
	panic("types: AddInt64 on non-numeric value")
}

// AddFloat64 adds a raw float to a numeric value, promoting integers.
func (v OwnedValue) AddFloat64(rhs float64) OwnedValue {
	switch v.kind {
	case KindInteger:
		return Float(float64(v.n) + rhs)
	case KindFloat:
		return Float(v.f + rhs)
	}
	panic("types: AddFloat64 on non-numeric value")
}

// Div computes lhs / rhs. Integer pairs divide truncating toward zero;
// mixed pairs promote to float. Integer division by zero panics, float
// division by zero follows IEEE 754. Non-numeric combinations collapse to
// Float(0.0), matching Add's fallback.
func Div(lhs, rhs OwnedValue) OwnedValue {
	switch {
	case lhs.kind == KindInteger && rhs.kind == KindInteger:
		return Integer(lhs.n / rhs.n)
	case lhs.kind == KindInteger && rhs.kind == KindFloat:
		return Float(float64(lhs.n) / rhs.f)
	case lhs.kind == KindFloat && rhs.kind == KindInteger:
		return Float(lhs.f / float64(rhs.n))
	case lhs.kind == KindFloat && rhs.kind == KindFloat:
		return Float(lhs.f / rhs.f)
	default:
		return Float(0.0)
	}
}

// AddAssign replaces v with v + rhs.
func (v *OwnedValue) AddAssign(rhs OwnedValue) { *v = Add(*v, rhs) }

// AddAssignInt64 replaces v with v + rhs.
func (v *OwnedValue) AddAssignInt64(rhs int64) { *v = v.AddInt64(rhs) }

// AddAssignFloat64 replaces v with v + rhs.
func (v *OwnedValue) AddAssignFloat64(rhs float64) { *v = v.AddFloat64(rhs) }

// DivAssign replaces v with v / rhs.
func (v *OwnedValue) DivAssign(rhs OwnedValue) { *v = Div(*v, rhs) }

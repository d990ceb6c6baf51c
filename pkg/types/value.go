// Package types defines the in-memory value model used throughout query
// evaluation: borrowed and owning value variants, SQL-style comparison and
// arithmetic coercion, rows, and per-group aggregate accumulators.
package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the runtime type of a value.
type Kind uint8

const (
	KindNull Kind = iota
	KindInteger
	KindFloat
	KindText
	KindBlob
	KindAgg
	KindRecord
)

// String returns the SQL-facing name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "NULL"
	case KindInteger:
		return "INTEGER"
	case KindFloat:
		return "FLOAT"
	case KindText:
		return "TEXT"
	case KindBlob:
		return "BLOB"
	case KindAgg:
		return "AGG"
	case KindRecord:
		return "RECORD"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// OwnedValue is a value usable independently of any row buffer. Text and
// blob payloads are shared, not copied: Go string and slice headers alias
// the same backing bytes, and payloads are treated as immutable once a
// value is constructed. Agg and Record variants exist only transiently
// during execution and are never serialized.
//
// The zero OwnedValue is NULL.
type OwnedValue struct {
	kind Kind
	n    int64
	f    float64
	s    string
	b    []byte
	agg  *AggContext
	rec  *OwnedRecord
}

// Null returns the NULL value.
func Null() OwnedValue { return OwnedValue{} }

// Integer returns an integer value.
func Integer(n int64) OwnedValue { return OwnedValue{kind: KindInteger, n: n} }

// Float returns a floating point value.
func Float(f float64) OwnedValue { return OwnedValue{kind: KindFloat, f: f} }

// Text returns a text value sharing s's backing bytes.
func Text(s string) OwnedValue { return OwnedValue{kind: KindText, s: s} }

// Blob returns a blob value sharing b's backing array. The caller must not
// mutate b afterwards.
func Blob(b []byte) OwnedValue { return OwnedValue{kind: KindBlob, b: b} }

// Agg wraps an aggregate accumulator. The context stays heap-allocated so
// the common scalar variants keep the struct small.
func Agg(a *AggContext) OwnedValue { return OwnedValue{kind: KindAgg, agg: a} }

// RecordValue wraps a row as a value.
func RecordValue(r *OwnedRecord) OwnedValue { return OwnedValue{kind: KindRecord, rec: r} }

// Kind returns the value's type tag.
func (v OwnedValue) Kind() Kind { return v.kind }

// Int returns the integer payload. Valid only for KindInteger.
func (v OwnedValue) Int() int64 { return v.n }

// Float64 returns the float payload. Valid only for KindFloat.
func (v OwnedValue) Float64() float64 { return v.f }

// Str returns the text payload. Valid only for KindText.
func (v OwnedValue) Str() string { return v.s }

// Bytes returns the blob payload. Valid only for KindBlob.
func (v OwnedValue) Bytes() []byte { return v.b }

// AggContext returns the wrapped accumulator. Valid only for KindAgg.
func (v OwnedValue) AggContext() *AggContext { return v.agg }

// Record returns the wrapped row. Valid only for KindRecord.
func (v OwnedValue) Record() *OwnedRecord { return v.rec }

// IsNull reports whether the value is NULL.
func (v OwnedValue) IsNull() bool { return v.kind == KindNull }

// String renders the value the way the engine displays it.
func (v OwnedValue) String() string {
	switch v.kind {
	case KindNull:
		return "NULL"
	case KindInteger:
		return strconv.FormatInt(v.n, 10)
	case KindFloat:
		return formatFloat(v.f)
	case KindText:
		return v.s
	case KindBlob:
		return string(v.b)
	case KindAgg:
		if v.agg.kind == AggMax || v.agg.kind == AggMin {
			if v.agg.best == nil {
				return "NULL"
			}
			return v.agg.best.String()
		}
		return v.agg.acc.String()
	case KindRecord:
		return fmt.Sprintf("%v", v.rec.Values)
	}
	return fmt.Sprintf("OwnedValue(%d)", uint8(v.kind))
}

// View projects the value into its borrowed form. Aggregates are projected
// through their running state; projecting a Record is a caller defect.
func (v OwnedValue) View() Value {
	switch v.kind {
	case KindNull:
		return Value{}
	case KindInteger:
		return Value{kind: KindInteger, n: v.n}
	case KindFloat:
		return Value{kind: KindFloat, f: v.f}
	case KindText:
		return Value{kind: KindText, s: v.s}
	case KindBlob:
		return Value{kind: KindBlob, b: v.b}
	case KindAgg:
		return v.agg.view()
	case KindRecord:
		panic("types: record values have no borrowed projection")
	}
	panic("types: unknown value kind")
}

// Value is a borrowed, read-only view of a single column value. It never
// owns its text or blob payload and is valid only while the buffer it was
// built from (typically an OwnedRecord) is alive.
//
// The zero Value is NULL.
type Value struct {
	kind Kind
	n    int64
	f    float64
	s    string
	b    []byte
}

// Kind returns the value's type tag.
func (v Value) Kind() Kind { return v.kind }

// Int returns the integer payload. Valid only for KindInteger.
func (v Value) Int() int64 { return v.n }

// Float64 returns the float payload. Valid only for KindFloat.
func (v Value) Float64() float64 { return v.f }

// Str returns the text payload. Valid only for KindText.
func (v Value) Str() string { return v.s }

// Bytes returns the blob payload. Valid only for KindBlob.
func (v Value) Bytes() []byte { return v.b }

// IsNull reports whether the value is NULL.
func (v Value) IsNull() bool { return v.kind == KindNull }

// String renders the value for display.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "NULL"
	case KindInteger:
		return strconv.FormatInt(v.n, 10)
	case KindFloat:
		return formatFloat(v.f)
	case KindText:
		return v.s
	case KindBlob:
		return fmt.Sprintf("%v", v.b)
	}
	return fmt.Sprintf("Value(%d)", uint8(v.kind))
}

// ToInt64 extracts the integer payload, failing when the stored tag is not
// an integer.
func (v Value) ToInt64() (int64, error) {
	if v.kind != KindInteger {
		return 0, ErrExpectedInteger
	}
	return v.n, nil
}

// ToString extracts the text payload, failing when the stored tag is not
// text.
func (v Value) ToString() (string, error) {
	if v.kind != KindText {
		return "", ErrExpectedText
	}
	return v.s, nil
}

// formatFloat renders a float in its canonical form: shortest decimal
// representation, with ".0" forced onto integral values so they remain
// distinguishable from integers (3.0, not 3).
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsAny(s, ".eE") || strings.ContainsAny(s, "nI") {
		// Already fractional, exponent form, NaN or Inf.
		return s
	}
	return s + ".0"
}

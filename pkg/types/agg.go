package types

import "fmt"

// AggKind identifies an aggregate accumulator variant.
type AggKind uint8

const (
	AggAvg AggKind = iota
	AggSum
	AggCount
	AggMax
	AggMin
	AggGroupConcat
)

// String returns the SQL function name for the kind.
func (k AggKind) String() string {
	switch k {
	case AggAvg:
		return "avg"
	case AggSum:
		return "sum"
	case AggCount:
		return "count"
	case AggMax:
		return "max"
	case AggMin:
		return "min"
	case AggGroupConcat:
		return "group_concat"
	}
	return fmt.Sprintf("AggKind(%d)", uint8(k))
}

// AggContext is the per-group accumulator behind a streaming aggregate.
// It is created when a group begins, updated once per contributing row by
// the aggregate driver through the slot accessors, and discarded after the
// group closes. FinalValue is a pure projection and may be read
// mid-accumulation, e.g. when ordering on a partially computed aggregate.
type AggContext struct {
	kind  AggKind
	acc   OwnedValue  // running value; the row counter for AggCount
	count OwnedValue  // AggAvg row counter
	best  *OwnedValue // AggMax/AggMin extremum, nil until the first input
}

// NewAvg returns an avg accumulator. The accumulator starts NULL so the
// first added value fixes its numeric type; the counter starts at zero.
func NewAvg() *AggContext { return &AggContext{kind: AggAvg, count: Integer(0)} }

// NewSum returns a sum accumulator, NULL until the first input.
func NewSum() *AggContext { return &AggContext{kind: AggSum} }

// NewCount returns a count accumulator starting at zero.
func NewCount() *AggContext { return &AggContext{kind: AggCount, acc: Integer(0)} }

// NewMax returns a max accumulator with no extremum yet.
func NewMax() *AggContext { return &AggContext{kind: AggMax} }

// NewMin returns a min accumulator with no extremum yet.
func NewMin() *AggContext { return &AggContext{kind: AggMin} }

// NewGroupConcat returns a group_concat accumulator.
func NewGroupConcat() *AggContext { return &AggContext{kind: AggGroupConcat, acc: Text("")} }

// Kind returns the accumulator variant.
func (a *AggContext) Kind() AggKind { return a.kind }

// Acc returns the running-value slot for avg, sum, count and group_concat
// accumulators. The aggregate driver mutates it in place.
func (a *AggContext) Acc() *OwnedValue {
	switch a.kind {
	case AggAvg, AggSum, AggCount, AggGroupConcat:
		return &a.acc
	}
	panic(fmt.Sprintf("types: %s aggregate has no accumulator slot", a.kind))
}

// Counter returns the row-counter slot of an avg accumulator.
func (a *AggContext) Counter() *OwnedValue {
	if a.kind != AggAvg {
		panic(fmt.Sprintf("types: %s aggregate has no counter slot", a.kind))
	}
	return &a.count
}

// Best returns the current extremum of a max/min accumulator. ok is false
// until the first input has been observed.
func (a *AggContext) Best() (OwnedValue, bool) {
	if a.kind != AggMax && a.kind != AggMin {
		panic(fmt.Sprintf("types: %s aggregate has no extremum slot", a.kind))
	}
	if a.best == nil {
		return Null(), false
	}
	return *a.best, true
}

// SetBest records a new extremum for a max/min accumulator.
func (a *AggContext) SetBest(v OwnedValue) {
	if a.kind != AggMax && a.kind != AggMin {
		panic(fmt.Sprintf("types: %s aggregate has no extremum slot", a.kind))
	}
	a.best = &v
}

// FinalValue projects the accumulator's current result. For avg this is
// the running sum; dividing by the row count is the materialization
// step's responsibility. Max/min with no inputs project NULL.
func (a *AggContext) FinalValue() OwnedValue {
	switch a.kind {
	case AggAvg, AggSum, AggCount, AggGroupConcat:
		return a.acc
	case AggMax, AggMin:
		if a.best == nil {
			return Null()
		}
		return *a.best
	}
	panic(fmt.Sprintf("types: unknown aggregate kind %d", uint8(a.kind)))
}

// Compare orders two accumulators of the same kind by their stored running
// state. Ordering across kinds is undefined and treated as a caller
// defect.
func (a *AggContext) Compare(other *AggContext) int {
	if a.kind != other.kind {
		panic(fmt.Sprintf("types: no defined order between %s and %s aggregates", a.kind, other.kind))
	}
	switch a.kind {
	case AggAvg, AggSum, AggCount, AggGroupConcat:
		return a.acc.Compare(other.acc)
	case AggMax, AggMin:
		// An unset extremum orders before any set one.
		switch {
		case a.best == nil && other.best == nil:
			return 0
		case a.best == nil:
			return -1
		case other.best == nil:
			return 1
		default:
			return a.best.Compare(*other.best)
		}
	}
	panic(fmt.Sprintf("types: unknown aggregate kind %d", uint8(a.kind)))
}

// view projects the accumulator into a borrowed value, mirroring the
// engine's per-column projection rules.
func (a *AggContext) view() Value {
	switch a.kind {
	case AggAvg, AggSum:
		switch a.acc.kind {
		case KindInteger:
			return Value{kind: KindInteger, n: a.acc.n}
		case KindFloat:
			return Value{kind: KindFloat, f: a.acc.f}
		default:
			return Value{kind: KindFloat}
		}
	case AggCount:
		return a.acc.View()
	case AggMax, AggMin:
		if a.best == nil {
			return Value{}
		}
		return a.best.View()
	case AggGroupConcat:
		return a.acc.View()
	}
	panic(fmt.Sprintf("types: unknown aggregate kind %d", uint8(a.kind)))
}

package types

// Record is a borrowed row: a view over values whose payloads live in an
// OwnedRecord or raw page buffer. Column order is the row's column order.
type Record struct {
	Values []Value
}

// NewRecord builds a borrowed row from values.
func NewRecord(values []Value) Record {
	return Record{Values: values}
}

// OwnedRecord is an owning row of values. It is the unit handed to
// cursors for insertion and produced by record decoding.
type OwnedRecord struct {
	Values []OwnedValue
}

// NewOwnedRecord builds an owning row from values.
func NewOwnedRecord(values []OwnedValue) *OwnedRecord {
	return &OwnedRecord{Values: values}
}

// View projects the row into its borrowed form without copying payloads.
// The result is valid only while r is alive.
func (r *OwnedRecord) View() Record {
	values := make([]Value, len(r.Values))
	for i, v := range r.Values {
		values[i] = v.View()
	}
	return Record{Values: values}
}

// Compare orders two rows column by column, with a shorter row ordering
// before any longer row it prefixes. This is the ordering index keys use.
func (r *OwnedRecord) Compare(other *OwnedRecord) int {
	n := len(r.Values)
	if len(other.Values) < n {
		n = len(other.Values)
	}
	for i := 0; i < n; i++ {
		if c := r.Values[i].Compare(other.Values[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(r.Values) < len(other.Values):
		return -1
	case len(r.Values) > len(other.Values):
		return 1
	default:
		return 0
	}
}

package types

import "testing"

func TestOwnedRecordCompare(t *testing.T) {
	testCases := []struct {
		name string
		a, b []OwnedValue
		want int
	}{
		{
			name: "equal rows",
			a:    []OwnedValue{Integer(1), Text("a")},
			b:    []OwnedValue{Integer(1), Text("a")},
			want: 0,
		},
		{
			name: "first column decides",
			a:    []OwnedValue{Integer(1), Text("z")},
			b:    []OwnedValue{Integer(2), Text("a")},
			want: -1,
		},
		{
			name: "later column breaks tie",
			a:    []OwnedValue{Integer(1), Text("b")},
			b:    []OwnedValue{Integer(1), Text("a")},
			want: 1,
		},
		{
			name: "prefix orders before longer row",
			a:    []OwnedValue{Integer(1)},
			b:    []OwnedValue{Integer(1), Null()},
			want: -1,
		},
		{
			name: "null orders first within a column",
			a:    []OwnedValue{Null()},
			b:    []OwnedValue{Integer(-100)},
			want: -1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a, b := NewOwnedRecord(tc.a), NewOwnedRecord(tc.b)
			if got := a.Compare(b); got != tc.want {
				t.Errorf("Compare = %d, want %d", got, tc.want)
			}
			if got := b.Compare(a); got != -tc.want {
				t.Errorf("inverse Compare = %d, want %d", got, -tc.want)
			}
		})
	}
}

func TestRecordViewSharesPayloads(t *testing.T) {
	blob := []byte{1, 2, 3}
	owned := NewOwnedRecord([]OwnedValue{Blob(blob)})

	view := owned.View()
	got := view.Values[0].Bytes()
	if &got[0] != &blob[0] {
		t.Error("view should alias the owning record's blob bytes, not copy them")
	}
}

package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestreldb/kestrel/pkg/types"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		arg  string
		want types.OwnedValue
	}{
		{"null", types.Null()},
		{"42", types.Integer(42)},
		{"-7", types.Integer(-7)},
		{"1.5", types.Float(1.5)},
		{"int:42", types.Integer(42)},
		{"float:2", types.Float(2)},
		{"text:42", types.Text("42")},
		{"text:", types.Text("")},
		{"blob:deadbeef", types.Blob([]byte{0xde, 0xad, 0xbe, 0xef})},
		{"hello", types.Text("hello")},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := parseValue(tt.arg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseValueErrors(t *testing.T) {
	for _, arg := range []string{"int:abc", "float:abc", "blob:zz"} {
		t.Run(arg, func(t *testing.T) {
			_, err := parseValue(arg)
			assert.Error(t, err)
		})
	}
}

func TestFormatRow(t *testing.T) {
	rec, err := parseRow([]string{"null", "42", "float:3", "text:hi", "blob:0102"})
	require.NoError(t, err)

	assert.Equal(t, "NULL | 42 | 3.0 | hi | x'0102'", formatRow(rec))
}

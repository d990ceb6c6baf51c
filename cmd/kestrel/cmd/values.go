package cmd

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/kestreldb/kestrel/pkg/types"
)

// parseValue turns a command line argument into a column value. Typed
// prefixes force an interpretation; bare arguments fall back to integer,
// then float, then text.
//
//	null            SQL NULL
//	int:42          integer
//	float:1.5       float
//	text:hello      text
//	blob:deadbeef   blob, hex encoded
func parseValue(arg string) (types.OwnedValue, error) {
	switch {
	case arg == "null":
		return types.Null(), nil
	case strings.HasPrefix(arg, "int:"):
		n, err := strconv.ParseInt(arg[len("int:"):], 10, 64)
		if err != nil {
			return types.OwnedValue{}, fmt.Errorf("invalid integer %q: %w", arg, err)
		}
		return types.Integer(n), nil
	case strings.HasPrefix(arg, "float:"):
		f, err := strconv.ParseFloat(arg[len("float:"):], 64)
		if err != nil {
			return types.OwnedValue{}, fmt.Errorf("invalid float %q: %w", arg, err)
		}
		return types.Float(f), nil
	case strings.HasPrefix(arg, "text:"):
		return types.Text(arg[len("text:"):]), nil
	case strings.HasPrefix(arg, "blob:"):
		b, err := hex.DecodeString(arg[len("blob:"):])
		if err != nil {
			return types.OwnedValue{}, fmt.Errorf("invalid blob %q: %w", arg, err)
		}
		return types.Blob(b), nil
	}

	if n, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return types.Integer(n), nil
	}
	if f, err := strconv.ParseFloat(arg, 64); err == nil {
		return types.Float(f), nil
	}
	return types.Text(arg), nil
}

// parseRow parses each argument into a column of one row.
func parseRow(args []string) (*types.OwnedRecord, error) {
	values := make([]types.OwnedValue, 0, len(args))
	for _, arg := range args {
		v, err := parseValue(arg)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return types.NewOwnedRecord(values), nil
}

// formatRow renders a row for display.
func formatRow(rec *types.OwnedRecord) string {
	cols := make([]string, len(rec.Values))
	for i, v := range rec.Values {
		if v.Kind() == types.KindBlob {
			cols[i] = "x'" + hex.EncodeToString(v.Bytes()) + "'"
			continue
		}
		cols[i] = v.String()
	}
	return strings.Join(cols, " | ")
}

package types

// ConversionError reports a typed extraction whose requested type does not
// match the stored value's tag. It is recoverable, unlike the invariant
// violations in this package, which panic.
type ConversionError struct {
	Message string
}

func (e *ConversionError) Error() string { return e.Message }

// Sentinel conversion failures.
var (
	ErrExpectedInteger = &ConversionError{"expected integer value"}
	ErrExpectedText    = &ConversionError{"expected text value"}
)

package pipeline

import "fmt"

// ParseError is a row-scoped parsing failure (timestamp or numeric
// field). The offending row is dropped or sentinel-filled locally; the
// batch never aborts on it.
type ParseError struct {
	Field string
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %s value %q", e.Field, e.Value)
}

// KeyError is a row-scoped composite-key construction failure: a
// channel/campaign/creative label without a usable numeric suffix.
type KeyError struct {
	Field string
	Label string
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("cannot build key from %s label %q", e.Field, e.Label)
}

// DivisionError marks a zero denominator in cost allocation or ROI. The
// affected rows are zero-filled or excluded, never NaN/Inf.
type DivisionError struct {
	Op string
}

func (e *DivisionError) Error() string {
	return fmt.Sprintf("division by zero in %s", e.Op)
}

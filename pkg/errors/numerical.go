package errors

import (
	"fmt"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"
)

// maxReportedValues caps how many offending values are kept on the error.
const maxReportedValues = 5

// NumericalInstabilityError is returned when NaN or Inf shows up where only
// finite values are allowed, e.g. in the inputs of a least-squares fit.
type NumericalInstabilityError struct {
	Operation string
	Values    []float64
	Index     int // position (row-major for matrices) of the first offending value
}

func (e *NumericalInstabilityError) Error() string {
	valStr := ""
	for i, v := range e.Values {
		if i > 0 {
			valStr += ", "
		}
		valStr += fmt.Sprintf("%.6g", v)
	}
	return fmt.Sprintf("houseval: non-finite values in %s starting at index %d: [%s]",
		e.Operation, e.Index, valStr)
}

// MarshalZerologObject adds structured fields to a zerolog event.
func (e *NumericalInstabilityError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Operation).
		Floats64("values", e.Values).
		Int("index", e.Index).
		Str("type", "NumericalInstabilityError")
}

// NewNumericalInstabilityError creates a NumericalInstabilityError marked as a
// precondition violation.
func NewNumericalInstabilityError(operation string, values []float64, index int) error {
	err := &NumericalInstabilityError{Operation: operation, Values: values, Index: index}
	return errors.WithStack(errors.Mark(err, ErrPreconditionViolation))
}

// CheckFinite returns an error if values contains NaN or Inf.
func CheckFinite(operation string, values []float64) error {
	var bad []float64
	first := -1
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			if first < 0 {
				first = i
			}
			bad = append(bad, v)
			if len(bad) >= maxReportedValues {
				break
			}
		}
	}
	if first >= 0 {
		return NewNumericalInstabilityError(operation, bad, first)
	}
	return nil
}

// CheckMatrix returns an error if any element of m is NaN or Inf.
func CheckMatrix(operation string, m mat.Matrix) error {
	rows, cols := m.Dims()
	var bad []float64
	first := -1
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := m.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				if first < 0 {
					first = i*cols + j
				}
				bad = append(bad, v)
				if len(bad) >= maxReportedValues {
					return NewNumericalInstabilityError(operation, bad, first)
				}
			}
		}
	}
	if first >= 0 {
		return NewNumericalInstabilityError(operation, bad, first)
	}
	return nil
}

package fixedpoint

import "errors"

var (
	// ErrDivisionByZero indicates a division with a zero divisor.
	ErrDivisionByZero = errors.New("fixedpoint: division by zero")

	// ErrOverflow indicates an intermediate value exceeded the precision guard.
	ErrOverflow = errors.New("fixedpoint: intermediate value exceeds precision guard")

	// ErrInvalidDecimal indicates a decimal string could not be parsed.
	ErrInvalidDecimal = errors.New("fixedpoint: invalid decimal string")
)

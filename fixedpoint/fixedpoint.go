// Package fixedpoint implements 18-decimal scaled arithmetic over signed
// arbitrary-precision integers.
//
// A Dec holds the real value multiplied by 10^18. All operations are pure
// integer arithmetic on big.Int, so results are bit-for-bit reproducible
// across platforms. Mul and Div truncate toward zero.
package fixedpoint

import (
	"fmt"
	"math/big"
	"strings"
)

// Decimals is the number of fractional digits carried by a Dec.
const Decimals = 18

// maxIntermediateBits bounds intermediate magnitudes during exponentiation.
// Exceeding it fails with ErrOverflow instead of consuming unbounded memory.
const maxIntermediateBits = 4096

// scale = 10^18.
var scale = new(big.Int).Exp(big.NewInt(10), big.NewInt(Decimals), nil)

// Dec is an immutable 18-decimal fixed-point number.
// The zero value is 0.
type Dec struct {
	i *big.Int
}

// Zero returns the Dec 0.
func Zero() Dec { return Dec{} }

// One returns the Dec 1.0 (10^18 scaled).
func One() Dec { return Dec{i: new(big.Int).Set(scale)} }

// FromInt64 returns n as a Dec (n is an unscaled whole number).
func FromInt64(n int64) Dec {
	return Dec{i: new(big.Int).Mul(big.NewInt(n), scale)}
}

// FromScaled wraps an already-scaled integer value. The input is copied.
func FromScaled(v *big.Int) Dec {
	if v == nil {
		return Dec{}
	}
	return Dec{i: new(big.Int).Set(v)}
}

// FromScaledInt64 wraps an already-scaled int64 value.
func FromScaledInt64(v int64) Dec {
	return Dec{i: big.NewInt(v)}
}

// Parse converts a decimal string such as "1.5", "-0.25" or "100" to a Dec.
// At most 18 fractional digits are accepted.
func Parse(s string) (Dec, error) {
	if s == "" {
		return Dec{}, fmt.Errorf("%w: empty string", ErrInvalidDecimal)
	}
	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" && frac == "" {
		return Dec{}, fmt.Errorf("%w: no digits", ErrInvalidDecimal)
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > Decimals {
		return Dec{}, fmt.Errorf("%w: more than %d fractional digits", ErrInvalidDecimal, Decimals)
	}
	if !digitsOnly(whole) || (frac != "" && !digitsOnly(frac)) {
		return Dec{}, fmt.Errorf("%w: %q", ErrInvalidDecimal, s)
	}

	w, _ := new(big.Int).SetString(whole, 10)
	w.Mul(w, scale)

	if frac != "" {
		// Right-pad the fraction to 18 digits before parsing.
		f, _ := new(big.Int).SetString(frac+strings.Repeat("0", Decimals-len(frac)), 10)
		w.Add(w, f)
	}

	if neg {
		w.Neg(w)
	}
	return Dec{i: w}, nil
}

// digitsOnly reports whether s consists solely of ASCII digits.
func digitsOnly(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// MustParse is Parse that panics on error. For constants and tests.
func MustParse(s string) Dec {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// val returns the inner integer, treating a zero-value Dec as 0.
func (d Dec) val() *big.Int {
	if d.i == nil {
		return new(big.Int)
	}
	return d.i
}

// Add returns d + o.
func (d Dec) Add(o Dec) Dec {
	return Dec{i: new(big.Int).Add(d.val(), o.val())}
}

// Sub returns d - o.
func (d Dec) Sub(o Dec) Dec {
	return Dec{i: new(big.Int).Sub(d.val(), o.val())}
}

// Neg returns -d.
func (d Dec) Neg() Dec {
	return Dec{i: new(big.Int).Neg(d.val())}
}

// Mul returns d * o, truncated toward zero.
func (d Dec) Mul(o Dec) Dec {
	p := new(big.Int).Mul(d.val(), o.val())
	return Dec{i: p.Quo(p, scale)}
}

// Div returns d / o, truncated toward zero.
// Returns ErrDivisionByZero if o is zero.
func (d Dec) Div(o Dec) (Dec, error) {
	if o.IsZero() {
		return Dec{}, ErrDivisionByZero
	}
	p := new(big.Int).Mul(d.val(), scale)
	return Dec{i: p.Quo(p, o.val())}, nil
}

// PowInt returns d raised to the non-negative integer power n, by squaring
// with a truncating fixed-point multiply at every step. d^0 is 1 for any d.
// Intermediates wider than the precision guard fail with ErrOverflow.
func (d Dec) PowInt(n uint64) (Dec, error) {
	result := One()
	base := Dec{i: new(big.Int).Set(d.val())}
	for n > 0 {
		if base.val().BitLen() > maxIntermediateBits || result.val().BitLen() > maxIntermediateBits {
			return Dec{}, ErrOverflow
		}
		if n&1 == 1 {
			result = result.Mul(base)
		}
		n >>= 1
		if n > 0 {
			base = base.Mul(base)
		}
	}
	if result.val().BitLen() > maxIntermediateBits {
		return Dec{}, ErrOverflow
	}
	return result, nil
}

// Cmp compares d and o: -1 if d < o, 0 if equal, +1 if d > o.
func (d Dec) Cmp(o Dec) int { return d.val().Cmp(o.val()) }

// Sign returns -1, 0 or +1 depending on the sign of d.
func (d Dec) Sign() int { return d.val().Sign() }

// IsZero reports whether d is 0.
func (d Dec) IsZero() bool { return d.i == nil || d.i.Sign() == 0 }

// Scaled returns a copy of the underlying scaled integer.
func (d Dec) Scaled() *big.Int { return new(big.Int).Set(d.val()) }

// String renders d as a decimal string with trailing fractional zeros
// trimmed, e.g. "1.5", "-0.25", "100".
func (d Dec) String() string {
	v := d.val()
	sign := ""
	abs := new(big.Int).Abs(v)
	if v.Sign() < 0 {
		sign = "-"
	}
	q, r := new(big.Int).QuoRem(abs, scale, new(big.Int))
	if r.Sign() == 0 {
		return sign + q.String()
	}
	rs := r.String()
	frac := strings.TrimRight(strings.Repeat("0", Decimals-len(rs))+rs, "0")
	return sign + q.String() + "." + frac
}

// GobEncode implements gob.GobEncoder.
func (d Dec) GobEncode() ([]byte, error) {
	return d.val().GobEncode()
}

// GobDecode implements gob.GobDecoder.
func (d *Dec) GobDecode(data []byte) error {
	v := new(big.Int)
	if err := v.GobDecode(data); err != nil {
		return err
	}
	d.i = v
	return nil
}

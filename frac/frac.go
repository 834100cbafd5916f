// Package frac implements exact non-negative rational numbers.
//
// Probabilities in the endgame solver are deep sums of products of small
// fractions. Computing them exactly keeps tests such as "is this line a
// certain win" reliable.
package frac

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math/bits"
	"strings"
)

// Frac is an exact non-negative rational number, always kept in lowest terms.
// The zero value is 0/1.
type Frac struct {
	num uint64
	den uint64 // den-1, so that the zero value is valid.
}

var (
	Zero = Frac{}
	One  = Frac{num: 1}
)

// New returns num/den. New panics if den is zero.
func New(num, den uint64) Frac {
	if den == 0 {
		panic(fmt.Errorf("fraction %d/0 has a zero denominator", num))
	}

	return reduce(num, den)
}

// FromInt returns n/1.
func FromInt(n uint64) Frac {
	return Frac{num: n}
}

func reduce(num, den uint64) Frac {
	if num == 0 {
		return Zero
	}
	g := gcd(num, den)
	return Frac{num: num / g, den: den/g - 1}
}

// Num returns the numerator in lowest terms.
func (f Frac) Num() uint64 {
	return f.num
}

// Den returns the denominator in lowest terms. It is never zero.
func (f Frac) Den() uint64 {
	return f.den + 1
}

func (f Frac) IsZero() bool {
	return f.num == 0
}

func (f Frac) IsOne() bool {
	return f.num == 1 && f.den == 0
}

// Add returns f + g.
func (f Frac) Add(g Frac) Frac {
	fd, gd := f.Den(), g.Den()
	d := gcd(fd, gd)
	// lcm(fd, gd) = fd * (gd/d)
	den := mul(fd, gd/d)
	num := add(mul(f.num, gd/d), mul(g.num, fd/d))
	return reduce(num, den)
}

// Sub returns f - g. Sub panics if the result would be negative.
func (f Frac) Sub(g Frac) Frac {
	if f.Less(g) {
		panic(fmt.Errorf("%v - %v is negative", f, g))
	}

	fd, gd := f.Den(), g.Den()
	d := gcd(fd, gd)
	den := mul(fd, gd/d)
	num := mul(f.num, gd/d) - mul(g.num, fd/d)
	return reduce(num, den)
}

// Mul returns f * g.
func (f Frac) Mul(g Frac) Frac {
	if f.num == 0 || g.num == 0 {
		return Zero
	}

	// Cross-reduce first so the products stay small.
	g1 := gcd(f.num, g.Den())
	g2 := gcd(g.num, f.Den())
	num := mul(f.num/g1, g.num/g2)
	den := mul(f.Den()/g2, g.Den()/g1)
	return reduce(num, den)
}

// Div returns f / g. Div panics if g is zero.
func (f Frac) Div(g Frac) Frac {
	if g.num == 0 {
		panic(fmt.Errorf("%v / 0", f))
	}

	return f.Mul(Frac{num: g.Den(), den: g.num - 1})
}

// Scale returns f * k.
func (f Frac) Scale(k uint64) Frac {
	return f.Mul(FromInt(k))
}

// Cmp returns -1, 0 or +1 depending on whether f is less than, equal to,
// or greater than g.
func (f Frac) Cmp(g Frac) int {
	lhsHi, lhsLo := bits.Mul64(f.num, g.Den())
	rhsHi, rhsLo := bits.Mul64(g.num, f.Den())
	switch {
	case lhsHi < rhsHi || (lhsHi == rhsHi && lhsLo < rhsLo):
		return -1
	case lhsHi == rhsHi && lhsLo == rhsLo:
		return 0
	default:
		return 1
	}
}

func (f Frac) Less(g Frac) bool {
	return f.Cmp(g) < 0
}

func (f Frac) Equal(g Frac) bool {
	return f == g
}

// Float64 returns the nearest float64 to f, for display only.
func (f Frac) Float64() float64 {
	return float64(f.num) / float64(f.Den())
}

// Decimal renders f in base 10 with prec digits after the point,
// truncating rather than rounding.
func (f Frac) Decimal(prec int) string {
	den := f.Den()
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d", f.num/den)
	if prec <= 0 {
		return sb.String()
	}

	sb.WriteByte('.')
	rem := f.num % den
	for i := 0; i < prec; i++ {
		hi, lo := bits.Mul64(rem, 10)
		digit, r := bits.Div64(hi, lo, den)
		sb.WriteByte(byte('0' + digit))
		rem = r
	}
	return sb.String()
}

// String implements Stringer.
func (f Frac) String() string {
	return fmt.Sprintf("%d/%d", f.num, f.Den())
}

// GobEncode implements gob.GobEncoder.
func (f Frac) GobEncode() ([]byte, error) {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], f.num)
	binary.LittleEndian.PutUint64(buf[8:], f.Den())
	return buf[:], nil
}

// GobDecode implements gob.GobDecoder.
func (f *Frac) GobDecode(data []byte) error {
	if len(data) != 16 {
		return fmt.Errorf("invalid encoded fraction: %d bytes", len(data))
	}

	r := bytes.NewReader(data)
	var num, den uint64
	if err := binary.Read(r, binary.LittleEndian, &num); err != nil {
		return err
	}
	if err := binary.Read(r, binary.LittleEndian, &den); err != nil {
		return err
	}
	if den == 0 {
		return fmt.Errorf("invalid encoded fraction %d/0", num)
	}

	*f = reduce(num, den)
	return nil
}

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func mul(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		panic(fmt.Errorf("fraction overflow: %d * %d", a, b))
	}
	return lo
}

func add(a, b uint64) uint64 {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		panic(fmt.Errorf("fraction overflow: %d + %d", a, b))
	}
	return sum
}

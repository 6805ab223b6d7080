// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package packed implements decimal floating-point arithmetic on 64-bit
// integers. It is meant for kernels that run on devices without native
// double precision, where a float32 is not accurate enough.
//
// A packed value p holds a signed decimal mantissa m and an exponent e as
//  p = sign(m) * (e - MinExp) * 10^17 + m,
// with |m| < 10^17, which leaves room for Digits significant digits and one
// carry digit. The encoded number is
//  m * 10^(e - Digits + 1).
// The zero value of int64 is the packed zero.
//
// Exponents below MinExp are clamped to MinExp, so numbers smaller than about
// 10^-49 lose significant digits and eventually flush to zero. Numbers whose
// exponent exceeds MaxExp after rounding to Digits digits, that is numbers
// of magnitude 9.9999999999999995e42 or more, as well as NaN and infinities,
// are packed as Invalid, which unpacks to NaN and propagates through Add and
// Mul.
//
// Add and Mul return results with roughly Digits significant digits. For
// a result r the relative error against exact arithmetic is bounded by
//  10^(2 - MantissaLength(r)).
package packed

import (
	"math"
	"strconv"
)

const (
	// MinExp is the smallest decimal exponent of a packed value.
	MinExp = -49
	// MaxExp is the largest decimal exponent of a packed value.
	MaxExp = 42
	// Digits is the number of significant decimal digits of a packed
	// mantissa.
	Digits = 16
)

// Invalid is the packed representation of NaN, infinities and numbers
// outside the packed range.
const Invalid int64 = math.MinInt64

const (
	// splitExp separates the biased exponent from the mantissa.
	splitExp int64 = 1e17
	// splitInt splits a Digits-digit mantissa into two halves.
	splitInt int64 = 1e8
)

var pow10 = [...]int64{
	1, 1e1, 1e2, 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9,
	1e10, 1e11, 1e12, 1e13, 1e14, 1e15, 1e16, 1e17, 1e18,
}

// Pack returns the packed representation of v. The mantissa is v correctly
// rounded to Digits significant digits, so for every p returned by Pack,
//  Pack(Unpack(p)) == p.
func Pack(v float64) int64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Invalid
	}
	var buf [32]byte
	m, e := parseScientific(strconv.AppendFloat(buf[:0], v, 'e', Digits-1, 64))
	if e < MinExp {
		m = roundShift(m, MinExp-e)
		e = MinExp
	}
	return encode(m, e)
}

// parseScientific parses the output of strconv.AppendFloat in the 'e'
// format, such as -1.234e+05, into an integer mantissa holding all the
// printed digits and the decimal exponent of the leading digit.
func parseScientific(b []byte) (m, e int64) {
	neg := b[0] == '-'
	if neg {
		b = b[1:]
	}
	i := 0
	for ; b[i] != 'e'; i++ {
		if b[i] != '.' {
			m = 10*m + int64(b[i]-'0')
		}
	}
	i++
	negExp := b[i] == '-'
	for i++; i < len(b); i++ {
		e = 10*e + int64(b[i]-'0')
	}
	if negExp {
		e = -e
	}
	if neg {
		m = -m
	}
	return m, e
}

// Unpack returns the float64 closest to the packed value p. When p holds a
// power of ten whose closest float64 lies below it by more than half a unit
// of the finer decimal grid there, Unpack returns the next float64 away from
// zero instead, so that the result packs to p again.
func Unpack(p int64) float64 {
	if p == Invalid {
		return math.NaN()
	}
	m, e := decode(p)
	var buf [32]byte
	b := strconv.AppendInt(buf[:0], m, 10)
	b = append(b, 'e')
	b = strconv.AppendInt(b, e-Digits+1, 10)
	// The magnitude of a packed value is far inside the float64 range.
	v, _ := strconv.ParseFloat(string(b), 64)
	if (m == pow10[Digits-1] || m == -pow10[Digits-1]) && Pack(v) != p {
		v = math.Nextafter(v, math.Copysign(math.Inf(1), v))
	}
	return v
}

// Add returns the packed sum a + b. The operand with the smaller exponent
// is aligned to the larger one by dropping its low digits.
func Add(a, b int64) int64 {
	if a == Invalid || b == Invalid {
		return Invalid
	}
	ma, ea := decode(a)
	mb, eb := decode(b)
	if ea < eb {
		ma, ea, mb, eb = mb, eb, ma, ea
	}
	return encode(ma+shift(mb, ea-eb), ea)
}

// Sub returns the packed difference a - b.
func Sub(a, b int64) int64 {
	return Add(a, Neg(b))
}

// Neg returns the packed value -p.
func Neg(p int64) int64 {
	if p == Invalid {
		return Invalid
	}
	return -p
}

// Mul returns the packed product a * b. Both mantissas are split into an
// upper and a lower half of eight digits; the product of the two lower
// halves lies below the precision of the result and is dropped.
func Mul(a, b int64) int64 {
	if a == Invalid || b == Invalid {
		return Invalid
	}
	ma, ea := normalize(decode(a))
	mb, eb := normalize(decode(b))
	if ma == 0 || mb == 0 {
		return 0
	}
	ahi, alo := ma/splitInt, ma%splitInt
	bhi, blo := mb/splitInt, mb%splitInt
	m := ahi*bhi + (alo*bhi+ahi*blo)/splitInt
	return encode(m, ea+eb+1)
}

// Split returns the mantissa and the decimal exponent of the packed value
// p, such that p represents mantissa * 10^(exp - Digits + 1).
// It panics if p is Invalid.
func Split(p int64) (mantissa int64, exp int) {
	if p == Invalid {
		panic("packed: split of invalid value")
	}
	m, e := decode(p)
	return m, int(e)
}

// MantissaLength returns floor(log10(|m|)) for the mantissa m of p, that is,
// one less than the number of decimal digits held by the mantissa. It returns
// zero for the packed zero and for Invalid.
func MantissaLength(p int64) int {
	if p == Invalid {
		return 0
	}
	m, _ := decode(p)
	if m < 0 {
		m = -m
	}
	var n int
	for m >= 10 {
		m /= 10
		n++
	}
	return n
}

func decode(p int64) (m, e int64) {
	q := p / splitExp
	m = p - q*splitExp
	if q < 0 {
		q = -q
	}
	return m, q + MinExp
}

func encode(m, e int64) int64 {
	for m >= splitExp || m <= -splitExp {
		m /= 10
		e++
	}
	if e < MinExp {
		m = shift(m, MinExp-e)
		e = MinExp
	}
	if m == 0 {
		return 0
	}
	if e > MaxExp {
		return Invalid
	}
	if m < 0 {
		return -(e-MinExp)*splitExp + m
	}
	return (e-MinExp)*splitExp + m
}

// normalize scales a non-zero mantissa to exactly Digits digits. The
// returned exponent is not clamped.
func normalize(m, e int64) (int64, int64) {
	if m == 0 {
		return 0, e
	}
	for -pow10[Digits-1] < m && m < pow10[Digits-1] {
		m *= 10
		e--
	}
	for m >= pow10[Digits] || m <= -pow10[Digits] {
		m /= 10
		e++
	}
	return m, e
}

// roundShift drops the n lowest decimal digits of m, rounding half away
// from zero.
func roundShift(m, n int64) int64 {
	if n >= int64(len(pow10)) {
		return 0
	}
	q, r := m/pow10[n], m%pow10[n]
	if 2*r >= pow10[n] {
		q++
	} else if 2*r <= -pow10[n] {
		q--
	}
	return q
}

// shift drops the n lowest decimal digits of m.
func shift(m, n int64) int64 {
	if n >= int64(len(pow10)) {
		return 0
	}
	return m / pow10[n]
}

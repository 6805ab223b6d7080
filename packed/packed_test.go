// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package packed

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const randomTests = 20000

func TestPackUnpack(t *testing.T) {
	for _, v := range []float64{
		1e3, 1e38, 1e39, 1e41, 1e42,
		1e-5, 1e-38, 1e-39, 1e-45, 1e-46, 1e-49,
		-7.25, 3.141592653589793, -2.718281828459045e-17,
	} {
		got := Unpack(Pack(v))
		assert.InEpsilon(t, v, got, 1e-14, "value %v", v)
	}
}

func TestPackZero(t *testing.T) {
	assert.Equal(t, int64(0), Pack(0))
	assert.Equal(t, int64(0), Pack(math.Copysign(0, -1)))
	assert.Equal(t, 0.0, Unpack(0))
}

func TestPackSign(t *testing.T) {
	for _, v := range []float64{1, 0.1, 12345.678, 1e-30, 1e30} {
		p, n := Pack(v), Pack(-v)
		assert.Positive(t, p, "value %v", v)
		assert.Equal(t, -p, n, "value %v", v)
		assert.Equal(t, n, Neg(p))
	}
}

func TestPackRoundTripRandom(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < randomTests; i++ {
		v := math.Pow(10, -45+87*rnd.Float64())
		if rnd.Intn(2) == 0 {
			v = -v
		}
		got := Unpack(Pack(v))
		if rel := math.Abs(got/v - 1); rel > 1e-12 {
			t.Fatalf("round trip of %v: got %v, relative error %v", v, got, rel)
		}
	}
}

func TestPackIdempotent(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 10*randomTests; i++ {
		v := math.Pow(10, -60+103*rnd.Float64())
		if rnd.Intn(2) == 0 {
			v = -v
		}
		p := Pack(v)
		if p == Invalid {
			continue
		}
		if q := Pack(Unpack(p)); q != p {
			t.Fatalf("value %v: Pack(Unpack(%d)) = %d", v, p, q)
		}
	}
}

func TestPackFifteenDigits(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 10*randomTests; i++ {
		m := 1e14 + 1 + rnd.Int63n(9e14-1)
		e := MinExp + rnd.Intn(MaxExp-MinExp+1)
		v, err := strconv.ParseFloat(fmt.Sprintf("%de%d", m, e-14), 64)
		require.NoError(t, err)

		p := Pack(v)
		mant, exp := Split(p)
		if exp != e || mant < 10*m-1 || 10*m+1 < mant {
			t.Fatalf("value %v: got mantissa %d exponent %d, want %d0 and %d", v, mant, exp, m, e)
		}
		if q := Pack(Unpack(p)); q != p {
			t.Fatalf("value %v: Pack(Unpack(%d)) = %d", v, p, q)
		}
	}
}

func TestPackPowersOfTen(t *testing.T) {
	for k := MinExp; k <= MaxExp; k++ {
		v := math.Pow10(k)
		for _, w := range []float64{v, math.Nextafter(v, 0), math.Nextafter(v, math.Inf(1))} {
			for _, x := range []float64{w, -w} {
				p := Pack(x)
				assert.Equal(t, p, Pack(Unpack(p)), "value %v", x)
			}
		}
	}
	// The closest float64 to 1e23 lies below it, the next one above still
	// rounds to 1e23.
	p := Pack(math.Nextafter(1e23, math.Inf(1)))
	mant, exp := Split(p)
	assert.Equal(t, int64(1e15), mant)
	assert.Equal(t, 23, exp)
	assert.Equal(t, p, Pack(Unpack(p)))
}

func TestPackLargestExponent(t *testing.T) {
	for _, v := range []float64{9.99e42, 9.99999999999999e42, -9.99e42} {
		p := Pack(v)
		require.NotEqual(t, Invalid, p, "value %v", v)
		_, exp := Split(p)
		assert.Equal(t, MaxExp, exp, "value %v", v)
		assert.InEpsilon(t, v, Unpack(p), 1e-15, "value %v", v)
	}
	assert.Equal(t, Invalid, Pack(1e43))
}

func TestPrecisionFloor(t *testing.T) {
	// Below 10^MinExp the exponent is clamped and the mantissa shrinks.
	p := Pack(1e-55)
	m, e := Split(p)
	assert.Equal(t, MinExp, e)
	assert.Equal(t, int64(1e9), m)
	assert.Equal(t, 9, MantissaLength(p))
	assert.InEpsilon(t, 1e-55, Unpack(p), 1e-12)

	assert.Equal(t, int64(0), Pack(1e-66))
	assert.Equal(t, int64(0), Pack(math.SmallestNonzeroFloat64))

	// Products that underflow the exponent range lose digits the same way.
	assert.Equal(t, int64(0), Mul(Pack(1e-40), Pack(1e-40)))
}

func TestInvalid(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), 1e45, -1e45, math.MaxFloat64} {
		assert.Equal(t, Invalid, Pack(v), "value %v", v)
	}
	assert.True(t, math.IsNaN(Unpack(Invalid)))
	assert.Equal(t, Invalid, Add(Invalid, Pack(1)))
	assert.Equal(t, Invalid, Add(Pack(1), Invalid))
	assert.Equal(t, Invalid, Mul(Pack(2), Invalid))
	assert.Equal(t, Invalid, Neg(Invalid))
	assert.Equal(t, 0, MantissaLength(Invalid))
	assert.Equal(t, Invalid, Mul(Pack(1e30), Pack(1e30)))
	assert.Panics(t, func() { Split(Invalid) })
}

func TestAddSpecialCases(t *testing.T) {
	for _, tc := range [][2]float64{
		{-3.836464871262581000e+13, +2.965381412521720000e-05},
		{0, 0.1},
		{0, 0},
		{0.1, 0},
		{9.999999999999999e-20, -9.999999999999999e-20},
		{9.999999999999999e-20, 9.999999999999999e+20},
		{9.999999999999999e+20, 9.999999999999999e-20},
		{9.999999999999999e+20, 9.999999999999999e+20},
		{1e-45, 1e-45},
	} {
		checkPrecision(t, "add", tc[0], tc[1], tc[0]+tc[1], Add(Pack(tc[0]), Pack(tc[1])))
	}
}

func TestMulSpecialCases(t *testing.T) {
	for _, tc := range [][2]float64{
		{0, 0.1},
		{0, 0},
		{0.1, 0},
		{9.999999999999999e-20, -9.999999999999999e-20},
		{9.999999999999999e+20, 9.999999999999999e+20},
		{-3, 7},
	} {
		checkPrecision(t, "mul", tc[0], tc[1], tc[0]*tc[1], Mul(Pack(tc[0]), Pack(tc[1])))
	}
}

func TestIntegerArithmetic(t *testing.T) {
	require.Equal(t, 68.0, Unpack(Add(Add(Mul(Pack(10), Pack(1)), Mul(Pack(11), Pack(2))), Mul(Pack(12), Pack(3)))))
	require.Equal(t, -6.0, Unpack(Sub(Pack(4), Pack(10))))
	require.Equal(t, 0.0, Unpack(Sub(Pack(4), Pack(4))))
}

func TestAddRandom(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < randomTests; i++ {
		a, b := randomNumber(rnd, 5), randomNumber(rnd, 5)
		checkPrecision(t, "add", a, b, a+b, Add(Pack(a), Pack(b)))
	}
}

func TestAddRandomWide(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	for i := 0; i < randomTests; i++ {
		a, b := randomNumber(rnd, 80), randomNumber(rnd, 80)
		checkPrecision(t, "add", a, b, a+b, Add(Pack(a), Pack(b)))
	}
}

func TestMulRandom(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < randomTests; i++ {
		a, b := randomNumber(rnd, 5), randomNumber(rnd, 5)
		checkPrecision(t, "mul", a, b, a*b, Mul(Pack(a), Pack(b)))
	}
}

func TestMulRandomWide(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	for i := 0; i < randomTests; i++ {
		a, b := randomNumber(rnd, 40), randomNumber(rnd, 40)
		checkPrecision(t, "mul", a, b, a*b, Mul(Pack(a), Pack(b)))
	}
}

func TestMulCancelledMantissa(t *testing.T) {
	// The difference keeps only a few significant digits of its operands.
	d := Sub(Pack(1.000000000123), Pack(1))
	require.Less(t, MantissaLength(d), Digits-1)
	checkPrecision(t, "mul", Unpack(d), 3, Unpack(d)*3, Mul(d, Pack(3)))
}

// randomNumber returns a number with random sign and a magnitude spread over
// span decimal orders around one.
func randomNumber(rnd *rand.Rand, span float64) float64 {
	return 2 * (rnd.Float64() - 0.5) * math.Pow(10, span*(rnd.Float64()-0.5))
}

func checkPrecision(t *testing.T, op string, a, b, want float64, result int64) {
	t.Helper()
	got := Unpack(result)
	if math.Abs(want) == 0 {
		if got != 0 {
			t.Errorf("%s(%.18e, %.18e): want 0, got %.18e", op, a, b, got)
		}
		return
	}
	bound := math.Pow10(2 - MantissaLength(result))
	if rel := math.Abs(got/want - 1); rel > bound {
		t.Errorf("%s(%.18e, %.18e): want %.18e, got %.18e, relative error %v exceeds %v",
			op, a, b, want, got, rel, bound)
	}
}

func BenchmarkAdd(b *testing.B) {
	x, y := Pack(1.2345678901234), Pack(-9.87654321e-3)
	for i := 0; i < b.N; i++ {
		x = Add(x, y)
	}
	_ = x
}

func BenchmarkMul(b *testing.B) {
	x, y := Pack(1.2345678901234), Pack(0.999999999)
	for i := 0; i < b.N; i++ {
		x = Mul(x, y)
	}
	_ = x
}

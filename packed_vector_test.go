// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bandcg

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vladimir-ch/bandcg/packed"
)

func TestPackedVectorRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	v := randomVector(100, rnd)
	p := NewPackedVector(100, nil)
	p.PackVec(v)
	for i, x := range v.RawData() {
		assert.Equal(t, packed.Pack(x), p.RawData()[i])
	}

	u := NewVector(100, nil)
	u.UnpackVec(p)
	for i, x := range v.RawData() {
		assert.InDelta(t, x, u.At(i), 1e-12*math.Abs(x), "element %d", i)
		assert.Equal(t, u.At(i), p.At(i))
	}
}

func TestPackedVectorSet(t *testing.T) {
	p := NewPackedVector(2, nil)
	assert.Equal(t, 0.0, p.At(0), "zero word unpacks to zero")
	p.Set(1, 3.5)
	assert.Equal(t, 3.5, p.At(1))
	p.Set(0, math.NaN())
	assert.Equal(t, packed.Invalid, p.RawData()[0])
	assert.True(t, math.IsNaN(p.At(0)))

	assert.PanicsWithValue(t, ErrIndexOutOfRange, func() { p.At(2) })
	assert.PanicsWithValue(t, ErrIndexOutOfRange, func() { p.Set(-1, 0) })
	assert.PanicsWithValue(t, ErrZeroLength, func() { NewPackedVector(0, nil) })
	assert.PanicsWithValue(t, ErrShape, func() { NewPackedVector(3, make([]int64, 2)) })
}

func TestPackedVectorArithmetic(t *testing.T) {
	a := NewVector(2, []float64{7, 1})
	b := NewVector(2, []float64{0.14, 0.32})
	pa := NewPackedVector(2, nil)
	pb := NewPackedVector(2, nil)
	pa.PackVec(a)
	pb.PackVec(b)
	dst := NewPackedVector(2, nil)
	out := NewVector(2, nil)

	dst.AddVec(pa, pb)
	out.UnpackVec(dst)
	assert.InDeltaSlice(t, []float64{7.14, 1.32}, out.RawData(), 1e-14)

	dst.SubVec(pa, pb)
	out.UnpackVec(dst)
	assert.InDeltaSlice(t, []float64{6.86, 0.68}, out.RawData(), 1e-14)

	dst.ScaleVec(0.11, pa)
	out.UnpackVec(dst)
	assert.InDeltaSlice(t, []float64{0.77, 0.11}, out.RawData(), 1e-14)

	x := NewVector(2, []float64{4, 2})
	y := NewVector(2, []float64{3, 5})
	px := NewPackedVector(2, nil)
	py := NewPackedVector(2, nil)
	px.PackVec(x)
	py.PackVec(y)
	assert.InDelta(t, 22.0, PackedDot(px, py), 1e-13)
}

func TestPackedVectorShapeMismatch(t *testing.T) {
	a := NewPackedVector(2, nil)
	b := NewPackedVector(3, nil)
	assert.PanicsWithValue(t, ErrShape, func() { PackedDot(a, b) })
	assert.PanicsWithValue(t, ErrShape, func() { a.AddVec(a, b) })
	assert.PanicsWithValue(t, ErrShape, func() { a.SubVec(b, a) })
	assert.PanicsWithValue(t, ErrShape, func() { a.ScaleVec(1, b) })
	assert.PanicsWithValue(t, ErrShape, func() { a.PackVec(NewVector(3, nil)) })
	assert.PanicsWithValue(t, ErrShape, func() { NewVector(3, nil).UnpackVec(a) })
}

// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bandcg

import "github.com/vladimir-ch/bandcg/packed"

// PackedVector is a fixed-length vector whose elements are stored as packed
// decimal values. It is the representation used by kernels that run without
// native double precision. Converting from a Vector keeps 16 significant
// decimal digits of every element.
//
// Arithmetic methods store their result in the receiver, never allocate,
// and use packed arithmetic for every operation.
type PackedVector struct {
	data []int64
}

// NewPackedVector creates a new PackedVector of length n. If data == nil, a
// new slice is allocated for the backing slice. If len(data) == n, data is
// used as the backing slice. If neither of these is true, NewPackedVector
// will panic. NewPackedVector will panic if n is not positive.
func NewPackedVector(n int, data []int64) *PackedVector {
	if n <= 0 {
		panic(ErrZeroLength)
	}
	if data == nil {
		data = make([]int64, n)
	}
	if len(data) != n {
		panic(ErrShape)
	}
	return &PackedVector{data: data}
}

// Len returns the length of the vector.
func (v *PackedVector) Len() int {
	return len(v.data)
}

// At returns the element at index i converted to float64.
func (v *PackedVector) At(i int) float64 {
	if uint(i) >= uint(len(v.data)) {
		panic(ErrIndexOutOfRange)
	}
	return packed.Unpack(v.data[i])
}

// Set packs val and stores it at index i.
func (v *PackedVector) Set(i int, val float64) {
	if uint(i) >= uint(len(v.data)) {
		panic(ErrIndexOutOfRange)
	}
	v.data[i] = packed.Pack(val)
}

// RawData returns the backing slice of packed values.
func (v *PackedVector) RawData() []int64 {
	return v.data
}

// PackVec stores the packed elements of a in the receiver.
func (v *PackedVector) PackVec(a *Vector) {
	if len(v.data) != len(a.data) {
		panic(ErrShape)
	}
	for i, x := range a.data {
		v.data[i] = packed.Pack(x)
	}
}

// UnpackVec stores the unpacked elements of a in the receiver.
func (v *Vector) UnpackVec(a *PackedVector) {
	if len(v.data) != len(a.data) {
		panic(ErrShape)
	}
	for i, p := range a.data {
		v.data[i] = packed.Unpack(p)
	}
}

// AddVec stores a + b in the receiver.
func (v *PackedVector) AddVec(a, b *PackedVector) {
	v.checkLen(a)
	v.checkLen(b)
	for i := range v.data {
		v.data[i] = packed.Add(a.data[i], b.data[i])
	}
}

// SubVec stores a - b in the receiver.
func (v *PackedVector) SubVec(a, b *PackedVector) {
	v.checkLen(a)
	v.checkLen(b)
	for i := range v.data {
		v.data[i] = packed.Sub(a.data[i], b.data[i])
	}
}

// ScaleVec stores alpha * a in the receiver.
func (v *PackedVector) ScaleVec(alpha float64, a *PackedVector) {
	v.checkLen(a)
	s := packed.Pack(alpha)
	for i := range v.data {
		v.data[i] = packed.Mul(s, a.data[i])
	}
}

func (v *PackedVector) checkLen(a *PackedVector) {
	if len(v.data) != len(a.data) {
		panic(ErrShape)
	}
}

// PackedDot returns the sum of the elementwise products of a and b. The
// products are computed in packed arithmetic and summed in float64.
func PackedDot(a, b *PackedVector) float64 {
	a.checkLen(b)
	var sum float64
	for i, p := range a.data {
		sum += packed.Unpack(packed.Mul(p, b.data[i]))
	}
	return sum
}

// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bandcg

import "gonum.org/v1/gonum/floats"

// Vector is a fixed-length vector of float64 values.
//
// Arithmetic methods store their result in the receiver and never
// allocate, so they can be used inside iterative loops. The receiver may be
// one of the operands.
type Vector struct {
	data []float64
}

// NewVector creates a new Vector of length n. If data == nil, a new slice is
// allocated for the backing slice. If len(data) == n, data is used as the
// backing slice, and changes to the elements of the returned Vector will be
// reflected in data. If neither of these is true, NewVector will panic.
// NewVector will panic if n is not positive.
func NewVector(n int, data []float64) *Vector {
	if n <= 0 {
		panic(ErrZeroLength)
	}
	if data == nil {
		data = make([]float64, n)
	}
	if len(data) != n {
		panic(ErrShape)
	}
	return &Vector{data: data}
}

// Len returns the length of the vector.
func (v *Vector) Len() int {
	return len(v.data)
}

// At returns the element at index i. It panics with ErrIndexOutOfRange if
// i is outside [0, Len()).
func (v *Vector) At(i int) float64 {
	if uint(i) >= uint(len(v.data)) {
		panic(ErrIndexOutOfRange)
	}
	return v.data[i]
}

// Set sets the element at index i to val. It panics with
// ErrIndexOutOfRange if i is outside [0, Len()).
func (v *Vector) Set(i int, val float64) {
	if uint(i) >= uint(len(v.data)) {
		panic(ErrIndexOutOfRange)
	}
	v.data[i] = val
}

// RawData returns the backing slice of the vector.
func (v *Vector) RawData() []float64 {
	return v.data
}

// CopyVec copies the elements of a into the receiver.
func (v *Vector) CopyVec(a *Vector) {
	v.checkLen(a)
	copy(v.data, a.data)
}

// AddVec stores a + b in the receiver.
func (v *Vector) AddVec(a, b *Vector) {
	v.checkLen(a)
	v.checkLen(b)
	floats.AddTo(v.data, a.data, b.data)
}

// SubVec stores a - b in the receiver.
func (v *Vector) SubVec(a, b *Vector) {
	v.checkLen(a)
	v.checkLen(b)
	floats.SubTo(v.data, a.data, b.data)
}

// ScaleVec stores alpha * a in the receiver.
func (v *Vector) ScaleVec(alpha float64, a *Vector) {
	v.checkLen(a)
	floats.ScaleTo(v.data, alpha, a.data)
}

// AddScaledVec stores a + alpha * b in the receiver.
func (v *Vector) AddScaledVec(a *Vector, alpha float64, b *Vector) {
	v.checkLen(a)
	v.checkLen(b)
	floats.AddScaledTo(v.data, a.data, alpha, b.data)
}

func (v *Vector) checkLen(a *Vector) {
	if len(v.data) != len(a.data) {
		panic(ErrShape)
	}
}

// Dot returns the sum of the elementwise products of a and b.
func Dot(a, b *Vector) float64 {
	a.checkLen(b)
	return floats.Dot(a.data, b.data)
}

// Norm returns the L norm of a. See floats.Norm for the accepted values of L.
func Norm(a *Vector, L float64) float64 {
	return floats.Norm(a.data, L)
}

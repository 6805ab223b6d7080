// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bandcg

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// randomBandSPD returns an n×n band matrix with bandwidth w whose
// off-diagonal elements are uniform in [-1, 1). The diagonal makes every row
// strictly diagonally dominant with a margin of at least one, so the matrix is
// symmetric positive definite with eigenvalues not smaller than one.
func randomBandSPD(n, w int, layout Layout, rnd *rand.Rand) *BandMatrix {
	a := NewBandMatrix(n, w, layout)
	rowSum := make([]float64, n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < min(n, i+w); j++ {
			v := 2*rnd.Float64() - 1
			a.Set(i, j, v)
			rowSum[i] += math.Abs(v)
			rowSum[j] += math.Abs(v)
		}
	}
	for i := 0; i < n; i++ {
		a.Set(i, i, rowSum[i]+1+rnd.Float64())
	}
	return a
}

func randomVector(n int, rnd *rand.Rand) *Vector {
	v := NewVector(n, nil)
	for i := range v.data {
		v.data[i] = 10 * (rnd.Float64() - 0.5)
	}
	return v
}

// referenceMulVec computes a*x with gonum.
func referenceMulVec(a *BandMatrix, x *Vector) []float64 {
	var y mat.VecDense
	y.MulVec(a.ToSymBandDense(), mat.NewVecDense(x.Len(), x.RawData()))
	return y.RawVector().Data
}

// bandExample returns the n×n test matrix whose elements with 0 <= j-i < 3
// hold 10, 11, 12, ... row by row. w must be at least 3.
func bandExample(n, w int, layout Layout) *BandMatrix {
	a := NewBandMatrix(n, w, layout)
	v := 10.0
	for i := 0; i < n; i++ {
		for j := i; j < min(n, i+3); j++ {
			a.Set(i, j, v)
			v++
		}
	}
	return a
}

func strategies() map[string]Strategy {
	return map[string]Strategy{
		"Sequential": Sequential{},
		"Parallel":   Parallel{},
		"Emulated":   Emulated{},
	}
}

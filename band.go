// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bandcg

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

// Layout specifies how a BandMatrix is stored.
type Layout int

const (
	// HalfBand stores the diagonal and the upper band. Row i holds the
	// elements (i, i), (i, i+1), ..., (i, i+w-1), so the storage has
	// rows*w elements. For example, the matrix
	//  10 11 12  0  0
	//  11 13 14 15  0
	//  12 14 16 17 18
	//   0 15 17 19 20
	//   0  0 18 20 21
	// with w = 3 becomes (* entries are never accessed)
	//  10 11 12
	//  13 14 15
	//  16 17 18
	//  19 20  *
	//  21  *  *
	HalfBand Layout = iota

	// FullBand stores both sides of the band centred on the diagonal.
	// Row i holds the elements (i, i-w+1), ..., (i, i+w-1), so the
	// storage has rows*(2w-1) elements and every off-diagonal element is
	// stored twice. The matrix above becomes
	//   *  * 10 11 12
	//   * 11 13 14 15
	//  12 14 16 17 18
	//  15 17 19 20  *
	//  18 20 21  *  *
	FullBand
)

func (l Layout) String() string {
	switch l {
	case HalfBand:
		return "HalfBand"
	case FullBand:
		return "FullBand"
	}
	return "Layout(?)"
}

// BandMatrix is a symmetric band matrix in compact storage. Only elements
// with |i-j| < w, where w is the bandwidth, can be non-zero. Set keeps the
// matrix symmetric, so At(i, j) == At(j, i) always holds.
type BandMatrix struct {
	n, w   int
	layout Layout
	stride int
	data   []float64
}

// NewBandMatrix creates a new n×n symmetric band matrix with bandwidth w
// stored in the given layout. All elements are zero. NewBandMatrix panics
// with ErrZeroLength if n is not positive and with ErrBandwidth if w is
// not in [1, n].
func NewBandMatrix(n, w int, layout Layout) *BandMatrix {
	if n <= 0 {
		panic(ErrZeroLength)
	}
	if w <= 0 || n < w {
		panic(ErrBandwidth)
	}
	stride := w
	switch layout {
	case HalfBand:
	case FullBand:
		stride = 2*w - 1
	default:
		panic("bandcg: unknown layout")
	}
	return &BandMatrix{
		n:      n,
		w:      w,
		layout: layout,
		stride: stride,
		data:   make([]float64, n*stride),
	}
}

// Dims returns the number of rows and columns of the matrix.
func (m *BandMatrix) Dims() (r, c int) {
	return m.n, m.n
}

// Bandwidth returns the bandwidth w of the matrix.
func (m *BandMatrix) Bandwidth() int {
	return m.w
}

// Layout returns the storage layout of the matrix.
func (m *BandMatrix) Layout() Layout {
	return m.layout
}

// At returns the element at row i, column j. Elements outside the band are
// zero. At panics with ErrIndexOutOfRange if i or j is outside [0, n).
func (m *BandMatrix) At(i, j int) float64 {
	m.checkIndex(i, j)
	if m.layout == HalfBand && j < i {
		i, j = j, i
	}
	if k := j - i; k >= m.w || -k >= m.w {
		return 0
	}
	return m.data[m.index(i, j)]
}

// Set sets the elements at (i, j) and (j, i) to v. Writes outside the band
// are silently dropped since those elements are structurally zero. Set
// panics with ErrIndexOutOfRange if i or j is outside [0, n).
func (m *BandMatrix) Set(i, j int, v float64) {
	m.checkIndex(i, j)
	if k := j - i; k >= m.w || -k >= m.w {
		return
	}
	switch m.layout {
	case HalfBand:
		if j < i {
			i, j = j, i
		}
		m.data[m.index(i, j)] = v
	case FullBand:
		m.data[m.index(i, j)] = v
		m.data[m.index(j, i)] = v
	}
}

// index returns the position of the in-band element (i, j) in data. For the
// half-band layout i <= j must hold.
func (m *BandMatrix) index(i, j int) int {
	if m.layout == FullBand {
		return i*m.stride + m.w - 1 + j - i
	}
	return i*m.stride + j - i
}

func (m *BandMatrix) checkIndex(i, j int) {
	if uint(i) >= uint(m.n) || uint(j) >= uint(m.n) {
		panic(ErrIndexOutOfRange)
	}
}

// mulVec computes dst = A*x with the level 2 BLAS routine matching the
// layout. The half-band layout is the row-major upper symmetric band storage
// of Sbmv and the full-band layout is the row-major general band storage of
// Gbmv with kl = ku = w-1.
func (m *BandMatrix) mulVec(dst, x []float64) {
	xv := blas64.Vector{N: m.n, Inc: 1, Data: x}
	yv := blas64.Vector{N: m.n, Inc: 1, Data: dst}
	switch m.layout {
	case HalfBand:
		blas64.Sbmv(1, blas64.SymmetricBand{
			Uplo:   blas.Upper,
			N:      m.n,
			K:      m.w - 1,
			Stride: m.stride,
			Data:   m.data,
		}, xv, 0, yv)
	case FullBand:
		blas64.Gbmv(blas.NoTrans, 1, blas64.Band{
			Rows:   m.n,
			Cols:   m.n,
			KL:     m.w - 1,
			KU:     m.w - 1,
			Stride: m.stride,
			Data:   m.data,
		}, xv, 0, yv)
	}
}

// rowDot returns the dot product of row i of the matrix with x. The window
// of 2w-1 columns centred on the diagonal is scanned in order and columns
// outside [0, n) are skipped.
func (m *BandMatrix) rowDot(i int, x []float64) float64 {
	var sum float64
	switch m.layout {
	case FullBand:
		row := m.data[i*m.stride : (i+1)*m.stride]
		for k, a := range row {
			j := i - m.w + 1 + k
			if j < 0 || j >= m.n {
				continue
			}
			sum += a * x[j]
		}
	case HalfBand:
		for k := 1 - m.w; k < m.w; k++ {
			j := i + k
			if j < 0 || j >= m.n {
				continue
			}
			if k < 0 {
				sum += m.data[j*m.stride-k] * x[j]
			} else {
				sum += m.data[i*m.stride+k] * x[j]
			}
		}
	}
	return sum
}

// ToSymBandDense returns a copy of the matrix as a gonum symmetric band
// matrix with k = w-1 super-diagonals.
func (m *BandMatrix) ToSymBandDense() *mat.SymBandDense {
	sb := mat.NewSymBandDense(m.n, m.w-1, nil)
	for i := 0; i < m.n; i++ {
		for j := i; j < min(m.n, i+m.w); j++ {
			sb.SetSymBand(i, j, m.At(i, j))
		}
	}
	return sb
}

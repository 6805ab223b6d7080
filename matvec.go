// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bandcg

import (
	"runtime"

	"github.com/vladimir-ch/bandcg/forkjoin"
)

// Operator computes products of a fixed matrix with vectors.
type Operator interface {
	// MulVec computes dst = A*x. dst and x must have the dimension of A
	// and must not be the same vector.
	MulVec(dst, x *Vector)
}

// Strategy selects how the product of a BandMatrix with a Vector is
// executed. The strategies are Sequential, Parallel and Emulated. They
// compute the same product and differ only in execution.
type Strategy interface {
	// Operator returns an Operator computing products with a. The
	// returned Operator reads a on every product, except where the
	// strategy documents otherwise.
	Operator(a *BandMatrix) (Operator, error)

	strategy()
}

// Sequential computes the product on the calling goroutine with the gonum
// BLAS band routines, Sbmv for HalfBand and Gbmv for FullBand.
type Sequential struct{}

func (Sequential) strategy() {}

// Operator implements the Strategy interface.
func (Sequential) Operator(a *BandMatrix) (Operator, error) {
	return sequential{a: a}, nil
}

type sequential struct {
	a *BandMatrix
}

func (op sequential) MulVec(dst, x *Vector) {
	checkMulVec(op.a.n, dst, x)
	op.a.mulVec(dst.data, x.data)
}

// Parallel computes the product by recursively halving the row range.
// One half is forked to Pool while the other is computed by the calling
// goroutine, which then joins the forked half. Ranges shorter than
// rows/Processors are computed directly. Every task writes a disjoint range
// of rows of the destination, so no locking is needed.
type Parallel struct {
	// Pool runs the forked halves. If Pool is nil, the operator uses a
	// pool created by forkjoin.Default.
	Pool *forkjoin.Pool

	// Processors determines the leaf size of the recursion. If it is
	// zero, runtime.NumCPU() is used.
	Processors int
}

func (Parallel) strategy() {}

// Operator implements the Strategy interface.
func (s Parallel) Operator(a *BandMatrix) (Operator, error) {
	pool := s.Pool
	if pool == nil {
		pool = forkjoin.Default()
	}
	procs := s.Processors
	if procs <= 0 {
		procs = runtime.NumCPU()
	}
	return &parallel{
		a:    a,
		pool: pool,
		leaf: a.n / procs,
	}, nil
}

type parallel struct {
	a    *BandMatrix
	pool *forkjoin.Pool
	leaf int
}

func (op *parallel) MulVec(dst, x *Vector) {
	checkMulVec(op.a.n, dst, x)
	op.mulRange(dst.data, x.data, 0, op.a.n)
}

func (op *parallel) mulRange(dst, x []float64, lo, hi int) {
	if hi-lo < op.leaf || hi-lo < 2 {
		mulRows(op.a, dst, x, lo, hi)
		return
	}
	mid := (lo + hi) / 2
	op.pool.Invoke(
		func() { op.mulRange(dst, x, lo, mid) },
		func() { op.mulRange(dst, x, mid, hi) },
	)
}

func mulRows(a *BandMatrix, dst, x []float64, lo, hi int) {
	for i := lo; i < hi; i++ {
		dst[i] = a.rowDot(i, x)
	}
}

func checkMulVec(n int, dst, x *Vector) {
	if dst.Len() != n || x.Len() != n {
		panic(ErrShape)
	}
	if dst == x {
		panic(ErrAliased)
	}
}

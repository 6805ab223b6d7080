// Copyright ©2016 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bandcg solves large symmetric positive-definite linear systems
// whose matrix has a narrow band, using the Conjugate Gradient method.
//
// The matrix is kept in compact band storage (BandMatrix) and the
// matrix-vector product, the dominant cost of CG, is computed by one of
// three strategies: Sequential, Parallel (fork/join over row ranges) and
// Emulated (a simulated accelerator using packed decimal arithmetic from
// package packed instead of float64).
package bandcg

// Operation specifies the type of operation.
type Operation uint64

// Operations commanded by Method.Iterate.
const (
	NoOperation Operation = 0

	// Multiply A*x where x is stored
	// in Context.Src and the result will
	// be stored in Context.Dst.
	MatVec Operation = 1 << (iota - 1)

	// Compute b - A*x where x is stored
	// in Context.X and store the result
	// into Context.Residual.
	ComputeResidual

	// Check convergence using the
	// current approximation in Context.X
	// and the squared residual norm in
	// Context.ResidualNormSq.
	// If convergence is detected,
	// Context.Converged must be set to
	// true before calling Method.Iterate
	// again.
	CheckResidualNorm

	// EndIteration indicates that Method
	// has finished what it considers to
	// be one iteration. It can be used
	// to update an iteration counter. If
	// Context.Converged is true, the
	// iterative process must be
	// terminated, and Method.Init must
	// be called before calling
	// Method.Iterate again.
	EndIteration
)

func (op Operation) String() string {
	switch op {
	case NoOperation:
		return "NoOperation"
	case MatVec:
		return "MatVec"
	case ComputeResidual:
		return "ComputeResidual"
	case CheckResidualNorm:
		return "CheckResidualNorm"
	case EndIteration:
		return "EndIteration"
	}
	return "Operation(?)"
}

// Method is an iterative method that produces a sequence of vectors converging
// to the vector x satisfying a system of linear equations
//  A x = b,
// where A is a symmetric positive-definite dim×dim matrix, and x and b are
// vectors of dimension dim.
//
// Method uses a reverse-communication interface between the iterative algorithm
// and the caller. Method acts as a client that commands the caller to perform
// needed operations via Operation returned from Iterate methods. This provides
// independence of Method on the strategy used for the products with A, and
// enables automation of common operations like checking for convergence and
// maintaining statistics.
type Method interface {
	// Init initializes the method for solving a dim×dim linear system.
	Init(dim int)

	// Iterate retrieves data from Context, updates it, and returns the next
	// operation. The caller must perform the Operation using data in
	// Context, and depending on the state call Iterate again.
	Iterate(*Context) (Operation, error)
}

// Context mediates the communication between a Method and the caller. It must
// not be modified or accessed apart from the commanded Operations.
type Context struct {
	// X is the current approximate solution. On the first call to
	// Method.Iterate, X must contain the initial estimate. Method must
	// update X with the current estimate when it commands ComputeResidual
	// and EndIteration.
	X *Vector
	// Residual is the current residual b-A*x. On the first call to
	// Method.Iterate, Residual must contain the initial residual.
	Residual *Vector
	// ResidualNormSq is the squared Euclidean norm r·r of the current
	// residual. Method must update it when it commands CheckResidualNorm.
	ResidualNormSq float64
	// Converged indicates to Method that the ResidualNormSq satisfies the
	// stopping criterion as a result of CheckResidualNorm operation.
	// If a Method commands EndIteration with Converged true, the caller
	// must not call Method.Iterate again without calling Method.Init first.
	Converged bool

	// Src and Dst are the source and destination vectors for various
	// Operations.
	Src, Dst *Vector
}

// State is the state of an iterative solve.
type State int

const (
	// Initializing is the state before the first iteration.
	Initializing State = iota
	// Iterating is the state while the method runs.
	Iterating
	// Converged means that the squared residual norm fell below the
	// tolerance.
	Converged
	// MaxIterationsReached means that the iteration limit was reached
	// before convergence. The solution is the last iterate.
	MaxIterationsReached
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "Initializing"
	case Iterating:
		return "Iterating"
	case Converged:
		return "Converged"
	case MaxIterationsReached:
		return "MaxIterationsReached"
	}
	return "State(?)"
}

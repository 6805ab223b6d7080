// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bandcg

import (
	"math"
	"time"
)

const (
	// DefaultTolerance is the default threshold on r·r.
	DefaultTolerance = 1e-10
	// DefaultMaxIterations is the default limit on the number of
	// iterations.
	DefaultMaxIterations = 100000
)

// Settings holds various settings for
// solving a linear system.
type Settings struct {
	// X0 is an initial guess.
	// If it is nil, the zero vector will
	// be used.
	// If it is not nil, the length of X0
	// must be equal to the dimension of
	// the system.
	X0 *Vector

	// Tolerance is the threshold on the
	// squared residual norm: the solve
	// stops when
	//  r_i·r_i < Tolerance.
	// It must be positive. If it is
	// zero, DefaultTolerance is used.
	Tolerance float64

	// MaxIterations is the limit on the
	// number of iterations.
	// If it is zero, DefaultMaxIterations
	// is used.
	MaxIterations int

	// Recorder, if not nil, is called
	// at the end of every iteration.
	Recorder Recorder
}

func defaultSettings(s *Settings) {
	if s.Tolerance == 0 {
		s.Tolerance = DefaultTolerance
	}
	if s.MaxIterations == 0 {
		s.MaxIterations = DefaultMaxIterations
	}
}

// Result holds the result of an iterative solve.
type Result struct {
	// X is the approximate solution.
	X *Vector
	// State is Converged or
	// MaxIterationsReached.
	State State
	// Stats holds the statistics of the
	// solve.
	Stats Stats
}

// Stats holds statistics about an iterative solve.
type Stats struct {
	// Iterations is the number of
	// iteration done by Method.
	Iterations int
	// MatVec is the number of MatVec
	// operations commanded by a Method,
	// including those for the residual.
	MatVec int
	// ResidualNormSq is the final
	// squared norm of the residual.
	ResidualNormSq float64
	// StartTime is an approximate time
	// when the solve was started.
	StartTime time.Time
	// Runtime is an approximate duration
	// of the solve.
	Runtime time.Duration
}

// Solve solves the banded system
//  A*x = b
// with the Conjugate Gradient method, computing the products with A by
// the given strategy. The dimension of b must match A.
//
// If the initial residual already satisfies r·r < Tolerance, no iteration
// is run and the initial guess is returned as Converged. In particular a zero
// b with the default initial guess yields x = 0 instead of the 0/0 of a first
// CG step.
//
// Reaching the iteration limit is not an error: the returned Result holds
// the last iterate and its State is MaxIterationsReached. If p·Ap vanishes
// during the iteration, NaN and Inf values propagate into the solution;
// they are not intercepted.
func Solve(a *BandMatrix, b *Vector, strategy Strategy, settings Settings) (Result, error) {
	if n, _ := a.Dims(); b.Len() != n {
		panic(ErrShape)
	}
	op, err := strategy.Operator(a)
	if err != nil {
		return Result{}, err
	}
	return LinearSolve(op, b, &CG{}, settings)
}

// LinearSolve solves the system of n linear equations
//  A*x = b,
// where the n×n matrix A is represented by the operator a.
// The dimension of the problem n is determined by the length of b.
//
// method is an iterative method used for finding an approximate solution of the
// linear system. It must not be nil.
//
// settings provide means for adjusting the iterative process. Zero values of
// the fields mean default values. The initial residual is checked against
// the tolerance before method is initialized.
func LinearSolve(a Operator, b *Vector, method Method, settings Settings) (Result, error) {
	stats := Stats{StartTime: time.Now()}

	dim := b.Len()
	if a == nil {
		panic("bandcg: nil operator")
	}
	if settings.X0 != nil && settings.X0.Len() != dim {
		panic("bandcg: mismatched length of initial guess")
	}

	defaultSettings(&settings)
	if !(settings.Tolerance > 0) || math.IsInf(settings.Tolerance, 1) {
		panic("bandcg: invalid tolerance")
	}
	if settings.MaxIterations < 0 {
		panic("bandcg: negative iteration limit")
	}

	ctx := &Context{
		X:        NewVector(dim, nil),
		Residual: NewVector(dim, nil),
	}
	if settings.X0 != nil {
		ctx.X.CopyVec(settings.X0)
		a.MulVec(ctx.Residual, ctx.X)
		stats.MatVec++
		ctx.Residual.SubVec(b, ctx.Residual) // r = b - Ax
	} else {
		ctx.Residual.CopyVec(b) // r = b
	}
	ctx.ResidualNormSq = Dot(ctx.Residual, ctx.Residual)

	if settings.Recorder != nil {
		if err := settings.Recorder.Init(); err != nil {
			return Result{X: ctx.X, State: Initializing, Stats: stats}, err
		}
	}

	state := Converged
	var err error
	if !(ctx.ResidualNormSq < settings.Tolerance) {
		state, err = iterate(a, b, ctx, settings, method, &stats)
	}

	stats.ResidualNormSq = ctx.ResidualNormSq
	stats.Runtime = time.Since(stats.StartTime)
	return Result{
		X:     ctx.X,
		State: state,
		Stats: stats,
	}, err
}

func iterate(a Operator, b *Vector, ctx *Context, settings Settings, method Method, stats *Stats) (State, error) {
	method.Init(ctx.X.Len())

	for {
		op, err := method.Iterate(ctx)
		if err != nil {
			return Iterating, err
		}

		switch op {
		case NoOperation:

		case ComputeResidual:
			a.MulVec(ctx.Residual, ctx.X)
			stats.MatVec++
			ctx.Residual.SubVec(b, ctx.Residual)

		case MatVec:
			a.MulVec(ctx.Dst, ctx.Src)
			stats.MatVec++

		case CheckResidualNorm:
			ctx.Converged = ctx.ResidualNormSq < settings.Tolerance

		case EndIteration:
			stats.Iterations++
			stats.ResidualNormSq = ctx.ResidualNormSq
			if settings.Recorder != nil {
				stats.Runtime = time.Since(stats.StartTime)
				if err := settings.Recorder.Record(*stats); err != nil {
					return Iterating, err
				}
			}
			if ctx.Converged {
				return Converged, nil
			}
			if stats.Iterations == settings.MaxIterations {
				return MaxIterationsReached, nil
			}

		default:
			panic("iterate: invalid operation")
		}
	}
}

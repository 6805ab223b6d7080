// Copyright ©2016 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bandcg

// CG implements the Conjugate Gradient iterative method for solving the
// system of linear equations
//  Ax = b,
// where A is a symmetric positive-definite matrix.
//
// The recurrence is the classical unpreconditioned one. A zero p·Ap is not
// guarded against and turns the iterates into NaN or Inf.
//
// CG needs the MatVec matrix operation.
type CG struct {
	first  bool
	resume int

	rsold, rsnew float64

	p, ap *Vector
}

// Init implements the Method interface.
func (cg *CG) Init(dim int) {
	if dim <= 0 {
		panic("bandcg: dimension not positive")
	}

	cg.p = reuse(cg.p, dim)
	cg.ap = reuse(cg.ap, dim)
	cg.first = true
	cg.resume = 1
}

// Iterate implements the Method interface.
func (cg *CG) Iterate(ctx *Context) (Operation, error) {
	r := ctx.Residual
	switch cg.resume {
	case 1:
		if cg.first {
			cg.p.CopyVec(r)      // p_0 = r_0
			cg.rsold = Dot(r, r) // rsold = r_0 · r_0
		}
		ctx.Src = cg.p
		ctx.Dst = cg.ap
		cg.resume = 2
		return MatVec, nil
		// Compute Ap_i
	case 2:
		alpha := cg.rsold / Dot(cg.p, cg.ap) // α = rsold / (p_i · Ap_i)
		ctx.X.AddScaledVec(ctx.X, alpha, cg.p) // x_{i+1} = x_i + α p_i
		r.AddScaledVec(r, -alpha, cg.ap)       // r_{i+1} = r_i - α Ap_i
		cg.rsnew = Dot(r, r)

		ctx.ResidualNormSq = cg.rsnew
		ctx.Src = nil
		ctx.Dst = nil
		ctx.Converged = false
		cg.resume = 3
		return CheckResidualNorm, nil
	case 3:
		if ctx.Converged {
			cg.resume = 0 // Calling Iterate again without Init will panic.
			return EndIteration, nil
		}
		beta := cg.rsnew / cg.rsold // β = rsnew / rsold
		cg.p.AddScaledVec(r, beta, cg.p) // p_{i+1} = r_{i+1} + β p_i
		cg.rsold = cg.rsnew
		cg.first = false
		cg.resume = 1
		return EndIteration, nil

	default:
		panic("bandcg: CG.Init not called")
	}
}

func reuse(v *Vector, n int) *Vector {
	if v == nil || v.Len() != n {
		return NewVector(n, nil)
	}
	return v
}

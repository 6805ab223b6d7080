// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bandcg

import (
	"fmt"

	"github.com/vladimir-ch/bandcg/forkjoin"
	"github.com/vladimir-ch/bandcg/internal/device"
	"github.com/vladimir-ch/bandcg/packed"
)

// Emulated computes the product on a simulated accelerator that has no
// native double precision. All operands and results on the device are
// packed decimal values, and every multiplication and addition of the
// kernel uses packed arithmetic, so results carry about 16 significant
// decimal digits.
//
// The operator returned by Operator copies the matrix to device memory once.
// Changes made to the matrix afterwards are not seen by the operator. Each
// call to MulVec then packs x, transfers it to the device, runs one kernel
// work-item per row and transfers the packed result back before unpacking
// it into dst.
type Emulated struct {
	// Pool runs the kernel work-items. If Pool is nil, they are run one
	// after another on the calling goroutine.
	Pool *forkjoin.Pool
}

func (Emulated) strategy() {}

// Operator implements the Strategy interface. It returns an error wrapping
// ErrNotRepresentable if an element of a is outside the packed range.
func (s Emulated) Operator(a *BandMatrix) (Operator, error) {
	n, w := a.n, a.w
	dev := device.New(s.Pool)
	op := &emulated{
		dev:    dev,
		n:      n,
		w:      w,
		stride: 2*w - 1,
		matrix: dev.Alloc(n * (2*w - 1)),
		x:      dev.Alloc(n),
		y:      dev.Alloc(n),
	}
	for i := 0; i < n; i++ {
		for k := 0; k < op.stride; k++ {
			j := i - w + 1 + k
			if j < 0 || j >= n {
				continue
			}
			v := a.At(i, j)
			p := packed.Pack(v)
			if p == packed.Invalid {
				return nil, fmt.Errorf("%w: element (%d, %d) is %v", ErrNotRepresentable, i, j, v)
			}
			op.matrix.Host[i*op.stride+k] = p
		}
	}
	op.matrix.Put()
	op.xp = NewPackedVector(n, op.x.Host)
	op.yp = NewPackedVector(n, op.y.Host)
	return op, nil
}

type emulated struct {
	dev *device.Device

	n, w, stride int

	// matrix holds the packed full-band rows of the matrix.
	matrix *device.Buffer
	x, y   *device.Buffer

	// xp and yp share the host copies of x and y.
	xp, yp *PackedVector
}

func (op *emulated) MulVec(dst, x *Vector) {
	checkMulVec(op.n, dst, x)
	op.xp.PackVec(x)
	op.x.Put()
	op.dev.Dispatch(op.n, op, op.matrix, op.x, op.y)
	op.y.Get()
	dst.UnpackVec(op.yp)
}

// Run computes row gid of the product. It implements device.Kernel and
// reads only device memory: args holds the matrix, x and y buffers.
func (op *emulated) Run(gid int, args [][]int64) {
	a, x, y := args[0], args[1], args[2]
	row := a[gid*op.stride : (gid+1)*op.stride]
	var sum int64
	for k, aij := range row {
		j := gid - op.w + 1 + k
		if j < 0 || j >= op.n {
			continue
		}
		sum = packed.Add(sum, packed.Mul(aij, x[j]))
	}
	y[gid] = sum
}

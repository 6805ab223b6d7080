// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package device simulates an accelerator with its own memory and without
// native double precision. Data lives in packed int64 buffers that have a
// host copy and a device copy; kernels see only the device copies, so the
// host must Put its data before a dispatch and Get the results after it.
package device

import (
	"fmt"
	"sync/atomic"

	"github.com/vladimir-ch/bandcg/forkjoin"
)

// Kernel is a data-parallel program run once for every global id of a
// dispatch. The args are the device copies of the dispatched buffers, in
// the order they were passed to Dispatch.
type Kernel interface {
	Run(gid int, args [][]int64)
}

// KernelFunc adapts an ordinary function to the Kernel interface.
type KernelFunc func(gid int, args [][]int64)

// Run calls f(gid, args).
func (f KernelFunc) Run(gid int, args [][]int64) { f(gid, args) }

// Device executes kernels. Work-items are run sequentially, or on a pool
// when the device was created with one.
type Device struct {
	pool *forkjoin.Pool

	puts, gets atomic.Int64
}

// New returns a new device. If pool is nil, work-items of a dispatch run
// one after another on the calling goroutine.
func New(pool *forkjoin.Pool) *Device {
	return &Device{pool: pool}
}

// Buffer is a packed array with a host copy and a device copy.
type Buffer struct {
	// Host is the host copy. Writes to it are not visible to kernels
	// until Put is called.
	Host []int64

	dev []int64
	d   *Device
}

// Alloc returns a zeroed buffer of length n.
func (d *Device) Alloc(n int) *Buffer {
	if n < 0 {
		panic(fmt.Sprintf("device: negative buffer length %d", n))
	}
	return &Buffer{
		Host: make([]int64, n),
		dev:  make([]int64, n),
		d:    d,
	}
}

// Len returns the length of the buffer.
func (b *Buffer) Len() int { return len(b.Host) }

// Put copies the host copy to the device.
func (b *Buffer) Put() {
	copy(b.dev, b.Host)
	b.d.puts.Add(1)
}

// Get copies the device copy to the host.
func (b *Buffer) Get() {
	copy(b.Host, b.dev)
	b.d.gets.Add(1)
}

// Transfers returns the number of Put and Get calls on buffers of d.
func (d *Device) Transfers() (puts, gets int) {
	return int(d.puts.Load()), int(d.gets.Load())
}

// Dispatch runs k for every global id in [0, n) and returns when all
// work-items have finished. Buffers must have been allocated on d.
func (d *Device) Dispatch(n int, k Kernel, bufs ...*Buffer) {
	args := make([][]int64, len(bufs))
	for i, b := range bufs {
		if b.d != d {
			panic("device: buffer allocated on another device")
		}
		args[i] = b.dev
	}
	if d.pool == nil {
		run(k, 0, n, args)
		return
	}
	grain := n / d.pool.Size()
	if grain < 1 {
		grain = 1
	}
	d.split(k, 0, n, grain, args)
}

func (d *Device) split(k Kernel, lo, hi, grain int, args [][]int64) {
	if hi-lo <= grain {
		run(k, lo, hi, args)
		return
	}
	mid := lo + (hi-lo)/2
	d.pool.Invoke(
		func() { d.split(k, lo, mid, grain, args) },
		func() { d.split(k, mid, hi, grain, args) },
	)
}

func run(k Kernel, lo, hi int, args [][]int64) {
	for gid := lo; gid < hi; gid++ {
		k.Run(gid, args)
	}
}

// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package forkjoin provides a bounded executor for recursive fork/join
// computations.
//
// A Pool runs forked tasks on at most Size extra goroutines. When all of them
// are busy, Fork runs the task on the calling goroutine instead, so a task
// that forks and then joins can never wait for a slot held by its own parent.
package forkjoin

import (
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Pool is a bounded fork/join executor. It is safe for concurrent use.
type Pool struct {
	size int64
	sem  *semaphore.Weighted

	mu     sync.Mutex
	closed bool
}

// New returns a Pool that runs forked tasks on at most size goroutines.
// New panics if size is not positive.
func New(size int) *Pool {
	if size <= 0 {
		panic(fmt.Sprintf("forkjoin: non-positive pool size %d", size))
	}
	return &Pool{
		size: int64(size),
		sem:  semaphore.NewWeighted(int64(size)),
	}
}

// Default returns a new Pool sized to twice the number of logical CPUs.
func Default() *Pool {
	return New(2 * runtime.NumCPU())
}

// Size returns the maximum number of tasks that run concurrently on the
// pool's goroutines.
func (p *Pool) Size() int {
	return int(p.size)
}

// Fork starts task and returns a function that waits for it to finish.
// The returned join function must be called exactly once. If task panics,
// join panics with the same value on the joining goroutine.
//
// The task runs on a new goroutine if the pool has a free slot and on the
// calling goroutine otherwise, in which case Fork returns after the task has
// completed. Tasks forked after Close always run on the calling goroutine.
func (p *Pool) Fork(task func()) (join func()) {
	if p.isClosed() || !p.sem.TryAcquire(1) {
		task()
		return func() {}
	}
	var (
		done      = make(chan struct{})
		recovered any
	)
	go func() {
		defer close(done)
		defer p.sem.Release(1)
		defer func() {
			recovered = recover()
		}()
		task()
	}()
	return func() {
		<-done
		if recovered != nil {
			panic(recovered)
		}
	}
}

// Invoke runs left on the pool and right on the calling goroutine, and
// returns when both have finished.
func (p *Pool) Invoke(left, right func()) {
	join := p.Fork(left)
	right()
	join()
}

// Close stops the pool from starting new goroutines. Tasks already running
// are not affected.
func (p *Pool) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
}

func (p *Pool) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

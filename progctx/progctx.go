// Copyright (c) 2026, The OTNS Authors.
// All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are met:
// 1. Redistributions of source code must retain the above copyright
//    notice, this list of conditions and the following disclaimer.
// 2. Redistributions in binary form must reproduce the above copyright
//    notice, this list of conditions and the following disclaimer in the
//    documentation and/or other materials provided with the distribution.
// 3. Neither the name of the copyright holder nor the
//    names of its contributors may be used to endorse or promote products
//    derived from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
// AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
// IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE
// ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE
// LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR
// CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF
// SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN
// CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE)
// ARISING IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE
// POSSIBILITY OF SUCH DAMAGE.

// Package progctx manages the lifetime of the rfconv process: the goroutines it runs and the
// cleanup that must happen when it exits.
package progctx

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/simonlingoogle/go-simplelogger"
)

// ProgCtx is the context of the program during its lifetime.
type ProgCtx struct {
	context.Context
	wg       sync.WaitGroup
	cancel   context.CancelFunc
	lock     sync.Mutex
	routines map[string]int
	deferred []func()
	cause    interface{}
	once     sync.Once
}

// New creates a new ProgCtx from the parent context.
func New(parent context.Context) *ProgCtx {
	if parent == nil {
		parent = context.Background()
	}

	ctx, cancel := context.WithCancel(parent)
	return &ProgCtx{
		Context:  ctx,
		cancel:   cancel,
		routines: map[string]int{},
	}
}

// Cancel ends the program with the given reason, which may be an error, a signal or nil.
// Only the first call has an effect. Deferred functions run in reverse order of registration.
func (ctx *ProgCtx) Cancel(reason interface{}) {
	ctx.once.Do(func() {
		ctx.lock.Lock()
		ctx.cause = reason
		deferred := ctx.deferred
		ctx.deferred = nil
		ctx.lock.Unlock()

		ctx.cancel()

		if e, ok := reason.(error); ok {
			simplelogger.Errorf("rfconv exit: %v", e)
		} else {
			simplelogger.Infof("rfconv exit: %v", reason)
		}

		for i := len(deferred) - 1; i >= 0; i-- {
			deferred[i]()
		}
	})
}

// Cause returns the reason given to Cancel, or nil.
func (ctx *ProgCtx) Cause() interface{} {
	ctx.lock.Lock()
	defer ctx.lock.Unlock()
	return ctx.cause
}

// Defer registers f to be called when the context is cancelled.
func (ctx *ProgCtx) Defer(f func()) {
	if ctx.Err() != nil {
		panic(errors.Errorf("can not Defer after context is done"))
	}

	ctx.lock.Lock()
	ctx.deferred = append(ctx.deferred, f)
	ctx.lock.Unlock()
}

// Go runs f in a new goroutine tracked under name.
func (ctx *ProgCtx) Go(name string, f func()) {
	ctx.WaitAdd(name, 1)
	go func() {
		defer ctx.WaitDone(name)
		f()
	}()
}

// WaitAdd adds delta goroutines to wait for under name.
func (ctx *ProgCtx) WaitAdd(name string, delta int) {
	ctx.lock.Lock()
	ctx.routines[name] += delta
	ctx.lock.Unlock()

	ctx.wg.Add(delta)
}

// WaitDone notifies that a goroutine under name has finished.
func (ctx *ProgCtx) WaitDone(name string) {
	ctx.lock.Lock()
	defer ctx.lock.Unlock()

	if ctx.routines[name] <= 0 {
		simplelogger.Panicf("routine %s is not running, should not call WaitDone", name)
	}
	ctx.routines[name] -= 1
	ctx.wg.Done()
}

// WaitCount returns the number of goroutines still running.
func (ctx *ProgCtx) WaitCount() int {
	ctx.lock.Lock()
	defer ctx.lock.Unlock()

	total := 0
	for _, c := range ctx.routines {
		total += c
	}
	return total
}

// Wait waits for all goroutines to finish.
func (ctx *ProgCtx) Wait() {
	ctx.lock.Lock()
	simplelogger.Debugf("waiting for routines: %v", ctx.routines)
	ctx.lock.Unlock()

	ctx.wg.Wait()
}

// WaitTimeout waits at most d for all goroutines to finish and returns false on timeout.
func (ctx *ProgCtx) WaitTimeout(d time.Duration) bool {
	done := make(chan struct{})
	go func() {
		ctx.Wait()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-time.After(d):
		simplelogger.Warnf("%d routines still running after %v", ctx.WaitCount(), d)
		return false
	}
}

// SPDX-FileCopyrightText: © 2026 scriptbridge authors
// SPDX-License-Identifier: BSD-2-Clause

package script

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/dop251/goja"

	"github.com/gazed/scriptbridge/eid"
)

// FaultSink decouples the worker from any one logging implementation
// (§9's "interface for fault sink consumed by the worker, decoupling
// logging"). logx.Logger satisfies it.
type FaultSink interface {
	ScriptException(phase, message, file string, line, column int, sourceLine, stack string)
}

// FrameContext decouples the worker from any one way of driving a script
// frame (§9's "interface for script frame context consumed by the worker,
// decoupling the game module from the worker"). It calls the script's
// update(deltaTime) then render() entry points and reports any exception.
type FrameContext interface {
	RunFrame(vm *goja.Runtime, deltaTime float64, report func(phase string, err error))
}

// Stats reports the worker's frame and fault counters for diagnostics,
// mirroring JSGameLogicJob's GetTotalFrames plus an exception counter the
// original tracks for a debug overlay this module has no UI for.
type Stats struct {
	TotalFrames    uint64
	ExceptionCount uint64
}

// Worker drives one logical script frame per render-thread wake, isolated
// on its own goroutine (§4.1). Its four operations are all safe to call
// from the render thread: TriggerNextFrame, IsFrameComplete,
// RequestShutdown, IsShutdownComplete.
type Worker struct {
	vm          *goja.Runtime
	runtimeLock sync.Mutex

	frame    FrameContext
	faults   FaultSink
	clock    func() time.Time
	entityCB *CallbackBroker
	cameraCB *CallbackBroker

	mu                sync.Mutex
	frameStartCV      *sync.Cond
	frameRequested    bool
	shutdownRequested bool

	frameComplete    atomic.Bool
	shutdownComplete atomic.Bool

	totalFrames    atomic.Uint64
	exceptionCount atomic.Uint64

	lastFrameAt time.Time
}

// NewWorker builds a worker around vm, driven by frame and reporting
// exceptions to faults. The caller is expected to call Register (or
// equivalent) on vm before Run starts.
func NewWorker(vm *goja.Runtime, frame FrameContext, faults FaultSink, entityCB, cameraCB *CallbackBroker) *Worker {
	w := &Worker{
		vm:       vm,
		frame:    frame,
		faults:   faults,
		clock:    time.Now,
		entityCB: entityCB,
		cameraCB: cameraCB,
	}
	w.frameStartCV = sync.NewCond(&w.mu)
	w.frameComplete.Store(true) // vacuously complete: nothing has run yet, so the first trigger is due immediately
	return w
}

// Run is the worker goroutine's entry point. It loops until shutdown is
// requested, mirroring JSGameLogicJob::Execute's structure exactly:
// acquire the isolation token for the duration of each frame, wait for a
// trigger, run one script frame outside the condition-variable mutex,
// signal completion, repeat.
func (w *Worker) Run() {
	w.lastFrameAt = w.clock()
	for {
		w.mu.Lock()
		for !w.frameRequested && !w.shutdownRequested {
			w.frameStartCV.Wait()
		}
		if w.shutdownRequested {
			w.mu.Unlock()
			break
		}
		w.frameRequested = false
		w.mu.Unlock()

		w.runScriptFrame()

		w.frameComplete.Store(true)
		w.totalFrames.Add(1)
	}

	// Pending callbacks at shutdown are discarded, and the runtime's
	// persistent function handles are released, before the runtime itself
	// is torn down by the caller (§5).
	w.entityCB.discardAll()
	w.cameraCB.discardAll()
	w.shutdownComplete.Store(true)
}

// runScriptFrame executes one update+render pair under the runtime's
// isolation token, draining ready completion tokens first so callbacks see
// a consistent world before update() runs (§4.1's script-frame paragraph).
func (w *Worker) runScriptFrame() {
	w.runtimeLock.Lock()
	defer w.runtimeLock.Unlock()

	now := w.clock()
	deltaTime := now.Sub(w.lastFrameAt).Seconds()
	w.lastFrameAt = now

	w.entityCB.drain(w.invoke)
	w.cameraCB.drain(w.invoke)

	w.frame.RunFrame(w.vm, deltaTime, w.reportException)
}

// invoke calls fn(resultID) under an exception guard (§4.6 (iv)), reporting
// any throw through the fault sink rather than propagating it: a broken
// callback must not stop the frame.
func (w *Worker) invoke(fn goja.Callable, resultID eid.ID) {
	defer func() {
		if r := recover(); r != nil {
			w.exceptionCount.Add(1)
		}
	}()
	if _, err := fn(goja.Undefined(), w.vm.ToValue(float64(resultID))); err != nil {
		w.reportException("callback", err)
	}
}

func (w *Worker) reportException(phase string, err error) {
	w.exceptionCount.Add(1)
	if exc, ok := err.(*goja.Exception); ok {
		w.faults.ScriptException(phase, exc.Error(), "", 0, 0, "", exc.String())
		return
	}
	w.faults.ScriptException(phase, err.Error(), "", 0, 0, "", "")
}

// TriggerNextFrame wakes the worker to run its next frame. Non-blocking;
// callable only once the previous frame has completed.
func (w *Worker) TriggerNextFrame() {
	w.mu.Lock()
	w.frameRequested = true
	w.frameComplete.Store(false)
	w.mu.Unlock()
	w.frameStartCV.Broadcast()
}

// IsFrameComplete reports whether the worker finished its current frame.
func (w *Worker) IsFrameComplete() bool { return w.frameComplete.Load() }

// RequestShutdown asks the worker to exit after its current frame.
func (w *Worker) RequestShutdown() {
	w.mu.Lock()
	w.shutdownRequested = true
	w.mu.Unlock()
	w.frameStartCV.Broadcast()
}

// IsShutdownComplete reports whether the worker goroutine has exited.
func (w *Worker) IsShutdownComplete() bool { return w.shutdownComplete.Load() }

// Stats snapshots the worker's frame and exception counters.
func (w *Worker) Stats() Stats {
	return Stats{TotalFrames: w.totalFrames.Load(), ExceptionCount: w.exceptionCount.Load()}
}

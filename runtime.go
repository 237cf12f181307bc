// SPDX-FileCopyrightText: © 2026 scriptbridge authors
// SPDX-License-Identifier: BSD-2-Clause

package bridge

import (
	"fmt"
	"time"

	"github.com/dop251/goja"
	"github.com/rs/zerolog"

	"github.com/gazed/scriptbridge/command"
	"github.com/gazed/scriptbridge/config"
	"github.com/gazed/scriptbridge/logx"
	"github.com/gazed/scriptbridge/queue"
	"github.com/gazed/scriptbridge/resource"
	"github.com/gazed/scriptbridge/script"
	"github.com/gazed/scriptbridge/snapshot"
)

// Runtime is the process-scoped singleton §9 calls for: the render thread,
// the worker thread, the script runtime isolate, and the two queues, with
// an explicit construct → startup → shutdown → destruct lifecycle invoked
// in that order and reversed on teardown.
type Runtime struct {
	cfg config.Config
	log *logx.Logger

	entities  *snapshot.EntitySnapshotStore
	cameras   *snapshot.CameraSnapshotStore
	resources *resource.Manager

	renderQueue *queue.Ring[command.RenderCommand]
	entityCB    *script.CallbackBroker
	cameraCB    *script.CallbackBroker

	entityFacade *script.EntityFacade
	cameraFacade *script.CameraFacade

	viewport  ViewportProvider
	presenter Presenter
	frame     script.FrameContext

	vm         *goja.Runtime
	worker     *script.Worker
	dispatcher *CommandDispatcher
	loop       *RenderLoop
}

// Option customizes a Runtime at Construct time.
type Option func(*Runtime)

// WithFrameContext overrides the default update()/render() FrameContext,
// mainly for tests that want to observe frames without a real script.
func WithFrameContext(f script.FrameContext) Option {
	return func(r *Runtime) { r.frame = f }
}

// WithLogger overrides the default stderr logger built from cfg.LogLevel.
func WithLogger(l *logx.Logger) Option {
	return func(r *Runtime) { r.log = l }
}

// Construct wires every component but starts nothing: no goroutine runs,
// no script runtime exists yet. viewport is queried by the dispatcher for
// "screen" cameras; presenter receives the front buffers once per frame
// and may be nil for tests that don't render anything.
func Construct(cfg config.Config, viewport ViewportProvider, presenter Presenter, opts ...Option) *Runtime {
	r := &Runtime{
		cfg:       cfg,
		viewport:  viewport,
		presenter: presenter,
		frame:     script.GameFrame{},
		entities:  snapshot.NewEntitySnapshotStore(),
		cameras:   snapshot.NewCameraSnapshotStore(),
		resources: resource.NewManager(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		level, err := zerolog.ParseLevel(cfg.LogLevel)
		if err != nil {
			level = zerolog.InfoLevel
		}
		r.log = logx.New(nil, level)
	}
	r.renderQueue = queue.NewRing[command.RenderCommand](cfg.RenderQueueCapacity)
	r.entityCB = script.NewCallbackBroker(cfg.CallbackQueueCapacity)
	r.cameraCB = script.NewCallbackBroker(cfg.CallbackQueueCapacity)
	r.entityFacade = script.NewEntityFacade(r.renderQueue, r.entities, r.entityCB, r.log)
	r.cameraFacade = script.NewCameraFacade(r.renderQueue, r.cameras, r.cameraCB, r.log)
	r.dispatcher = NewCommandDispatcher(r.entities, r.cameras, r.resources, r.viewport, r.entityCB, r.cameraCB, r.log)
	return r
}

// Startup creates the script runtime isolate, registers the script →
// native API onto it, and starts the worker goroutine. Call LoadScript
// afterward to install the game's update/render globals, then Frame
// repeatedly from the render thread.
func (r *Runtime) Startup() error {
	r.vm = goja.New()
	if err := script.Register(r.vm, r.entityFacade, r.cameraFacade); err != nil {
		return fmt.Errorf("bridge: register script api: %w", err)
	}
	r.worker = script.NewWorker(r.vm, r.frame, r.log, r.entityCB, r.cameraCB)
	r.loop = NewRenderLoop(r.cfg, r.dispatcher, r.renderQueue, r.entityCB, r.cameraCB, r.entities, r.cameras, r.worker, r.presenter, r.log)
	go r.worker.Run()
	return nil
}

// LoadScript evaluates source on the script runtime, installing whatever
// globals it defines (typically update(deltaTime) and render()). It must
// be called after Startup and before the first Frame.
func (r *Runtime) LoadScript(source string) error {
	_, err := r.vm.RunString(source)
	return err
}

// Frame executes one render-thread tick (§4.2). Callable only between
// Startup and Shutdown.
func (r *Runtime) Frame() { r.loop.Frame() }

// Stats reports the worker's frame and exception counters.
func (r *Runtime) Stats() script.Stats { return r.worker.Stats() }

// Shutdown asks the worker to stop, then polls for completion at the
// configured interval up to the configured ceiling (§5). On timeout it
// logs a warning and returns anyway: shutdown never blocks forever.
func (r *Runtime) Shutdown() {
	if r.worker == nil {
		return
	}
	r.worker.RequestShutdown()
	deadline := time.Now().Add(r.cfg.ShutdownCeiling)
	for !r.worker.IsShutdownComplete() {
		if time.Now().After(deadline) {
			r.log.WorkerHangTimeout(r.cfg.ShutdownCeiling)
			return
		}
		time.Sleep(r.cfg.ShutdownPollInterval)
	}
}

// Destruct releases the script runtime reference. Must be called after
// Shutdown has returned; no access to the runtime isolate is valid after
// this point (§8 scenario 6).
func (r *Runtime) Destruct() {
	r.vm = nil
}

// SPDX-FileCopyrightText: © 2026 scriptbridge authors
// SPDX-License-Identifier: BSD-2-Clause

// Package bridge is the root package: it owns the render thread's per-frame
// loop, the command dispatcher, and the construct/startup/shutdown/destruct
// lifecycle that ties the script package's worker to the snapshot and
// resource packages (§2, §9's "global state" design note).
package bridge

import (
	"github.com/gazed/scriptbridge/camera"
	"github.com/gazed/scriptbridge/command"
	"github.com/gazed/scriptbridge/config"
	"github.com/gazed/scriptbridge/logx"
	"github.com/gazed/scriptbridge/queue"
	"github.com/gazed/scriptbridge/script"
	"github.com/gazed/scriptbridge/snapshot"
)

// Presenter renders the current front buffers. It is given the entity
// store directly (Range is safe from any goroutine) and the currently
// active camera, or nil if none has been committed yet — the defined
// startup behaviour before the first SetActiveCamera (§4.5). Presenter is
// the render-side half of the cyclic-reference break §9 calls for: the
// loop depends on it, never the reverse.
type Presenter interface {
	Present(entities *snapshot.EntitySnapshotStore, active *camera.Camera)
}

// RenderLoop drives the render thread's 60 Hz frame (§4.2). It is not
// safe for concurrent use: exactly one goroutine, the render thread, calls
// Frame.
type RenderLoop struct {
	cfg        config.Config
	dispatcher *CommandDispatcher
	renderQueue *queue.Ring[command.RenderCommand]
	entityCB   *script.CallbackBroker
	cameraCB   *script.CallbackBroker
	entities   *snapshot.EntitySnapshotStore
	cameras    *snapshot.CameraSnapshotStore
	worker     *script.Worker
	presenter  Presenter
	log        *logx.Logger

	totalSkips       uint64
	consecutiveSkips int
	hungLogged       bool
}

// NewRenderLoop wires a loop over the given components. presenter may be
// nil, in which case Frame still swaps buffers and drains callbacks but
// renders nothing — useful for tests that only exercise the concurrency
// contract.
func NewRenderLoop(
	cfg config.Config,
	dispatcher *CommandDispatcher,
	renderQueue *queue.Ring[command.RenderCommand],
	entityCB, cameraCB *script.CallbackBroker,
	entities *snapshot.EntitySnapshotStore,
	cameras *snapshot.CameraSnapshotStore,
	worker *script.Worker,
	presenter Presenter,
	log *logx.Logger,
) *RenderLoop {
	return &RenderLoop{
		cfg:         cfg,
		dispatcher:  dispatcher,
		renderQueue: renderQueue,
		entityCB:    entityCB,
		cameraCB:    cameraCB,
		entities:    entities,
		cameras:     cameras,
		worker:      worker,
		presenter:   presenter,
		log:         log,
	}
}

// Frame executes one render-thread tick, strictly in the order §4.2
// names: drain command dispatch, swap-or-skip, drain pending completion
// tokens, present.
func (l *RenderLoop) Frame() {
	l.dispatcher.Drain(l.renderQueue)

	if l.worker.IsFrameComplete() {
		l.entities.Swap()
		l.cameras.Swap()
		l.consecutiveSkips = 0
		l.hungLogged = false
		l.worker.TriggerNextFrame()
	} else {
		l.totalSkips++
		l.consecutiveSkips++
		l.log.RenderSkip(l.totalSkips)
		if !l.hungLogged && l.cfg.HangFrames > 0 && l.consecutiveSkips >= l.cfg.HangFrames {
			l.log.Info("worker frame incomplete across hang threshold, continuing to present last snapshot")
			l.hungLogged = true
		}
	}

	l.entityCB.ExecutePendingCallbacks(nil)
	l.cameraCB.ExecutePendingCallbacks(nil)

	if l.presenter == nil {
		return
	}
	var active *camera.Camera
	if id := l.cameras.Active(); id != 0 {
		active, _ = l.cameras.LookupCamera(id)
	}
	l.presenter.Present(l.entities, active)
}

// TotalSkips reports how many presents have reused the front buffer
// because the worker had not completed its frame, for diagnostics.
func (l *RenderLoop) TotalSkips() uint64 { return l.totalSkips }

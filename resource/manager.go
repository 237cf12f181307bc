// SPDX-FileCopyrightText: © 2026 scriptbridge authors
// SPDX-License-Identifier: BSD-2-Clause

package resource

import "github.com/gazed/scriptbridge/eid"

// Manager owns three maps on the render thread (§4.7): EntityId → handle,
// handle → vertex data, and meshArchetype → handle. It is not safe for
// concurrent use — the render/command-dispatch thread is its sole owner,
// the same single-thread-ownership discipline the teacher engine applies
// to its GPU resource types.
type Manager struct {
	entityToHandle   map[eid.ID]int
	handleToVertices map[int][]Vertex
	archetypeToHandle map[string]int
	nextHandle       int
}

// NewManager returns an empty resource manager. Handle 0 is reserved to
// mean "no resource" (an unrecognized archetype).
func NewManager() *Manager {
	return &Manager{
		entityToHandle:    map[eid.ID]int{},
		handleToVertices:  map[int][]Vertex{},
		archetypeToHandle: map[string]int{},
		nextHandle:        1,
	}
}

// RegisterEntity creates (or reuses) the vertex buffer for archetype and
// binds id to its handle. Distinct entities sharing an archetype share a
// single handle — geometry is never duplicated. Returns 0 if archetype is
// not recognized, per the "unknown archetype" edge case in spec.md §7.
func (m *Manager) RegisterEntity(id eid.ID, archetype string, radius float64, color RGBA8) int {
	handle := m.handleFor(archetype, radius, color)
	if handle != 0 {
		m.entityToHandle[id] = handle
	}
	return handle
}

// UnregisterEntity removes only the EntityId → handle entry. Vertex data
// is retained for the lifetime of the process — it may still be shared by
// other live entities, or reused if the archetype is registered again.
func (m *Manager) UnregisterEntity(id eid.ID) {
	delete(m.entityToHandle, id)
}

// GetVerticesForEntity returns the vertex data bound to id, if any.
func (m *Manager) GetVerticesForEntity(id eid.ID) ([]Vertex, bool) {
	handle, ok := m.entityToHandle[id]
	if !ok {
		return nil, false
	}
	verts, ok := m.handleToVertices[handle]
	return verts, ok
}

// GetEntityCount returns the number of entities currently registered.
func (m *Manager) GetEntityCount() int { return len(m.entityToHandle) }

// GetMeshTypeCount returns the number of distinct archetypes with
// allocated geometry.
func (m *Manager) GetMeshTypeCount() int { return len(m.archetypeToHandle) }

// handleFor returns the existing handle for archetype, or procedurally
// generates its geometry and allocates a fresh handle.
func (m *Manager) handleFor(archetype string, radius float64, color RGBA8) int {
	if handle, ok := m.archetypeToHandle[archetype]; ok {
		return handle
	}
	verts := generate(archetype, radius, color)
	if len(verts) == 0 {
		return 0
	}
	handle := m.nextHandle
	m.nextHandle++
	m.handleToVertices[handle] = verts
	m.archetypeToHandle[archetype] = handle
	return handle
}

// SPDX-FileCopyrightText: © 2026 scriptbridge authors
// SPDX-License-Identifier: BSD-2-Clause

// Package eid allocates the opaque identifiers that cross the script/native
// boundary: entity, camera, and callback ids. See
// http://bitsquid.blogspot.ca/2014/08/building-data-oriented-entity-system.html
// for the data-oriented motivation behind keeping id allocation this small;
// unlike that scheme ids here are never reused, since the bridge tracks
// liveness through the snapshot store's active flag rather than an edition
// check.
package eid

// ID is an opaque 64-bit identifier. It crosses the script boundary as a
// float64, so callers must stay within MaxSafeInteger.
type ID uint64

// Invalid is the reserved zero id. A CompletionToken carrying Invalid as its
// resultId means the originating operation failed.
const Invalid ID = 0

// Domain starting offsets. Each domain's generator starts at its own
// offset. Next does not stop at the following domain's offset, so an id's
// origin (entity, camera, or light) is recoverable by inspection only while
// its domain has handed out fewer ids than the gap to the next offset.
const (
	EntityDomain   ID = 1
	CameraDomain   ID = 1000
	LightDomain    ID = 10000
	CallbackDomain ID = 100000
)

// MaxSafeInteger is the largest integer a float64 represents exactly. The
// script runtime has no integer type, so every id crossing the
// script/native boundary must stay at or below this value.
const MaxSafeInteger ID = 1<<53 - 1

// Generator hands out strictly increasing ids starting at its domain. It is
// not safe for concurrent use: id generators are worker-thread-exclusive.
type Generator struct {
	domain ID
	next   ID
}

// NewGenerator creates a generator that starts allocating at domain.
func NewGenerator(domain ID) *Generator {
	return &Generator{domain: domain, next: domain}
}

// Next returns the next id in the domain. Ids are never reused within a
// session, even across entity destruction.
func (g *Generator) Next() ID {
	id := g.next
	g.next++
	return id
}

// Reset puts the generator back to its initial, pre-allocation state.
// Intended for test isolation between sessions.
func (g *Generator) Reset() {
	g.next = g.domain
}

// Package scene defines the insertion capability the terrain pipeline needs
// from a renderer. The pipeline treats the scene graph as an injected
// dependency and never assumes anything beyond insert/remove semantics.
package scene

import "github.com/google/uuid"

// Handle identifies one inserted renderable so it can be removed later.
type Handle uuid.UUID

// NewHandle returns a fresh unique handle.
func NewHandle() Handle {
	return Handle(uuid.New())
}

func (h Handle) String() string {
	return uuid.UUID(h).String()
}

// Renderable is an opaque object the scene can display. The pipeline only
// produces these; interpretation belongs to the renderer.
type Renderable interface {
	Kind() string
}

// Scene is the injected scene-graph capability.
type Scene interface {
	Insert(r Renderable) Handle
	Remove(h Handle)
}

// Memory is an in-memory Scene for headless runs and tests. It records what
// is currently inserted, keyed by handle.
type Memory struct {
	objects map[Handle]Renderable
}

// NewMemory creates an empty in-memory scene.
func NewMemory() *Memory {
	return &Memory{objects: make(map[Handle]Renderable)}
}

func (m *Memory) Insert(r Renderable) Handle {
	h := NewHandle()
	m.objects[h] = r
	return h
}

func (m *Memory) Remove(h Handle) {
	delete(m.objects, h)
}

// Len returns the number of currently inserted renderables.
func (m *Memory) Len() int {
	return len(m.objects)
}

// Contains reports whether a handle is currently inserted.
func (m *Memory) Contains(h Handle) bool {
	_, ok := m.objects[h]
	return ok
}

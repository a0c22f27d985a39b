package scene

import "testing"

type marker string

func (m marker) Kind() string { return string(m) }

func TestMemoryInsertRemove(t *testing.T) {
	m := NewMemory()

	h1 := m.Insert(marker("a"))
	h2 := m.Insert(marker("b"))
	if h1 == h2 {
		t.Fatal("handles must be unique")
	}
	if m.Len() != 2 {
		t.Fatalf("Len = %d, want 2", m.Len())
	}
	if !m.Contains(h1) || !m.Contains(h2) {
		t.Fatal("inserted handles should be contained")
	}

	m.Remove(h1)
	if m.Contains(h1) {
		t.Error("removed handle should not be contained")
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d after remove, want 1", m.Len())
	}

	// Removing twice is a no-op.
	m.Remove(h1)
	if m.Len() != 1 {
		t.Errorf("Len = %d after double remove, want 1", m.Len())
	}
}

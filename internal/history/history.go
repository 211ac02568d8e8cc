// Package history keeps a linear undo list of full scene snapshots.
package history

import (
	"fmt"

	"github.com/example/designboard/internal/scene"
)

// Snapshotter is the state the manager records and restores.
type Snapshotter interface {
	Serialize() (scene.Snapshot, error)
	Restore(scene.Snapshot) error
}

// Manager holds snapshots and a cursor. The cursor always indexes a valid
// entry.
type Manager struct {
	target  Snapshotter
	entries []scene.Snapshot
	cursor  int
	limit   int
}

// Option configures a Manager.
type Option func(*Manager)

// WithLimit caps the number of retained entries. Zero means unbounded.
func WithLimit(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.limit = n
		}
	}
}

// New records the current state of target as entry 0.
func New(target Snapshotter, opts ...Option) (*Manager, error) {
	m := &Manager{target: target}
	for _, opt := range opts {
		opt(m)
	}
	snap, err := target.Serialize()
	if err != nil {
		return nil, fmt.Errorf("initial snapshot: %w", err)
	}
	m.entries = []scene.Snapshot{snap}
	return m, nil
}

// Commit snapshots the target, discards any redo entries and moves the
// cursor to the new tail.
func (m *Manager) Commit() error {
	snap, err := m.target.Serialize()
	if err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	m.entries = append(m.entries[:m.cursor+1], snap)
	m.cursor = len(m.entries) - 1
	if m.limit > 0 && len(m.entries) > m.limit {
		drop := len(m.entries) - m.limit
		m.entries = append([]scene.Snapshot(nil), m.entries[drop:]...)
		m.cursor -= drop
	}
	return nil
}

// Undo steps back one entry. It reports false at the start of history.
func (m *Manager) Undo() (bool, error) {
	if m.cursor == 0 {
		return false, nil
	}
	if err := m.target.Restore(m.entries[m.cursor-1]); err != nil {
		return false, fmt.Errorf("undo: %w", err)
	}
	m.cursor--
	return true, nil
}

// Redo steps forward one entry. It reports false at the tail.
func (m *Manager) Redo() (bool, error) {
	if m.cursor >= len(m.entries)-1 {
		return false, nil
	}
	if err := m.target.Restore(m.entries[m.cursor+1]); err != nil {
		return false, fmt.Errorf("redo: %w", err)
	}
	m.cursor++
	return true, nil
}

func (m *Manager) CanUndo() bool { return m.cursor > 0 }
func (m *Manager) CanRedo() bool { return m.cursor < len(m.entries)-1 }
func (m *Manager) Len() int      { return len(m.entries) }
func (m *Manager) Cursor() int   { return m.cursor }

// Entry returns the snapshot at index i.
func (m *Manager) Entry(i int) (scene.Snapshot, bool) {
	if i < 0 || i >= len(m.entries) {
		return nil, false
	}
	return m.entries[i], true
}

// Current returns the snapshot under the cursor.
func (m *Manager) Current() scene.Snapshot { return m.entries[m.cursor] }

// Package history keeps bounded undo snapshots of a grid.
//
// Each committed mutation stores a full copy of the grid as it was before
// the change. When the manager is full the oldest snapshot is dropped
// silently, so at most Capacity undos are ever available.
package history

import (
	"github.com/specialistvlad/gridcalc/internal/calcerr"
	"github.com/specialistvlad/gridcalc/internal/grid"
)

// DefaultCapacity is the number of undo steps kept when none is configured.
const DefaultCapacity = 20

// Manager is a bounded stack of grid snapshots.
type Manager struct {
	capacity  int
	snapshots []*grid.Grid
}

// NewManager creates a manager holding at most capacity snapshots. A
// non-positive capacity falls back to DefaultCapacity.
func NewManager(capacity int) *Manager {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Manager{
		capacity:  capacity,
		snapshots: make([]*grid.Grid, 0, capacity),
	}
}

// Commit records a snapshot of live and then applies mutate to it.
func (m *Manager) Commit(live *grid.Grid, mutate func(*grid.Grid)) {
	if len(m.snapshots) == m.capacity {
		m.snapshots[0] = nil
		m.snapshots = append(m.snapshots[:0], m.snapshots[1:]...)
	}
	m.snapshots = append(m.snapshots, live.Clone())
	mutate(live)
}

// Undo pops the most recent snapshot.
func (m *Manager) Undo() (*grid.Grid, error) {
	n := len(m.snapshots)
	if n == 0 {
		return nil, calcerr.New(calcerr.UndoUnavailable, "nothing to undo")
	}
	snapshot := m.snapshots[n-1]
	m.snapshots[n-1] = nil
	m.snapshots = m.snapshots[:n-1]
	return snapshot, nil
}

// Len returns the number of undo steps available.
func (m *Manager) Len() int { return len(m.snapshots) }

// CanUndo reports whether Undo would succeed.
func (m *Manager) CanUndo() bool { return len(m.snapshots) > 0 }

// Capacity returns the maximum number of snapshots kept.
func (m *Manager) Capacity() int { return m.capacity }

// Reset drops every snapshot.
func (m *Manager) Reset() {
	clear(m.snapshots)
	m.snapshots = m.snapshots[:0]
}

// Package interrupt schedules timed events (interrupts/daemons): routines
// queued to fire after a fixed number of turns, toggled on or off by name,
// and swept once per turn boundary by the host CLI.
package interrupt

import (
	"github.com/dekarrin/zil/internal/ops"
	"github.com/dekarrin/zil/internal/zilast"
)

var _ ops.InterruptManager = (*Manager)(nil)

type entry struct {
	id             int
	routine        zilast.Atom
	turnsRemaining int
	enabled        bool
}

// Manager implements ops.InterruptManager.
type Manager struct {
	nextID int
	order  []int
	byID   map[int]*entry
}

// New returns an empty Manager.
func New() *Manager {
	return &Manager{byID: make(map[int]*entry)}
}

// Queue schedules routine to fire after turns ticks and returns an id for
// later Dequeue.
func (m *Manager) Queue(routine zilast.Atom, turns int) int {
	m.nextID++
	id := m.nextID
	m.byID[id] = &entry{id: id, routine: routine, turnsRemaining: turns, enabled: true}
	m.order = append(m.order, id)
	return id
}

// Dequeue cancels a scheduled interrupt by id, reporting whether one was
// found.
func (m *Manager) Dequeue(id int) bool {
	if _, ok := m.byID[id]; !ok {
		return false
	}
	delete(m.byID, id)
	for i, o := range m.order {
		if o == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return true
}

// Enable re-arms every queued interrupt bound to routine.
func (m *Manager) Enable(routine zilast.Atom) {
	for _, e := range m.byID {
		if e.routine == routine {
			e.enabled = true
		}
	}
}

// Disable suspends every queued interrupt bound to routine without
// removing it; its countdown is paused (Tick skips it) until it is re-armed
// with Enable.
func (m *Manager) Disable(routine zilast.Atom) {
	for _, e := range m.byID {
		if e.routine == routine {
			e.enabled = false
		}
	}
}

// Tick advances every enabled interrupt by one turn, in queue order,
// removing and returning the routines whose countdown reaches zero.
func (m *Manager) Tick() []zilast.Atom {
	var ready []zilast.Atom
	var fired []int
	for _, id := range m.order {
		e, ok := m.byID[id]
		if !ok || !e.enabled {
			continue
		}
		e.turnsRemaining--
		if e.turnsRemaining <= 0 {
			ready = append(ready, e.routine)
			fired = append(fired, id)
		}
	}
	for _, id := range fired {
		delete(m.byID, id)
	}
	if len(fired) > 0 {
		remaining := m.order[:0]
		firedSet := make(map[int]bool, len(fired))
		for _, id := range fired {
			firedSet[id] = true
		}
		for _, id := range m.order {
			if !firedSet[id] {
				remaining = append(remaining, id)
			}
		}
		m.order = remaining
	}
	return ready
}

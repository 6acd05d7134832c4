// Package session holds the per-player play state, the concurrency-safe
// session registry, the verb dispatcher, and the runtime state machine that
// turns input lines into responses.
package session

import (
	"fmt"
	"sync"

	"github.com/fablecore/fable/internal/game/world"
)

// State enumerates the session states.
type State int

const (
	// StateAwaitingStart is the initial state, waiting for the intro answer.
	StateAwaitingStart State = iota
	// StatePlaying is normal play.
	StatePlaying
	// StateAwaitingRestartConfirm waits for a yes/no to restart.
	StateAwaitingRestartConfirm
	// StateAwaitingQuitConfirm waits for a yes/no to quit.
	StateAwaitingQuitConfirm
	// StateAwaitingUnlockCode waits for a code for the pending lockable.
	StateAwaitingUnlockCode
	// StateAwaitingOpenCode waits for a code, then opens on success.
	StateAwaitingOpenCode
)

// String returns the wire name of the state.
func (s State) String() string {
	switch s {
	case StateAwaitingStart:
		return "waiting_for_start_answer"
	case StatePlaying:
		return "playing"
	case StateAwaitingRestartConfirm:
		return "waiting_for_restart_confirmation"
	case StateAwaitingQuitConfirm:
		return "waiting_for_quit_confirmation"
	case StateAwaitingUnlockCode:
		return "waiting_for_unlock_code"
	case StateAwaitingOpenCode:
		return "waiting_for_open_code"
	default:
		return "unknown"
	}
}

// Session is the complete mutable play state for one player identifier. A
// session owns its spawned world outright; nothing in it is shared with
// other sessions, so no locking happens at this level.
type Session struct {
	// ID is the player identifier the host addresses this session by.
	ID string
	// World is this session's own world instance.
	World *world.World
	// Location is where the player currently stands.
	Location *world.Location
	// Inventory is everything the player carries.
	Inventory []*world.Item
	// State is the current state machine state.
	State State
	// PendingLockable is the entity awaiting a code while State is a
	// code-wait state; nil otherwise.
	PendingLockable world.Lockable
	// LastReferenced backs pronoun resolution; set after any successful
	// object-producing action.
	LastReferenced world.Entity
	// ExperiencedPlayer records the intro answer.
	ExperiencedPlayer bool

	contained  map[*world.Item]world.Entity // carried-container edges
	hintPhase  string
	hintCounts map[string]int
}

// HoldsItemNamed reports whether the player carries an item answering to
// the name. Satisfies the lock package's key check.
func (s *Session) HoldsItemNamed(name string) bool {
	for _, it := range s.Inventory {
		if it.Matches(name) {
			return true
		}
	}
	return false
}

// Holds reports whether the exact item is in the inventory.
func (s *Session) Holds(item *world.Item) bool {
	for _, it := range s.Inventory {
		if it == item {
			return true
		}
	}
	return false
}

// AddToInventory places an item in the inventory.
func (s *Session) AddToInventory(item *world.Item) {
	s.Inventory = append(s.Inventory, item)
}

// RemoveFromInventory removes an item along with its own containment edge.
//
// Postcondition: Returns true if the item was carried.
func (s *Session) RemoveFromInventory(item *world.Item) bool {
	for i, it := range s.Inventory {
		if it == item {
			s.Inventory = append(s.Inventory[:i], s.Inventory[i+1:]...)
			delete(s.contained, item)
			return true
		}
	}
	return false
}

// InventoryNames returns the display names of carried items in order.
func (s *Session) InventoryNames() []string {
	names := make([]string, 0, len(s.Inventory))
	for _, it := range s.Inventory {
		names = append(names, it.Name)
	}
	return names
}

// SetContained records a session-owned containment edge for an item inside
// a carried container. An item has at most one active edge, so any previous
// session-owned edge is replaced.
func (s *Session) SetContained(item *world.Item, container world.Entity) {
	if s.contained == nil {
		s.contained = make(map[*world.Item]world.Entity)
	}
	s.contained[item] = container
}

// ContainerOf looks up an item's container across both edge owners, the
// session for carried containers and the location for fixed ones. Callers
// never need to know which tier owns the edge.
func (s *Session) ContainerOf(item *world.Item) (world.Entity, bool) {
	if c, ok := s.contained[item]; ok {
		return c, true
	}
	if s.Location != nil {
		return s.Location.ContainerOf(item)
	}
	return nil, false
}

// ContentsOf merges the contents of a container across both edge owners.
func (s *Session) ContentsOf(container world.Entity) []*world.Item {
	var out []*world.Item
	for _, it := range s.Inventory {
		if c, ok := s.contained[it]; ok && c == container {
			out = append(out, it)
		}
	}
	if s.Location != nil {
		out = append(out, s.Location.ContentsOf(container)...)
	}
	return out
}

// ClearContainment drops every session-owned containment edge.
func (s *Session) ClearContainment() {
	s.contained = nil
}

// NextHintLevel returns the hint level to serve for a phase and advances
// the counter. Counters reset whenever the phase key changes.
func (s *Session) NextHintLevel(phase string) int {
	if phase != s.hintPhase {
		s.hintPhase = phase
		s.hintCounts = make(map[string]int)
	}
	if s.hintCounts == nil {
		s.hintCounts = make(map[string]int)
	}
	lvl := s.hintCounts[phase]
	s.hintCounts[phase]++
	return lvl
}

// ResetHints clears the hint counters.
func (s *Session) ResetHints() {
	s.hintPhase = ""
	s.hintCounts = nil
}

// Manager tracks all active sessions.
// All methods are safe for concurrent use.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates an empty session Manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Get returns the session for the given ID.
//
// Postcondition: Returns (session, true) if found, or (nil, false) otherwise.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[id]
	return sess, ok
}

// GetOrCreate returns the session for the ID, creating it with the supplied
// constructor on first use. Creation happens under the write lock so two
// concurrent first inputs for one ID yield a single session.
//
// Postcondition: Returns the session and whether it was just created.
func (m *Manager) GetOrCreate(id string, create func(id string) *Session) (*Session, bool) {
	m.mu.RLock()
	sess, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		return sess, false
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if sess, ok := m.sessions[id]; ok {
		return sess, false
	}
	sess = create(id)
	m.sessions[id] = sess
	return sess, true
}

// Remove destroys a session.
//
// Precondition: id must be non-empty.
// Postcondition: The session is gone. Returns an error if not found.
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return fmt.Errorf("session %q not found", id)
	}
	delete(m.sessions, id)
	return nil
}

// Count returns the number of active sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// IDs returns the active session identifiers.
func (m *Manager) IDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	return ids
}

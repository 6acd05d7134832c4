// Package world provides the game world model: locations, exits, items,
// scenery, lock state, and containment. A Definition is the immutable,
// validated content; each play session spawns its own mutable World from it.
package world

import (
	"sort"
	"strings"
)

// Entity is anything a player can refer to by name: an item, a scenery
// object, or a location.
type Entity interface {
	// DisplayName is the name shown to the player.
	DisplayName() string
	// Matches reports whether the player-supplied name refers to this
	// entity. Matching is case-insensitive exact-or-alias, never partial.
	Matches(name string) bool
}

// Lockable is the capability shared by held items, location-bound items and
// scenery, and locations themselves. The three implementations share no
// base type beyond this contract.
type Lockable interface {
	Entity
	// LockState returns the entity's lock, or nil when it has none.
	LockState() *Lock
}

func nameMatches(name, canonical string, aliases []string) bool {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return false
	}
	if strings.EqualFold(canonical, n) {
		return true
	}
	for _, a := range aliases {
		if strings.EqualFold(a, n) {
			return true
		}
	}
	return false
}

// Item is a concrete object a player may examine, carry, or manipulate.
type Item struct {
	// Name is the primary item name.
	Name string
	// Aliases are alternate names the resolver accepts.
	Aliases []string
	// Description is shown on examine.
	Description string
	// Fixed items cannot be taken (furniture that is still an item).
	Fixed bool
	// Container reports whether other items can be put inside or on it.
	Container bool
	// Lock is the item's lock state; nil when the item is not lockable.
	Lock *Lock
}

// DisplayName implements Entity.
func (i *Item) DisplayName() string { return i.Name }

// Matches implements Entity.
func (i *Item) Matches(name string) bool { return nameMatches(name, i.Name, i.Aliases) }

// LockState implements Lockable.
func (i *Item) LockState() *Lock { return i.Lock }

// Scenery is a named part of a location the player can interact with but
// never carry.
type Scenery struct {
	// Name is the primary scenery name.
	Name string
	// Aliases are alternate names the resolver accepts.
	Aliases []string
	// Description is shown on examine when no verb response overrides it.
	Description string
	// Responses maps canonical verbs to content-authored response text.
	Responses map[string]string
	// Container reports whether items can be put on or inside it.
	Container bool
	// Lock is the scenery's lock state; nil when not lockable.
	Lock *Lock
}

// DisplayName implements Entity.
func (s *Scenery) DisplayName() string { return s.Name }

// Matches implements Entity.
func (s *Scenery) Matches(name string) bool { return nameMatches(name, s.Name, s.Aliases) }

// LockState implements Lockable.
func (s *Scenery) LockState() *Lock { return s.Lock }

// ResponseTo returns the authored response for a canonical verb.
func (s *Scenery) ResponseTo(verb string) (string, bool) {
	r, ok := s.Responses[verb]
	return r, ok
}

// Location is a place in the world. Locations own the containment edges of
// items resting in or on their scenery and furniture.
type Location struct {
	// ID uniquely identifies the location.
	ID string
	// Title is the short display name.
	Title string
	// Description is shown on look and first arrival.
	Description string
	// Exits maps canonical directions to destination location IDs.
	Exits map[string]string
	// Items are the loose and fixed items currently here.
	Items []*Item
	// Scenery are the location's interactive backdrop objects.
	Scenery []*Scenery
	// Visited is set on the player's first arrival.
	Visited bool
	// Lock is the location's own lock (a locked vault room), or nil.
	Lock *Lock

	contained map[*Item]Entity // item → container, location-owned edges
}

// DisplayName implements Entity.
func (l *Location) DisplayName() string { return l.Title }

// Matches implements Entity.
func (l *Location) Matches(name string) bool {
	return nameMatches(name, l.Title, []string{l.ID})
}

// LockState implements Lockable.
func (l *Location) LockState() *Lock { return l.Lock }

// ExitTo returns the destination location ID for a direction.
func (l *Location) ExitTo(direction string) (string, bool) {
	id, ok := l.Exits[direction]
	return id, ok
}

// ExitDirections returns the available directions in sorted order.
func (l *Location) ExitDirections() []string {
	dirs := make([]string, 0, len(l.Exits))
	for d := range l.Exits {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	return dirs
}

// AddItem places an item at the location.
func (l *Location) AddItem(item *Item) {
	l.Items = append(l.Items, item)
}

// RemoveItem removes an item from the location along with any containment
// edge it participates in as the contained side.
//
// Postcondition: Returns true if the item was present.
func (l *Location) RemoveItem(item *Item) bool {
	for i, it := range l.Items {
		if it == item {
			l.Items = append(l.Items[:i], l.Items[i+1:]...)
			delete(l.contained, item)
			return true
		}
	}
	return false
}

// MatchingItems returns every item at the location matching the name.
func (l *Location) MatchingItems(name string) []*Item {
	var out []*Item
	for _, it := range l.Items {
		if it.Matches(name) {
			out = append(out, it)
		}
	}
	return out
}

// MatchingScenery returns every scenery object matching the name.
func (l *Location) MatchingScenery(name string) []*Scenery {
	var out []*Scenery
	for _, s := range l.Scenery {
		if s.Matches(name) {
			out = append(out, s)
		}
	}
	return out
}

// SetContained records a location-owned containment edge. An item has at
// most one active edge, so any previous edge is replaced.
func (l *Location) SetContained(item *Item, container Entity) {
	if l.contained == nil {
		l.contained = make(map[*Item]Entity)
	}
	l.contained[item] = container
}

// ContainerOf returns the location-owned container of an item, if any.
func (l *Location) ContainerOf(item *Item) (Entity, bool) {
	c, ok := l.contained[item]
	return c, ok
}

// ContentsOf returns the items whose location-owned edge points at the
// given container, in location item order.
func (l *Location) ContentsOf(container Entity) []*Item {
	var out []*Item
	for _, it := range l.Items {
		if c, ok := l.contained[it]; ok && c == container {
			out = append(out, it)
		}
	}
	return out
}

// ClearContainment drops every location-owned containment edge.
func (l *Location) ClearContainment() {
	l.contained = nil
}

// World is one mutable instance of a game world, owned by a single session
// and never shared. Spawn fresh instances from a Definition.
type World struct {
	locations map[string]*Location
	start     string
}

// Location returns the location with the given ID.
func (w *World) Location(id string) (*Location, bool) {
	l, ok := w.locations[id]
	return l, ok
}

// Start returns the designated starting location.
//
// Precondition: the World came from a validated Definition, so the start
// location always exists.
func (w *World) Start() *Location {
	return w.locations[w.start]
}

// Locations returns all locations sorted by ID.
func (w *World) Locations() []*Location {
	out := make([]*Location, 0, len(w.locations))
	for _, l := range w.locations {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// LocationCount returns the number of locations.
func (w *World) LocationCount() int { return len(w.locations) }

package world

import (
	"fmt"
	"strings"
)

// LockDef describes lock state in content form.
type LockDef struct {
	RequiresUnlock bool
	// Code is the secret token sequence ("1 2 3 4" or "1,2,3,4").
	Code string
	// Key names the item that opens a key-based lock.
	Key string
	// Targets are the extra names the unlock/open commands accept.
	Targets []string
	// Unlocked and Open give the starting state.
	Unlocked bool
	Open     bool
}

func (d *LockDef) validate(owner string) error {
	if d.Code != "" && d.Key != "" {
		return fmt.Errorf("%s: lock cannot be both code-based and key-based", owner)
	}
	if d.RequiresUnlock && d.Code == "" && d.Key == "" {
		return fmt.Errorf("%s: lock requires unlocking but has neither code nor key", owner)
	}
	if d.Open && !d.Unlocked {
		return fmt.Errorf("%s: lock cannot start open while locked", owner)
	}
	return nil
}

func (d *LockDef) spawn() *Lock {
	return &Lock{
		RequiresUnlock: d.RequiresUnlock,
		Code:           NormalizeCode(d.Code),
		KeyName:        d.Key,
		Targets:        append([]string(nil), d.Targets...),
		Unlocked:       d.Unlocked,
		Open:           d.Open,
	}
}

// ItemDef describes an item in content form.
type ItemDef struct {
	Name        string
	Aliases     []string
	Description string
	Fixed       bool
	Container   bool
	// Within names the container entity (item or scenery in the same
	// location) this item starts inside or on.
	Within string
	Lock   *LockDef
}

// SceneryDef describes a scenery object in content form.
type SceneryDef struct {
	Name        string
	Aliases     []string
	Description string
	Responses   map[string]string
	Container   bool
	Lock        *LockDef
}

// LocationDef describes a location in content form.
type LocationDef struct {
	ID          string
	Title       string
	Description string
	// Exits maps canonical directions to destination location IDs.
	Exits   map[string]string
	Items   []ItemDef
	Scenery []SceneryDef
	Lock    *LockDef
}

// Definition is validated, immutable game content. Each session spawns its
// own World from the shared Definition.
type Definition struct {
	locations []LocationDef
	start     string
}

// StartID returns the designated starting location ID.
func (d *Definition) StartID() string { return d.start }

// LocationCount returns the number of locations in the definition.
func (d *Definition) LocationCount() int { return len(d.locations) }

// Builder accumulates content in any order; Build performs all validation
// in one deferred pass so authors never depend on insertion order.
type Builder struct {
	locations []LocationDef
	start     string
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddLocation appends a location definition.
func (b *Builder) AddLocation(def LocationDef) *Builder {
	b.locations = append(b.locations, def)
	return b
}

// Start designates the starting location by ID.
func (b *Builder) Start(id string) *Builder {
	b.start = id
	return b
}

// Build validates the accumulated content and returns a Definition.
// These are the only hard failures in the system; once a Definition
// exists, play never errors.
//
// Postcondition: Returns a Definition with at least one location and a
// resolvable start, or a non-nil error naming the first violation.
func (b *Builder) Build() (*Definition, error) {
	if len(b.locations) == 0 {
		return nil, fmt.Errorf("world must contain at least one location")
	}
	if b.start == "" {
		return nil, fmt.Errorf("world must designate a starting location")
	}

	ids := make(map[string]bool, len(b.locations))
	for _, loc := range b.locations {
		if loc.ID == "" {
			return nil, fmt.Errorf("location with title %q has no ID", loc.Title)
		}
		if ids[loc.ID] {
			return nil, fmt.Errorf("duplicate location ID %q", loc.ID)
		}
		ids[loc.ID] = true
	}

	if !ids[b.start] {
		return nil, fmt.Errorf("starting location %q not found", b.start)
	}

	for _, loc := range b.locations {
		if err := validateLocation(loc, ids); err != nil {
			return nil, err
		}
	}

	return &Definition{
		locations: append([]LocationDef(nil), b.locations...),
		start:     b.start,
	}, nil
}

func validateLocation(loc LocationDef, ids map[string]bool) error {
	if loc.Title == "" {
		return fmt.Errorf("location %q: title must not be empty", loc.ID)
	}
	for dir, target := range loc.Exits {
		if dir == "" {
			return fmt.Errorf("location %q: exit with empty direction", loc.ID)
		}
		if !ids[target] {
			return fmt.Errorf("location %q: exit %q targets unknown location %q", loc.ID, dir, target)
		}
	}
	if loc.Lock != nil {
		if err := loc.Lock.validate("location " + loc.ID); err != nil {
			return err
		}
	}

	containers := make(map[string]bool)
	for _, s := range loc.Scenery {
		if s.Name == "" {
			return fmt.Errorf("location %q: scenery with empty name", loc.ID)
		}
		if s.Container {
			containers[strings.ToLower(s.Name)] = true
		}
		if s.Lock != nil {
			if err := s.Lock.validate(fmt.Sprintf("location %q scenery %q", loc.ID, s.Name)); err != nil {
				return err
			}
		}
	}
	for _, it := range loc.Items {
		if it.Name == "" {
			return fmt.Errorf("location %q: item with empty name", loc.ID)
		}
		if it.Container {
			containers[strings.ToLower(it.Name)] = true
		}
		if it.Lock != nil {
			if err := it.Lock.validate(fmt.Sprintf("location %q item %q", loc.ID, it.Name)); err != nil {
				return err
			}
		}
	}
	for _, it := range loc.Items {
		if it.Within != "" && !containers[strings.ToLower(it.Within)] {
			return fmt.Errorf("location %q: item %q starts within unknown container %q",
				loc.ID, it.Name, it.Within)
		}
	}
	return nil
}

// Spawn instantiates a fresh mutable World from the Definition. Every call
// returns independent state; sessions never share a World.
func (d *Definition) Spawn() *World {
	w := &World{
		locations: make(map[string]*Location, len(d.locations)),
		start:     d.start,
	}

	for _, def := range d.locations {
		loc := &Location{
			ID:          def.ID,
			Title:       def.Title,
			Description: def.Description,
			Exits:       make(map[string]string, len(def.Exits)),
		}
		for dir, target := range def.Exits {
			loc.Exits[strings.ToLower(dir)] = target
		}
		if def.Lock != nil {
			loc.Lock = def.Lock.spawn()
		}

		for _, sd := range def.Scenery {
			s := &Scenery{
				Name:        sd.Name,
				Aliases:     append([]string(nil), sd.Aliases...),
				Description: sd.Description,
				Container:   sd.Container,
			}
			if len(sd.Responses) > 0 {
				s.Responses = make(map[string]string, len(sd.Responses))
				for verb, text := range sd.Responses {
					s.Responses[strings.ToLower(verb)] = text
				}
			}
			if sd.Lock != nil {
				s.Lock = sd.Lock.spawn()
			}
			loc.Scenery = append(loc.Scenery, s)
		}

		for _, id := range def.Items {
			item := &Item{
				Name:        id.Name,
				Aliases:     append([]string(nil), id.Aliases...),
				Description: id.Description,
				Fixed:       id.Fixed,
				Container:   id.Container,
			}
			if id.Lock != nil {
				item.Lock = id.Lock.spawn()
			}
			loc.Items = append(loc.Items, item)
		}

		// Resolve initial containment edges now that all entities exist.
		for i, id := range def.Items {
			if id.Within == "" {
				continue
			}
			if container := findContainer(loc, id.Within); container != nil {
				loc.SetContained(loc.Items[i], container)
			}
		}

		w.locations[loc.ID] = loc
	}

	return w
}

func findContainer(loc *Location, name string) Entity {
	for _, it := range loc.Items {
		if it.Container && it.Matches(name) {
			return it
		}
	}
	for _, s := range loc.Scenery {
		if s.Container && s.Matches(name) {
			return s
		}
	}
	return nil
}

package session

import (
	"strings"

	"github.com/fablecore/fable/internal/game/command"
	"github.com/fablecore/fable/internal/game/hints"
	"github.com/fablecore/fable/internal/game/lock"
	"github.com/fablecore/fable/internal/game/resolve"
	"github.com/fablecore/fable/internal/game/text"
	"github.com/fablecore/fable/internal/game/vocab"
	"github.com/fablecore/fable/internal/game/world"
)

// env carries the collaborators every built-in handler needs.
type env struct {
	vocab *vocab.Vocabulary
	text  text.Provider
	hints *hints.Book
}

func (e *env) scope(s *Session) resolve.Scope {
	return resolve.Scope{
		Inventory:      s.Inventory,
		Location:       s.Location,
		LastReferenced: s.LastReferenced,
	}
}

// hiddenInClosedContainer reports whether a location item sits inside a
// container that is still shut.
func hiddenInClosedContainer(s *Session, item *world.Item) bool {
	c, ok := s.Location.ContainerOf(item)
	if !ok {
		return false
	}
	lockable, ok := c.(world.Lockable)
	if !ok {
		return false
	}
	l := lockable.LockState()
	return l != nil && !l.Open
}

type takeHandler struct{ *env }

func (h *takeHandler) Handle(s *Session, cmd *command.Command) (string, bool) {
	names := cmd.DirectObjects
	if len(names) == 0 || (len(names) == 1 && resolve.IsImplicitReference(h.vocab, names[0])) {
		return h.takeImplied(s), true
	}

	var lines []string
	for _, name := range names {
		lines = append(lines, h.takeOne(s, name))
	}
	return strings.Join(lines, "\n"), true
}

func (h *takeHandler) takeImplied(s *Session) string {
	var candidates []world.Entity
	for _, it := range s.Location.Items {
		if !it.Fixed && !hiddenInClosedContainer(s, it) {
			candidates = append(candidates, it)
		}
	}
	res := resolve.Implied(candidates, s.LastReferenced)
	switch res.Outcome {
	case resolve.Found:
		return h.takeOne(s, res.Entity.DisplayName())
	case resolve.Ambiguous:
		return h.text.AmbiguousImplied(vocab.VerbTake)
	default:
		return h.text.NothingToInfer(vocab.VerbTake)
	}
}

func (h *takeHandler) takeOne(s *Session, name string) string {
	res := resolve.Object(h.scope(s), name)
	if res.Outcome != resolve.Found {
		return h.text.NotPresent(name)
	}

	switch e := res.Entity.(type) {
	case *world.Item:
		if s.Holds(e) {
			return h.text.AlreadyHeld(e.Name)
		}
		if e.Fixed {
			return h.text.TakeFixed(e.Name)
		}
		if hiddenInClosedContainer(s, e) {
			return h.text.NotPresent(name)
		}
		// Contents travel with a taken container; their edges move from
		// location ownership to session ownership.
		contents := s.Location.ContentsOf(e)
		s.Location.RemoveItem(e)
		s.AddToInventory(e)
		for _, inner := range contents {
			s.Location.RemoveItem(inner)
			s.AddToInventory(inner)
			s.SetContained(inner, e)
		}
		s.LastReferenced = e
		return h.text.TakeSuccess(e.Name)
	case *world.Scenery:
		return h.text.TakeFixed(e.Name)
	default:
		return h.text.NotPresent(name)
	}
}

type dropHandler struct{ *env }

func (h *dropHandler) Handle(s *Session, cmd *command.Command) (string, bool) {
	name := cmd.DirectObject()
	var item *world.Item
	if resolve.IsImplicitReference(h.vocab, name) {
		var candidates []world.Entity
		for _, it := range s.Inventory {
			candidates = append(candidates, it)
		}
		res := resolve.Implied(candidates, s.LastReferenced)
		switch res.Outcome {
		case resolve.Found:
			item = res.Entity.(*world.Item)
		case resolve.Ambiguous:
			return h.text.AmbiguousImplied(vocab.VerbDrop), true
		default:
			return h.text.NothingToInfer(vocab.VerbDrop), true
		}
	} else {
		for _, it := range s.Inventory {
			if it.Matches(name) {
				item = it
				break
			}
		}
		if item == nil {
			return h.text.NotHolding(name), true
		}
	}

	// A dropped container keeps its contents: each contained item moves to
	// the location with it and the edges switch to location ownership.
	contents := s.ContentsOf(item)
	s.RemoveFromInventory(item)
	s.Location.AddItem(item)
	for _, inner := range contents {
		s.RemoveFromInventory(inner)
		s.Location.AddItem(inner)
		s.Location.SetContained(inner, item)
	}
	s.LastReferenced = item
	return h.text.DropSuccess(item.Name), true
}

type putHandler struct{ *env }

func (h *putHandler) Handle(s *Session, cmd *command.Command) (string, bool) {
	name := cmd.DirectObject()
	target := cmd.IndirectObject()
	if name == "" || target == "" {
		return h.text.NotUnderstood(), true
	}

	var item *world.Item
	for _, it := range s.Inventory {
		if it.Matches(name) {
			item = it
			break
		}
	}
	if item == nil {
		return h.text.NotHolding(name), true
	}

	res := resolve.Object(h.scope(s), target)
	if res.Outcome != resolve.Found {
		return h.text.NotPresent(target), true
	}

	var isContainer bool
	var containerLock *world.Lock
	switch c := res.Entity.(type) {
	case *world.Item:
		isContainer = c.Container
		containerLock = c.Lock
	case *world.Scenery:
		isContainer = c.Container
		containerLock = c.Lock
	}
	if !isContainer {
		return h.text.NotAContainer(res.Entity.DisplayName()), true
	}
	if containerLock != nil && !containerLock.Open {
		return h.text.ContainerClosed(res.Entity.DisplayName()), true
	}
	if res.Entity == world.Entity(item) {
		return h.text.NotUnderstood(), true
	}

	if ci, ok := res.Entity.(*world.Item); ok && s.Holds(ci) {
		// Carried container: the item stays in inventory under a
		// session-owned edge.
		s.SetContained(item, ci)
	} else {
		s.RemoveFromInventory(item)
		s.Location.AddItem(item)
		s.Location.SetContained(item, res.Entity)
	}
	s.LastReferenced = item
	return h.text.PutSuccess(item.Name, res.Entity.DisplayName(), cmd.Preposition), true
}

type lookHandler struct{ *env }

func (h *lookHandler) Handle(s *Session, cmd *command.Command) (string, bool) {
	// The object of "look at X" sits after the preposition.
	name := cmd.DirectObject()
	if name == "" && cmd.Preposition != "" {
		name = cmd.IndirectObject()
	}
	if name == "" || name == "around" {
		return h.text.Look(s.Location), true
	}
	// "look at X" reads as examine.
	ex := examineHandler{h.env}
	return ex.Handle(s, cmd)
}

type examineHandler struct{ *env }

func (h *examineHandler) Handle(s *Session, cmd *command.Command) (string, bool) {
	name := cmd.DirectObject()
	if name == "" && cmd.Preposition != "" {
		name = cmd.IndirectObject()
	}
	if resolve.IsImplicitReference(h.vocab, name) {
		res := resolve.Implied(resolve.DefaultCandidates(h.scope(s)), s.LastReferenced)
		switch res.Outcome {
		case resolve.Found:
			return h.describe(s, res.Entity), true
		case resolve.Ambiguous:
			return h.text.AmbiguousImplied(vocab.VerbExamine), true
		default:
			return h.text.NothingToInfer(vocab.VerbExamine), true
		}
	}

	res := resolve.Object(h.scope(s), name)
	if res.Outcome != resolve.Found {
		return h.text.NotPresent(name), true
	}
	return h.describe(s, res.Entity), true
}

func (h *examineHandler) describe(s *Session, e world.Entity) string {
	s.LastReferenced = e

	if sc, ok := e.(*world.Scenery); ok {
		if resp, ok := sc.ResponseTo(vocab.VerbExamine); ok {
			return resp
		}
	}

	var desc string
	switch v := e.(type) {
	case *world.Item:
		desc = v.Description
	case *world.Scenery:
		desc = v.Description
	case *world.Location:
		desc = v.Description
	}
	if desc == "" {
		return h.text.NothingSpecial(e.DisplayName())
	}

	// An open container's contents get appended to the description.
	if l, ok := e.(world.Lockable); ok {
		if ls := l.LockState(); ls != nil && ls.Open {
			if contents := s.ContentsOf(e); len(contents) > 0 {
				names := make([]string, len(contents))
				for i, it := range contents {
					names[i] = "a " + it.Name
				}
				desc += " Inside: " + strings.Join(names, ", ") + "."
			}
		}
	}
	return h.text.Examine(e, desc)
}

type inventoryHandler struct{ *env }

func (h *inventoryHandler) Handle(s *Session, _ *command.Command) (string, bool) {
	return h.text.Inventory(s.InventoryNames()), true
}

type unlockHandler struct {
	*env
	// open selects the open rule chain; the same handler shape serves both
	// verbs.
	open bool
}

func (h *unlockHandler) Handle(s *Session, cmd *command.Command) (string, bool) {
	verb := vocab.VerbUnlock
	if h.open {
		verb = vocab.VerbOpen
	}

	name := cmd.DirectObject()
	var target world.Lockable
	if resolve.IsImplicitReference(h.vocab, name) {
		candidates := lock.Candidates(h.open, s.Inventory, s.Location)
		res := resolve.Implied(candidates, s.LastReferenced)
		switch res.Outcome {
		case resolve.Found:
			target = res.Entity.(world.Lockable)
		case resolve.Ambiguous:
			return h.text.AmbiguousImplied(verb), true
		default:
			return h.text.NothingToInfer(verb), true
		}
	} else {
		found, outcome := lock.Discover(name, s.Inventory, s.Location)
		switch outcome {
		case lock.DiscoverFound:
			target = found
		case lock.DiscoverAmbiguous:
			return h.text.Ambiguous(name), true
		case lock.DiscoverNotLockable:
			return h.text.NotLockable(name), true
		default:
			return h.text.NotPresent(name), true
		}
	}

	answer := cmd.IndirectObject()
	var att lock.Attempt
	if h.open {
		att = lock.TryOpen(target.LockState(), s, answer)
	} else {
		att = lock.TryUnlock(target.LockState(), s, answer)
	}

	if att.Outcome == lock.CodePrompt {
		s.PendingLockable = target
		if h.open {
			s.State = StateAwaitingOpenCode
		} else {
			s.State = StateAwaitingUnlockCode
		}
	}
	s.LastReferenced = target
	return h.text.LockResult(att.Outcome, target.DisplayName()), true
}

type hintHandler struct{ *env }

func (h *hintHandler) Handle(s *Session, _ *command.Command) (string, bool) {
	phase := s.Location.ID
	if h.hints == nil || !h.hints.HasPhase(phase) {
		return h.text.NoMoreHints(), true
	}
	level := s.NextHintLevel(phase)
	hint, ok := h.hints.Hint(phase, level)
	if !ok {
		return h.text.NoMoreHints(), true
	}
	return h.text.Hint(hint), true
}

type helpHandler struct{ *env }

func (h *helpHandler) Handle(_ *Session, _ *command.Command) (string, bool) {
	return h.text.Help(), true
}

package lock

import "github.com/fablecore/fable/internal/game/world"

// DiscoverOutcome classifies a candidate search.
type DiscoverOutcome int

const (
	// DiscoverFound: exactly one lockable matched in the winning tier.
	DiscoverFound DiscoverOutcome = iota
	// DiscoverAmbiguous: several lockables matched within one tier; the
	// player must be specific. A match is never silently picked.
	DiscoverAmbiguous
	// DiscoverNotLockable: the name matches an entity, but nothing
	// lockable.
	DiscoverNotLockable
	// DiscoverNotPresent: no entity of that name exists here at all.
	DiscoverNotPresent
)

// matchesLockable reports whether a lockable entity answers to the
// requested name, through its own names or its lock's target-name set.
func matchesLockable(e world.Lockable, name string) bool {
	if e.LockState() == nil {
		return false
	}
	if e.Matches(name) {
		return true
	}
	return e.LockState().MatchesTarget(name)
}

// Discover finds the lockable entity a name refers to, walking the
// priority tiers: held items, location items, location scenery, then the
// location itself. The first tier with matches decides.
func Discover(name string, inventory []*world.Item, loc *world.Location) (world.Lockable, DiscoverOutcome) {
	tiers := make([][]world.Lockable, 0, 4)

	var held []world.Lockable
	for _, it := range inventory {
		if matchesLockable(it, name) {
			held = append(held, it)
		}
	}
	tiers = append(tiers, held)

	if loc != nil {
		var items []world.Lockable
		for _, it := range loc.Items {
			if matchesLockable(it, name) {
				items = append(items, it)
			}
		}
		tiers = append(tiers, items)

		var scenery []world.Lockable
		for _, s := range loc.Scenery {
			if matchesLockable(s, name) {
				scenery = append(scenery, s)
			}
		}
		tiers = append(tiers, scenery)

		if matchesLockable(loc, name) {
			tiers = append(tiers, []world.Lockable{loc})
		}
	}

	for _, tier := range tiers {
		switch len(tier) {
		case 0:
			continue
		case 1:
			return tier[0], DiscoverFound
		default:
			return nil, DiscoverAmbiguous
		}
	}

	if anyEntityMatches(name, inventory, loc) {
		return nil, DiscoverNotLockable
	}
	return nil, DiscoverNotPresent
}

func anyEntityMatches(name string, inventory []*world.Item, loc *world.Location) bool {
	for _, it := range inventory {
		if it.Matches(name) {
			return true
		}
	}
	if loc == nil {
		return false
	}
	if len(loc.MatchingItems(name)) > 0 || len(loc.MatchingScenery(name)) > 0 {
		return true
	}
	return loc.Matches(name)
}

// Candidates gathers the lockable entities an implied unlock or open could
// target: for unlock, everything still locked; for open, everything not
// yet open.
func Candidates(forOpen bool, inventory []*world.Item, loc *world.Location) []world.Entity {
	var out []world.Entity
	consider := func(e world.Lockable) {
		l := e.LockState()
		if l == nil {
			return
		}
		if forOpen {
			if !l.Open {
				out = append(out, e)
			}
			return
		}
		if l.RequiresUnlock && !l.Unlocked {
			out = append(out, e)
		}
	}

	for _, it := range inventory {
		consider(it)
	}
	if loc != nil {
		for _, it := range loc.Items {
			consider(it)
		}
		for _, s := range loc.Scenery {
			consider(s)
		}
		consider(loc)
	}
	return out
}

// Package resolve maps player-supplied object names to world entities.
// Matching is case-insensitive exact-or-alias, never fuzzy, and resolution
// walks fixed priority tiers: inventory, then location items, then scenery.
package resolve

import (
	"github.com/fablecore/fable/internal/game/vocab"
	"github.com/fablecore/fable/internal/game/world"
)

// Outcome classifies a resolution attempt. Everything but Found is a
// normal response situation, not an error.
type Outcome int

const (
	// Found means exactly one entity resolved.
	Found Outcome = iota
	// NotFound means no entity of that name exists in scope.
	NotFound
	// Ambiguous means several candidates matched and the player must be
	// more specific.
	Ambiguous
	// NoneAvailable means implied resolution had no candidate at all.
	NoneAvailable
)

// Result is the outcome of one resolution attempt. It is never persisted.
type Result struct {
	Outcome Outcome
	Entity  world.Entity
}

// Scope is the read view the resolver searches: what the player carries,
// where they stand, and what they last referred to.
type Scope struct {
	Inventory      []*world.Item
	Location       *world.Location
	LastReferenced world.Entity
}

// Object resolves a name against the scope's priority tiers, stopping at
// the first tier with a match: inventory, location items, then scenery.
// Within a tier the first match in listing order wins.
func Object(scope Scope, name string) Result {
	for _, it := range scope.Inventory {
		if it.Matches(name) {
			return Result{Outcome: Found, Entity: it}
		}
	}
	if scope.Location != nil {
		if items := scope.Location.MatchingItems(name); len(items) > 0 {
			return Result{Outcome: Found, Entity: items[0]}
		}
		if scenery := scope.Location.MatchingScenery(name); len(scenery) > 0 {
			return Result{Outcome: Found, Entity: scenery[0]}
		}
	}
	return Result{Outcome: NotFound}
}

// Implied infers an object the player never named. The last referenced
// entity wins when it is still among the candidates; otherwise inference
// needs exactly one candidate. Callers gather the candidates relevant to
// the verb at hand.
func Implied(candidates []world.Entity, last world.Entity) Result {
	if last != nil {
		for _, c := range candidates {
			if c == last {
				return Result{Outcome: Found, Entity: last}
			}
		}
	}
	switch len(candidates) {
	case 0:
		return Result{Outcome: NoneAvailable}
	case 1:
		return Result{Outcome: Found, Entity: candidates[0]}
	default:
		return Result{Outcome: Ambiguous}
	}
}

// IsImplicitReference reports whether the object text calls for implied
// resolution: the player supplied nothing, or a pronoun like "it".
func IsImplicitReference(v *vocab.Vocabulary, name string) bool {
	return name == "" || v.IsPronoun(name)
}

// DefaultCandidates gathers the generic candidate set for verbs without a
// narrower rule: everything carried plus every loose item here.
func DefaultCandidates(scope Scope) []world.Entity {
	var out []world.Entity
	for _, it := range scope.Inventory {
		out = append(out, it)
	}
	if scope.Location != nil {
		for _, it := range scope.Location.Items {
			out = append(out, it)
		}
	}
	return out
}

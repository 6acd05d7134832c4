package session

import (
	"testing"

	"github.com/fablecore/fable/internal/game/world"
)

// containmentFixture wires one carried container and one location-bound
// container, each holding an item, to exercise the dual-owner edge lookup.
type containmentFixture struct {
	sess              *Session
	carriedContainer  *world.Item
	carriedItem       *world.Item
	locationContainer *world.Scenery
	placedItem        *world.Item
}

func newContainmentFixture(t *testing.T) *containmentFixture {
	t.Helper()

	shelf := &world.Scenery{Name: "shelf", Container: true}
	vase := &world.Item{Name: "vase"}
	loc := &world.Location{ID: "study", Title: "Study"}
	loc.Scenery = append(loc.Scenery, shelf)
	loc.AddItem(vase)
	loc.SetContained(vase, shelf)

	satchel := &world.Item{Name: "satchel", Container: true}
	coin := &world.Item{Name: "coin"}
	sess := &Session{ID: "p1", Location: loc}
	sess.AddToInventory(satchel)
	sess.AddToInventory(coin)
	sess.SetContained(coin, satchel)

	return &containmentFixture{
		sess:              sess,
		carriedContainer:  satchel,
		carriedItem:       coin,
		locationContainer: shelf,
		placedItem:        vase,
	}
}

package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fablecore/fable/internal/game/command"
)

func cmdFor(verb string) *command.Command {
	return &command.Command{Verb: verb, Original: verb}
}

func TestDispatcher_RoutesByVerb(t *testing.T) {
	d := NewDispatcher()
	d.Register(Func(func(*Session, *command.Command) (string, bool) {
		return "waved", true
	}), "wave")

	resp, handled := d.Dispatch(&Session{}, cmdFor("wave"))
	assert.True(t, handled)
	assert.Equal(t, "waved", resp)

	_, handled = d.Dispatch(&Session{}, cmdFor("dance"))
	assert.False(t, handled)
}

func TestDispatcher_CaseInsensitive(t *testing.T) {
	d := NewDispatcher()
	d.Register(Func(func(*Session, *command.Command) (string, bool) {
		return "ok", true
	}), "Wave")

	_, handled := d.Dispatch(&Session{}, cmdFor("WAVE"))
	assert.True(t, handled)
}

func TestDispatcher_MultiVerbHandler(t *testing.T) {
	d := NewDispatcher()
	h := Func(func(*Session, *command.Command) (string, bool) { return "ok", true })
	d.Register(h, "wave", "salute")

	_, handled := d.Dispatch(&Session{}, cmdFor("salute"))
	assert.True(t, handled)
}

func TestDispatcher_OverlayFallsThroughOnNoOpinion(t *testing.T) {
	d := NewDispatcher()
	d.Register(Func(func(*Session, *command.Command) (string, bool) {
		return "builtin", true
	}), "wave")

	overlay := Func(func(_ *Session, cmd *command.Command) (string, bool) {
		if cmd.DirectObject() == "flag" {
			return "custom", true
		}
		return "", false
	})
	d.Register(overlay, "wave")

	resp, _ := d.Dispatch(&Session{}, &command.Command{Verb: "wave", DirectObjects: []string{"flag"}})
	assert.Equal(t, "custom", resp)

	resp, _ = d.Dispatch(&Session{}, cmdFor("wave"))
	assert.Equal(t, "builtin", resp)
}

func TestDispatcher_UnregisterHandlerRemovesAllBindings(t *testing.T) {
	d := NewDispatcher()
	builtin := Func(func(*Session, *command.Command) (string, bool) { return "builtin", true })
	overlay := Func(func(*Session, *command.Command) (string, bool) { return "custom", true })
	d.Register(builtin, "wave")
	d.Register(overlay, "wave", "salute")

	d.UnregisterHandler(overlay)

	resp, handled := d.Dispatch(&Session{}, cmdFor("wave"))
	assert.True(t, handled)
	assert.Equal(t, "builtin", resp)

	_, handled = d.Dispatch(&Session{}, cmdFor("salute"))
	assert.False(t, handled)
}

func TestDispatcher_UnregisterVerb(t *testing.T) {
	d := NewDispatcher()
	d.Register(Func(func(*Session, *command.Command) (string, bool) { return "ok", true }), "wave")

	d.UnregisterVerb("wave")
	_, handled := d.Dispatch(&Session{}, cmdFor("wave"))
	assert.False(t, handled)
	assert.Empty(t, d.Verbs())
}

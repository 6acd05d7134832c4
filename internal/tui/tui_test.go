package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fablecore/fable/internal/game/session"
	"github.com/fablecore/fable/internal/game/world"
)

func testModel(t *testing.T) Model {
	t.Helper()
	def, err := world.NewBuilder().
		AddLocation(world.LocationDef{
			ID:          "hall",
			Title:       "The Hall",
			Description: "A dusty entrance hall.",
			Items:       []world.ItemDef{{Name: "key"}},
		}).
		Start("hall").
		Build()
	require.NoError(t, err)

	rt, err := session.NewRuntime(session.RuntimeConfig{Definition: def, SkipIntro: true})
	require.NoError(t, err)

	m := NewModel(rt, "local")
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(Model)
}

func typeLine(t *testing.T, m Model, line string) (Model, tea.Cmd) {
	t.Helper()
	for _, r := range line {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = updated.(Model)
	}
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(Model), cmd
}

func TestModelGreetsOnFirstResize(t *testing.T) {
	m := testModel(t)
	assert.True(t, m.ready)
	assert.Contains(t, m.log, "The Hall")
}

func TestModelProcessesCommand(t *testing.T) {
	m := testModel(t)

	m, cmd := typeLine(t, m, "take key")
	assert.Nil(t, cmd)
	assert.Contains(t, m.log, "take key")
	assert.Contains(t, m.log, "You take the key.")
	assert.Equal(t, []string{"key"}, m.inventoryNames())
}

func TestModelIgnoresBlankInput(t *testing.T) {
	m := testModel(t)
	before := m.log

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	assert.Nil(t, cmd)
	assert.Equal(t, before, m.log)
}

func TestModelQuitsWhenSessionEnds(t *testing.T) {
	m := testModel(t)

	m, _ = typeLine(t, m, "quit")
	require.Contains(t, m.log, "Really quit?")

	_, cmd := typeLine(t, m, "yes")
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModelSidebarShowsExitsAndInventory(t *testing.T) {
	m := testModel(t)

	m, _ = typeLine(t, m, "take key")
	view := m.View()
	assert.Contains(t, view, "INVENTORY")
	assert.True(t, strings.Contains(view, "key"))
}

package scripting_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fablecore/fable/internal/scripting"
)

func TestManager_CallCommand(t *testing.T) {
	m := scripting.NewManager(zap.NewNop())
	defer m.Close()

	err := m.LoadString(`
		function on_command(cmd)
			if cmd.verb == "sing" then
				return "You sing about the " .. cmd.object .. "."
			end
			return nil
		end
	`, 0)
	require.NoError(t, err)

	resp, handled := m.CallCommand("on_command", map[string]string{
		"verb": "sing", "object": "rain",
	})
	assert.True(t, handled)
	assert.Equal(t, "You sing about the rain.", resp)

	// nil return is the no-opinion sentinel.
	_, handled = m.CallCommand("on_command", map[string]string{"verb": "dance"})
	assert.False(t, handled)
}

func TestManager_BudgetResetsPerCall(t *testing.T) {
	m := scripting.NewManager(zap.NewNop())
	defer m.Close()

	require.NoError(t, m.LoadString(
		`function on_command(cmd) return "ok" end`, 5000))

	// A cumulative budget would go silent after a couple of thousand
	// calls; each call must get the full allowance.
	for i := 0; i < 3000; i++ {
		resp, handled := m.CallCommand("on_command", nil)
		require.True(t, handled, "call %d went unanswered", i)
		require.Equal(t, "ok", resp)
	}
}

func TestManager_MissingHookOrVM(t *testing.T) {
	m := scripting.NewManager(zap.NewNop())
	defer m.Close()

	// No VM loaded yet.
	_, handled := m.CallCommand("on_command", nil)
	assert.False(t, handled)

	require.NoError(t, m.LoadString(`x = 1`, 0))
	_, handled = m.CallCommand("on_command", nil)
	assert.False(t, handled)
}

func TestManager_RuntimeErrorNotPropagated(t *testing.T) {
	m := scripting.NewManager(zap.NewNop())
	defer m.Close()

	require.NoError(t, m.LoadString(`
		function on_command(cmd)
			error("boom")
		end
	`, 0))

	_, handled := m.CallCommand("on_command", map[string]string{"verb": "look"})
	assert.False(t, handled)
}

func TestManager_LoadDir(t *testing.T) {
	dir := t.TempDir()
	// Files load in lexicographic order; the later file sees the earlier
	// one's globals.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "01_base.lua"),
		[]byte(`greeting = "salutations"`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "02_cmd.lua"),
		[]byte(`function on_command(cmd) return greeting end`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"),
		[]byte(`not lua`), 0o644))

	m := scripting.NewManager(zap.NewNop())
	defer m.Close()
	require.NoError(t, m.LoadDir(dir, 0))

	resp, handled := m.CallCommand("on_command", nil)
	assert.True(t, handled)
	assert.Equal(t, "salutations", resp)
}

func TestManager_LoadDirErrors(t *testing.T) {
	m := scripting.NewManager(zap.NewNop())
	defer m.Close()

	assert.Error(t, m.LoadDir("/nonexistent/dir", 0))

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.lua"),
		[]byte(`function (`), 0o644))
	assert.Error(t, m.LoadDir(dir, 0))
}

package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Manager owns the sandboxed LState the command scripts run in.
//
// An LState is single-threaded, so every hook call serializes on the
// Manager's mutex; sessions for different players share the one VM.
type Manager struct {
	mu     sync.Mutex
	state  *lua.LState
	limit  int
	logger *zap.Logger
}

// NewManager creates a Manager with no scripts loaded.
//
// Precondition: logger must be non-nil.
func NewManager(logger *zap.Logger) *Manager {
	return &Manager{logger: logger}
}

// LoadDir creates a sandboxed VM, registers the fable.* module, then
// executes every *.lua file in dir in lexicographic order. Loading again
// replaces the previous VM.
//
// Precondition: dir must be a readable directory.
// Postcondition: The VM is ready for CallCommand; returns error on Lua
// load failure.
func (m *Manager) LoadDir(dir string, instLimit int) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("scripting: reading script dir %q: %w", dir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	L := NewSandboxedState(instLimit)
	m.RegisterModules(L)
	for _, path := range luaFiles {
		// Every file load gets the full budget.
		ResetBudget(L, instLimit)
		if err := L.DoFile(path); err != nil {
			L.Close()
			return fmt.Errorf("scripting: loading %q: %w", path, err)
		}
	}

	m.swap(L, instLimit)
	return nil
}

// LoadString executes a script source in a fresh sandboxed VM, replacing
// any previous one.
func (m *Manager) LoadString(src string, instLimit int) error {
	L := NewSandboxedState(instLimit)
	m.RegisterModules(L)
	if err := L.DoString(src); err != nil {
		L.Close()
		return fmt.Errorf("scripting: loading inline script: %w", err)
	}
	m.swap(L, instLimit)
	return nil
}

func (m *Manager) swap(L *lua.LState, instLimit int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != nil {
		m.state.Close()
	}
	m.state = L
	m.limit = instLimit
}

// Close shuts the VM down.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != nil {
		m.state.Close()
		m.state = nil
	}
}

// CallCommand calls the named Lua global function with a single table
// argument built from fields. A string return value is the script's
// response; nil (or a missing hook, or no VM, or a runtime error) means
// the script has no opinion and the built-in handler should run. Lua
// runtime errors are logged at Warn level and never propagated.
//
// Postcondition: Returns (response, true) only when the hook returned a
// string.
func (m *Manager) CallCommand(hook string, fields map[string]string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == nil {
		return "", false
	}
	L := m.state

	// The opcode budget is per hook call; without the reset a long-running
	// VM would exhaust it cumulatively and go silent.
	ResetBudget(L, m.limit)

	fn := L.GetGlobal(hook)
	if fn == lua.LNil {
		return "", false
	}

	tbl := L.NewTable()
	for k, v := range fields {
		tbl.RawSetString(k, lua.LString(v))
	}

	if err := L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, tbl); err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("hook", hook),
			zap.Error(err),
		)
		return "", false
	}

	ret := L.Get(-1)
	L.Pop(1)
	if s, ok := ret.(lua.LString); ok {
		return string(s), true
	}
	return "", false
}

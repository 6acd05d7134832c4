package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// RegisterModules registers the fable.* Lua table into L. Scripts get a
// logging function and nothing else; all game state reaches them through
// the command table argument.
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: fable global is defined in L.
func (m *Manager) RegisterModules(L *lua.LState) {
	fable := L.NewTable()
	L.SetFuncs(fable, map[string]lua.LGFunction{
		"log": func(L *lua.LState) int {
			m.logger.Info("script", zap.String("msg", lua.LVAsString(L.Get(1))))
			return 0
		},
	})
	L.SetGlobal("fable", fable)
}

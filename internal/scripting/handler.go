package scripting

import (
	"strings"

	"github.com/fablecore/fable/internal/game/command"
	"github.com/fablecore/fable/internal/game/session"
)

// CommandHook is the Lua global the command handler calls.
const CommandHook = "on_command"

// CommandHandler plugs the script VM into the verb dispatcher as an
// overlay. The hook receives one table describing the turn and may return
// a string to claim the command; returning nil falls through to the
// built-in handler.
type CommandHandler struct {
	manager *Manager
}

// NewCommandHandler creates a dispatcher handler backed by the manager's VM.
//
// Precondition: manager must be non-nil.
func NewCommandHandler(manager *Manager) *CommandHandler {
	return &CommandHandler{manager: manager}
}

// Handle implements session.Handler.
func (h *CommandHandler) Handle(s *session.Session, cmd *command.Command) (string, bool) {
	fields := map[string]string{
		"verb":        cmd.Verb,
		"object":      cmd.DirectObject(),
		"second":      cmd.IndirectObject(),
		"preposition": cmd.Preposition,
		"raw":         cmd.Original,
		"location":    s.Location.ID,
		"inventory":   strings.Join(s.InventoryNames(), ","),
		"state":       s.State.String(),
	}
	return h.manager.CallCommand(CommandHook, fields)
}

package session

import (
	"strings"
	"sync"

	"github.com/fablecore/fable/internal/game/command"
)

// Handler executes one verb against a session. Returning handled=false is
// the no-opinion sentinel: the dispatcher falls through to the next handler
// registered for the verb, letting an overlay intercept a subset of cases
// and delegate the rest.
type Handler interface {
	Handle(s *Session, cmd *command.Command) (response string, handled bool)
}

// HandlerFunc adapts a function to the Handler interface. The returned
// value has a stable identity, so it can be unregistered by instance.
type HandlerFunc struct {
	fn func(s *Session, cmd *command.Command) (string, bool)
}

// Func wraps a function as a Handler.
func Func(fn func(s *Session, cmd *command.Command) (string, bool)) *HandlerFunc {
	return &HandlerFunc{fn: fn}
}

// Handle implements Handler.
func (h *HandlerFunc) Handle(s *Session, cmd *command.Command) (string, bool) {
	return h.fn(s, cmd)
}

// Dispatcher routes a parsed command to the handler registered for its
// verb. Later registrations overlay earlier ones; dispatch walks the stack
// newest first until a handler claims the command. The dispatcher performs
// no object resolution itself.
// All methods are safe for concurrent use.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]Handler // verb → registration order, oldest first
}

// NewDispatcher creates an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string][]Handler)}
}

// Register binds a handler to one or more verbs. Verb lookup is
// case-insensitive.
//
// Precondition: handler must be non-nil and verbs non-empty.
func (d *Dispatcher) Register(handler Handler, verbs ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, verb := range verbs {
		v := strings.ToLower(strings.TrimSpace(verb))
		if v == "" {
			continue
		}
		d.handlers[v] = append(d.handlers[v], handler)
	}
}

// Dispatch routes the command to the newest handler for its verb, falling
// through the overlay stack while handlers return no opinion.
//
// Postcondition: Returns (response, true) when some handler claimed the
// command, or ("", false) when no handler had an opinion.
func (d *Dispatcher) Dispatch(s *Session, cmd *command.Command) (string, bool) {
	d.mu.RLock()
	stack := d.handlers[strings.ToLower(cmd.Verb)]
	// Dispatch outside the lock; handlers may re-register.
	stack = append([]Handler(nil), stack...)
	d.mu.RUnlock()

	for i := len(stack) - 1; i >= 0; i-- {
		if resp, handled := stack[i].Handle(s, cmd); handled {
			return resp, true
		}
	}
	return "", false
}

// UnregisterVerb removes every handler bound to a verb.
func (d *Dispatcher) UnregisterVerb(verb string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.handlers, strings.ToLower(strings.TrimSpace(verb)))
}

// UnregisterHandler removes all of a handler's verb bindings atomically.
func (d *Dispatcher) UnregisterHandler(handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for verb, stack := range d.handlers {
		kept := stack[:0]
		for _, h := range stack {
			if h != handler {
				kept = append(kept, h)
			}
		}
		if len(kept) == 0 {
			delete(d.handlers, verb)
			continue
		}
		d.handlers[verb] = kept
	}
}

// Verbs returns the verbs with at least one handler.
func (d *Dispatcher) Verbs() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]string, 0, len(d.handlers))
	for v := range d.handlers {
		out = append(out, v)
	}
	return out
}

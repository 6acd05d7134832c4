package session

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/fablecore/fable/internal/game/command"
	"github.com/fablecore/fable/internal/game/hints"
	"github.com/fablecore/fable/internal/game/lock"
	"github.com/fablecore/fable/internal/game/text"
	"github.com/fablecore/fable/internal/game/vocab"
	"github.com/fablecore/fable/internal/game/world"
)

// Response is the structured result of one processed input line. Hosts
// render it to their wire format.
type Response struct {
	// Text is the display text for this turn.
	Text string `json:"text"`
	// State is the wire name of the session state after this turn.
	State string `json:"state"`
	// Exits lists the valid movement directions while playing.
	Exits []string `json:"exits,omitempty"`
	// Done signals the host that the player confirmed quitting. The
	// session itself returns to the intro question, so a host that keeps
	// the connection open may continue.
	Done bool `json:"done,omitempty"`
}

// IntroHandler lets a host take over the intro exchange. It inspects raw
// input and returns the reply plus whether play begins; while begin is
// false the session stays at the intro.
type IntroHandler func(s *Session, rawInput string) (message string, begin bool)

// Runtime wires the parser, resolver, dispatcher, and state machine into
// the single entry point hosts call per input line. One Runtime serves all
// sessions; per-session state never crosses between them, so concurrent
// calls for distinct session IDs are safe.
type Runtime struct {
	def        *world.Definition
	vocab      *vocab.Vocabulary
	text       text.Provider
	hints      *hints.Book
	sessions   *Manager
	dispatcher *Dispatcher
	intro      IntroHandler
	skipIntro  bool
	logger     *zap.Logger
}

// RuntimeConfig configures a Runtime. Definition is required; everything
// else has a usable default.
type RuntimeConfig struct {
	Definition *world.Definition
	Vocabulary *vocab.Vocabulary
	Text       text.Provider
	Hints      *hints.Book
	Intro      IntroHandler
	SkipIntro  bool
	Logger     *zap.Logger
}

// NewRuntime builds a Runtime and registers the built-in verb handlers.
//
// Postcondition: Returns an error only for missing setup, never for
// anything a player could cause.
func NewRuntime(cfg RuntimeConfig) (*Runtime, error) {
	if cfg.Definition == nil {
		return nil, errors.New("runtime requires a world definition")
	}
	r := &Runtime{
		def:        cfg.Definition,
		vocab:      cfg.Vocabulary,
		text:       cfg.Text,
		hints:      cfg.Hints,
		sessions:   NewManager(),
		dispatcher: NewDispatcher(),
		intro:      cfg.Intro,
		skipIntro:  cfg.SkipIntro,
		logger:     cfg.Logger,
	}
	if r.vocab == nil {
		r.vocab = vocab.New()
	}
	if r.text == nil {
		r.text = text.English{}
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}

	e := &env{vocab: r.vocab, text: r.text, hints: r.hints}
	r.dispatcher.Register(&takeHandler{e}, vocab.VerbTake)
	r.dispatcher.Register(&dropHandler{e}, vocab.VerbDrop)
	r.dispatcher.Register(&putHandler{e}, vocab.VerbPut)
	r.dispatcher.Register(&lookHandler{e}, vocab.VerbLook)
	r.dispatcher.Register(&examineHandler{e}, vocab.VerbExamine)
	r.dispatcher.Register(&inventoryHandler{e}, vocab.VerbInventory)
	r.dispatcher.Register(&unlockHandler{env: e}, vocab.VerbUnlock)
	r.dispatcher.Register(&unlockHandler{env: e, open: true}, vocab.VerbOpen)
	r.dispatcher.Register(&hintHandler{e}, vocab.VerbHint)
	r.dispatcher.Register(&helpHandler{e}, vocab.VerbHelp)

	return r, nil
}

// RegisterCommand overlays a handler on one or more verbs. The verbs are
// also registered in the vocabulary so the parser recognizes them.
func (r *Runtime) RegisterCommand(handler Handler, verbs ...string) {
	for _, v := range verbs {
		r.vocab.RegisterVerb(v)
	}
	r.dispatcher.Register(handler, verbs...)
}

// UnregisterCommand removes a handler's verb bindings.
func (r *Runtime) UnregisterCommand(handler Handler) {
	r.dispatcher.UnregisterHandler(handler)
}

// Sessions exposes the session registry.
func (r *Runtime) Sessions() *Manager { return r.sessions }

// Greet creates the session if needed and returns its opening text, for
// hosts that send a banner before the first input line.
func (r *Runtime) Greet(sessionID string) Response {
	sess, _ := r.sessions.GetOrCreate(sessionID, r.newSession)
	if sess.State == StateAwaitingStart {
		return r.respond(sess, r.text.Welcome(), false)
	}
	return r.respond(sess, r.text.Look(sess.Location), false)
}

// EndSession destroys a session.
func (r *Runtime) EndSession(sessionID string) {
	_ = r.sessions.Remove(sessionID)
}

func (r *Runtime) newSession(id string) *Session {
	w := r.def.Spawn()
	sess := &Session{
		ID:       id,
		World:    w,
		Location: w.Start(),
		State:    StateAwaitingStart,
	}
	if r.skipIntro {
		sess.State = StatePlaying
		sess.Location.Visited = true
	}
	r.logger.Debug("session created",
		zap.String("session", id),
		zap.String("start", sess.Location.ID),
	)
	return sess
}

// ProcessCommand runs one turn for a session: parse, validate, resolve,
// dispatch, and transition, as a single synchronous sequence.
//
// Postcondition: Always returns a Response; player mistakes are response
// situations, never errors.
func (r *Runtime) ProcessCommand(sessionID, rawInput string) Response {
	sess, created := r.sessions.GetOrCreate(sessionID, r.newSession)
	if created && sess.State == StateAwaitingStart && strings.TrimSpace(rawInput) == "" {
		return r.respond(sess, r.text.Welcome(), false)
	}

	switch sess.State {
	case StateAwaitingStart:
		return r.processIntro(sess, rawInput)
	case StateAwaitingRestartConfirm:
		return r.processRestartConfirm(sess, rawInput)
	case StateAwaitingQuitConfirm:
		return r.processQuitConfirm(sess, rawInput)
	case StateAwaitingUnlockCode, StateAwaitingOpenCode:
		return r.processCodeAnswer(sess, rawInput)
	default:
		return r.processPlaying(sess, rawInput)
	}
}

func isYes(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "yes", "y":
		return true
	}
	return false
}

func isNo(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "no", "n":
		return true
	}
	return false
}

func (r *Runtime) processIntro(sess *Session, rawInput string) Response {
	if r.intro != nil {
		msg, begin := r.intro(sess, rawInput)
		if begin {
			sess.State = StatePlaying
			sess.Location.Visited = true
		}
		return r.respond(sess, msg, false)
	}

	switch {
	case isYes(rawInput):
		sess.ExperiencedPlayer = true
		sess.State = StatePlaying
		sess.Location.Visited = true
		return r.respond(sess, r.text.IntroBrief(sess.Location), false)
	case isNo(rawInput):
		sess.ExperiencedPlayer = false
		sess.State = StatePlaying
		sess.Location.Visited = true
		return r.respond(sess, r.text.Intro(sess.Location), false)
	default:
		return r.respond(sess, r.text.Welcome(), false)
	}
}

func (r *Runtime) processRestartConfirm(sess *Session, rawInput string) Response {
	switch {
	case isYes(rawInput):
		r.reset(sess)
		sess.State = StatePlaying
		sess.Location.Visited = true
		return r.respond(sess, r.text.RestartDone(sess.Location), false)
	case isNo(rawInput):
		sess.State = StatePlaying
		return r.respond(sess, r.text.ConfirmCancelled(), false)
	default:
		return r.respond(sess, r.text.RestartPrompt(), false)
	}
}

func (r *Runtime) processQuitConfirm(sess *Session, rawInput string) Response {
	switch {
	case isYes(rawInput):
		// Quit returns the session to the intro question; the Done flag
		// lets line-oriented hosts close the connection instead.
		r.reset(sess)
		sess.ExperiencedPlayer = false
		sess.State = StateAwaitingStart
		return r.respond(sess, r.text.Farewell(), true)
	case isNo(rawInput):
		sess.State = StatePlaying
		return r.respond(sess, r.text.ConfirmCancelled(), false)
	default:
		return r.respond(sess, r.text.QuitPrompt(), false)
	}
}

// processCodeAnswer feeds the raw line verbatim to the pending lockable.
// Success or not, the session returns to playing and the pending reference
// clears; a stale empty reference degrades to not-understood.
func (r *Runtime) processCodeAnswer(sess *Session, rawInput string) Response {
	pending := sess.PendingLockable
	forOpen := sess.State == StateAwaitingOpenCode
	sess.PendingLockable = nil
	sess.State = StatePlaying

	if pending == nil {
		return r.respond(sess, r.text.NotUnderstood(), false)
	}

	var att lock.Attempt
	if forOpen {
		att = lock.TryOpen(pending.LockState(), sess, rawInput)
	} else {
		att = lock.TryUnlock(pending.LockState(), sess, rawInput)
	}
	sess.LastReferenced = pending
	return r.respond(sess, r.text.LockResult(att.Outcome, pending.DisplayName()), false)
}

func (r *Runtime) processPlaying(sess *Session, rawInput string) Response {
	cmd := command.Parse(r.vocab, rawInput)
	if cmd.IsEmpty() {
		return r.respond(sess, r.text.NotUnderstood(), false)
	}

	r.logger.Debug("command",
		zap.String("session", sess.ID),
		zap.String("verb", cmd.Verb),
		zap.Strings("direct", cmd.DirectObjects),
		zap.String("preposition", cmd.Preposition),
	)

	if !r.vocab.ValidVerbPreposition(cmd.Verb, cmd.Preposition) {
		return r.respond(sess, r.text.InvalidPreposition(cmd.Verb, cmd.Preposition), false)
	}

	if cmd.IsMovement() {
		return r.respond(sess, r.move(sess, cmd.Direction), false)
	}
	if cmd.Verb == vocab.VerbGo {
		dir := cmd.DirectObject()
		if dir == "" {
			dir = cmd.IndirectObject()
		}
		if dir != "" && r.vocab.IsDirection(dir) {
			return r.respond(sess, r.move(sess, r.vocab.NormalizeDirection(dir)), false)
		}
		return r.respond(sess, r.text.BlockedMovement(dir), false)
	}

	switch cmd.Verb {
	case vocab.VerbRestart:
		sess.State = StateAwaitingRestartConfirm
		return r.respond(sess, r.text.RestartPrompt(), false)
	case vocab.VerbQuit:
		sess.State = StateAwaitingQuitConfirm
		return r.respond(sess, r.text.QuitPrompt(), false)
	}

	if resp, handled := r.dispatcher.Dispatch(sess, cmd); handled {
		return r.respond(sess, resp, false)
	}
	return r.respond(sess, r.text.NotUnderstood(), false)
}

func (r *Runtime) move(sess *Session, direction string) string {
	destID, ok := sess.Location.ExitTo(direction)
	if !ok {
		return r.text.BlockedMovement(direction)
	}
	dest, ok := sess.World.Location(destID)
	if !ok {
		return r.text.BlockedMovement(direction)
	}
	if l := dest.LockState(); l != nil && l.RequiresUnlock && !l.Unlocked {
		return r.text.LockedExit(dest.Title)
	}

	sess.Location = dest
	if !dest.Visited {
		dest.Visited = true
	}
	return r.text.Look(dest)
}

// reset rebuilds the session's play state from scratch: a fresh world
// spawn clears visited flags and location-owned containment, and the
// session-side state empties.
func (r *Runtime) reset(sess *Session) {
	w := r.def.Spawn()
	sess.World = w
	sess.Location = w.Start()
	sess.Inventory = nil
	sess.PendingLockable = nil
	sess.LastReferenced = nil
	sess.ClearContainment()
	sess.ResetHints()
}

func (r *Runtime) respond(sess *Session, textOut string, done bool) Response {
	resp := Response{
		Text:  textOut,
		State: sess.State.String(),
		Done:  done,
	}
	if sess.State == StatePlaying {
		resp.Exits = sess.Location.ExitDirections()
	}
	return resp
}

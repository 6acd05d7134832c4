// Package text renders response situations to player-facing strings. Game
// logic reports outcomes; only this package decides wording, so every piece
// of display text lives in one place.
package text

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fablecore/fable/internal/game/lock"
	"github.com/fablecore/fable/internal/game/world"
)

// Provider renders each response situation. The session core depends on
// this interface so wording can be swapped without touching game logic.
type Provider interface {
	// NotUnderstood covers input the parser produced no usable command from.
	NotUnderstood() string
	// InvalidPreposition covers a verb paired with a preposition it does
	// not accept, such as "take in".
	InvalidPreposition(verb, prep string) string

	// Look renders a location: title, description, loose items, and exits.
	Look(loc *world.Location) string
	// BlockedMovement covers a direction with no exit.
	BlockedMovement(direction string) string
	// LockedExit covers movement into a location still held shut.
	LockedExit(title string) string

	// Examine renders an entity description.
	Examine(e world.Entity, description string) string
	// NothingSpecial covers examining an entity with no description.
	NothingSpecial(name string) string

	TakeSuccess(name string) string
	TakeFixed(name string) string
	AlreadyHeld(name string) string
	DropSuccess(name string) string
	NotHolding(name string) string
	PutSuccess(item, container, prep string) string
	NotAContainer(name string) string
	ContainerClosed(name string) string

	Inventory(names []string) string

	// NotPresent covers a named object that does not exist in scope.
	NotPresent(name string) string
	// Ambiguous covers several candidates matching one name.
	Ambiguous(name string) string
	// AmbiguousImplied covers implied resolution with several candidates.
	AmbiguousImplied(verb string) string
	// NothingToInfer covers implied resolution with no candidate at all.
	NothingToInfer(verb string) string
	// NotLockable covers unlock or open aimed at something without a lock.
	NotLockable(name string) string

	// LockResult renders an unlock or open attempt outcome.
	LockResult(outcome lock.Outcome, name string) string

	// Welcome greets a new session and asks whether the player has been
	// here before.
	Welcome() string
	// Intro is the full introduction for first-time players.
	Intro(start *world.Location) string
	// IntroBrief is the short form for returning players.
	IntroBrief(start *world.Location) string

	RestartPrompt() string
	RestartDone(start *world.Location) string
	QuitPrompt() string
	Farewell() string
	ConfirmCancelled() string

	Hint(hint string) string
	NoMoreHints() string
	Help() string
}

// English is the default Provider.
type English struct{}

var _ Provider = English{}

func (English) NotUnderstood() string {
	return "I don't understand that. Try HELP for a list of things you can do."
}

func (English) InvalidPreposition(verb, prep string) string {
	return fmt.Sprintf("You can't %s %s something.", verb, prep)
}

// Look renders the canonical location view. Items resting in a closed
// container stay hidden; everything else loose is listed.
func (English) Look(loc *world.Location) string {
	var b strings.Builder
	b.WriteString(loc.Title)
	b.WriteString("\n")
	b.WriteString(loc.Description)

	var loose []string
	for _, it := range loc.Items {
		if c, ok := loc.ContainerOf(it); ok {
			if l, lockable := c.(world.Lockable); lockable {
				if ls := l.LockState(); ls != nil && !ls.Open {
					continue
				}
			}
			loose = append(loose, fmt.Sprintf("a %s (in the %s)", it.Name, c.DisplayName()))
			continue
		}
		if !it.Fixed {
			loose = append(loose, "a "+it.Name)
		}
	}
	if len(loose) > 0 {
		b.WriteString("\nYou can see ")
		b.WriteString(joinNatural(loose))
		b.WriteString(" here.")
	}

	if dirs := loc.ExitDirections(); len(dirs) > 0 {
		sort.Strings(dirs)
		b.WriteString("\nExits: ")
		b.WriteString(strings.Join(dirs, ", "))
		b.WriteString(".")
	}
	return b.String()
}

func (English) BlockedMovement(direction string) string {
	return fmt.Sprintf("You can't go %s from here.", direction)
}

func (English) LockedExit(title string) string {
	return fmt.Sprintf("The way to %s is locked.", title)
}

func (English) Examine(e world.Entity, description string) string {
	return description
}

func (English) NothingSpecial(name string) string {
	return fmt.Sprintf("You see nothing special about the %s.", name)
}

func (English) TakeSuccess(name string) string {
	return fmt.Sprintf("You take the %s.", name)
}

func (English) TakeFixed(name string) string {
	return fmt.Sprintf("The %s won't budge.", name)
}

func (English) AlreadyHeld(name string) string {
	return fmt.Sprintf("You're already carrying the %s.", name)
}

func (English) DropSuccess(name string) string {
	return fmt.Sprintf("You drop the %s.", name)
}

func (English) NotHolding(name string) string {
	return fmt.Sprintf("You're not carrying a %s.", name)
}

func (English) PutSuccess(item, container, prep string) string {
	if prep == "on" || prep == "onto" {
		return fmt.Sprintf("You put the %s on the %s.", item, container)
	}
	return fmt.Sprintf("You put the %s in the %s.", item, container)
}

func (English) NotAContainer(name string) string {
	return fmt.Sprintf("You can't put anything in the %s.", name)
}

func (English) ContainerClosed(name string) string {
	return fmt.Sprintf("The %s is closed.", name)
}

func (English) Inventory(names []string) string {
	if len(names) == 0 {
		return "You're not carrying anything."
	}
	items := make([]string, len(names))
	for i, n := range names {
		items[i] = "a " + n
	}
	return "You are carrying " + joinNatural(items) + "."
}

func (English) NotPresent(name string) string {
	return fmt.Sprintf("There's no %s here.", name)
}

func (English) Ambiguous(name string) string {
	return fmt.Sprintf("Which %s do you mean?", name)
}

func (English) AmbiguousImplied(verb string) string {
	return fmt.Sprintf("What do you want to %s?", verb)
}

func (English) NothingToInfer(verb string) string {
	return fmt.Sprintf("There's nothing here to %s.", verb)
}

func (English) NotLockable(name string) string {
	return fmt.Sprintf("The %s doesn't lock or unlock.", name)
}

func (English) LockResult(outcome lock.Outcome, name string) string {
	switch outcome {
	case lock.Unlocked:
		return fmt.Sprintf("You unlock the %s.", name)
	case lock.Opened:
		return fmt.Sprintf("You open the %s.", name)
	case lock.UnlockedAndOpened:
		return fmt.Sprintf("You unlock and open the %s.", name)
	case lock.AlreadyUnlocked:
		return fmt.Sprintf("The %s is already unlocked.", name)
	case lock.AlreadyOpen:
		return fmt.Sprintf("The %s is already open.", name)
	case lock.NotLocked:
		return fmt.Sprintf("The %s isn't locked.", name)
	case lock.CodePrompt:
		return fmt.Sprintf("The %s needs a code. What is it?", name)
	case lock.WrongCode:
		return "That code doesn't work."
	case lock.MissingKey:
		return fmt.Sprintf("You don't have anything that fits the %s.", name)
	case lock.LockedCannotOpen:
		return fmt.Sprintf("The %s is locked.", name)
	default:
		return fmt.Sprintf("Nothing happens to the %s.", name)
	}
}

func (English) Welcome() string {
	return "Welcome to Fable. Have you played before? (yes/no)"
}

func (e English) Intro(start *world.Location) string {
	return "You wake with no memory of how you got here. Type commands like " +
		"LOOK, TAKE, GO NORTH, or EXAMINE to find your way. Type HELP at any " +
		"time for a refresher, or HINT if you're stuck.\n\n" + e.Look(start)
}

func (e English) IntroBrief(start *world.Location) string {
	return "Welcome back.\n\n" + e.Look(start)
}

func (English) RestartPrompt() string {
	return "Restart from the beginning? All progress will be lost. (yes/no)"
}

func (e English) RestartDone(start *world.Location) string {
	return "The world re-forms around you.\n\n" + e.Look(start)
}

func (English) QuitPrompt() string {
	return "Really quit? (yes/no)"
}

func (English) Farewell() string {
	return "Goodbye."
}

func (English) ConfirmCancelled() string {
	return "Okay, carrying on."
}

func (English) Hint(hint string) string {
	return "Hint: " + hint
}

func (English) NoMoreHints() string {
	return "That's every hint there is for now. You're on your own."
}

func (English) Help() string {
	return strings.Join([]string{
		"Things you can do:",
		"  go <direction>        move (or just type north, n, up, ...)",
		"  look                  describe where you are",
		"  examine <object>      inspect something closely",
		"  take / drop <object>  pick things up and put them down",
		"  put <object> in <container>",
		"  open / unlock <object>",
		"  inventory (i)         list what you're carrying",
		"  hint                  get a nudge when stuck",
		"  restart / quit",
	}, "\n")
}

// joinNatural joins names as prose: "a, b and c".
func joinNatural(parts []string) string {
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	default:
		return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
	}
}

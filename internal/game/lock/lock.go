// Package lock implements the unlock/open protocol shared by held items,
// location items and scenery, and locations, plus the tiered candidate
// discovery the unlock and open commands rely on.
package lock

import (
	"strings"

	"github.com/fablecore/fable/internal/game/world"
)

// Outcome classifies an unlock or open attempt. Outcomes are behavioral
// contract, not display text; the text provider renders them.
type Outcome int

const (
	// Unlocked: the lock was locked and is now unlocked.
	Unlocked Outcome = iota
	// Opened: the entity was closed (and already unlocked) and is now open.
	Opened
	// UnlockedAndOpened: a single open attempt both unlocked and opened.
	UnlockedAndOpened
	// AlreadyUnlocked: unlock attempted on an unlocked lock.
	AlreadyUnlocked
	// AlreadyOpen: open attempted on an open entity.
	AlreadyOpen
	// NotLocked: unlock attempted on an entity that never locks.
	NotLocked
	// CodePrompt: a code-based lock needs an answer the player has not
	// given; the session should enter a code-wait state.
	CodePrompt
	// WrongCode: the provided answer did not match the code.
	WrongCode
	// MissingKey: the required key item is not in the player's inventory
	// (or the player offered something that is not the key).
	MissingKey
	// LockedCannotOpen: open attempted while the unlock precondition holds
	// it shut; no state changed.
	LockedCannotOpen
)

// Attempt is the result of one unlock or open attempt.
type Attempt struct {
	Success bool
	Outcome Outcome
}

// KeyHolder answers whether the player carries a named item. The session's
// inventory implements it.
type KeyHolder interface {
	HoldsItemNamed(name string) bool
}

// TryUnlock applies the unlock rule chain to a lock.
//
// Postcondition: On success the lock is unlocked; on failure no state
// changed. Never returns an error; every outcome is a response situation.
func TryUnlock(l *world.Lock, holder KeyHolder, answer string) Attempt {
	if l == nil || !l.RequiresUnlock {
		return Attempt{Outcome: NotLocked}
	}
	if l.Unlocked {
		return Attempt{Outcome: AlreadyUnlocked}
	}

	att := checkUnlockPrecondition(l, holder, answer)
	if att.Success {
		l.Unlocked = true
		return Attempt{Success: true, Outcome: Unlocked}
	}
	return att
}

// TryOpen applies the open rule chain, auto-unlocking when the unlock
// precondition is met so a closed-and-locked entity opens in one step.
//
// Postcondition: Open never becomes true while Unlocked is false.
func TryOpen(l *world.Lock, holder KeyHolder, answer string) Attempt {
	if l == nil {
		return Attempt{Outcome: NotLocked}
	}
	if l.Open {
		return Attempt{Outcome: AlreadyOpen}
	}

	if l.RequiresUnlock && !l.Unlocked {
		att := checkUnlockPrecondition(l, holder, answer)
		if !att.Success {
			if att.Outcome == CodePrompt || att.Outcome == WrongCode {
				return att
			}
			return Attempt{Outcome: LockedCannotOpen}
		}
		l.Unlocked = true
		l.Open = true
		return Attempt{Success: true, Outcome: UnlockedAndOpened}
	}

	l.Open = true
	return Attempt{Success: true, Outcome: Opened}
}

// checkUnlockPrecondition evaluates the code or key rule without mutating
// the lock.
func checkUnlockPrecondition(l *world.Lock, holder KeyHolder, answer string) Attempt {
	if l.UsesCode() {
		if strings.TrimSpace(answer) == "" {
			return Attempt{Outcome: CodePrompt}
		}
		if !l.CodeMatches(answer) {
			return Attempt{Outcome: WrongCode}
		}
		return Attempt{Success: true}
	}

	// Key-based. Naming some other item is the same as having no key.
	a := strings.TrimSpace(answer)
	if a != "" && !strings.EqualFold(a, l.KeyName) {
		return Attempt{Outcome: MissingKey}
	}
	if holder == nil || !holder.HoldsItemNamed(l.KeyName) {
		return Attempt{Outcome: MissingKey}
	}
	return Attempt{Success: true}
}

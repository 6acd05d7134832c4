package world

import "strings"

// Lock holds the unlock/open state shared by lockable items, scenery, and
// locations. A lock is code-based when Code is non-empty, key-based
// otherwise. Invariant: Open implies Unlocked.
type Lock struct {
	// RequiresUnlock reports whether the entity locks at all. Containers
	// that merely open and close carry a Lock with RequiresUnlock false.
	RequiresUnlock bool
	// Code is the normalized secret token sequence for code-based locks.
	Code []string
	// KeyName names the inventory item that opens a key-based lock.
	KeyName string
	// Targets are the names the unlock/open commands match against. When
	// empty, the owning entity's own name and aliases are used.
	Targets []string
	// Unlocked is the current unlock state.
	Unlocked bool
	// Open is the current open state.
	Open bool
}

// UsesCode reports whether the lock is code-based.
func (l *Lock) UsesCode() bool { return len(l.Code) > 0 }

// MatchesTarget reports whether the requested name is in the lock's
// target-name set. Locks without explicit targets match nothing here; the
// owning entity's Matches applies instead.
func (l *Lock) MatchesTarget(name string) bool {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, t := range l.Targets {
		if strings.EqualFold(t, n) {
			return true
		}
	}
	return false
}

// CodeMatches compares a provided answer against the lock's code. Both
// sides are normalized with NormalizeCode, so "1, 2, 3, 4" matches the
// stored sequence ["1" "2" "3" "4"].
func (l *Lock) CodeMatches(answer string) bool {
	provided := NormalizeCode(answer)
	if len(provided) != len(l.Code) {
		return false
	}
	for i, tok := range provided {
		if !strings.EqualFold(tok, l.Code[i]) {
			return false
		}
	}
	return len(provided) > 0
}

// NormalizeCode splits a code string on commas and whitespace into its
// token sequence. Empty tokens are dropped; a string with no tokens
// normalizes to nil.
func NormalizeCode(code string) []string {
	tokens := strings.FieldsFunc(code, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}

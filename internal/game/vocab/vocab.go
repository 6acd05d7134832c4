// Package vocab provides the vocabulary tables that map player words to
// canonical verbs and directions, classify articles, prepositions, and
// pronouns, and validate verb-preposition combinations.
package vocab

import (
	"strings"
	"sync"
)

// Canonical verbs recognized by the built-in command set.
const (
	VerbTake      = "take"
	VerbDrop      = "drop"
	VerbPut       = "put"
	VerbGo        = "go"
	VerbLook      = "look"
	VerbExamine   = "examine"
	VerbOpen      = "open"
	VerbUnlock    = "unlock"
	VerbInventory = "inventory"
	VerbHint      = "hint"
	VerbHelp      = "help"
	VerbRestart   = "restart"
	VerbQuit      = "quit"
)

// CoreVerbs lists every canonical verb with a built-in handler.
var CoreVerbs = []string{
	VerbTake, VerbDrop, VerbPut, VerbGo, VerbLook, VerbExamine,
	VerbOpen, VerbUnlock, VerbInventory, VerbHint, VerbHelp,
	VerbRestart, VerbQuit,
}

// Vocabulary holds the process-wide word tables. All methods are safe for
// concurrent use; registration is expected to be rare relative to lookups.
type Vocabulary struct {
	mu           sync.RWMutex
	verbs        map[string]string // synonym → canonical verb
	directions   map[string]string // synonym → canonical direction
	articles     map[string]bool
	prepositions map[string]bool
	pronouns     map[string]bool
	verbPreps    map[string]map[string]bool // canonical verb → allowed prepositions
}

// New creates a Vocabulary seeded with the default tables.
//
// Postcondition: Returns a non-nil Vocabulary ready for lookups.
func New() *Vocabulary {
	v := &Vocabulary{
		verbs: map[string]string{
			"get":     VerbTake,
			"grab":    VerbTake,
			"pick":    VerbTake,
			"discard": VerbDrop,
			"place":   VerbPut,
			"insert":  VerbPut,
			"walk":    VerbGo,
			"move":    VerbGo,
			"run":     VerbGo,
			"head":    VerbGo,
			"travel":  VerbGo,
			"l":       VerbLook,
			"x":       VerbExamine,
			"inspect": VerbExamine,
			"check":   VerbExamine,
			"study":   VerbExamine,
			"i":       VerbInventory,
			"inv":     VerbInventory,
			"exit":    VerbQuit,
			"clue":    VerbHint,
			"?":       VerbHelp,
		},
		directions: map[string]string{
			"n":  DirNorth,
			"s":  DirSouth,
			"e":  DirEast,
			"w":  DirWest,
			"ne": DirNortheast,
			"nw": DirNorthwest,
			"se": DirSoutheast,
			"sw": DirSouthwest,
			"u":  DirUp,
			"d":  DirDown,
		},
		articles: map[string]bool{
			"the": true, "a": true, "an": true,
		},
		prepositions: map[string]bool{
			"in": true, "into": true, "on": true, "onto": true,
			"at": true, "to": true, "with": true, "using": true,
			"from": true, "under": true, "behind": true, "around": true,
			"up": true, "down": true, "out": true,
		},
		pronouns: map[string]bool{
			"it": true, "that": true, "this": true, "them": true,
		},
		verbPreps: map[string]map[string]bool{
			VerbPut:    {"in": true, "into": true, "on": true, "onto": true},
			VerbTake:   {"from": true},
			VerbLook:   {"at": true, "around": true},
			VerbOpen:   {"with": true, "using": true},
			VerbUnlock: {"with": true, "using": true},
		},
	}
	for _, dir := range Directions {
		v.directions[dir] = dir
	}
	return v
}

// Canonical compass and vertical/portal directions.
const (
	DirNorth     = "north"
	DirSouth     = "south"
	DirEast      = "east"
	DirWest      = "west"
	DirNortheast = "northeast"
	DirNorthwest = "northwest"
	DirSoutheast = "southeast"
	DirSouthwest = "southwest"
	DirUp        = "up"
	DirDown      = "down"
	DirIn        = "in"
	DirOut       = "out"
)

// Directions lists every canonical direction.
var Directions = []string{
	DirNorth, DirSouth, DirEast, DirWest,
	DirNortheast, DirNorthwest, DirSoutheast, DirSouthwest,
	DirUp, DirDown, DirIn, DirOut,
}

func normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// NormalizeVerb maps a player word to its canonical verb. Unknown words are
// returned lower-cased and trimmed; normalization never fails.
func (v *Vocabulary) NormalizeVerb(word string) string {
	w := normalize(word)
	v.mu.RLock()
	defer v.mu.RUnlock()
	if canonical, ok := v.verbs[w]; ok {
		return canonical
	}
	return w
}

// NormalizeDirection maps a player word to its canonical direction, with the
// same identity fallback as NormalizeVerb.
func (v *Vocabulary) NormalizeDirection(word string) string {
	w := normalize(word)
	v.mu.RLock()
	defer v.mu.RUnlock()
	if canonical, ok := v.directions[w]; ok {
		return canonical
	}
	return w
}

// IsArticle reports whether word is an article.
func (v *Vocabulary) IsArticle(word string) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.articles[normalize(word)]
}

// IsPreposition reports whether word is a recognized preposition.
func (v *Vocabulary) IsPreposition(word string) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.prepositions[normalize(word)]
}

// IsDirection reports whether word maps to a canonical direction.
func (v *Vocabulary) IsDirection(word string) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	_, ok := v.directions[normalize(word)]
	return ok
}

// IsPronoun reports whether word is an object pronoun ("it", "that", ...).
func (v *Vocabulary) IsPronoun(word string) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.pronouns[normalize(word)]
}

// StripArticles removes every article from a phrase, preserving the order
// and spacing of the remaining words.
func (v *Vocabulary) StripArticles(phrase string) string {
	words := strings.Fields(phrase)
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if !v.IsArticle(w) {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

// ValidVerbPreposition reports whether the preposition may follow the verb.
// Verbs without a whitelist entry accept any preposition; the whitelist is
// open by policy so content-defined verbs work without registration.
func (v *Vocabulary) ValidVerbPreposition(verb, preposition string) bool {
	if preposition == "" {
		return true
	}
	cv := v.NormalizeVerb(verb)
	p := normalize(preposition)
	v.mu.RLock()
	defer v.mu.RUnlock()
	allowed, ok := v.verbPreps[cv]
	if !ok {
		return true
	}
	return allowed[p]
}

// TreatAsDirection resolves words that are both directions and prepositions
// ("up", "down", "to", "in", "out"). After the movement verb the word is a
// direction; otherwise "up"/"down" default to direction and "to"/"in"/"out"
// default to preposition. Unambiguous words classify by table membership.
func (v *Vocabulary) TreatAsDirection(word, precedingVerb string) bool {
	w := normalize(word)
	if !v.IsDirection(w) {
		return false
	}
	if !v.IsPreposition(w) {
		return true
	}
	if v.NormalizeVerb(precedingVerb) == VerbGo {
		return true
	}
	switch w {
	case DirUp, DirDown:
		return true
	default:
		return false
	}
}

// RegisterVerb adds synonyms for a canonical verb at runtime. The canonical
// form always maps to itself so registered verbs survive re-normalization.
//
// Precondition: canonical must be non-empty.
func (v *Vocabulary) RegisterVerb(canonical string, synonyms ...string) {
	c := normalize(canonical)
	v.mu.Lock()
	defer v.mu.Unlock()
	v.verbs[c] = c
	for _, s := range synonyms {
		v.verbs[normalize(s)] = c
	}
}

// RegisterDirection adds synonyms for a canonical direction at runtime.
//
// Precondition: canonical must be non-empty.
func (v *Vocabulary) RegisterDirection(canonical string, synonyms ...string) {
	c := normalize(canonical)
	v.mu.Lock()
	defer v.mu.Unlock()
	v.directions[c] = c
	for _, s := range synonyms {
		v.directions[normalize(s)] = c
	}
}

// RegisterVerbPreposition extends the whitelist for a canonical verb.
// Registering any preposition for a verb makes that verb's whitelist closed.
func (v *Vocabulary) RegisterVerbPreposition(verb string, prepositions ...string) {
	cv := v.NormalizeVerb(verb)
	v.mu.Lock()
	defer v.mu.Unlock()
	allowed, ok := v.verbPreps[cv]
	if !ok {
		allowed = make(map[string]bool, len(prepositions))
		v.verbPreps[cv] = allowed
	}
	for _, p := range prepositions {
		allowed[normalize(p)] = true
	}
}

// Package command provides the parser that turns a raw input line into a
// structured command record.
package command

import (
	"strings"

	"github.com/fablecore/fable/internal/game/vocab"
)

// Command is the structured form of one input line. It is built once per
// turn and read-only thereafter.
type Command struct {
	// Verb is the canonical, lower-cased verb. Empty for blank input.
	Verb string
	// DirectObjects are the object phrases before any preposition.
	DirectObjects []string
	// IndirectObjects are the object phrases after the preposition.
	IndirectObjects []string
	// Preposition is the recognized preposition splitting the spans, if any.
	Preposition string
	// Direction is set for the movement shape (bare direction or "go <dir>").
	Direction string
	// Compound reports whether a span listed several objects joined by "and".
	Compound bool
	// Original is the raw input line as typed.
	Original string
}

// IsEmpty reports whether the input contained no verb.
func (c *Command) IsEmpty() bool { return c.Verb == "" }

// IsMovement reports whether the input was a bare direction or "go <dir>".
func (c *Command) IsMovement() bool { return c.Direction != "" }

// DirectObject returns the first direct object phrase, or "".
func (c *Command) DirectObject() string {
	if len(c.DirectObjects) == 0 {
		return ""
	}
	return c.DirectObjects[0]
}

// IndirectObject returns the first indirect object phrase, or "".
func (c *Command) IndirectObject() string {
	if len(c.IndirectObjects) == 0 {
		return ""
	}
	return c.IndirectObjects[0]
}

// Parse segments a raw input line into a Command using the vocabulary for
// verb normalization, preposition recognition, and article stripping.
//
// Postcondition: Returns a non-nil Command. Blank input yields an empty
// verb, never an error; player mistakes are downstream responses.
func Parse(v *vocab.Vocabulary, raw string) *Command {
	cmd := &Command{Original: raw}

	tokens := strings.Fields(strings.ToLower(strings.TrimSpace(raw)))
	if len(tokens) == 0 {
		return cmd
	}

	// Bare direction shortcut: "north", "n", "out".
	if len(tokens) == 1 && v.IsDirection(tokens[0]) {
		cmd.Verb = vocab.VerbGo
		cmd.Direction = v.NormalizeDirection(tokens[0])
		return cmd
	}

	cmd.Verb = v.NormalizeVerb(tokens[0])
	rest := tokens[1:]

	// "go <direction>" with no further tokens is the movement shape.
	if cmd.Verb == vocab.VerbGo && len(rest) == 1 && v.TreatAsDirection(rest[0], cmd.Verb) {
		cmd.Direction = v.NormalizeDirection(rest[0])
		return cmd
	}

	// Split on the first recognized preposition, honoring the
	// direction/preposition ambiguity rule for words like "up" and "in".
	direct := rest
	var indirect []string
	for i, tok := range rest {
		if v.IsPreposition(tok) && !v.TreatAsDirection(tok, cmd.Verb) {
			cmd.Preposition = tok
			direct = rest[:i]
			indirect = rest[i+1:]
			break
		}
	}

	cmd.DirectObjects = splitObjects(v, direct)
	cmd.IndirectObjects = splitObjects(v, indirect)
	cmd.Compound = len(cmd.DirectObjects) > 1 || len(cmd.IndirectObjects) > 1

	return cmd
}

// splitObjects strips articles from a token span and splits it into object
// phrases on the word "and". A span with no "and" stays a single joined
// phrase: "unlock lockbox 1234" parses as the one object "lockbox 1234",
// not as object plus code. Codes must be introduced with an explicit
// preposition ("unlock lockbox with 1234"); this is a deliberate parser
// limitation kept for compatibility with existing content.
func splitObjects(v *vocab.Vocabulary, span []string) []string {
	var objects []string
	var current []string

	flush := func() {
		if len(current) > 0 {
			objects = append(objects, strings.Join(current, " "))
			current = current[:0]
		}
	}

	for _, tok := range span {
		switch {
		case tok == "and":
			flush()
		case v.IsArticle(tok):
			// dropped
		default:
			current = append(current, tok)
		}
	}
	flush()

	return objects
}

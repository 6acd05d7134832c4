package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/fablecore/fable/internal/game/vocab"
)

func TestParse_Empty(t *testing.T) {
	v := vocab.New()

	for _, input := range []string{"", "   ", "\t"} {
		cmd := Parse(v, input)
		require.NotNil(t, cmd)
		assert.True(t, cmd.IsEmpty(), "input %q", input)
		assert.Empty(t, cmd.DirectObjects)
	}
}

func TestParse_BareDirection(t *testing.T) {
	v := vocab.New()

	tests := []struct {
		input string
		want  string
	}{
		{"north", vocab.DirNorth},
		{"N", vocab.DirNorth},
		{"sw", vocab.DirSouthwest},
		{"up", vocab.DirUp},
		{"out", vocab.DirOut},
	}

	for _, tt := range tests {
		cmd := Parse(v, tt.input)
		assert.True(t, cmd.IsMovement(), "input %q", tt.input)
		assert.Equal(t, vocab.VerbGo, cmd.Verb)
		assert.Equal(t, tt.want, cmd.Direction)
	}
}

func TestParse_GoDirection(t *testing.T) {
	v := vocab.New()

	cmd := Parse(v, "go north")
	assert.True(t, cmd.IsMovement())
	assert.Equal(t, vocab.DirNorth, cmd.Direction)

	// Movement-verb synonyms take the same shape.
	cmd = Parse(v, "walk in")
	assert.True(t, cmd.IsMovement())
	assert.Equal(t, vocab.DirIn, cmd.Direction)
}

func TestParse_SimpleVerbObject(t *testing.T) {
	v := vocab.New()

	cmd := Parse(v, "take the brass key")
	assert.Equal(t, vocab.VerbTake, cmd.Verb)
	assert.Equal(t, []string{"brass key"}, cmd.DirectObjects)
	assert.Empty(t, cmd.IndirectObjects)
	assert.Empty(t, cmd.Preposition)
	assert.False(t, cmd.Compound)
	assert.Equal(t, "take the brass key", cmd.Original)
}

func TestParse_PrepositionSplit(t *testing.T) {
	v := vocab.New()

	cmd := Parse(v, "put the coin in the lockbox")
	assert.Equal(t, vocab.VerbPut, cmd.Verb)
	assert.Equal(t, []string{"coin"}, cmd.DirectObjects)
	assert.Equal(t, "in", cmd.Preposition)
	assert.Equal(t, []string{"lockbox"}, cmd.IndirectObjects)
}

func TestParse_CodeAfterPreposition(t *testing.T) {
	v := vocab.New()

	cmd := Parse(v, "unlock lockbox with 1, 2, 3, 4")
	assert.Equal(t, vocab.VerbUnlock, cmd.Verb)
	assert.Equal(t, []string{"lockbox"}, cmd.DirectObjects)
	assert.Equal(t, "with", cmd.Preposition)
	assert.Equal(t, []string{"1, 2, 3, 4"}, cmd.IndirectObjects)
}

// A trailing number with no preposition stays part of the object name.
// Codes must be introduced with "with"/"using".
func TestParse_NoPrepositionKeepsSingleObject(t *testing.T) {
	v := vocab.New()

	cmd := Parse(v, "unlock lockbox 1234")
	assert.Equal(t, []string{"lockbox 1234"}, cmd.DirectObjects)
	assert.Empty(t, cmd.Preposition)
	assert.Empty(t, cmd.IndirectObjects)
}

func TestParse_CompoundObjects(t *testing.T) {
	v := vocab.New()

	cmd := Parse(v, "take the key and the lamp")
	assert.Equal(t, []string{"key", "lamp"}, cmd.DirectObjects)
	assert.True(t, cmd.Compound)

	cmd = Parse(v, "take key and lamp from desk")
	assert.Equal(t, []string{"key", "lamp"}, cmd.DirectObjects)
	assert.Equal(t, "from", cmd.Preposition)
	assert.Equal(t, []string{"desk"}, cmd.IndirectObjects)
	assert.True(t, cmd.Compound)
}

func TestParse_AmbiguousWords(t *testing.T) {
	v := vocab.New()

	// "up" after a non-movement verb is still a direction word, so it does
	// not split the spans.
	cmd := Parse(v, "pick up lantern")
	assert.Equal(t, vocab.VerbTake, cmd.Verb)
	assert.Equal(t, []string{"up lantern"}, cmd.DirectObjects)

	// "in" after "put" is a preposition.
	cmd = Parse(v, "put coin in slot")
	assert.Equal(t, "in", cmd.Preposition)
	assert.Equal(t, []string{"slot"}, cmd.IndirectObjects)
}

func TestParse_LookAt(t *testing.T) {
	v := vocab.New()

	cmd := Parse(v, "look at the fireplace")
	assert.Equal(t, vocab.VerbLook, cmd.Verb)
	assert.Equal(t, "at", cmd.Preposition)
	assert.Empty(t, cmd.DirectObjects)
	assert.Equal(t, []string{"fireplace"}, cmd.IndirectObjects)
}

func TestParse_VerbOnly(t *testing.T) {
	v := vocab.New()

	cmd := Parse(v, "inventory")
	assert.Equal(t, vocab.VerbInventory, cmd.Verb)
	assert.False(t, cmd.IsMovement())
	assert.Empty(t, cmd.DirectObjects)
}

func TestPropertyParseDeterministic(t *testing.T) {
	v := vocab.New()
	rapid.Check(t, func(t *rapid.T) {
		line := rapid.StringMatching(`[a-z0-9,]{0,8}( [a-z0-9,]{1,8}){0,5}`).Draw(t, "line")
		first := Parse(v, line)
		second := Parse(v, line)
		if !assert.ObjectsAreEqual(first, second) {
			t.Fatalf("parse of %q not deterministic:\n%#v\n%#v", line, first, second)
		}
	})
}

func TestParse_ObjectListsNeverContainArticlesOrPreposition(t *testing.T) {
	v := vocab.New()

	cmd := Parse(v, "put the a an coin into an old chest")
	assert.Equal(t, []string{"coin"}, cmd.DirectObjects)
	assert.Equal(t, "into", cmd.Preposition)
	assert.Equal(t, []string{"old chest"}, cmd.IndirectObjects)
}

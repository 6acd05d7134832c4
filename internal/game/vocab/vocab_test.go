package vocab

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNormalizeVerb_Synonyms(t *testing.T) {
	v := New()

	tests := []struct {
		input string
		want  string
	}{
		{"get", VerbTake},
		{"GET", VerbTake},
		{"  grab  ", VerbTake},
		{"discard", VerbDrop},
		{"x", VerbExamine},
		{"l", VerbLook},
		{"inv", VerbInventory},
		{"take", VerbTake},
		{"frobnicate", "frobnicate"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, v.NormalizeVerb(tt.input), "input %q", tt.input)
	}
}

func TestNormalizeDirection_Synonyms(t *testing.T) {
	v := New()

	assert.Equal(t, DirNorth, v.NormalizeDirection("n"))
	assert.Equal(t, DirNorth, v.NormalizeDirection("North"))
	assert.Equal(t, DirSouthwest, v.NormalizeDirection("sw"))
	assert.Equal(t, DirUp, v.NormalizeDirection("u"))
	assert.Equal(t, "sideways", v.NormalizeDirection("sideways"))
}

func TestPropertyNormalizationIdempotent(t *testing.T) {
	v := New()
	rapid.Check(t, func(t *rapid.T) {
		word := rapid.StringMatching(`[A-Za-z?]{1,12}`).Draw(t, "word")
		once := v.NormalizeVerb(word)
		if twice := v.NormalizeVerb(once); twice != once {
			t.Fatalf("NormalizeVerb not idempotent: %q -> %q -> %q", word, once, twice)
		}
		onceDir := v.NormalizeDirection(word)
		if twiceDir := v.NormalizeDirection(onceDir); twiceDir != onceDir {
			t.Fatalf("NormalizeDirection not idempotent: %q -> %q -> %q", word, onceDir, twiceDir)
		}
	})
}

func TestPropertyRegisteredSynonymsRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := New()
		canonical := rapid.StringMatching(`[a-z]{3,10}`).Draw(t, "canonical")
		synonyms := rapid.SliceOfN(rapid.StringMatching(`[a-z]{2,10}`), 1, 4).Draw(t, "synonyms")
		v.RegisterVerb(canonical, synonyms...)

		for _, s := range synonyms {
			if got := v.NormalizeVerb(strings.ToUpper(s)); got != canonical {
				t.Fatalf("synonym %q normalized to %q, want %q", s, got, canonical)
			}
		}
		if got := v.NormalizeVerb(canonical); got != canonical {
			t.Fatalf("canonical %q normalized to %q", canonical, got)
		}
	})
}

func TestStripArticles(t *testing.T) {
	v := New()

	tests := []struct {
		input string
		want  string
	}{
		{"the brass key", "brass key"},
		{"a lamp", "lamp"},
		{"an old an rug", "old rug"},
		{"key", "key"},
		{"", ""},
		{"the the the", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, v.StripArticles(tt.input), "input %q", tt.input)
	}
}

func TestClassifiers(t *testing.T) {
	v := New()

	assert.True(t, v.IsArticle("The"))
	assert.False(t, v.IsArticle("key"))
	assert.True(t, v.IsPreposition("with"))
	assert.True(t, v.IsPreposition("onto"))
	assert.False(t, v.IsPreposition("lockbox"))
	assert.True(t, v.IsDirection("ne"))
	assert.True(t, v.IsDirection("out"))
	assert.False(t, v.IsDirection("with"))
	assert.True(t, v.IsPronoun("it"))
	assert.True(t, v.IsPronoun("THAT"))
	assert.False(t, v.IsPronoun("box"))
}

func TestValidVerbPreposition(t *testing.T) {
	v := New()

	tests := []struct {
		verb string
		prep string
		want bool
	}{
		{"put", "in", true},
		{"put", "into", true},
		{"put", "onto", true},
		{"put", "from", false},
		{"take", "from", true},
		{"take", "with", false},
		{"look", "at", true},
		{"look", "around", true},
		{"look", "under", false},
		{"open", "with", true},
		{"unlock", "using", true},
		{"unlock", "at", false},
		// Synonyms validate against their canonical verb.
		{"get", "from", true},
		{"get", "into", false},
		// Verbs without a whitelist accept anything.
		{"knock", "on", true},
		{"wave", "at", true},
		// Empty preposition is always valid.
		{"put", "", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, v.ValidVerbPreposition(tt.verb, tt.prep),
			"verb %q prep %q", tt.verb, tt.prep)
	}
}

func TestTreatAsDirection(t *testing.T) {
	v := New()

	tests := []struct {
		word string
		verb string
		want bool
	}{
		// After the movement verb, ambiguous words are directions.
		{"in", "go", true},
		{"out", "go", true},
		{"to", "go", false}, // "to" never maps to a direction
		{"up", "go", true},
		// Elsewhere up/down stay directions, in/out become prepositions.
		{"up", "look", true},
		{"down", "put", true},
		{"in", "put", false},
		{"out", "take", false},
		// Plain directions are directions regardless of verb.
		{"north", "put", true},
		{"ne", "look", true},
		// Plain prepositions are never directions.
		{"with", "go", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, v.TreatAsDirection(tt.word, tt.verb),
			"word %q after verb %q", tt.word, tt.verb)
	}
}

func TestRegisterDirection(t *testing.T) {
	v := New()
	v.RegisterDirection("starboard", "stbd")

	assert.Equal(t, "starboard", v.NormalizeDirection("STBD"))
	assert.True(t, v.IsDirection("starboard"))
}

func TestRegisterVerbPreposition(t *testing.T) {
	v := New()

	// "tie" starts with an open whitelist.
	require.True(t, v.ValidVerbPreposition("tie", "around"))

	v.RegisterVerbPreposition("tie", "to")
	assert.True(t, v.ValidVerbPreposition("tie", "to"))
	assert.False(t, v.ValidVerbPreposition("tie", "around"))
}

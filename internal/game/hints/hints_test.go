package hints

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBook(t *testing.T) *Book {
	t.Helper()
	b, err := NewBook(map[string][]string{
		"cellar": {
			"Something down here rattles when you walk past.",
			"The lockbox has four dials.",
			"Try the numbers scratched under the stairs: 1 2 3 4.",
		},
		"garden": {"The gate only looks rusted shut."},
	})
	require.NoError(t, err)
	return b
}

func TestHint_ClimbsLadder(t *testing.T) {
	b := testBook(t)

	h, ok := b.Hint("cellar", 0)
	require.True(t, ok)
	assert.Contains(t, h, "rattles")

	h, ok = b.Hint("cellar", 2)
	require.True(t, ok)
	assert.Contains(t, h, "1 2 3 4")

	_, ok = b.Hint("cellar", 3)
	assert.False(t, ok)
}

func TestHint_UnknownPhase(t *testing.T) {
	b := testBook(t)

	_, ok := b.Hint("attic", 0)
	assert.False(t, ok)
	assert.False(t, b.HasPhase("attic"))
	assert.Equal(t, 0, b.Levels("attic"))
}

func TestNewBook_Validation(t *testing.T) {
	_, err := NewBook(map[string][]string{"empty": {}})
	assert.Error(t, err)

	_, err = NewBook(map[string][]string{
		"deep": {"one", "two", "three", "four"},
	})
	assert.Error(t, err)
}

func TestLoadBytes(t *testing.T) {
	data := []byte(`
hints:
  - phase: cellar
    ladder:
      - Look closer at the stairs.
      - The code is scratched into the wood.
  - phase: garden
    ladder:
      - Push the gate.
`)
	b, err := LoadBytes(data)
	require.NoError(t, err)
	assert.Equal(t, 2, b.Levels("cellar"))
	assert.True(t, b.HasPhase("garden"))
}

func TestLoadBytes_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing phase name", "hints:\n  - ladder: [a]\n"},
		{"duplicate phase", "hints:\n  - phase: x\n    ladder: [a]\n  - phase: x\n    ladder: [b]\n"},
		{"empty ladder", "hints:\n  - phase: x\n    ladder: []\n"},
		{"bad yaml", "hints: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadBytes([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

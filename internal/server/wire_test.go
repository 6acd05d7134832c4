package server

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fablecore/fable/internal/game/session"
)

func TestNewEncoder(t *testing.T) {
	_, err := NewEncoder("json")
	assert.NoError(t, err)
	_, err = NewEncoder("text")
	assert.NoError(t, err)
	_, err = NewEncoder("xml")
	assert.Error(t, err)
}

func TestJSONEncoder(t *testing.T) {
	enc, err := NewEncoder("json")
	require.NoError(t, err)

	line, err := enc.Encode(session.Response{
		Text:  "You take the key.",
		State: "playing",
		Exits: []string{"north"},
	})
	require.NoError(t, err)

	var decoded session.Response
	require.NoError(t, json.Unmarshal([]byte(line), &decoded))
	assert.Equal(t, "You take the key.", decoded.Text)
	assert.Equal(t, "playing", decoded.State)
	assert.Equal(t, []string{"north"}, decoded.Exits)
	assert.False(t, decoded.Done)
}

func TestTextEncoder(t *testing.T) {
	enc, err := NewEncoder("text")
	require.NoError(t, err)

	line, err := enc.Encode(session.Response{Text: "The Hall\nExits: north.\n", State: "playing"})
	require.NoError(t, err)
	assert.Equal(t, "The Hall\nExits: north.", line)
}

package server

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fablecore/fable/internal/game/session"
)

// Encoder renders a runtime response to one wire line (without the
// trailing newline).
type Encoder interface {
	Encode(resp session.Response) (string, error)
}

// NewEncoder returns the encoder for a wire mode name: "json" or "text".
func NewEncoder(wire string) (Encoder, error) {
	switch wire {
	case "json":
		return jsonEncoder{}, nil
	case "text":
		return textEncoder{}, nil
	default:
		return nil, fmt.Errorf("unknown wire mode %q", wire)
	}
}

// jsonEncoder emits one JSON object per turn, newline-delimited.
type jsonEncoder struct{}

func (jsonEncoder) Encode(resp session.Response) (string, error) {
	b, err := json.Marshal(resp)
	if err != nil {
		return "", fmt.Errorf("encoding response: %w", err)
	}
	return string(b), nil
}

// textEncoder emits the display text as-is, with embedded newlines kept.
// Multi-line responses stay one write; the client renders them verbatim.
type textEncoder struct{}

func (textEncoder) Encode(resp session.Response) (string, error) {
	return strings.TrimRight(resp.Text, "\n"), nil
}

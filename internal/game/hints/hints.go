// Package hints provides the progressive hint book. Each game phase carries
// an ordered list of hints, vague first, and a session climbs the list one
// hint per request until the phase changes or the list runs out.
package hints

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MaxLevels caps how many hints a phase may carry.
const MaxLevels = 3

// Book holds every phase's hint ladder. A Book is immutable once built and
// safe for concurrent readers.
type Book struct {
	phases map[string][]string
}

// NewBook builds a Book from phase hint ladders.
//
// Postcondition: Returns an error if any phase is empty or exceeds
// MaxLevels hints.
func NewBook(phases map[string][]string) (*Book, error) {
	cp := make(map[string][]string, len(phases))
	for phase, ladder := range phases {
		if len(ladder) == 0 {
			return nil, fmt.Errorf("hint phase %q has no hints", phase)
		}
		if len(ladder) > MaxLevels {
			return nil, fmt.Errorf("hint phase %q has %d hints, max is %d", phase, len(ladder), MaxLevels)
		}
		cp[phase] = append([]string(nil), ladder...)
	}
	return &Book{phases: cp}, nil
}

// Hint returns the hint at a level within a phase. Levels start at zero;
// a request past the end of the ladder reports false so the caller can say
// the hints have run out.
func (b *Book) Hint(phase string, level int) (string, bool) {
	ladder, ok := b.phases[phase]
	if !ok || level < 0 {
		return "", false
	}
	if level >= len(ladder) {
		return "", false
	}
	return ladder[level], true
}

// Levels returns how many hints a phase carries.
func (b *Book) Levels(phase string) int {
	return len(b.phases[phase])
}

// HasPhase reports whether the book knows a phase.
func (b *Book) HasPhase(phase string) bool {
	_, ok := b.phases[phase]
	return ok
}

type yamlHintFile struct {
	Hints []yamlHintPhase `yaml:"hints"`
}

type yamlHintPhase struct {
	Phase  string   `yaml:"phase"`
	Ladder []string `yaml:"ladder"`
}

// LoadFile reads a hint book from a YAML file.
func LoadFile(path string) (*Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read hint file %s: %w", path, err)
	}
	b, err := LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("load hint file %s: %w", path, err)
	}
	return b, nil
}

// LoadBytes parses YAML hint content and builds a validated Book.
func LoadBytes(data []byte) (*Book, error) {
	var f yamlHintFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse hints: %w", err)
	}
	phases := make(map[string][]string, len(f.Hints))
	for _, p := range f.Hints {
		if p.Phase == "" {
			return nil, fmt.Errorf("hint entry missing phase name")
		}
		if _, dup := phases[p.Phase]; dup {
			return nil, fmt.Errorf("duplicate hint phase %q", p.Phase)
		}
		phases[p.Phase] = p.Ladder
	}
	return NewBook(phases)
}

package world

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlWorldFile is the top-level YAML structure for world content files.
type yamlWorldFile struct {
	World yamlWorld `yaml:"world"`
}

type yamlWorld struct {
	Start     string         `yaml:"start"`
	Locations []yamlLocation `yaml:"locations"`
}

type yamlLocation struct {
	ID          string            `yaml:"id"`
	Title       string            `yaml:"title"`
	Description string            `yaml:"description"`
	Exits       map[string]string `yaml:"exits"`
	Items       []yamlItem        `yaml:"items"`
	Scenery     []yamlScenery     `yaml:"scenery"`
	Lock        *yamlLock         `yaml:"lock"`
}

type yamlItem struct {
	Name        string    `yaml:"name"`
	Aliases     []string  `yaml:"aliases"`
	Description string    `yaml:"description"`
	Fixed       bool      `yaml:"fixed"`
	Container   bool      `yaml:"container"`
	Within      string    `yaml:"within"`
	Lock        *yamlLock `yaml:"lock"`
}

type yamlScenery struct {
	Name        string            `yaml:"name"`
	Aliases     []string          `yaml:"aliases"`
	Description string            `yaml:"description"`
	Responses   map[string]string `yaml:"responses"`
	Container   bool              `yaml:"container"`
	Lock        *yamlLock         `yaml:"lock"`
}

type yamlLock struct {
	RequiresUnlock bool     `yaml:"requires_unlock"`
	Code           string   `yaml:"code"`
	Key            string   `yaml:"key"`
	Targets        []string `yaml:"targets"`
	Unlocked       bool     `yaml:"unlocked"`
	Open           bool     `yaml:"open"`
}

// LoadFile reads and validates a world content YAML file.
//
// Precondition: path must point to a world YAML file.
// Postcondition: Returns a validated Definition or a non-nil error.
func LoadFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading world file %s: %w", path, err)
	}
	return LoadBytes(data)
}

// LoadBytes parses and validates a world Definition from YAML bytes.
func LoadBytes(data []byte) (*Definition, error) {
	var file yamlWorldFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing world YAML: %w", err)
	}

	b := NewBuilder().Start(file.World.Start)
	for _, yl := range file.World.Locations {
		b.AddLocation(convertYAMLLocation(yl))
	}

	def, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("validating world: %w", err)
	}
	return def, nil
}

func convertYAMLLocation(yl yamlLocation) LocationDef {
	def := LocationDef{
		ID:          yl.ID,
		Title:       yl.Title,
		Description: yl.Description,
		Exits:       yl.Exits,
		Lock:        convertYAMLLock(yl.Lock),
	}
	for _, yi := range yl.Items {
		def.Items = append(def.Items, ItemDef{
			Name:        yi.Name,
			Aliases:     yi.Aliases,
			Description: yi.Description,
			Fixed:       yi.Fixed,
			Container:   yi.Container,
			Within:      yi.Within,
			Lock:        convertYAMLLock(yi.Lock),
		})
	}
	for _, ys := range yl.Scenery {
		def.Scenery = append(def.Scenery, SceneryDef{
			Name:        ys.Name,
			Aliases:     ys.Aliases,
			Description: ys.Description,
			Responses:   ys.Responses,
			Container:   ys.Container,
			Lock:        convertYAMLLock(ys.Lock),
		})
	}
	return def
}

func convertYAMLLock(yl *yamlLock) *LockDef {
	if yl == nil {
		return nil
	}
	return &LockDef{
		RequiresUnlock: yl.RequiresUnlock,
		Code:           yl.Code,
		Key:            yl.Key,
		Targets:        yl.Targets,
		Unlocked:       yl.Unlocked,
		Open:           yl.Open,
	}
}

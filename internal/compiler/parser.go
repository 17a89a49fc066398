package compiler

import (
	"fmt"

	"github.com/aretw0/wayfinder/internal/dto"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Parser is responsible for converting raw bytes into a MapFile.
type Parser struct {
	// Strict rejects unknown keys.
	Strict bool
}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{Strict: true}
}

// Parse decodes YAML (or JSON, which is valid YAML) content.
func (p *Parser) Parse(data []byte) (*dto.MapFile, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse map: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("failed to parse map: empty document")
	}

	var m dto.MapFile
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &m,
		WeaklyTypedInput: true,
		ErrorUnused:      p.Strict,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode map: %w", err)
	}

	// Basic validation
	if len(m.Screens) == 0 {
		return nil, fmt.Errorf("map declares no screens")
	}
	return &m, nil
}

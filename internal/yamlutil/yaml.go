// Package yamlutil decodes the server's YAML configuration files.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize bounds a config file at 1MB; anything larger is not a config
// file for this service.
const MaxInputSize = 1 << 20

var (
	ErrEmptyInput    = errors.New("yamlutil: empty input")
	ErrInputTooLarge = errors.New("yamlutil: input exceeds maximum size")
)

// DecodeStrict parses YAML into v, rejecting unknown fields so a typo in a
// config file fails loudly instead of silently falling back to defaults.
func DecodeStrict(data []byte, v any) error {
	if len(data) == 0 {
		return ErrEmptyInput
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

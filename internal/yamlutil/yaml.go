// Package yamlutil is the single place YAML is decoded: config files and
// article front matter both go through it.
package yamlutil

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize caps the bytes accepted by a single decode.
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

// Unmarshal decodes data into v, ignoring keys v does not declare.
func Unmarshal(data []byte, v any) error {
	return decode(data, v)
}

// UnmarshalOptional accepts blank input, as found in a front-matter block
// with no keys, and leaves v as it was.
func UnmarshalOptional(data []byte, v any) error {
	if v != nil && len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	return decode(data, v)
}

// UnmarshalStrict fails on keys v does not declare and on duplicate keys.
func UnmarshalStrict(data []byte, v any) error {
	return decode(data, v, yaml.Strict())
}

func decode(data []byte, v any, opts ...yaml.DecodeOption) error {
	switch {
	case v == nil:
		return ErrNilDestination
	case len(data) == 0:
		return ErrNilData
	case len(data) > MaxInputSize:
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if err := yaml.UnmarshalWithOptions(data, v, opts...); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

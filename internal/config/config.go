// Package config loads .solfmt.toml / .solfmt.yaml and turns it into
// printer options.
package config

import (
	"errors"
	"fmt"

	"solfmt/internal/format"
)

const (
	MinLineWidth = 20
	MaxLineWidth = 400
	MaxIndent    = 16
)

var (
	// ErrInvalidWidth is returned for a line width outside MinLineWidth..MaxLineWidth.
	ErrInvalidWidth = errors.New("invalid line width")
	// ErrInvalidIndent is returned for an indent width outside 1..MaxIndent.
	ErrInvalidIndent = errors.New("invalid indent width")
	// ErrUnknownKey is returned when a config file sets a key solfmt does not know.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrBadPattern is returned for an exclude pattern that does not compile.
	ErrBadPattern = errors.New("invalid exclude pattern")
)

// Config is the user-facing formatter configuration.
type Config struct {
	LineWidth           int      `toml:"line_width" yaml:"line_width"`
	IndentWidth         int      `toml:"indent_width" yaml:"indent_width"`
	UseTabs             bool     `toml:"use_tabs" yaml:"use_tabs"`
	AlignCalls          bool     `toml:"align_calls" yaml:"align_calls"`
	AlignStructFields   bool     `toml:"align_struct_fields" yaml:"align_struct_fields"`
	AlignStateVariables bool     `toml:"align_state_variables" yaml:"align_state_variables"`
	NormalizeLocations  bool     `toml:"normalize_locations" yaml:"normalize_locations"`
	Exclude             []string `toml:"exclude" yaml:"exclude"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	opt := format.DefaultOptions()
	return Config{
		LineWidth:           opt.MaxWidth,
		IndentWidth:         opt.IndentWidth,
		UseTabs:             opt.UseTabs,
		AlignCalls:          opt.AlignCalls,
		AlignStructFields:   opt.AlignStructFields,
		AlignStateVariables: opt.AlignStateVariables,
		NormalizeLocations:  opt.NormalizeLocations,
	}
}

// Validate checks ranges and exclude patterns.
func (c Config) Validate() error {
	if c.LineWidth < MinLineWidth || c.LineWidth > MaxLineWidth {
		return fmt.Errorf("%w: %d (want %d..%d)", ErrInvalidWidth, c.LineWidth, MinLineWidth, MaxLineWidth)
	}
	if c.IndentWidth < 1 || c.IndentWidth > MaxIndent {
		return fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidIndent, c.IndentWidth, MaxIndent)
	}
	if _, err := NewExcluder(c.Exclude); err != nil {
		return err
	}
	return nil
}

// FormatOptions converts c into printer options.
func (c Config) FormatOptions() format.Options {
	return format.Options{
		MaxWidth:            c.LineWidth,
		IndentWidth:         c.IndentWidth,
		UseTabs:             c.UseTabs,
		AlignCalls:          c.AlignCalls,
		AlignStructFields:   c.AlignStructFields,
		AlignStateVariables: c.AlignStateVariables,
		NormalizeLocations:  c.NormalizeLocations,
	}
}

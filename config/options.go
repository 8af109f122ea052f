// Package config defines CompilationOptions, the bounded-budget and
// behavioral knobs a Compilation is constructed with, grounded on the
// teacher's mods package (project config loaded from TOML via
// github.com/pelletier/go-toml), adapted from Chai module metadata to the
// flat option set spec.md §6 calls for.
package config

import (
	"fmt"

	"github.com/pelletier/go-toml"
)

// MinTypMax selects which leg of a `min:typ:max` delay/value expression a
// compilation resolves to. Only typ matters for constant folding of
// non-timing expressions, but the option exists for completeness per
// spec.md §6.
type MinTypMax string

const (
	MinTypMaxMin MinTypMax = "min"
	MinTypMaxTyp MinTypMax = "typ"
	MinTypMaxMax MinTypMax = "max"
)

// ParamOverride is one `name=value` top-level parameter override string,
// parsed but not yet evaluated. Elaboration accepts only a plain decimal
// integer Value (optionally negative) and applies it to every top module
// declaring a parameter of that name; any other Value is diagnosed.
type ParamOverride struct {
	Name  string
	Value string
}

// CompilationOptions carries every bounded-budget and behavioral knob
// spec.md §6 lists. The zero value is not valid; use DefaultOptions and
// override individual fields, or LoadOptionsFromTOML.
type CompilationOptions struct {
	MaxInstanceDepth      int
	MaxGenerateSteps      int
	MaxConstexprDepth     int
	MaxConstexprSteps     int
	MaxConstexprBacktrace int
	MaxDefParamSteps      int
	ErrorLimit            int
	TypoCorrectionLimit   int

	MinTypMax MinTypMax

	LintMode               bool
	SuppressUnused         bool
	DisableInstanceCaching bool

	// TopModules, when non-empty, names exactly the definitions elaborated
	// as top-level instances; empty means auto-detect (every module never
	// instantiated by another).
	TopModules []string

	ParamOverrides []ParamOverride
}

// DefaultOptions returns the option set with every default spec.md §6
// specifies.
func DefaultOptions() CompilationOptions {
	return CompilationOptions{
		MaxInstanceDepth:      512,
		MaxGenerateSteps:      65535,
		MaxConstexprDepth:     256,
		MaxConstexprSteps:     100000,
		MaxConstexprBacktrace: 10,
		MaxDefParamSteps:      128,
		ErrorLimit:            64,
		TypoCorrectionLimit:   32,
		MinTypMax:             MinTypMaxTyp,
	}
}

// tomlOptions mirrors CompilationOptions with toml tags, since the public
// struct's field names follow Go export conventions rather than the
// snake_case keys a slangcore.toml file uses.
type tomlOptions struct {
	MaxInstanceDepth       *int     `toml:"max_instance_depth"`
	MaxGenerateSteps       *int     `toml:"max_generate_steps"`
	MaxConstexprDepth      *int     `toml:"max_constexpr_depth"`
	MaxConstexprSteps      *int     `toml:"max_constexpr_steps"`
	MaxConstexprBacktrace  *int     `toml:"max_constexpr_backtrace"`
	MaxDefParamSteps       *int     `toml:"max_defparam_steps"`
	ErrorLimit             *int     `toml:"error_limit"`
	TypoCorrectionLimit    *int     `toml:"typo_correction_limit"`
	MinTypMax              *string  `toml:"min_typ_max"`
	LintMode               *bool    `toml:"lint_mode"`
	SuppressUnused         *bool    `toml:"suppress_unused"`
	DisableInstanceCaching *bool    `toml:"disable_instance_caching"`
	TopModules             []string `toml:"top_modules"`
	ParamOverrides         []string `toml:"param_overrides"`
}

// LoadOptionsFromTOML reads a slangcore.toml-shaped document and overlays it
// onto DefaultOptions(); a field absent from the document keeps its
// default. param_overrides entries are `name=value` strings, split here and
// stored as ParamOverride pairs.
func LoadOptionsFromTOML(data []byte) (CompilationOptions, error) {
	opts := DefaultOptions()

	var raw tomlOptions
	if err := toml.Unmarshal(data, &raw); err != nil {
		return opts, fmt.Errorf("config: parsing slangcore.toml: %w", err)
	}

	if raw.MaxInstanceDepth != nil {
		opts.MaxInstanceDepth = *raw.MaxInstanceDepth
	}
	if raw.MaxGenerateSteps != nil {
		opts.MaxGenerateSteps = *raw.MaxGenerateSteps
	}
	if raw.MaxConstexprDepth != nil {
		opts.MaxConstexprDepth = *raw.MaxConstexprDepth
	}
	if raw.MaxConstexprSteps != nil {
		opts.MaxConstexprSteps = *raw.MaxConstexprSteps
	}
	if raw.MaxConstexprBacktrace != nil {
		opts.MaxConstexprBacktrace = *raw.MaxConstexprBacktrace
	}
	if raw.MaxDefParamSteps != nil {
		opts.MaxDefParamSteps = *raw.MaxDefParamSteps
	}
	if raw.ErrorLimit != nil {
		opts.ErrorLimit = *raw.ErrorLimit
	}
	if raw.TypoCorrectionLimit != nil {
		opts.TypoCorrectionLimit = *raw.TypoCorrectionLimit
	}
	if raw.MinTypMax != nil {
		switch MinTypMax(*raw.MinTypMax) {
		case MinTypMaxMin, MinTypMaxTyp, MinTypMaxMax:
			opts.MinTypMax = MinTypMax(*raw.MinTypMax)
		default:
			return opts, fmt.Errorf("config: min_typ_max must be one of min/typ/max, got %q", *raw.MinTypMax)
		}
	}
	if raw.LintMode != nil {
		opts.LintMode = *raw.LintMode
	}
	if raw.SuppressUnused != nil {
		opts.SuppressUnused = *raw.SuppressUnused
	}
	if raw.DisableInstanceCaching != nil {
		opts.DisableInstanceCaching = *raw.DisableInstanceCaching
	}
	if len(raw.TopModules) > 0 {
		opts.TopModules = raw.TopModules
	}
	for _, ov := range raw.ParamOverrides {
		name, value, ok := splitOverride(ov)
		if !ok {
			return opts, fmt.Errorf("config: malformed param_overrides entry %q, want name=value", ov)
		}
		opts.ParamOverrides = append(opts.ParamOverrides, ParamOverride{Name: name, Value: value})
	}

	return opts, nil
}

func splitOverride(s string) (name, value string, ok bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == '=' {
			return s[:i], s[i+1:], true
		}
	}
	return "", "", false
}

// Package config loads shaderdec settings files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/multierr"

	"github.com/gogpu/shaderdec/decompiler"
	"github.com/gogpu/shaderdec/hlsl"
)

// File names searched by Load, in order of preference.
const (
	FileName       = "shaderdec.toml"
	HiddenFileName = ".shaderdec.toml"
)

// Config is the contents of a settings file. Unset fields are nil.
type Config struct {
	Decompiler Decompiler `toml:"decompiler"`
	Output     Output     `toml:"output"`

	// Path is the file the config was read from, empty for flag-only configs.
	Path string `toml:"-"`
}

// Decompiler holds simplification settings.
type Decompiler struct {
	ComplexityThreshold    *int  `toml:"complexity_threshold"`
	MinimumSimplifications *bool `toml:"minimum_simplifications"`
	LeafForwarding         *bool `toml:"leaf_forwarding"`
}

// Output holds code generation settings.
type Output struct {
	EntryPoint   *string `toml:"entry_point"`
	Declarations *bool   `toml:"declarations"`
	Indent       *string `toml:"indent"`
}

// LoadFile reads and validates the settings file at path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var c Config
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	c.Path = path

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &c, nil
}

// Load searches dir and its parents for a settings file. It returns an
// empty config when none is found.
func Load(dir string) (*Config, error) {
	path, err := Find(dir)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return &Config{}, nil
	}
	return LoadFile(path)
}

// Find returns the nearest settings file at or above dir, or "".
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		for _, name := range []string{FileName, HiddenFileName} {
			path := filepath.Join(dir, name)
			info, err := os.Stat(path)
			if err == nil && !info.IsDir() {
				return path, nil
			}
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				return "", fmt.Errorf("failed to stat %s: %w", path, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var err error
	if t := c.Decompiler.ComplexityThreshold; t != nil && *t < 0 {
		err = multierr.Append(err, fmt.Errorf("decompiler.complexity_threshold must not be negative, got %d", *t))
	}
	if e := c.Output.EntryPoint; e != nil {
		if *e == "" {
			err = multierr.Append(err, errors.New("output.entry_point must not be empty"))
		} else if hlsl.IsReserved(*e) {
			err = multierr.Append(err, fmt.Errorf("output.entry_point %q is a reserved word", *e))
		}
	}
	if i := c.Output.Indent; i != nil {
		for _, r := range *i {
			if r != ' ' && r != '\t' {
				err = multierr.Append(err, fmt.Errorf("output.indent must contain only spaces and tabs, got %q", *i))
				break
			}
		}
	}
	return err
}

// Merge overlays the fields set in o onto c.
func (c *Config) Merge(o *Config) {
	if o == nil {
		return
	}
	if o.Decompiler.ComplexityThreshold != nil {
		c.Decompiler.ComplexityThreshold = o.Decompiler.ComplexityThreshold
	}
	if o.Decompiler.MinimumSimplifications != nil {
		c.Decompiler.MinimumSimplifications = o.Decompiler.MinimumSimplifications
	}
	if o.Decompiler.LeafForwarding != nil {
		c.Decompiler.LeafForwarding = o.Decompiler.LeafForwarding
	}
	if o.Output.EntryPoint != nil {
		c.Output.EntryPoint = o.Output.EntryPoint
	}
	if o.Output.Declarations != nil {
		c.Output.Declarations = o.Output.Declarations
	}
	if o.Output.Indent != nil {
		c.Output.Indent = o.Output.Indent
	}
}

// ToOptions converts c to library options, starting from the defaults.
func (c *Config) ToOptions() (*decompiler.Options, *hlsl.Options) {
	dopts := decompiler.DefaultOptions()
	if t := c.Decompiler.ComplexityThreshold; t != nil && *t > 0 {
		dopts.ComplexityThreshold = *t
	}
	if m := c.Decompiler.MinimumSimplifications; m != nil {
		dopts.MinimumSimplifications = *m
	}
	if l := c.Decompiler.LeafForwarding; l != nil {
		dopts.LeafForwarding = *l
	}

	hopts := hlsl.DefaultOptions()
	if e := c.Output.EntryPoint; e != nil {
		hopts.EntryPoint = *e
	}
	if d := c.Output.Declarations; d != nil {
		hopts.Declarations = *d
	}
	if i := c.Output.Indent; i != nil {
		hopts.Indent = *i
	}
	return dopts, hopts
}

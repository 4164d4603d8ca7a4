// Package config loads Mamba's driver-level settings: codegen defaults,
// the lexer's indent width, and mambainspect's display options. None of
// this is consulted by the lexer/parser/irgen core directly (spec.md §6:
// "no configuration in core") — cmd/mamba and cmd/mambainspect read it and
// pass Codegen.TargetTriple and Codegen.EmitPrelude down to the generator as
// plain arguments. Codegen.DefaultIntWidth, Lexer.IndentWidth and the
// Inspect fields are loaded and saved but not read anywhere else; the
// lexer's indent width is fixed at 4. Ported from the
// teacher's config.Config (config/config.go): same
// DefaultConfig/Load/LoadFrom/Save/SaveTo shape over BurntSushi/toml, same
// platform-specific config-path convention.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config is Mamba's on-disk settings file.
type Config struct {
	Codegen struct {
		DefaultIntWidth int    `toml:"default_int_width"`
		TargetTriple    string `toml:"target_triple"`
		EmitPrelude     bool   `toml:"emit_prelude"`
	} `toml:"codegen"`

	Lexer struct {
		IndentWidth int `toml:"indent_width"`
	} `toml:"lexer"`

	Inspect struct {
		ColorOutput bool `toml:"color_output"`
		TokenWidth  int  `toml:"token_panel_width"`
		ASTWidth    int  `toml:"ast_panel_width"`
	} `toml:"inspect"`
}

// DefaultConfig returns a Config with every field set to Mamba's built-in
// default, matching the bare lexer/parser/irgen behavior the core package
// falls back to when never given a Config at all.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Codegen.DefaultIntWidth = 32
	cfg.Codegen.TargetTriple = ""
	cfg.Codegen.EmitPrelude = true

	cfg.Lexer.IndentWidth = 4

	cfg.Inspect.ColorOutput = true
	cfg.Inspect.TokenWidth = 40
	cfg.Inspect.ASTWidth = 40

	return cfg
}

// GetConfigPath returns the platform-specific config file path, creating
// its parent directory if necessary.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "mamba")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "mamba.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "mamba")

	default:
		return "mamba.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "mamba.toml"
	}

	return filepath.Join(configDir, "mamba.toml")
}

// Load loads configuration from the default config file.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from path, falling back to defaults if the
// file doesn't exist.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo writes the configuration to path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}

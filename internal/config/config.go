// Package config provides Viper-based configuration loading for the duel simulator.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Random source kinds accepted by random.source.
const (
	SourceCrypto = "crypto"
	SourceSeeded = "seeded"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// RandomConfig selects the randomness source wired into fighters.
type RandomConfig struct {
	// Source is "crypto" (default, non-reproducible) or "seeded".
	Source string `mapstructure:"source"`
	// Seed is the base seed for the seeded source. Each fighter receives its own
	// source derived from this value.
	Seed uint64 `mapstructure:"seed"`
	// LogDraws logs every random draw at debug level.
	LogDraws bool `mapstructure:"log_draws"`
}

// CombatConfig holds combat resolution settings.
type CombatConfig struct {
	// ZeroDamageReport makes BeAttacked report 0 regardless of the damage applied.
	ZeroDamageReport bool `mapstructure:"zero_damage_report"`
	// MaxTurns bounds a simulated duel.
	MaxTurns int `mapstructure:"max_turns"`
}

// ContentConfig locates fighter definitions on disk.
type ContentConfig struct {
	// FightersDir holds YAML fighter templates.
	FightersDir string `mapstructure:"fighters_dir"`
	// ScriptsDir holds Lua fighter variants; empty disables scripting.
	ScriptsDir string `mapstructure:"scripts_dir"`
	// InstructionLimit is the Lua opcode budget per script; 0 uses the default.
	InstructionLimit int `mapstructure:"instruction_limit"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Random  RandomConfig  `mapstructure:"random"`
	Combat  CombatConfig  `mapstructure:"combat"`
	Content ContentConfig `mapstructure:"content"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateRandom(c.Random); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateCombat(c.Combat); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateContent(c.Content); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateRandom(r RandomConfig) error {
	if r.Source != SourceCrypto && r.Source != SourceSeeded {
		return fmt.Errorf("random.source must be one of [crypto, seeded], got %q", r.Source)
	}
	return nil
}

func validateCombat(c CombatConfig) error {
	if c.MaxTurns < 1 {
		return fmt.Errorf("combat.max_turns must be >= 1, got %d", c.MaxTurns)
	}
	return nil
}

func validateContent(c ContentConfig) error {
	var errs []string
	if c.FightersDir == "" {
		errs = append(errs, "content.fighters_dir must not be empty")
	}
	if c.InstructionLimit < 0 {
		errs = append(errs, fmt.Sprintf("content.instruction_limit must be >= 0, got %d", c.InstructionLimit))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with DUEL_ prefix
	v.SetEnvPrefix("DUEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Defaults returns a Viper instance carrying only the default settings.
func Defaults() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("random.source", SourceCrypto)
	v.SetDefault("random.seed", 0)
	v.SetDefault("random.log_draws", false)

	v.SetDefault("combat.zero_damage_report", false)
	v.SetDefault("combat.max_turns", 100)

	v.SetDefault("content.fighters_dir", "content/fighters")
	v.SetDefault("content.scripts_dir", "")
	v.SetDefault("content.instruction_limit", 0)
}

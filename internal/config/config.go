// Package config provides Viper-based configuration loading for the combat
// simulator.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"github.com/cory-johannsen/spiresim/internal/game/enemy"
	"github.com/cory-johannsen/spiresim/internal/game/rng"
)

// EnvPrefix prefixes environment variable overrides, e.g.
// SPIRESIM_SIM_SEED overrides sim.seed.
const EnvPrefix = "SPIRESIM"

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	// Enabled turns on persistence of combat results.
	Enabled         bool          `mapstructure:"enabled"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// DSN returns the PostgreSQL connection string.
//
// Precondition: Host, Port, User, and Name must be non-empty.
// Postcondition: Returns a valid PostgreSQL DSN string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output lists zap sink URLs or file paths; empty means stderr.
	Output []string `mapstructure:"output"`
}

// SimConfig describes the combat to simulate.
type SimConfig struct {
	// Seed is a run seed in the game's 13 character base-35 form. Empty
	// picks a random seed.
	Seed string `mapstructure:"seed"`
	// Floor selects the floor seed derived from Seed.
	Floor     int    `mapstructure:"floor"`
	Encounter string `mapstructure:"encounter"`
	Character string `mapstructure:"character"`
	// HP overrides the character's starting health; zero keeps it.
	HP int `mapstructure:"hp"`
	// Deck overrides the character's starter deck; empty keeps it.
	Deck []string `mapstructure:"deck"`
	// Relics overrides the character's starter relics when set.
	Relics []string `mapstructure:"relics"`
	// MaxTurns stops the combat after that many rounds; zero means no limit.
	MaxTurns int `mapstructure:"max_turns"`
}

// ScriptingConfig selects who plays the player's side.
type ScriptingConfig struct {
	// Strategy names a Lua strategy script; empty means the interactive console.
	Strategy string `mapstructure:"strategy"`
	// Dir is a directory of strategy scripts; empty means the embedded scripts.
	Dir              string `mapstructure:"dir"`
	InstructionLimit int    `mapstructure:"instruction_limit"`
}

// ContentConfig locates card and condition data.
type ContentConfig struct {
	// Dir holds cards/ and conditions/; empty means the embedded content.
	Dir string `mapstructure:"dir"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Sim       SimConfig       `mapstructure:"sim"`
	Scripting ScriptingConfig `mapstructure:"scripting"`
	Content   ContentConfig   `mapstructure:"content"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error
// combining every violation.
func (c Config) Validate() error {
	err := multierr.Combine(
		validateLogging(c.Logging),
		validateSim(c.Sim),
		validateScripting(c.Scripting),
	)
	if c.Database.Enabled {
		err = multierr.Append(err, validateDatabase(c.Database))
	}
	if err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

func validateDatabase(d DatabaseConfig) error {
	var err error
	if d.Host == "" {
		err = multierr.Append(err, errors.New("database.host must not be empty"))
	}
	if d.Port < 1 || d.Port > 65535 {
		err = multierr.Append(err, fmt.Errorf("database.port must be 1-65535, got %d", d.Port))
	}
	if d.User == "" {
		err = multierr.Append(err, errors.New("database.user must not be empty"))
	}
	if d.Name == "" {
		err = multierr.Append(err, errors.New("database.name must not be empty"))
	}
	validSSL := map[string]bool{"disable": true, "require": true, "verify-ca": true, "verify-full": true}
	if !validSSL[d.SSLMode] {
		err = multierr.Append(err, fmt.Errorf("database.sslmode must be one of [disable, require, verify-ca, verify-full], got %q", d.SSLMode))
	}
	if d.MaxConns < 1 {
		err = multierr.Append(err, fmt.Errorf("database.max_conns must be >= 1, got %d", d.MaxConns))
	}
	if d.MinConns < 0 {
		err = multierr.Append(err, fmt.Errorf("database.min_conns must be >= 0, got %d", d.MinConns))
	}
	if d.MinConns > d.MaxConns {
		err = multierr.Append(err, errors.New("database.min_conns must not exceed database.max_conns"))
	}
	return err
}

func validateLogging(l LoggingConfig) error {
	var err error
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		err = multierr.Append(err, fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level))
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		err = multierr.Append(err, fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format))
	}
	return err
}

func validateSim(s SimConfig) error {
	var err error
	if s.Seed != "" {
		if _, perr := rng.ParseSeed(s.Seed); perr != nil {
			err = multierr.Append(err, fmt.Errorf("sim.seed: %w", perr))
		}
	}
	if s.Floor < 0 {
		err = multierr.Append(err, fmt.Errorf("sim.floor must be >= 0, got %d", s.Floor))
	}
	if _, eerr := enemy.ParseEncounter(s.Encounter); eerr != nil {
		err = multierr.Append(err, fmt.Errorf("sim.encounter: %w", eerr))
	}
	if s.Character == "" {
		err = multierr.Append(err, errors.New("sim.character must not be empty"))
	}
	if s.HP < 0 {
		err = multierr.Append(err, fmt.Errorf("sim.hp must be >= 0, got %d", s.HP))
	}
	if s.MaxTurns < 0 {
		err = multierr.Append(err, fmt.Errorf("sim.max_turns must be >= 0, got %d", s.MaxTurns))
	}
	return err
}

func validateScripting(s ScriptingConfig) error {
	if s.InstructionLimit < 0 {
		return fmt.Errorf("scripting.instruction_limit must be >= 0, got %d", s.InstructionLimit)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path uses defaults and
// environment only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
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

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "spiresim")
	v.SetDefault("database.password", "spiresim")
	v.SetDefault("database.name", "spiresim")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.max_conn_lifetime", "1h")

	// Every key needs a default for AutomaticEnv to reach it through Unmarshal.
	v.SetDefault("sim.seed", "")
	v.SetDefault("sim.floor", 1)
	v.SetDefault("sim.encounter", enemy.EncounterJawWorm.String())
	v.SetDefault("sim.character", "ironclad")
	v.SetDefault("sim.hp", 0)
	v.SetDefault("sim.max_turns", 0)

	v.SetDefault("scripting.strategy", "")
	v.SetDefault("scripting.dir", "")
	v.SetDefault("scripting.instruction_limit", 100_000)

	v.SetDefault("content.dir", "")
}

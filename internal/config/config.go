// Package config provides Viper-based configuration loading for the melee
// simulator.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/cory-johannsen/melee/internal/game/combat"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// DiceTrace logs every dice draw at debug level.
	DiceTrace bool `mapstructure:"dice_trace"`
}

// MeleeConfig holds the engine tuning constants.
type MeleeConfig struct {
	BaseCritChance     int `mapstructure:"base_crit_chance"`
	MinAttackCost      int `mapstructure:"min_attack_cost"`
	DodgesPerTurn      int `mapstructure:"dodges_per_turn"`
	BlocksPerTurn      int `mapstructure:"blocks_per_turn"`
	StunCap            int `mapstructure:"stun_cap"`
	KnockdownThreshold int `mapstructure:"knockdown_threshold"`
	MaxCounterDepth    int `mapstructure:"max_counter_depth"`
	// StuckArmor is the armor assumed for non-monster targets when a weapon
	// may get stuck.
	StuckArmor int `mapstructure:"stuck_armor"`
}

// Tuning converts the section into the engine's constant set.
func (m MeleeConfig) Tuning() combat.Tuning {
	return combat.Tuning{
		BaseCritChance:     m.BaseCritChance,
		MinAttackCost:      m.MinAttackCost,
		DodgesPerTurn:      m.DodgesPerTurn,
		BlocksPerTurn:      m.BlocksPerTurn,
		StunCap:            m.StunCap,
		KnockdownThreshold: m.KnockdownThreshold,
		MaxCounterDepth:    m.MaxCounterDepth,
		StuckArmor:         m.StuckArmor,
	}
}

// DefaultMelee returns the standard tuning constants.
//
// Postcondition: DefaultMelee().Tuning() == combat.DefaultTuning().
func DefaultMelee() MeleeConfig {
	t := combat.DefaultTuning()
	return MeleeConfig{
		BaseCritChance:     t.BaseCritChance,
		MinAttackCost:      t.MinAttackCost,
		DodgesPerTurn:      t.DodgesPerTurn,
		BlocksPerTurn:      t.BlocksPerTurn,
		StunCap:            t.StunCap,
		KnockdownThreshold: t.KnockdownThreshold,
		MaxCounterDepth:    t.MaxCounterDepth,
		StuckArmor:         t.StuckArmor,
	}
}

// ContentConfig names the YAML and Lua content directories.
type ContentConfig struct {
	Weapons    string `mapstructure:"weapons"`
	Armor      string `mapstructure:"armor"`
	Statuses   string `mapstructure:"statuses"`
	Combatants string `mapstructure:"combatants"`
	// Scripts is the stance script directory; empty disables scripting.
	Scripts string `mapstructure:"scripts"`
	// ScriptInstructionLimit bounds the Lua instructions of a single hook call.
	ScriptInstructionLimit int `mapstructure:"script_instruction_limit"`
}

// SimConfig holds simulator run settings.
type SimConfig struct {
	// Seed selects a deterministic RNG stream; 0 means a crypto-seeded source.
	Seed uint64 `mapstructure:"seed"`
	// Turns is the maximum number of encounter turns to run.
	Turns int `mapstructure:"turns"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Melee   MeleeConfig   `mapstructure:"melee"`
	Content ContentConfig `mapstructure:"content"`
	Sim     SimConfig     `mapstructure:"sim"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateMelee(c.Melee); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateContent(c.Content); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Sim.Turns < 1 {
		errs = append(errs, fmt.Sprintf("sim.turns must be >= 1, got %d", c.Sim.Turns))
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

func validateMelee(m MeleeConfig) error {
	var errs []string
	if m.BaseCritChance < 0 || m.BaseCritChance > 100 {
		errs = append(errs, fmt.Sprintf("melee.base_crit_chance must be 0-100, got %d", m.BaseCritChance))
	}
	if m.MinAttackCost < 1 {
		errs = append(errs, fmt.Sprintf("melee.min_attack_cost must be >= 1, got %d", m.MinAttackCost))
	}
	if m.DodgesPerTurn < 0 {
		errs = append(errs, fmt.Sprintf("melee.dodges_per_turn must be >= 0, got %d", m.DodgesPerTurn))
	}
	if m.BlocksPerTurn < 0 {
		errs = append(errs, fmt.Sprintf("melee.blocks_per_turn must be >= 0, got %d", m.BlocksPerTurn))
	}
	if m.StunCap < 0 {
		errs = append(errs, fmt.Sprintf("melee.stun_cap must be >= 0, got %d", m.StunCap))
	}
	if m.KnockdownThreshold < 1 {
		errs = append(errs, fmt.Sprintf("melee.knockdown_threshold must be >= 1, got %d", m.KnockdownThreshold))
	}
	if m.MaxCounterDepth < 0 {
		errs = append(errs, fmt.Sprintf("melee.max_counter_depth must be >= 0, got %d", m.MaxCounterDepth))
	}
	if m.StuckArmor < 0 {
		errs = append(errs, fmt.Sprintf("melee.stuck_armor must be >= 0, got %d", m.StuckArmor))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateContent(c ContentConfig) error {
	var errs []string
	if c.Weapons == "" {
		errs = append(errs, "content.weapons must not be empty")
	}
	if c.Combatants == "" {
		errs = append(errs, "content.combatants must not be empty")
	}
	if c.Scripts != "" && c.ScriptInstructionLimit < 1 {
		errs = append(errs, fmt.Sprintf("content.script_instruction_limit must be >= 1 when scripts are enabled, got %d", c.ScriptInstructionLimit))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path uses the defaults alone.
//
// Precondition: path must be empty or a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with MELEE_ prefix
	v.SetEnvPrefix("MELEE")
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
	v.SetDefault("logging.dice_trace", false)

	m := DefaultMelee()
	v.SetDefault("melee.base_crit_chance", m.BaseCritChance)
	v.SetDefault("melee.min_attack_cost", m.MinAttackCost)
	v.SetDefault("melee.dodges_per_turn", m.DodgesPerTurn)
	v.SetDefault("melee.blocks_per_turn", m.BlocksPerTurn)
	v.SetDefault("melee.stun_cap", m.StunCap)
	v.SetDefault("melee.knockdown_threshold", m.KnockdownThreshold)
	v.SetDefault("melee.max_counter_depth", m.MaxCounterDepth)
	v.SetDefault("melee.stuck_armor", m.StuckArmor)

	v.SetDefault("content.weapons", "content/weapons")
	v.SetDefault("content.armor", "content/armor")
	v.SetDefault("content.statuses", "content/statuses")
	v.SetDefault("content.combatants", "content/combatants")
	v.SetDefault("content.scripts", "content/scripts")
	v.SetDefault("content.script_instruction_limit", 100000)

	v.SetDefault("sim.seed", 0)
	v.SetDefault("sim.turns", 20)
}

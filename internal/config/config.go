package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/peterkuimelis/duelbot/internal/game"
	"github.com/peterkuimelis/duelbot/internal/log"
)

// Config is the top-level YAML structure.
type Config struct {
	Planner    PlannerConfig `yaml:"planner"`
	Log        LogConfig     `yaml:"log"`
	TurnBudget time.Duration `yaml:"turn_budget"` // warn when a decision takes longer
	Serve      ListenConfig  `yaml:"serve"`
	Web        ListenConfig  `yaml:"web"`
}

// PlannerConfig tunes the battle planner.
type PlannerConfig struct {
	BoardCap int `yaml:"board_cap"`
}

// LogConfig controls process logging and the decision trace.
type LogConfig struct {
	Level  string `yaml:"level"`  // zap level name
	Format string `yaml:"format"` // "console" or "json"
	Trace  bool   `yaml:"trace"`  // write planner events to stderr
}

// ListenConfig is an address a front end listens on.
type ListenConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Planner:    PlannerConfig{BoardCap: game.BoardCap},
		Log:        LogConfig{Level: "info", Format: "console"},
		TurnBudget: 95 * time.Millisecond,
		Serve:      ListenConfig{Addr: ":9000"},
		Web:        ListenConfig{Addr: ":8080"},
	}
}

// Load reads a YAML config file on top of the defaults, then applies
// environment overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config YAML: %w", err)
		}
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects settings the planner cannot work with.
func (c Config) Validate() error {
	if c.Planner.BoardCap < 1 || c.Planner.BoardCap > game.BoardCap {
		return fmt.Errorf("planner.board_cap must be between 1 and %d, got %d", game.BoardCap, c.Planner.BoardCap)
	}
	if c.TurnBudget < 0 {
		return fmt.Errorf("turn_budget must not be negative, got %s", c.TurnBudget)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	return nil
}

// PlannerConfig builds the game planner config with the given trace logger.
func (c Config) PlannerConfig(logger log.EventLogger) game.PlannerConfig {
	return game.PlannerConfig{
		BoardCap: c.Planner.BoardCap,
		Logger:   logger,
	}
}

// Marshal renders the config back to YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

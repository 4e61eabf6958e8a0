package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server    ServerConfig    `toml:"server"`
	Loop      LoopConfig      `toml:"loop"`
	Physics   PhysicsConfig   `toml:"physics"`
	Input     InputConfig     `toml:"input"`
	Network   NetworkConfig   `toml:"network"`
	Database  DatabaseConfig  `toml:"database"`
	Data      DataConfig      `toml:"data"`
	Scripting ScriptingConfig `toml:"scripting"`
	Logging   LoggingConfig   `toml:"logging"`
	Debug     DebugConfig     `toml:"debug"`
}

type ServerConfig struct {
	Name      string `toml:"name"`
	StartTime int64  // set at boot, not from config
}

type LoopConfig struct {
	FrameRate    int           `toml:"frame_rate"`     // simulation ticks per second
	MaxDeltaTime time.Duration `toml:"max_delta_time"` // cap on one frame's wall delta
	RefreshRate  int           `toml:"refresh_rate"`   // headless frame source, frames per second
}

type PhysicsConfig struct {
	Gravity     float64 `toml:"gravity"`      // units/s², applied downward
	GroundLevel float64 `toml:"ground_level"` // y of the implicit floor plane
}

type InputConfig struct {
	MouseSensitivity float64 `toml:"mouse_sensitivity"` // radians per mouse unit
}

type NetworkConfig struct {
	Enabled            bool          `toml:"enabled"`
	BindAddress        string        `toml:"bind_address"`
	Path               string        `toml:"path"`
	InQueueSize        int           `toml:"in_queue_size"`
	OutQueueSize       int           `toml:"out_queue_size"`
	MaxMessagesPerTick int           `toml:"max_messages_per_tick"`
	HUDInterval        int           `toml:"hud_interval"` // ticks between HUD broadcasts
	WriteTimeout       time.Duration `toml:"write_timeout"`
	ReadLimit          int64         `toml:"read_limit"`
}

type DatabaseConfig struct {
	DSN             string        `toml:"dsn"` // empty disables match persistence
	MaxOpenConns    int           `toml:"max_open_conns"`
	MaxIdleConns    int           `toml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `toml:"conn_max_lifetime"`
}

type DataConfig struct {
	Weapons string `toml:"weapons"`
	Enemies string `toml:"enemies"`
	Level   string `toml:"level"`
}

type ScriptingConfig struct {
	Dir string `toml:"dir"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type DebugConfig struct {
	Profile    string `toml:"profile"` // "", "cpu" or "mem"
	ProfileDir string `toml:"profile_dir"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.Server.StartTime = time.Now().Unix()
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Loop.FrameRate <= 0 {
		return fmt.Errorf("loop.frame_rate must be positive, got %d", c.Loop.FrameRate)
	}
	if c.Loop.MaxDeltaTime <= 0 {
		return fmt.Errorf("loop.max_delta_time must be positive, got %s", c.Loop.MaxDeltaTime)
	}
	if c.Loop.RefreshRate <= 0 {
		return fmt.Errorf("loop.refresh_rate must be positive, got %d", c.Loop.RefreshRate)
	}
	switch c.Debug.Profile {
	case "", "cpu", "mem":
	default:
		return fmt.Errorf("debug.profile must be cpu, mem or empty, got %q", c.Debug.Profile)
	}
	return nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Name: "strikezone",
		},
		Loop: LoopConfig{
			FrameRate:    60,
			MaxDeltaTime: 250 * time.Millisecond,
			RefreshRate:  60,
		},
		Physics: PhysicsConfig{
			Gravity:     9.81,
			GroundLevel: 0,
		},
		Input: InputConfig{
			MouseSensitivity: 0.002,
		},
		Network: NetworkConfig{
			Enabled:            true,
			BindAddress:        "0.0.0.0:8080",
			Path:               "/ws",
			InQueueSize:        128,
			OutQueueSize:       64,
			MaxMessagesPerTick: 32,
			HUDInterval:        3,
			WriteTimeout:       5 * time.Second,
			ReadLimit:          4096,
		},
		Database: DatabaseConfig{
			MaxOpenConns:    4,
			MaxIdleConns:    1,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Data: DataConfig{
			Weapons: "data/yaml/weapons.yaml",
			Enemies: "data/yaml/enemies.yaml",
			Level:   "data/yaml/level.yaml",
		},
		Scripting: ScriptingConfig{
			Dir: "scripts",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Debug: DebugConfig{
			ProfileDir: ".",
		},
	}
}

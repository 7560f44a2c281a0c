// Package config loads handik settings from YAML with HANDIK_* environment
// overrides, validates them and watches the file for changes.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/aretw0/handik/internal/logging"
	"github.com/aretw0/handik/pkg/adapters/file"
	"github.com/aretw0/handik/pkg/domain"
	"github.com/aretw0/handik/pkg/motion"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "HANDIK_"

// Store drivers.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// ModesConfig holds the startup modes by index, as the mode setters take them.
type ModesConfig struct {
	AlwaysHandDown     bool `yaml:"always_hand_down" env:"ALWAYS_HAND_DOWN"`
	KeyboardAndMouse   int  `yaml:"keyboard_and_mouse" env:"KEYBOARD_AND_MOUSE"`
	Gamepad            int  `yaml:"gamepad" env:"GAMEPAD"`
	WordToMotionDevice int  `yaml:"word_to_motion_device" env:"WORD_TO_MOTION_DEVICE"`
	HandDownTimeout    bool `yaml:"hand_down_timeout" env:"HAND_DOWN_TIMEOUT"`
}

// Modes converts the indices to a Modes value.
func (m ModesConfig) Modes() domain.Modes {
	return domain.Modes{
		AlwaysHandDown:     m.AlwaysHandDown,
		KeyboardAndMouse:   domain.KeyboardAndMouseMotionMode(m.KeyboardAndMouse),
		Gamepad:            domain.GamepadMotionMode(m.Gamepad),
		WordToMotionDevice: domain.WordToMotionDeviceAssign(m.WordToMotionDevice),
		HandDownTimeout:    m.HandDownTimeout,
	}
}

type HTTPConfig struct {
	Addr string `yaml:"addr" env:"ADDR"`
}

type StoreConfig struct {
	Driver        string        `yaml:"driver" env:"DRIVER"`
	Path          string        `yaml:"path" env:"PATH"`
	RedisAddr     string        `yaml:"redis_addr" env:"REDIS_ADDR"`
	RedisPassword string        `yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int           `yaml:"redis_db" env:"REDIS_DB"`
	TTL           time.Duration `yaml:"ttl" env:"TTL"`
}

type MotionsConfig struct {
	// Dir holds custom .vrma clips; empty disables the repository.
	Dir   string            `yaml:"dir" env:"DIR"`
	Clips []motion.Clip     `yaml:"clips"`
	Words map[string]string `yaml:"words" env:"WORDS"`
	Slots []string          `yaml:"slots" env:"SLOTS" envSeparator:","`
}

// Config is the full application configuration.
type Config struct {
	LogLevel  string        `yaml:"log_level" env:"LOG_LEVEL"`
	FPS       int           `yaml:"fps" env:"FPS"`
	Profile   string        `yaml:"profile" env:"PROFILE"`
	YOffset   float64       `yaml:"y_offset" env:"Y_OFFSET"`
	Scenarios string        `yaml:"scenarios" env:"SCENARIOS"`
	Modes     ModesConfig   `yaml:"modes" envPrefix:"MODES_"`
	HTTP      HTTPConfig    `yaml:"http" envPrefix:"HTTP_"`
	Store     StoreConfig   `yaml:"store" envPrefix:"STORE_"`
	Motions   MotionsConfig `yaml:"motions" envPrefix:"MOTIONS_"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	m := domain.DefaultModes()
	return &Config{
		LogLevel: "info",
		FPS:      60,
		Profile:  "default",
		Modes: ModesConfig{
			AlwaysHandDown:     m.AlwaysHandDown,
			KeyboardAndMouse:   int(m.KeyboardAndMouse),
			Gamepad:            int(m.Gamepad),
			WordToMotionDevice: int(m.WordToMotionDevice),
			HandDownTimeout:    m.HandDownTimeout,
		},
		HTTP: HTTPConfig{Addr: ":8080"},
		Store: StoreConfig{
			Driver:    StoreMemory,
			Path:      file.DefaultDir,
			RedisAddr: "localhost:6379",
		},
	}
}

// Load reads the YAML file at path over the defaults, applies environment
// overrides and validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every problem at once, wrapped in domain.ErrInvalidConfig.
func (c *Config) Validate() error {
	var errs []error
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.FPS < 1 || c.FPS > 1000 {
		errs = append(errs, fmt.Errorf("fps must be within 1..1000, got %d", c.FPS))
	}
	if c.Profile == "" {
		errs = append(errs, errors.New("profile is required"))
	}
	if k := c.Modes.KeyboardAndMouse; k < int(domain.KeyboardAndMouseNone) || k >= int(domain.KeyboardAndMouseUnknown) {
		errs = append(errs, fmt.Errorf("modes.keyboard_and_mouse out of range: %d", k))
	}
	if g := c.Modes.Gamepad; g != int(domain.GamepadMotionGamepad) && g != int(domain.GamepadMotionArcadeStick) {
		errs = append(errs, fmt.Errorf("modes.gamepad out of range: %d", g))
	}
	if !domain.WordToMotionDeviceAssign(c.Modes.WordToMotionDevice).Valid() {
		errs = append(errs, fmt.Errorf("modes.word_to_motion_device out of range: %d", c.Modes.WordToMotionDevice))
	}
	switch c.Store.Driver {
	case StoreMemory:
	case StoreFile:
		if c.Store.Path == "" {
			errs = append(errs, errors.New("store.path is required for the file driver"))
		}
	case StoreRedis:
		if c.Store.RedisAddr == "" {
			errs = append(errs, errors.New("store.redis_addr is required for the redis driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store driver %q", c.Store.Driver))
	}
	if c.Store.TTL < 0 {
		errs = append(errs, fmt.Errorf("store.ttl must not be negative, got %s", c.Store.TTL))
	}
	for i, clip := range c.Motions.Clips {
		if clip.Name == "" || clip.Length <= 0 {
			errs = append(errs, fmt.Errorf("motions.clips[%d] needs a name and a positive length", i))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", domain.ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

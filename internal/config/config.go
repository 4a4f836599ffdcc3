package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/JackWithOneEye/metroview/internal/pan"
	"github.com/spf13/viper"
)

type env struct {
	DBUrl   string `mapstructure:"DB_URL"`
	Port    uint   `mapstructure:"PORT"`
	MapFile string `mapstructure:"MAP_FILE"`
	Debug   bool   `mapstructure:"DEBUG"`

	SnapEnabled             bool    `mapstructure:"SNAP_ENABLED"`
	SnapSlope               float64 `mapstructure:"SNAP_SLOPE"`
	SnapBreakDistance       int     `mapstructure:"SNAP_BREAK_DISTANCE"`
	SnapLockReverseDistance int     `mapstructure:"SNAP_LOCK_REVERSE_DISTANCE"`
	FlingWindowMs           int     `mapstructure:"FLING_WINDOW_MS"`
	KeyScrollMinSpeed       int     `mapstructure:"KEY_SCROLL_MIN_SPEED"`
	KeyScrollMaxSpeed       int     `mapstructure:"KEY_SCROLL_MAX_SPEED"`
	KeyScrollAccelDelayMs   int     `mapstructure:"KEY_SCROLL_ACCEL_DELAY_MS"`
	KeyScrollAccelStep      int     `mapstructure:"KEY_SCROLL_ACCEL_STEP"`
	TrackballScale          float64 `mapstructure:"TRACKBALL_SCALE"`
}

type Config struct {
	env *env
}

var cfgInstance *Config

// NewConfig loads .env from the working directory and the environment once
// per process. A missing .env is fine; a broken one is not.
func NewConfig() *Config {
	if cfgInstance != nil {
		return cfgInstance
	}

	v := viper.New()
	v.AddConfigPath(".")
	v.SetConfigFile(".env")
	v.SetConfigType("env")

	cfg, err := Load(v)
	if err != nil {
		panic(fmt.Sprintf("error loading config: %s", err))
	}
	cfgInstance = cfg
	return cfgInstance
}

// Load builds a Config from v, reading its config file if one is set.
func Load(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var env env
	err = v.Unmarshal(&env)
	if err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &Config{&env}, nil
}

func setDefaults(v *viper.Viper) {
	t := pan.DefaultTuning()
	v.SetDefault("DB_URL", "metroview.db")
	v.SetDefault("PORT", 8080)
	v.SetDefault("MAP_FILE", "maps/metro.json")
	v.SetDefault("DEBUG", false)
	v.SetDefault("SNAP_ENABLED", t.SnapEnabled)
	v.SetDefault("SNAP_SLOPE", t.SlopeFactor)
	v.SetDefault("SNAP_BREAK_DISTANCE", t.SnapBreakDistance)
	v.SetDefault("SNAP_LOCK_REVERSE_DISTANCE", t.SnapLockReverseDistance)
	v.SetDefault("FLING_WINDOW_MS", t.FlingWindow.Milliseconds())
	v.SetDefault("KEY_SCROLL_MIN_SPEED", t.KeyMinSpeed)
	v.SetDefault("KEY_SCROLL_MAX_SPEED", t.KeyMaxSpeed)
	v.SetDefault("KEY_SCROLL_ACCEL_DELAY_MS", t.KeyAccelDelay.Milliseconds())
	v.SetDefault("KEY_SCROLL_ACCEL_STEP", t.KeyAccelStep)
	v.SetDefault("TRACKBALL_SCALE", t.TrackballScale)
}

func (c *Config) DBUrl() string {
	return c.env.DBUrl
}

func (c *Config) Port() uint {
	return c.env.Port
}

func (c *Config) MapFile() string {
	return c.env.MapFile
}

func (c *Config) Debug() bool {
	return c.env.Debug
}

// Tuning returns the pan tuning with the configured overrides applied.
func (c *Config) Tuning() pan.Tuning {
	t := pan.DefaultTuning()
	t.SnapEnabled = c.env.SnapEnabled
	t.SlopeFactor = c.env.SnapSlope
	t.SnapBreakDistance = c.env.SnapBreakDistance
	t.SnapLockReverseDistance = c.env.SnapLockReverseDistance
	t.FlingWindow = time.Duration(c.env.FlingWindowMs) * time.Millisecond
	t.KeyMinSpeed = c.env.KeyScrollMinSpeed
	t.KeyMaxSpeed = c.env.KeyScrollMaxSpeed
	t.KeyAccelDelay = time.Duration(c.env.KeyScrollAccelDelayMs) * time.Millisecond
	t.KeyAccelStep = c.env.KeyScrollAccelStep
	t.TrackballScale = c.env.TrackballScale
	return t
}

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. HITMARKER_TIMING_DEBOUNCE.
const EnvPrefix = "HITMARKER"

type Config struct {
	AssetDir  string      `mapstructure:"asset_dir"`
	Assets    AssetConfig `mapstructure:"assets"`
	Timing    TimingConfig
	Defaults  DefaultsConfig
	Log       LogConfig
	Autostart AutostartConfig
}

// AssetConfig names the files looked up inside AssetDir.
type AssetConfig struct {
	Marker    string
	Sound     string
	Icon      string
	Thumbnail string
}

type TimingConfig struct {
	Poll     time.Duration // Period of the input sampling tick
	Debounce time.Duration // Minimum spacing between two accepted clicks
	Display  time.Duration // How long the marker stays on screen
}

// DefaultsConfig seeds the settings panel on launch.
type DefaultsConfig struct {
	Sound   bool
	Volume  float64
	Graphic bool
}

type LogConfig struct {
	Level      string
	Format     string
	File       string
	MaxSize    int  `mapstructure:"max_size"`
	MaxBackups int  `mapstructure:"max_backups"`
	MaxAge     int  `mapstructure:"max_age"`
	Compress   bool
}

type AutostartConfig struct {
	Name string
}

func NewConfig() *Config {
	return &Config{
		AssetDir: ".",
		Assets: AssetConfig{
			Marker:    "hm.png",
			Sound:     "hm.mp3",
			Icon:      "icon.png",
			Thumbnail: "doritos.png",
		},
		Timing: TimingConfig{
			Poll:     10 * time.Millisecond,
			Debounce: 100 * time.Millisecond,
			Display:  50 * time.Millisecond,
		},
		Defaults: DefaultsConfig{
			Sound:   true,
			Volume:  1.0,
			Graphic: true,
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "console",
			MaxSize:    5,
			MaxBackups: 3,
			MaxAge:     28,
		},
		Autostart: AutostartConfig{
			Name: "HitmarkerMLG",
		},
	}
}

// SetDefaults registers every key with v so that AutomaticEnv can see it
// during Unmarshal.
func SetDefaults(v *viper.Viper) {
	d := NewConfig()
	v.SetDefault("asset_dir", d.AssetDir)
	v.SetDefault("assets.marker", d.Assets.Marker)
	v.SetDefault("assets.sound", d.Assets.Sound)
	v.SetDefault("assets.icon", d.Assets.Icon)
	v.SetDefault("assets.thumbnail", d.Assets.Thumbnail)
	v.SetDefault("timing.poll", d.Timing.Poll)
	v.SetDefault("timing.debounce", d.Timing.Debounce)
	v.SetDefault("timing.display", d.Timing.Display)
	v.SetDefault("defaults.sound", d.Defaults.Sound)
	v.SetDefault("defaults.volume", d.Defaults.Volume)
	v.SetDefault("defaults.graphic", d.Defaults.Graphic)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.max_size", d.Log.MaxSize)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age", d.Log.MaxAge)
	v.SetDefault("log.compress", d.Log.Compress)
	v.SetDefault("autostart.name", d.Autostart.Name)
}

// Load reads the configuration from the environment. There is no config file.
func Load(v *viper.Viper) (*Config, error) {
	if v == nil {
		v = viper.New()
	}
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Timing.Poll <= 0 {
		errs = append(errs, errors.New("timing.poll must be positive"))
	}
	if c.Timing.Debounce <= 0 {
		errs = append(errs, errors.New("timing.debounce must be positive"))
	}
	if c.Timing.Display <= 0 {
		errs = append(errs, errors.New("timing.display must be positive"))
	}
	if c.Defaults.Volume < 0 || c.Defaults.Volume > 1 {
		errs = append(errs, fmt.Errorf("defaults.volume must be within [0,1], got %v", c.Defaults.Volume))
	}
	if strings.TrimSpace(c.Autostart.Name) == "" {
		errs = append(errs, errors.New("autostart.name must not be empty"))
	}
	for key, name := range map[string]string{
		"assets.marker":    c.Assets.Marker,
		"assets.sound":     c.Assets.Sound,
		"assets.icon":      c.Assets.Icon,
		"assets.thumbnail": c.Assets.Thumbnail,
	} {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, fmt.Errorf("%s must not be empty", key))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

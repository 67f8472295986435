// Package config handles aquarium configuration loading and management.
package config

import "time"

// Config holds all application settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Tank    TankConfig    `yaml:"tank"`
	Bubbles BubbleConfig  `yaml:"bubbles"`
	Cursor  CursorConfig  `yaml:"cursor"`
	Storage StorageConfig `yaml:"storage"`
	Audio   AudioConfig   `yaml:"audio"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
	Terminal   bool `yaml:"terminal"` // Render into the terminal instead of an SDL window
}

// TankConfig holds the creature motion constants.
type TankConfig struct {
	TickHz          int           `yaml:"tick_hz"`
	SurfaceRatio    float32       `yaml:"surface_ratio"` // Top of the swim band, fraction of height
	FloorRatio      float32       `yaml:"floor_ratio"`   // Bottom of the swim band, fraction of height
	SpeedScaleX     float32       `yaml:"speed_scale_x"`
	SpeedScaleY     float32       `yaml:"speed_scale_y"`
	WobbleRate      float32       `yaml:"wobble_rate"`      // Radians per second
	WobbleAmplitude float32       `yaml:"wobble_amplitude"` // Pixels
	TurnChance      int           `yaml:"turn_chance"`      // One in N ticks
	TurnJitter      float32       `yaml:"turn_jitter"`      // Max heading change in radians
	MinSpeed        float32       `yaml:"min_speed"`
	MaxSpeed        float32       `yaml:"max_speed"`
	BounceDuration  time.Duration `yaml:"bounce_duration"`
	TimeCheck       time.Duration `yaml:"time_check"`
}

// BubbleConfig holds bubble burst settings.
type BubbleConfig struct {
	MinBurst  int     `yaml:"min_burst"`
	MaxBurst  int     `yaml:"max_burst"`
	Decay     float32 `yaml:"decay"`      // Opacity lost per tick
	RiseScale float32 `yaml:"rise_scale"` // Pixels per second per unit of speed
}

// CursorConfig holds cursor follower settings.
type CursorConfig struct {
	ChainLength      int           `yaml:"chain_length"`
	Easing           float32       `yaml:"easing"`
	TrailLength      int           `yaml:"trail_length"`
	TrailTTL         time.Duration `yaml:"trail_ttl"`
	ParticleThrottle time.Duration `yaml:"particle_throttle"`
}

// StorageConfig holds the key-value store locations.
type StorageConfig struct {
	Dir             string `yaml:"dir"` // Empty means <ConfigDir>/data
	AppNamespace    string `yaml:"app_namespace"`
	SharedNamespace string `yaml:"shared_namespace"`
}

// AudioConfig holds audio settings.
type AudioConfig struct {
	MasterVolume float32 `yaml:"master_volume"`
	SFXVolume    float32 `yaml:"sfx_volume"`
	Muted        bool    `yaml:"muted"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:      393,
			Height:     700,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   60,
		},
		Tank: TankConfig{
			TickHz:          60,
			SurfaceRatio:    0.10,
			FloorRatio:      0.85,
			SpeedScaleX:     30,
			SpeedScaleY:     15,
			WobbleRate:      2.5,
			WobbleAmplitude: 3,
			TurnChance:      301,
			TurnJitter:      0.5,
			MinSpeed:        1,
			MaxSpeed:        6,
			BounceDuration:  500 * time.Millisecond,
			TimeCheck:       time.Minute,
		},
		Bubbles: BubbleConfig{
			MinBurst:  3,
			MaxBurst:  7,
			Decay:     0.003,
			RiseScale: 40,
		},
		Cursor: CursorConfig{
			ChainLength:      12,
			Easing:           0.35,
			TrailLength:      24,
			TrailTTL:         600 * time.Millisecond,
			ParticleThrottle: 300 * time.Millisecond,
		},
		Storage: StorageConfig{
			Dir:             "",
			AppNamespace:    "standard",
			SharedNamespace: "group.aquarium",
		},
		Audio: AudioConfig{
			MasterVolume: 0.8,
			SFXVolume:    0.6,
			Muted:        false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// TickInterval returns the fixed timestep as a duration.
func (t TankConfig) TickInterval() time.Duration {
	if t.TickHz <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(t.TickHz)
}

// StorageDir resolves the data directory, falling back to the config dir.
func (c *Config) StorageDir() string {
	if c.Storage.Dir != "" {
		return c.Storage.Dir
	}
	return defaultDataDir()
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/kjkrol/goktile/pkg/chunk"
	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable holding the config file path.
const EnvPath = "GOKTILE_CONFIG"

type Config struct {
	Window WindowConfig `yaml:"window"`
	Map    chunk.Config `yaml:"map"`
	World  WorldConfig  `yaml:"world"`
	Log    LogConfig    `yaml:"log"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	// PanSpeed is how many pixels one frame of a held arrow key moves the view.
	PanSpeed int `yaml:"pan_speed"`
}

type WorldConfig struct {
	Seed uint64 `yaml:"seed"`
	// Kinds is the number of green shades in the demo palette.
	Kinds int `yaml:"kinds"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:    1024,
			Height:   768,
			Title:    "goktile",
			PanSpeed: 8,
		},
		Map:   chunk.DefaultConfig(),
		World: WorldConfig{Seed: 1, Kinds: 8},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// Load reads a YAML config file. Missing fields keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// LoadEnv loads .env if present and then the file named by GOKTILE_CONFIG.
// Without that variable it returns the defaults.
func LoadEnv() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	path := os.Getenv(EnvPath)
	if path == "" {
		return DefaultConfig(), nil
	}
	return Load(path)
}

func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Window.Width <= 0 {
		c.Window.Width = def.Window.Width
	}
	if c.Window.Height <= 0 {
		c.Window.Height = def.Window.Height
	}
	if c.Window.Title == "" {
		c.Window.Title = def.Window.Title
	}
	if c.Window.PanSpeed <= 0 {
		c.Window.PanSpeed = def.Window.PanSpeed
	}
	if c.Map.TilePixelLength <= 0 {
		c.Map.TilePixelLength = def.Map.TilePixelLength
	}
	if c.Map.ChunkTileLength <= 0 {
		c.Map.ChunkTileLength = def.Map.ChunkTileLength
	}
	if c.Map.MapChunksWide <= 0 {
		c.Map.MapChunksWide = def.Map.MapChunksWide
	}
	if c.Map.MapChunksHigh <= 0 {
		c.Map.MapChunksHigh = def.Map.MapChunksHigh
	}
	if c.Map.PreRenderChunks < 0 {
		c.Map.PreRenderChunks = 0
	}
	if c.World.Kinds <= 0 {
		c.World.Kinds = def.World.Kinds
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Log.MaxSizeMB <= 0 {
		c.Log.MaxSizeMB = def.Log.MaxSizeMB
	}
	if c.Log.MaxBackups < 0 {
		c.Log.MaxBackups = 0
	}
}

// Merge applies file-loaded values into cfg, except for the fields whose flag
// was explicitly set on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["width"] {
		cfg.Window.Width = fromFile.Window.Width
	}
	if !explicitFlags["height"] {
		cfg.Window.Height = fromFile.Window.Height
	}
	if !explicitFlags["title"] {
		cfg.Window.Title = fromFile.Window.Title
	}
	if !explicitFlags["pan-speed"] {
		cfg.Window.PanSpeed = fromFile.Window.PanSpeed
	}
	if !explicitFlags["tile-px"] {
		cfg.Map.TilePixelLength = fromFile.Map.TilePixelLength
	}
	if !explicitFlags["chunk-tiles"] {
		cfg.Map.ChunkTileLength = fromFile.Map.ChunkTileLength
	}
	if !explicitFlags["map-wide"] {
		cfg.Map.MapChunksWide = fromFile.Map.MapChunksWide
	}
	if !explicitFlags["map-high"] {
		cfg.Map.MapChunksHigh = fromFile.Map.MapChunksHigh
	}
	if !explicitFlags["pre-render"] {
		cfg.Map.PreRenderChunks = fromFile.Map.PreRenderChunks
	}
	if !explicitFlags["seed"] {
		cfg.World.Seed = fromFile.World.Seed
	}
	if !explicitFlags["kinds"] {
		cfg.World.Kinds = fromFile.World.Kinds
	}
	if !explicitFlags["log-level"] {
		cfg.Log.Level = fromFile.Log.Level
	}
	if !explicitFlags["log-file"] {
		cfg.Log.File = fromFile.Log.File
	}
	cfg.Log.MaxSizeMB = fromFile.Log.MaxSizeMB
	cfg.Log.MaxBackups = fromFile.Log.MaxBackups
}

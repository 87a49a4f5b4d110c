package config

import "flag"

// BindFlags registers command line overrides on fs that write into cfg. It
// returns the value of the -config flag.
func BindFlags(fs *flag.FlagSet, cfg *Config) *string {
	path := fs.String("config", "", "path to a YAML config file (default $"+EnvPath+")")
	fs.IntVar(&cfg.Window.Width, "width", cfg.Window.Width, "window width in pixels")
	fs.IntVar(&cfg.Window.Height, "height", cfg.Window.Height, "window height in pixels")
	fs.StringVar(&cfg.Window.Title, "title", cfg.Window.Title, "window title")
	fs.IntVar(&cfg.Window.PanSpeed, "pan-speed", cfg.Window.PanSpeed, "pixels per frame of a held pan key")
	fs.IntVar(&cfg.Map.TilePixelLength, "tile-px", cfg.Map.TilePixelLength, "tile side in pixels")
	fs.IntVar(&cfg.Map.ChunkTileLength, "chunk-tiles", cfg.Map.ChunkTileLength, "chunk side in tiles")
	fs.IntVar(&cfg.Map.MapChunksWide, "map-wide", cfg.Map.MapChunksWide, "map width in chunks")
	fs.IntVar(&cfg.Map.MapChunksHigh, "map-high", cfg.Map.MapChunksHigh, "map height in chunks")
	fs.IntVar(&cfg.Map.PreRenderChunks, "pre-render", cfg.Map.PreRenderChunks, "chunks baked past each viewport edge")
	fs.Uint64Var(&cfg.World.Seed, "seed", cfg.World.Seed, "world generator seed")
	fs.IntVar(&cfg.World.Kinds, "kinds", cfg.World.Kinds, "number of tile kinds")
	fs.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "log level")
	fs.StringVar(&cfg.Log.File, "log-file", cfg.Log.File, "rotated log file, empty for stderr only")
	return path
}

// Resolve loads the config file at path, or the one named by GOKTILE_CONFIG when
// path is empty, and merges it under the flags explicitly set on fs.
func Resolve(fs *flag.FlagSet, cfg *Config, path string) (*Config, error) {
	explicit := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		explicit[f.Name] = true
	})

	var (
		fromFile *Config
		err      error
	)
	if path != "" {
		fromFile, err = Load(path)
	} else {
		fromFile, err = LoadEnv()
	}
	if err != nil {
		return nil, err
	}
	Merge(cfg, fromFile, explicit)
	cfg.applyDefaults()
	return cfg, nil
}

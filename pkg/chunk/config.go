package chunk

import "github.com/kjkrol/gokg/pkg/geom"

// Config holds the sizing constants of the map and its chunk cache. All lengths
// are fixed for the lifetime of a Window.
type Config struct {
	// TilePixelLength is the side of one tile in pixels.
	TilePixelLength int `yaml:"tile_pixel_length"`
	// ChunkTileLength is the side of a chunk in tiles. Larger chunks mean more work
	// less often when panning.
	ChunkTileLength int `yaml:"chunk_tile_length"`
	MapChunksWide   int `yaml:"map_chunks_wide"`
	MapChunksHigh   int `yaml:"map_chunks_high"`
	// PreRenderChunks is the number of chunk rows and columns kept baked outside the
	// visible area on each side.
	PreRenderChunks int `yaml:"pre_render_chunks"`
}

func DefaultConfig() Config {
	return Config{
		TilePixelLength: 32,
		ChunkTileLength: 16,
		MapChunksWide:   32,
		MapChunksHigh:   32,
		PreRenderChunks: 1,
	}
}

func normalizeConfig(conf Config) Config {
	def := DefaultConfig()
	if conf.TilePixelLength <= 0 {
		conf.TilePixelLength = def.TilePixelLength
	}
	if conf.ChunkTileLength <= 0 {
		conf.ChunkTileLength = def.ChunkTileLength
	}
	if conf.MapChunksWide <= 0 {
		conf.MapChunksWide = def.MapChunksWide
	}
	if conf.MapChunksHigh <= 0 {
		conf.MapChunksHigh = def.MapChunksHigh
	}
	if conf.PreRenderChunks < 0 {
		conf.PreRenderChunks = 0
	}
	return conf
}

func (c Config) TilesPerChunk() int {
	return c.ChunkTileLength * c.ChunkTileLength
}

func (c Config) ChunkPixelLength() int {
	return c.TilePixelLength * c.ChunkTileLength
}

func (c Config) HalfChunkPixelLength() int {
	return c.ChunkPixelLength() / 2
}

func (c Config) MapTilesWide() int {
	return c.MapChunksWide * c.ChunkTileLength
}

func (c Config) MapTilesHigh() int {
	return c.MapChunksHigh * c.ChunkTileLength
}

func (c Config) MapPixelsWide() int {
	return c.MapTilesWide() * c.TilePixelLength
}

func (c Config) MapPixelsHigh() int {
	return c.MapTilesHigh() * c.TilePixelLength
}

// ChunksFor returns how many chunks cover viewportPixels plus the margin on both sides.
func (c Config) ChunksFor(viewportPixels int) int {
	if viewportPixels < 0 {
		viewportPixels = 0
	}
	return divCeil(viewportPixels, c.ChunkPixelLength()) + 2*c.PreRenderChunks
}

// MapPixelForWorldTile returns the centre of a tile in map-pixel space, where Y
// grows upward from the bottom edge of the map.
func (c Config) MapPixelForWorldTile(tx, ty int) geom.Vec[int] {
	half := c.TilePixelLength / 2
	return geom.NewVec(
		tx*c.TilePixelLength+half,
		c.MapPixelsHigh()-(ty+1)*c.TilePixelLength+half,
	)
}

package renderer

import (
	"image"
	"math/rand"

	"github.com/calebmartin/go-pathtracer/pkg/core"
)

// Tile represents a rectangular region of the image to be rendered.
// Each tile owns a disjoint pixel range and its own random generator, so
// tiles never contend and renders are reproducible for a given master seed.
type Tile struct {
	ID     int             // Unique tile identifier
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
	Random *rand.Rand      // Tile-specific deterministic generator
}

// NewTile creates a tile whose generator is seeded from the master seed and
// the tile ID
func NewTile(id int, bounds image.Rectangle, masterSeed int64) *Tile {
	return &Tile{
		ID:     id,
		Bounds: bounds,
		Random: core.NewWorkerRand(masterSeed, id),
	}
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int, masterSeed int64) []*Tile {
	var tiles []*Tile
	tileID := 0

	tilesX := (width + tileSize - 1) / tileSize
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width)
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1), masterSeed))
			tileID++
		}
	}

	return tiles
}

package renderer

import (
	"image"
	"math/rand"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier, row-major
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []Tile {
	if tileSize < 1 {
		tileSize = 1
	}

	var tiles []Tile
	for y := 0; y < height; y += tileSize {
		for x := 0; x < width; x += tileSize {
			tiles = append(tiles, Tile{
				ID:     len(tiles),
				Bounds: image.Rect(x, y, min(x+tileSize, width), min(y+tileSize, height)),
			})
		}
	}
	return tiles
}

// Random returns the tile's deterministic random generator for a render
// seed, so results do not depend on which worker renders the tile
func (t Tile) Random(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed*1000003 + int64(t.ID) + 42))
}

// Package populate places secondary per-chunk content: vegetation, water
// planes, and grass cover. Populators compute placements from the generated
// surface; actual scene insertion stays with the chunk manager so a late
// result for an unloaded chunk is never applied.
package populate

import (
	"context"

	"github.com/emberwood/terrain-server/internal/scene"
	"github.com/emberwood/terrain-server/internal/terrain"
)

// Chunk is the read-only view a populator works from.
type Chunk struct {
	Surface *terrain.Surface
	Query   terrain.Query
}

// Populator produces renderables for one chunk. It must be deterministic for
// a fixed seed and chunk coordinate, must not touch the scene graph, and must
// recover locally from individual decoration failures.
type Populator interface {
	Name() string
	Populate(ctx context.Context, c *Chunk) ([]scene.Renderable, error)
}

// Instance is one placed decoration model.
type Instance struct {
	Model    string
	X, Y, Z  float64
	Scale    float64
	Rotation float64 // radians around the vertical axis
}

func (i *Instance) Kind() string { return "instance:" + i.Model }

// WaterPlane covers a chunk whose terrain dips below the water level.
type WaterPlane struct {
	OriginX, OriginZ float64
	Size             float64
	Level            float64
}

func (w *WaterPlane) Kind() string { return "water" }

// GrassPatch is one clump of instanced ground cover.
type GrassPatch struct {
	X, Y, Z float64
	Density int
}

func (g *GrassPatch) Kind() string { return "grass" }

package populate

import (
	"context"

	"github.com/emberwood/terrain-server/internal/scene"
	"github.com/emberwood/terrain-server/internal/terrain/biome"
)

const grassSalt = 700

// Grass scatters instanced ground-cover patches. Placement attempts come from
// the biome's ground-cover density; no external assets are involved.
type Grass struct {
	seed       int64
	classifier *biome.Classifier
}

// NewGrass creates a Grass populator using the classifier's density table.
func NewGrass(seed int64, classifier *biome.Classifier) *Grass {
	return &Grass{seed: seed, classifier: classifier}
}

func (g *Grass) Name() string { return "grass" }

func (g *Grass) Populate(_ context.Context, c *Chunk) ([]scene.Renderable, error) {
	pos := c.Surface.Pos
	size := c.Surface.Size
	rng := newChunkRNG(g.seed, pos.X, pos.Z, grassSalt)

	attempts := g.classifier.GroundCoverDensity(c.Surface.Biome)

	var out []scene.Renderable
	for i := 0; i < attempts; i++ {
		wx := float64(pos.X)*size + rng.nextFloat()*size
		wz := float64(pos.Z)*size + rng.nextFloat()*size
		wy := c.Query.HeightAt(wx, wz)

		if wy <= c.Query.WaterLevel() {
			continue
		}

		out = append(out, &GrassPatch{
			X:       wx,
			Y:       wy,
			Z:       wz,
			Density: 4 + rng.nextN(8),
		})
	}
	return out, nil
}

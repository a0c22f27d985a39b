package populate

import (
	"context"
	"log/slog"
	"math"

	"github.com/emberwood/terrain-server/internal/assets"
	"github.com/emberwood/terrain-server/internal/scene"
	"github.com/emberwood/terrain-server/internal/terrain/biome"
)

const vegetationSalt = 600

// Vegetation places biome-appropriate decoration models across a chunk.
type Vegetation struct {
	seed   int64
	assets assets.Provider
	mix    map[biome.Biome][]string
	counts map[biome.Biome]int
	log    *slog.Logger
}

// DefaultMix returns the stock model mix per biome. Model names resolve
// against the active model pack.
func DefaultMix() map[biome.Biome][]string {
	return map[biome.Biome][]string{
		biome.Plains:   {"oak.glb", "boulder.glb"},
		biome.Forest:   {"oak.glb", "pine.glb", "birch.glb"},
		biome.Desert:   {"cactus.glb", "dead_bush.glb"},
		biome.Swamp:    {"willow.glb", "reeds.glb"},
		biome.Tundra:   {"spruce.glb", "boulder.glb"},
		biome.Mountain: {"boulder.glb"},
		biome.Mystical: {"glowcap.glb", "wisp_tree.glb"},
	}
}

// DefaultCounts returns the stock placement attempts per biome.
func DefaultCounts() map[biome.Biome]int {
	return map[biome.Biome]int{
		biome.Plains:   3,
		biome.Forest:   14,
		biome.Desert:   2,
		biome.Swamp:    8,
		biome.Tundra:   4,
		biome.Mountain: 1,
		biome.Mystical: 10,
	}
}

// NewVegetation creates a Vegetation populator with the stock mix and counts.
func NewVegetation(seed int64, provider assets.Provider, log *slog.Logger) *Vegetation {
	return &Vegetation{
		seed:   seed,
		assets: provider,
		mix:    DefaultMix(),
		counts: DefaultCounts(),
		log:    log,
	}
}

func (v *Vegetation) Name() string { return "vegetation" }

// Populate scatters decoration instances. A model that fails to load is
// logged and skipped; the rest of the chunk's decorations still go in.
func (v *Vegetation) Populate(ctx context.Context, c *Chunk) ([]scene.Renderable, error) {
	pos := c.Surface.Pos
	size := c.Surface.Size
	rng := newChunkRNG(v.seed, pos.X, pos.Z, vegetationSalt)

	models := v.mix[c.Surface.Biome]
	if len(models) == 0 {
		return nil, nil
	}
	count := v.counts[c.Surface.Biome]

	var out []scene.Renderable
	for i := 0; i < count; i++ {
		wx := float64(pos.X)*size + rng.nextFloat()*size
		wz := float64(pos.Z)*size + rng.nextFloat()*size
		wy := c.Query.HeightAt(wx, wz)

		// Keep decorations out of the water and off cliff faces.
		if wy <= c.Query.WaterLevel() || !c.Query.Walkable(wx, wz) {
			continue
		}

		name := models[rng.nextN(len(models))]
		scale := 0.8 + rng.nextFloat()*0.4
		rotation := rng.nextFloat() * 2 * math.Pi

		if _, err := v.assets.LoadModel(ctx, name); err != nil {
			v.log.Warn("skipping decoration", "model", name, "chunk", pos, "error", err)
			continue
		}

		out = append(out, &Instance{
			Model:    name,
			X:        wx,
			Y:        wy,
			Z:        wz,
			Scale:    scale,
			Rotation: rotation,
		})
	}
	return out, nil
}

package populate

import (
	"context"

	"github.com/emberwood/terrain-server/internal/scene"
)

// Water adds a water plane to chunks whose terrain dips below the global
// water level.
type Water struct{}

// NewWater creates a Water populator.
func NewWater() *Water {
	return &Water{}
}

func (w *Water) Name() string { return "water" }

func (w *Water) Populate(_ context.Context, c *Chunk) ([]scene.Renderable, error) {
	level := c.Query.WaterLevel()

	below := false
	for _, h := range c.Surface.Heights {
		if h < level {
			below = true
			break
		}
	}
	if !below {
		return nil, nil
	}

	return []scene.Renderable{&WaterPlane{
		OriginX: float64(c.Surface.Pos.X) * c.Surface.Size,
		OriginZ: float64(c.Surface.Pos.Z) * c.Surface.Size,
		Size:    c.Surface.Size,
		Level:   level,
	}}, nil
}

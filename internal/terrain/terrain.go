package terrain

import (
	"math"

	"github.com/emberwood/terrain-server/internal/terrain/biome"
	"github.com/emberwood/terrain-server/internal/terrain/noise"
)

// ChunkPos identifies a chunk by its X and Z coordinates. A chunk's world
// origin is (X*ChunkSize, Z*ChunkSize).
type ChunkPos struct{ X, Z int }

// Vec3 is a 3-component vector used for surface normals.
type Vec3 struct {
	X, Y, Z float64
}

// Surface is the generated terrain for one chunk: a Resolution×Resolution
// grid of heights with derived normals and per-vertex biome shading colors.
// Index = gz*Resolution + gx.
type Surface struct {
	Pos        ChunkPos
	Size       float64 // world units per side
	Resolution int
	Heights    []float64
	Normals    []Vec3
	Colors     []biome.RGB
	Biome      biome.Biome // dominant biome, sampled at the chunk center
}

// Query is the world interface other systems consume: ground height at any
// world point, the biome there, the water plane, and walkability. Implemented
// by Generator; small enough to mock in tests.
type Query interface {
	HeightAt(x, z float64) float64
	BiomeAt(x, z float64) biome.Biome
	WaterLevel() float64
	Walkable(x, z float64) bool
}

// Seed offsets for the shaping channels, kept apart from the climate channels.
const (
	ridgeChannelOffset   = 300
	plateauChannelOffset = 400
	valleyChannelOffset  = 500
)

// Generator produces chunk surfaces deterministically from a seed. It is
// stateless after construction: HeightAt and Generate are pure functions of
// their inputs, safe for concurrent callers, with no dependency on call order.
type Generator struct {
	params     Params
	height     *noise.Field
	ridge      *noise.Field
	plateau    *noise.Field
	valley     *noise.Field
	classifier *biome.Classifier
}

// NewGenerator creates a Generator from a master seed. The classifier is built
// internally so its elevation signal is this generator's own base height proxy.
func NewGenerator(seed int64, params Params, th biome.Thresholds, table biome.Table) *Generator {
	g := &Generator{
		params:  params,
		height:  noise.Channel(seed, 0),
		ridge:   noise.Channel(seed, ridgeChannelOffset),
		plateau: noise.Channel(seed, plateauChannelOffset),
		valley:  noise.Channel(seed, valleyChannelOffset),
	}
	g.classifier = biome.NewClassifier(seed, g.baseElevation, th, table)
	return g
}

// Classifier exposes the generator's biome classifier for populators.
func (g *Generator) Classifier() *biome.Classifier {
	return g.classifier
}

// baseElevation is the normalized [0,1] blend of the height bands, before any
// biome scaling or shaping. The classifier uses it as its elevation signal; it
// must stay cheap and free of classifier calls to avoid recursion.
func (g *Generator) baseElevation(x, z float64) float64 {
	var sum float64
	for _, b := range g.params.Bands {
		sum += g.height.Fractal(x, z, b.Octaves, b.Frequency, 1.0, b.Persistence, 2.0) * b.Weight
	}
	return sum*0.5 + 0.5
}

// HeightAt returns the terrain height at a world coordinate. The result is a
// pure function of (x, z) for a fixed seed: band blend × biome height
// modifier, then ridge/plateau/valley shaping, clamped to be non-negative.
func (g *Generator) HeightAt(x, z float64) float64 {
	elev := g.baseElevation(x, z)
	b := g.classifier.Classify(x, z)

	h := elev * g.params.BaseHeight * g.classifier.HeightModifier(b)

	if g.params.Ridge.Enabled {
		r := g.ridge.Sample(x*g.params.Ridge.Frequency, z*g.params.Ridge.Frequency)
		sharp := math.Pow(1.0-math.Abs(r), g.params.Ridge.Power)
		h += sharp * g.params.Ridge.Strength * elev
	}

	if g.params.Plateau.Enabled {
		p := g.plateau.Sample(x*g.params.Plateau.Frequency, z*g.params.Plateau.Frequency)
		if p > g.params.Plateau.Threshold {
			h = math.Floor(h/g.params.Plateau.Step) * g.params.Plateau.Step
		}
	}

	if g.params.Valley.Enabled {
		v := g.valley.Sample(x*g.params.Valley.Frequency, z*g.params.Valley.Frequency)
		if v < g.params.Valley.Threshold {
			h -= (g.params.Valley.Threshold - v) * g.params.Valley.Depth
		}
	}

	if h < 0 {
		h = 0
	}
	return h
}

// BiomeAt returns the biome at a world coordinate.
func (g *Generator) BiomeAt(x, z float64) biome.Biome {
	return g.classifier.Classify(x, z)
}

// WaterLevel returns the global water plane height.
func (g *Generator) WaterLevel() float64 {
	return g.params.WaterLevel
}

// Walkable reports whether the surface slope at a world coordinate is within
// the configured walkable limit. Slope is estimated by central differences at
// one grid step.
func (g *Generator) Walkable(x, z float64) bool {
	step := g.params.ChunkSize / float64(g.params.Resolution-1)
	dhdx := (g.HeightAt(x+step, z) - g.HeightAt(x-step, z)) / (2 * step)
	dhdz := (g.HeightAt(x, z+step) - g.HeightAt(x, z-step)) / (2 * step)
	slope := math.Sqrt(dhdx*dhdx + dhdz*dhdz)
	return slope <= g.params.WalkableSlope
}

// Generate produces the surface for a chunk coordinate. Heights and colors
// are filled first across the full grid; normals are then derived from the
// completed height grid by finite differences, never from a coarser source.
func (g *Generator) Generate(pos ChunkPos) *Surface {
	res := g.params.Resolution
	size := g.params.ChunkSize
	step := size / float64(res-1)

	s := &Surface{
		Pos:        pos,
		Size:       size,
		Resolution: res,
		Heights:    make([]float64, res*res),
		Normals:    make([]Vec3, res*res),
		Colors:     make([]biome.RGB, res*res),
	}

	originX := float64(pos.X) * size
	originZ := float64(pos.Z) * size

	for gz := 0; gz < res; gz++ {
		for gx := 0; gx < res; gx++ {
			wx := originX + float64(gx)*step
			wz := originZ + float64(gz)*step
			i := gz*res + gx
			s.Heights[i] = g.HeightAt(wx, wz)
			s.Colors[i] = g.classifier.Color(g.classifier.Classify(wx, wz))
		}
	}

	s.Biome = g.classifier.Classify(originX+size/2, originZ+size/2)

	computeNormals(s, step)
	return s
}

// HeightGridAt returns the stored height at grid indices, used by normal
// computation and populators working off a generated surface.
func (s *Surface) HeightGridAt(gx, gz int) float64 {
	return s.Heights[gz*s.Resolution+gx]
}

// computeNormals fills s.Normals from the height grid. Interior vertices use
// central differences; edges fall back to one-sided differences.
func computeNormals(s *Surface, step float64) {
	res := s.Resolution
	for gz := 0; gz < res; gz++ {
		for gx := 0; gx < res; gx++ {
			var dhdx, dhdz float64

			switch {
			case gx == 0:
				dhdx = (s.HeightGridAt(1, gz) - s.HeightGridAt(0, gz)) / step
			case gx == res-1:
				dhdx = (s.HeightGridAt(res-1, gz) - s.HeightGridAt(res-2, gz)) / step
			default:
				dhdx = (s.HeightGridAt(gx+1, gz) - s.HeightGridAt(gx-1, gz)) / (2 * step)
			}

			switch {
			case gz == 0:
				dhdz = (s.HeightGridAt(gx, 1) - s.HeightGridAt(gx, 0)) / step
			case gz == res-1:
				dhdz = (s.HeightGridAt(gx, res-1) - s.HeightGridAt(gx, res-2)) / step
			default:
				dhdz = (s.HeightGridAt(gx, gz+1) - s.HeightGridAt(gx, gz-1)) / (2 * step)
			}

			n := Vec3{X: -dhdx, Y: 1, Z: -dhdz}
			inv := 1.0 / math.Sqrt(n.X*n.X+n.Y*n.Y+n.Z*n.Z)
			s.Normals[gz*res+gx] = Vec3{X: n.X * inv, Y: n.Y * inv, Z: n.Z * inv}
		}
	}
}

package biome

import "github.com/emberwood/terrain-server/internal/terrain/noise"

// Biome is a discrete classification of a world region. It drives terrain
// height scaling, ground-cover density, and shading color.
type Biome int

const (
	Plains Biome = iota
	Forest
	Desert
	Swamp
	Tundra
	Mountain
	Mystical
	biomeCount
)

// All lists every biome label, in declaration order.
var All = [...]Biome{Plains, Forest, Desert, Swamp, Tundra, Mountain, Mystical}

func (b Biome) String() string {
	switch b {
	case Plains:
		return "plains"
	case Forest:
		return "forest"
	case Desert:
		return "desert"
	case Swamp:
		return "swamp"
	case Tundra:
		return "tundra"
	case Mountain:
		return "mountain"
	case Mystical:
		return "mystical"
	default:
		return "unknown"
	}
}

// RGB is a color in [0,1] component range used as a per-vertex material weight.
type RGB struct {
	R, G, B float64
}

// Params are the per-biome modifiers applied during terrain generation and
// chunk population.
type Params struct {
	HeightModifier     float64 // multiplier on the base height signal
	GroundCoverDensity int     // decoration placement attempts per chunk
	Color              RGB     // representative shading color
}

// Table maps each biome to its parameters. It is immutable after construction
// so independent world instances never interfere through shared state.
type Table map[Biome]Params

// DefaultTable returns the stock per-biome parameter table.
func DefaultTable() Table {
	return Table{
		Plains:   {HeightModifier: 0.8, GroundCoverDensity: 12, Color: RGB{0.45, 0.65, 0.30}},
		Forest:   {HeightModifier: 1.0, GroundCoverDensity: 28, Color: RGB{0.20, 0.45, 0.18}},
		Desert:   {HeightModifier: 0.6, GroundCoverDensity: 3, Color: RGB{0.85, 0.75, 0.45}},
		Swamp:    {HeightModifier: 0.5, GroundCoverDensity: 20, Color: RGB{0.30, 0.40, 0.25}},
		Tundra:   {HeightModifier: 0.7, GroundCoverDensity: 5, Color: RGB{0.80, 0.85, 0.90}},
		Mountain: {HeightModifier: 1.8, GroundCoverDensity: 4, Color: RGB{0.55, 0.52, 0.50}},
		Mystical: {HeightModifier: 1.1, GroundCoverDensity: 35, Color: RGB{0.55, 0.30, 0.70}},
	}
}

// Thresholds are the tunable decision boundaries for classification. The
// climate and elevation signals are normalized to [0,1] before comparison.
type Thresholds struct {
	ElevationHigh float64 // above this → mountain, regardless of climate

	TempHigh float64
	TempMid  float64
	TempLow  float64

	MoistureHigh float64
	MoistureMid  float64
	MoistureLow  float64

	// ClimateFrequency scales world coordinates when sampling the temperature
	// and moisture fields, producing broad climate regions.
	ClimateFrequency float64
}

// DefaultThresholds returns the stock classification boundaries.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ElevationHigh:    0.75,
		TempHigh:         0.72,
		TempMid:          0.55,
		TempLow:          0.35,
		MoistureHigh:     0.70,
		MoistureMid:      0.55,
		MoistureLow:      0.30,
		ClimateFrequency: 1.0 / 512.0,
	}
}

// ElevationFunc supplies a normalized [0,1] elevation signal at a world
// coordinate. The terrain generator injects its base height proxy here so the
// classifier never depends on the generator package.
type ElevationFunc func(x, z float64) float64

// Classifier maps world coordinates to a biome label using temperature,
// moisture, and elevation signals. It is stateless after construction and safe
// for concurrent reads.
type Classifier struct {
	temp      *noise.Field
	moisture  *noise.Field
	elevation ElevationFunc
	th        Thresholds
	table     Table
}

// Seed offsets for the climate channels, kept apart from the height channels.
const (
	tempChannelOffset     = 100
	moistureChannelOffset = 200
)

// NewClassifier creates a Classifier from a master seed. elevation supplies
// the normalized height proxy; table and th parameterize the decision.
func NewClassifier(seed int64, elevation ElevationFunc, th Thresholds, table Table) *Classifier {
	return &Classifier{
		temp:      noise.Channel(seed, tempChannelOffset),
		moisture:  noise.Channel(seed, moistureChannelOffset),
		elevation: elevation,
		th:        th,
		table:     table,
	}
}

// Classify returns the biome at the given world coordinate.
func (c *Classifier) Classify(x, z float64) Biome {
	fx := x * c.th.ClimateFrequency
	fz := z * c.th.ClimateFrequency

	// Climate signals centered into [0,1].
	temp := c.temp.Octave(fx, fz, 4, 0.5)*0.5 + 0.5
	moist := c.moisture.Octave(fx, fz, 4, 0.5)*0.5 + 0.5

	return c.decide(temp, moist, c.elevation(x, z))
}

// decide applies the ordered decision table. First matching rule wins; the
// ordering is load-bearing for visual continuity between regions and must not
// be rearranged.
func (c *Classifier) decide(temp, moisture, elevation float64) Biome {
	switch {
	case elevation > c.th.ElevationHigh:
		return Mountain
	case temp > c.th.TempHigh && moisture > c.th.MoistureHigh:
		return Mystical
	case temp > c.th.TempMid:
		if moisture > c.th.MoistureLow {
			return Forest
		}
		return Desert
	case temp > c.th.TempLow:
		if moisture > c.th.MoistureMid {
			return Swamp
		}
		return Plains
	default:
		return Tundra
	}
}

// HeightModifier returns the biome's multiplier on the base height signal.
func (c *Classifier) HeightModifier(b Biome) float64 {
	return c.table[b].HeightModifier
}

// GroundCoverDensity returns the biome's decoration placement attempts per chunk.
func (c *Classifier) GroundCoverDensity(b Biome) int {
	return c.table[b].GroundCoverDensity
}

// Color returns the biome's representative shading color.
func (c *Classifier) Color(b Biome) RGB {
	return c.table[b].Color
}

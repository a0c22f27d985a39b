package terrain

// Band is one frequency band of the height signal. Weight is the band's share
// of the blended base height; weights across all bands must sum to 1.0.
type Band struct {
	Frequency   float64
	Octaves     int
	Persistence float64
	Weight      float64
}

// RidgeParams sharpen crests by folding a noise channel: 1-|n| raised to Power.
type RidgeParams struct {
	Enabled   bool
	Frequency float64
	Power     float64
	Strength  float64 // world units added at full ridge
}

// PlateauParams snap terrain to discrete height bands where a noise channel
// exceeds Threshold.
type PlateauParams struct {
	Enabled   bool
	Frequency float64
	Threshold float64
	Step      float64 // band height in world units
}

// ValleyParams carve terrain down where a noise channel falls below Threshold,
// proportionally to how far below it falls.
type ValleyParams struct {
	Enabled   bool
	Frequency float64
	Threshold float64
	Depth     float64 // world units subtracted at full carve
}

// Params are the tunable generation constants. The original tuning had these
// scattered as magic numbers across generator variants; they are deliberately
// configuration here so designers can adjust them without code changes.
type Params struct {
	ChunkSize  float64 // world units per chunk side
	Resolution int     // grid samples per chunk side
	BaseHeight float64 // world-unit amplitude of the blended height signal
	WaterLevel float64 // global water plane height

	Bands   []Band
	Ridge   RidgeParams
	Plateau PlateauParams
	Valley  ValleyParams

	// WalkableSlope is the maximum surface slope (rise over run) still
	// considered walkable by movement queries.
	WalkableSlope float64
}

// DefaultParams returns the stock generation constants: four frequency bands
// (continental, regional, local, detail) with weights summing to 1.0, and all
// three shaping passes enabled.
func DefaultParams() Params {
	return Params{
		ChunkSize:  64,
		Resolution: 33,
		BaseHeight: 60,
		WaterLevel: 12,
		Bands: []Band{
			{Frequency: 1.0 / 1024.0, Octaves: 4, Persistence: 0.5, Weight: 0.45}, // continental
			{Frequency: 1.0 / 256.0, Octaves: 4, Persistence: 0.5, Weight: 0.30},  // regional
			{Frequency: 1.0 / 64.0, Octaves: 3, Persistence: 0.5, Weight: 0.20},   // local
			{Frequency: 1.0 / 16.0, Octaves: 2, Persistence: 0.5, Weight: 0.05},   // detail
		},
		Ridge: RidgeParams{
			Enabled:   true,
			Frequency: 1.0 / 384.0,
			Power:     2.0,
			Strength:  14,
		},
		Plateau: PlateauParams{
			Enabled:   true,
			Frequency: 1.0 / 512.0,
			Threshold: 0.55,
			Step:      8,
		},
		Valley: ValleyParams{
			Enabled:   true,
			Frequency: 1.0 / 320.0,
			Threshold: -0.45,
			Depth:     10,
		},
		WalkableSlope: 1.2,
	}
}

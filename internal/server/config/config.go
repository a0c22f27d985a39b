package config

// Config holds the terrain server configuration. Noise band weights and biome
// thresholds live in their own parameter structs; this covers the knobs an
// operator sets per run.
type Config struct {
	Seed           int64   `json:"seed"`
	ChunkSize      float64 `json:"chunk_size"`      // world units per chunk side
	Resolution     int     `json:"resolution"`      // grid samples per chunk side
	RenderDistance int     `json:"render_distance"` // chunk radius kept loaded
	TickRate       int     `json:"tick_rate"`       // update calls per second
	AssetDir       string  `json:"asset_dir"`       // decoration model pack directory
	DebugAddr      string  `json:"debug_addr"`      // debug endpoint listen address, "" = off
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Seed:           0,
		ChunkSize:      64,
		Resolution:     33,
		RenderDistance: 4,
		TickRate:       20,
		AssetDir:       "./assets",
		DebugAddr:      "",
	}
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["seed"] {
		cfg.Seed = fromFile.Seed
	}
	if !explicitFlags["chunk-size"] {
		cfg.ChunkSize = fromFile.ChunkSize
	}
	if !explicitFlags["resolution"] {
		cfg.Resolution = fromFile.Resolution
	}
	if !explicitFlags["render-distance"] {
		cfg.RenderDistance = fromFile.RenderDistance
	}
	if !explicitFlags["tick-rate"] {
		cfg.TickRate = fromFile.TickRate
	}
	if !explicitFlags["assets"] {
		cfg.AssetDir = fromFile.AssetDir
	}
	if !explicitFlags["debug-addr"] {
		cfg.DebugAddr = fromFile.DebugAddr
	}
}

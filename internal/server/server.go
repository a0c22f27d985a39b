package server

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/emberwood/terrain-server/internal/assets"
	"github.com/emberwood/terrain-server/internal/populate"
	"github.com/emberwood/terrain-server/internal/scene"
	"github.com/emberwood/terrain-server/internal/server/config"
	"github.com/emberwood/terrain-server/internal/server/debug"
	"github.com/emberwood/terrain-server/internal/stream"
	"github.com/emberwood/terrain-server/internal/terrain"
	"github.com/emberwood/terrain-server/internal/terrain/biome"
)

// Server runs the terrain pipeline headless: a scripted walker stands in for
// the player, and the chunk manager is updated once per tick.
type Server struct {
	cfg *config.Config
	log *slog.Logger

	gen *terrain.Generator
	mgr *stream.Manager
	dbg *debug.Server
}

// New creates a Server with the given config and logger.
func New(cfg *config.Config, log *slog.Logger) *Server {
	params := terrain.DefaultParams()
	params.ChunkSize = cfg.ChunkSize
	params.Resolution = cfg.Resolution

	gen := terrain.NewGenerator(cfg.Seed, params, biome.DefaultThresholds(), biome.DefaultTable())

	provider := assets.NewDir(cfg.AssetDir)
	pops := []populate.Populator{
		populate.NewVegetation(cfg.Seed, provider, log),
		populate.NewWater(),
		populate.NewGrass(cfg.Seed, gen.Classifier()),
	}

	mgr := stream.NewManager(cfg.ChunkSize, cfg.RenderDistance, gen, scene.NewMemory(), pops, log)

	s := &Server{
		cfg: cfg,
		log: log,
		gen: gen,
		mgr: mgr,
	}

	if cfg.DebugAddr != "" {
		s.dbg = debug.New(gen, log)
		mgr.SetObserver(s.dbg.Observe)
	}

	return s
}

// Start runs the tick loop and blocks until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	if s.dbg != nil {
		go func() {
			if err := s.dbg.ListenAndServe(ctx, s.cfg.DebugAddr); err != nil {
				s.log.Error("debug endpoint", "error", err)
			}
		}()
	}

	s.log.Info("terrain server started",
		"seed", s.cfg.Seed,
		"chunkSize", s.cfg.ChunkSize,
		"resolution", s.cfg.Resolution,
		"renderDistance", s.cfg.RenderDistance,
		"tickRate", s.cfg.TickRate,
	)

	ticker := time.NewTicker(time.Second / time.Duration(s.cfg.TickRate))
	defer ticker.Stop()

	report := time.NewTicker(5 * time.Second)
	defer report.Stop()

	// Scripted walker: a wide circle through several climate regions, so the
	// pipeline exercises loads and unloads continuously.
	const walkRadius = 900.0
	const walkSpeed = 0.02 // radians per second
	start := time.Now()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("terrain server shutting down")
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.mgr.Flush(flushCtx); err != nil {
				s.log.Error("flush pending chunks", "error", err)
			}
			return nil
		case <-report.C:
			s.log.Info("chunk status", "loaded", len(s.mgr.Loaded()), "tracked", s.mgr.Tracked())
		case <-ticker.C:
			angle := time.Since(start).Seconds() * walkSpeed
			x := walkRadius * math.Cos(angle)
			z := walkRadius * math.Sin(angle)
			s.mgr.Update(ctx, x, z)
		}
	}
}

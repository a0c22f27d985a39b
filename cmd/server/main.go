package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/emberwood/terrain-server/internal/server"
	"github.com/emberwood/terrain-server/internal/server/config"
)

func main() {
	cfg := config.DefaultConfig()

	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "world seed for all noise channels")
	flag.Float64Var(&cfg.ChunkSize, "chunk-size", cfg.ChunkSize, "world units per chunk side")
	flag.IntVar(&cfg.Resolution, "resolution", cfg.Resolution, "grid samples per chunk side")
	flag.IntVar(&cfg.RenderDistance, "render-distance", cfg.RenderDistance, "chunk radius kept loaded")
	flag.IntVar(&cfg.TickRate, "tick-rate", cfg.TickRate, "update calls per second")
	flag.StringVar(&cfg.AssetDir, "assets", cfg.AssetDir, "decoration model pack directory")
	flag.StringVar(&cfg.DebugAddr, "debug-addr", cfg.DebugAddr, "debug websocket listen address (empty = off)")
	configPath := flag.String("config", "", "JSON config file path")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			log.Error("read config", "path", *configPath, "error", err)
			os.Exit(1)
		}
		fromFile := config.DefaultConfig()
		if err := json.Unmarshal(data, fromFile); err != nil {
			log.Error("parse config", "path", *configPath, "error", err)
			os.Exit(1)
		}

		explicit := make(map[string]bool)
		flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
		config.Merge(cfg, fromFile, explicit)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv := server.New(cfg, log)
	if err := srv.Start(ctx); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

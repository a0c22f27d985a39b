// packfetch downloads a decoration model pack into the assets directory.
// Any go-getter source works: git::, http::, or a local path.
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/emberwood/terrain-server/internal/assets"
)

func main() {
	var (
		src = flag.String("src", "", "pack source URL (go-getter syntax)")
		out = flag.String("o", "./assets", "output dir path")
	)
	flag.Parse()

	if *src == "" {
		log.Fatal("pack source URL required")
	}
	if *out == "" {
		log.Fatal("output dir path required")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Printf("start downloading pack %s", *src)
	if err := assets.FetchPack(ctx, *src, *out); err != nil {
		log.Fatalf("fetch pack: %v", err)
	}
	log.Printf("done downloading pack into %s", *out)
}

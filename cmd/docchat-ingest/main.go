package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"docchat/internal/app"
	"docchat/internal/domain"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/docchat/config.yaml if not provided)")
	flag.Parse()

	ctx := context.Background()
	a, err := app.Build(ctx, app.Options{ConfigPath: cfgPath})
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}

	if n, err := a.Index.Count(ctx); err == nil && n > 0 {
		color.Yellow("existing index with %d entries will be replaced", n)
	}

	fmt.Printf("ingesting documents from %s\n", a.Config.Documents.Dir)
	stats, err := a.Service.Ingest(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNoDocuments) {
			color.Red("no readable documents in %s", a.Config.Documents.Dir)
			os.Exit(1)
		}
		log.Fatalf("ingest failed: %v", err)
	}
	color.Green("indexed %d chunks from %d pages (model %s)", stats.Chunks, stats.Pages, a.Embedder.ModelName())
}

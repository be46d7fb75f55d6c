package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"docchat/internal/app"
)

const snippetLen = 200

func main() {
	_ = godotenv.Load()

	var cfgPath string
	var topK int
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/docchat/config.yaml if not provided)")
	flag.IntVar(&topK, "k", 3, "Number of results to show")
	flag.Parse()

	query := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if query == "" {
		fmt.Println("Usage: docchat-search [--config=config.yaml] [-k=3] query text")
		return
	}

	ctx := context.Background()
	a, err := app.Build(ctx, app.Options{ConfigPath: cfgPath})
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}

	hits, err := a.Service.Retrieve(ctx, query, topK)
	if err != nil {
		log.Fatalf("search failed: %v", err)
	}
	if len(hits) == 0 {
		color.Yellow("no results (is the index built? run docchat-ingest)")
		return
	}

	for i, h := range hits {
		color.Cyan("%d. distance=%.4f  %s p.%d", i+1, h.Distance, h.Chunk.SourceID, h.Chunk.PageNumber)
		fmt.Println("   " + snippet(h.Chunk.Content))
	}
}

// snippet flattens the chunk to a single line and truncates it.
func snippet(text string) string {
	flat := strings.Join(strings.Fields(text), " ")
	runes := []rune(flat)
	if len(runes) <= snippetLen {
		return flat
	}
	return string(runes[:snippetLen]) + "..."
}

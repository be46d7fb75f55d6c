package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"docchat/internal/app"
	"docchat/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	var question string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/docchat/config.yaml if not provided)")
	flag.StringVar(&question, "ask", "", "Answer a single question and exit instead of starting the chat")
	flag.Parse()

	ctx := context.Background()
	a, err := app.Build(ctx, app.Options{ConfigPath: cfgPath, WithGenerator: true})
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}

	if question != "" {
		answer, err := a.Service.Ask(ctx, question)
		if err != nil {
			log.Fatalf("ask failed: %v", err)
		}
		fmt.Println(answer)
		return
	}

	m := tui.New(a.Service)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		log.Fatal(err)
	}
}

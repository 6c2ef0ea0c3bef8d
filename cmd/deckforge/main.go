// Package main provides the deckforge CLI: card corpus import, indexed
// search, randomized deck generation, deck charts, and the REST API server.
package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ramonehamilton/deckforge/internal/config"
	"github.com/ramonehamilton/deckforge/internal/version"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	setupLogging(cfg)

	switch os.Args[1] {
	case "import":
		runImportCommand(cfg)
	case "search":
		runSearchCommand(cfg)
	case "generate":
		runGenerateCommand(cfg)
	case "chart":
		runChartCommand(cfg)
	case "serve":
		runServeCommand(cfg)
	case "migrate":
		runMigrateCommand(cfg)
	case "version", "-v", "--version":
		fmt.Println("deckforge", version.GetVersion())
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func setupLogging(cfg *config.Config) {
	level := slog.LevelInfo
	if cfg.App.DebugMode {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func printUsage() {
	fmt.Println("deckforge - card search and deck generation")
	fmt.Println()
	fmt.Println("Usage: deckforge <command> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  import    - Load a card corpus file into the local database")
	fmt.Println("  search    - Search the card index")
	fmt.Println("  generate  - Generate randomized decks under constraints")
	fmt.Println("  chart     - Generate a deck and render its charts as HTML")
	fmt.Println("  serve     - Run the REST API server")
	fmt.Println("  migrate   - Run database migrations")
	fmt.Println("  version   - Print the build version")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  deckforge import -corpus cards.jsonl")
	fmt.Println("  deckforge search -text \"draw a card\" -colors u -format modern")
	fmt.Println("  deckforge generate -deck-format commander -commander \"Atraxa, Praetors' Voice\"")
	fmt.Println("  deckforge serve -port 8080 -watch")
	fmt.Println("  deckforge migrate up")
	fmt.Println()
}

// defaultDBPath resolves the database path from flag, config, or the
// per-user default.
func defaultDBPath(flagValue string, cfg *config.Config) string {
	if flagValue != "" {
		return flagValue
	}
	if cfg.Database.Path != "" {
		return cfg.Database.Path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Error getting home directory: %v", err)
	}
	return filepath.Join(home, ".deckforge", "data.db")
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ramonehamilton/deckforge/internal/api"
	"github.com/ramonehamilton/deckforge/internal/cards/index"
	"github.com/ramonehamilton/deckforge/internal/config"
	"github.com/ramonehamilton/deckforge/internal/corpus"
	"github.com/ramonehamilton/deckforge/internal/metrics"
)

func runServeCommand(cfg *config.Config) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	corpusPath := fs.String("corpus", "", "Card corpus file (default: the local database)")
	dbPath := fs.String("db", "", "Database path (default: ~/.deckforge/data.db)")
	host := fs.String("host", cfg.Server.Host, "Bind address")
	port := fs.Int("port", cfg.Server.Port, "API server port")
	watch := fs.Bool("watch", cfg.Corpus.Watch, "Rebuild the index when the corpus file changes")
	_ = fs.Parse(os.Args[2:])

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool := loadCorpus(ctx, cfg, *corpusPath, *dbPath)
	idx := buildIndex(ctx, pool)
	provider := index.NewProvider(idx)

	engineMetrics := metrics.NewEngineMetrics()
	engineMetrics.RecordIndexBuild(idx.BuildDuration(), idx.Size())

	db, store := openStore(defaultDBPath(*dbPath, cfg))
	defer func() { _ = db.Close() }()

	server, err := api.NewServer(&api.Config{
		Host:     *host,
		Port:     *port,
		Provider: provider,
		Store:    store,
		Metrics:  engineMetrics,
		Logger:   slog.Default(),
	})
	if err != nil {
		log.Fatalf("Error creating API server: %v", err)
	}

	if err := server.Start(); err != nil {
		log.Fatalf("Error starting API server: %v", err)
	}
	fmt.Printf("deckforge API listening on %s:%d (%d cards indexed)\n", *host, *port, idx.Size())

	watchPath := *corpusPath
	if watchPath == "" {
		watchPath = cfg.Corpus.FilePath
	}
	if *watch && watchPath != "" {
		debounce, err := cfg.GetWatchDebounce()
		if err != nil {
			log.Fatalf("Invalid watch debounce: %v", err)
		}

		watcher, err := corpus.NewWatcher(corpus.WatcherConfig{
			Loader:   newLoader(cfg),
			Provider: provider,
			Logger:   slog.Default(),
			Path:     watchPath,
			Debounce: debounce,
			OnSwap: func(newIdx *index.Index) {
				engineMetrics.RecordIndexBuild(newIdx.BuildDuration(), newIdx.Size())
			},
		})
		if err != nil {
			log.Fatalf("Error creating corpus watcher: %v", err)
		}

		go func() {
			if err := watcher.Watch(ctx); err != nil && ctx.Err() == nil {
				slog.Error("corpus watcher stopped", "error", err)
			}
		}()
		fmt.Printf("Watching %s for changes\n", watchPath)
	}

	<-ctx.Done()
	fmt.Println("\nShutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
}

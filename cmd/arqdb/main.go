package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/arqdb/arqdb/internal/server"
	"github.com/arqdb/arqdb/pkg/engine"
)

func main() {
	configPath := flag.String("config", "", "Path to the YAML configuration file")
	httpAddr := flag.String("http-addr", "", "Listen address for the HTTP API (overrides config, e.g. :8080)")
	flag.Parse()

	cfg, err := server.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Cannot load configuration: %v", err)
	}
	if *httpAddr != "" {
		cfg.HTTPAddr = *httpAddr
	}

	setupLogging(cfg.LogLevel)

	opts := engine.DefaultOptions()
	opts.MaxGraphs = cfg.MaxGraphs
	eng, err := engine.Open(opts)
	if err != nil {
		log.Fatalf("Cannot open engine: %v", err)
	}

	srv, err := server.NewServer(eng, cfg)
	if err != nil {
		log.Fatalf("Cannot create server: %v", err)
	}

	// listen for the interrupt signal (Ctrl+C) or SIGTERM
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Run(); err != nil {
			log.Fatal(err)
		}
	}()

	<-shutdownChan

	srv.Shutdown()
	eng.Close()
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

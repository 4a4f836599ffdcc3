package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/JackWithOneEye/metroview/internal/config"
	"github.com/JackWithOneEye/metroview/internal/database"
	"github.com/JackWithOneEye/metroview/internal/metromap"
	"github.com/JackWithOneEye/metroview/internal/server"
)

func main() {
	ctx := context.Background()
	cfg := config.NewConfig()
	dbs := database.NewDatabaseService(cfg)
	defer dbs.Close()

	content, err := metromap.Load(cfg.MapFile())
	if err != nil {
		log.Fatalf("could not load map: %s", err)
	}
	log.Printf("serving %q (%dx%d) on port %d", content.Name, content.Width, content.Height, cfg.Port())

	s := server.NewServer(cfg, dbs, content)

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.ListenAndServe()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	select {
	case err := <-errChan:
		log.Printf("could not serve: %v", err)
	case sig := <-sigChan:
		log.Printf("terminating: %v", sig)
	}

	ctx2, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	if err := s.Shutdown(ctx2); err != nil {
		log.Printf("could not shut down cleanly: %v", err)
	}
}

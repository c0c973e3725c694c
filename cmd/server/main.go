package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/coppermine-games/craftd/internal/config"
	"github.com/coppermine-games/craftd/internal/game/item"
	"github.com/coppermine-games/craftd/internal/game/recipe"
	"github.com/coppermine-games/craftd/internal/server"
)

func main() {
	log.Println("Starting craftd server...")

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./configs/server.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Configuration loaded from %s", configPath)
	log.Printf("Server will run on %s:%d", cfg.Server.Host, cfg.Server.Port)

	// Load the item catalog, falling back to the built-in sample
	var catalog *item.Catalog
	if cfg.Data.ItemFile != "" {
		catalog, err = item.LoadCatalog(cfg.Data.ItemFile)
		if err != nil {
			log.Fatalf("Failed to load item catalog: %v", err)
		}
	} else {
		catalog = item.SampleCatalog()
	}

	// Load item tags
	var tags *item.TagRegistry
	if cfg.Data.TagDir != "" {
		tags, err = item.LoadTagDir(cfg.Data.TagDir)
		if err != nil {
			log.Fatalf("Failed to load item tags: %v", err)
		}
	} else {
		tags = item.SampleTags()
	}

	// Load recipes; a single bad descriptor aborts startup
	recipes, err := recipe.LoadDir(cfg.Data.RecipeDir)
	if err != nil {
		log.Fatalf("Failed to load recipes: %v", err)
	}
	log.Printf("Loaded %d recipes from %s", recipes.Len(), cfg.Data.RecipeDir)

	// Create and initialize server
	srv, err := server.New(cfg, catalog, tags, recipes)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		log.Printf("Server listening on %s", addr)
		if err := srv.Start(addr); err != nil {
			errChan <- err
		}
	}()

	// Wait for interrupt signal or error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		log.Fatalf("Server error: %v", err)
	case sig := <-sigChan:
		log.Printf("Received signal %v, shutting down...", sig)
	}

	// Graceful shutdown
	if err := srv.Shutdown(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Server stopped")
}

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/lenscart/backend/config"
	httpDelivery "github.com/lenscart/backend/internal/delivery/http"
	"github.com/lenscart/backend/internal/infrastructure/catalog"
	"github.com/lenscart/backend/internal/infrastructure/openai"
	"github.com/lenscart/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Lenscart Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Catalog: %s", cfg.Catalog.Path)

	// Initialize infrastructure dependencies
	repo, err := catalog.NewSQLiteRepository(cfg.Catalog.Path)
	if err != nil {
		log.Fatalf("Failed to open catalog: %v", err)
	}
	defer repo.Close()

	visionClient := openai.NewClient(cfg.Vision.APIKey, cfg.Vision.BaseURL, openai.Options{
		Model:         cfg.Vision.Model,
		Temperature:   cfg.Vision.Temperature,
		MaxTokens:     cfg.Vision.MaxTokens,
		Timeout:       cfg.Vision.Timeout,
		RatePerMinute: cfg.Vision.RatePerMinute,
	})

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		visionClient.SetDebug(true)
		log.Printf("Vision client debug mode enabled")
	}

	if cfg.Vision.APIKey != "" {
		log.Printf("Vision API configured: %s (model: %s)", cfg.Vision.BaseURL, cfg.Vision.Model)
	} else {
		log.Printf("Vision API not configured - search will use catalog vocabulary only")
	}

	// Initialize usecase layer
	searchService := usecase.NewSearchService(
		repo,
		visionClient,
		usecase.SearchServiceConfig{
			VocabScanLimit: cfg.Search.VocabScanLimit,
			VocabSize:      cfg.Search.VocabSize,
			ScanLimit:      cfg.Search.ScanLimit,
			FallbackLimit:  cfg.Search.FallbackLimit,
			MaxResults:     cfg.Search.MaxResults,
		},
	)

	log.Printf("Search: scan=%d, fallback=%d, max_results=%d",
		cfg.Search.ScanLimit, cfg.Search.FallbackLimit, cfg.Search.MaxResults)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(searchService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}

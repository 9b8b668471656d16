package main

import (
	"fmt"
	"log"
	"os"

	"github.com/papercheck/backend/config"
	httpDelivery "github.com/papercheck/backend/internal/delivery/http"
	"github.com/papercheck/backend/internal/infrastructure/cache"
	"github.com/papercheck/backend/internal/infrastructure/ocr"
	"github.com/papercheck/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting PaperCheck Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Cache Type: %s", cfg.Cache.Type)

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()
	defer memoryCache.Close()
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	ocrClient := ocr.NewClient(ocr.ClientConfig{
		BaseURL:           cfg.OCR.BaseURL,
		APIKey:            cfg.OCR.APIKey,
		Timeout:           cfg.OCR.Timeout,
		RequestsPerSecond: cfg.OCR.RequestsPerSecond,
		Burst:             cfg.OCR.Burst,
	})

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		ocrClient.SetDebug(true)
		log.Printf("OCR client debug mode enabled")
	}

	if cfg.OCR.APIKey != "" {
		log.Printf("OCR service configured: %s (authenticated)", cfg.OCR.BaseURL)
	} else {
		log.Printf("OCR service configured: %s (no API key)", cfg.OCR.BaseURL)
	}

	// Initialize usecase layer
	validationService := usecase.NewValidationService(
		memoryCache,
		ocrClient,
		usecase.ValidationServiceConfig{
			CacheTTL: cfg.Cache.TTL,
			Engine: usecase.EngineConfig{
				MaxDistance:        usecase.Tolerance(cfg.Matching.MaxDistance),
				StrictReference:    cfg.Matching.StrictReference,
				BijectiveNames:     cfg.Matching.BijectiveNames,
				FoldAccents:        cfg.Matching.FoldAccents,
				EnableDebugLogging: cfg.Matching.EnableDebugLogging,
			},
		},
	)

	log.Printf("Matching: max_distance=%d, strict=%v, bijective=%v, fold_accents=%v, debug=%v",
		cfg.Matching.MaxDistance,
		cfg.Matching.StrictReference,
		cfg.Matching.BijectiveNames,
		cfg.Matching.FoldAccents,
		cfg.Matching.EnableDebugLogging)

	if cfg.RateLimit.PerIP > 0 {
		log.Printf("Rate limit: %d requests/minute per IP", cfg.RateLimit.PerIP)
	}

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(validationService, cfg.Server.MaxUploadBytes)

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

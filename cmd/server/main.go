package main

import (
	"fmt"
	"log"

	"refinery/internal/analyzer"
	"refinery/internal/analyzer/gemini"
	"refinery/internal/analyzer/huggingface"
	"refinery/internal/config"
	"refinery/internal/extract"
	"refinery/internal/handler"
	"refinery/internal/port"
	"refinery/internal/repository/postgres"
	"refinery/internal/router"
	"refinery/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	refinementRepo := postgres.NewRefinementRepo(db)

	// Initialize extraction engine
	engine := extract.NewEngine(cfg.Extract)

	// Initialize analyzer providers
	analyzer.RegisterProvider("gemini", func(c *config.AnalyzerConfig) (port.Analyzer, error) {
		return gemini.NewAnalyzer(c), nil
	})
	analyzer.RegisterProvider("huggingface", func(c *config.AnalyzerConfig) (port.Analyzer, error) {
		return huggingface.NewAnalyzer(c), nil
	})
	modelAnalyzer, err := analyzer.NewAnalyzer(&cfg.Analyzer)
	if err != nil {
		return fmt.Errorf("failed to initialize analyzer: %w", err)
	}

	// Initialize services
	refinementSvc := service.NewRefinementService(refinementRepo, engine, modelAnalyzer, cfg.Upload)

	// Initialize handlers
	refinementH := handler.NewRefinementHandler(refinementSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, refinementH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

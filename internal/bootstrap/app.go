// Package bootstrap initializes and wires all application components.
package bootstrap

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/ReeceHarding/landing-page/internal/api"
	"github.com/ReeceHarding/landing-page/internal/config"
	"github.com/ReeceHarding/landing-page/internal/generator"
	"github.com/ReeceHarding/landing-page/internal/handlers"
	"github.com/ReeceHarding/landing-page/internal/httpserver"
	"github.com/ReeceHarding/landing-page/internal/llm"
	"github.com/ReeceHarding/landing-page/internal/logger"
	"github.com/ReeceHarding/landing-page/internal/metrics"
	"github.com/ReeceHarding/landing-page/internal/normalizer"
	"github.com/ReeceHarding/landing-page/internal/store"
)

// Start initializes all components and runs the HTTP server until shutdown.
func Start() error {
	cfg, err := config.Load(config.GetConfigPath("config.yaml"))
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Debug,
	})
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting landing-page service",
		logger.Int("port", cfg.Server.Port),
		logger.String("llm_model", cfg.LLM.Model),
	)

	if cfg.Store.Placeholder {
		log.Warn("No store credentials configured, using local placeholder backend",
			logger.String("address", cfg.Store.Address),
		)
	}

	preview, dynamic, err := buildStores(cfg, log)
	if err != nil {
		return err
	}

	service := buildService(cfg, preview, dynamic, log)
	m := metrics.New()

	srv := httpserver.New(httpserver.Config{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		Debug:        cfg.Debug,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		CORSOrigins:  cfg.Server.CORSOrigins,
	}, log, func(router *gin.Engine) {
		api.RegisterRoutes(router, api.Handlers{
			Generate: handlers.NewGenerateHandler(service, m, log),
			Content:  handlers.NewContentHandler(dynamic, preview, log),
			Suggest:  handlers.NewSuggestHandler(service, log),
		}, m)
	})

	return srv.Run()
}

// buildStores connects to the key-value backend and returns the preview and
// dynamic store variants. The dynamic variant verifies every write.
func buildStores(cfg *config.Config, log logger.Logger) (*store.ContentStore, *store.ContentStore, error) {
	client, err := store.NewRedisClient(store.ClientConfig{
		Address:  cfg.Store.Address,
		Password: cfg.Store.Password,
		DB:       cfg.Store.DB,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("store backend: %w", err)
	}

	preview := store.New(client, store.Options{
		KeyPrefix: cfg.Store.PreviewPrefix,
		Retention: cfg.Store.Retention,
	}, log)

	dynamic := store.New(client, store.Options{
		KeyPrefix:    cfg.Store.DynamicPrefix,
		Retention:    cfg.Store.Retention,
		VerifyWrites: true,
	}, log)

	return preview, dynamic, nil
}

// buildService assembles the generation pipeline.
func buildService(cfg *config.Config, preview, dynamic *store.ContentStore, log logger.Logger) *generator.Service {
	client := llm.NewClient(llm.Config{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
	}, log)

	return generator.NewService(client, normalizer.New(log), preview, dynamic, log)
}

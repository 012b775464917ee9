package main

import (
	"context"

	"triage/internal/classify"
	"triage/internal/config"
	"triage/internal/email"
	"triage/internal/openai"
	"triage/internal/processor"
	"triage/internal/server"
	"triage/internal/store"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Setup logger
	logger := cfg.SetupLogger()

	// Initialize the OpenAI client; without a key every classification
	// task runs on its deterministic fallback
	aiClient, err := openai.NewClient(cfg)
	if err != nil {
		logger.Warn().Err(err).Msg("Running with fallback-only classification")
	} else {
		logger.Info().Str("model", aiClient.Model()).Msg("OpenAI client initialized")
	}

	analyzer := classify.NewAnalyzer(aiClient, logger)
	proc := processor.New(analyzer, logger)
	st := store.New(proc, logger)
	dispatcher := email.NewDispatcher(cfg.SendGridAPIKey, cfg.ReplyFromEmail, cfg.ReplyFromName)

	// Seed the sample dataset before serving so the first reads see a
	// populated dashboard
	if cfg.SeedOnStartup {
		raws, err := store.LoadSampleCSV(cfg.SampleDataPath)
		if err != nil {
			logger.Warn().Err(err).Str("path", cfg.SampleDataPath).Msg("Sample data not loaded")
		} else {
			st.Seed(context.Background(), raws)
		}
	}

	// Create and initialize server
	srv := server.New(cfg, st, proc, dispatcher, logger)
	srv.Initialize()

	// Start server
	if err := srv.Start(); err != nil {
		logger.Fatal().Err(err).Msg("Server failed to start")
	}
}

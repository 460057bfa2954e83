package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-screener/internal/config"
	"github.com/jonathan/resume-screener/internal/db"
	"github.com/jonathan/resume-screener/internal/ingestion"
	"github.com/jonathan/resume-screener/internal/llm"
	"github.com/jonathan/resume-screener/internal/screening"
	"github.com/jonathan/resume-screener/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for screening resumes and querying candidates.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}
	for _, check := range []func() error{settings.RequirePersistence, settings.RequireLLM, settings.RequireServer} {
		if err := check(); err != nil {
			return err
		}
	}
	if servePort != 0 {
		settings.Port = servePort
	}

	ctx := cmd.Context()

	database, err := db.Connect(ctx, settings.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	client, err := llm.NewGeminiClient(ctx, settings.GeminiAPIKey, settings.LLMModel, settings.LLMCallTimeout)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	pipeline := screening.NewPipeline(client,
		llm.GenerateOptions{
			Temperature: settings.ExtractionTemperature,
			MaxTokens:   settings.ExtractionMaxTokens,
		},
		llm.GenerateOptions{
			Temperature: settings.ScoringTemperature,
			MaxTokens:   settings.ScoringMaxTokens,
		},
		screening.DefaultDecisionRule,
	)

	sessions, err := server.NewSessionService(settings.SessionSecret, settings.SessionTTL)
	if err != nil {
		return fmt.Errorf("failed to create session service: %w", err)
	}

	srv, err := server.New(server.Config{
		Port:           settings.Port,
		Store:          database,
		Screener:       pipeline,
		TextExtractor:  ingestion.NewPDFExtractor(),
		Sessions:       sessions,
		AdminUsername:  settings.AdminUsername,
		AdminPassword:  settings.AdminPassword,
		MaxUploadBytes: settings.MaxUploadMB << 20,
		CORSOrigins:    settings.CORSOrigins,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

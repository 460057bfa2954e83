package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-screener/internal/config"
	"github.com/jonathan/resume-screener/internal/db"
	"github.com/jonathan/resume-screener/internal/ingestion"
	"github.com/jonathan/resume-screener/internal/llm"
	"github.com/jonathan/resume-screener/internal/screening"
)

var (
	screenResumePath string
	screenJobPath    string
	screenSave       bool
)

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Screen one resume against a job description",
	Long:  `Extract a candidate profile from a PDF resume, score it against a job description file, and print the result as JSON.`,
	RunE:  runScreen,
}

func init() {
	screenCmd.Flags().StringVar(&screenResumePath, "resume", "", "Path to the PDF resume (required)")
	screenCmd.Flags().StringVar(&screenJobPath, "job", "", "Path to the job description text file (required)")
	screenCmd.Flags().BoolVar(&screenSave, "save", false, "Persist the result to the database")
	_ = screenCmd.MarkFlagRequired("resume")
	_ = screenCmd.MarkFlagRequired("job")
	rootCmd.AddCommand(screenCmd)
}

func runScreen(cmd *cobra.Command, _ []string) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}
	if err := settings.RequireLLM(); err != nil {
		return err
	}
	if screenSave {
		if err := settings.RequirePersistence(); err != nil {
			return err
		}
	}

	resumeData, err := os.ReadFile(screenResumePath)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}
	jobData, err := os.ReadFile(screenJobPath)
	if err != nil {
		return fmt.Errorf("failed to read job description: %w", err)
	}

	resumeText, err := ingestion.NewPDFExtractor().ExtractText(resumeData)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

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

	result, err := pipeline.Screen(ctx, resumeText, string(jobData), filepath.Base(screenResumePath))
	if err != nil {
		return err
	}

	if screenSave {
		database, err := db.Connect(ctx, settings.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()

		if err := database.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		candidateID, err := database.SaveScreeningResult(ctx, result, resumeText)
		if err != nil {
			return fmt.Errorf("failed to save screening result: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Saved as candidate %d\n", candidateID)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

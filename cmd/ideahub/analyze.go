package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ananya/ideahub/internal/analysis"
	"github.com/ananya/ideahub/internal/db"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	analyzeProjectID string
	analyzeAll       bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the automated assessment for submissions",
	Long:  `Run the model-backed assessment pipeline for a single submission or for every submission that has not been assessed yet. Useful when the server ran without an API key.`,
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeProjectID, "project", "", "Project ID to assess")
	analyzeCmd.Flags().BoolVar(&analyzeAll, "all", false, "Assess every submission without an analysis")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, _ []string) error {
	if analyzeProjectID == "" && !analyzeAll {
		return fmt.Errorf("either --project or --all is required")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	analyzer, err := analysis.New(ctx, apiKey)
	if err != nil {
		return fmt.Errorf("failed to create analyzer: %w", err)
	}
	defer analyzer.Close()

	var projects []db.Project
	if analyzeProjectID != "" {
		projectID, err := uuid.Parse(analyzeProjectID)
		if err != nil {
			return fmt.Errorf("invalid project ID: %w", err)
		}
		project, err := database.GetProject(ctx, projectID)
		if err != nil {
			return fmt.Errorf("failed to load project: %w", err)
		}
		if project == nil {
			return fmt.Errorf("project %s not found", projectID)
		}
		projects = []db.Project{*project}
	} else {
		all, err := database.ListProjects(ctx)
		if err != nil {
			return fmt.Errorf("failed to list projects: %w", err)
		}
		for _, p := range all {
			if len(p.Analysis) == 0 {
				projects = append(projects, p)
			}
		}
	}

	if len(projects) == 0 {
		fmt.Println("Nothing to assess")
		return nil
	}

	for i := range projects {
		project := &projects[i]
		fmt.Printf("Assessing %s (%s)...\n", project.Title, project.ID)

		result, err := analyzer.Analyze(ctx, project)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  failed: %v\n", err)
			continue
		}

		if err := database.UpdateProjectAnalysis(ctx, project.ID, result.RawAnalysis, result.RawFeasibility); err != nil {
			fmt.Fprintf(os.Stderr, "  failed to store analysis: %v\n", err)
			continue
		}
		if len(result.RawFeedback) > 0 {
			if err := database.UpdateProjectFeedback(ctx, project.ID, result.RawFeedback); err != nil {
				fmt.Fprintf(os.Stderr, "  failed to store feedback: %v\n", err)
			}
		}
		if result.PotentialCategory != "" {
			if err := database.UpdatePotentialCategory(ctx, project.ID, result.PotentialCategory); err != nil {
				fmt.Fprintf(os.Stderr, "  failed to store category: %v\n", err)
			}
		}
		fmt.Printf("  done (potential: %s)\n", result.PotentialCategory)
	}

	return nil
}

// Package main provides the entry point for the IdeaHub HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ideahub",
	Short: "IdeaHub idea review API server",
	Long:  "IdeaHub collects student business idea submissions, runs automated feasibility assessments and serves the student, mentor and admin review dashboards via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

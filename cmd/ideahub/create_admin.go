package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ananya/ideahub/internal/config"
	"github.com/ananya/ideahub/internal/db"
	"github.com/ananya/ideahub/internal/types"
	"github.com/spf13/cobra"
)

var (
	adminName     string
	adminEmail    string
	adminPassword string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin account",
	Long:  `Create an admin account directly in the database. Used to bootstrap a fresh deployment before any users exist.`,
	RunE:  runCreateAdmin,
}

func init() {
	createAdminCmd.Flags().StringVar(&adminName, "name", "", "Admin display name")
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "Admin email address")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "Admin password (min 8 characters)")
	_ = createAdminCmd.MarkFlagRequired("name")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(createAdminCmd)
}

func runCreateAdmin(_ *cobra.Command, _ []string) error {
	req := types.CreateUserRequest{
		Name:     adminName,
		Email:    adminEmail,
		Password: adminPassword,
		Role:     types.RoleAdmin,
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid admin details: %w", err)
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	exists, err := database.CheckEmailExists(ctx, adminEmail)
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return fmt.Errorf("an account with email %s already exists", adminEmail)
	}

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return fmt.Errorf("failed to create password config: %w", err)
	}
	hash, err := passwordConfig.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	userID, err := database.CreateUser(ctx, adminName, adminEmail, types.RoleAdmin, "", "")
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}
	if err := database.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("failed to set password: %w", err)
	}

	fmt.Printf("Admin account created: %s (%s)\n", adminName, userID)
	return nil
}

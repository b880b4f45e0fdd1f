package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/storerating/rating-system/internal/core/domain"
	"github.com/storerating/rating-system/internal/core/ports"
	"github.com/storerating/rating-system/internal/core/service"
	"github.com/storerating/rating-system/internal/infrastructure/config"
	"github.com/storerating/rating-system/internal/infrastructure/security"
	"github.com/storerating/rating-system/pkg/logger"
)

var (
	adminName     string
	adminEmail    string
	adminPassword string
)

// createAdminCmd seeds the first administrator.
var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin account",
	Long: `Create an admin account in the configured storage.

If an account with the given email already exists it is left untouched.`,
	RunE: runCreateAdmin,
}

func init() {
	createAdminCmd.Flags().StringVar(&adminName, "name", "", "Display name (20-60 characters)")
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "Login email")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "Password (8-16 characters, one uppercase, one special)")
	_ = createAdminCmd.MarkFlagRequired("name")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")
}

func runCreateAdmin(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "store-ratings"})

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStorage(store, log)

	existing, err := store.users.FindCredentialsByEmail(ctx, domain.NormalizeEmail(adminEmail))
	switch {
	case err == nil:
		fmt.Fprintf(cmd.OutOrStdout(), "account %s already exists with role %s; nothing to do\n", existing.User.Email, existing.User.Role)
		return nil
	case !errors.Is(err, domain.ErrNotFound):
		return err
	}

	admin := service.NewAdminService(store.users, store.stores, store.ratings,
		security.NewBcryptHasher(cfg.Auth.BcryptCost), logger.Component("admin"))
	user, err := admin.CreateUser(ctx, ports.CreateUserInput{
		Name:     adminName,
		Email:    adminEmail,
		Password: adminPassword,
		Role:     string(domain.RoleAdmin),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (%s)\n", user.Email, user.ID)
	return nil
}

// Command trainingctl runs maintenance tasks against the training center database.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"trainingcenter_backend/internals/configs"
	database "trainingcenter_backend/internals/databases"
	scheduler "trainingcenter_backend/internals/features/users/auth/scheduler"
	"trainingcenter_backend/internals/seeds"
	"trainingcenter_backend/internals/seeds/users"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "trainingctl",
		Short:         "Maintenance commands for the training center backend",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(*cobra.Command, []string) {
			configs.LoadEnv()
		},
	}
	root.AddCommand(migrateCmd(), seedCmd(), seedAdminCmd(), cleanupTokensCmd())
	return root
}

// withDB opens the database for one command and closes it afterwards.
func withDB(fn func(db *gorm.DB) error) error {
	db, err := configs.InitCLIDB()
	if err != nil {
		return err
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()
	return fn(db)
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update tables and constraints",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(func(db *gorm.DB) error {
				if err := database.Migrate(db); err != nil {
					return err
				}
				log.Println("[INFO] migration done")
				return nil
			})
		},
	}
}

func seedCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load catalog and user fixtures from JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(func(db *gorm.DB) error {
				return seeds.RunAllSeeds(db, dir)
			})
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "internals/seeds", "directory holding catalog/ and users/ fixtures")
	return cmd
}

func seedAdminCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create the first administrator (ADMIN_EMAIL / ADMIN_PASSWORD)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if email == "" {
				email = configs.GetEnv("ADMIN_EMAIL")
			}
			if password == "" {
				password = configs.GetEnv("ADMIN_PASSWORD")
			}
			if email == "" || password == "" {
				return errors.New("admin email and password are required")
			}
			return withDB(func(db *gorm.DB) error {
				created, err := users.SeedAdmin(db, email, password)
				if err != nil {
					return err
				}
				if created {
					fmt.Fprintf(cmd.OutOrStdout(), "admin %s created\n", email)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "admin %s already exists\n", email)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin email (defaults to ADMIN_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "admin password (defaults to ADMIN_PASSWORD)")
	return cmd
}

func cleanupTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup-tokens",
		Short: "Delete expired blacklist entries and refresh tokens now",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(func(db *gorm.DB) error {
				ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
				defer cancel()
				return scheduler.RunTokenCleanup(ctx, db)
			})
		},
	}
}

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodloss-backend/cmd/config"
	migration "foodloss-backend/cmd/database/migrate"
	"foodloss-backend/internal/utils"

	"github.com/gofiber/fiber/v2/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "foodloss",
		Short: "Surplus food marketplace backend",
		Long: `Backend for listing discounted surplus food.

Configuration is read from the environment, .env and config.yaml,
in that order of precedence.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			utils.LoadConfig()
		},
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newSweepCmd())
	root.AddCommand(newCreateAdminCmd())
	return root
}

func openDB(migrate bool) (*gorm.DB, error) {
	db, err := config.ConnectDB()
	if err != nil {
		return nil, err
	}
	if migrate {
		if err := migration.Migrate(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

func newServeCmd() *cobra.Command {
	var autoMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB(autoMigrate)
			if err != nil {
				return err
			}

			app, err := config.NewApp(db)
			if err != nil {
				return err
			}

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
			go func() {
				<-quit
				log.Info("shutting down")
				_ = app.ShutdownWithTimeout(10 * time.Second)
			}()

			port := utils.GetConfig("APP_PORT")
			log.Infof("listening on :%s", port)
			return app.Listen(":" + port)
		},
	}
	cmd.Flags().BoolVar(&autoMigrate, "migrate", false, "run schema migration before serving")
	return cmd
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := openDB(true); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migration complete")
			return nil
		},
	}
}

func newSweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep-expired",
		Short: "Mark past-expiry listings EXPIRED and purge stale logout records",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB(false)
			if err != nil {
				return err
			}
			services := config.NewServices(config.DefaultDependencies(db))

			now := time.Now()
			result, err := services.Food.SweepExpired(cmd.Context(), now)
			if err != nil {
				return err
			}
			purged, err := services.User.PurgeRevokedTokens(cmd.Context(), now)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "expired %d listings, purged %d revoked tokens\n", result.Expired, purged)
			return nil
		},
	}
}

func newCreateAdminCmd() *cobra.Command {
	var email, password, name string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an ADMIN account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(password) < 6 {
				return fmt.Errorf("password must be at least 6 characters")
			}
			db, err := openDB(false)
			if err != nil {
				return err
			}
			services := config.NewServices(config.DefaultDependencies(db))

			admin, err := services.User.RegisterAdmin(cmd.Context(), email, password, name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (%s)\n", admin.Email, admin.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin email")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	cmd.Flags().StringVar(&name, "name", "Administrator", "display name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

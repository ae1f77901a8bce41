package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"medicloud-backend/internal/config"
	"medicloud-backend/internal/database"
	"medicloud-backend/internal/logger"
	"medicloud-backend/internal/models"
	"medicloud-backend/internal/routes"
	"medicloud-backend/internal/services"
	"medicloud-backend/internal/validation"
	"medicloud-backend/pkg/utils"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:           "medicloud",
		Short:         "MediCloud multi-tenant clinic API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(tenantCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(func(cfg *config.Config, log *zap.Logger, db *gorm.DB) error {
				if err := database.Migrate(db); err != nil {
					return fmt.Errorf("migrate: %w", err)
				}
				log.Info("schema migrated")
				return nil
			})
		},
	}
}

func tenantCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tenant",
		Short: "Manage clinics",
	}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a clinic",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			slug, _ := cmd.Flags().GetString("slug")
			input := models.CreateTenantInput{Name: name, Slug: slug}

			if err := validation.Register(); err != nil {
				return err
			}
			if err := binding.Validator.ValidateStruct(input); err != nil {
				for _, d := range validation.Details(err) {
					fmt.Fprintf(os.Stderr, "--%s: %s\n", d.Field, d.Message)
				}
				return errors.New("invalid tenant")
			}

			return withDatabase(func(cfg *config.Config, log *zap.Logger, db *gorm.DB) error {
				tenant, err := services.NewTenantService(db).Create(cmd.Context(), input)
				if err != nil {
					return err
				}
				fmt.Printf("Clinic %q created with id %s\n", tenant.Slug, tenant.ID)
				return nil
			})
		},
	}
	createCmd.Flags().String("name", "", "Clinic display name")
	createCmd.Flags().String("slug", "", "URL slug (lowercase letters, digits and hyphens)")
	_ = createCmd.MarkFlagRequired("name")
	_ = createCmd.MarkFlagRequired("slug")

	cmd.AddCommand(createCmd)
	return cmd
}

// withDatabase loads config, opens the database and always closes it.
func withDatabase(fn func(cfg *config.Config, log *zap.Logger, db *gorm.DB) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.LogLevel, cfg.IsDev())
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	db, err := database.Open(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Warn("closing database", zap.Error(err))
		}
	}()

	return fn(cfg, log, db)
}

func runServer() error {
	return withDatabase(func(cfg *config.Config, log *zap.Logger, db *gorm.DB) error {
		if !cfg.IsDev() {
			gin.SetMode(gin.ReleaseMode)
		}

		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}

		appCtx, stop := context.WithCancel(context.Background())
		defer stop()

		tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
		r, err := routes.NewRouter(appCtx, routes.Deps{
			Config:   cfg,
			DB:       db,
			Logger:   log,
			Services: services.New(db, tokens),
			Version:  version,
		})
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:    ":" + cfg.Port,
			Handler: r,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Info("server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case err, ok := <-errCh:
			if ok {
				return err
			}
			return nil
		case sig := <-quit:
			log.Info("shutting down", zap.String("signal", sig.String()))
		}

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(ctx)
	})
}

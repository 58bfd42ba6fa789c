package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"smarta-landlord-svc/internal/config"
	"smarta-landlord-svc/internal/database"
	"smarta-landlord-svc/internal/models"
	"smarta-landlord-svc/internal/repository"
	"smarta-landlord-svc/internal/scheduler"
	"smarta-landlord-svc/internal/service"
	"smarta-landlord-svc/internal/session"
	"smarta-landlord-svc/pkg/logger"
)

// env is what every command needs: configuration, a logger and an open database
type env struct {
	cfg    *config.Config
	logger *logger.Logger
	db     *database.Database
}

func openEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.NewLogger(cfg.Logger.Level, "text")

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return nil, err
	}

	return &env{cfg: cfg, logger: log, db: db}, nil
}

func (e *env) billingService() service.BillingService {
	return service.NewBillingService(
		repository.NewBillingRepository(e.db.DB),
		repository.NewTenantRepository(e.db.DB),
		repository.NewMeterRepository(e.db.DB),
		e.cfg.Billing.Currency,
		e.logger,
	)
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update every table",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.db.Close()

			if err := e.db.AutoMigrate(); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Migrated %d tables\n", len(models.AllModels()))
			return nil
		},
	}
}

func markOverdueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mark-overdue",
		Short: "Mark pending bills past their due date as overdue, once",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.db.Close()

			job := scheduler.NewOverdueScheduler(
				e.billingService(),
				repository.NewLogSchedulerRepository(e.db.DB),
				e.logger,
				e.cfg.Scheduler.OverdueCronExpression,
			)
			runID, err := job.RunOnce(cmd.Context())
			if err != nil {
				return fmt.Errorf("run %s failed: %w", runID, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Run %s completed\n", runID)
			return nil
		},
	}
}

func exportBillingCmd() *cobra.Command {
	var landlordID, status, out string

	cmd := &cobra.Command{
		Use:   "export-billing",
		Short: "Export a landlord's bills to an Excel file",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.db.Close()

			var filter repository.BillingFilter
			if status != "" {
				st := models.BillingStatus(status)
				filter.Status = &st
			}

			content, filename, err := e.billingService().ExportToExcel(cmd.Context(), session.Session{LandlordID: landlordID}, filter)
			if err != nil {
				return err
			}

			if out == "" {
				out = filename
			}
			if err := os.WriteFile(out, content, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}

			abs, _ := filepath.Abs(out)
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", abs)
			return nil
		},
	}

	cmd.Flags().StringVar(&landlordID, "landlord", "", "landlord id whose bills are exported")
	cmd.Flags().StringVar(&status, "status", "", "only export bills with this status")
	cmd.Flags().StringVar(&out, "out", "", "output file (default billing_export_<timestamp>.xlsx)")
	_ = cmd.MarkFlagRequired("landlord")

	return cmd
}

func tokenCmd() *cobra.Command {
	var landlordID, phone string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for local testing",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			token, err := session.NewVerifier(cfg.JWT.Secret).Sign(session.Session{LandlordID: landlordID, Phone: phone}, ttl)
			if err != nil {
				return fmt.Errorf("failed to sign token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&landlordID, "landlord", "", "landlord id to put in the token subject")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number claim")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("landlord")

	return cmd
}


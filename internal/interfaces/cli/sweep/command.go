package sweep

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	monitorUsecases "github.com/aegis-support/aegis/internal/application/monitor/usecases"
	"github.com/aegis-support/aegis/internal/infrastructure/config"
	"github.com/aegis-support/aegis/internal/infrastructure/database"
	"github.com/aegis-support/aegis/internal/infrastructure/repository"
	"github.com/aegis-support/aegis/internal/shared/logger"
)

var (
	env     string
	timeout time.Duration
)

// NewCommand returns a one-shot sweep, useful for cron-style deployments
// where the in-process scheduler is disabled.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run a single critical issue sweep",
		Long:  `Scan open issues for SLA breaches and escalation patterns, raise alerts, and exit.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "Maximum duration for the sweep")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log := logger.NewLogger()

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	issueRepo := repository.NewIssueRepository(database.Get())
	alertRepo := repository.NewAlertRepository(database.Get())
	sweepUC := monitorUsecases.NewSweepUseCase(issueRepo, alertRepo, cfg.Monitor, log)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	count, err := sweepUC.Execute(ctx)
	if err != nil {
		log.Errorw("sweep failed", "error", err)
		return fmt.Errorf("sweep failed: %w", err)
	}

	log.Infow("sweep completed", "alerts_raised", count)
	return nil
}

package migrate

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aegis-support/aegis/internal/infrastructure/config"
	"github.com/aegis-support/aegis/internal/infrastructure/database"
	"github.com/aegis-support/aegis/internal/infrastructure/persistence/models"
	"github.com/aegis-support/aegis/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database schema migrations",
		Long:  `Bring the database schema up to date for all Aegis tables.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

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

	log.Infow("running schema migration", "environment", env)

	err = database.Get().AutoMigrate(
		&models.AgentModel{},
		&models.CustomerModel{},
		&models.IssueModel{},
		&models.IssueCommentModel{},
		&models.AlertModel{},
		&models.ResponseTemplateModel{},
		&models.SummaryModel{},
	)
	if err != nil {
		log.Errorw("schema migration failed", "error", err)
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Infow("schema migration completed")
	return nil
}

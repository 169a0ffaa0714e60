package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aegis-support/aegis/internal/interfaces/cli/migrate"
	"github.com/aegis-support/aegis/internal/interfaces/cli/server"
	"github.com/aegis-support/aegis/internal/interfaces/cli/sweep"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "aegis",
		Short: "Aegis - issue intelligence for support teams",
		Long:  `Aegis analyzes incoming support issues, finds similar past cases, watches for SLA breaches, and drafts response guidance.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		sweep.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

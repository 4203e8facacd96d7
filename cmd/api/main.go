package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
)

func main() {
	serve := serveCommand()

	rootCmd := &cobra.Command{
		Use:          "dashboard",
		Short:        "Intranet dashboard: card board and unit directory API",
		RunE:         serve.RunE,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		serve,
		migrateCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

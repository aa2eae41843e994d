package main

import (
	"github.com/spf13/cobra"
)

// envFile is an optional dotenv file applied before reading configuration.
var envFile string

// NewRootCmd creates the root command for the hms CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hms",
		Short: "Hospital management authentication service",
		Long: `hms serves staff login and account management for the hospital
management system, and carries the maintenance tasks for its credential store.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to load before reading the environment")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewSeedCmd())
	cmd.AddCommand(NewMigrateSecretsCmd())
	cmd.AddCommand(NewHashPasswordCmd())

	return cmd
}

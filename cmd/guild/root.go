package main

import (
	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/guildhall/internal/guild/app"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the guild CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guild",
		Short: "Guildhall - accounts, servers and invites for the chat backend",
		Long: `Guildhall runs the membership and invite service of the chat backend:
signup and login, servers, and invite codes that grant membership.`,
		SilenceUsage: true,
	}

	// Global flag for config file path
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (YAML)")
	app.RegisterFlags(cmd.PersistentFlags())

	// Add subcommands
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())

	return cmd
}

// loadConfig resolves the layered configuration for cmd.
func loadConfig(cmd *cobra.Command) (app.Config, error) {
	return app.LoadConfig(configFile, cmd.Flags())
}

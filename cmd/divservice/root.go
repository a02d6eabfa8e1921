package main

import (
	"fmt"

	"github.com/diversityworkbench/divservice/internal/ioconfig"
	"github.com/diversityworkbench/divservice/internal/iologger"
	app "github.com/diversityworkbench/divservice/pkg"
	"github.com/diversityworkbench/divservice/pkg/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
)

func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "divservice",
		Short: "divservice serves Diversity Workbench data to mobile clients",
		Long: `divservice is the server behind the Diversity Mobile clients. It
discovers the Workbench modules reachable for a login, aggregates the
taxon lists a user may read across their repository and the public
taxon server, serves reference data and collection downloads, and
accepts transactional uploads of field observations.

Configuration precedence (highest to lowest):
  1. Environment variables (DIVSERVICE_*)
  2. Config file (divservice.yaml)
  3. Built-in defaults

Environment Variables:
  Nested fields use underscores (cache.backend → DIVSERVICE_CACHE_BACKEND).

  Examples:
    DIVSERVICE_API_ADDR           HTTP listen address
    DIVSERVICE_CACHE_BACKEND      Result cache backend (memory/redis)
    DIVSERVICE_CACHE_TTL          Result cache validity window
    DIVSERVICE_LOG_LEVEL          Log level (debug/info/warn/error)

  See 'go doc github.com/diversityworkbench/divservice/pkg/config' for
  the complete list.`,
		Version: app.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			result, err := ioconfig.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			cfg = result
			iologger.Init(cfg.Log)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./divservice.yaml or /etc/divservice/divservice.yaml)")

	rootCmd.Flags().BoolP("version", "V", false, "version for divservice")

	rootCmd.AddCommand(getServeCmd())
	rootCmd.AddCommand(getModulesCmd())
	rootCmd.AddCommand(getRepositoriesCmd())

	return rootCmd
}

// getConfig returns the loaded configuration for use in subcommands.
func getConfig() *config.Config {
	return cfg
}

package main

import (
	"fmt"
	"os"

	"github.com/aretw0/wayfinder/internal/cli"
	"github.com/aretw0/wayfinder/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wayfinder",
	Short: "Wayfinder routes UI-driving agents between application screens",
	Long: `Wayfinder loads a map of screens and transitions, computes the shortest
route between two screens and drives the application hop by hop, confirming
each arrival before moving on.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML configuration file")
	rootCmd.PersistentFlags().String("map", "", "Path to the screen map (overrides config)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
}

// loadRuntime resolves configuration (file, then flags) and prepares the map.
func loadRuntime(cmd *cobra.Command) (*cli.Runtime, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("map") {
		cfg.Map, _ = cmd.Flags().GetString("map")
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}

	logger, err := cli.NewLogger(cfg)
	if err != nil {
		return nil, err
	}
	return cli.Setup(cfg, logger)
}

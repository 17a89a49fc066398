package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/wayfinder/internal/cli"
	"github.com/aretw0/wayfinder/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var walkCmd = &cobra.Command{
	Use:   "walk <screen>...",
	Short: "Drive the application through a list of screens",
	Long: `Navigates from the start screen to each given screen in turn, running
transition actions through the configured driver (the simulator by default)
and waiting for every hop to be ready.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := loadRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
			tui.PrintBanner(cmd.OutOrStdout())
		}

		s, err := rt.NewSession("walk")
		if err != nil {
			return err
		}

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		err = cli.Walk(ctx, s, cmd.OutOrStdout(), args...)
		if sig := ctx.Signal(); sig != nil && errors.Is(err, context.Canceled) {
			return fmt.Errorf("interrupted by %v", sig)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(walkCmd)
	walkCmd.Flags().BoolP("quiet", "q", false, "Do not print the banner")
}

package main

import (
	"fmt"
	"os"

	"github.com/aretw0/wayfinder/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var pathCmd = &cobra.Command{
	Use:   "path <to>",
	Short: "Print the shortest route to a screen",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := loadRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		s, err := rt.NewSession("path")
		if err != nil {
			return err
		}

		g := s.Graph()
		from := s.Position()
		if id, _ := cmd.Flags().GetString("from"); id != "" {
			var ok bool
			if from, ok = g.Lookup(id); !ok {
				return fmt.Errorf("unknown screen %q", id)
			}
		}
		if from == nil {
			return fmt.Errorf("no origin: set --from or a start screen in the map")
		}

		to, ok := g.Lookup(args[0])
		if !ok {
			return fmt.Errorf("unknown screen %q", args[0])
		}

		path := s.ShortestPath(from, to)
		if len(path) == 0 && from != to {
			return fmt.Errorf("no route from %s to %s", from.ID(), to.ID())
		}

		tui.Print(cmd.OutOrStdout(), tui.NewRenderer(os.Stdout), tui.RouteMarkdown(from, path))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pathCmd)
	pathCmd.Flags().String("from", "", "Origin screen (defaults to the map start)")
}

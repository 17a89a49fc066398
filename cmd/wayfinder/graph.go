package main

import (
	"fmt"

	"github.com/aretw0/wayfinder/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the screen map visualization",
	Long:  `Loads the map and outputs a Mermaid diagram (graph LR). With --to, the route from the start screen is highlighted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := loadRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		s, err := rt.NewSession("graph")
		if err != nil {
			return err
		}

		var overlay *graph.GraphOverlay
		if to, _ := cmd.Flags().GetString("to"); to != "" {
			dest, ok := s.Graph().Lookup(to)
			if !ok {
				return fmt.Errorf("unknown screen %q", to)
			}
			overlay = graph.OverlayFor(s.Position(), s.ShortestPath(s.Position(), dest), nil)
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(s.Graph(), rt.Map.Start, overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("to", "", "Highlight the route from the start screen to this screen")
}

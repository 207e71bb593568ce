package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pthm-cable/navarea/telemetry"
)

func InfoCmd(opts *rootOptions) *cobra.Command {
	var from, to string
	c := &cobra.Command{
		Use:   "info",
		Short: "describe a scene's areas and optionally find a path",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, area := range a.world.Mesh.Areas() {
				printArea(out, a.scene, area)
			}

			s := telemetry.Summarize(a.world.Mesh)
			fmt.Fprintf(out, "areas=%d connections=%d ladders=%d\n", s.Areas, s.Connections, s.Ladders)

			if from == "" && to == "" {
				return nil
			}
			start, goal, err := pair(a.scene, from, to)
			if err != nil {
				return err
			}
			closest, found := a.world.Mesh.BuildPath(start, goal, nil, nil)
			if !found {
				fmt.Fprintf(out, "no path; closest %s\n", a.scene.Name(closest))
				return nil
			}
			path := a.world.Mesh.ReconstructPath(goal)
			names := make([]string, len(path))
			for i, p := range path {
				names[i] = a.scene.Name(p)
			}
			fmt.Fprintf(out, "path %s cost=%g\n", strings.Join(names, " -> "), goal.CostSoFar())
			return nil
		},
	}
	c.Flags().StringVar(&from, "from", "", "start area for a path query")
	c.Flags().StringVar(&to, "to", "", "goal area for a path query")
	return c
}

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pthm-cable/navarea/nav"
	"github.com/pthm-cable/navarea/scene"
)

func SplitCmd(opts *rootOptions) *cobra.Command {
	var areaName, along string
	var at float64
	c := &cobra.Command{
		Use:   "split",
		Short: "split an area in two",
		RunE: func(cmd *cobra.Command, args []string) error {
			var alongX bool
			switch strings.ToLower(along) {
			case "x":
				alongX = true
			case "y":
			default:
				return fmt.Errorf("--along must be x or y, got %q", along)
			}

			a, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			area, err := a.scene.Area(areaName)
			if err != nil {
				return err
			}

			alpha, beta, ok := a.world.Mesh.SplitEdit(area, alongX, at)
			if !ok {
				return fmt.Errorf("split of %s rejected", areaName)
			}
			out := cmd.OutOrStdout()
			printArea(out, a.scene, alpha)
			printArea(out, a.scene, beta)
			return nil
		},
	}
	c.Flags().StringVar(&areaName, "area", "", "area to split")
	c.Flags().StringVar(&along, "along", "x", "cut direction: x cuts at y = --at, y cuts at x = --at")
	c.Flags().Float64Var(&at, "at", 0, "coordinate of the cut")
	return c
}

func MergeCmd(opts *rootOptions) *cobra.Command {
	var areaName, withName string
	c := &cobra.Command{
		Use:   "merge",
		Short: "merge two adjacent areas",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			first, second, err := pair(a.scene, areaName, withName)
			if err != nil {
				return err
			}
			merged, ok := a.world.Mesh.MergeEdit(first, second)
			if !ok {
				return fmt.Errorf("merge of %s and %s rejected", areaName, withName)
			}
			printArea(cmd.OutOrStdout(), a.scene, merged)
			return nil
		},
	}
	c.Flags().StringVar(&areaName, "area", "", "first area")
	c.Flags().StringVar(&withName, "with", "", "second area")
	return c
}

func SpliceCmd(opts *rootOptions) *cobra.Command {
	var areaName, withName string
	c := &cobra.Command{
		Use:   "splice",
		Short: "create an area filling the gap between two areas",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			first, second, err := pair(a.scene, areaName, withName)
			if err != nil {
				return err
			}
			gap, ok := a.world.Mesh.SpliceEdit(first, second)
			if !ok {
				return fmt.Errorf("splice of %s and %s rejected", areaName, withName)
			}
			printArea(cmd.OutOrStdout(), a.scene, gap)
			return nil
		},
	}
	c.Flags().StringVar(&areaName, "area", "", "first area")
	c.Flags().StringVar(&withName, "with", "", "second area")
	return c
}

func pair(b *scene.Built, first, second string) (*nav.Area, *nav.Area, error) {
	a, err := b.Area(first)
	if err != nil {
		return nil, nil, err
	}
	other, err := b.Area(second)
	if err != nil {
		return nil, nil, err
	}
	return a, other, nil
}

// printArea writes one line describing a and its connections.
func printArea(w io.Writer, b *scene.Built, a *nav.Area) {
	e := a.Extent()
	fmt.Fprintf(w, "%s [%g,%g]-[%g,%g] z=%g", b.Name(a), e.Lo.X, e.Lo.Y, e.Hi.X, e.Hi.Y, a.Center().Z)
	for d := nav.Dir(0); d < nav.NumDirections; d++ {
		n := a.GetAdjacentCount(d)
		if n == 0 {
			continue
		}
		names := make([]string, 0, n)
		for i := 0; i < n; i++ {
			if adj := a.GetAdjacentArea(d, i); adj != nil {
				names = append(names, b.Name(adj))
			}
		}
		fmt.Fprintf(w, " %s=%s", d, strings.Join(names, ","))
	}
	fmt.Fprintln(w)
}

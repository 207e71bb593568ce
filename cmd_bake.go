package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pthm-cable/navarea/telemetry"
)

func BakeCmd(opts *rootOptions) *cobra.Command {
	var outputDir string
	var repeat int
	c := &cobra.Command{
		Use:   "bake",
		Short: "compute hiding spots, sniper spots and spot encounters for a scene",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			if outputDir != "" {
				a.cfg.Telemetry.OutputDir = outputDir
			}
			if repeat < 1 {
				repeat = 1
			}

			om, err := telemetry.NewOutputManager(a.cfg.Telemetry.OutputDir)
			if err != nil {
				return err
			}
			defer om.Close()

			pc := telemetry.NewPerfCollector(a.cfg.Telemetry.PerfWindow)
			for i := 0; i < repeat; i++ {
				a.world.Bake(pc)
			}
			stats := pc.Stats()
			stats.LogStats(a.logger)

			summary := telemetry.Summarize(a.world.Mesh)
			a.logger.Info("bake complete", "summary", summary)

			if err := om.WriteConfig(a.cfg); err != nil {
				return err
			}
			if err := om.WritePerf(stats); err != nil {
				return err
			}
			if err := om.WriteAreas(a.world.Mesh, a.scene.Name); err != nil {
				return err
			}
			if err := om.WriteHidingSpots(a.world.Mesh); err != nil {
				return err
			}
			if err := om.WriteEncounters(a.world.Mesh); err != nil {
				return err
			}
			if err := om.WriteSummary(summary); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "areas=%d hiding_spots=%d in_cover=%d good_sniper=%d ideal_sniper=%d encounters=%d\n",
				summary.Areas, summary.HidingSpots, summary.CoveredSpots,
				summary.GoodSniper, summary.IdealSniper, summary.Encounters)
			return nil
		},
	}
	c.Flags().StringVar(&outputDir, "output-dir", "", "directory for CSV reports (overrides telemetry.output_dir)")
	c.Flags().IntVar(&repeat, "repeat", 1, "number of bakes to time")
	return c
}

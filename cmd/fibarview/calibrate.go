package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/bpfrommer/fibar"
)

func newCalibrateCmd() *cobra.Command {
	var (
		scaleFile string
		width     int
		height    int
		cutoff    float64
	)

	cmd := &cobra.Command{
		Use:   "calibrate",
		Short: "Load a calibration file and report per-pixel scale statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(scaleFile)
			if err != nil {
				return err
			}
			defer f.Close()

			r, err := fibar.NewReconstructor(width, height, cutoff)
			if err != nil {
				return err
			}

			stats, err := fibar.LoadCalibration(r, f)
			if err != nil {
				return err
			}

			slog.Info("calibration loaded",
				"pixels", stats.Count,
				"mean_events", stats.MeanEvents,
				"mean_scale", stats.MeanScale,
				"stddev_scale", stats.StddevScale,
				"harmonic_mean_scale", stats.HarmonicMean,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&scaleFile, "scale-file", "", "path to the calibration file")
	cmd.Flags().IntVar(&width, "width", 0, "image width")
	cmd.Flags().IntVar(&height, "height", 0, "image height")
	cmd.Flags().Float64Var(&cutoff, "cutoff", 10000, "temporal filter cutoff period")
	cmd.MarkFlagRequired("scale-file")
	cmd.MarkFlagRequired("width")
	cmd.MarkFlagRequired("height")

	return cmd
}

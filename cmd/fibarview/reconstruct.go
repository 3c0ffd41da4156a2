package main

import (
	"image"
	"image/png"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/bpfrommer/fibar"
)

func newReconstructCmd() *cobra.Command {
	var (
		eventsPath string
		width      int
		height     int
		cutoff     float64
		fillRatio  float64
		tileSize   int
		kernelSize int
		outPrefix  string
	)

	cmd := &cobra.Command{
		Use:   "reconstruct",
		Short: "Ingest an event log and write intensity/activity PNGs",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(eventsPath)
			if err != nil {
				return err
			}
			defer f.Close()

			events, err := readEventLog(f)
			if err != nil {
				return err
			}

			r, err := fibar.NewSpatialReconstructor(width, height, cutoff, fillRatio, tileSize, kernelSize)
			if err != nil {
				return err
			}
			for _, e := range events {
				if err := r.Event(e.T, e.X, e.Y, e.Polarity); err != nil {
					slog.Error("ingest failed", "x", e.X, "y", e.Y, "err", err)
					return err
				}
			}
			slog.Info("ingested event log", "events", len(events), "width", width, "height", height)

			if err := writeGrayPNG(outPrefix+"_intensity.png", width, height, r.Image); err != nil {
				return err
			}
			if err := writeGrayPNG(outPrefix+"_activity.png", width, height, r.ActivePixelImage); err != nil {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&eventsPath, "events", "", "path to the plain-text event log")
	cmd.Flags().IntVar(&width, "width", 0, "image width")
	cmd.Flags().IntVar(&height, "height", 0, "image height")
	cmd.Flags().Float64Var(&cutoff, "cutoff", 10000, "temporal filter cutoff period")
	cmd.Flags().Float64Var(&fillRatio, "fill-ratio", 0.5, "target per-tile fill ratio")
	cmd.Flags().IntVar(&tileSize, "tile-size", 2, "activity-tracking tile side length")
	cmd.Flags().IntVar(&kernelSize, "kernel-size", 3, "spatial blur kernel size (3 or 5)")
	cmd.Flags().StringVar(&outPrefix, "out", "fibar", "output file prefix")
	cmd.MarkFlagRequired("events")
	cmd.MarkFlagRequired("width")
	cmd.MarkFlagRequired("height")

	return cmd
}

func writeGrayPNG(path string, width, height int, fill func(img []byte, stride int)) error {
	img := image.NewGray(image.Rect(0, 0, width, height))
	fill(img.Pix, img.Stride)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

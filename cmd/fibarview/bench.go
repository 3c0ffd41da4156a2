package main

import (
	"context"
	"log/slog"
	"math/rand"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/bpfrommer/fibar"
)

func newBenchCmd() *cobra.Command {
	var (
		width     int
		height    int
		cutoff    float64
		fillRatio float64
		numEvents int
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Feed synthetic random events through a sharded run and report throughput",
		RunE: func(cmd *cobra.Command, args []string) error {
			shardCount := runtime.GOMAXPROCS(0)
			reconstructors := make([]*fibar.Reconstructor, shardCount)
			shards := make([][]fibar.ShardEvent, shardCount)

			rng := rand.New(rand.NewSource(1))
			perShard := numEvents / shardCount
			for i := 0; i < shardCount; i++ {
				r, err := fibar.NewSpatialReconstructor(width, height, cutoff, fillRatio, 2, 3)
				if err != nil {
					return err
				}
				reconstructors[i] = r

				shard := make([]fibar.ShardEvent, perShard)
				for j := range shard {
					shard[j] = fibar.ShardEvent{
						T:        uint32(j),
						X:        uint16(rng.Intn(width)),
						Y:        uint16(rng.Intn(height)),
						Polarity: uint8(j % 2),
					}
				}
				shards[i] = shard
			}

			start := time.Now()
			errs := fibar.RunShards(context.Background(), reconstructors, shards)
			elapsed := time.Since(start)

			for i, err := range errs {
				if err != nil {
					slog.Error("shard failed", "shard", i, "err", err)
					return err
				}
			}

			total := perShard * shardCount
			slog.Info("bench complete",
				"shards", shardCount,
				"events", total,
				"elapsed", elapsed,
				"events_per_sec", float64(total)/elapsed.Seconds(),
			)
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 640, "image width")
	cmd.Flags().IntVar(&height, "height", 480, "image height")
	cmd.Flags().Float64Var(&cutoff, "cutoff", 10000, "temporal filter cutoff period")
	cmd.Flags().Float64Var(&fillRatio, "fill-ratio", 0.5, "target per-tile fill ratio")
	cmd.Flags().IntVar(&numEvents, "events", 1_000_000, "total number of synthetic events across all shards")

	return cmd
}

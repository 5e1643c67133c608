package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/osm-without-borders/cosmogony/internal/merge"
	"github.com/osm-without-borders/cosmogony/pkg/cosmogony"
)

var mergeOutput string
var mergeRedisAddr string

var mergeCmd = &cobra.Command{
	Use:   "merge <input.jsonl>...",
	Short: "Union previously-built atlases into one, deduplicating by osm_id",
	Args: func(cmd *cobra.Command, args []string) error {
		if err := cobra.MinimumNArgs(1)(cmd, args); err != nil {
			return newUsageError("%w", err)
		}
		return nil
	},
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().StringVarP(&mergeOutput, "output", "o", "", "merged output path (required)")
	mergeCmd.Flags().StringVar(&mergeRedisAddr, "redis-addr", "", "backing store for merges too large to dedup in memory; empty uses an in-memory map")
}

func runMerge(cmd *cobra.Command, args []string) error {
	if mergeOutput == "" {
		return newUsageError("--output is required")
	}

	log, err := newLogger()
	if err != nil {
		return err
	}

	var store merge.DedupStore
	if mergeRedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: mergeRedisAddr})
		store = merge.NewRedisStore(client, "cosmogony:merge:"+uuid.NewString())
	}

	start := time.Now()
	result, err := cosmogony.Merge(args, mergeOutput, cosmogony.MergeOptions{Store: store, Log: log})
	if err != nil {
		return fmt.Errorf("merge: %w", err)
	}

	log.Infow("merge complete",
		"output", mergeOutput,
		"inputs", len(args),
		"zones_written", result.ZonesWritten,
		"dedup_count", result.Stats.DedupCount,
		"duration", time.Since(start).Round(time.Second),
	)
	return nil
}

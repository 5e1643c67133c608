package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/osm-without-borders/cosmogony/internal/encode"
	"github.com/osm-without-borders/cosmogony/pkg/cosmogony"
)

type generateConfig struct {
	input             string
	output            string
	countryCode       string
	filterLangs       string
	disableVoronoi    bool
	frenchIDFix       bool
	includePlaceNodes bool
	workers           int
}

var genCfg generateConfig

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Build an atlas from an OSM PBF extract",
	Args: func(cmd *cobra.Command, args []string) error {
		if err := cobra.NoArgs(cmd, args); err != nil {
			return newUsageError("%w", err)
		}
		return nil
	},
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	addGenerateFlags(generateCmd.Flags())

	// generate is the default subcommand: `cosmogony -i x.pbf` behaves like
	// `cosmogony generate -i x.pbf`.
	addGenerateFlags(rootCmd.Flags())
	rootCmd.RunE = runGenerate
	rootCmd.Args = generateCmd.Args
}

func addGenerateFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&genCfg.input, "input", "i", "", "OSM PBF extract to read (required)")
	flags.StringVarP(&genCfg.output, "output", "o", "cosmogony.jsonl.gz", "output path; extension selects format (.json, .jsonl, .json.gz, .jsonl.gz)")
	flags.StringVar(&genCfg.countryCode, "country-code", "", "keep only zones whose resolved country_code matches (ISO 3166-1 alpha-2)")
	flags.StringVar(&genCfg.filterLangs, "filter-langs", "", "comma-separated language codes; only matching name:* tags are kept")
	flags.BoolVar(&genCfg.disableVoronoi, "disable-voronoi", false, "skip the nearest-postcode assignment supplement")
	flags.BoolVar(&genCfg.frenchIDFix, "french-id-fix", false, "dedup French communes by ref:INSEE instead of osm_id")
	flags.BoolVar(&genCfg.includePlaceNodes, "include-place-nodes", false, "synthesize zones from place=* nodes lacking a boundary")
	flags.IntVar(&genCfg.workers, "workers", 0, "hierarchy pass worker count; 0 picks a default")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if genCfg.input == "" {
		return newUsageError("--input is required")
	}

	log, err := newLogger()
	if err != nil {
		return err
	}

	var langs []string
	if genCfg.filterLangs != "" {
		langs = strings.Split(genCfg.filterLangs, ",")
	}

	start := time.Now()
	atlas, err := cosmogony.Generate(cosmogony.GenerateOptions{
		InputPath:         genCfg.input,
		FilterCountryCode: strings.ToUpper(genCfg.countryCode),
		FilterLangs:       langs,
		DisableVoronoi:    genCfg.disableVoronoi,
		FrenchIDFix:       genCfg.frenchIDFix,
		IncludePlaceNodes: genCfg.includePlaceNodes,
		Workers:           genCfg.workers,
		Log:               log,
	})
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	if err := encode.WriteToFile(genCfg.output, atlas.Zones, atlas.Stats); err != nil {
		return fmt.Errorf("generate: write output: %w", err)
	}

	log.Infow("generate complete",
		"output", genCfg.output,
		"zones", len(atlas.Zones),
		"duration", time.Since(start).Round(time.Second),
		"run_id", atlas.Stats.RunID,
	)
	return nil
}

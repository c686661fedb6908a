package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/neoflux-dev/neoflux/internal/bench"
	"github.com/neoflux-dev/neoflux/internal/config"
)

func benchCmd() *cobra.Command {
	var (
		scenarios  string
		iterations int
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure propagation latency",
		Long: `Build a set of dependency-graph topologies, drive writes through
them, and report per-write latency percentiles.

Scenarios come from a YAML file or the built-in suite:

  scenarios:
    - name: tall chain
      shape: propagate
      width: 10
      height: 1000

Examples:
  neoflux bench
  neoflux bench --scenarios=bench.yaml --iterations=500`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(scenarios, iterations, asJSON)
		},
	}

	cmd.Flags().StringVar(&scenarios, "scenarios", "", "YAML scenario file (default from neoflux.json)")
	cmd.Flags().IntVarP(&iterations, "iterations", "n", 0, "Samples per scenario (default from neoflux.json)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit results as JSON instead of a table")

	return cmd
}

func runBench(scenarios string, iterations int, asJSON bool) error {
	cfg, err := config.LoadOrDefault(".")
	if err != nil {
		return err
	}

	if scenarios == "" {
		scenarios = cfg.Bench.Scenarios
	}
	if iterations <= 0 {
		iterations = cfg.Bench.Iterations
	}

	suite := bench.DefaultSuite()
	if scenarios != "" {
		suite, err = bench.LoadSuite(scenarios)
		if err != nil {
			return err
		}
	}

	if !asJSON {
		info("Running %d scenarios, %d iterations each...", len(suite), iterations)
	}

	results, err := bench.RunSuite(suite, iterations)
	if err != nil {
		return err
	}

	if asJSON {
		return bench.RenderJSON(os.Stdout, results)
	}
	bench.Render(os.Stdout, results)
	return nil
}

package cmd

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/stuttgart-things/banner/internal/cache"
	"github.com/stuttgart-things/banner/internal/engine"
	apperrors "github.com/stuttgart-things/banner/internal/errors"
)

func newBenchCmd(a *app) *cobra.Command {
	var (
		iterations  int
		metricsFile string
	)

	benchCmd := &cobra.Command{
		Use:   "bench TEXT",
		Short: "Render a banner repeatedly and report cache statistics",
		Long: `Renders TEXT in every gradient direction the given number of times,
then prints the glyph and ramp cache counters. With --metrics-file the
counters are also written in the Prometheus text format.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if iterations < 1 {
				return apperrors.InvalidInput("--iterations must be at least 1, got %d", iterations)
			}

			r, err := a.render(colorProfile(a.cfg.Color, nil))
			if err != nil {
				return err
			}

			req := requestDefaults(a)
			req.Text = args[0]

			start := time.Now()
			for i := 0; i < iterations; i++ {
				for _, dir := range engine.Directions() {
					req.Direction = dir
					if _, err := r.Render(req); err != nil {
						return err
					}
				}
			}
			elapsed := time.Since(start)

			out := cmd.OutOrStdout()
			renders := iterations * len(engine.Directions())
			fmt.Fprintln(out, progressStyle.Render(fmt.Sprintf("%d renders in %s", renders, elapsed.Round(time.Microsecond))))
			printCacheStats(out, a.cache.Stats())

			if metricsFile != "" {
				reg := prometheus.NewRegistry()
				reg.MustRegister(cache.NewCollector(a.cache))
				if err := prometheus.WriteToTextfile(metricsFile, reg); err != nil {
					return fmt.Errorf("writing metrics: %w", err)
				}
				a.log.Info("metrics written", "file", metricsFile)
			}
			return nil
		},
	}

	benchCmd.Flags().IntVarP(&iterations, "iterations", "n", 100, "Renders per direction")
	benchCmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write cache metrics to this file (Prometheus text format)")
	return benchCmd
}

func printCacheStats(out io.Writer, stats map[string]cache.Stats) {
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tHITS\tMISSES\tEVICTIONS\tSIZE\tMAX\tHIT RATE")
	for _, name := range names {
		s := stats[name]
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%.1f%%\n", name, s.Hits, s.Misses, s.Evictions, s.Size, s.MaxSize, s.HitRate*100)
	}
	w.Flush()
}

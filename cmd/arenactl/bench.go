package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/joshuapare/arenakit/arena"
)

var (
	benchCount    int
	benchSize     int
	benchAlign    int
	benchMinChunk int
)

func init() {
	rootCmd.AddCommand(newBenchCmd())
}

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run an allocation workload and report arena statistics",
		Long: `The bench command drives a single arena with a fixed allocation
workload and reports how the chunk chain grew: chunk count, total capacity,
bytes used, and growth events. Useful for eyeballing the growth policy
against a workload's allocation profile.

Example:
  arenactl bench --count 1000000 --size 48
  arenactl bench --count 100000 --size 256 --min-chunk 16384 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench()
		},
	}
	cmd.Flags().IntVar(&benchCount, "count", 1_000_000, "Number of allocations to perform")
	cmd.Flags().IntVar(&benchSize, "size", 48, "Size of each allocation in bytes")
	cmd.Flags().IntVar(&benchAlign, "align", 8, "Alignment of each allocation")
	cmd.Flags().IntVar(&benchMinChunk, "min-chunk", 0, "Data capacity of the first chunk (0 = default)")
	return cmd
}

type benchReport struct {
	Count    int           `json:"count"`
	Size     int           `json:"size"`
	Align    int           `json:"align"`
	Duration time.Duration `json:"duration_ns"`
	NsPerOp  float64       `json:"ns_per_op"`
	Stats    arena.Stats   `json:"stats"`
}

func runBench() error {
	if benchCount <= 0 || benchSize <= 0 {
		return fmt.Errorf("count and size must be positive")
	}
	if benchAlign <= 0 || benchAlign > arena.ChunkAlign || benchAlign&(benchAlign-1) != 0 {
		return fmt.Errorf("align must be a power of two in 1..%d", arena.ChunkAlign)
	}

	printVerbose("Running %d allocations of %d bytes (align %d)\n",
		benchCount, benchSize, benchAlign)

	a := arena.NewWith(arena.Options{MinChunkSize: uintptr(benchMinChunk)})
	defer a.Close()

	start := time.Now()
	for n := 0; n < benchCount; n++ {
		a.Alloc(uintptr(benchSize), uintptr(benchAlign))
	}
	elapsed := time.Since(start)

	report := benchReport{
		Count:    benchCount,
		Size:     benchSize,
		Align:    benchAlign,
		Duration: elapsed,
		NsPerOp:  float64(elapsed.Nanoseconds()) / float64(benchCount),
		Stats:    a.Stats(),
	}

	if jsonOut {
		return printJSON(report)
	}

	printInfo("Workload:\n")
	printInfo("  Allocations:   %d x %d bytes (align %d)\n", report.Count, report.Size, report.Align)
	printInfo("  Elapsed:       %s (%.1f ns/op)\n", report.Duration, report.NsPerOp)
	printInfo("Arena:\n")
	printInfo("  Chunks:        %d\n", report.Stats.Chunks)
	printInfo("  Capacity:      %d bytes\n", report.Stats.Capacity)
	printInfo("  Used:          %d bytes\n", report.Stats.Used)
	printInfo("  Free:          %d bytes\n", report.Stats.Free)
	printInfo("  Growth events: %d\n", report.Stats.GrowthEvents)
	return nil
}

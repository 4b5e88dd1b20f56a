package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/INLOpen/collections"
	"github.com/INLOpen/collections/internal/cli"
)

func main() {
	if err := newBenchCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// newBenchCommand reads flags from the command line or COLLECTIONS_* environment variables.
// Usage: go run ./cmd/bench --items 200000 --structures stack,heap
func newBenchCommand() *cobra.Command {
	v := cli.NewViper()
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run insert/remove workloads against each container and report timings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBench(v)
		},
		SilenceUsage: true,
	}

	flags := cmd.Flags()
	flags.Int("items", 200_000, "number of values inserted into each container")
	flags.Int("capacity", 1, "initial capacity; small values exercise the doubling policy")
	flags.StringSlice("structures", cli.Names(), "containers to run")
	flags.Bool("parallel", false, "run each container in its own goroutine (allocation totals are then skipped)")
	flags.Int("arena", 0, "if > 0, node-based containers allocate from an arena with this many nodes per chunk")
	flags.Float64("arena-threshold", 0, "if in (0, 1), allocate the next arena chunk once the current one is this full")
	cli.AddLogFlags(flags)
	cli.MustBindPFlags(v, cmd)

	return cmd
}

func runBench(v *viper.Viper) error {
	logger, err := cli.NewLogger(v.GetString("log-format"), v.GetString("log-level"))
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	items := v.GetInt("items")
	structures := v.GetStringSlice("structures")
	opts := []collections.Option{collections.WithCapacity(v.GetInt("capacity"))}
	if nodes := v.GetInt("arena"); nodes > 0 {
		opts = append(opts,
			collections.WithArena(nodes),
			collections.WithArenaGrowthFactor(2.0),
			collections.WithArenaGrowthThreshold(v.GetFloat64("arena-threshold")),
		)
	}

	logger.Info("starting container workloads",
		zap.Int("items", items),
		zap.Strings("structures", structures),
		zap.Bool("parallel", v.GetBool("parallel")),
	)

	if v.GetBool("parallel") {
		// Each goroutine owns its container; nothing is shared.
		p := pool.NewWithResults[cli.Result]().WithErrors()
		for _, name := range structures {
			p.Go(func() (cli.Result, error) {
				return cli.Run(name, items, logger, opts...)
			})
		}
		results, err := p.Wait()
		for _, r := range results {
			report(r, -1)
		}
		return err
	}

	for _, name := range structures {
		runtime.GC()
		time.Sleep(50 * time.Millisecond)

		var msBefore, msAfter runtime.MemStats
		runtime.ReadMemStats(&msBefore)
		r, err := cli.Run(name, items, logger, opts...)
		if err != nil {
			return err
		}
		runtime.ReadMemStats(&msAfter)
		report(r, int64(msAfter.TotalAlloc)-int64(msBefore.TotalAlloc))
	}
	return nil
}

// report prints one line per workload. allocDiff < 0 means it was not measured.
func report(r cli.Result, allocDiff int64) {
	fmt.Printf("%-10s items=%d duration=%s ns/op=%.1f capacity=%d", r.Structure, r.Items, r.Duration, r.NsPerOp(), r.Capacity)
	if allocDiff >= 0 {
		fmt.Printf(" TotalAlloc diff=%d bytes", allocDiff)
	}
	fmt.Println()
}

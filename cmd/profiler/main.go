package main

import (
	"context"
	"errors"
	"net/http"
	_ "net/http/pprof" // Import for side effects: registers pprof handlers
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/INLOpen/collections"
	"github.com/INLOpen/collections/internal/cli"
)

func main() {
	if err := newProfilerCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// newProfilerCommand starts a pprof endpoint, runs one workload and keeps the
// process alive until interrupted.
// Usage: go run ./cmd/profiler --structure hashtable --items 5000000
func newProfilerCommand() *cobra.Command {
	v := cli.NewViper()
	cmd := &cobra.Command{
		Use:   "profiler",
		Short: "Run a container workload with a pprof endpoint attached",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProfiler(cmd.Context(), v)
		},
		SilenceUsage: true,
	}

	flags := cmd.Flags()
	flags.String("addr", "localhost:6060", "pprof listen address")
	flags.String("structure", "hashtable", "container to profile")
	flags.Int("items", 2_000_000, "number of values inserted")
	flags.Int("arena", 0, "if > 0, node-based containers allocate from an arena with this many nodes per chunk")
	cli.AddLogFlags(flags)
	cli.MustBindPFlags(v, cmd)

	return cmd
}

func runProfiler(ctx context.Context, v *viper.Viper) error {
	logger, err := cli.NewLogger(v.GetString("log-format"), v.GetString("log-level"))
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{Addr: v.GetString("addr"), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logger.Info("starting pprof server", zap.String("url", "http://"+srv.Addr+"/debug/pprof/"))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("pprof server failed", zap.Error(err))
			stop()
		}
	}()

	var opts []collections.Option
	if nodes := v.GetInt("arena"); nodes > 0 {
		opts = append(opts, collections.WithArena(nodes), collections.WithArenaGrowthFactor(2.0))
	}

	runtime.GC()
	r, err := cli.Run(v.GetString("structure"), v.GetInt("items"), logger, opts...)
	if err != nil {
		_ = srv.Close()
		return err
	}
	logger.Info("workload finished",
		zap.String("structure", r.Structure),
		zap.Int("items", r.Items),
		zap.Duration("duration", r.Duration),
		zap.Int("capacity", r.Capacity),
	)
	logger.Info("keeping alive for profiling, press Ctrl+C to exit")

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/randomizedcoder/fixedring/internal/config"
	"github.com/randomizedcoder/fixedring/internal/pump"
)

func newPumpCommand(cfg *config.Config, logger func() *zap.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pump",
		Short: "Simulate an interrupt producer and a main-loop consumer on one ring",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger()

			buf, err := config.NewBuffer[uint32](*cfg)
			if err != nil {
				return err
			}
			log.Debug("ring configured",
				zap.String("ring", cfg.Ring),
				zap.Int("capacity", buf.Cap()),
				zap.String("policy", cfg.Policy),
				zap.String("available", cfg.Available),
			)

			p, err := pump.New(buf, pump.Options{
				Every:        cfg.Every,
				MaxBurst:     cfg.MaxBurst,
				DrainPerPoll: cfg.DrainPerPoll,
				Iterations:   cfg.Iterations,
				ReportEvery:  cfg.ReportEvery,
				Seed:         cfg.Seed,
			}, log.Named("pump"))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			stats, err := p.Run(ctx)
			printStats(os.Stdout, stats)
			return err
		},
	}
	cfg.BindRingFlags(cmd.Flags())
	cfg.BindPumpFlags(cmd.Flags())
	return cmd
}

func printStats(w io.Writer, s pump.Stats) {
	fmt.Fprintln(w, "─────────────────────────────────────────────────")
	fmt.Fprintf(w, "  Polls:     %d\n", s.Polls)
	fmt.Fprintf(w, "  Written:   %d\n", s.Written)
	fmt.Fprintf(w, "  Read:      %d\n", s.Read)
	fmt.Fprintf(w, "  Pending:   %d\n", s.Pending())
	fmt.Fprintf(w, "  Rejected:  %d\n", s.Rejected)
	fmt.Fprintf(w, "  Dropped:   %d\n", s.Dropped)
	fmt.Fprintf(w, "  Gaps:      %d\n", s.Gaps)
	fmt.Fprintf(w, "  Max fill:  %d\n", s.MaxFill)
	fmt.Fprintf(w, "  Max avail: %d\n", s.MaxAvailable)
	fmt.Fprintf(w, "  Count:     %d\n", s.Count)
	if s.Polls > 0 {
		fmt.Fprintf(w, "  Elapsed:   %v (%.2f ns/poll)\n", s.Elapsed, float64(s.Elapsed.Nanoseconds())/float64(s.Polls))
	}
}

// Command ringbench exercises the fixed rings.
//
// Usage:
//
//	go run ./cmd/ringbench bench -n 10000000 --size 1024
//	go run ./cmd/ringbench pump --ring n --size 64 --policy overwrite --burst 16 --drain 4
package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/randomizedcoder/fixedring/internal/config"
)

func main() {
	cfg := config.Default()
	var log *zap.Logger

	root := &cobra.Command{
		Use:           "ringbench",
		Short:         "Benchmark and simulate fixed-capacity SPSC ring buffers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			log = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = log.Sync()
		},
	}
	root.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")

	root.AddCommand(
		newBenchCommand(&cfg),
		newPumpCommand(&cfg, func() *zap.Logger { return log }),
	)

	if err := root.Execute(); err != nil {
		if log == nil {
			log, _ = zap.NewProduction()
		}
		log.Error("ringbench failed", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrap(err, "parse log level")
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	l, err := zc.Build()
	if err != nil {
		return nil, errors.Wrap(err, "build logger")
	}
	return l, nil
}

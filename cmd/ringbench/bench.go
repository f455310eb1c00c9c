package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/randomizedcoder/fixedring/internal/config"
	"github.com/randomizedcoder/fixedring/internal/queue"
)

type queueInfo struct {
	name string
	q    queue.Queue[int]
}

func newBenchCommand(cfg *config.Config) *cobra.Command {
	iterations := 10_000_000

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time push+pop on each queue implementation",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(iterations, cfg.Size)
		},
	}
	cmd.Flags().IntVarP(&iterations, "iterations", "n", iterations, "number of iterations")
	cmd.Flags().IntVar(&cfg.Size, "size", cfg.Size, "backing size for the bounded, channel and sharded queues")
	return cmd
}

func runBench(iterations, size int) error {
	bounded, err := queue.NewBounded[int](size)
	if err != nil {
		return err
	}
	sharded, err := queue.NewSharded[int](uint64(size))
	if err != nil {
		return err
	}

	queues := []queueInfo{
		{"Channel", queue.NewChannel[int](size)},
		{"Fixed256", queue.NewFixed[int]()},
		{fmt.Sprintf("Bounded(%d)", size), bounded},
		{"Sharded", sharded},
	}

	fmt.Printf("Benchmarking SPSC queues (%d iterations, size=%d)\n", iterations, size)
	fmt.Println("─────────────────────────────────────────────────")

	perOp := make([]float64, len(queues))
	for i, qi := range queues {
		start := time.Now()
		for j := 0; j < iterations; j++ {
			qi.q.Push(j)
			qi.q.Pop()
		}
		dur := time.Since(start)
		perOp[i] = float64(dur.Nanoseconds()) / float64(iterations)
	}

	fmt.Printf("\nResults (push + pop per iteration):\n")
	for i, qi := range queues {
		fmt.Printf("  %-14s %8.2f ns/op  (%.2fx vs Channel)\n", qi.name+":", perOp[i], perOp[0]/perOp[i])
	}

	fmt.Printf("\nThroughput (theoretical max):\n")
	for i, qi := range queues {
		fmt.Printf("  %-14s %8.2f M ops/sec\n", qi.name+":", 1000/perOp[i])
	}
	return nil
}

package pump_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/randomizedcoder/fixedring/internal/pump"
	"github.com/randomizedcoder/fixedring/internal/ring"
)

func TestNew_Validation(t *testing.T) {
	buf := ring.NewRing256[uint32]()

	_, err := pump.New(nil, pump.Options{MaxBurst: 1, DrainPerPoll: 1}, nil)
	assert.Error(t, err)

	_, err = pump.New(buf, pump.Options{MaxBurst: 0, DrainPerPoll: 1}, nil)
	assert.Error(t, err)

	_, err = pump.New(buf, pump.Options{MaxBurst: 1, DrainPerPoll: 0}, nil)
	assert.Error(t, err)

	_, err = pump.New(buf, pump.Options{MaxBurst: 1, DrainPerPoll: 1, Iterations: -1}, nil)
	assert.Error(t, err)
}

func TestRun_PreserveNoLoss(t *testing.T) {
	buffers := map[string]ring.Buffer[uint32]{
		"Ring256": ring.NewRing256[uint32](),
		"RingN":   ring.MustNewRingN[uint32](16),
	}

	for name, buf := range buffers {
		t.Run(name, func(t *testing.T) {
			p, err := pump.New(buf, pump.Options{
				Every:        1,
				MaxBurst:     8,
				DrainPerPoll: 8,
				Iterations:   10_000,
				Seed:         7,
			}, zaptest.NewLogger(t))
			require.NoError(t, err)

			stats, err := p.Run(context.Background())
			require.NoError(t, err)

			assert.Equal(t, uint64(10_000), stats.Polls)
			assert.Zero(t, stats.Rejected)
			assert.Zero(t, stats.Dropped)
			assert.Zero(t, stats.Gaps)
			assert.Equal(t, stats.Written, stats.Read, "drain keeps up with every burst")
			assert.Equal(t, stats.Read, stats.Count)
			assert.LessOrEqual(t, stats.MaxFill, 8)
			assert.True(t, buf.IsEmpty())
		})
	}
}

func TestRun_PreserveRejects(t *testing.T) {
	buf := ring.MustNewRingN[uint32](8)
	p, err := pump.New(buf, pump.Options{
		Every:        1,
		MaxBurst:     6,
		DrainPerPoll: 1,
		Iterations:   5_000,
		Seed:         3,
	}, nil)
	require.NoError(t, err)

	stats, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.NotZero(t, stats.Rejected)
	assert.Zero(t, stats.Gaps, "rejected writes are never assigned a sequence number")
	assert.Equal(t, 7, stats.MaxFill)
	assert.Equal(t, uint64(buf.Len()), stats.Pending())
}

func TestRun_AvailableModes(t *testing.T) {
	run := func(mode ring.AvailableMode) pump.Stats {
		buf := ring.MustNewRingN[uint32](8, ring.WithAvailableMode(mode))
		p, err := pump.New(buf, pump.Options{
			Every:        1,
			MaxBurst:     6,
			DrainPerPoll: 1,
			Iterations:   5_000,
			Seed:         3,
		}, nil)
		require.NoError(t, err)

		stats, err := p.Run(context.Background())
		require.NoError(t, err)
		return stats
	}

	corrected := run(ring.AvailableCorrected)
	compat := run(ring.AvailableCompat)

	assert.Equal(t, corrected.Written, compat.Written, "mode must not change ring behavior")
	assert.Equal(t, corrected.MaxFill, compat.MaxFill)

	assert.Equal(t, 7, corrected.MaxAvailable)
	assert.Equal(t, corrected.MaxFill, corrected.MaxAvailable)

	// Once tail wraps below head the truncated subtraction goes negative.
	assert.GreaterOrEqual(t, compat.MaxAvailable, 249)
	assert.Greater(t, compat.MaxAvailable, compat.MaxFill)
}

func TestRun_OverwriteCountsGaps(t *testing.T) {
	buf := ring.MustNewRingN[uint32](8, ring.WithOverwritePolicy(ring.OverwriteOldest))
	p, err := pump.New(buf, pump.Options{
		Every:        1,
		MaxBurst:     12,
		DrainPerPoll: 1,
		Iterations:   5_000,
		Seed:         11,
	}, nil)
	require.NoError(t, err)

	stats, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Zero(t, stats.Rejected)
	assert.NotZero(t, stats.Dropped)
	assert.NotZero(t, stats.Gaps)
	assert.LessOrEqual(t, stats.Gaps, stats.Dropped)
	assert.Equal(t, uint64(buf.Len()), stats.Pending())
}

func TestRun_OutOfOrder(t *testing.T) {
	buf := ring.MustNewRingN[uint32](4)
	// A stale sample already queued ahead of the pump's own sequence.
	require.NoError(t, buf.Write(5))

	p, err := pump.New(buf, pump.Options{Every: 1, MaxBurst: 1, DrainPerPoll: 2, Iterations: 10}, nil)
	require.NoError(t, err)

	_, err = p.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, pump.ErrOrder))
}

func TestRun_StopAndCancel(t *testing.T) {
	t.Run("Stop", func(t *testing.T) {
		p, err := pump.New(ring.NewRing256[uint32](), pump.Options{Every: 1, MaxBurst: 4, DrainPerPoll: 4}, nil)
		require.NoError(t, err)

		go func() {
			time.Sleep(20 * time.Millisecond)
			p.Stop()
		}()

		stats, err := p.Run(context.Background())
		require.NoError(t, err)
		assert.NotZero(t, stats.Polls)
	})

	t.Run("Context", func(t *testing.T) {
		p, err := pump.New(ring.NewRing256[uint32](), pump.Options{Every: 1, MaxBurst: 4, DrainPerPoll: 4}, nil)
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		stats, err := p.Run(ctx)
		require.NoError(t, err)
		assert.NotZero(t, stats.Polls)
	})
}

func TestRun_Again(t *testing.T) {
	buf := ring.MustNewRingN[uint32](16)
	p, err := pump.New(buf, pump.Options{
		Every:        1,
		MaxBurst:     8,
		DrainPerPoll: 8,
		Iterations:   200,
		Seed:         5,
	}, nil)
	require.NoError(t, err)

	first, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, uint64(200), first.Polls)

	// A stop left over from the previous run must not end the next one.
	p.Stop()

	second, err := p.Run(context.Background())
	require.NoError(t, err, "sequence numbers carry over between runs")
	assert.Equal(t, uint64(200), second.Polls)
	assert.NotZero(t, second.Written)
	assert.Zero(t, second.Gaps)
	assert.Equal(t, first.Count+second.Read, second.Count)
}

func TestRun_Reports(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	p, err := pump.New(ring.NewRing256[uint32](), pump.Options{
		Every:        2,
		MaxBurst:     4,
		DrainPerPoll: 4,
		ReportEvery:  time.Millisecond,
	}, zap.New(core))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = p.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("pump started").Len())
	assert.NotZero(t, logs.FilterMessage("pump stats").Len())
	stopped := logs.FilterMessage("pump stopped").All()
	require.Len(t, stopped, 1)
	stats, ok := stopped[0].ContextMap()["stats"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, stats, "max_fill")
	assert.Contains(t, stats, "max_available")
}

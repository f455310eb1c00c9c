// Package config holds the ringbench command configuration.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/randomizedcoder/fixedring/internal/ring"
)

// Ring kinds accepted by --ring.
const (
	Ring256 = "256"
	RingN   = "n"
)

// Config selects the ring under test and the load driven through it.
type Config struct {
	Ring      string
	Size      int
	Policy    string
	Available string

	Every        int
	MaxBurst     int
	DrainPerPoll int
	Iterations   int
	ReportEvery  time.Duration
	Seed         uint32

	LogLevel string
}

// Default returns the configuration used when no flags are given.
func Default() Config {
	return Config{
		Ring:         Ring256,
		Size:         1024,
		Policy:       ring.PreserveOldest.String(),
		Available:    ring.AvailableCorrected.String(),
		Every:        4,
		MaxBurst:     8,
		DrainPerPoll: 2,
		Iterations:   10_000_000,
		ReportEvery:  time.Second,
		LogLevel:     "info",
	}
}

// BindRingFlags registers the ring selection flags on fs.
func (c *Config) BindRingFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.Ring, "ring", c.Ring, `ring variant: "256" or "n"`)
	fs.IntVar(&c.Size, "size", c.Size, fmt.Sprintf("RingN backing size (%d..%d)", ring.MinSize, ring.MaxSize))
	fs.StringVar(&c.Policy, "policy", c.Policy, `write policy when full: "preserve" or "overwrite"`)
	fs.StringVar(&c.Available, "available", c.Available, `RingN Available() arithmetic: "corrected" or "compat"`)
}

// BindPumpFlags registers the simulated load flags on fs.
func (c *Config) BindPumpFlags(fs *pflag.FlagSet) {
	fs.IntVar(&c.Every, "every", c.Every, "polls between interrupts")
	fs.IntVar(&c.MaxBurst, "burst", c.MaxBurst, "maximum samples written per interrupt")
	fs.IntVar(&c.DrainPerPoll, "drain", c.DrainPerPoll, "maximum samples read per poll")
	fs.IntVarP(&c.Iterations, "iterations", "n", c.Iterations, "number of polls (0 runs until interrupted)")
	fs.DurationVar(&c.ReportEvery, "report", c.ReportEvery, "stats log interval (0 disables)")
	fs.Uint32Var(&c.Seed, "seed", c.Seed, "burst generator seed (0 is random)")
}

// Validate returns every configuration problem at once.
func (c Config) Validate() error {
	var result *multierror.Error

	switch strings.ToLower(c.Ring) {
	case Ring256:
	case RingN:
		if c.Size < ring.MinSize || c.Size > ring.MaxSize {
			result = multierror.Append(result, errors.Errorf("size %d not in [%d, %d]", c.Size, ring.MinSize, ring.MaxSize))
		}
	default:
		result = multierror.Append(result, errors.Errorf("unknown ring %q", c.Ring))
	}
	if _, err := ring.ParseOverwritePolicy(c.Policy); err != nil {
		result = multierror.Append(result, err)
	}
	if _, err := ring.ParseAvailableMode(c.Available); err != nil {
		result = multierror.Append(result, err)
	}
	if c.Every < 1 {
		result = multierror.Append(result, errors.Errorf("every %d must be positive", c.Every))
	}
	if c.MaxBurst < 1 {
		result = multierror.Append(result, errors.Errorf("burst %d must be positive", c.MaxBurst))
	}
	if c.DrainPerPoll < 1 {
		result = multierror.Append(result, errors.Errorf("drain %d must be positive", c.DrainPerPoll))
	}
	if c.Iterations < 0 {
		result = multierror.Append(result, errors.Errorf("iterations %d must not be negative", c.Iterations))
	}
	if c.ReportEvery < 0 {
		result = multierror.Append(result, errors.Errorf("report interval %s must not be negative", c.ReportEvery))
	}

	return result.ErrorOrNil()
}

// RingOptions converts the policy and mode names into ring options.
// Call Validate first; unknown names fall back to the defaults.
func (c Config) RingOptions() []ring.Option {
	policy, _ := ring.ParseOverwritePolicy(c.Policy)
	mode, _ := ring.ParseAvailableMode(c.Available)
	return []ring.Option{
		ring.WithOverwritePolicy(policy),
		ring.WithAvailableMode(mode),
	}
}

// NewBuffer builds the configured ring.
func NewBuffer[T any](c Config) (ring.Buffer[T], error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if strings.ToLower(c.Ring) == RingN {
		r, err := ring.NewRingN[T](c.Size, c.RingOptions()...)
		if err != nil {
			return nil, err
		}
		return r, nil
	}
	return ring.NewRing256[T](c.RingOptions()...), nil
}

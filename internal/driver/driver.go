package driver

import (
	"context"
	"time"
)

const (
	// DefaultTickLength is the world-advance period.
	DefaultTickLength = 250 * time.Millisecond

	// DefaultAIEvery is how many ticks pass between AI steps; with the
	// default tick length that approximates a one second cadence.
	DefaultAIEvery = 4
)

// Runtime is the surface the tick loop drives.
type Runtime interface {
	ProcessScheduled(ctx context.Context, now time.Time) error
	AIStep(ctx context.Context) error
}

// WorldDriver fires the runtime on a fixed period for the lifetime of the
// process. ProcessScheduled runs on every tick; AIStep on every aiEvery-th.
// There is no pause or resume surface: the loop ends with ctx cancellation.
type WorldDriver struct {
	tickLength time.Duration
	aiEvery    int
	rt         Runtime

	ticks uint64
	last  time.Time
}

func NewWorldDriver(rt Runtime, opts ...WorldDriverOpt) *WorldDriver {
	d := &WorldDriver{
		tickLength: DefaultTickLength,
		aiEvery:    DefaultAIEvery,
		rt:         rt,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *WorldDriver) Start(ctx context.Context) error {
	d.last = time.Now()
	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			if err := d.Tick(ctx, now); err != nil {
				return err
			}
		}
	}
}

// Tick advances the world by one firing. Split out from Start so tests can
// drive the cadence directly.
func (d *WorldDriver) Tick(ctx context.Context, now time.Time) error {
	d.last = now
	d.ticks++

	if err := d.rt.ProcessScheduled(ctx, now); err != nil {
		return err
	}

	if d.ticks%uint64(d.aiEvery) == 0 {
		if err := d.rt.AIStep(ctx); err != nil {
			return err
		}
	}

	return nil
}

// Ticks returns the number of firings so far.
func (d *WorldDriver) Ticks() uint64 {
	return d.ticks
}

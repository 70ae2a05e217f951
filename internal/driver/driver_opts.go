package driver

import "time"

type WorldDriverOpt func(*WorldDriver)

func WithTickLength(tickLength time.Duration) WorldDriverOpt {
	return func(d *WorldDriver) {
		d.tickLength = tickLength
	}
}

func WithAIEvery(ticks int) WorldDriverOpt {
	return func(d *WorldDriver) {
		if ticks > 0 {
			d.aiEvery = ticks
		}
	}
}

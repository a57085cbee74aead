package retry

import (
	"math/rand"
	"time"
)

// delay computes the sleep before retrying the given attempt (0-indexed):
// BaseDelay doubled per attempt, capped at MaxDelay, spread by ±Jitter.
func (c Config) delay(attempt int) time.Duration {
	d := float64(c.BaseDelay)
	for range attempt {
		d *= 2
		if limit := float64(c.MaxDelay); c.MaxDelay > 0 && d >= limit {
			d = limit
			break
		}
	}
	if c.Jitter > 0 {
		d *= 1 + c.Jitter*(2*rand.Float64()-1)
	}
	if d < 0 {
		d = 0
	}
	return time.Duration(d)
}

// Package sim produces the live-tracking illusion for a selected
// vehicle: a bounded random walk starting at the vehicle's static
// position, emitted on a fixed cadence until the step cap is reached
// or the tracker is stopped.
package sim

import (
	"math/rand"
	"sync"
	"time"

	"github.com/example/campus-shuttle/internal/models"
)

// Defaults: one step every 800ms, sixty steps, longitude jitter twice
// the latitude jitter.
const (
	DefaultInterval  = 800 * time.Millisecond
	DefaultSteps     = 60
	DefaultLatJitter = 0.00015
	DefaultLonJitter = 0.0003
)

type Config struct {
	Interval  time.Duration
	Steps     int
	LatJitter float64 // symmetric: offset uniform in [-LatJitter, +LatJitter]
	LonJitter float64
	Seed      int64 // 0 means seed from the clock
}

func (c *Config) applyDefaults() {
	if c.Interval <= 0 {
		c.Interval = DefaultInterval
	}
	if c.Steps <= 0 {
		c.Steps = DefaultSteps
	}
	if c.LatJitter <= 0 {
		c.LatJitter = DefaultLatJitter
	}
	if c.LonJitter <= 0 {
		c.LonJitter = DefaultLonJitter
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
}

// Tracker is a handle on one running simulation. Stop is idempotent
// and releases the timer; the tracker also stops itself once the step
// cap is reached. Every started tracker ends exactly once, either way.
type Tracker struct {
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

// Start emits the starting position synchronously as step 0, then
// perturbs it every interval on a background goroutine. onStep is
// never called concurrently with itself and never after Done is
// closed.
func Start(start models.Coord, cfg Config, onStep func(pos models.Coord, step int)) *Tracker {
	cfg.applyDefaults()

	t := &Tracker{
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}

	onStep(start, 0)

	rng := rand.New(rand.NewSource(cfg.Seed))
	go func() {
		defer close(t.doneCh)
		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()
		pos := start
		for step := 1; step <= cfg.Steps; step++ {
			select {
			case <-t.stopCh:
				return
			case <-ticker.C:
				pos.Lat += (rng.Float64() - 0.5) * 2 * cfg.LatJitter
				pos.Lon += (rng.Float64() - 0.5) * 2 * cfg.LonJitter
				onStep(pos, step)
			}
		}
	}()
	return t
}

// Stop cancels the walk. Safe to call more than once, and safe after
// the step cap has already ended the walk. At most one in-flight
// onStep call may still be running when Stop returns; callers that
// need a hard cut (e.g. reselecting a vehicle) must discard stale
// callbacks themselves, typically by tagging them with a generation.
func (t *Tracker) Stop() {
	t.stopOnce.Do(func() { close(t.stopCh) })
}

// Done is closed once the walk has fully terminated and the timer is
// released.
func (t *Tracker) Done() <-chan struct{} { return t.doneCh }

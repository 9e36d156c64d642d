package reveal

import "time"

// DefaultInterval is the delay between two consecutive fragments.
const DefaultInterval = 75 * time.Millisecond

// Scheduler runs f once, after d has elapsed. The zero-delay case may run f on another goroutine.
type Scheduler func(d time.Duration, f func())

// Animator schedules the staggered appearance of fragments. Fragment i is emitted interval*i after
// Reveal is called. All timers are armed at once and none of them can be cancelled: callers that need
// to discard a stale reveal must do it in emit.
type Animator struct {
	interval time.Duration
	schedule Scheduler
}

// NewAnimator creates an Animator backed by runtime timers. A non-positive interval falls back to
// DefaultInterval.
func NewAnimator(interval time.Duration) Animator {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return Animator{
		interval: interval,
		schedule: afterFunc,
	}
}

// WithScheduler returns a copy of a that arms its timers through s.
func (a Animator) WithScheduler(s Scheduler) Animator {
	a.schedule = s
	return a
}

// Reveal arms one timer per fragment. emit receives the fragment index along with the fragment, since
// timers armed close together are not guaranteed to fire in order.
func (a Animator) Reveal(fragments []string, emit func(index int, fragment string)) {
	for i, fragment := range fragments {
		a.schedule(time.Duration(i)*a.interval, func() {
			emit(i, fragment)
		})
	}
}

func afterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

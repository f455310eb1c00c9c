package pump

import "time"

// Trigger fires once every N polls.
//
// It stands in for an interrupt line: the main loop polls it on every
// iteration and runs the "handler" when it fires. No clock is read, so the
// cost per poll is one increment and one compare.
type Trigger struct {
	every int
	count int
}

// NewTrigger creates a Trigger that fires on every Nth call to Fire.
// every < 1 is treated as 1.
func NewTrigger(every int) *Trigger {
	if every < 1 {
		every = 1
	}
	return &Trigger{every: every}
}

// Fire returns true on every Nth call.
func (t *Trigger) Fire() bool {
	t.count++
	if t.count < t.every {
		return false
	}
	t.count = 0
	return true
}

// Reset restarts the poll count.
func (t *Trigger) Reset() {
	t.count = 0
}

// Every returns N.
func (t *Trigger) Every() int {
	return t.every
}

// Reporter signals when a stats report is due.
//
// It wraps time.Ticker with a non-blocking check. A Reporter created with a
// zero interval never fires and holds no timer.
type Reporter struct {
	ticker   *time.Ticker
	interval time.Duration
}

// NewReporter creates a Reporter firing every interval.
func NewReporter(interval time.Duration) *Reporter {
	r := &Reporter{interval: interval}
	if interval > 0 {
		r.ticker = time.NewTicker(interval)
	}
	return r
}

// Due returns true if the interval has elapsed since the last report.
func (r *Reporter) Due() bool {
	if r.ticker == nil {
		return false
	}
	select {
	case <-r.ticker.C:
		return true
	default:
		return false
	}
}

// Stop releases the underlying timer.
func (r *Reporter) Stop() {
	if r.ticker != nil {
		r.ticker.Stop()
	}
}

// Interval returns the report interval.
func (r *Reporter) Interval() time.Duration {
	return r.interval
}

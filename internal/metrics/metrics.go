package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value atomic.Uint64
}

func (c *Counter) Inc() {
	c.value.Add(1)
}

func (c *Counter) Add(n uint64) {
	c.value.Add(n)
}

func (c *Counter) Load() uint64 {
	return c.value.Load()
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Catalog groups the process-wide counters reported on the stats endpoint.
type Catalog struct {
	Fetches       Counter
	FetchFailures Counter
	Sessions      Counter
}

type Snapshot struct {
	Fetches        uint64 `json:"fetches"`
	FetchFailures  uint64 `json:"fetchFailures"`
	SessionsOpened uint64 `json:"sessionsOpened"`
	ActiveSessions int    `json:"activeSessions"`
}

func (c *Catalog) Snapshot(active int) Snapshot {
	return Snapshot{
		Fetches:        c.Fetches.Load(),
		FetchFailures:  c.FetchFailures.Load(),
		SessionsOpened: c.Sessions.Load(),
		ActiveSessions: active,
	}
}

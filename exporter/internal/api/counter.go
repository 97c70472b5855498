package api

import "sync/atomic"

// RequestCounter counts status requests that started and that completed
// with a converted body. It is shared by all concurrent handlers.
type RequestCounter struct {
	started   atomic.Uint64
	completed atomic.Uint64
}

func (c *RequestCounter) begin() uint64 { return c.started.Add(1) }

func (c *RequestCounter) end() uint64 { return c.completed.Add(1) }

// Started returns the number of status requests received.
func (c *RequestCounter) Started() uint64 { return c.started.Load() }

// Completed returns the number of status requests answered with metrics.
func (c *RequestCounter) Completed() uint64 { return c.completed.Load() }

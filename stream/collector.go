package stream

import "sync"

// Collector is a Sink that keeps every result in memory.
type Collector struct {
	mu      sync.Mutex
	results []Result
}

// Send implements Sink.
func (c *Collector) Send(r Result) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = append(c.results, r)
	return nil
}

// Results returns the collected results in emission order.
func (c *Collector) Results() []Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Result, len(c.results))
	copy(out, c.results)
	return out
}

// Last returns the most recent result.
func (c *Collector) Last() (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.results) == 0 {
		return Result{}, false
	}
	return c.results[len(c.results)-1], true
}

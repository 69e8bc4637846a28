package client

import (
	"context"

	"cryptowrap/pkg/core"
)

// Outcome pairs a normalized result with the error of one asynchronous call.
type Outcome struct {
	Result *core.Result
	Err    error
}

// Go invokes a named operation on its own goroutine and delivers the
// outcome on the returned channel. The channel is buffered and closed
// after the single send, so abandoning it never leaks the goroutine.
// Callers cancel through the context.
func (c *Client) Go(ctx context.Context, operation string, params core.Params) <-chan Outcome {
	ch := make(chan Outcome, 1)
	go func() {
		defer close(ch)
		result, err := c.Do(ctx, operation, params)
		ch <- Outcome{Result: result, Err: err}
	}()
	return ch
}

package client

import (
	"context"
	"fmt"
	"time"

	"clipwatch/internal/progress"
	"clipwatch/internal/stage"
)

// Poll fetches the job status every interval and forwards each report to
// the reporter. It returns nil once the terminal complete signal is seen,
// or the context's error on cancellation. Fetch failures are reported as
// log lines and the loop keeps going; the next poll is the retry.
func (c *Client) Poll(ctx context.Context, jobID string, interval time.Duration, rep progress.Reporter) error {
	if interval <= 0 {
		interval = time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		ev, err := c.Status(ctx, jobID)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			rep.Log(fmt.Sprintf("status fetch failed: %v", err))
		} else {
			rep.Update(ev)
			if ev.Stage == stage.Complete {
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

package throttle

import (
  "context"
  "time"
)

// Sleep blocks for the delay or until the context is done.
func Sleep(ctx context.Context, delay time.Duration) error {
  if delay <= 0 {
    return ctx.Err()
  }
  timer := time.NewTimer(delay)
  defer timer.Stop()

  select {
  case <-ctx.Done():
    return ctx.Err()
  case <-timer.C:
    return nil
  }
}

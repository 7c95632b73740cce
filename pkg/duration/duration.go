package duration

import (
  "fmt"
  "time"
)

// Format renders a duration the way progress lines show it:
// seconds below a minute, minutes below an hour, hours otherwise.
func Format(d time.Duration) string {
  seconds := d.Seconds()

  switch {
  case seconds < 0:
    return "immediately"
  case seconds < 60:
    return fmt.Sprintf("%.1f sec", seconds)
  case seconds < 3600:
    return fmt.Sprintf("%.1f min", seconds/60)
  default:
    return fmt.Sprintf("%.1f h", seconds/3600)
  }
}

// ETA estimates the remaining time from the average time per processed item.
func ETA(elapsed time.Duration, processed, total int) time.Duration {
  if processed <= 0 || processed >= total {
    return 0
  }
  perItem := elapsed / time.Duration(processed)

  return perItem * time.Duration(total-processed)
}

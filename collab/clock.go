package collab

import "time"

// SystemClock is the default Clock, backed by the process's monotonic
// clock: readings are milliseconds since package initialization.
type SystemClock struct{}

var processStart = time.Now()

// NowMillis implements Clock.
func (SystemClock) NowMillis() int64 {
	return time.Since(processStart).Milliseconds()
}

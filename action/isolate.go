package action

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/reugn/go-every/every"
	"github.com/reugn/go-every/logger"
)

// Isolate wraps an action so that at most one invocation runs at a time.
// A firing that overlaps a running invocation is skipped and logged.
// It is useful when one action is shared by several schedules.
func Isolate(action every.Action, l logger.Logger) every.Action {
	if l == nil {
		l = logger.NoOpLogger{}
	}
	var running atomic.Bool
	return func(ctx context.Context, fireTime time.Time) {
		if wasRunning := running.Swap(true); wasRunning {
			l.Warn("Skipping firing, action is running.", "fire_time", fireTime)
			return
		}
		defer running.Store(false)
		action(ctx, fireTime)
	}
}

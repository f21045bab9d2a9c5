package cli

import (
	"context"
	"time"
)

// reloadDelay lets editors finish writing before the catalog is rebuilt.
var reloadDelay = 100 * time.Millisecond

// WatchReload rebuilds the catalog for every burst of change events until
// ctx is done or events is closed. notify receives the changed rule set
// and the result of the reload.
func WatchReload(ctx context.Context, events <-chan string, reload func(context.Context) error, notify func(string, error)) {
	for {
		select {
		case <-ctx.Done():
			return
		case name, ok := <-events:
			if !ok {
				return
			}

			select {
			case <-ctx.Done():
				return
			case <-time.After(reloadDelay):
			}
			name = drain(events, name)

			err := reload(ctx)
			if notify != nil {
				notify(name, err)
			}
		}
	}
}

// drain discards queued events and returns the most recent name.
func drain(events <-chan string, last string) string {
	for {
		select {
		case name, ok := <-events:
			if !ok {
				return last
			}
			last = name
		default:
			return last
		}
	}
}

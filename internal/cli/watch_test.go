package cli

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestWatchReload(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	saved := reloadDelay
	reloadDelay = 0
	defer func() { reloadDelay = saved }()

	t.Run("Reloads once per burst and stops on close", func(t *testing.T) {
		events := make(chan string, 4)
		events <- "tmux"
		events <- "tmux"
		events <- "editor"

		var mu sync.Mutex
		var notified []string
		reloads := 0
		reload := func(context.Context) error {
			mu.Lock()
			defer mu.Unlock()
			reloads++
			return nil
		}
		notify := func(name string, err error) {
			assert.NoError(t, err)
			mu.Lock()
			defer mu.Unlock()
			notified = append(notified, name)
		}

		done := make(chan struct{})
		go func() {
			WatchReload(context.Background(), events, reload, notify)
			close(done)
		}()

		assert.Eventually(t, func() bool {
			mu.Lock()
			defer mu.Unlock()
			return reloads == 1
		}, time.Second, 5*time.Millisecond)

		close(events)
		<-done

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, []string{"editor"}, notified)
	})

	t.Run("Stops on cancel", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		events := make(chan string)

		var gotErr error
		done := make(chan struct{})
		go func() {
			WatchReload(ctx, events, func(context.Context) error { return errors.New("broken") }, func(_ string, err error) {
				gotErr = err
			})
			close(done)
		}()

		events <- "tmux"
		assert.Eventually(t, func() bool {
			select {
			case events <- "editor":
				return true
			default:
				return false
			}
		}, time.Second, 5*time.Millisecond)

		cancel()
		<-done
		assert.EqualError(t, gotErr, "broken")
	})
}

package cli

import (
	"bytes"
	"context"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignalContext(t *testing.T) {
	t.Run("records the signal that cancelled it", func(t *testing.T) {
		sc := NewSignalContext(context.Background())
		defer sc.Cancel()

		sc.sigCh <- syscall.SIGTERM

		select {
		case <-sc.Done():
		case <-time.After(2 * time.Second):
			t.Fatal("context was not cancelled by the signal")
		}
		assert.Eventually(t, func() bool { return sc.Signal() == syscall.SIGTERM }, time.Second, 10*time.Millisecond)

		var out bytes.Buffer
		reportSignal(&out, sc)
		assert.Equal(t, ">>> Received terminated, shutting down.\n", out.String())
	})

	t.Run("plain cancel reports nothing", func(t *testing.T) {
		sc := NewSignalContext(context.Background())
		sc.Cancel()

		<-sc.Done()
		require.Nil(t, sc.Signal())

		var out bytes.Buffer
		reportSignal(&out, sc)
		assert.Empty(t, out.String())
	})
}

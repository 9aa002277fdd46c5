package latch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestLatch(t *testing.T) {
	t.Run("zero value is unset", func(t *testing.T) {
		var l Latch
		require.False(t, l.IsSet())

		select {
		case <-l.Done():
			require.Fail(t, "the latch must not be released yet")
		default:
		}
	})

	t.Run("set releases waiters", func(t *testing.T) {
		var l Latch
		var eg errgroup.Group

		for i := 0; i < 8; i++ {
			eg.Go(func() error {
				l.Wait()
				return nil
			})
		}

		time.Sleep(10 * time.Millisecond)
		l.Set()
		require.NoError(t, eg.Wait())
		require.True(t, l.IsSet())
	})

	t.Run("set before wait", func(t *testing.T) {
		var l Latch
		l.Set()

		select {
		case <-l.Done():
		case <-time.After(time.Second):
			require.Fail(t, "the latch must be released already")
		}
	})

	t.Run("set is idempotent", func(t *testing.T) {
		var l Latch
		l.Set()
		require.NotPanics(t, l.Set)
		require.True(t, l.IsSet())
	})

	t.Run("concurrent setters", func(t *testing.T) {
		var l Latch
		var eg errgroup.Group

		for i := 0; i < 8; i++ {
			eg.Go(func() error {
				l.Set()
				return nil
			})
		}

		require.NoError(t, eg.Wait())
		require.True(t, l.IsSet())
	})
}

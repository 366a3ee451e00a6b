package strategies

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundRobin(t *testing.T) {
	t.Run("EmptyAlwaysFails", func(t *testing.T) {
		rr := NewRoundRobin(nil)
		for i := 0; i < 5; i++ {
			_, err := rr.Next()
			require.ErrorIs(t, err, ErrEmpty)
		}
		require.Equal(t, 0, rr.Cursor())
	})

	t.Run("CycleLaw", func(t *testing.T) {
		addrs := []string{"1.1.1.1:80", "2.2.2.2:81", "3.3.3.3:82"}
		rr := NewRoundRobin(addrs)

		for i := range addrs {
			got, err := rr.Next()
			require.NoError(t, err)
			require.Equal(t, addrs[i], got)
		}
		got, err := rr.Next()
		require.NoError(t, err)
		require.Equal(t, addrs[0], got, "wraps to the first proxy")
	})

	t.Run("ResetRewinds", func(t *testing.T) {
		rr := NewRoundRobin([]string{"a:1", "b:2"})
		_, _ = rr.Next()
		require.Equal(t, 1, rr.Cursor())

		rr.Reset([]string{"c:3"})
		require.Equal(t, 0, rr.Cursor())
		got, err := rr.Next()
		require.NoError(t, err)
		require.Equal(t, "c:3", got)
	})

	t.Run("SnapshotIsCopy", func(t *testing.T) {
		src := []string{"a:1"}
		rr := NewRoundRobin(src)
		src[0] = "mutated"

		snap := rr.Snapshot()
		require.Equal(t, []string{"a:1"}, snap)
		snap[0] = "mutated"
		require.Equal(t, []string{"a:1"}, rr.Snapshot())
	})

	t.Run("ConcurrentNextIsFair", func(t *testing.T) {
		addrs := []string{"a:1", "b:2", "c:3", "d:4"}
		rr := NewRoundRobin(addrs)

		const rounds = 50
		var (
			mu     sync.Mutex
			counts = map[string]int{}
			wg     sync.WaitGroup
		)
		for i := 0; i < rounds*len(addrs); i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				got, err := rr.Next()
				if err != nil {
					t.Error(err)
					return
				}
				mu.Lock()
				counts[got]++
				mu.Unlock()
			}()
		}
		wg.Wait()

		for _, a := range addrs {
			require.Equal(t, rounds, counts[a])
		}
	})
}

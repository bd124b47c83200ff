package registry

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStoreLoadDelete(t *testing.T) {
	r := New()
	r.Store(5, "hello")

	v, ok := r.Load(5)
	require.True(t, ok)
	require.Equal(t, "hello", v)

	r.Delete(5)
	_, ok = r.Load(5)
	require.False(t, ok, "expected Load(5) to miss after Delete")
}

func TestDeleteIsIdempotent(t *testing.T) {
	r := New()
	r.Delete(99)
	r.Delete(99)
}

func TestLenAcrossShards(t *testing.T) {
	r := New()
	for fd := 0; fd < 200; fd++ {
		r.Store(fd, fd)
	}
	require.Equal(t, 200, r.Len())

	for fd := 0; fd < 100; fd++ {
		r.Delete(fd)
	}
	require.Equal(t, 100, r.Len())
}

func TestConcurrentAccessDoesNotRace(t *testing.T) {
	r := New()
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		fd := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				r.Store(fd, j)
				r.Load(fd)
			}
			r.Delete(fd)
		}()
	}
	wg.Wait()
	require.Equal(t, 0, r.Len())
}

func TestRangeVisitsAllEntries(t *testing.T) {
	r := New()
	for fd := 0; fd < 10; fd++ {
		r.Store(fd, fd*2)
	}
	seen := map[int]bool{}
	r.Range(func(fd int, state any) bool {
		seen[fd] = true
		return true
	})
	require.Len(t, seen, 10)
}

package spill

import (
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	t.Run("New creates the backing file in dir", func(t *testing.T) {
		dir := t.TempDir()

		list, err := New[int](dir)
		require.NoError(t, err)
		defer list.Close()

		require.FileExists(t, list.Path())
		require.Contains(t, list.Path(), dir)
	})

	t.Run("Append and Collect keep order", func(t *testing.T) {
		list, err := New[string](t.TempDir())
		require.NoError(t, err)
		defer list.Close()

		require.Equal(t, 0, list.Len())
		require.NoError(t, list.Append("first"))
		require.NoError(t, list.Append("second"))
		require.Equal(t, 2, list.Len())

		items, err := list.Collect()
		require.NoError(t, err)
		require.Equal(t, []string{"first", "second"}, items)
	})

	t.Run("Range callback error stops iteration", func(t *testing.T) {
		list, err := New[int](t.TempDir())
		require.NoError(t, err)
		defer list.Close()

		for i := range 3 {
			require.NoError(t, list.Append(i))
		}

		count := 0
		stop := errors.New("stop")

		err = list.Range(func(index int, _ int) error {
			count++
			if index == 1 {
				return stop
			}

			return nil
		})

		require.ErrorIs(t, err, stop)
		require.Equal(t, 2, count)
	})

	t.Run("Structs with pointers", func(t *testing.T) {
		type file struct {
			Path string
		}

		type entry struct {
			Origin *file
			Count  int
		}

		list, err := New[entry](t.TempDir())
		require.NoError(t, err)
		defer list.Close()

		require.NoError(t, list.Append(entry{Origin: &file{Path: "A.cs"}, Count: 2}))

		items, err := list.Collect()
		require.NoError(t, err)
		require.Len(t, items, 1)
		require.Equal(t, "A.cs", items[0].Origin.Path)
		require.Equal(t, 2, items[0].Count)
	})

	t.Run("Concurrent appends", func(t *testing.T) {
		list, err := New[int](t.TempDir())
		require.NoError(t, err)
		defer list.Close()

		var wg sync.WaitGroup
		for i := range 50 {
			wg.Add(1)

			go func() {
				defer wg.Done()
				assert.NoError(t, list.Append(i))
			}()
		}

		wg.Wait()

		items, err := list.Collect()
		require.NoError(t, err)
		require.Len(t, items, 50)
	})

	t.Run("Close removes the file", func(t *testing.T) {
		list, err := New[int](t.TempDir())
		require.NoError(t, err)
		require.NoError(t, list.Append(1))

		require.NoError(t, list.Close())
		require.NoError(t, list.Close())

		_, statErr := os.Stat(list.Path())
		require.True(t, os.IsNotExist(statErr))
		require.ErrorIs(t, list.Append(2), ErrClosed)
	})
}

func BenchmarkAppend(b *testing.B) {
	list, err := New[int](b.TempDir())
	if err != nil {
		b.Fatalf("failed to create spill: %v", err)
	}
	defer list.Close()

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = list.Append(i)
	}
}

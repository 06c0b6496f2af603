package parallel

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleError = errors.New("sample error")

func TestForEachWithErrors(t *testing.T) {
	t.Run("All Success", func(t *testing.T) {
		collection := []int{1, 2, 3, 4}
		err := ForEachWithErrors(collection, 2, func(item int, index int) error {
			return nil
		})
		assert.NoError(t, err, "Expected no error, but got one")
	})

	t.Run("Single Error", func(t *testing.T) {
		collection := []int{1, 2, 3, 4}
		err := ForEachWithErrors(collection, 2, func(item int, index int) error {
			if item == 2 {
				return sampleError
			}
			return nil
		})
		assert.Error(t, err, "Expected an error, but got nil")
		assert.Equal(t, sampleError, err, "Expected the returned error to be sampleError")
	})

	t.Run("Multiple Errors", func(t *testing.T) {
		collection := []int{1, 2, 3, 4}
		err := ForEachWithErrors(collection, 2, func(item int, index int) error {
			if item%2 == 0 {
				return sampleError
			}
			return nil
		})
		assert.Error(t, err, "Expected an error, but got nil")
	})

	t.Run("Empty Collection", func(t *testing.T) {
		collection := []int{}
		err := ForEachWithErrors(collection, 2, func(item int, index int) error {
			return nil
		})
		assert.NoError(t, err, "Expected no error for empty collection, but got one")
	})

	t.Run("Every Index Visited Once", func(t *testing.T) {
		collection := []string{"a", "b", "c", "d", "e"}
		visits := make([]atomic.Int32, len(collection))
		err := ForEachWithErrors(collection, 3, func(item string, index int) error {
			visits[index].Add(1)
			return nil
		})
		require.NoError(t, err)
		for i := range visits {
			require.EqualValues(t, 1, visits[i].Load())
		}
	})

	t.Run("Honors Parallelism Bound", func(t *testing.T) {
		const limit = 3

		var inFlight, peak atomic.Int32
		collection := make([]int, 64)
		err := ForEachWithErrors(collection, limit, func(item int, index int) error {
			current := inFlight.Add(1)
			defer inFlight.Add(-1)

			for {
				known := peak.Load()
				if current <= known || peak.CompareAndSwap(known, current) {
					break
				}
			}
			return nil
		})
		require.NoError(t, err)
		require.LessOrEqual(t, peak.Load(), int32(limit))
	})
}

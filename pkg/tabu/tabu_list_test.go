package tabu

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTabuList(t *testing.T) {
	t.Run("Pre-filled with sentinels", func(t *testing.T) {
		list := newTabuList[int](3)

		assert.Equal(t, 6, list.Len())
		for _, entry := range list.Entries() {
			assert.False(t, entry.Valid)
		}
		// The zero value of the element type must not match the sentinel
		assert.False(t, list.Contains(0))
	})

	t.Run("Length is constant", func(t *testing.T) {
		for tenure := 1; tenure <= 10; tenure++ {
			list := newTabuList[int](tenure)
			for range 100 {
				if rand.IntN(3) == 0 {
					list.Push(None[int]())
				} else {
					list.Push(Some(rand.IntN(20)))
				}
				assert.Equal(t, 2*tenure, list.Len())
				assert.Len(t, list.Entries(), 2*tenure)
			}
		}
	})

	t.Run("FIFO eviction", func(t *testing.T) {
		//** Arrange
		list := newTabuList[int](2)

		//** Act
		list.Push(Some(1))
		list.Push(Some(2))
		list.Push(None[int]())
		list.Push(Some(3))

		//** Assert
		assert.Equal(t, []Entry[int]{Some(1), Some(2), None[int](), Some(3)}, list.Entries())
		assert.True(t, list.Contains(1))

		list.Push(Some(4))
		assert.False(t, list.Contains(1))
		assert.True(t, list.Contains(2))
		assert.True(t, list.Contains(4))

		list.Push(Some(5))
		assert.False(t, list.Contains(2))
		assert.Equal(t, []Entry[int]{None[int](), Some(3), Some(4), Some(5)}, list.Entries())
	})

	t.Run("Duplicates are kept", func(t *testing.T) {
		list := newTabuList[int](1)

		list.Push(Some(7))
		list.Push(Some(7))
		list.Push(Some(8))

		assert.True(t, list.Contains(7))
		list.Push(Some(8))
		assert.False(t, list.Contains(7))
	})
}

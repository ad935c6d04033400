package handlers

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherKeepsChatOrder(t *testing.T) {
	d := NewDispatcher(4, 8)
	d.Start()

	var (
		mu   sync.Mutex
		seen = map[int64][]int{}
	)
	chats := []int64{1, 2, 3, 5, -100123}
	for i := 0; i < 200; i++ {
		for _, chatID := range chats {
			chatID, i := chatID, i
			err := d.Submit(context.Background(), chatID, func() {
				mu.Lock()
				seen[chatID] = append(seen[chatID], i)
				mu.Unlock()
			})
			require.NoError(t, err)
		}
	}
	d.Stop()

	for _, chatID := range chats {
		got := seen[chatID]
		require.Len(t, got, 200)
		for i, v := range got {
			if v != i {
				t.Fatalf("chat %d: job %d ran at position %d", chatID, v, i)
			}
		}
	}
}

func TestSubmitRespectsContext(t *testing.T) {
	d := NewDispatcher(1, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := d.Submit(ctx, 1, func() {})
	assert.ErrorIs(t, err, context.Canceled)
	d.Stop()
}

func TestShard(t *testing.T) {
	assert.Equal(t, 0, shard(8, 4))
	assert.Equal(t, 3, shard(-7, 4), "group chats have negative ids")
	assert.Equal(t, shard(42, 8), shard(42, 8))
	assert.Equal(t, 0, shard(42, 1))
}

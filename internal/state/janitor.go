package state

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RunJanitor deletes abandoned records every interval until ctx is done.
func RunJanitor(ctx context.Context, store Store, ttl, interval time.Duration, logger *zap.Logger) {
	if ttl <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := store.Sweep(ctx, now.Add(-ttl))
			if err != nil {
				logger.Error("sweep conversation state", zap.Error(err))
				continue
			}
			if n > 0 {
				logger.Info("expired conversation state removed", zap.Int("count", n))
			}
		}
	}
}

package worker

import (
	"context"
	"time"
)

// SessionSweeper deletes expired sessions
type SessionSweeper interface {
	SweepExpiredSessions(ctx context.Context) (int64, error)
}

// StartSessionSweeper removes expired sessions every interval until the pool stops
func (p *Pool) StartSessionSweeper(sweeper SessionSweeper, interval time.Duration) {
	p.logger.Info("🧹 [Worker] Session sweeper started", "interval", interval)

	p.Every(interval, func(ctx context.Context) {
		// Errors are logged by the sweeper
		sweeper.SweepExpiredSessions(ctx)
	})
}

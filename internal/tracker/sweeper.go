package tracker

import (
	"context"
	"log"
	"time"
)

// Sweeper periodically deactivates stale jobs for every user.
type Sweeper struct {
	Svc      *Service
	Interval time.Duration
}

func (sw *Sweeper) Run(ctx context.Context) {
	if sw.Interval <= 0 {
		return
	}
	// catch up on whatever went stale while the process was down
	sw.sweep(ctx)

	ticker := time.NewTicker(sw.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sw.sweep(ctx)
		}
	}
}

func (sw *Sweeper) sweep(ctx context.Context) {
	n, err := sw.Svc.RefreshAll(ctx)
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("sweeper error: %v\n", err)
		}
		return
	}
	if n > 0 {
		log.Printf("[SWEEP] deactivated %d stale jobs\n", n)
	}
}

package workers

import (
	"context"
	"time"

	"gymdesk_backend/internal/dto"
	"gymdesk_backend/internal/logger"
)

// ExpiryProcessor is the one operation the worker needs from the member
// service.
type ExpiryProcessor interface {
	ProcessExpired() (*dto.ProcessExpiredResponse, error)
}

// MembershipWorker periodically flips Active members with an elapsed plan
// to Expired. The admin endpoint runs the same sweep on demand; this just
// keeps the data honest between requests.
type MembershipWorker struct {
	members  ExpiryProcessor
	interval time.Duration
}

func NewMembershipWorker(members ExpiryProcessor, interval time.Duration) *MembershipWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &MembershipWorker{members: members, interval: interval}
}

// Start launches the sweep loop; it stops when ctx is cancelled.
func (w *MembershipWorker) Start(ctx context.Context) {
	go w.sweepLoop(ctx)
}

func (w *MembershipWorker) sweepLoop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// One sweep at startup so a long downtime doesn't leave stale rows
	// until the first tick.
	w.sweep()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Membership expiry worker stopped")
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *MembershipWorker) sweep() {
	result, err := w.members.ProcessExpired()
	if err != nil {
		logger.Error("Membership expiry sweep failed", "error", err)
		return
	}
	if result.ExpiredCount > 0 {
		logger.Info("Membership expiry sweep", "expired", result.ExpiredCount)
	}
}

package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gymdesk_backend/internal/dto"
)

type countingProcessor struct {
	calls atomic.Int32
}

func (p *countingProcessor) ProcessExpired() (*dto.ProcessExpiredResponse, error) {
	p.calls.Add(1)
	return &dto.ProcessExpiredResponse{}, nil
}

func TestWorkerSweepsOnStartAndTick(t *testing.T) {
	processor := &countingProcessor{}
	worker := NewMembershipWorker(processor, 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	worker.Start(ctx)

	assert.Eventually(t, func() bool {
		return processor.calls.Load() >= 3
	}, 2*time.Second, 10*time.Millisecond, "expected the startup sweep plus ticks")

	cancel()
	time.Sleep(50 * time.Millisecond)
	stopped := processor.calls.Load()
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, stopped, processor.calls.Load(), "no sweeps after cancellation")
}

func TestWorkerDefaultsInterval(t *testing.T) {
	worker := NewMembershipWorker(&countingProcessor{}, 0)
	assert.Equal(t, time.Hour, worker.interval)
}

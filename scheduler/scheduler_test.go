package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"weatherdash.app/config"
)

type countingAlerts struct {
	calls atomic.Int32
}

func (a *countingAlerts) CheckAndNotify(ctx context.Context) error {
	a.calls.Add(1)
	return nil
}

func TestScheduler_RunsCheckOnStartAndStops(t *testing.T) {
	alerts := &countingAlerts{}
	cfg := &config.Config{
		Alerts: config.AlertsConfig{CheckIntervalMinutes: 60},
	}

	s := NewScheduler(cfg, alerts)
	s.Start()

	assert.Eventually(t, func() bool {
		return alerts.calls.Load() == 1
	}, time.Second, 5*time.Millisecond)

	s.Stop()
	after := alerts.calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, alerts.calls.Load())
}

package scheduler

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherdash.app/config"
)

type countingTrigger struct {
	calls int64
}

func (c *countingTrigger) TriggerAsync() {
	atomic.AddInt64(&c.calls, 1)
}

func TestScheduler_DisabledIsNoop(t *testing.T) {
	trigger := &countingTrigger{}
	s := NewScheduler(&config.SchedulerConfig{Enabled: false}, trigger)
	defer s.Stop()

	require.NoError(t, s.Start())
	assert.Zero(t, atomic.LoadInt64(&trigger.calls))
	assert.False(t, s.scheduler.IsRunning())
}

func TestScheduler_StartSchedulesJob(t *testing.T) {
	trigger := &countingTrigger{}
	s := NewScheduler(&config.SchedulerConfig{Enabled: true, IntervalMinutes: 30}, trigger)
	defer s.Stop()

	require.NoError(t, s.Start())
	assert.True(t, s.scheduler.IsRunning())
	assert.Equal(t, 1, len(s.scheduler.Jobs()))
}

func TestScheduler_StopIsIdempotent(t *testing.T) {
	s := NewScheduler(&config.SchedulerConfig{Enabled: true, IntervalMinutes: 30}, &countingTrigger{})
	require.NoError(t, s.Start())

	s.Stop()
	s.Stop()
	assert.False(t, s.scheduler.IsRunning())
}

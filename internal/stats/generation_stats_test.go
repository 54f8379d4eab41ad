package stats

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCollector(now *time.Time) *Collector {
	c := NewCollector(3)
	c.now = func() time.Time { return *now }
	return c
}

func TestCollector_RecordAggregatesByHour(t *testing.T) {
	now := time.Date(2026, 10, 19, 10, 15, 0, 0, time.Local)
	c := newTestCollector(&now)

	c.Record(true, 200*time.Millisecond, "gemini-3-pro-preview")
	c.Record(false, 600*time.Millisecond, "gemini-3-pro-preview")

	hourly := c.GetHourlyStats(1)
	require.Len(t, hourly, 1)
	assert.Equal(t, "2026-10-19 10:00", hourly[0].Hour)
	assert.Equal(t, 2, hourly[0].RequestCount)
	assert.Equal(t, 1, hourly[0].SuccessCount)
	assert.Equal(t, 1, hourly[0].FailureCount)
	assert.Equal(t, int64(800), hourly[0].TotalLatencyMs)
	assert.Equal(t, int64(600), hourly[0].MaxLatencyMs)
	assert.Equal(t, int64(400), hourly[0].AvgLatencyMs())
}

func TestCollector_GetHourlyStatsFillsGaps(t *testing.T) {
	now := time.Date(2026, 10, 19, 10, 0, 0, 0, time.Local)
	c := newTestCollector(&now)
	c.Record(true, time.Second, "m")

	now = now.Add(2 * time.Hour)
	hourly := c.GetHourlyStats(10)

	require.Len(t, hourly, 3, "不超过保留窗口")
	assert.Equal(t, "2026-10-19 10:00", hourly[0].Hour)
	assert.Equal(t, 1, hourly[0].RequestCount)
	assert.Equal(t, "2026-10-19 11:00", hourly[1].Hour)
	assert.Zero(t, hourly[1].RequestCount)
	assert.Equal(t, "2026-10-19 12:00", hourly[2].Hour)
}

func TestCollector_CleanupDropsOldHours(t *testing.T) {
	now := time.Date(2026, 10, 19, 1, 0, 0, 0, time.Local)
	c := newTestCollector(&now)
	c.Record(true, time.Second, "m")

	now = now.Add(5 * time.Hour)
	c.Record(true, time.Second, "m")

	assert.Equal(t, []string{"2026-10-19 06:00"}, c.Hours())
}

func TestCollector_Summary(t *testing.T) {
	now := time.Date(2026, 10, 19, 10, 0, 0, 0, time.Local)
	c := newTestCollector(&now)

	c.Record(true, 100*time.Millisecond, "gemini-3-pro-preview")
	now = now.Add(time.Hour)
	c.Record(true, 300*time.Millisecond, "gemini-2.5-flash")
	c.Record(false, 200*time.Millisecond, "gemini-2.5-flash")

	summary := c.Summary()
	assert.Equal(t, 3, summary.RequestCount)
	assert.Equal(t, 2, summary.SuccessCount)
	assert.Equal(t, 1, summary.FailureCount)
	assert.Equal(t, int64(200), summary.AvgLatencyMs)
	assert.Equal(t, map[string]int{"gemini-3-pro-preview": 1, "gemini-2.5-flash": 2}, summary.Models)
}

func TestCollector_ConcurrentRecord(t *testing.T) {
	c := NewCollector(0)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Record(true, time.Millisecond, "m")
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, c.Summary().RequestCount)
}

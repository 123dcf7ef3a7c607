package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSession_BillableMinutes_RoundsUp(t *testing.T) {
	start := time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)
	session := &Session{StartTime: start, CostPerMinute: 100}

	tests := []struct {
		name    string
		elapsed time.Duration
		want    int
	}{
		{"zero elapsed", 0, 0},
		{"one second", time.Second, 1},
		{"whole minute", time.Minute, 1},
		{"one second over", time.Minute + time.Second, 2},
		{"two whole minutes", 2 * time.Minute, 2},
		{"ninety seconds", 90 * time.Second, 2},
		{"one hour", time.Hour, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, session.BillableMinutes(start.Add(tt.elapsed)))
		})
	}
}

func TestSession_BillableMinutes_ClockBeforeStart(t *testing.T) {
	start := time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)
	session := &Session{StartTime: start}

	assert.Equal(t, 0, session.BillableMinutes(start.Add(-time.Minute)))
}

func TestSession_CostAt_UsesSnapshottedRate(t *testing.T) {
	start := time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)
	session := &Session{StartTime: start, CostPerMinute: 150}

	assert.Equal(t, int64(0), session.CostAt(start))
	assert.Equal(t, int64(150), session.CostAt(start.Add(30*time.Second)))
	assert.Equal(t, int64(9000), session.CostAt(start.Add(time.Hour)))
}

func TestSessionStatus_IsTerminal(t *testing.T) {
	assert.False(t, SessionActive.IsTerminal())
	assert.True(t, SessionCompleted.IsTerminal())
	assert.True(t, SessionCancelled.IsTerminal())
}

func TestSessionStatus_IsValid(t *testing.T) {
	assert.True(t, SessionActive.IsValid())
	assert.False(t, SessionStatus("PAUSED").IsValid())
}

// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// SessionStatus represents the lifecycle state of a gaming session.
// Transitions: ACTIVE -> COMPLETED (normal end) or ACTIVE -> CANCELLED.
// Terminal states have no outgoing transitions.
type SessionStatus string

const (
	SessionActive    SessionStatus = "ACTIVE"
	SessionCompleted SessionStatus = "COMPLETED"
	SessionCancelled SessionStatus = "CANCELLED"
)

// IsValid checks if the SessionStatus is a valid value.
func (s SessionStatus) IsValid() bool {
	switch s {
	case SessionActive, SessionCompleted, SessionCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is allowed.
func (s SessionStatus) IsTerminal() bool {
	return s == SessionCompleted || s == SessionCancelled
}

// Session represents one user's billed occupancy of one room.
// CostPerMinute is snapshotted from the room at start time, so later room
// price edits never change what an in-flight or completed session bills.
// Invariant: exactly one ACTIVE session per user and per room at any time.
type Session struct {
	ID            uuid.UUID     `json:"id"`
	UserID        uuid.UUID     `json:"user_id"`
	RoomID        uuid.UUID     `json:"room_id"`
	Status        SessionStatus `json:"status"`
	StartTime     time.Time     `json:"start_time"`
	EndTime       *time.Time    `json:"end_time,omitempty"`
	Duration      int           `json:"duration,omitempty"` // minutes, set on completion
	CostPerMinute int64         `json:"cost_per_minute"`    // cents, captured at start
	TotalCost     int64         `json:"total_cost,omitempty"`
	IsPaid        bool          `json:"is_paid"`
	Room          *Room         `json:"room,omitempty"` // nil unless explicitly loaded
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// BillableMinutes returns the number of whole minutes billed for the interval
// [StartTime, at]. Partial minutes always round up: a 1-second session bills
// 1 minute, a 61-second session bills 2.
func (s *Session) BillableMinutes(at time.Time) int {
	elapsed := at.Sub(s.StartTime)
	if elapsed <= 0 {
		return 0
	}
	minutes := int(elapsed / time.Minute)
	if elapsed%time.Minute != 0 {
		minutes++
	}

	return minutes
}

// CostAt returns the cost in cents for the session as if it ended at the given
// instant, using the rate captured at start time. For an ACTIVE session this
// is the live cost projection; it is derived, never persisted, and any client
// holding StartTime and CostPerMinute computes the identical value.
func (s *Session) CostAt(at time.Time) int64 {
	return int64(s.BillableMinutes(at)) * s.CostPerMinute
}

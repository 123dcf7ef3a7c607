// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"time"
)

// PlatformStats aggregates headline numbers for the admin dashboard.
type PlatformStats struct {
	TotalUsers      int64 `json:"total_users"`
	ActiveSessions  int64 `json:"active_sessions"`
	TotalRooms      int64 `json:"total_rooms"`
	OccupiedRooms   int64 `json:"occupied_rooms"`
	PendingOrders   int64 `json:"pending_orders"`
	SessionRevenue  int64 `json:"session_revenue"` // cents
	OrderRevenue    int64 `json:"order_revenue"`   // cents
	DepositedTotal  int64 `json:"deposited_total"` // cents
	OrdersToday     int64 `json:"orders_today"`
	SessionsToday   int64 `json:"sessions_today"`
	NewUsersToday   int64 `json:"new_users_today"`
}

// ActivityEntry is one row of the recent-activity feed.
type ActivityEntry struct {
	Kind      string    `json:"kind"` // session_started, session_ended, order_created, deposit
	UserEmail string    `json:"user_email"`
	Detail    string    `json:"detail"`
	Amount    int64     `json:"amount,omitempty"` // cents
	CreatedAt time.Time `json:"created_at"`
}

// StatsRepository defines aggregate queries that span multiple tables.
// Kept separate from the per-entity repositories because these are read-only
// reporting queries with no single owning aggregate.
type StatsRepository interface {
	// PlatformStats computes the dashboard counters as of now.
	PlatformStats(ctx context.Context, now time.Time) (*PlatformStats, error)

	// RecentActivity retrieves the newest activity entries across sessions,
	// orders, and deposits.
	RecentActivity(ctx context.Context, limit int) ([]*ActivityEntry, error)
}

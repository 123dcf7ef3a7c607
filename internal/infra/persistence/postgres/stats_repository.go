package postgres

import (
	"context"
	"time"

	"playden/internal/domain/entity"
	"playden/internal/domain/repository"
	"playden/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// statsRepository implements the repository.StatsRepository interface with
// read-only aggregate queries spanning multiple tables.
type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository is the constructor for statsRepository.
func NewStatsRepository(db *gorm.DB) repository.StatsRepository {
	return &statsRepository{
		db: db,
	}
}

// PlatformStats computes the dashboard counters as of now.
func (repo *statsRepository) PlatformStats(ctx context.Context, now time.Time) (*repository.PlatformStats, error) {
	stats := &repository.PlatformStats{}
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	db := repo.db.WithContext(ctx)

	if err := db.Model(&model.UserModel{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count users")
	}

	if err := db.Model(&model.SessionModel{}).
		Where("status = ?", string(entity.SessionActive)).
		Count(&stats.ActiveSessions).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count active sessions")
	}

	if err := db.Model(&model.RoomModel{}).Count(&stats.TotalRooms).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count rooms")
	}

	if err := db.Model(&model.RoomModel{}).
		Where("status = ?", string(entity.RoomOccupied)).
		Count(&stats.OccupiedRooms).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count occupied rooms")
	}

	if err := db.Model(&model.OrderModel{}).
		Where("status = ?", string(entity.OrderPending)).
		Count(&stats.PendingOrders).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count pending orders")
	}

	// Revenue sums: payments are stored as negative amounts, deposits positive.
	if err := db.Model(&model.TransactionModel{}).
		Where("type = ?", string(entity.TransactionSessionPayment)).
		Select("COALESCE(SUM(-amount), 0)").
		Scan(&stats.SessionRevenue).Error; err != nil {
		return nil, errors.Wrap(err, "failed to sum session revenue")
	}

	if err := db.Model(&model.TransactionModel{}).
		Where("type = ?", string(entity.TransactionOrderPayment)).
		Select("COALESCE(SUM(-amount), 0)").
		Scan(&stats.OrderRevenue).Error; err != nil {
		return nil, errors.Wrap(err, "failed to sum order revenue")
	}

	if err := db.Model(&model.TransactionModel{}).
		Where("type = ?", string(entity.TransactionDeposit)).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.DepositedTotal).Error; err != nil {
		return nil, errors.Wrap(err, "failed to sum deposits")
	}

	if err := db.Model(&model.OrderModel{}).
		Where("created_at >= ?", startOfDay).
		Count(&stats.OrdersToday).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count today's orders")
	}

	if err := db.Model(&model.SessionModel{}).
		Where("start_time >= ?", startOfDay).
		Count(&stats.SessionsToday).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count today's sessions")
	}

	if err := db.Model(&model.UserModel{}).
		Where("created_at >= ?", startOfDay).
		Count(&stats.NewUsersToday).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count today's new users")
	}

	return stats, nil
}

// RecentActivity retrieves the newest activity entries across sessions,
// orders, and deposits with one UNION query.
func (repo *statsRepository) RecentActivity(ctx context.Context, limit int) ([]*repository.ActivityEntry, error) {
	var entries []*repository.ActivityEntry

	query := `
		SELECT kind, user_email, detail, amount, created_at FROM (
			SELECT 'session_started' AS kind, u.email AS user_email,
			       'Room ' || r.room_number AS detail, 0::bigint AS amount,
			       s.start_time AS created_at
			FROM sessions s
			JOIN users u ON u.id = s.user_id
			JOIN rooms r ON r.id = s.room_id
			UNION ALL
			SELECT 'session_ended', u.email,
			       'Room ' || r.room_number || ' (' || s.duration || ' min)', s.total_cost,
			       s.end_time
			FROM sessions s
			JOIN users u ON u.id = s.user_id
			JOIN rooms r ON r.id = s.room_id
			WHERE s.end_time IS NOT NULL
			UNION ALL
			SELECT 'order_created', u.email,
			       'Order #' || LEFT(o.id::text, 8), o.total_amount,
			       o.created_at
			FROM orders o
			JOIN users u ON u.id = o.user_id
			UNION ALL
			SELECT 'deposit', u.email, t.description, t.amount, t.created_at
			FROM transactions t
			JOIN wallets w ON w.id = t.wallet_id
			JOIN users u ON u.id = w.user_id
			WHERE t.type = 'DEPOSIT'
		) activity
		ORDER BY created_at DESC
		LIMIT ?
	`

	if err := repo.db.WithContext(ctx).
		Raw(query, limit).
		Scan(&entries).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load recent activity")
	}

	return entries, nil
}

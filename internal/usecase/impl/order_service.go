package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	deliverycontext "playden/internal/delivery/context"
	"playden/internal/domain/entity"
	domainerrors "playden/internal/domain/errors"
	"playden/internal/domain/repository"
	"playden/internal/domain/service"
	"playden/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// staffOrderTopic is the push notification topic the kitchen staff subscribes to.
const staffOrderTopic = "staff-orders"

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager    repository.TransactionManager
	orderRepo    repository.OrderRepository
	publisher    service.EventPublisher
	notification service.NotificationService
	logger       *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	OrderRepo    repository.OrderRepository
	Publisher    service.EventPublisher
	Notification service.NotificationService
	Logger       *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager:    params.TxManager,
		orderRepo:    params.OrderRepo,
		publisher:    params.Publisher,
		notification: params.Notification,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateOrder places an order. Availability check, price snapshotting, wallet
// debit, and order insert all share one transaction, so a paid order always
// exists with its ledger entry or not at all.
func (srv *orderService) CreateOrder(ctx context.Context, input usecase.CreateOrderInput) (*entity.Order, error) {
	if len(input.Items) == 0 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "order has no items")
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, errors.Wrap(domainerrors.ErrValidationFailed, "item quantity must be positive")
		}
	}

	srv.log(ctx).Info("Creating order", slog.Any("userID", input.UserID), slog.Int("items", len(input.Items)))

	var order *entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		menuRepo := repoFactory.NewMenuRepository()
		orderRepo := repoFactory.NewOrderRepository()

		if input.RoomID != nil {
			roomRepo := repoFactory.NewRoomRepository()
			if _, findErr := roomRepo.FindByID(ctx, *input.RoomID); findErr != nil {
				if errors.Is(findErr, repository.ErrRoomNotFound) {
					return errors.Wrap(domainerrors.ErrRoomNotFound, "delivery room not found")
				}

				return errors.Wrap(findErr, "failed to load delivery room")
			}
		}

		orderItems, total, buildErr := srv.buildOrderItems(ctx, menuRepo, input.Items)
		if buildErr != nil {
			return buildErr
		}

		orderID := uuid.New()
		ledgerTx, debitErr := debitWallet(
			ctx, repoFactory, input.UserID, total,
			entity.TransactionOrderPayment,
			fmt.Sprintf("Order #%s", orderID.String()[:8]),
		)
		if debitErr != nil {
			return debitErr
		}

		for _, item := range orderItems {
			item.OrderID = orderID
		}

		order = &entity.Order{
			ID:          orderID,
			UserID:      input.UserID,
			RoomID:      input.RoomID,
			Status:      entity.OrderPending,
			TotalAmount: total,
			Notes:       input.Notes,
			IsPaid:      true,
			Items:       orderItems,
		}

		if createErr := orderRepo.Create(ctx, order); createErr != nil {
			return errors.Wrap(createErr, "failed to create order")
		}

		srv.log(ctx).Debug("Debited wallet for order",
			slog.Any("orderID", orderID),
			slog.Int64("total", total),
			slog.Int64("balance", ledgerTx.BalanceAfter))

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Failed to create order", slog.Any("userID", input.UserID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute order creation transaction")
	}

	srv.log(ctx).Info("Order created", slog.Any("orderID", order.ID), slog.Int64("total", order.TotalAmount))

	srv.emit(ctx, service.EventOrderCreated, input.UserID, map[string]any{
		"order_id": order.ID.String(),
		"total":    order.TotalAmount,
	})
	srv.notifyStaff(ctx, order)

	return order, nil
}

// GetOrder retrieves an order. Customers may only read their own orders.
func (srv *orderService) GetOrder(ctx context.Context, requesterID, orderID uuid.UUID, isAdmin bool) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, errors.Wrap(domainerrors.ErrOrderNotFound, "order not found")
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	if !isAdmin && order.UserID != requesterID {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "order belongs to another user")
	}

	return order, nil
}

// GetUserOrders retrieves a page of the user's orders, newest first.
func (srv *orderService) GetUserOrders(ctx context.Context, userID uuid.UUID, limit, offset int) (*usecase.OrderPage, error) {
	orders, err := srv.orderRepo.FindByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user orders")
	}

	total, err := srv.orderRepo.CountByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count user orders")
	}

	return &usecase.OrderPage{Orders: orders, Total: total}, nil
}

// ListOrders retrieves a page of all orders for the kitchen queue.
func (srv *orderService) ListOrders(ctx context.Context, status *entity.OrderStatus, limit, offset int) (*usecase.OrderPage, error) {
	orders, err := srv.orderRepo.List(ctx, status, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	total, err := srv.orderRepo.Count(ctx, status)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count orders")
	}

	return &usecase.OrderPage{Orders: orders, Total: total}, nil
}

// UpdateOrderStatus moves an order along its fulfilment flow. The order row is
// locked for the check-then-set, so concurrent updates serialize. Cancellation
// does not refund the wallet.
func (srv *orderService) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status entity.OrderStatus) (*entity.Order, error) {
	if !status.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown order status")
	}

	var order *entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.NewOrderRepository()

		var findErr error
		order, findErr = orderRepo.FindByIDForUpdate(ctx, orderID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrOrderNotFound) {
				return errors.Wrap(domainerrors.ErrOrderNotFound, "order not found")
			}

			return errors.Wrap(findErr, "failed to lock order for status update")
		}

		if !order.Status.CanTransitionTo(status) {
			return errors.Wrapf(domainerrors.ErrInvalidOrderTransition, "cannot move order from %s to %s", order.Status, status)
		}

		if updateErr := orderRepo.UpdateStatus(ctx, orderID, status); updateErr != nil {
			return errors.Wrap(updateErr, "failed to update order status")
		}
		order.Status = status

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Failed to update order status", slog.Any("orderID", orderID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute order status transaction")
	}

	srv.log(ctx).Info("Order status updated", slog.Any("orderID", orderID), slog.String("status", string(order.Status)))

	srv.emit(ctx, service.EventOrderStatusUpdate, order.UserID, map[string]any{
		"order_id": order.ID.String(),
		"status":   string(order.Status),
	})
	srv.notifyCustomer(ctx, order)

	return order, nil
}

// buildOrderItems validates the requested lines against the menu and snapshots
// each price. All items must exist and be available.
func (srv *orderService) buildOrderItems(
	ctx context.Context,
	menuRepo repository.MenuRepository,
	inputs []usecase.OrderItemInput,
) ([]*entity.OrderItem, int64, error) {
	ids := make([]uuid.UUID, 0, len(inputs))
	for _, item := range inputs {
		ids = append(ids, item.MenuItemID)
	}

	menuItems, err := menuRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to load menu items for order")
	}

	byID := make(map[uuid.UUID]*entity.MenuItem, len(menuItems))
	for _, item := range menuItems {
		byID[item.ID] = item
	}

	orderItems := make([]*entity.OrderItem, 0, len(inputs))
	var total int64
	for _, input := range inputs {
		menuItem, ok := byID[input.MenuItemID]
		if !ok {
			return nil, 0, errors.Wrapf(domainerrors.ErrMenuItemNotFound, "menu item %s not found", input.MenuItemID)
		}
		if !menuItem.IsAvailable {
			return nil, 0, errors.Wrapf(domainerrors.ErrItemUnavailable, "menu item %s is unavailable", menuItem.Name)
		}

		orderItems = append(orderItems, &entity.OrderItem{
			ID:           uuid.New(),
			MenuItemID:   menuItem.ID,
			Quantity:     input.Quantity,
			PriceAtOrder: menuItem.Price,
			MenuItem:     menuItem,
		})
		total += menuItem.Price * int64(input.Quantity)
	}

	return orderItems, total, nil
}

// emit publishes a broadcast event after commit, logging failures only.
func (srv *orderService) emit(ctx context.Context, name string, userID uuid.UUID, payload map[string]any) {
	event := &service.BroadcastEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		Event:      name,
		UserID:     userID,
		Payload:    payload,
		OccurredAt: time.Now(),
	}

	if err := srv.publisher.PublishBroadcastEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish event", slog.String("event", name), slog.Any("error", err))
	}
}

func (srv *orderService) notifyStaff(ctx context.Context, order *entity.Order) {
	err := srv.notification.SendToTopic(ctx, staffOrderTopic,
		"New order",
		fmt.Sprintf("Order #%s, %d item(s)", order.ID.String()[:8], len(order.Items)),
		map[string]string{"order_id": order.ID.String()},
	)
	if err != nil {
		srv.log(ctx).Warn("Failed to notify staff about order", slog.Any("orderID", order.ID), slog.Any("error", err))
	}
}

func (srv *orderService) notifyCustomer(ctx context.Context, order *entity.Order) {
	err := srv.notification.SendToUser(ctx, order.UserID.String(),
		"Order update",
		fmt.Sprintf("Order #%s is now %s", order.ID.String()[:8], order.Status),
		map[string]string{"order_id": order.ID.String(), "status": string(order.Status)},
	)
	if err != nil {
		srv.log(ctx).Warn("Failed to notify customer about order", slog.Any("orderID", order.ID), slog.Any("error", err))
	}
}

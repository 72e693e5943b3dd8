package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/tokoku/internal/events"
	"github.com/Skotchmaster/tokoku/internal/models"
	"github.com/Skotchmaster/tokoku/internal/repo"
	"github.com/Skotchmaster/tokoku/internal/transport"
	"github.com/Skotchmaster/tokoku/pkg/logging"
)

type OrderService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

// Checkout stores the order and its items atomically. Each item keeps the
// name and price it was bought with.
func (s *OrderService) Checkout(ctx context.Context, req transport.CheckoutRequest) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.checkout")

	if req.UserID == 0 || len(req.SelectedItems) == 0 {
		return nil, fmt.Errorf("%w: invalid checkout data", ErrValidation)
	}
	address := strings.TrimSpace(req.Address)
	if req.TotalBayar <= 0 || address == "" {
		return nil, fmt.Errorf("%w: total payment and address are required", ErrValidation)
	}

	items := make([]models.OrderItem, 0, len(req.SelectedItems))
	for i, it := range req.SelectedItems {
		if strings.TrimSpace(it.ProductName) == "" {
			return nil, fmt.Errorf("%w: item %d: product_name required", ErrValidation, i)
		}
		if it.TotalPrice < 0 {
			return nil, fmt.Errorf("%w: item %d: total_price must be >= 0", ErrValidation, i)
		}
		qty, err := quantityOrDefault(it.Quantity)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		items = append(items, models.OrderItem{
			ProductName:  strings.TrimSpace(it.ProductName),
			ProductPrice: it.TotalPrice,
			Quantity:     qty,
		})
	}

	order := &models.Order{
		UserID:  req.UserID,
		Total:   req.TotalBayar,
		Address: address,
		Status:  models.OrderStatusPacked,
	}
	if err := s.Repo.CreateOrder(ctx, order, items); err != nil {
		return nil, err
	}

	publish(ctx, l, s.Events, events.TopicOrder, strconv.FormatUint(uint64(order.ID), 10), "order_created", map[string]any{
		"order_id": order.ID,
		"user_id":  order.UserID,
		"total":    order.Total,
		"items":    len(items),
	})
	return order, nil
}

// Notifications returns one entry per order of the user, newest first.
func (s *OrderService) Notifications(ctx context.Context, userID uint) ([]models.Order, error) {
	if userID == 0 {
		return nil, fmt.Errorf("%w: invalid user id", ErrValidation)
	}
	return s.Repo.OrdersWithItems(ctx, userID)
}

// AdvanceStatus moves the order one step along packed, shipped, delivered.
// A non-empty target must name that next step.
func (s *OrderService) AdvanceStatus(ctx context.Context, orderID uint, target string) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.advance_status")

	if orderID == 0 {
		return nil, fmt.Errorf("%w: invalid order id", ErrValidation)
	}

	order, err := s.Repo.OrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %d: %w", orderID, ErrNotFound)
		}
		return nil, err
	}

	next, ok := order.Status.Next()
	if !ok {
		return nil, fmt.Errorf("%w: order is already %s", ErrValidation, order.Status)
	}
	if target != "" {
		want := models.OrderStatus(strings.ToLower(strings.TrimSpace(target)))
		if !want.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, target)
		}
		if want != next {
			return nil, fmt.Errorf("%w: cannot move from %s to %s", ErrValidation, order.Status, want)
		}
	}

	if err := s.Repo.AdvanceOrderStatus(ctx, orderID, order.Status, next); err != nil {
		if errors.Is(err, repo.ErrStatusChanged) {
			return nil, fmt.Errorf("%w: %w", ErrConflict, err)
		}
		return nil, err
	}
	prev := order.Status
	order.Status = next

	publish(ctx, l, s.Events, events.TopicOrder, strconv.FormatUint(uint64(order.ID), 10), "order_status_changed", map[string]any{
		"order_id": order.ID,
		"user_id":  order.UserID,
		"from":     prev,
		"to":       next,
	})
	return order, nil
}

package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Skotchmaster/tokoku/internal/events"
	"github.com/Skotchmaster/tokoku/internal/models"
	"github.com/Skotchmaster/tokoku/internal/repo"
	"github.com/Skotchmaster/tokoku/internal/transport"
	"github.com/Skotchmaster/tokoku/pkg/logging"
)

type CartService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

func (s *CartService) GetCart(ctx context.Context, userID uint) ([]models.CartView, error) {
	if userID == 0 {
		return nil, fmt.Errorf("%w: invalid user id", ErrValidation)
	}
	return s.Repo.CartByUser(ctx, userID)
}

// AddToCart adds jumlah (default 1) of the product to the user's cart line,
// creating the line if the user has none for that product.
func (s *CartService) AddToCart(ctx context.Context, req transport.AddToCartRequest) (*models.CartLine, error) {
	l := logging.FromContext(ctx).With("svc", "cart.add")

	if req.UserID == 0 || req.ProductID == 0 {
		return nil, fmt.Errorf("%w: user id and product id are required", ErrValidation)
	}
	qty, err := quantityOrDefault(req.Quantity)
	if err != nil {
		return nil, err
	}

	ok, err := s.Repo.ProductExists(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("product %d: %w", req.ProductID, ErrNotFound)
	}

	line := &models.CartLine{UserID: req.UserID, ProductID: req.ProductID, Quantity: qty}
	if err := s.Repo.AddToCart(ctx, line); err != nil {
		return nil, err
	}

	publish(ctx, l, s.Events, events.TopicCart, strconv.FormatUint(uint64(req.UserID), 10), "cart_item_added", map[string]any{
		"user_id":    line.UserID,
		"product_id": line.ProductID,
		"added":      qty,
		"quantity":   line.Quantity,
	})
	return line, nil
}

// quantityOrDefault maps an absent or zero quantity to 1 and rejects negatives.
func quantityOrDefault(q *int) (uint, error) {
	if q == nil || *q == 0 {
		return 1, nil
	}
	if *q < 0 {
		return 0, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
	}
	return uint(*q), nil
}

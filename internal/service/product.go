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

// ProductIndex is a full-text index of product views.
type ProductIndex interface {
	IndexProduct(ctx context.Context, p models.ProductView) error
	Search(ctx context.Context, query string, from, size int) (int64, []models.ProductView, error)
}

type ProductService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
	// Index is optional; search falls back to SQL when it is nil.
	Index ProductIndex
}

type SearchResult struct {
	Total int64
	Items []models.ProductView
}

// ProductsByOwner lists the products of an existing user. An unknown user is
// ErrNotFound; a user without products yields an empty slice.
func (s *ProductService) ProductsByOwner(ctx context.Context, userID uint) ([]models.ProductView, error) {
	if userID == 0 {
		return nil, fmt.Errorf("%w: invalid user_id", ErrValidation)
	}
	ok, err := s.Repo.UserExists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}
	return s.Repo.ProductsByUser(ctx, userID)
}

func (s *ProductService) ProductsByUser(ctx context.Context, userID uint) ([]models.ProductView, error) {
	return s.Repo.ProductsByUser(ctx, userID)
}

func (s *ProductService) GetProduct(ctx context.Context, id uint) (*models.ProductView, error) {
	view, err := s.Repo.ProductView(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return view, err
}

func (s *ProductService) ListProducts(ctx context.Context, category string) ([]models.ProductView, error) {
	return s.Repo.ListProducts(ctx, strings.TrimSpace(category))
}

func (s *ProductService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (uint, error) {
	l := logging.FromContext(ctx).With("svc", "product.create")

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.ImageURL) == "" ||
		strings.TrimSpace(req.Category) == "" || req.UserID == 0 {
		return 0, fmt.Errorf("%w: all fields are required", ErrValidation)
	}
	if req.Price <= 0 {
		return 0, fmt.Errorf("%w: price must be > 0", ErrValidation)
	}

	ok, err := s.Repo.UserExists(ctx, req.UserID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("owner %d: %w", req.UserID, ErrNotFound)
	}

	prod := &models.Product{
		Name:        strings.TrimSpace(req.Name),
		Price:       req.Price,
		ImageURL:    strings.TrimSpace(req.ImageURL),
		Description: req.Description,
		Category:    strings.TrimSpace(req.Category),
		UserID:      req.UserID,
	}
	if err := s.Repo.CreateProduct(ctx, prod); err != nil {
		return 0, err
	}

	s.reindex(ctx, prod.ID)
	publish(ctx, l, s.Events, events.TopicProduct, strconv.FormatUint(uint64(prod.ID), 10), "product_created", map[string]any{
		"product_id": prod.ID,
		"user_id":    prod.UserID,
		"name":       prod.Name,
		"price":      prod.Price,
	})
	return prod.ID, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, req transport.UpdateProductRequest) error {
	l := logging.FromContext(ctx).With("svc", "product.update")

	if req.ID == 0 || strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.ImageURL) == "" ||
		strings.TrimSpace(req.Description) == "" {
		return fmt.Errorf("%w: all fields are required", ErrValidation)
	}
	if req.Price <= 0 {
		return fmt.Errorf("%w: price must be > 0", ErrValidation)
	}

	err := s.Repo.UpdateProduct(ctx, &models.Product{
		ID:          req.ID,
		Name:        strings.TrimSpace(req.Name),
		Price:       req.Price,
		ImageURL:    strings.TrimSpace(req.ImageURL),
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("product %d: %w", req.ID, ErrNotFound)
		}
		return err
	}

	s.reindex(ctx, req.ID)
	publish(ctx, l, s.Events, events.TopicProduct, strconv.FormatUint(uint64(req.ID), 10), "product_updated", map[string]any{
		"product_id": req.ID,
		"name":       req.Name,
		"price":      req.Price,
	})
	return nil
}

// Search queries the index when one is configured, otherwise the database.
func (s *ProductService) Search(ctx context.Context, q string, offset, limit int) (*SearchResult, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, fmt.Errorf("%w: query is required", ErrValidation)
	}

	var (
		total int64
		items []models.ProductView
		err   error
	)
	if s.Index != nil {
		total, items, err = s.Index.Search(ctx, q, offset, limit)
	} else {
		total, items, err = s.Repo.SearchProducts(ctx, q, offset, limit)
	}
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.ProductView{}
	}
	return &SearchResult{Total: total, Items: items}, nil
}

func (s *ProductService) reindex(ctx context.Context, id uint) {
	if s.Index == nil {
		return
	}
	l := logging.FromContext(ctx).With("svc", "product.reindex", "product_id", id)

	view, err := s.Repo.ProductView(ctx, id)
	if err != nil {
		l.Warn("reindex_failed", "reason", "cannot load product", "error", err)
		return
	}
	if err := s.Index.IndexProduct(ctx, *view); err != nil {
		l.Warn("reindex_failed", "reason", "index rejected product", "error", err)
	}
}

package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/tokoku/internal/models"
)

const productViewColumns = `products.id AS product_id,
	products.name AS product_name,
	products.price AS price,
	products.image_url AS image_url,
	products.description AS description,
	products.category AS category,
	users.id AS user_id,
	users.name AS user_name,
	users.profile_picture AS user_profile_picture`

func (r *GormRepo) productViews(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).
		Table("products").
		Select(productViewColumns).
		Joins("JOIN users ON users.id = products.user_id")
}

func (r *GormRepo) ProductsByUser(ctx context.Context, userID uint) ([]models.ProductView, error) {
	items := []models.ProductView{}
	if err := r.productViews(ctx).Where("products.user_id = ?", userID).Order("products.id ASC").Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListProducts returns every product; a non-empty category is an exact-match filter.
func (r *GormRepo) ListProducts(ctx context.Context, category string) ([]models.ProductView, error) {
	q := r.productViews(ctx)
	if category != "" {
		q = q.Where("products.category = ?", category)
	}

	items := []models.ProductView{}
	if err := q.Order("products.id ASC").Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) ProductView(ctx context.Context, id uint) (*models.ProductView, error) {
	var items []models.ProductView
	if err := r.productViews(ctx).Where("products.id = ?", id).Limit(1).Scan(&items).Error; err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &items[0], nil
}

func (r *GormRepo) ProductExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Create(prod).Error
}

// UpdateProduct overwrites the mutable fields of an existing product.
func (r *GormRepo) UpdateProduct(ctx context.Context, prod *models.Product) error {
	res := r.DB.WithContext(ctx).Model(&models.Product{}).Where("id = ?", prod.ID).Updates(map[string]any{
		"name":        prod.Name,
		"price":       prod.Price,
		"image_url":   prod.ImageURL,
		"description": prod.Description,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SearchProducts is the SQL fallback used when no search index is configured.
func (r *GormRepo) SearchProducts(ctx context.Context, q string, offset, limit int) (int64, []models.ProductView, error) {
	pattern := "%" + strings.ToLower(q) + "%"
	where := "LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ?"

	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Where(where, pattern, pattern).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := []models.ProductView{}
	if err := r.productViews(ctx).
		Where(where, pattern, pattern).
		Order("products.id ASC").
		Offset(offset).
		Limit(limit).
		Scan(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

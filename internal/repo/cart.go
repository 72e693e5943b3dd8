package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/tokoku/internal/models"
)

// AddToCart inserts the line or, when the (user, product) pair already has
// one, adds line.Quantity to it. line is refreshed with the stored row.
func (r *GormRepo) AddToCart(ctx context.Context, line *models.CartLine) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		upsert := clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity": gorm.Expr("keranjang.quantity + excluded.quantity"),
			}),
		}
		if err := tx.Clauses(upsert).Create(line).Error; err != nil {
			return err
		}

		var stored models.CartLine
		if err := tx.Where("user_id = ? AND product_id = ?", line.UserID, line.ProductID).First(&stored).Error; err != nil {
			return err
		}
		*line = stored
		return nil
	})
}

func (r *GormRepo) CartByUser(ctx context.Context, userID uint) ([]models.CartView, error) {
	items := []models.CartView{}
	err := r.DB.WithContext(ctx).
		Table("keranjang").
		Select(`keranjang.id AS cart_id,
			products.id AS product_id,
			products.name AS product_name,
			products.price AS price,
			products.image_url AS image_url,
			keranjang.quantity AS quantity,
			keranjang.added_at AS added_at,
			(keranjang.quantity * products.price) AS total_price`).
		Joins("JOIN products ON products.id = keranjang.product_id").
		Where("keranjang.user_id = ?", userID).
		Order("keranjang.id ASC").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/tokoku/internal/models"
)

var (
	ErrUserAlreadyExist = errors.New("user already exist")
	ErrStatusChanged    = errors.New("order status changed concurrently")
)

type GormRepo struct {
	DB *gorm.DB
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(models.All()...)
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key value")
}

package models

import (
	"time"
)

type User struct {
	ID             uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string  `gorm:"not null"                 json:"nama"`
	Email          string  `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash   string  `gorm:"not null"                 json:"-"`
	ProfilePicture *string `                                json:"profile_picture"`
	Address        *string `                                json:"alamat"`
}

type Product struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"not null"                 json:"name"`
	Price       float64 `gorm:"not null;check:price >= 0" json:"price"`
	ImageURL    string  `gorm:"not null"                 json:"image_url"`
	Description string  `                                json:"description"`
	Category    string  `gorm:"index;not null"           json:"category"`
	UserID      uint    `gorm:"index;not null"           json:"user_id"`
}

// CartLine is one product in a user's cart. (user_id, product_id) is unique.
type CartLine struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"                    json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_cart_user_product;not null" json:"user_id"`
	ProductID uint      `gorm:"uniqueIndex:idx_cart_user_product;not null" json:"product_id"`
	Quantity  uint      `gorm:"not null;default:1;check:quantity > 0"      json:"quantity"`
	AddedAt   time.Time `gorm:"autoCreateTime"                              json:"added_at"`
}

func (CartLine) TableName() string {
	return "keranjang"
}

type OrderStatus string

const (
	OrderStatusPacked    OrderStatus = "packed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
)

// Next returns the status that follows s, or false when s is terminal or unknown.
func (s OrderStatus) Next() (OrderStatus, bool) {
	switch s {
	case OrderStatusPacked:
		return OrderStatusShipped, true
	case OrderStatusShipped:
		return OrderStatusDelivered, true
	}
	return "", false
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPacked, OrderStatusShipped, OrderStatusDelivered:
		return true
	}
	return false
}

type Order struct {
	ID        uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint        `gorm:"index;not null"           json:"user_id"`
	Total     float64     `gorm:"not null"                 json:"total_bayar"`
	Address   string      `gorm:"not null"                 json:"address"`
	Status    OrderStatus `gorm:"not null;default:'packed'" json:"status"`
	CreatedAt time.Time   `gorm:"autoCreateTime;index"     json:"created_at"`
	Items     []OrderItem `gorm:"foreignKey:OrderID"       json:"items"`
}

// OrderItem snapshots name and price at purchase time; it does not reference Product.
type OrderItem struct {
	ID           uint    `gorm:"primaryKey;autoIncrement"            json:"-"`
	OrderID      uint    `gorm:"index;not null"                      json:"-"`
	ProductName  string  `gorm:"not null"                            json:"product_name"`
	ProductPrice float64 `gorm:"not null"                            json:"product_price"`
	Quantity     uint    `gorm:"not null;default:1;check:quantity > 0" json:"quantity"`
}

// ProductView is the canonical product row joined with its owner.
type ProductView struct {
	ProductID          uint    `json:"product_id"`
	ProductName        string  `json:"product_name"`
	Price              float64 `json:"price"`
	ImageURL           string  `json:"image_url"`
	Description        string  `json:"description"`
	Category           string  `json:"category"`
	UserID             uint    `json:"user_id"`
	UserName           string  `json:"user_name"`
	UserProfilePicture *string `json:"user_profile_picture"`
}

// CartView is a cart line joined with its product; TotalPrice = Quantity * Price.
type CartView struct {
	CartID      uint      `json:"cart_id"`
	ProductID   uint      `json:"product_id"`
	ProductName string    `json:"product_name"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"image_url"`
	Quantity    uint      `json:"quantity"`
	AddedAt     time.Time `json:"added_at"`
	TotalPrice  float64   `json:"total_price"`
}

func All() []any {
	return []any{&User{}, &Product{}, &CartLine{}, &Order{}, &OrderItem{}}
}

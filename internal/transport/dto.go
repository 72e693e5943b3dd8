package transport

import "time"

type RegisterRequest struct {
	Name     string `json:"nama"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserData struct {
	ID             uint    `json:"id"`
	Name           string  `json:"nama"`
	ProfilePicture *string `json:"profile_picture"`
}

type LoginResponse struct {
	Success  bool     `json:"success"`
	Message  string   `json:"message"`
	UserData UserData `json:"userData"`
}

type UpdateProfilePictureRequest struct {
	ID                uint   `json:"id"`
	ProfilePictureURL string `json:"profile_picture_url"`
}

type UpdateAddressRequest struct {
	ID      uint   `json:"id"`
	Address string `json:"alamat"`
}

type CreateProductRequest struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
	Description string  `json:"deskripsi"`
	UserID      uint    `json:"user_id"`
	Category    string  `json:"kategori"`
}

type UpdateProductRequest struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
	Description string  `json:"deskripsi"`
}

// AddToCartRequest.Quantity is a pointer so an absent "jumlah" can default to 1.
type AddToCartRequest struct {
	UserID    uint `json:"user_id"`
	ProductID uint `json:"product_id"`
	Quantity  *int `json:"jumlah"`
}

type CheckoutItem struct {
	ProductName string  `json:"product_name"`
	TotalPrice  float64 `json:"total_price"`
	Quantity    *int    `json:"quantity"`
}

type CheckoutRequest struct {
	UserID        uint           `json:"userId"`
	SelectedItems []CheckoutItem `json:"selectedItems"`
	TotalBayar    float64        `json:"totalBayar"`
	Address       string         `json:"address"`
}

type AdvanceStatusRequest struct {
	Status string `json:"status"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type UserProfile struct {
	ID             uint    `json:"id"`
	Name           string  `json:"nama"`
	ProfilePicture *string `json:"profile_picture"`
	Address        *string `json:"alamat"`
}

type NotificationItem struct {
	ProductName  string  `json:"product_name"`
	ProductPrice float64 `json:"product_price"`
	Quantity     uint    `json:"quantity"`
}

// Notification is one order with its current status.
type Notification struct {
	OrderID    uint               `json:"order_id"`
	TotalBayar float64            `json:"total_bayar"`
	Address    string             `json:"address"`
	Status     string             `json:"status"`
	CreatedAt  time.Time          `json:"created_at"`
	Items      []NotificationItem `json:"items"`
}

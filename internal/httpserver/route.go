package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/tokoku/pkg/db"
	middleware "github.com/Skotchmaster/tokoku/pkg/middleware/auth"
)

type Deps struct {
	DB             *gorm.DB
	UserHandler    *UserHTTP
	ProductHandler *ProductHTTP
	CartHandler    *CartHTTP
	OrderHandler   *OrderHTTP
	JWTSecret      []byte
	// AuthRequired puts RequireAuth in front of every route that writes or
	// reads per-user data.
	AuthRequired bool
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx, d.DB); err != nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "database unavailable")
		}
		return c.NoContent(http.StatusOK)
	})

	var guard []echo.MiddlewareFunc
	if d.AuthRequired {
		guard = append(guard, middleware.NewSimpleAuth(d.JWTSecret).RequireAuth)
	}

	e.POST("/register", d.UserHandler.Register)
	e.POST("/login", d.UserHandler.Login)
	e.GET("/get-user/:id", d.UserHandler.GetUser)
	e.POST("/update-profile-picture", d.UserHandler.UpdateProfilePicture, guard...)
	e.POST("/update-address", d.UserHandler.UpdateAddress, guard...)

	e.GET("/produk", d.ProductHandler.ListProducts)
	e.GET("/produk/search", d.ProductHandler.SearchProducts)
	e.GET("/produk-by-user/:user_id", d.ProductHandler.ProductsByOwner)
	e.GET("/products/:userId", d.ProductHandler.ProductsByUser)
	e.POST("/add-produk", d.ProductHandler.CreateProduct, guard...)
	e.PUT("/update-produk", d.ProductHandler.UpdateProduct, guard...)

	keranjang := e.Group("/keranjang", guard...)
	keranjang.POST("/tambah", d.CartHandler.AddToCart)
	keranjang.GET("/:user_id", d.CartHandler.GetCart)

	e.POST("/checkout", d.OrderHandler.Checkout, guard...)
	e.GET("/notifications/:userId", d.OrderHandler.Notifications, guard...)
	e.POST("/orders/:id/status", d.OrderHandler.AdvanceStatus, guard...)
}

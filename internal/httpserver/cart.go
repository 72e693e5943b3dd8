package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/tokoku/internal/service"
	"github.com/Skotchmaster/tokoku/internal/transport"
	"github.com/Skotchmaster/tokoku/pkg/logging"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := ensureSelf(c, req.UserID); err != nil {
		l.Warn("add_to_cart_failed", "status", 403, "reason", "foreign user", "user_id", req.UserID)
		return err
	}

	line, err := h.Svc.AddToCart(ctx, req)
	if err != nil {
		return serviceError(l, "add_to_cart_failed", err, "product not found")
	}

	l.Info("add_to_cart_success", "user_id", line.UserID, "product_id", line.ProductID, "quantity", line.Quantity)
	return c.JSON(http.StatusOK, echo.Map{"message": "cart updated", "cart_id": line.ID, "quantity": line.Quantity})
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	userID, ok := parseID(c.Param("user_id"))
	if !ok {
		l.Warn("get_cart_failed", "status", 400, "reason", "invalid user id", "user_id", c.Param("user_id"))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	if err := ensureSelf(c, userID); err != nil {
		l.Warn("get_cart_failed", "status", 403, "reason", "foreign user", "user_id", userID)
		return err
	}

	items, err := h.Svc.GetCart(ctx, userID)
	if err != nil {
		return serviceError(l, "get_cart_failed", err, "")
	}
	return c.JSON(http.StatusOK, items)
}

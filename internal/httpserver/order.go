package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/tokoku/internal/models"
	"github.com/Skotchmaster/tokoku/internal/service"
	"github.com/Skotchmaster/tokoku/internal/transport"
	"github.com/Skotchmaster/tokoku/pkg/logging"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.checkout")

	var req transport.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("checkout_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid checkout data")
	}
	if err := ensureSelf(c, req.UserID); err != nil {
		l.Warn("checkout_failed", "status", 403, "reason", "foreign user", "user_id", req.UserID)
		return err
	}

	order, err := h.Svc.Checkout(ctx, req)
	if err != nil {
		return serviceError(l, "checkout_failed", err, "")
	}

	l.Info("checkout_success", "order_id", order.ID, "items", len(order.Items))
	return c.JSON(http.StatusOK, echo.Map{"message": "order successfully created", "orderId": order.ID})
}

func (h *OrderHTTP) Notifications(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.notifications")

	userID, ok := parseID(c.Param("userId"))
	if !ok {
		l.Warn("notifications_failed", "status", 400, "reason", "invalid userId", "user_id", c.Param("userId"))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid userId")
	}
	if err := ensureSelf(c, userID); err != nil {
		l.Warn("notifications_failed", "status", 403, "reason", "foreign user", "user_id", userID)
		return err
	}

	orders, err := h.Svc.Notifications(ctx, userID)
	if err != nil {
		return serviceError(l, "notifications_failed", err, "")
	}

	out := make([]transport.Notification, 0, len(orders))
	for _, o := range orders {
		out = append(out, toNotification(o))
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHTTP) AdvanceStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.advance_status")

	id, ok := parseID(c.Param("id"))
	if !ok {
		l.Warn("advance_status_failed", "status", 400, "reason", "invalid order id", "id", c.Param("id"))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	var req transport.AdvanceStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("advance_status_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.AdvanceStatus(ctx, id, req.Status)
	if err != nil {
		if errors.Is(err, service.ErrConflict) {
			l.Warn("advance_status_failed", "status", 409, "reason", "status changed concurrently", "error", err)
			return echo.NewHTTPError(http.StatusConflict, "order status changed, retry")
		}
		return serviceError(l, "advance_status_failed", err, "order not found")
	}

	l.Info("advance_status_success", "order_id", order.ID, "order_status", order.Status)
	return c.JSON(http.StatusOK, echo.Map{"order_id": order.ID, "status": order.Status})
}

func toNotification(o models.Order) transport.Notification {
	items := make([]transport.NotificationItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, transport.NotificationItem{
			ProductName:  it.ProductName,
			ProductPrice: it.ProductPrice,
			Quantity:     it.Quantity,
		})
	}
	return transport.Notification{
		OrderID:    o.ID,
		TotalBayar: o.Total,
		Address:    o.Address,
		Status:     string(o.Status),
		CreatedAt:  o.CreatedAt,
		Items:      items,
	}
}

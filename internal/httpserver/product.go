package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/tokoku/internal/service"
	"github.com/Skotchmaster/tokoku/internal/transport"
	"github.com/Skotchmaster/tokoku/internal/util"
	"github.com/Skotchmaster/tokoku/pkg/logging"
	middleware "github.com/Skotchmaster/tokoku/pkg/middleware/auth"
)

type ProductHTTP struct {
	Svc *service.ProductService
}

// ProductsByOwner answers 404 for an unknown user and 200 [] for a user
// without products.
func (h *ProductHTTP) ProductsByOwner(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.by_owner")

	userID, ok := parseID(c.Param("user_id"))
	if !ok {
		l.Warn("products_by_owner_failed", "status", 400, "reason", "invalid user_id", "user_id", c.Param("user_id"))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user_id")
	}

	items, err := h.Svc.ProductsByOwner(ctx, userID)
	if err != nil {
		return serviceError(l, "products_by_owner_failed", err, "user not found")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ProductHTTP) ProductsByUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.by_user")

	userID, ok := parseID(c.Param("userId"))
	if !ok {
		l.Warn("products_by_user_failed", "status", 400, "reason", "invalid userId", "user_id", c.Param("userId"))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid userId")
	}

	items, err := h.Svc.ProductsByUser(ctx, userID)
	if err != nil {
		return serviceError(l, "products_by_user_failed", err, "")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ProductHTTP) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list")

	items, err := h.Svc.ListProducts(ctx, c.QueryParam("kategori"))
	if err != nil {
		return serviceError(l, "list_products_failed", err, "")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ProductHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	res, err := h.Svc.Search(ctx, c.QueryParam("q"), offset, limit)
	if err != nil {
		return serviceError(l, "search_products_failed", err, "")
	}

	if page < 1 {
		page = 1
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data": res.Items,
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       res.Total,
			"total_pages": (res.Total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < res.Total,
		},
	})
}

func (h *ProductHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_create_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := ensureSelf(c, req.UserID); err != nil {
		l.Warn("product_create_failed", "status", 403, "reason", "foreign user", "user_id", req.UserID)
		return err
	}

	id, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		return serviceError(l, "product_create_failed", err, "user not found")
	}

	l.Info("product_create_success", "product_id", id)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "product added", "id": id})
}

func (h *ProductHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update")

	var req transport.UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_update_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if _, authed := middleware.UserIDFromContext(c); authed && req.ID != 0 {
		prod, err := h.Svc.GetProduct(ctx, req.ID)
		if err != nil {
			return serviceError(l, "product_update_failed", err, "product not found")
		}
		if err := ensureSelf(c, prod.UserID); err != nil {
			l.Warn("product_update_failed", "status", 403, "reason", "foreign product", "product_id", req.ID)
			return err
		}
	}

	if err := h.Svc.UpdateProduct(ctx, req); err != nil {
		return serviceError(l, "product_update_failed", err, "product not found")
	}

	l.Info("product_update_success", "product_id", req.ID)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "product updated"})
}

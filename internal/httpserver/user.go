package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/tokoku/internal/service"
	"github.com/Skotchmaster/tokoku/internal/transport"
	"github.com/Skotchmaster/tokoku/pkg/logging"
	"github.com/Skotchmaster/tokoku/pkg/tokens"
)

type UserHTTP struct {
	Svc *service.UserService
}

func (h *UserHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Register(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrConflict) {
			l.Warn("register_failed", "status", 400, "reason", "user already exists", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "user already exists or invalid data")
		}
		return serviceError(l, "register_failed", err, "")
	}

	l.Info("register_success", "user_id", user.ID)
	return c.JSON(http.StatusOK, echo.Map{"message": "registration successful", "id": user.ID})
}

func (h *UserHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Login(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			l.Warn("login_failed", "status", 400, "reason", "invalid email or password")
			return echo.NewHTTPError(http.StatusBadRequest, "invalid email or password")
		}
		return serviceError(l, "login_failed", err, "")
	}

	if res.AccessToken != "" {
		c.SetCookie(tokens.CreateCookie(tokens.AccessCookie, res.AccessToken, "/", res.AccessExp))
	}

	l.Info("login_success", "user_id", res.User.ID)
	return c.JSON(http.StatusOK, transport.LoginResponse{
		Success: true,
		Message: "login successful",
		UserData: transport.UserData{
			ID:             res.User.ID,
			Name:           res.User.Name,
			ProfilePicture: res.User.ProfilePicture,
		},
	})
}

func (h *UserHTTP) GetUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.get")

	id, ok := parseID(c.Param("id"))
	if !ok {
		l.Warn("get_user_failed", "status", 400, "reason", "invalid user id", "id", c.Param("id"))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	user, err := h.Svc.GetUser(ctx, id)
	if err != nil {
		return serviceError(l, "get_user_failed", err, "user not found")
	}

	return c.JSON(http.StatusOK, transport.UserProfile{
		ID:             user.ID,
		Name:           user.Name,
		ProfilePicture: user.ProfilePicture,
		Address:        user.Address,
	})
}

func (h *UserHTTP) UpdateProfilePicture(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.update_profile_picture")

	var req transport.UpdateProfilePictureRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_profile_picture_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := ensureSelf(c, req.ID); err != nil {
		l.Warn("update_profile_picture_failed", "status", 403, "reason", "foreign user", "user_id", req.ID)
		return err
	}

	if err := h.Svc.UpdateProfilePicture(ctx, req.ID, req.ProfilePictureURL); err != nil {
		return serviceError(l, "update_profile_picture_failed", err, "user not found")
	}

	l.Info("update_profile_picture_success", "user_id", req.ID)
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "profile picture updated"})
}

func (h *UserHTTP) UpdateAddress(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.update_address")

	var req transport.UpdateAddressRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_address_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := ensureSelf(c, req.ID); err != nil {
		l.Warn("update_address_failed", "status", 403, "reason", "foreign user", "user_id", req.ID)
		return err
	}

	if err := h.Svc.UpdateAddress(ctx, req.ID, req.Address); err != nil {
		return serviceError(l, "update_address_failed", err, "user not found")
	}

	l.Info("update_address_success", "user_id", req.ID)
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "address updated"})
}

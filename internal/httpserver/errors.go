package httpserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/tokoku/internal/service"
	middleware "github.com/Skotchmaster/tokoku/pkg/middleware/auth"
)

// ErrorHandler renders every error as {"error": msg}. Non-HTTP errors are
// reported as a bare 500 so internal details never reach the client.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code, msg := http.StatusInternalServerError, "internal error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = strings.ToLower(http.StatusText(code))
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, echo.Map{"error": msg})
}

// serviceError maps the service error taxonomy to a sanitized HTTP error and
// logs the detail.
func serviceError(l *slog.Logger, event string, err error, notFound string) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		l.Warn(event, "status", 400, "reason", "invalid request", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, validationMessage(err))
	case errors.Is(err, service.ErrNotFound):
		l.Warn(event, "status", 404, "reason", notFound, "error", err)
		return echo.NewHTTPError(http.StatusNotFound, notFound)
	default:
		l.Error(event, "status", 500, "reason", "internal error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

func validationMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, service.ErrValidation.Error()+": "); i >= 0 {
		return msg[i+len(service.ErrValidation.Error())+2:]
	}
	return "invalid request"
}

func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// ensureSelf rejects requests acting on another user's data. It is a no-op
// when the auth guard did not run.
func ensureSelf(c echo.Context, userID uint) error {
	if uid, ok := middleware.UserIDFromContext(c); ok && uid != userID {
		return echo.NewHTTPError(http.StatusForbidden, "forbidden")
	}
	return nil
}

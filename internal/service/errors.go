package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Skotchmaster/tokoku/internal/events"
)

var (
	ErrValidation         = errors.New("validation")                // 400
	ErrInvalidCredentials = errors.New("invalid email or password") // 400
	ErrNotFound           = errors.New("not found")                 // 404
	ErrConflict           = errors.New("conflict")                  // 400 on register, 409 on status change
)

// publish sends an event after the write it describes has committed.
// A broker failure is logged and otherwise ignored.
func publish(ctx context.Context, l *slog.Logger, pub events.Publisher, topic, key, typ string, data map[string]any) {
	if pub == nil {
		return
	}
	if err := pub.PublishEvent(ctx, topic, key, events.NewEvent(typ, data)); err != nil {
		l.Warn("publish_event_failed", "topic", topic, "type", typ, "error", err)
	}
}

package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/tokoku/internal/events"
	"github.com/Skotchmaster/tokoku/internal/models"
	"github.com/Skotchmaster/tokoku/internal/repo"
	"github.com/Skotchmaster/tokoku/pkg/db"
)

type published struct {
	Topic string
	Key   string
	Event events.Event
}

type fakePublisher struct {
	mu   sync.Mutex
	sent []published
	err  error
}

func (f *fakePublisher) PublishEvent(_ context.Context, topic, key string, event any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	ev, _ := event.(events.Event)
	f.sent = append(f.sent, published{Topic: topic, Key: key, Event: ev})
	return nil
}

func (f *fakePublisher) Close() error { return nil }

func (f *fakePublisher) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.sent))
	for _, p := range f.sent {
		out = append(out, p.Event.Type)
	}
	return out
}

type fakeIndex struct {
	indexed []models.ProductView
	hits    []models.ProductView
	err     error
}

func (f *fakeIndex) IndexProduct(_ context.Context, p models.ProductView) error {
	if f.err != nil {
		return f.err
	}
	f.indexed = append(f.indexed, p)
	return nil
}

func (f *fakeIndex) Search(_ context.Context, _ string, _, _ int) (int64, []models.ProductView, error) {
	if f.err != nil {
		return 0, nil, f.err
	}
	return int64(len(f.hits)), f.hits, nil
}

var errBroker = errors.New("broker unavailable")

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	gdb, err := db.Open(context.Background(), db.DriverSQLite, ":memory:")
	require.NoError(t, err)
	require.NoError(t, repo.Migrate(gdb))
	t.Cleanup(func() { _ = db.Close(gdb) })

	return &repo.GormRepo{DB: gdb}
}

func seedUser(t *testing.T, r *repo.GormRepo, email string) *models.User {
	t.Helper()
	u := &models.User{Name: "Budi", Email: email, PasswordHash: "x"}
	require.NoError(t, r.CreateUser(context.Background(), u))
	return u
}

func seedProduct(t *testing.T, r *repo.GormRepo, owner uint) *models.Product {
	t.Helper()
	p := &models.Product{Name: "Kopi", Price: 25000, ImageURL: "kopi.png", Category: "minuman", UserID: owner}
	require.NoError(t, r.CreateProduct(context.Background(), p))
	return p
}

func intPtr(v int) *int { return &v }

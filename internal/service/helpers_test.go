package service

import (
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"chat_relay/internal/repository"
	"chat_relay/internal/storage"
)

const broadcast = "Todos"

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestDB(t *testing.T) *storage.DB {
	t.Helper()
	db, err := storage.NewSQLiteDB(filepath.Join(t.TempDir(), "chat.db"))
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestServices(t *testing.T) (*Services, *fakeClock, *storage.DB) {
	t.Helper()
	db := newTestDB(t)
	clock := newFakeClock()
	services := NewServices(repository.NewRepositories(db), Options{
		Broadcast:      broadcast,
		ReaperInterval: 20 * time.Millisecond,
		ReaperTimeout:  10 * time.Second,
		Clock:          clock,
	}, discardLogger())
	return services, clock, db
}

package settings

import (
	"context"
	"database/sql"
	"sync"

	"github.com/abinijav/absensi-digital/internal/db"
	"github.com/abinijav/absensi-digital/internal/models"
)

// Cache holds the last successfully loaded TimeSettings. The gate reads
// it on every attempt; Current returns nil until the first Refresh
// succeeds, which the gate reports as ConfigNotReady.
type Cache struct {
	mu  sync.RWMutex
	cur *models.TimeSettings
}

func (c *Cache) Refresh(ctx context.Context, database *sql.DB) error {
	s, err := db.GetTimeSettings(ctx, database)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.cur = s
	c.mu.Unlock()
	return nil
}

func (c *Cache) Current() *models.TimeSettings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cur
}

// Set installs settings directly; used after an admin update so the
// gate sees the new windows without waiting for the refresh job.
func (c *Cache) Set(s *models.TimeSettings) {
	c.mu.Lock()
	c.cur = s
	c.mu.Unlock()
}

// Update persists new windows and installs them immediately.
func (c *Cache) Update(ctx context.Context, database *sql.DB, s models.TimeSettings) error {
	if err := db.UpdateTimeSettings(ctx, database, s); err != nil {
		return err
	}
	c.Set(&s)
	return nil
}

package cli

import (
	"log/slog"

	"cardlist/internal/store"
)

// checkedStorage keeps the fire-and-forget Write contract for the card list but
// remembers the first failed save, so a scriptable command can exit non-zero.
type checkedStorage struct {
	store.Backend
	logger *slog.Logger
	err    error
}

func (c *checkedStorage) Write(items []string) {
	err := c.Backend.Save(items)
	if err == nil {
		return
	}
	c.logger.Error("persist item list", "location", c.Location(), "error", err)
	if c.err == nil {
		c.err = err
	}
}

// Err returns the first save failure since the last call and resets it.
func (c *checkedStorage) Err() error {
	err := c.err
	c.err = nil
	return err
}

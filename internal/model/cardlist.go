// Package model holds the in-memory card list and the pending state of its
// delete and edit dialogs.
package model

import (
	"io"
	"log/slog"

	"cardlist/internal/store"
)

// None marks "no pending item" for the delete and edit references.
const None = -1

// CardList owns the ordered item list and the two confirmation flows over it.
//
// Every mutation is followed by exactly one full-list Write to the storage.
// CardList is not safe for concurrent use; the TUI drives it from a single goroutine.
type CardList struct {
	storage store.Storage
	logger  *slog.Logger

	items []string

	deleteOpen    bool
	pendingDelete int

	editOpen    bool
	pendingEdit int
}

// NewCardList loads the list from storage once and returns a holder with both dialogs closed.
func NewCardList(storage store.Storage, logger *slog.Logger) *CardList {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	items := storage.Read()
	if items == nil {
		items = []string{}
	}
	return &CardList{
		storage:       storage,
		logger:        logger,
		items:         items,
		pendingDelete: None,
		pendingEdit:   None,
	}
}

// Items returns a copy of the current list.
func (c *CardList) Items() []string {
	out := make([]string, len(c.items))
	copy(out, c.items)
	return out
}

func (c *CardList) Len() int { return len(c.items) }

// At returns the item at ix and whether ix is in bounds.
func (c *CardList) At(ix int) (string, bool) {
	if !c.inBounds(ix) {
		return "", false
	}
	return c.items[ix], true
}

func (c *CardList) DeleteDialogOpen() bool { return c.deleteOpen }
func (c *CardList) PendingDelete() int { return c.pendingDelete }

// PendingDeleteText is the text shown by the delete dialog.
func (c *CardList) PendingDeleteText() (string, bool) { return c.At(c.pendingDelete) }

func (c *CardList) EditDialogOpen() bool { return c.editOpen }
func (c *CardList) PendingEdit() int { return c.pendingEdit }

// PendingEditText is the initial text shown by the edit dialog.
func (c *CardList) PendingEditText() (string, bool) { return c.At(c.pendingEdit) }

// RequestDelete marks ix for deletion and opens the confirmation dialog.
// ix is trusted here and only checked on confirmation.
func (c *CardList) RequestDelete(ix int) {
	c.pendingDelete = ix
	c.deleteOpen = true
}

// ResolveDelete closes the delete dialog. When confirmed, the pending item is
// removed and the list persisted.
//
// Confirming without a valid pending index is a caller bug: it is logged and
// nothing is removed or written.
func (c *CardList) ResolveDelete(confirmed bool) {
	defer func() {
		c.pendingDelete = None
		c.deleteOpen = false
	}()

	if !confirmed {
		return
	}
	if !c.inBounds(c.pendingDelete) {
		c.logger.Error("delete confirmed without a pending item",
			"pending", c.pendingDelete,
			"len", len(c.items),
		)
		return
	}
	c.items = append(c.items[:c.pendingDelete], c.items[c.pendingDelete+1:]...)
	c.persist()
}

// RequestEdit marks ix for editing and opens the edit dialog.
func (c *CardList) RequestEdit(ix int) {
	c.pendingEdit = ix
	c.editOpen = true
}

// ResolveEdit closes the edit dialog. A nil text cancels; otherwise it replaces
// the pending item and the list is persisted.
func (c *CardList) ResolveEdit(text *string) {
	defer func() {
		c.pendingEdit = None
		c.editOpen = false
	}()

	if text == nil {
		return
	}
	if !c.inBounds(c.pendingEdit) {
		c.logger.Error("edit submitted without a pending item",
			"pending", c.pendingEdit,
			"len", len(c.items),
		)
		return
	}
	c.items[c.pendingEdit] = *text
	c.persist()
}

// Add appends text, empty or not, and persists the list.
func (c *CardList) Add(text string) {
	c.items = append(c.items, text)
	c.persist()
}

func (c *CardList) inBounds(ix int) bool {
	return ix >= 0 && ix < len(c.items)
}

func (c *CardList) persist() {
	c.storage.Write(c.Items())
}

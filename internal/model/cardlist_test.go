package model

import (
	"bytes"
	"log/slog"
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"cardlist/internal/store"
)

func strPtr(s string) *string { return &s }

func newTestList(t *testing.T, seed ...string) (*CardList, *store.MemStore, *bytes.Buffer) {
	t.Helper()
	var logBuf bytes.Buffer
	mem := store.NewMemStore(seed...)
	c := NewCardList(mem, slog.New(slog.NewTextHandler(&logBuf, nil)))
	return c, mem, &logBuf
}

func TestNewCardList_LoadsFromStorage(t *testing.T) {
	t.Parallel()

	c, mem, _ := newTestList(t, "a", "b")
	if got := c.Items(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("items: got %#v", got)
	}
	if c.DeleteDialogOpen() || c.EditDialogOpen() {
		t.Fatalf("dialogs must start closed")
	}
	if c.PendingDelete() != None || c.PendingEdit() != None {
		t.Fatalf("pending references must start as None")
	}
	if len(mem.Writes) != 0 {
		t.Fatalf("loading must not write; got %d writes", len(mem.Writes))
	}
}

func TestNewCardList_EmptyStorage(t *testing.T) {
	t.Parallel()

	c, _, _ := newTestList(t)
	if got := c.Items(); got == nil || len(got) != 0 {
		t.Fatalf("expected empty list, got %#v", got)
	}
}

func TestAdd_AppendsAndPersistsOnce(t *testing.T) {
	t.Parallel()

	c, mem, _ := newTestList(t, "a")
	c.Add("z")

	want := []string{"a", "z"}
	if got := c.Items(); !reflect.DeepEqual(got, want) {
		t.Fatalf("items: got %#v want %#v", got, want)
	}
	if len(mem.Writes) != 1 || !reflect.DeepEqual(mem.Writes[0], want) {
		t.Fatalf("expected exactly one write of %#v, got %#v", want, mem.Writes)
	}
}

func TestAdd_EmptyTextIsAccepted(t *testing.T) {
	t.Parallel()

	c, mem, _ := newTestList(t)
	c.Add("")
	if got := c.Items(); !reflect.DeepEqual(got, []string{""}) {
		t.Fatalf("items: got %#v", got)
	}
	if len(mem.Writes) != 1 {
		t.Fatalf("expected one write, got %d", len(mem.Writes))
	}
}

func TestDelete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		confirmed  bool
		ix         int
		wantItems  []string
		wantWrites int
	}{
		{name: "confirm middle", confirmed: true, ix: 1, wantItems: []string{"a", "c"}, wantWrites: 1},
		{name: "confirm first", confirmed: true, ix: 0, wantItems: []string{"b", "c"}, wantWrites: 1},
		{name: "confirm last", confirmed: true, ix: 2, wantItems: []string{"a", "b"}, wantWrites: 1},
		{name: "cancel", confirmed: false, ix: 1, wantItems: []string{"a", "b", "c"}, wantWrites: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c, mem, _ := newTestList(t, "a", "b", "c")

			c.RequestDelete(tt.ix)
			if !c.DeleteDialogOpen() || c.PendingDelete() != tt.ix {
				t.Fatalf("expected open dialog pending %d; open=%v pending=%d", tt.ix, c.DeleteDialogOpen(), c.PendingDelete())
			}
			c.ResolveDelete(tt.confirmed)

			if got := c.Items(); !reflect.DeepEqual(got, tt.wantItems) {
				t.Fatalf("items: got %#v want %#v", got, tt.wantItems)
			}
			if c.DeleteDialogOpen() || c.PendingDelete() != None {
				t.Fatalf("expected closed dialog and cleared pending")
			}
			if len(mem.Writes) != tt.wantWrites {
				t.Fatalf("writes: got %d want %d", len(mem.Writes), tt.wantWrites)
			}
			if tt.wantWrites == 1 && !reflect.DeepEqual(mem.Writes[0], tt.wantItems) {
				t.Fatalf("persisted %#v, want %#v", mem.Writes[0], tt.wantItems)
			}
		})
	}
}

func TestResolveDelete_WithoutRequest_LogsAndDoesNotWrite(t *testing.T) {
	t.Parallel()

	c, mem, logBuf := newTestList(t, "a")
	c.ResolveDelete(true)

	if got := c.Items(); !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("items changed: %#v", got)
	}
	if len(mem.Writes) != 0 {
		t.Fatalf("expected no writes, got %d", len(mem.Writes))
	}
	if c.DeleteDialogOpen() {
		t.Fatalf("dialog must close even on misuse")
	}
	out := logBuf.String()
	if !strings.Contains(out, "level=ERROR") || !strings.Contains(out, "delete confirmed without a pending item") {
		t.Fatalf("expected defect log, got %q", out)
	}
}

func TestResolveDelete_StaleIndex_LogsAndDoesNotWrite(t *testing.T) {
	t.Parallel()

	c, mem, logBuf := newTestList(t, "a", "b")
	c.RequestDelete(5)
	c.ResolveDelete(true)

	if got := c.Items(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("items changed: %#v", got)
	}
	if len(mem.Writes) != 0 {
		t.Fatalf("expected no writes, got %d", len(mem.Writes))
	}
	if !strings.Contains(logBuf.String(), "pending=5") {
		t.Fatalf("expected pending index in log, got %q", logBuf.String())
	}
}

func TestEdit(t *testing.T) {
	t.Parallel()

	c, mem, _ := newTestList(t, "a", "b", "c")

	c.RequestEdit(1)
	if !c.EditDialogOpen() {
		t.Fatalf("expected edit dialog open")
	}
	if text, ok := c.PendingEditText(); !ok || text != "b" {
		t.Fatalf("pending edit text: got %q ok=%v", text, ok)
	}
	c.ResolveEdit(strPtr("x"))

	want := []string{"a", "x", "c"}
	if got := c.Items(); !reflect.DeepEqual(got, want) {
		t.Fatalf("items: got %#v want %#v", got, want)
	}
	if len(mem.Writes) != 1 || !reflect.DeepEqual(mem.Writes[0], want) {
		t.Fatalf("expected one write of %#v, got %#v", want, mem.Writes)
	}
	if c.EditDialogOpen() || c.PendingEdit() != None {
		t.Fatalf("expected closed dialog and cleared pending")
	}
}

func TestEdit_Cancel_LeavesListUnchanged(t *testing.T) {
	t.Parallel()

	c, mem, _ := newTestList(t, "a", "b")
	c.RequestEdit(0)
	c.ResolveEdit(nil)

	if got := c.Items(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("items changed: %#v", got)
	}
	if len(mem.Writes) != 0 {
		t.Fatalf("expected no writes, got %d", len(mem.Writes))
	}
	if c.EditDialogOpen() || c.PendingEdit() != None {
		t.Fatalf("expected closed dialog and cleared pending")
	}
}

func TestEdit_EmptyReplacementIsAccepted(t *testing.T) {
	t.Parallel()

	c, mem, _ := newTestList(t, "a")
	c.RequestEdit(0)
	c.ResolveEdit(strPtr(""))

	if got := c.Items(); !reflect.DeepEqual(got, []string{""}) {
		t.Fatalf("items: got %#v", got)
	}
	if len(mem.Writes) != 1 {
		t.Fatalf("expected one write, got %d", len(mem.Writes))
	}
}

func TestResolveEdit_WithoutRequest_LogsAndDoesNotWrite(t *testing.T) {
	t.Parallel()

	c, mem, logBuf := newTestList(t, "a")
	c.ResolveEdit(strPtr("x"))

	if got := c.Items(); !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("items changed: %#v", got)
	}
	if len(mem.Writes) != 0 {
		t.Fatalf("expected no writes, got %d", len(mem.Writes))
	}
	if !strings.Contains(logBuf.String(), "edit submitted without a pending item") {
		t.Fatalf("expected defect log, got %q", logBuf.String())
	}
}

func TestPendingText_OutOfBounds(t *testing.T) {
	t.Parallel()

	c, _, _ := newTestList(t, "a")
	if _, ok := c.PendingDeleteText(); ok {
		t.Fatalf("expected no pending delete text")
	}
	c.RequestDelete(3)
	if _, ok := c.PendingDeleteText(); ok {
		t.Fatalf("expected out-of-bounds pending delete to report !ok")
	}
}

func TestItems_ReturnsCopy(t *testing.T) {
	t.Parallel()

	c, _, _ := newTestList(t, "a")
	got := c.Items()
	got[0] = "mutated"
	if c.Items()[0] != "a" {
		t.Fatalf("Items must return a copy")
	}
}

type op struct {
	kind string
	ix   int
	text string
	ok   bool
}

func applyOps(c *CardList, ops []op) {
	for _, o := range ops {
		switch o.kind {
		case "add":
			c.Add(o.text)
		case "delete":
			c.RequestDelete(o.ix)
			c.ResolveDelete(o.ok)
		case "edit":
			c.RequestEdit(o.ix)
			if o.ok {
				c.ResolveEdit(&o.text)
			} else {
				c.ResolveEdit(nil)
			}
		}
	}
}

// replay mirrors the operations on a plain slice.
func replay(ops []op) []string {
	out := []string{}
	for _, o := range ops {
		switch o.kind {
		case "add":
			out = append(out, o.text)
		case "delete":
			if o.ok && o.ix >= 0 && o.ix < len(out) {
				out = append(out[:o.ix], out[o.ix+1:]...)
			}
		case "edit":
			if o.ok && o.ix >= 0 && o.ix < len(out) {
				out[o.ix] = o.text
			}
		}
	}
	return out
}

func TestRandomSequences_AreDeterministic(t *testing.T) {
	t.Parallel()

	words := []string{"", "a", "b", "c", "long item text"}
	kinds := []string{"add", "add", "delete", "edit"}

	for seed := int64(1); seed <= 50; seed++ {
		r := rand.New(rand.NewSource(seed))
		ops := make([]op, 0, 40)
		size := 0
		for i := 0; i < 40; i++ {
			o := op{kind: kinds[r.Intn(len(kinds))], text: words[r.Intn(len(words))], ok: r.Intn(3) != 0}
			if o.kind != "add" {
				if size == 0 {
					o.kind = "add"
				} else {
					o.ix = r.Intn(size)
				}
			}
			switch {
			case o.kind == "add":
				size++
			case o.kind == "delete" && o.ok:
				size--
			}
			ops = append(ops, o)
		}

		c1, mem1, _ := newTestList(t)
		applyOps(c1, ops)
		c2, _, _ := newTestList(t)
		applyOps(c2, ops)

		want := replay(ops)
		if got := c1.Items(); !reflect.DeepEqual(got, want) {
			t.Fatalf("seed %d: got %#v want %#v", seed, got, want)
		}
		if !reflect.DeepEqual(c1.Items(), c2.Items()) {
			t.Fatalf("seed %d: two replays diverged", seed)
		}
		if n := len(mem1.Writes); n > 0 && !reflect.DeepEqual(mem1.Writes[n-1], want) {
			t.Fatalf("seed %d: last persisted %#v, want %#v", seed, mem1.Writes[n-1], want)
		}
	}
}

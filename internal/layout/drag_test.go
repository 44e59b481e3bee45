package layout

import (
	"errors"
	"reflect"
	"testing"

	"storefront/internal/models"
)

// countingReorderer records every Reorder call it receives.
type countingReorderer struct {
	calls [][2]int
	err   error
}

func (c *countingReorderer) Reorder(from, to int) error {
	if c.err != nil {
		return c.err
	}
	c.calls = append(c.calls, [2]int{from, to})
	return nil
}

func TestDragLiveReorderTracksItem(t *testing.T) {
	s := editingStore(t, "A", "B", "C", "D")
	d := NewDragController(s)

	d.Start(0)
	if got := labels(s); !reflect.DeepEqual(got, []string{"A", "B", "C", "D"}) {
		t.Fatalf("drag start must not mutate: %v", got)
	}

	// Dragging A across B and C moves it one slot at a time.
	for _, target := range []int{1, 2} {
		moved, err := d.Over(target)
		if err != nil || !moved {
			t.Fatalf("Over(%d): moved=%v err=%v", target, moved, err)
		}
	}
	if got := labels(s); !reflect.DeepEqual(got, []string{"B", "C", "A", "D"}) {
		t.Errorf("labels: got %v", got)
	}
	if src, ok := d.Source(); !ok || src != 2 {
		t.Errorf("source: got %d ok=%v, want 2", src, ok)
	}
	assertDense(t, s.Elements())

	d.End()
	if _, ok := d.Source(); ok {
		t.Error("source should be cleared after End")
	}
}

func TestDragOverSameIndexIsNoop(t *testing.T) {
	r := &countingReorderer{}
	d := NewDragController(r)

	d.Start(1)
	d.Over(1)
	d.Over(3)
	d.Over(3)
	d.Over(3)

	want := [][2]int{{1, 3}}
	if !reflect.DeepEqual(r.calls, want) {
		t.Errorf("calls: got %v, want %v", r.calls, want)
	}
}

func TestDragOverWithoutStart(t *testing.T) {
	r := &countingReorderer{}
	d := NewDragController(r)

	moved, err := d.Over(2)
	if moved || err != nil {
		t.Errorf("Over without Start: moved=%v err=%v", moved, err)
	}

	d.Start(0)
	d.End()
	d.End() // idempotent
	if moved, _ := d.Over(2); moved {
		t.Error("Over after End should not reorder")
	}
	if len(r.calls) != 0 {
		t.Errorf("unexpected reorders: %v", r.calls)
	}
}

func TestDragOverErrorKeepsSource(t *testing.T) {
	s := editingStore(t, "A", "B")
	d := NewDragController(s)

	d.Start(0)
	_, err := d.Over(5)
	var ierr *models.IndexError
	if !errors.As(err, &ierr) {
		t.Fatalf("expected IndexError, got %v", err)
	}
	if src, ok := d.Source(); !ok || src != 0 {
		t.Errorf("source: got %d ok=%v, want 0", src, ok)
	}
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package layout

// Reorderer moves one element of an ordered collection.
type Reorderer interface {
	Reorder(from, to int) error
}

// DragController turns drag-start/over/end events into live reorders. The
// dragged element moves on every drag-over, and the recorded source follows
// it so continued dragging keeps tracking the same element.
type DragController struct {
	target   Reorderer
	source   int
	dragging bool
}

// NewDragController creates a controller that reorders r.
func NewDragController(r Reorderer) *DragController {
	return &DragController{target: r}
}

// Start records index as the drag source. Nothing moves yet.
func (d *DragController) Start(index int) {
	d.source = index
	d.dragging = true
}

// Over moves the dragged element to target. It reports whether a reorder
// happened; hovering the element's own position, or hovering with no drag
// in progress, does nothing. A failed reorder keeps the recorded source.
func (d *DragController) Over(target int) (bool, error) {
	if !d.dragging || d.source == target {
		return false, nil
	}
	if err := d.target.Reorder(d.source, target); err != nil {
		return false, err
	}
	d.source = target
	return true, nil
}

// End clears the drag source. Safe to call when no drag is in progress.
func (d *DragController) End() {
	d.source = 0
	d.dragging = false
}

// Source returns the recorded drag source.
func (d *DragController) Source() (int, bool) {
	return d.source, d.dragging
}

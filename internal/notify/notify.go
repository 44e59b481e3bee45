// Package notify delivers the short user-facing messages ("toasts") that
// follow every storefront action.
package notify

import (
	"context"
	"log/slog"
	"sync"
)

// Variant styles a toast.
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Toast is one user-facing notification.
type Toast struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Variant     Variant `json:"variant,omitempty"`
}

// Notifier receives toasts.
type Notifier interface {
	Notify(ctx context.Context, t Toast)
}

// Log writes toasts to the default slog logger.
type Log struct{}

func (Log) Notify(ctx context.Context, t Toast) {
	level := slog.LevelInfo
	if t.Variant == VariantDestructive {
		level = slog.LevelWarn
	}
	slog.Log(ctx, level, "toast", "title", t.Title, "description", t.Description)
}

// Recorder collects toasts so a response can carry them back to the user.
type Recorder struct {
	mu     sync.Mutex
	toasts []Toast
}

func (r *Recorder) Notify(_ context.Context, t Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, t)
}

// Drain returns the collected toasts and resets the recorder.
func (r *Recorder) Drain() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.toasts
	r.toasts = nil
	return out
}

type ctxKey struct{}

// WithRecorder returns a context whose toasts are also captured by rec.
func WithRecorder(ctx context.Context, rec *Recorder) context.Context {
	return context.WithValue(ctx, ctxKey{}, rec)
}

// Fanout sends every toast to next and to the Recorder attached to the
// context, if any. It lets one long-lived notifier serve many requests.
type Fanout struct {
	Next Notifier
}

func (f Fanout) Notify(ctx context.Context, t Toast) {
	if f.Next != nil {
		f.Next.Notify(ctx, t)
	}
	if rec, ok := ctx.Value(ctxKey{}).(*Recorder); ok {
		rec.Notify(ctx, t)
	}
}

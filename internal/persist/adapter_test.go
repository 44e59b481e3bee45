package persist

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"sort"
	"testing"

	"storefront/internal/models"
)

// failingBackend returns err from every call.
type failingBackend struct{ err error }

func (f failingBackend) Get(context.Context, string) (string, bool, error) { return "", false, f.err }
func (f failingBackend) Set(context.Context, string, string) error         { return f.err }
func (f failingBackend) Delete(context.Context, string) error              { return f.err }
func (f failingBackend) Keys(context.Context, string) ([]string, error)    { return nil, f.err }

func TestAdapterSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	a := NewAdapter(NewMemoryBackend(), "client-1")

	want := []models.CartItem{{Product: models.Product{ID: "1", Name: "Round", Price: 129.99}, Quantity: 2}}
	if err := a.Save(ctx, KeyCartItems, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	var got []models.CartItem
	ok, err := a.Load(ctx, KeyCartItems, &got)
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestAdapterLoadAbsent(t *testing.T) {
	a := NewAdapter(NewMemoryBackend(), "client-1")

	var got []models.CustomTheme
	ok, err := a.Load(context.Background(), KeyCustomThemes, &got)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ok {
		t.Error("expected absent")
	}
}

func TestAdapterLoadCorruptFallsBack(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	a := NewAdapter(backend, "client-1")

	backend.Set(ctx, "client-1:customLayout", `[{"id":"a","type":"hero"`)

	got := []models.LayoutElement{{ID: "stale"}}
	ok, err := a.Load(ctx, KeyCustomLayout, &got)
	if err != nil {
		t.Fatalf("parse failure must not propagate: %v", err)
	}
	if ok {
		t.Error("corrupt value should be reported as absent")
	}
	if got != nil {
		t.Errorf("destination should be reset, got %+v", got)
	}
}

func TestAdapterOverwrites(t *testing.T) {
	ctx := context.Background()
	a := NewAdapter(NewMemoryBackend(), "c")

	a.SaveString(ctx, KeyTheme, "theme-light-frost")
	a.SaveString(ctx, KeyTheme, "theme-dark-nebula")

	got, ok, err := a.LoadString(ctx, KeyTheme)
	if err != nil || !ok || got != "theme-dark-nebula" {
		t.Errorf("LoadString: got %q ok=%v err=%v", got, ok, err)
	}
}

func TestAdapterNamespacesAreIsolated(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	alice := NewAdapter(backend, "storefront").Sub("alice")
	bob := NewAdapter(backend, "storefront").Sub("bob")

	alice.SaveString(ctx, KeyTheme, "dark")

	if _, ok, _ := bob.LoadString(ctx, KeyTheme); ok {
		t.Error("bob sees alice's theme")
	}
	if alice.Namespace() != "storefront:alice" {
		t.Errorf("namespace: got %q", alice.Namespace())
	}
}

func TestAdapterKeysAndClear(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	a := NewAdapter(backend, "c1")
	other := NewAdapter(backend, "c2")

	a.SaveString(ctx, KeyTheme, "x")
	a.Save(ctx, KeyCartItems, []models.CartItem{})
	other.SaveString(ctx, KeyTheme, "y")

	keys, err := a.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	sort.Strings(keys)
	if !reflect.DeepEqual(keys, []string{KeyCartItems, KeyTheme}) {
		t.Errorf("keys: got %v", keys)
	}

	if err := a.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if keys, _ := a.Keys(ctx); len(keys) != 0 {
		t.Errorf("keys after clear: %v", keys)
	}
	if _, ok, _ := other.LoadString(ctx, KeyTheme); !ok {
		t.Error("clear removed another namespace's key")
	}
}

func TestAdapterBackendErrorsAreStorageErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk full")
	a := NewAdapter(failingBackend{err: boom}, "c")

	checks := map[string]error{
		"save": a.SaveString(ctx, KeyTheme, "x"),
		"load": func() error { _, _, err := a.LoadString(ctx, KeyTheme); return err }(),
		"del":  a.Delete(ctx, KeyTheme),
	}
	for name, err := range checks {
		var serr *models.StorageError
		if !errors.As(err, &serr) {
			t.Errorf("%s: expected StorageError, got %v", name, err)
			continue
		}
		if !errors.Is(err, boom) {
			t.Errorf("%s: StorageError should unwrap to the backend error", name)
		}
	}
}

func TestAdapterSaveUnmarshalableValue(t *testing.T) {
	a := NewAdapter(NewMemoryBackend(), "c")
	err := a.Save(context.Background(), "bad", make(chan int))
	var serr *models.StorageError
	if !errors.As(err, &serr) {
		t.Errorf("expected StorageError, got %v", err)
	}
}

// A theme written in one session is read back after a simulated reload.
func TestThemeSurvivesReload(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")

	first, err := OpenFileBackend(path)
	if err != nil {
		t.Fatalf("OpenFileBackend: %v", err)
	}
	if err := NewAdapter(first, "local").SaveString(ctx, KeyTheme, "dark"); err != nil {
		t.Fatalf("SaveString: %v", err)
	}

	reloaded, err := OpenFileBackend(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, ok, err := NewAdapter(reloaded, "local").LoadString(ctx, KeyTheme)
	if err != nil || !ok {
		t.Fatalf("LoadString: ok=%v err=%v", ok, err)
	}
	if got != "dark" {
		t.Errorf("theme: got %q, want dark", got)
	}
}

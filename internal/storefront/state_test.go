package storefront

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/catalog"
	"storefront/internal/models"
	"storefront/internal/notify"
	"storefront/internal/persist"
)

var errDiskFull = errors.New("disk full")

// flakyBackend is a memory backend whose writes can be made to fail.
type flakyBackend struct {
	*persist.MemoryBackend
	failSet bool
	failGet bool
}

func newFlakyBackend() *flakyBackend {
	return &flakyBackend{MemoryBackend: persist.NewMemoryBackend()}
}

func (f *flakyBackend) Set(ctx context.Context, key, value string) error {
	if f.failSet {
		return errDiskFull
	}
	return f.MemoryBackend.Set(ctx, key, value)
}

func (f *flakyBackend) Get(ctx context.Context, key string) (string, bool, error) {
	if f.failGet {
		return "", false, errDiskFull
	}
	return f.MemoryBackend.Get(ctx, key)
}

// testState opens a State over a fresh flaky backend and returns the
// recorder collecting its toasts.
func testState(t *testing.T) (*State, *flakyBackend, *notify.Recorder) {
	t.Helper()
	backend := newFlakyBackend()
	rec := &notify.Recorder{}
	st, err := Open(context.Background(), persist.NewAdapter(backend, "client"), catalog.Default(), rec)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return st, backend, rec
}

// reopen loads a second State from the same backend, simulating a reload.
func reopen(t *testing.T, backend persist.Backend) *State {
	t.Helper()
	st, err := Open(context.Background(), persist.NewAdapter(backend, "client"), catalog.Default(), &notify.Recorder{})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	return st
}

func TestOpenAppliesDefaults(t *testing.T) {
	st, _, _ := testState(t)

	if st.Theme() != models.ThemeLightFrost {
		t.Errorf("theme: got %q", st.Theme())
	}
	if st.LandingLayout() != models.LandingHeroCentric {
		t.Errorf("landing layout: got %q", st.LandingLayout())
	}
	if st.ProductLayout() != models.ProductGrid {
		t.Errorf("product layout: got %q", st.ProductLayout())
	}
	if len(st.Cart()) != 0 || len(st.Wishlist()) != 0 || len(st.CustomThemes()) != 0 {
		t.Error("collections should start empty")
	}
	if len(st.Landing().Elements()) != 0 {
		t.Error("landing buffer should start empty")
	}
}

func TestOpenLoadsLegacyValues(t *testing.T) {
	backend := persist.NewMemoryBackend()
	ctx := context.Background()
	raw := map[string]string{
		"client:theme":              "theme-dark-nebula",
		"client:landingLayout":      "minimalist",
		"client:productLayout":      "not-a-layout",
		"client:cartItems":          `[{"id":"1","name":"Classic Round Glasses","price":129.99},{"id":"1","name":"Classic Round Glasses","price":129.99},{"id":"2","name":"Modern Square Frames","price":149.5}]`,
		"client:customLayout":       `[{"id":"b","type":"text","content":"second","order":5},{"id":"a","type":"hero","content":"first","order":2,"size":"full"}]`,
		"client:savedCustomLayouts": `[{"id":"p1","name":"Old","sections":[{"id":"x","type":"spacer","order":0}],"createdAt":"2024-01-02T03:04:05Z"}]`,
		"client:customThemes":       "{not json",
	}
	for k, v := range raw {
		backend.Set(ctx, k, v)
	}

	st := reopen(t, backend)

	if st.Theme() != models.ThemeDarkNebula {
		t.Errorf("theme: got %q", st.Theme())
	}
	if st.LandingLayout() != models.LandingMinimalist {
		t.Errorf("landing layout: got %q", st.LandingLayout())
	}
	if st.ProductLayout() != models.ProductGrid {
		t.Errorf("invalid product layout should fall back, got %q", st.ProductLayout())
	}

	cart := st.Cart()
	if len(cart) != 2 || cart[0].Quantity != 2 || cart[1].Quantity != 1 {
		t.Errorf("cart lines: got %+v", cart)
	}
	if st.CartCount() != 3 {
		t.Errorf("cart count: got %d", st.CartCount())
	}

	els := st.Landing().Elements()
	if len(els) != 2 || els[0].ID != "a" || els[1].ID != "b" {
		t.Fatalf("elements: got %+v", els)
	}
	if els[0].Order != 0 || els[1].Order != 1 {
		t.Errorf("orders should be renumbered: %d %d", els[0].Order, els[1].Order)
	}

	named := st.Landing().Named()
	if len(named) != 1 || len(named[0].Elements) != 1 {
		t.Errorf("legacy sections not read: %+v", named)
	}
	if len(st.CustomThemes()) != 0 {
		t.Error("corrupt themes should fall back to empty")
	}
}

func TestOpenBackendFailure(t *testing.T) {
	backend := newFlakyBackend()
	backend.failGet = true

	_, err := Open(context.Background(), persist.NewAdapter(backend, "client"), catalog.Default(), nil)
	var serr *models.StorageError
	if !errors.As(err, &serr) {
		t.Fatalf("expected StorageError, got %v", err)
	}
}

func TestSetPreferencesPersist(t *testing.T) {
	st, backend, rec := testState(t)
	ctx := context.Background()

	if err := st.SetTheme(ctx, models.ThemeTwilightGlow); err != nil {
		t.Fatalf("SetTheme: %v", err)
	}
	if err := st.SetLandingLayout(ctx, models.LandingCustom); err != nil {
		t.Fatalf("SetLandingLayout: %v", err)
	}
	if err := st.SetProductLayout(ctx, models.ProductMasonry); err != nil {
		t.Fatalf("SetProductLayout: %v", err)
	}
	if n := len(rec.Drain()); n != 3 {
		t.Errorf("toasts: got %d, want 3", n)
	}

	// Scalars are stored raw.
	if v, _, _ := backend.Get(ctx, "client:theme"); v != models.ThemeTwilightGlow {
		t.Errorf("stored theme: got %q", v)
	}

	again := reopen(t, backend)
	if again.Theme() != models.ThemeTwilightGlow || again.LandingLayout() != models.LandingCustom || again.ProductLayout() != models.ProductMasonry {
		t.Errorf("reloaded preferences: %q %q %q", again.Theme(), again.LandingLayout(), again.ProductLayout())
	}
}

func TestSetPreferencesRejectUnknown(t *testing.T) {
	st, _, rec := testState(t)
	ctx := context.Background()

	var verr *models.ValidationError
	if err := st.SetTheme(ctx, "dark"); !errors.As(err, &verr) {
		t.Errorf("SetTheme: expected ValidationError, got %v", err)
	}
	var nerr *models.NotFoundError
	if err := st.SetTheme(ctx, models.CustomThemePrefix+"missing"); !errors.As(err, &nerr) {
		t.Errorf("SetTheme custom: expected NotFoundError, got %v", err)
	}
	if err := st.SetLandingLayout(ctx, "sideways"); !errors.As(err, &verr) {
		t.Errorf("SetLandingLayout: expected ValidationError, got %v", err)
	}
	if err := st.SetProductLayout(ctx, "pile"); !errors.As(err, &verr) {
		t.Errorf("SetProductLayout: expected ValidationError, got %v", err)
	}
	if st.Theme() != models.DefaultTheme {
		t.Errorf("theme changed: %q", st.Theme())
	}
	for _, toast := range rec.Drain() {
		if toast.Variant != notify.VariantDestructive {
			t.Errorf("rejection toast %q should be destructive", toast.Title)
		}
	}
}

func TestSetThemeWriteFailureKeepsState(t *testing.T) {
	st, backend, _ := testState(t)
	backend.failSet = true

	err := st.SetTheme(context.Background(), models.ThemeDarkNebula)
	var serr *models.StorageError
	if !errors.As(err, &serr) {
		t.Fatalf("expected StorageError, got %v", err)
	}
	if !errors.Is(err, errDiskFull) {
		t.Error("StorageError should unwrap to the backend error")
	}
	if st.Theme() != models.DefaultTheme {
		t.Errorf("theme changed despite failed write: %q", st.Theme())
	}
}

func TestSurfaceLookup(t *testing.T) {
	st, _, _ := testState(t)

	for _, name := range Surfaces {
		s, err := st.Surface(name)
		if err != nil || s.Name() != name {
			t.Errorf("Surface(%s): %v", name, err)
		}
	}
	if _, err := ParseSurface("checkout"); err == nil {
		t.Error("ParseSurface should reject unknown names")
	}
}

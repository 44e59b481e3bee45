package persist

// Stable storage keys. They match the keys the storefront has always used
// so existing data keeps loading.
const (
	KeyCartItems           = "cartItems"
	KeyWishlistItems       = "wishlistItems"
	KeyTheme               = "theme"
	KeyLandingLayout       = "landingLayout"
	KeyProductLayout       = "productLayout"
	KeyCustomLayout        = "customLayout"
	KeySavedCustomLayouts  = "savedCustomLayouts"
	KeyProductViewLayout   = "productViewLayout"
	KeySavedProductLayouts = "savedProductLayouts"
	KeyCustomThemes        = "customThemes"
)

// AllKeys lists every key the storefront writes.
var AllKeys = []string{
	KeyCartItems, KeyWishlistItems, KeyTheme, KeyLandingLayout, KeyProductLayout,
	KeyCustomLayout, KeySavedCustomLayouts, KeyProductViewLayout,
	KeySavedProductLayouts, KeyCustomThemes,
}

// Package router sets up all HTTP routes and middleware chains for the
// storefront. It organizes routes into the JSON API and rendered pages,
// both scoped to the client named by the session cookie.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/session"
	"storefront/web"
)

// Options carries the middleware settings that vary per deployment.
type Options struct {
	// Secure marks cookies HTTPS-only.
	Secure bool
	// Limiter rate-limits API writes. Nil disables limiting.
	Limiter *middleware.RateLimiter
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessions *session.Manager, api *handlers.API, opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.SecureHeaders)

	// Health check: no client, no CSRF.
	r.Get("/health", healthHandler)

	// Embedded stylesheet for rendered pages.
	r.Handle("/static/*", http.StripPrefix("/static/", staticHandler()))

	r.Group(func(r chi.Router) {
		r.Use(middleware.LoadClient(sessions))
		r.Use(middleware.Logger)
		r.Use(middleware.NewCSRF(opts.Secure))

		// Rendered layouts.
		r.Get("/pages/{surface}", api.Page)

		r.Route("/api", func(r chi.Router) {
			if opts.Limiter != nil {
				r.Use(opts.Limiter.Middleware)
			}

			// Catalog
			r.Get("/products", api.Products)
			r.Get("/products/featured", api.Featured)
			r.Get("/products/{id}", api.Product)
			r.Get("/categories", api.Categories)

			// Client state and preferences
			r.Get("/state", api.State)
			r.Delete("/state", api.ResetState)
			r.Put("/preferences/{key}", api.SetPreference)

			// Cart
			r.Route("/cart", func(r chi.Router) {
				r.Get("/", api.Cart)
				r.Post("/", api.CartAdd)
				r.Patch("/{productId}", api.CartUpdate)
				r.Delete("/{productId}", api.CartRemove)
			})

			// Wishlist
			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", api.Wishlist)
				r.Post("/", api.WishlistAdd)
				r.Delete("/{productId}", api.WishlistRemove)
				r.Post("/{productId}/move-to-cart", api.WishlistMove)
			})

			r.Post("/checkout", api.Checkout)

			// Themes
			r.Route("/themes", func(r chi.Router) {
				r.Get("/", api.Themes)
				r.Post("/", api.ThemeCreate)
				r.Get("/active.css", api.ThemeCSS)
				r.Delete("/{id}", api.ThemeDelete)
				r.Post("/{id}/apply", api.ThemeApply)
			})

			// Layout surfaces
			r.Route("/layouts/{surface}", func(r chi.Router) {
				r.Get("/", api.Layout)
				r.Post("/edit", api.LayoutEdit)
				r.Post("/save", api.LayoutSave)
				r.Post("/discard", api.LayoutDiscard)

				r.Post("/elements", api.ElementAdd)
				r.Put("/elements", api.ElementsImport)
				r.Delete("/elements/{id}", api.ElementRemove)
				r.Get("/export", api.ElementsExport)
				r.Post("/reorder", api.Reorder)

				r.Post("/drag/start", api.DragStart)
				r.Post("/drag/over", api.DragOver)
				r.Post("/drag/end", api.DragEnd)

				r.Route("/named", func(r chi.Router) {
					r.Get("/", api.NamedList)
					r.Post("/", api.NamedCreate)
					r.Post("/{id}/load", api.NamedLoad)
					r.Delete("/{id}", api.NamedDelete)
				})
			})
		})
	})

	return r
}

// staticHandler serves the embedded assets with a one-day cache lifetime.
func staticHandler() http.Handler {
	files := http.FileServerFS(web.StaticFS())
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=86400")
		files.ServeHTTP(w, r)
	})
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// Package web provides the embedded static assets of the storefront pages.
// Rendered layouts link the stylesheet served from /static/.
package web

import (
	"embed"
	"io/fs"
)

//go:embed all:static
var staticFS embed.FS

// StaticFS returns the web/static/ tree rooted at its top directory.
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

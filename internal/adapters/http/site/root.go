// Package site serves the embedded static assets used by the form pages.
package site

import (
	"context"
	"net/http"
)

// Prefix is the URL path the assets are mounted under.
const Prefix = "/static/"

// Register attaches the static asset routes to mux.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("GET "+Prefix, NewAssetsHandler())
}

// NewAssetsHandler returns a handler serving the embedded assets with a
// long-lived cache header.
func NewAssetsHandler() http.Handler {
	files := http.StripPrefix(Prefix, http.FileServer(FS()))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		files.ServeHTTP(w, r)
	})
}

// Package main: HTTP route registration.
//
// initRoutes, API endpoint'lerini ve gömülü frontend'i mux'a bağlar.
package main

import (
	"net/http"

	"github.com/akinalp/partfinder/handlers"
)

// initRoutes, tüm endpoint'leri mux'a bağlar.
//
// "GET /api/search/{$}" kodsuz isteği de search handler'a düşürür;
// böylece boş kod 404 yerine 400 döner.
// "/" en genel pattern'dir: API ile eşleşmeyen her GET frontend'e gider.
func initRoutes(mux *http.ServeMux, h *Handlers) {
	mux.HandleFunc("GET /api/health", handlers.Health)

	// Search
	mux.HandleFunc("GET /api/search/{$}", h.Search.Search)
	mux.HandleFunc("GET /api/search/{code}", h.Search.Search)

	// Bilinmeyen API path'leri frontend'e düşmez
	mux.HandleFunc("GET /api/", handlers.NotFound)

	// Frontend (SPA fallback)
	mux.Handle("GET /", h.Frontend)
}

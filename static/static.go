// Package static, frontend build çıktısını binary'ye gömer.
//
// dist/ içindeki tek sayfalık arama formu (index.html + assets) Go derleyicisi
// tarafından binary'ye gömülür; ayrı bir web server'a gerek kalmaz.
// API dışındaki bilinmeyen path'ler index.html'e düşer (SPA fallback).
package static

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"path"
	"strings"
)

// FrontendFS, dist/ dizinindeki frontend dosyalarını içerir.
// "all:" prefix'i nokta ile başlayan dosyaları da dahil eder.
//
//go:embed all:dist
var FrontendFS embed.FS

// Handler, gömülü frontend'i SPA fallback ile servis eden handler döner.
func Handler() (http.Handler, error) {
	dist, err := fs.Sub(FrontendFS, "dist")
	if err != nil {
		return nil, fmt.Errorf("frontend dist not embedded: %w", err)
	}

	index, err := fs.ReadFile(dist, "index.html")
	if err != nil {
		return nil, fmt.Errorf("frontend index.html missing: %w", err)
	}

	fileServer := http.FileServer(http.FS(dist))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")

		if name != "" && name != "index.html" {
			if info, err := fs.Stat(dist, name); err == nil && !info.IsDir() {
				fileServer.ServeHTTP(w, r)
				return
			}
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(index)
	}), nil
}

// Package handlers, HTTP request/response işlemlerini yönetir.
//
// Handler "ince" (thin) olmalı:
// 1. Request'ten parametreyi al
// 2. Service katmanını çağır
// 3. Sonucu HTTP response olarak döndür
//
// Handler ASLA iş mantığı içermez. Hata → status eşlemesi pkg.Error'da yapılır.
package handlers

import (
	"fmt"
	"net/http"

	"github.com/akinalp/partfinder/middleware"
	"github.com/akinalp/partfinder/pkg"
	"github.com/akinalp/partfinder/pkg/ratelimit"
	"github.com/akinalp/partfinder/services"
	"github.com/sirupsen/logrus"
)

// SearchHandler, parça arama endpoint'ini yöneten struct.
type SearchHandler struct {
	searchService services.SearchService
	limiter       *ratelimit.RateLimiter
	log           logrus.FieldLogger
}

// NewSearchHandler, constructor.
// limiter: nil ise rate limiting devre dışı kalır.
func NewSearchHandler(searchService services.SearchService, limiter *ratelimit.RateLimiter, log logrus.FieldLogger) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		limiter:       limiter,
		log:           log.WithField("component", "search"),
	}
}

// Search godoc
// GET /api/search/{code}
//
// 200 {items} | 400 boş kod | 429 limit | 502 tedarikçi iş hatası veya 401 |
// <tedarikçi status> diğer transport hataları | 500 beklenmeyen.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	if h.limiter != nil {
		ip := ratelimit.ExtractIP(r)
		if !h.limiter.Allow(ip) {
			retryAfter := h.limiter.RetryAfterSeconds(ip)
			w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
			pkg.Error(w, pkg.TooManyRequests(fmt.Sprintf("too many searches, please try again in %s",
				ratelimit.FormatRetryMessage(retryAfter))))
			return
		}
	}

	result, err := h.searchService.Search(r.Context(), r.PathValue("code"))
	if err != nil {
		status := pkg.StatusOf(err)
		if status >= http.StatusInternalServerError {
			h.log.WithError(err).WithFields(logrus.Fields{
				"request_id": middleware.RequestIDFromContext(r.Context()),
				"status":     status,
			}).Error("search failed")
		}
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, result)
}

// Health godoc
// GET /api/health
func Health(w http.ResponseWriter, r *http.Request) {
	pkg.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// NotFound, eşleşmeyen /api/ path'leri için JSON 404 döner.
func NotFound(w http.ResponseWriter, r *http.Request) {
	pkg.ErrorWithMessage(w, http.StatusNotFound, "Not found")
}

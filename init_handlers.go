// Package main: Handler katmanı başlatma.
//
// initHandlers, HTTP handler'larını oluşturur.
// Handler'lar "thin" dir, sadece HTTP parse + service call + response write.
package main

import (
	"fmt"
	"net/http"

	"github.com/akinalp/partfinder/handlers"
	"github.com/akinalp/partfinder/static"
	"github.com/sirupsen/logrus"
)

// Handlers, tüm handler instance'larını tutan container struct.
type Handlers struct {
	Search   *handlers.SearchHandler
	Frontend http.Handler
}

// initHandlers, handler'ları service ve rate limiter dependency'leri ile oluşturur.
func initHandlers(svcs *Services, limiters *RateLimiters, log logrus.FieldLogger) (*Handlers, error) {
	frontend, err := static.Handler()
	if err != nil {
		return nil, fmt.Errorf("failed to load frontend: %w", err)
	}

	return &Handlers{
		Search:   handlers.NewSearchHandler(svcs.Search, limiters.Search, log),
		Frontend: frontend,
	}, nil
}

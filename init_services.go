// Package main: Service katmanı başlatma.
//
// initServices, service implementasyonlarını oluşturur.
// Her service, ihtiyaç duyduğu repository interface'lerini constructor injection ile alır.
//
// Sıralama: tokenService → searchService (search, token'a bağımlı).
package main

import (
	"github.com/akinalp/partfinder/config"
	"github.com/akinalp/partfinder/pkg/ratelimit"
	"github.com/akinalp/partfinder/services"
	"github.com/sirupsen/logrus"
)

// Services, tüm service instance'larını tutan container struct.
type Services struct {
	Token  services.TokenService
	Search services.SearchService
}

// RateLimiters, rate limiter instance'larını tutan container.
// Search nil olabilir, SEARCH_RATE_LIMIT=0 ise limit kapalıdır.
type RateLimiters struct {
	Search *ratelimit.RateLimiter
}

// Stop, cleanup goroutine'lerini durdurur.
func (l *RateLimiters) Stop() {
	if l.Search != nil {
		l.Search.Stop()
	}
}

// initServices, tüm service'leri ve rate limiter'ları oluşturur.
func initServices(repos *Repositories, cfg *config.Config, log logrus.FieldLogger) (*Services, *RateLimiters) {
	tokenService := services.NewTokenService(
		repos.Credential,
		repos.Supplier,
		cfg.Nirax.Login,
		cfg.Nirax.Password,
		log,
	)
	searchService := services.NewSearchService(tokenService, repos.Supplier, log)

	limiters := &RateLimiters{}
	if cfg.RateLimit.Searches > 0 {
		limiters.Search = ratelimit.NewRateLimiter(cfg.RateLimit.Searches, cfg.RateLimit.Window)
	}

	return &Services{
		Token:  tokenService,
		Search: searchService,
	}, limiters
}

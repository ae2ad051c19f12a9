// Package ratelimit: IP bazlı arama rate limiting.
//
// Her arama isteği tedarikçi API'sine bir çağrı demek; tek bir client'ın
// tedarikçi hesabının kotasını tüketmesini engellemek için IP başına
// sabit pencere (fixed window) sayacı tutulur.
//
// Tasarım:
// - Her IP için pencere başlangıcı + sayaç.
// - Pencere içinde limit aşılırsa istek reddedilir (caller 429 döner).
// - Background goroutine süresi dolmuş bucket'ları temizler (memory leak engeli).
//
// pkg/ratelimit hiçbir proje içi pakete bağımlı değildir (leaf dependency).
package ratelimit

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// bucket, bir IP adresi için istek sayacı ve pencere başlangıcı tutar.
type bucket struct {
	count       int
	windowStart time.Time
}

// RateLimiter, IP bazlı rate limiter.
//
// Kullanım:
//
//	limiter := NewRateLimiter(60, time.Minute)
//	defer limiter.Stop()
//	if !limiter.Allow(ip) { return 429 }
type RateLimiter struct {
	mu          sync.RWMutex
	buckets     map[string]*bucket
	maxRequests int
	window      time.Duration
	now         func() time.Time
	stopCleanup chan struct{}
	stopOnce    sync.Once
}

// NewRateLimiter, yeni rate limiter oluşturur ve arka plan temizleme
// goroutine'ini başlatır.
//
// maxRequests: Pencere başına izin verilen istek (ör: 60).
// window: Pencere süresi (ör: time.Minute → dakikada 60 arama).
func NewRateLimiter(maxRequests int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		buckets:     make(map[string]*bucket),
		maxRequests: maxRequests,
		window:      window,
		now:         time.Now,
		stopCleanup: make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Allow, verilen IP'nin yeni bir isteğine izin verilip verilmediğini söyler.
// Her çağrı sayacı artırır.
func (rl *RateLimiter) Allow(ip string) bool {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, exists := rl.buckets[ip]
	if !exists {
		rl.buckets[ip] = &bucket{count: 1, windowStart: now}
		return true
	}

	// Pencere dolmuşsa yenisini başlat
	if now.Sub(b.windowStart) >= rl.window {
		b.count = 1
		b.windowStart = now
		return true
	}

	b.count++
	return b.count <= rl.maxRequests
}

// RetryAfterSeconds, kalan bekleme süresini saniye cinsinden döner.
// HTTP Retry-After header değeri olarak kullanılır.
func (rl *RateLimiter) RetryAfterSeconds(ip string) int {
	rl.mu.RLock()
	defer rl.mu.RUnlock()

	b, exists := rl.buckets[ip]
	if !exists {
		return 0
	}

	remaining := rl.window - rl.now().Sub(b.windowStart)
	if remaining <= 0 {
		return 0
	}
	return int(remaining.Seconds()) + 1 // +1 yuvarlama, client tam süreyi beklesin
}

// Stop, temizleme goroutine'ini durdurur. Birden fazla çağrı güvenlidir.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCleanup) })
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(60 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCleanup:
			return
		}
	}
}

// cleanup, penceresi geçmiş tüm bucket'ları siler.
func (rl *RateLimiter) cleanup() {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, b := range rl.buckets {
		if now.Sub(b.windowStart) >= rl.window {
			delete(rl.buckets, ip)
		}
	}
}

// ExtractIP, HTTP request'ten client IP adresini çıkarır.
//
// Öncelik sırası:
// 1. X-Forwarded-For header (reverse proxy arkasındaysa, ilk IP)
// 2. X-Real-IP header (nginx gibi proxy'ler ekler)
// 3. RemoteAddr (doğrudan bağlantı)
func ExtractIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// FormatRetryMessage, kalan süreyi okunabilir formata çevirir.
// Örn: 120 → "2 minute(s)", 45 → "45 second(s)"
func FormatRetryMessage(seconds int) string {
	if seconds >= 60 {
		return fmt.Sprintf("%d minute(s)", seconds/60)
	}
	return fmt.Sprintf("%d second(s)", seconds)
}

// Package config, uygulamanın tüm konfigürasyonunu merkezi olarak yönetir.
// Environment variable'lardan okur, .env dosyasını da destekler.
//
// Config struct'ı tüm ayarları tek bir yerde toplar, böylece
// her yerde ayrı ayrı os.Getenv() çağırmak yerine tek bir Config nesnesi taşırız.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultNiraxBaseURL, Nirax cross API v3 adresi.
const DefaultNiraxBaseURL = "https://web.nirax.ru/cross/api/v3"

// Config, uygulamanın tüm konfigürasyon değerlerini taşır.
// Her alt bölüm ayrı bir struct, her struct tek bir concern'ü temsil eder.
type Config struct {
	Server    ServerConfig
	Nirax     NiraxConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig, HTTP server ayarları.
type ServerConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string // CORS, "*" tüm origin'lere izin verir
}

// NiraxConfig, tedarikçi (upstream) API ayarları.
type NiraxConfig struct {
	Login    string // Tedarikçi hesabı, GİZLİ TUTULMALI
	Password string
	BaseURL  string
	Timeout  time.Duration // Her upstream çağrısı için sabit timeout
}

// RateLimitConfig, arama endpoint'i için IP bazlı limit.
type RateLimitConfig struct {
	Searches int           // Pencere başına izin verilen arama sayısı, 0 = kapalı
	Window   time.Duration
}

// LogConfig, logrus ayarları.
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // text veya json
}

// Load, environment variable'lardan Config oluşturur.
// .env dosyası varsa önce onu yükler (development kolaylığı için).
//
// NIRAX_LOGIN ve NIRAX_PASSWORD zorunludur, eksikse uygulama başlamamalı.
func Load() (*Config, error) {
	// .env dosyası yoksa hata vermez, sessizce devam eder.
	_ = godotenv.Load()

	port, err := getInt("PORT", 4000)
	if err != nil {
		return nil, err
	}

	timeoutSec, err := getInt("NIRAX_TIMEOUT_SECONDS", 10)
	if err != nil {
		return nil, err
	}
	if timeoutSec <= 0 {
		return nil, fmt.Errorf("invalid NIRAX_TIMEOUT_SECONDS: must be positive")
	}

	searches, err := getInt("SEARCH_RATE_LIMIT", 60)
	if err != nil {
		return nil, err
	}

	windowSec, err := getInt("SEARCH_RATE_WINDOW_SECONDS", 60)
	if err != nil {
		return nil, err
	}

	login := getEnv("NIRAX_LOGIN", "")
	password := getEnv("NIRAX_PASSWORD", "")
	if login == "" || password == "" {
		return nil, fmt.Errorf("missing NIRAX_LOGIN or NIRAX_PASSWORD environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           port,
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		},
		Nirax: NiraxConfig{
			Login:    login,
			Password: password,
			BaseURL:  strings.TrimRight(getEnv("NIRAX_BASE_URL", DefaultNiraxBaseURL), "/"),
			Timeout:  time.Duration(timeoutSec) * time.Second,
		},
		RateLimit: RateLimitConfig{
			Searches: searches,
			Window:   time.Duration(windowSec) * time.Second,
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}

	return cfg, nil
}

// Addr, HTTP server'ın dinleyeceği adresi döner (ör: "0.0.0.0:4000").
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv, environment variable'ı okur, yoksa fallback değeri döner.
func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

// splitList, virgülle ayrılmış listeyi boşlukları temizleyerek böler.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

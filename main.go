// Package main, partfinder backend uygulamasının giriş noktasıdır.
//
// Bu dosyanın görevi, Dependency Injection "wire-up":
//  1. Config'i yükle
//  2. Logger'ı kur
//  3. Repository'leri oluştur (init_repos.go)
//  4. Service'leri ve rate limiter'ları oluştur (init_services.go)
//  5. Handler'ları oluştur (init_handlers.go)
//  6. HTTP router'ı kur, route'ları bağla (init_routes.go)
//  7. CORS + middleware zinciri
//  8. HTTP Server'ı başlat
//  9. Graceful shutdown
//
// Global değişken YOK, her şey bu fonksiyonda oluşturulup birbirine bağlanıyor.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akinalp/partfinder/config"
	"github.com/akinalp/partfinder/middleware"
	"github.com/akinalp/partfinder/pkg/logging"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

func main() {
	// ─── 1. Config ───
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("[main] failed to load config")
	}

	// ─── 2. Logger ───
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		logrus.WithError(err).Fatal("[main] failed to configure logger")
	}
	log := logger.WithField("component", "main")
	log.WithFields(logrus.Fields{
		"port":     cfg.Server.Port,
		"base_url": cfg.Nirax.BaseURL,
		"timeout":  cfg.Nirax.Timeout.String(),
	}).Info("partfinder server starting")

	// ─── 3-5. Repository → Service → Handler ───
	repos := initRepositories(cfg, logger)
	svcs, limiters := initServices(repos, cfg, logger)

	h, err := initHandlers(svcs, limiters, logger)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize handlers")
	}

	// ─── 6. HTTP Router ───
	mux := http.NewServeMux()
	initRoutes(mux, h)

	// ─── 7. CORS + Middleware ───
	//
	// Zincir (dıştan içe): RequestLogger → Recover → CORS → mux.
	// RequestLogger en dışta: panic'e düşen istek de request ID ile loglanır.
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader, "Retry-After"},
	})

	var handler http.Handler = corsHandler.Handler(mux)
	handler = middleware.Recover(logger)(handler)
	handler = middleware.RequestLogger(logger)(handler)

	// ─── 8. HTTP Server ───
	//
	// WriteTimeout, upstream timeout'unun (login + arama) üstünde olmalı;
	// aksi halde yavaş tedarikçi yanıtı client'a hiç ulaşmaz.
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 3*cfg.Nirax.Timeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ─── 9. Graceful Shutdown ───
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Infof("server listening on %s", cfg.Server.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server error")
		}
	}()

	<-done
	log.Info("shutting down...")

	// Önce yeni istekleri durdur ve mevcutların bitmesini bekle (5sn),
	// sonra arka plan goroutine'lerini ve token'ları temizle.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("forced shutdown")
	}

	limiters.Stop()
	svcs.Token.Invalidate()

	log.Info("server stopped gracefully")
}

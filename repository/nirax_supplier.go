package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/akinalp/partfinder/models"
	"github.com/akinalp/partfinder/pkg"
	"github.com/sirupsen/logrus"
)

// upstreamFailedMessage, tedarikçi mesaj vermediğinde client'a gösterilen metin.
const upstreamFailedMessage = "Nirax API request failed"

// maxResponseBytes, tek bir yanıt için okunacak üst sınır.
const maxResponseBytes = 10 << 20

// niraxSupplierRepo, SupplierRepository interface'inin HTTP implementasyonu.
type niraxSupplierRepo struct {
	baseURL string
	client  *http.Client
	log     logrus.FieldLogger
}

// NewNiraxSupplierRepo, constructor.
// timeout: login, refresh ve arama dahil HER çağrıya uygulanan sabit süre.
func NewNiraxSupplierRepo(baseURL string, timeout time.Duration, log logrus.FieldLogger) SupplierRepository {
	return &niraxSupplierRepo{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		log:     log.WithField("component", "nirax"),
	}
}

func (r *niraxSupplierRepo) Login(ctx context.Context, login, password string) (*models.SupplierAuthResponse, error) {
	var resp models.SupplierAuthResponse
	body := models.SupplierLoginRequest{Login: login, Password: password}
	if err := r.do(ctx, http.MethodPost, "/auth", "", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (r *niraxSupplierRepo) Refresh(ctx context.Context, refreshToken string) (*models.SupplierAuthResponse, error) {
	var resp models.SupplierAuthResponse
	body := models.SupplierRefreshRequest{RefreshToken: refreshToken}
	if err := r.do(ctx, http.MethodPost, "/auth/refresh", "", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SearchByCode godoc
// GET {base}/parts/by-searchcode/{code}
// code path segment olarak escape edilir ("/" dahil).
func (r *niraxSupplierRepo) SearchByCode(ctx context.Context, accessToken, code string) (*models.SupplierSearchResponse, error) {
	var resp models.SupplierSearchResponse
	path := "/parts/by-searchcode/" + url.PathEscape(code)
	if err := r.do(ctx, http.MethodGet, path, accessToken, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// do, tek bir JSON isteği gönderir ve 2xx yanıtı out'a decode eder.
//
// Hata sınıfları:
//   - yanıt yok (network, timeout, iptal) → pkg.Upstream(0, ...)
//   - 2xx dışı → pkg.Upstream(status, errorMessage || message || genel mesaj)
//   - 2xx ama JSON değil → ErrMalformedResponse
func (r *niraxSupplierRepo) do(ctx context.Context, method, path, bearer string, payload, out any) error {
	var reqBody io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	start := time.Now()
	resp, err := r.client.Do(req)
	if err != nil {
		r.log.WithError(err).WithField("path", path).Error("request failed")
		return pkg.Upstream(0, upstreamFailedMessage, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return pkg.Upstream(0, upstreamFailedMessage, err)
	}

	r.log.WithFields(logrus.Fields{
		"method":   method,
		"path":     path,
		"status":   resp.StatusCode,
		"duration": time.Since(start).String(),
	}).Debug("upstream call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := upstreamFailedMessage
		var errBody models.SupplierErrorBody
		if json.Unmarshal(raw, &errBody) == nil {
			switch {
			case errBody.ErrorMessage != "":
				message = errBody.ErrorMessage
			case errBody.Message != "":
				message = errBody.Message
			}
		}
		r.log.WithFields(logrus.Fields{"path": path, "status": resp.StatusCode}).Errorf("Nirax API error: %s", message)
		return pkg.Upstream(resp.StatusCode, message, nil)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

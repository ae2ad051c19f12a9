// Package pkg, projede paylaşılan utility'leri barındırır.
// Bu dosya domain-level error tanımlarını içerir.
//
// Sabit error değişkenleri sayesinde karşılaştırma string yerine referans ile yapılır:
//
//	if errors.Is(err, pkg.ErrUpstream) { ... }
package pkg

import (
	"errors"
	"fmt"
)

// Domain-level error'lar.
// Handler katmanı bu error'ları HTTP status code'larına map'ler.
var (
	ErrBadRequest      = errors.New("bad request")
	ErrUpstream        = errors.New("upstream failure")
	ErrTooManyRequests = errors.New("too many requests")
	ErrInternal        = errors.New("internal error")
)

// APIError, client'a gösterilebilecek mesajı taşıyan error.
//
// Kind sentinel error'lardan biridir (errors.Is ile eşleşir).
// Status sadece ErrUpstream için anlamlıdır: tedarikçinin döndüğü HTTP
// status'u, yanıt hiç alınamadıysa 0.
type APIError struct {
	Kind    error
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap, hem Kind'ı hem de alttaki hatayı zincire ekler.
func (e *APIError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// BadRequest, input doğrulama hatası oluşturur (HTTP 400).
func BadRequest(message string) error {
	return &APIError{Kind: ErrBadRequest, Message: message}
}

// Upstream, tedarikçi API hatası oluşturur.
// status: upstream HTTP status (401 dışarıya 502 olarak yansır).
func Upstream(status int, message string, cause error) error {
	return &APIError{Kind: ErrUpstream, Status: status, Message: message, Err: cause}
}

// TooManyRequests, rate limit hatası oluşturur (HTTP 429).
func TooManyRequests(message string) error {
	return &APIError{Kind: ErrTooManyRequests, Message: message}
}

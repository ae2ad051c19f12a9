package pkg

import (
	"encoding/json"
	"errors"
	"net/http"
)

// InternalErrorMessage, beklenmeyen hatalarda client'a giden tek mesaj.
// İç detaylar sadece log'a yazılır.
const InternalErrorMessage = "Internal server error"

// MessageResponse, hata yanıtlarının formatı: {"message": "..."}.
// Frontend her hata için aynı yapıyı bekler.
type MessageResponse struct {
	Message string `json:"message"`
}

// JSON, payload'ı olduğu gibi JSON olarak yazar.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// Error, hata yanıtı gönderir.
// Domain error'ları otomatik olarak uygun HTTP status code'a çevrilir.
// Bilinmeyen hatalar 500 + genel mesaj olur, iç detay sızdırılmaz.
func Error(w http.ResponseWriter, err error) {
	ErrorWithMessage(w, StatusOf(err), MessageOf(err))
}

// ErrorWithMessage, özel mesajlı hata yanıtı gönderir.
func ErrorWithMessage(w http.ResponseWriter, status int, message string) {
	JSON(w, status, MessageResponse{Message: message})
}

// StatusOf, error'ın HTTP status karşılığını döner.
func StatusOf(err error) int {
	return mapErrorToStatus(err)
}

// MessageOf, client'a gösterilecek mesajı döner.
func MessageOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" && !errors.Is(apiErr.Kind, ErrInternal) {
		return apiErr.Message
	}
	return InternalErrorMessage
}

// mapErrorToStatus, domain error'ları HTTP status code'larına eşler.
//
// Upstream hatalarında tedarikçinin status'u aynen geçirilir, iki istisna ile:
//   - 401 → 502: Kimlik doğrulama token katmanının sorumluluğu, son kullanıcıya
//     "giriş yapmalısın" gibi görünmemeli.
//   - 0 (yanıt yok: network hatası, timeout) → 500.
func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrTooManyRequests):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrUpstream):
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			return http.StatusBadGateway
		}
		switch {
		case apiErr.Status == http.StatusUnauthorized:
			return http.StatusBadGateway
		case apiErr.Status < 100 || apiErr.Status > 599:
			return http.StatusInternalServerError
		default:
			return apiErr.Status
		}
	default:
		return http.StatusInternalServerError
	}
}

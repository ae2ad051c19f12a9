package repository

import (
	"context"
	"errors"

	"github.com/akinalp/partfinder/models"
)

// ErrMalformedResponse, tedarikçi 2xx döndü ama body beklenen JSON değil.
var ErrMalformedResponse = errors.New("malformed supplier response")

// SupplierRepository, tedarikçi (Nirax) API'sine yapılan üç uzak çağrı.
//
// Sadece transport: zarfları decode edip döner, "status" alanını yorumlamaz.
// 2xx dışı yanıtlar ve network hataları *pkg.APIError (Kind: pkg.ErrUpstream) olarak döner.
type SupplierRepository interface {
	Login(ctx context.Context, login, password string) (*models.SupplierAuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*models.SupplierAuthResponse, error)
	SearchByCode(ctx context.Context, accessToken, code string) (*models.SupplierSearchResponse, error)
}

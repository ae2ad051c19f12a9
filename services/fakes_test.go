package services

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/akinalp/partfinder/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// fakeSupplier, SupplierRepository'nin test implementasyonu.
// Ayarlanmamış fonksiyonlar çağrılırsa test başarısız olur.
type fakeSupplier struct {
	t *testing.T

	loginFn   func(ctx context.Context, login, password string) (*models.SupplierAuthResponse, error)
	refreshFn func(ctx context.Context, refreshToken string) (*models.SupplierAuthResponse, error)
	searchFn  func(ctx context.Context, accessToken, code string) (*models.SupplierSearchResponse, error)

	logins    atomic.Int32
	refreshes atomic.Int32
	searches  atomic.Int32
}

func (f *fakeSupplier) Login(ctx context.Context, login, password string) (*models.SupplierAuthResponse, error) {
	f.logins.Add(1)
	if f.loginFn == nil {
		f.t.Errorf("unexpected Login call")
		return nil, context.Canceled
	}
	return f.loginFn(ctx, login, password)
}

func (f *fakeSupplier) Refresh(ctx context.Context, refreshToken string) (*models.SupplierAuthResponse, error) {
	f.refreshes.Add(1)
	if f.refreshFn == nil {
		f.t.Errorf("unexpected Refresh call")
		return nil, context.Canceled
	}
	return f.refreshFn(ctx, refreshToken)
}

func (f *fakeSupplier) SearchByCode(ctx context.Context, accessToken, code string) (*models.SupplierSearchResponse, error) {
	f.searches.Add(1)
	if f.searchFn == nil {
		f.t.Errorf("unexpected SearchByCode call")
		return nil, context.Canceled
	}
	return f.searchFn(ctx, accessToken, code)
}

func (f *fakeSupplier) networkCalls() int32 {
	return f.logins.Load() + f.refreshes.Load() + f.searches.Load()
}

// fakeClock, elle ilerletilen saat.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1_700_000_000, 0)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// mintToken, verilen exp ile imzalı bir JWT üretir.
func mintToken(t *testing.T, exp time.Time, subject string) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": exp.Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func authOK(access, refresh string) *models.SupplierAuthResponse {
	return &models.SupplierAuthResponse{
		Status: models.SupplierStatusSuccess,
		Result: &models.SupplierTokens{AccessToken: access, RefreshToken: refresh},
	}
}

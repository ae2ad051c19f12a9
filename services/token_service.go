// Package services, business logic katmanını barındırır.
//
// Handler (HTTP) ile Repository (tedarikçi API + bellek store) arasında oturan katmandır.
// Service ASLA http.Request/Response bilmez, sadece domain modelleri alır/verir.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/akinalp/partfinder/models"
	"github.com/akinalp/partfinder/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// TokenExpirySkew, token'ın expiry'sinden düşülen güvenlik payı.
// Süresinin dolmasına 30 saniyeden az kalmış bir token asla dağıtılmaz.
const TokenExpirySkew = 30 * time.Second

// ErrSupplierAuth, login 2xx döndü ama kullanılabilir bir access token vermedi.
var ErrSupplierAuth = errors.New("failed to obtain Nirax access token")

// errInvalidRefresh, refresh 2xx döndü ama yanıt kullanılamaz.
var errInvalidRefresh = errors.New("invalid refresh response")

// authFlightKey, singleflight anahtarı, tek bir tedarikçi hesabı olduğu için sabit.
const authFlightKey = "supplier-auth"

// TokenService interface'i, tedarikçi oturumunun yaşam döngüsü.
// Arama tarafı refresh/login detaylarını hiç bilmez, sadece geçerli bir token ister.
type TokenService interface {
	// GetValidToken, şu an kullanılabilir bir access token döner.
	// Gerekirse önce refresh, o da olmazsa tam login dener.
	GetValidToken(ctx context.Context) (string, error)
	// Invalidate, store'u boşaltır; sonraki çağrı login ile başlar.
	Invalidate()
}

// tokenService, TokenService interface'inin implementasyonu.
//
// Durum makinesi: EMPTY / VALID / EXPIRED.
//   - VALID → EXPIRED sadece zamanla olur, timer yok: bir sonraki erişimde kontrol edilir.
//   - EXPIRED + refresh token → refresh dene; başarı → VALID, hata → EMPTY (store temizlenir) → login.
//   - EMPTY → koşulsuz login. Login hatası durumu EMPTY bırakır ve hata yukarı çıkar.
type tokenService struct {
	store    repository.CredentialRepository
	supplier repository.SupplierRepository
	login    string
	password string
	now      func() time.Time
	flight   singleflight.Group
	log      logrus.FieldLogger
}

// NewTokenService, constructor.
// login/password: config'ten gelen tedarikçi hesabı.
func NewTokenService(
	store repository.CredentialRepository,
	supplier repository.SupplierRepository,
	login, password string,
	log logrus.FieldLogger,
) TokenService {
	return newTokenService(store, supplier, login, password, log, time.Now)
}

func newTokenService(
	store repository.CredentialRepository,
	supplier repository.SupplierRepository,
	login, password string,
	log logrus.FieldLogger,
	now func() time.Time,
) *tokenService {
	return &tokenService{
		store:    store,
		supplier: supplier,
		login:    login,
		password: password,
		now:      now,
		log:      log.WithField("component", "token"),
	}
}

// GetValidToken, cache'teki token yeterince tazeyse network'e hiç çıkmadan döner.
//
// Aksi halde kimlik doğrulama zinciri singleflight içinde çalışır: aynı anda gelen
// ve token'ı bayat bulan istekler TEK bir refresh/login çağrısını paylaşır.
// Paylaşılan çağrı context.WithoutCancel ile koşar, bir isteğin iptali diğer
// bekleyenleri düşürmez. Süre sınırı upstream client'ın sabit timeout'udur.
func (s *tokenService) GetValidToken(ctx context.Context) (string, error) {
	if cred := s.store.Read(); cred.UsableAt(s.now(), TokenExpirySkew) {
		return cred.AccessToken, nil
	}

	flightCtx := context.WithoutCancel(ctx)
	ch := s.flight.DoChan(authFlightKey, func() (any, error) {
		// Önceki uçuş biz beklerken bitmiş olabilir.
		if cred := s.store.Read(); cred.UsableAt(s.now(), TokenExpirySkew) {
			return cred.AccessToken, nil
		}
		return s.authenticate(flightCtx)
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (s *tokenService) Invalidate() {
	s.store.Clear()
}

// refreshOutcome, refresh denemesinin açık sonucu.
// needsLogin true ise token boştur; err refresh'in neden başarısız olduğunu taşır
// (refresh token hiç yoksa nil).
type refreshOutcome struct {
	token      string
	needsLogin bool
	err        error
}

// authenticate, iki kademeli zincir: önce refresh, gerekirse tam login.
func (s *tokenService) authenticate(ctx context.Context) (string, error) {
	outcome := s.refresh(ctx)
	if !outcome.needsLogin {
		return outcome.token, nil
	}

	if outcome.err != nil {
		s.log.WithError(outcome.err).Warn("refresh token failed, obtaining new token")
	}
	return s.loginWithCredentials(ctx)
}

// refresh, store'daki refresh token ile yeni access token alır.
//
// Herhangi bir hata (network, 2xx dışı, bozuk yanıt, başarısız status) store'u
// TAMAMEN temizler, her iki token da düşer, bir sonraki deneme login'den geçer.
func (s *tokenService) refresh(ctx context.Context) refreshOutcome {
	cred := s.store.Read()
	if cred.RefreshToken == "" {
		return refreshOutcome{needsLogin: true}
	}

	resp, err := s.supplier.Refresh(ctx, cred.RefreshToken)
	if err == nil && !resp.OK() {
		err = errInvalidRefresh
	}
	if err != nil {
		s.store.Clear()
		return refreshOutcome{needsLogin: true, err: err}
	}

	// Yanıtta yeni refresh token yoksa eskisi korunur.
	refreshToken := resp.Result.RefreshToken
	if refreshToken == "" {
		refreshToken = cred.RefreshToken
	}

	token := resp.Result.AccessToken
	s.store.Write(models.Credential{
		AccessToken:  token,
		RefreshToken: refreshToken,
		ExpiresAt:    DecodeTokenExpiry(token),
	})
	s.log.Debug("access token refreshed")

	return refreshOutcome{token: token}
}

// loginWithCredentials, tedarikçi hesabı ile sıfırdan oturum açar.
// Hata bu istek için son noktadır, başka fallback yok.
func (s *tokenService) loginWithCredentials(ctx context.Context) (string, error) {
	resp, err := s.supplier.Login(ctx, s.login, s.password)
	if err != nil {
		return "", fmt.Errorf("supplier login: %w", err)
	}
	if !resp.OK() {
		return "", ErrSupplierAuth
	}

	token := resp.Result.AccessToken
	s.store.Write(models.Credential{
		AccessToken:  token,
		RefreshToken: resp.Result.RefreshToken,
		ExpiresAt:    DecodeTokenExpiry(token),
	})
	s.log.Info("logged in to supplier API")

	return token, nil
}

// segmentParser, sadece base64url segment çözmek için kullanılır; imza doğrulanmaz.
var segmentParser = jwt.NewParser(jwt.WithPaddingAllowed())

// DecodeTokenExpiry, access token'ın orta segmentindeki "exp" claim'ini okur.
//
// Segment yoksa, base64url değilse, JSON değilse veya exp yoksa/sıfırsa zero time
// döner, yani token zaten expire olmuş sayılır. Asla panic/error üretmez:
// bozuk bir token hiçbir koşulda geçerli kabul edilmemeli.
func DecodeTokenExpiry(token string) time.Time {
	parts := strings.Split(token, ".")
	if len(parts) < 2 || parts[1] == "" {
		return time.Time{}
	}

	payload, err := segmentParser.DecodeSegment(parts[1])
	if err != nil {
		return time.Time{}
	}

	var claims models.AccessTokenClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(time.Unix(0, 0)) {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}

package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/akinalp/partfinder/models"
	"github.com/akinalp/partfinder/pkg"
	"github.com/akinalp/partfinder/repository"
	"github.com/sirupsen/logrus"
)

const (
	searchCodeRequiredMessage = "Search code is required"
	unexpectedResponseMessage = "Unexpected response from Nirax API"
)

// SearchService, parça kodu ile tedarikçi kataloğunda arama.
type SearchService interface {
	Search(ctx context.Context, code string) (*models.SearchResult, error)
}

type searchService struct {
	tokens   TokenService
	supplier repository.SupplierRepository
	log      logrus.FieldLogger
}

// NewSearchService, constructor.
func NewSearchService(tokens TokenService, supplier repository.SupplierRepository, log logrus.FieldLogger) SearchService {
	return &searchService{
		tokens:   tokens,
		supplier: supplier,
		log:      log.WithField("component", "search"),
	}
}

// Search, kodu doğrular, geçerli token alır ve tedarikçide arar.
//
// Boş/sadece boşluk kod hiçbir network çağrısı yapılmadan reddedilir.
// Tedarikçi 200 dönüp status'u "success" değilse 502 + tedarikçinin mesajı.
// Sonuç boş olabilir, bu hata değildir.
func (s *searchService) Search(ctx context.Context, code string) (*models.SearchResult, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, pkg.BadRequest(searchCodeRequiredMessage)
	}

	token, err := s.tokens.GetValidToken(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := s.supplier.SearchByCode(ctx, token, code)
	if err != nil {
		if errors.Is(err, repository.ErrMalformedResponse) {
			return nil, pkg.Upstream(http.StatusBadGateway, unexpectedResponseMessage, err)
		}
		return nil, err
	}

	if resp.Status != models.SupplierStatusSuccess {
		message := resp.ErrorMessage
		if message == "" {
			message = unexpectedResponseMessage
		}
		return nil, pkg.Upstream(http.StatusBadGateway, message, nil)
	}

	items, err := models.NormalizeParts(resp.Result)
	if err != nil {
		return nil, pkg.Upstream(http.StatusBadGateway, unexpectedResponseMessage, err)
	}

	s.log.WithFields(logrus.Fields{"code": code, "items": len(items)}).Debug("search completed")
	return &models.SearchResult{Items: items}, nil
}

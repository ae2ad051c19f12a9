package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/akinalp/partfinder/handlers"
	"github.com/akinalp/partfinder/pkg/ratelimit"
	"github.com/akinalp/partfinder/repository"
	"github.com/akinalp/partfinder/services"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// niraxStub, tedarikçi API'sini taklit eden httptest server.
type niraxStub struct {
	server   *httptest.Server
	logins   atomic.Int32
	searches atomic.Int32
	lastCode atomic.Value

	// search, arama yanıtını yazar. nil ise boş sonuç döner.
	search func(w http.ResponseWriter, r *http.Request)
}

func newNiraxStub(t *testing.T) *niraxStub {
	t.Helper()
	stub := &niraxStub{}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("stub-secret"))
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth", func(w http.ResponseWriter, r *http.Request) {
		stub.logins.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"status":"success","result":{"accessToken":"`+token+`","refreshToken":"rt"}}`)
	})
	mux.HandleFunc("GET /parts/by-searchcode/{code}", func(w http.ResponseWriter, r *http.Request) {
		stub.searches.Add(1)
		stub.lastCode.Store(r.PathValue("code"))
		if r.Header.Get("Authorization") != "Bearer "+token {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if stub.search == nil {
			_, _ = io.WriteString(w, `{"status":"success","result":[]}`)
			return
		}
		stub.search(w, r)
	})

	stub.server = httptest.NewServer(mux)
	t.Cleanup(stub.server.Close)
	return stub
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// newTestMux, gerçek repository + service zinciriyle route'ları kurar.
func newTestMux(t *testing.T, stub *niraxStub, limiter *ratelimit.RateLimiter) *http.ServeMux {
	t.Helper()
	log := quietLogger()

	supplier := repository.NewNiraxSupplierRepo(stub.server.URL, 2*time.Second, log)
	tokens := services.NewTokenService(repository.NewMemoryCredentialRepo(), supplier, "user", "secret", log)
	search := services.NewSearchService(tokens, supplier, log)
	h := handlers.NewSearchHandler(search, limiter, log)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", handlers.Health)
	mux.HandleFunc("GET /api/search/{$}", h.Search)
	mux.HandleFunc("GET /api/search/{code}", h.Search)
	return mux
}

func doGet(mux http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestSearchReturnsNormalizedItems(t *testing.T) {
	stub := newNiraxStub(t)
	stub.search = func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"status":"success","result":[
			{"id":7,"dataSupplierArticleNumber":"A1","manufacturerDescription":"ACME","productDescription":"Filter"},
			{"id":"x","searchCode":"OC90","description":"Oil filter"}
		]}`)
	}
	mux := newTestMux(t, stub, nil)

	rec := doGet(mux, "/api/search/OC90")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"items":[
		{"id":7,"article":"A1","manufacturer":"ACME","name":"Filter"},
		{"id":"x","article":"OC90","manufacturer":"","name":"Oil filter"}
	]}`, rec.Body.String())
	assert.Equal(t, "OC90", stub.lastCode.Load())
}

func TestSearchTokenReusedAcrossRequests(t *testing.T) {
	stub := newNiraxStub(t)
	mux := newTestMux(t, stub, nil)

	for range 3 {
		rec := doGet(mux, "/api/search/4477")
		require.Equal(t, http.StatusOK, rec.Code)
	}
	assert.EqualValues(t, 1, stub.logins.Load())
	assert.EqualValues(t, 3, stub.searches.Load())
}

func TestSearchEmptyResult(t *testing.T) {
	stub := newNiraxStub(t)
	mux := newTestMux(t, stub, nil)

	rec := doGet(mux, "/api/search/NOPE")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"items":[]}`, rec.Body.String())
}

func TestSearchBlankCode(t *testing.T) {
	stub := newNiraxStub(t)
	mux := newTestMux(t, stub, nil)

	for _, target := range []string{"/api/search/%20%20", "/api/search/"} {
		rec := doGet(mux, target)
		require.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Equal(t, "Search code is required", decodeBody(t, rec)["message"])
	}
	assert.Zero(t, stub.logins.Load())
	assert.Zero(t, stub.searches.Load())
}

func TestSearchBusinessFailure(t *testing.T) {
	stub := newNiraxStub(t)
	stub.search = func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"status":"error","errorMessage":"Part catalog unavailable"}`)
	}
	mux := newTestMux(t, stub, nil)

	rec := doGet(mux, "/api/search/OC90")
	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "Part catalog unavailable", decodeBody(t, rec)["message"])
}

func TestSearchUpstreamUnauthorizedBecomesBadGateway(t *testing.T) {
	stub := newNiraxStub(t)
	stub.search = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"message":"token revoked"}`)
	}
	mux := newTestMux(t, stub, nil)

	rec := doGet(mux, "/api/search/OC90")
	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "token revoked", decodeBody(t, rec)["message"])
}

func TestSearchUpstreamStatusPassesThrough(t *testing.T) {
	stub := newNiraxStub(t)
	stub.search = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"errorMessage":"Unknown search code"}`)
	}
	mux := newTestMux(t, stub, nil)

	rec := doGet(mux, "/api/search/OC90")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Unknown search code", decodeBody(t, rec)["message"])
}

func TestSearchUnreachableUpstream(t *testing.T) {
	stub := newNiraxStub(t)
	mux := newTestMux(t, stub, nil)
	stub.server.Close()

	rec := doGet(mux, "/api/search/OC90")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Nirax API request failed", decodeBody(t, rec)["message"])
}

func TestSearchRateLimited(t *testing.T) {
	stub := newNiraxStub(t)
	limiter := ratelimit.NewRateLimiter(2, time.Minute)
	t.Cleanup(limiter.Stop)
	mux := newTestMux(t, stub, limiter)

	for range 2 {
		rec := doGet(mux, "/api/search/OC90")
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := doGet(mux, "/api/search/OC90")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.True(t, strings.HasPrefix(decodeBody(t, rec)["message"].(string), "too many searches"))
	assert.EqualValues(t, 2, stub.searches.Load())
}

func TestHealth(t *testing.T) {
	rec := doGet(http.HandlerFunc(handlers.Health), "/api/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestNotFound(t *testing.T) {
	rec := doGet(http.HandlerFunc(handlers.NotFound), "/api/unknown")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Not found"}`, rec.Body.String())
}

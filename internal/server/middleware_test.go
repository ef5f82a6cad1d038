package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	raw, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return raw
}

func echoUserHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(UserIDFromContext(r.Context())))
	})
}

func TestAuthMiddleware_ValidTokenSetsSubject(t *testing.T) {
	h := AuthMiddleware(testSecret, echoUserHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, testUserID))
	rr := httptest.NewRecorder()

	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, testUserID, rr.Body.String())
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	h := AuthMiddleware(testSecret, echoUserHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthMiddleware_WrongSecretRejected(t *testing.T) {
	h := AuthMiddleware(testSecret, echoUserHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "other-secret", testUserID))
	rr := httptest.NewRecorder()

	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthMiddleware_ExpiredTokenRejected(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   testUserID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})
	raw, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	h := AuthMiddleware(testSecret, echoUserHandler())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rr := httptest.NewRecorder()

	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthMiddleware_EmptySecretDisablesCheck(t *testing.T) {
	h := AuthMiddleware("", echoUserHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Body.String())
}

// --- metrics middleware ---

type spyMetrics struct {
	endpoints []string
	statuses  []int
	durations int
}

func (s *spyMetrics) IncRequestsTotal(endpoint string, status int) {
	s.endpoints = append(s.endpoints, endpoint)
	s.statuses = append(s.statuses, status)
}

func (s *spyMetrics) ObserveRequestDuration(_ string, _ time.Duration) { s.durations++ }
func (s *spyMetrics) IncCompletions(_, _ string)                      {}

func TestMetricsMiddleware_RecordsStatusAndDuration(t *testing.T) {
	spy := &spyMetrics{}
	h := MetricsMiddleware(spy, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/checkin/history", nil)
	rr := httptest.NewRecorder()

	h.ServeHTTP(rr, req)

	require.Len(t, spy.statuses, 1)
	assert.Equal(t, http.StatusNotFound, spy.statuses[0])
	assert.Equal(t, "/api/checkin/history", spy.endpoints[0])
	assert.Equal(t, 1, spy.durations)
}

func TestMetricsMiddleware_DefaultsTo200(t *testing.T) {
	spy := &spyMetrics{}
	h := MetricsMiddleware(spy, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.Len(t, spy.statuses, 1)
	assert.Equal(t, http.StatusOK, spy.statuses[0])
}

// --- router ---

func TestRouter_MethodFiltering(t *testing.T) {
	router := NewRouterProvider()
	router.Post("/api/checkin", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	routes := router.GetRoutes()
	require.Len(t, routes, 1)

	rr := httptest.NewRecorder()
	routes[0].Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/checkin", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)

	rr = httptest.NewRecorder()
	routes[0].Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/checkin", nil))
	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestHttpStatusBucket(t *testing.T) {
	assert.Equal(t, "2xx", httpStatusBucket(200))
	assert.Equal(t, "3xx", httpStatusBucket(301))
	assert.Equal(t, "4xx", httpStatusBucket(404))
	assert.Equal(t, "5xx", httpStatusBucket(503))
}

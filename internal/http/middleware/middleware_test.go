package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/freelance-ledger/internal/http/handlers/common"
	"github.com/ignatzorin/freelance-ledger/internal/models"
	"github.com/ignatzorin/freelance-ledger/internal/pkg/apperror"
	storecommon "github.com/ignatzorin/freelance-ledger/internal/repository/common"
)

type mockTokens struct {
	mock.Mock
}

func (m *mockTokens) ParseAccess(token string) (int64, error) {
	args := m.Called(token)
	return args.Get(0).(int64), args.Error(1)
}

type mockProfiles struct {
	mock.Mock
}

func (m *mockProfiles) FindProfile(ctx context.Context, id int64) (*models.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func newAuthRouter(tokens TokenParser, profiles ProfileFinder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/me", AuthMiddleware(tokens, profiles), func(c *gin.Context) {
		profile, err := common.CurrentProfile(c)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": profile.ID})
	})
	return r
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	r := newAuthRouter(new(mockTokens), new(mockProfiles))

	req, _ := http.NewRequest("GET", "/me", nil)
	w := serve(r, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), string(apperror.ErrCodeUnauthorized))
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	tokens := new(mockTokens)
	tokens.On("ParseAccess", "bad").Return(int64(0), errors.New("signature is invalid"))
	r := newAuthRouter(tokens, new(mockProfiles))

	req, _ := http.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer bad")
	w := serve(r, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotContains(t, w.Body.String(), "signature")
}

func TestAuthMiddleware_UnknownProfile(t *testing.T) {
	tokens := new(mockTokens)
	profiles := new(mockProfiles)
	tokens.On("ParseAccess", "ok").Return(int64(9), nil)
	profiles.On("FindProfile", mock.Anything, int64(9)).Return(nil, storecommon.ErrProfileNotFound)
	r := newAuthRouter(tokens, profiles)

	req, _ := http.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer ok")
	w := serve(r, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_StoreFailure(t *testing.T) {
	tokens := new(mockTokens)
	profiles := new(mockProfiles)
	tokens.On("ParseAccess", "ok").Return(int64(9), nil)
	profiles.On("FindProfile", mock.Anything, int64(9)).Return(nil, errors.New("pq: connection refused"))
	r := newAuthRouter(tokens, profiles)

	req, _ := http.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer ok")
	w := serve(r, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "pq:")
}

func TestAuthMiddleware_Success(t *testing.T) {
	tokens := new(mockTokens)
	profiles := new(mockProfiles)
	tokens.On("ParseAccess", "ok").Return(int64(3), nil)
	profiles.On("FindProfile", mock.Anything, int64(3)).Return(&models.Profile{ID: 3}, nil)
	r := newAuthRouter(tokens, profiles)

	req, _ := http.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer ok")
	w := serve(r, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":3}`, w.Body.String())
}

func TestErrorHandler_SkipsWrittenResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/x", func(c *gin.Context) {
		_ = c.Error(apperror.ErrJobNotFound)
		c.JSON(http.StatusTeapot, gin.H{"ok": true})
	})

	req, _ := http.NewRequest("GET", "/x", nil)
	w := serve(r, req)

	assert.Equal(t, http.StatusTeapot, w.Code)
}

func TestErrorHandler_MapsCodes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/nf", func(c *gin.Context) { _ = c.Error(apperror.ErrJobNotFound) })
	r.GET("/raw", func(c *gin.Context) { _ = c.Error(errors.New("sql: no rows")) })

	req, _ := http.NewRequest("GET", "/nf", nil)
	w := serve(r, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), apperror.ErrJobNotFound.Message)

	req, _ = http.NewRequest("GET", "/raw", nil)
	w = serve(r, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "sql:")
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", RateLimitMiddleware(2, time.Minute), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		req, _ := http.NewRequest("GET", "/x", nil)
		assert.Equal(t, http.StatusOK, serve(r, req).Code)
	}

	req, _ := http.NewRequest("GET", "/x", nil)
	w := serve(r, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Contains(t, w.Body.String(), string(apperror.ErrCodeRateLimited))
}

func TestRequestLogger_RequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(ContextRequestIDKey)) })

	req, _ := http.NewRequest("GET", "/x", nil)
	w := serve(r, req)
	generated := w.Header().Get(RequestIDHeader)
	require.NotEmpty(t, generated)
	assert.Equal(t, generated, w.Body.String())

	const incoming = "2f1d3c56-6c3b-4a7e-9d0f-1b2a3c4d5e6f"
	req, _ = http.NewRequest("GET", "/x", nil)
	req.Header.Set(RequestIDHeader, incoming)
	w = serve(r, req)
	assert.Equal(t, incoming, w.Header().Get(RequestIDHeader))

	// произвольная строка из заголовка не попадает в логи
	req, _ = http.NewRequest("GET", "/x", nil)
	req.Header.Set(RequestIDHeader, "<script>")
	w = serve(r, req)
	assert.NotEqual(t, "<script>", w.Header().Get(RequestIDHeader))
}

func TestIDValidator(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/contracts/:id", IDValidator("id"), func(c *gin.Context) { c.Status(http.StatusOK) })

	for path, status := range map[string]int{
		"/contracts/5":   http.StatusOK,
		"/contracts/0":   http.StatusBadRequest,
		"/contracts/x1":  http.StatusBadRequest,
		"/contracts/-10": http.StatusBadRequest,
	} {
		req, _ := http.NewRequest("GET", path, nil)
		assert.Equal(t, status, serve(r, req).Code, path)
	}
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware([]string{"http://localhost:3000"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req, _ := http.NewRequest("GET", "/x", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := serve(r, req)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req, _ = http.NewRequest("GET", "/x", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = serve(r, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

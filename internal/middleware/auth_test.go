package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Guiladg/wacookieexpress/internal/middleware"
	"github.com/Guiladg/wacookieexpress/internal/mocks"
	"github.com/Guiladg/wacookieexpress/internal/token"
)

func performRequest(r *gin.Engine, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMissingCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := new(mocks.TokenService)

	r := gin.New()
	r.GET("/protected", middleware.Auth(tokens, false), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := performRequest(r)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthInvalidToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := new(mocks.TokenService)
	tokens.On("VerifyAccess", "bad").Return(nil, token.ErrInvalidToken)

	r := gin.New()
	r.GET("/protected", middleware.Auth(tokens, false), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := performRequest(r, &http.Cookie{Name: "access_token", Value: "bad"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthStashesClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := new(mocks.TokenService)
	claims := &token.AccessClaims{ID: 7, Phone: "541144445555", Role: "admin"}
	tokens.On("VerifyAccess", "good").Return(claims, nil)

	r := gin.New()
	r.GET("/protected", middleware.Auth(tokens, false), func(c *gin.Context) {
		got, ok := middleware.Claims(c)
		assert.True(t, ok)
		assert.Equal(t, claims, got)
		c.Status(http.StatusOK)
	})

	w := performRequest(r, &http.Cookie{Name: "access_token", Value: "good"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := new(mocks.TokenService)
	tokens.On("VerifyAccess", "good").Return(&token.AccessClaims{ID: 7, Role: "viewer"}, nil)

	r := gin.New()
	r.GET("/protected", middleware.Auth(tokens, false), middleware.RequireRole("admin"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := performRequest(r, &http.Cookie{Name: "access_token", Value: "good"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"bizmate/internal/config"
	"bizmate/internal/domain"
	"bizmate/internal/middleware"
	"bizmate/internal/service"
	"bizmate/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func mintAccessToken(t *testing.T, role domain.UserRole) (service.AuthService, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &domain.User{
		ID:           uuid.New(),
		EmpNo:        "E1042",
		Username:     "hong.gildong",
		PasswordHash: string(hash),
		FullName:     "Hong Gildong",
		Role:         role,
		IsActive:     true,
	}

	userRepo := new(mocks.MockUserRepo)
	userRepo.On("GetByUsername", mock.Anything, "hong.gildong").Return(user, nil)

	svc := service.NewAuthService(userRepo, config.JWTConfig{
		Secret:             "test-secret",
		AccessTokenExpiry:  time.Minute,
		RefreshTokenExpiry: time.Hour,
		Issuer:             "bizmate-test",
	})

	out, err := svc.Login(context.Background(), service.LoginInput{
		Username: "hong.gildong",
		Password: "password123",
	})
	require.NoError(t, err)
	return svc, out.AccessToken
}

func protectedRouter(svc service.AuthService, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	group := r.Group("/protected")
	group.Use(middleware.AuthMiddleware(svc))
	group.Use(extra...)
	group.GET("", func(c *gin.Context) {
		id, err := middleware.GetIdentity(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no identity"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"username": id.Username})
	})
	return r
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	svc, token := mintAccessToken(t, domain.RoleEmployee)
	r := protectedRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "hong.gildong")
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	svc, _ := mintAccessToken(t, domain.RoleEmployee)
	r := protectedRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_MalformedToken(t *testing.T) {
	svc, _ := mintAccessToken(t, domain.RoleEmployee)
	r := protectedRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	empSvc, empToken := mintAccessToken(t, domain.RoleEmployee)
	r := protectedRouter(empSvc, middleware.RequireAdmin())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+empToken)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	adminSvc, adminToken := mintAccessToken(t, domain.RoleAdmin)
	r = protectedRouter(adminSvc, middleware.RequireAdmin())

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

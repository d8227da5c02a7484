package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"bizmate/internal/config"
	"bizmate/internal/domain"
	"bizmate/internal/service"
	"bizmate/mocks"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:             "test-secret-key-for-unit-tests",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 168 * time.Hour,
		Issuer:             "bizmate-test",
	}
}

func hashPassword(password string) string {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return string(hash)
}

func testUser() *domain.User {
	return &domain.User{
		ID:           uuid.New(),
		EmpNo:        "E1042",
		Username:     "hong.gildong",
		PasswordHash: hashPassword("password123"),
		FullName:     "Hong Gildong",
		Email:        "hong.gildong@bizmate.test",
		DeptCode:     "ENG",
		DeptName:     "Engineering",
		Role:         domain.RoleEmployee,
		IsActive:     true,
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())
	user := testUser()

	userRepo.On("GetByUsername", mock.Anything, "hong.gildong").Return(user, nil)

	result, err := svc.Login(context.Background(), service.LoginInput{
		Username: "hong.gildong",
		Password: "password123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, user.ID, result.UserID)
	assert.Equal(t, "E1042", result.EmpID)
	assert.Equal(t, "hong.gildong", result.Username)
	assert.Equal(t, []string{"ROLE_EMPLOYEE"}, result.Roles)
	assert.True(t, result.ExpiresAt.After(time.Now()))

	userRepo.AssertExpectations(t)
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	userRepo.On("GetByUsername", mock.Anything, "hong.gildong").Return(testUser(), nil)

	_, err := svc.Login(context.Background(), service.LoginInput{
		Username: "hong.gildong",
		Password: "wrong",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	userRepo.On("GetByUsername", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

	_, err := svc.Login(context.Background(), service.LoginInput{
		Username: "ghost",
		Password: "whatever",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())
	user := testUser()
	user.IsActive = false

	userRepo.On("GetByUsername", mock.Anything, "hong.gildong").Return(user, nil)

	_, err := svc.Login(context.Background(), service.LoginInput{
		Username: "hong.gildong",
		Password: "password123",
	})

	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestAuthService_AccessTokenCarriesIdentity(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())
	user := testUser()

	userRepo.On("GetByUsername", mock.Anything, "hong.gildong").Return(user, nil)

	result, err := svc.Login(context.Background(), service.LoginInput{
		Username: "hong.gildong",
		Password: "password123",
	})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(result.AccessToken)
	require.NoError(t, err)

	id := claims.Identity()
	assert.Equal(t, user.ID, id.UserID)
	assert.Equal(t, "E1042", id.EmpNo)
	assert.Equal(t, "hong.gildong", id.Username)
	assert.Equal(t, "Engineering", id.DeptName)
	assert.Equal(t, []string{"ROLE_EMPLOYEE"}, id.Roles)
	assert.False(t, service.IsAdmin(id))
}

func TestAuthService_RefreshTokenRejectedAsAccess(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())
	user := testUser()

	userRepo.On("GetByUsername", mock.Anything, "hong.gildong").Return(user, nil)

	result, err := svc.Login(context.Background(), service.LoginInput{
		Username: "hong.gildong",
		Password: "password123",
	})
	require.NoError(t, err)

	_, err = svc.ValidateToken(result.RefreshToken)
	assert.Error(t, err)
}

func TestAuthService_RefreshToken_Rotates(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())
	user := testUser()

	userRepo.On("GetByUsername", mock.Anything, "hong.gildong").Return(user, nil)
	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	login, err := svc.Login(context.Background(), service.LoginInput{
		Username: "hong.gildong",
		Password: "password123",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.ValidateToken(refreshed.AccessToken)
	assert.NoError(t, err)
}

func TestAuthService_ValidateToken_Garbage(t *testing.T) {
	svc := service.NewAuthService(new(mocks.MockUserRepo), testJWTConfig())

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestIsAdmin(t *testing.T) {
	admin := domain.Identity{Roles: []string{"ROLE_ADMIN"}}
	employee := domain.Identity{Roles: []string{"ROLE_EMPLOYEE"}}

	assert.True(t, service.IsAdmin(admin))
	assert.False(t, service.IsAdmin(employee))
	assert.False(t, service.IsAdmin(domain.Identity{}))
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"bizmate/internal/config"
	"bizmate/internal/domain"
	"bizmate/internal/port"
)

// Claims represents the JWT claims carrying the session identity. The claim
// set is decoded client-side for display attributes and never locally mutated.
type Claims struct {
	jwt.RegisteredClaims
	UserID   uuid.UUID `json:"user_id"`
	EmpNo    string    `json:"emp_no"`
	Username string    `json:"username"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
	DeptCode string    `json:"dept_code"`
	DeptName string    `json:"dept_name"`
	// Raw mixes ROLE_-prefixed roles and fine-grained permissions, split at
	// the consuming edge by domain.SplitClaims.
	Raw []string `json:"auth"`
}

// Identity materializes the session identity from the claim set.
func (c *Claims) Identity() domain.Identity {
	roles, permissions := domain.SplitClaims(c.Raw)
	return domain.Identity{
		UserID:      c.UserID,
		EmpNo:       c.EmpNo,
		Username:    c.Username,
		FullName:    c.FullName,
		Email:       c.Email,
		DeptCode:    c.DeptCode,
		DeptName:    c.DeptName,
		Roles:       roles,
		Permissions: permissions,
	}
}

// IsAdmin reports whether the identity carries the administrator role.
func IsAdmin(id domain.Identity) bool {
	for _, r := range id.Roles {
		if r == domain.RolePrefix+strings.ToUpper(string(domain.RoleAdmin)) {
			return true
		}
	}
	return false
}

// LoginInput is the DTO for login requests.
type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginOutput is the login response contract.
type LoginOutput struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	Roles        []string  `json:"roles"`
	UserID       uuid.UUID `json:"userId"`
	EmpID        string    `json:"empId"`
	Username     string    `json:"username"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// AuthService defines the authentication contract.
type AuthService interface {
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)
	RefreshToken(ctx context.Context, refreshToken string) (*LoginOutput, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo port.UserRepository
	cfg      config.JWTConfig
}

// NewAuthService creates a new AuthService implementation.
func NewAuthService(userRepo port.UserRepository, cfg config.JWTConfig) AuthService {
	return &authService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("auth.Login: %w", err)
	}
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.generateTokenPair(user)
}

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*LoginOutput, error) {
	claims, err := s.validateTokenString(refreshToken, "refresh")
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	return s.generateTokenPair(user)
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	return s.validateTokenString(tokenString, "access")
}

// rawClaims builds the mixed role/permission claim strings for a user.
func rawClaims(user *domain.User) []string {
	raw := []string{domain.RolePrefix + strings.ToUpper(string(user.Role))}
	var perms []string
	if len(user.Permissions) > 0 {
		_ = json.Unmarshal(user.Permissions, &perms)
	}
	return append(raw, perms...)
}

func (s *authService) generateTokenPair(user *domain.User) (*LoginOutput, error) {
	now := time.Now()
	accessExpiry := now.Add(s.cfg.AccessTokenExpiry)
	refreshExpiry := now.Add(s.cfg.RefreshTokenExpiry)
	raw := rawClaims(user)

	newClaims := func(expiry time.Time, audience string) *Claims {
		return &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   user.ID.String(),
				Issuer:    s.cfg.Issuer,
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(expiry),
				ID:        uuid.New().String(),
				Audience:  jwt.ClaimStrings{audience},
			},
			UserID:   user.ID,
			EmpNo:    user.EmpNo,
			Username: user.Username,
			FullName: user.FullName,
			Email:    user.Email,
			DeptCode: user.DeptCode,
			DeptName: user.DeptName,
			Raw:      raw,
		}
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, newClaims(accessExpiry, "access"))
	accessTokenString, err := accessToken.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("signing access token: %w", err)
	}

	refreshToken := jwt.NewWithClaims(jwt.SigningMethodHS256, newClaims(refreshExpiry, "refresh"))
	refreshTokenString, err := refreshToken.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("signing refresh token: %w", err)
	}

	roles, _ := domain.SplitClaims(raw)
	return &LoginOutput{
		AccessToken:  accessTokenString,
		RefreshToken: refreshTokenString,
		Roles:        roles,
		UserID:       user.ID,
		EmpID:        user.EmpNo,
		Username:     user.Username,
		ExpiresAt:    accessExpiry,
	}, nil
}

func (s *authService) validateTokenString(tokenString, audience string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	// Validate audience
	aud, _ := claims.GetAudience()
	found := false
	for _, a := range aud {
		if a == audience {
			found = true
			break
		}
	}
	if !found {
		return nil, domain.ErrUnauthorized
	}

	return claims, nil
}

package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/mizanhq/mizan/internal/models"
	"github.com/mizanhq/mizan/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// DefaultTokenTTL mirrors the original 30-minute session timeout.
const DefaultTokenTTL = 30 * time.Minute

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid session token")
)

type AuthUserStore interface {
	GetByUsername(ctx context.Context, username string) (models.User, error)
	GetByID(ctx context.Context, id int64) (models.User, error)
	Update(ctx context.Context, user models.User) (bool, error)
}

type SessionClaims struct {
	Username    string   `json:"username"`
	UserType    string   `json:"userType"`
	Permissions []string `json:"permissions,omitempty"`
	jwt.RegisteredClaims
}

type AuthService struct {
	users     AuthUserStore
	secretKey []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewAuthService(users AuthUserStore, secretKey string) *AuthService {
	return &AuthService{
		users:     users,
		secretKey: []byte(secretKey),
		tokenTTL:  DefaultTokenTTL,
		now:       time.Now,
	}
}

// Login verifies the credentials, bumps the user's login counters and
// returns the user with a signed session token.
func (service *AuthService) Login(ctx context.Context, username string, password string) (models.User, string, error) {
	user, err := service.users.GetByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return models.User{}, "", ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, "", ErrInvalidCredentials
	}

	user.LoginCount++
	user.LastLogin = service.now()
	if _, err := service.users.Update(ctx, user); err != nil {
		return models.User{}, "", err
	}

	token, err := service.issueToken(user)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

func (service *AuthService) issueToken(user models.User) (string, error) {
	now := service.now()
	claims := SessionClaims{
		Username:    user.Username,
		UserType:    user.Type,
		Permissions: user.Permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(service.tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(service.secretKey)
}

// ParseToken validates a session token and returns its claims.
func (service *AuthService) ParseToken(tokenString string) (SessionClaims, error) {
	claims := SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return service.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(service.now))
	if err != nil || !token.Valid {
		return SessionClaims{}, ErrInvalidToken
	}
	return claims, nil
}

// UserID parses the token subject back into the user id.
func (claims SessionClaims) UserID() int64 {
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// HasPermission applies the capability rules: the admin type and the "all"
// tag grant everything, otherwise the exact tag must be present.
func (claims SessionClaims) HasPermission(permission string) bool {
	if claims.UserType == models.UserTypeAdmin {
		return true
	}
	for _, tag := range claims.Permissions {
		if tag == models.PermissionAll || tag == permission {
			return true
		}
	}
	return false
}

package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/frahmantamala/membership-management/internal"
	userDatamodel "github.com/frahmantamala/membership-management/internal/core/datamodel/user"
)

// UserRepository is the narrow user-store view the login flow needs.
// Lookups only ever see active users; an inactive account is as good as
// absent so the two are indistinguishable to callers.
type UserRepository interface {
	GetActiveUserByEmail(email string) (*userDatamodel.User, error)
}

type Service struct {
	userRepo       UserRepository
	tokenGenerator TokenGenerator
	hasher         *PasswordHasher
	logger         *slog.Logger
}

func NewService(userRepo UserRepository, tokenGen TokenGenerator, hasher *PasswordHasher, logger *slog.Logger) *Service {
	return &Service{
		userRepo:       userRepo,
		tokenGenerator: tokenGen,
		hasher:         hasher,
		logger:         logger,
	}
}

// Login authenticates the credentials and issues a bearer token. Absent
// users, inactive users and wrong passwords all yield the same
// InvalidCredentials outcome so the response cannot be used to enumerate
// accounts. Hashing and signing faults are reported separately.
func (s *Service) Login(dto LoginDTO) (*LoginResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error(), apperrors.ErrCodeValidationFailed)
	}

	user, err := s.userRepo.GetActiveUserByEmail(dto.Email)
	if err != nil {
		s.logger.Error("user lookup failed during login", "email", dto.Email, "error", err)
		return nil, apperrors.NewInternalError("Login failed", err)
	}
	if user == nil {
		s.logger.Warn("login rejected", "email", dto.Email)
		return nil, apperrors.ErrInvalidCredentials
	}

	ok, err := s.hasher.Verify(dto.Password, user.PasswordHash)
	if err != nil {
		s.logger.Error("password verification failed", "user_id", user.ID, "error", err)
		return nil, apperrors.NewInternalError("Password verification failed", err)
	}
	if !ok {
		s.logger.Warn("login rejected", "email", dto.Email)
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokenGenerator.GenerateToken(user.Email, user.RoleID)
	if err != nil {
		s.logger.Error("token creation failed", "user_id", user.ID, "error", err)
		return nil, apperrors.NewInternalError("Token creation failed", err)
	}

	s.logger.Info("user login successful", "user_id", user.ID, "email", user.Email)

	return &LoginResult{
		UserID:    user.ID,
		FirstName: user.FirstName,
		Email:     user.Email,
		RoleID:    user.RoleID,
		Token:     token,
	}, nil
}

func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateToken(tokenString)
}

// ResolveIdentity loads the user behind validated claims. Tokens outlive
// account deactivation, so the lookup re-checks the active flag.
func (s *Service) ResolveIdentity(claims *Claims) (*Identity, error) {
	user, err := s.userRepo.GetActiveUserByEmail(claims.Subject)
	if err != nil {
		return nil, apperrors.NewInternalError("User lookup failed", err)
	}
	if user == nil {
		return nil, apperrors.ErrInvalidToken
	}

	return &Identity{
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		RoleID:    user.RoleID,
	}, nil
}

// JWTTokenGenerator issues HMAC-signed tokens with subject=email, a role
// claim and a fixed validity window.
type JWTTokenGenerator struct {
	secret   []byte
	method   jwt.SigningMethod
	lifetime time.Duration
}

func NewJWTTokenGenerator(secret, algorithm string, lifetime time.Duration) (*JWTTokenGenerator, error) {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm: %s", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unsupported signing algorithm: %s", algorithm)
	}
	if lifetime == 0 {
		lifetime = 7 * 24 * time.Hour
	}
	return &JWTTokenGenerator{
		secret:   []byte(secret),
		method:   method,
		lifetime: lifetime,
	}, nil
}

func (j *JWTTokenGenerator) GenerateToken(email string, roleID int64) (string, error) {
	now := time.Now()
	claims := &Claims{
		RoleID: roleID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.lifetime)),
		},
	}

	token := jwt.NewWithClaims(j.method, claims)
	return token.SignedString(j.secret)
}

// ValidateToken decodes and verifies a token. Expired-but-valid signatures
// report TokenExpired; every other failure, including missing claims, is
// InvalidToken so callers can emit distinct messages.
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}
	if claims.Subject == "" || claims.RoleID == 0 {
		return nil, apperrors.ErrInvalidToken
	}

	return claims, nil
}

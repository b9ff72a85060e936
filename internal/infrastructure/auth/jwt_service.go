package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Ohuru-Tech/authkit/domain"
)

// JWTServiceImpl implements domain.TokenService
type JWTServiceImpl struct {
	secretKey       []byte
	method          jwt.SigningMethod
	issuer          string
	audience        string
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

// NewJWTService creates a new JWT service. Only HMAC algorithms are
// supported; an unknown algorithm name is an error at construction time.
func NewJWTService(secretKey, algorithm, issuer, audience string, accessTTL, refreshTTL time.Duration) (domain.TokenService, error) {
	method := jwt.GetSigningMethod(algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}

	return &JWTServiceImpl{
		secretKey:       []byte(secretKey),
		method:          method,
		issuer:          issuer,
		audience:        audience,
		accessTokenTTL:  accessTTL,
		refreshTokenTTL: refreshTTL,
	}, nil
}

// AccessTTL implements domain.TokenService
func (j *JWTServiceImpl) AccessTTL() time.Duration {
	return j.accessTokenTTL
}

// IssueAccessToken implements domain.TokenService
func (j *JWTServiceImpl) IssueAccessToken(user *domain.User) (string, error) {
	return j.issue(user, domain.AccessTokenType, j.accessTokenTTL)
}

// IssueRefreshToken implements domain.TokenService
func (j *JWTServiceImpl) IssueRefreshToken(user *domain.User) (string, error) {
	return j.issue(user, domain.RefreshTokenType, j.refreshTokenTTL)
}

func (j *JWTServiceImpl) issue(user *domain.User, tokenType domain.TokenType, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":        fmt.Sprintf("%d", user.ID),
		"email":      user.Email,
		"aud":        j.audience,
		"iss":        j.issuer,
		"iat":        now.Unix(),
		"exp":        now.Add(ttl).Unix(),
		"jti":        uuid.NewString(), // unique JWT ID ensures token uniqueness
		"token_type": string(tokenType),
	}

	token := jwt.NewWithClaims(j.method, claims)
	return token.SignedString(j.secretKey)
}

// Validate implements domain.TokenService. TokenError variants are surfaced
// as distinct sentinels: ErrTokenExpired, ErrBadSignature, ErrTokenMalformed.
func (j *JWTServiceImpl) Validate(tokenString string) (*domain.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrBadSignature
		}
		return j.secretKey, nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, domain.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, domain.ErrBadSignature):
			return nil, domain.ErrBadSignature
		default:
			return nil, domain.ErrTokenMalformed
		}
	}

	if !token.Valid {
		return nil, domain.ErrBadSignature
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	return j.extractClaims(claims)
}

func (j *JWTServiceImpl) extractClaims(claims jwt.MapClaims) (*domain.TokenClaims, error) {
	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	var userID uint
	if _, err := fmt.Sscanf(sub, "%d", &userID); err != nil {
		return nil, domain.ErrTokenMalformed
	}

	email, ok := claims["email"].(string)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	tokenType, ok := claims["token_type"].(string)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	audience := ""
	if aud, ok := claims["aud"].(string); ok {
		audience = aud
	}

	return &domain.TokenClaims{
		UserID:    userID,
		Email:     email,
		Audience:  audience,
		TokenType: domain.TokenType(tokenType),
		IssuedAt:  int64(iat),
		ExpiresAt: int64(exp),
	}, nil
}

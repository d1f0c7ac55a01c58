package jwt

import (
	"fmt"
	"time"

	"github.com/furnishop/shop-backend-go/internal/domain/auth"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const streamTokenTTL = 5 * time.Minute

type Service interface {
	GenerateAccessToken(subject string, role auth.Role) (token string, expiresAt int64, err error)
	GenerateStreamToken(subject string) (token string, expiresIn int, err error)
	ValidateStreamToken(tokenString string) (subject string, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpiration time.Duration
	tokenAuth             *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// NewJWTService builds an HS256 signer. accessTokenExpiration is a Go
// duration string such as "12h".
func NewJWTService(secretKey string, accessTokenExpiration string) (Service, error) {
	expiration, err := time.ParseDuration(accessTokenExpiration)
	if err != nil {
		return nil, fmt.Errorf("invalid access token expiration %q: %w", accessTokenExpiration, err)
	}
	return &JWTService{
		accessTokenExpiration: expiration,
		tokenAuth:             jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}, nil
}

func (j *JWTService) GenerateAccessToken(subject string, role auth.Role) (token string, expiresAt int64, err error) {
	if !role.IsValid() {
		return "", 0, fmt.Errorf("%w: %q", auth.ErrInvalidRole, role)
	}
	expiresAt = time.Now().Add(j.accessTokenExpiration).Unix()

	_, token, err = j.tokenAuth.Encode(map[string]interface{}{
		"sub":  subject,
		"role": string(role),
		"type": "access",
		"exp":  expiresAt,
	})
	return token, expiresAt, err
}

// GenerateStreamToken issues a short-lived token for the event stream, which
// browsers open without custom headers.
func (j *JWTService) GenerateStreamToken(subject string) (token string, expiresIn int, err error) {
	expiresAt := time.Now().Add(streamTokenTTL).Unix()

	_, token, err = j.tokenAuth.Encode(map[string]interface{}{
		"sub":  subject,
		"type": "stream",
		"exp":  expiresAt,
	})
	if err != nil {
		return "", 0, err
	}
	return token, int(streamTokenTTL.Seconds()), nil
}

// ValidateStreamToken verifies signature, expiry and token type and returns
// the subject.
func (j *JWTService) ValidateStreamToken(tokenString string) (subject string, err error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return "", fmt.Errorf("%w: %v", auth.ErrInvalidToken, err)
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != "stream" {
		return "", auth.ErrInvalidToken
	}
	if token.Subject() == "" {
		return "", auth.ErrInvalidToken
	}
	return token.Subject(), nil
}

package auth

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Principal holds identity extracted from a validated token.
type Principal struct {
	UserID string
	Role   string
	Claims jwt.MapClaims
}

var (
	ErrNoToken       = errors.New("no token provided")
	ErrInvalidToken  = errors.New("invalid token")
	ErrInvalidIssuer = errors.New("invalid issuer")
	ErrMissingSub    = errors.New("missing sub claim")
	ErrMissingSecret = errors.New("missing token signing secret")
)

const (
	DefaultIssuer = "ngo-directory-service"
	TokenLifetime = 7 * 24 * time.Hour
)

// Verifier validates HS256 bearer tokens issued by this service.
type Verifier struct {
	secret []byte
	issuer string
}

// NewVerifier constructs a verifier from the shared signing secret.
func NewVerifier(secret string, issuer string) (*Verifier, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if issuer == "" {
		issuer = DefaultIssuer
	}
	return &Verifier{secret: []byte(secret), issuer: issuer}, nil
}

// NewVerifierFromEnv reads AUTH_SECRET (and optional AUTH_ISSUER).
func NewVerifierFromEnv() (*Verifier, error) {
	return NewVerifier(os.Getenv("AUTH_SECRET"), os.Getenv("AUTH_ISSUER"))
}

// ParseAndVerifyToken verifies a bearer token, validates issuer/exp and returns Principal.
func (v *Verifier) ParseAndVerifyToken(tokenString string) (*Principal, error) {
	if tokenString == "" {
		return nil, ErrNoToken
	}
	tokenString = strings.TrimSpace(tokenString)
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		// enforce HS256
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	if iss, _ := claims["iss"].(string); iss != v.issuer {
		return nil, ErrInvalidIssuer
	}
	if !claims.VerifyExpiresAt(jwt.TimeFunc().Unix(), true) {
		return nil, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, ErrMissingSub
	}

	role, _ := claims["role"].(string)

	return &Principal{
		UserID: sub,
		Role:   role,
		Claims: claims,
	}, nil
}

// IssueToken signs a token for the given user identity and role.
func (v *Verifier) IssueToken(userID, role string, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"iss":  v.issuer,
		"iat":  now.Unix(),
		"exp":  now.Add(TokenLifetime).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}

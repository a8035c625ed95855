package jwtutil

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// JWTConfig holds JWT configuration
type JWTConfig struct {
	SigningKey        string
	Algorithm         string
	ExpirationSeconds int
}

// Sentinel errors returned by ValidateToken.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// AdminClaims represents the JWT claims for administrator authentication
type AdminClaims struct {
	Email   string `json:"email"`
	AdminID uint   `json:"admin_id"`
	OrgID   *uint  `json:"org_id,omitempty"` // nil when the admin is not linked to an organization
	jwt.RegisteredClaims
}

// JWTUtil is a utility for JWT token operations
type JWTUtil struct {
	config *JWTConfig
	method jwt.SigningMethod
}

// NewJWTUtil creates a new JWT utility with the given configuration.
// Only the HMAC family of signing algorithms is accepted.
func NewJWTUtil(config *JWTConfig) (*JWTUtil, error) {
	if config == nil {
		return nil, errors.New("JWT configuration not provided")
	}

	method := jwt.GetSigningMethod(config.Algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm: %s", config.Algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unsupported signing algorithm: %s", config.Algorithm)
	}

	return &JWTUtil{config: config, method: method}, nil
}

// GenerateToken creates a JWT token carrying the admin identity and the
// linked organization, if any. Expiry is issue time plus the configured TTL.
func (j *JWTUtil) GenerateToken(email string, adminID uint, orgID *uint) (string, error) {
	now := time.Now()
	claims := AdminClaims{
		Email:   email,
		AdminID: adminID,
		OrgID:   orgID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(j.config.ExpirationSeconds) * time.Second)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(j.method, claims)
	return token.SignedString([]byte(j.config.SigningKey))
}

// ValidateToken validates and parses the JWT token. Expired tokens return
// ErrTokenExpired; any other failure returns ErrTokenInvalid.
func (j *JWTUtil) ValidateToken(tokenString string) (*AdminClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&AdminClaims{},
		func(token *jwt.Token) (interface{}, error) {
			// Validate the signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(j.config.SigningKey), nil
		},
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if claims, ok := token.Claims.(*AdminClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrTokenInvalid
}

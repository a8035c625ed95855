package jwtutil

import (
	"testing"
)

func newTestUtil(t *testing.T, ttlSeconds int) *JWTUtil {
	t.Helper()

	util, err := NewJWTUtil(&JWTConfig{
		SigningKey:        "super-secret",
		Algorithm:         "HS256",
		ExpirationSeconds: ttlSeconds,
	})
	if err != nil {
		t.Fatalf("NewJWTUtil error: %v", err)
	}
	return util
}

func TestGenerateAndValidate_Success(t *testing.T) {
	t.Parallel()

	util := newTestUtil(t, 3600)
	orgID := uint(7)

	tok, err := util.GenerateToken("admin@acme.test", 42, &orgID)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	claims, err := util.ValidateToken(tok)
	if err != nil {
		t.Fatalf("ValidateToken error: %v", err)
	}
	if claims.Email != "admin@acme.test" {
		t.Fatalf("email mismatch: got %q", claims.Email)
	}
	if claims.AdminID != 42 {
		t.Fatalf("admin id mismatch: got %d", claims.AdminID)
	}
	if claims.OrgID == nil || *claims.OrgID != 7 {
		t.Fatalf("org id mismatch: got %v", claims.OrgID)
	}
}

func TestGenerateAndValidate_NilOrgID(t *testing.T) {
	t.Parallel()

	util := newTestUtil(t, 3600)

	tok, err := util.GenerateToken("admin@acme.test", 42, nil)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	claims, err := util.ValidateToken(tok)
	if err != nil {
		t.Fatalf("ValidateToken error: %v", err)
	}
	if claims.OrgID != nil {
		t.Fatalf("expected nil org id, got %v", *claims.OrgID)
	}
}

func TestValidateToken_Expired(t *testing.T) {
	t.Parallel()

	util := newTestUtil(t, -1)

	tok, err := util.GenerateToken("admin@acme.test", 1, nil)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = util.ValidateToken(tok)
	if err != ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	t.Parallel()

	util := newTestUtil(t, 3600)
	tok, err := util.GenerateToken("admin@acme.test", 1, nil)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	other, err := NewJWTUtil(&JWTConfig{
		SigningKey:        "other-secret",
		Algorithm:         "HS256",
		ExpirationSeconds: 3600,
	})
	if err != nil {
		t.Fatalf("NewJWTUtil error: %v", err)
	}

	_, err = other.ValidateToken(tok)
	if err != ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestValidateToken_Malformed(t *testing.T) {
	t.Parallel()

	util := newTestUtil(t, 3600)

	_, err := util.ValidateToken("not.a.jwt")
	if err != ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestNewJWTUtil_AlgorithmValidation(t *testing.T) {
	t.Parallel()

	if _, err := NewJWTUtil(&JWTConfig{SigningKey: "k", Algorithm: "HS512", ExpirationSeconds: 60}); err != nil {
		t.Fatalf("HS512 should be accepted: %v", err)
	}
	if _, err := NewJWTUtil(&JWTConfig{SigningKey: "k", Algorithm: "RS256", ExpirationSeconds: 60}); err == nil {
		t.Fatal("RS256 should be rejected, only HMAC algorithms are supported")
	}
	if _, err := NewJWTUtil(&JWTConfig{SigningKey: "k", Algorithm: "bogus", ExpirationSeconds: 60}); err == nil {
		t.Fatal("unknown algorithm should be rejected")
	}
}

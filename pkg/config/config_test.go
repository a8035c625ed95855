package config

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.DB.DBName != "master_db" {
		t.Fatalf("DBName = %q, want master_db", cfg.DB.DBName)
	}
	if cfg.DB.Port != "5432" {
		t.Fatalf("DB port = %q, want 5432", cfg.DB.Port)
	}
	if cfg.JWT.Algorithm != "HS256" {
		t.Fatalf("JWT algorithm = %q, want HS256", cfg.JWT.Algorithm)
	}
	if cfg.JWT.ExpirationSeconds != 3600 {
		t.Fatalf("JWT expiration = %d, want 3600", cfg.JWT.ExpirationSeconds)
	}
	if cfg.Auth.BcryptCost != bcrypt.DefaultCost {
		t.Fatalf("bcrypt cost = %d, want default %d", cfg.Auth.BcryptCost, bcrypt.DefaultCost)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_NAME", "tenants_master")
	t.Setenv("JWT_SIGNING_KEY", "env-secret")
	t.Setenv("JWT_ALGORITHM", "HS512")
	t.Setenv("JWT_EXPIRATION_SECONDS", "60")
	t.Setenv("SERVER_PORT", "9999")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.DB.DBName != "tenants_master" {
		t.Fatalf("DBName = %q", cfg.DB.DBName)
	}
	if cfg.JWT.SigningKey != "env-secret" {
		t.Fatalf("SigningKey = %q", cfg.JWT.SigningKey)
	}
	if cfg.JWT.Algorithm != "HS512" {
		t.Fatalf("Algorithm = %q", cfg.JWT.Algorithm)
	}
	if cfg.JWT.ExpirationSeconds != 60 {
		t.Fatalf("ExpirationSeconds = %d", cfg.JWT.ExpirationSeconds)
	}
	if cfg.Server.Port != "9999" {
		t.Fatalf("Server port = %q", cfg.Server.Port)
	}
}

func TestGetDSN(t *testing.T) {
	c := DBConfig{
		Host:     "db.internal",
		Port:     "5433",
		User:     "svc",
		Password: "pw",
		DBName:   "master_db",
		SSLMode:  "require",
	}
	want := "host=db.internal port=5433 user=svc password=pw dbname=master_db sslmode=require"
	if got := c.GetDSN(); got != want {
		t.Fatalf("GetDSN = %q, want %q", got, want)
	}
}

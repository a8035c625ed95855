package credential

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	t.Parallel()

	s := NewStore(bcrypt.MinCost)

	hash, err := s.Hash("s3cret-pass")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("hash equals plaintext")
	}
	if !s.Verify("s3cret-pass", hash) {
		t.Fatal("Verify rejected the correct password")
	}
	if s.Verify("wrong-pass", hash) {
		t.Fatal("Verify accepted a wrong password")
	}
}

func TestHash_SaltedPerCall(t *testing.T) {
	t.Parallel()

	s := NewStore(bcrypt.MinCost)

	first, err := s.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	second, err := s.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if first == second {
		t.Fatal("two hashes of the same password are identical, salt missing")
	}
	if !s.Verify("same-password", first) || !s.Verify("same-password", second) {
		t.Fatal("Verify rejected a correct password")
	}
}

func TestNewStore_CostOutOfRange(t *testing.T) {
	t.Parallel()

	// Out-of-range costs fall back to the bcrypt default
	s := NewStore(1000)
	hash, err := s.Hash("password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if !strings.HasPrefix(hash, "$2a$") {
		t.Fatalf("unexpected hash format: %q", hash)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("Cost error: %v", err)
	}
	if cost != bcrypt.DefaultCost {
		t.Fatalf("cost = %d, want default %d", cost, bcrypt.DefaultCost)
	}
}

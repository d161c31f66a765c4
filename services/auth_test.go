package services

import (
	"testing"
	"time"
)

func TestPasswordHashing(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("s3cret-passw0rd")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "s3cret-passw0rd" {
		t.Fatal("hash must not equal the plaintext password")
	}

	if !CheckPassword(hash, "s3cret-passw0rd") {
		t.Error("CheckPassword rejected the correct password")
	}
	if CheckPassword(hash, "wrong-password") {
		t.Error("CheckPassword accepted a wrong password")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	auth := NewAuth("test-secret", time.Hour)

	token, err := auth.IssueToken("cook@example.com")
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	email, err := auth.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if email != "cook@example.com" {
		t.Errorf("ParseToken subject = %q, want %q", email, "cook@example.com")
	}
}

func TestParseTokenRejectsBadTokens(t *testing.T) {
	t.Parallel()

	auth := NewAuth("test-secret", time.Hour)

	if _, err := auth.ParseToken("not.a.token"); err == nil {
		t.Error("expected error for garbage token")
	}

	other := NewAuth("different-secret", time.Hour)
	token, err := other.IssueToken("cook@example.com")
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}
	if _, err := auth.ParseToken(token); err == nil {
		t.Error("expected error for token signed with another secret")
	}

	expired := NewAuth("test-secret", -time.Minute)
	token, err = expired.IssueToken("cook@example.com")
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}
	if _, err := auth.ParseToken(token); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestGeneratePassword(t *testing.T) {
	t.Parallel()

	password, err := GeneratePassword(12)
	if err != nil {
		t.Fatalf("GeneratePassword failed: %v", err)
	}
	if len(password) != 12 {
		t.Errorf("password length = %d, want 12", len(password))
	}

	other, err := GeneratePassword(12)
	if err != nil {
		t.Fatalf("GeneratePassword failed: %v", err)
	}
	if password == other {
		t.Error("two generated passwords were identical")
	}
}

package utils

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestManager(t *testing.T, accessMinutes, refreshDays int) *JWTManager {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	dir := t.TempDir()
	privPath := filepath.Join(dir, "private.pem")
	pubPath := filepath.Join(dir, "public.pem")

	privPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	if err := os.WriteFile(privPath, privPEM, 0o600); err != nil {
		t.Fatalf("write private key: %v", err)
	}
	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("marshal public key: %v", err)
	}
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})
	if err := os.WriteFile(pubPath, pubPEM, 0o600); err != nil {
		t.Fatalf("write public key: %v", err)
	}

	mgr, err := NewJWTManager(privPath, pubPath, accessMinutes, refreshDays)
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}
	return mgr
}

func TestAccessTokenRoundTrip(t *testing.T) {
	mgr := newTestManager(t, 15, 7)
	token, err := mgr.GenerateAccessToken("user-123")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	got, err := mgr.ParseAccess(token)
	if err != nil {
		t.Fatalf("ParseAccess: %v", err)
	}
	if got != "user-123" {
		t.Fatalf("user id = %q, want %q", got, "user-123")
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	mgr := newTestManager(t, 15, 7)
	token, err := mgr.GenerateRefreshToken("user-123")
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}
	got, err := mgr.ParseRefresh(token)
	if err != nil {
		t.Fatalf("ParseRefresh: %v", err)
	}
	if got != "user-123" {
		t.Fatalf("user id = %q, want %q", got, "user-123")
	}
}

func TestAudienceSeparation(t *testing.T) {
	mgr := newTestManager(t, 15, 7)

	refresh, _ := mgr.GenerateRefreshToken("user-123")
	if _, err := mgr.ParseAccess(refresh); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("refresh token accepted as access: %v", err)
	}

	access, _ := mgr.GenerateAccessToken("user-123")
	if _, err := mgr.ParseRefresh(access); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("access token accepted as refresh: %v", err)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	mgr := newTestManager(t, -1, 7)
	token, err := mgr.GenerateAccessToken("user-123")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if _, err := mgr.VerifyToken(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("err = %v, want ErrTokenExpired", err)
	}
}

func TestForeignSignatureRejected(t *testing.T) {
	issuer := newTestManager(t, 15, 7)
	verifier := newTestManager(t, 15, 7)

	token, err := issuer.GenerateAccessToken("user-123")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if _, err := verifier.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	mgr := newTestManager(t, 15, 7)
	if _, err := mgr.VerifyToken("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

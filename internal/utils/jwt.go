package utils

import (
	"crypto/rsa"
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrInvalidToken = errors.New("invalid token")
)

// JWTManager signs and verifies RS256 access/refresh token pairs.
type JWTManager struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	accessTTL  time.Duration
	refreshTTL time.Duration
}

type CustomClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

func NewJWTManager(privPath, pubPath string, accessMinutes, refreshDays int) (*JWTManager, error) {
	privBytes, err := os.ReadFile(privPath)
	if err != nil {
		return nil, err
	}
	priv, err := jwt.ParseRSAPrivateKeyFromPEM(privBytes)
	if err != nil {
		return nil, err
	}
	pubBytes, err := os.ReadFile(pubPath)
	if err != nil {
		return nil, err
	}
	pub, err := jwt.ParseRSAPublicKeyFromPEM(pubBytes)
	if err != nil {
		return nil, err
	}
	return &JWTManager{
		privateKey: priv,
		publicKey:  pub,
		accessTTL:  time.Duration(accessMinutes) * time.Minute,
		refreshTTL: time.Duration(refreshDays) * 24 * time.Hour,
	}, nil
}

func (j *JWTManager) GenerateAccessToken(userID string) (string, error) {
	return j.generate(userID, "access", j.accessTTL)
}

func (j *JWTManager) GenerateRefreshToken(userID string) (string, error) {
	return j.generate(userID, "refresh", j.refreshTTL)
}

func (j *JWTManager) generate(userID, audience string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &CustomClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Audience:  jwt.ClaimStrings{audience},
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(j.privateKey)
}

func (j *JWTManager) VerifyToken(tokenStr string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, ErrInvalidToken
		}
		return j.publicKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ParseAccess returns the user id carried by a valid access token.
func (j *JWTManager) ParseAccess(tokenStr string) (string, error) {
	return j.parseWithAudience(tokenStr, "access")
}

// ParseRefresh returns the user id carried by a valid refresh token.
func (j *JWTManager) ParseRefresh(tokenStr string) (string, error) {
	return j.parseWithAudience(tokenStr, "refresh")
}

func (j *JWTManager) parseWithAudience(tokenStr, audience string) (string, error) {
	claims, err := j.VerifyToken(tokenStr)
	if err != nil {
		return "", err
	}
	for _, aud := range claims.Audience {
		if aud == audience {
			return claims.UserID, nil
		}
	}
	return "", ErrInvalidToken
}

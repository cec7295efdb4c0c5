package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	accessIssuer  = "splendor-access"
	refreshIssuer = "splendor-refresh"
)

// Claims UserID 是玩家名，Subject 是签发时生成的身份 key，刷新时保持不变
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// NewIdentityKey 每次登录生成一个新的身份
func NewIdentityKey() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// TokenIssuer 签发和校验 access/refresh token
type TokenIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewTokenIssuer(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
}

func (t *TokenIssuer) sign(userID, key, issuer string, ttl time.Duration, secret []byte) (string, error) {
	now := t.now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   key,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (t *TokenIssuer) GenerateAccessToken(userID, key string) (string, error) {
	return t.sign(userID, key, accessIssuer, t.accessTTL, t.accessSecret)
}

func (t *TokenIssuer) GenerateRefreshToken(userID, key string) (string, error) {
	return t.sign(userID, key, refreshIssuer, t.refreshTTL, t.refreshSecret)
}

func (t *TokenIssuer) ParseAccessToken(tokenStr string) (*Claims, error) {
	return parseToken(tokenStr, t.accessSecret, accessIssuer)
}

func (t *TokenIssuer) ParseRefreshToken(tokenStr string) (*Claims, error) {
	return parseToken(tokenStr, t.refreshSecret, refreshIssuer)
}

// Identify 校验 access token，返回玩家名和身份 key
func (t *TokenIssuer) Identify(tokenStr string) (string, string, error) {
	claims, err := t.ParseAccessToken(tokenStr)
	if err != nil {
		return "", "", err
	}
	return claims.UserID, claims.Subject, nil
}

func parseToken(tokenStr string, secret []byte, issuer string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		if claims.Issuer != issuer {
			return nil, errors.New("invalid token issuer")
		}
		if claims.UserID == "" || claims.Subject == "" {
			return nil, errors.New("token has no identity")
		}
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

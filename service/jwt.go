package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Claims 令牌载荷，身份以邮箱为准
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenManager 签发和验证 JWT 令牌
type TokenManager struct {
	secret []byte
	expiry time.Duration
}

func NewTokenManager(secret string, expiryMinutes int) *TokenManager {
	if expiryMinutes <= 0 {
		expiryMinutes = 1440
	}
	return &TokenManager{
		secret: []byte(secret),
		expiry: time.Duration(expiryMinutes) * time.Minute,
	}
}

// Sign 生成JWT令牌
func (m *TokenManager) Sign(email string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   email,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify 验证JWT令牌，返回其中的邮箱
func (m *TokenManager) Verify(tokenString string) (string, error) {
	if len(m.secret) == 0 {
		return "", errors.New("签名密钥未初始化")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.Email == "" {
		return "", jwt.ErrSignatureInvalid
	}

	return claims.Email, nil
}

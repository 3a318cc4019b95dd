package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"MindfulChatGo/models"

	"github.com/golang-jwt/jwt/v4"
)

var jwtKey []byte

var (
	ErrInvalidToken = errors.New("无效的令牌")
	ErrEmptySecret  = errors.New("JWT_SECRET is empty")
)

// Claims carries the identity provider profile; Subject is the user id.
type Claims struct {
	Email           string `json:"email,omitempty"`
	FirstName       string `json:"first_name,omitempty"`
	LastName        string `json:"last_name,omitempty"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
	jwt.RegisteredClaims
}

// InitJWT 设置签名密钥; an empty secret leaves signing and verification disabled.
func InitJWT(secret string) error {
	if secret == "" {
		jwtKey = nil
		return ErrEmptySecret
	}
	jwtKey = []byte(secret)
	return nil
}

// GenerateToken 生成JWT令牌
func GenerateToken(user *models.User) (string, error) {
	if len(jwtKey) == 0 {
		return "", ErrEmptySecret
	}
	claims := &Claims{
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		ProfileImageURL: user.ProfileImageURL,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour * 30)),
		},
	}
	if user.Email != nil {
		claims.Email = *user.Email
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

// ParseToken 解析JWT令牌, with or without the "Bearer " prefix
func ParseToken(tokenString string) (*Claims, error) {
	tokenString = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(tokenString), "Bearer "))
	if tokenString == "" || len(jwtKey) == 0 {
		return nil, ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return jwtKey, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid && claims.Subject != "" {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

// User converts verified claims into the profile to upsert.
func (c *Claims) User() *models.User {
	user := &models.User{
		ID:              c.Subject,
		FirstName:       c.FirstName,
		LastName:        c.LastName,
		ProfileImageURL: c.ProfileImageURL,
	}
	if c.Email != "" {
		email := c.Email
		user.Email = &email
	}
	return user
}

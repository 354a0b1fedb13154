package util

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Claims 会话令牌只携带会话缓存的 key，其余状态都在服务端
type Claims struct {
	SessionKey string `json:"sid"`
	jwt.RegisteredClaims
}

func GenerateSessionToken(sessionKey, secret string, expiration time.Duration) (string, error) {
	now := time.Now()

	claims := &Claims{
		SessionKey: sessionKey,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
			Issuer:    TokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseSessionToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(TokenIssuer))

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid && claims.SessionKey != "" {
		return claims, nil
	}

	return nil, errors.New("invalid session token")
}

func GetSessionFromContext(c *gin.Context) *Claims {
	value, exists := c.Get(ContextSessionKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*Claims)
	if !ok {
		return nil
	}
	return claims
}

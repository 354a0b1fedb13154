package middleware

import (
	"careerquest_portal/internal/config"
	"careerquest_portal/internal/util"
	"careerquest_portal/pkg/logger"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// tokenFromRequest 依次读取 Authorization 头与会话 cookie
func tokenFromRequest(c *gin.Context, cookieName string) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		if token := strings.TrimPrefix(authHeader, "Bearer "); token != authHeader {
			return strings.TrimSpace(token)
		}
	}
	if token, err := c.Cookie(cookieName); err == nil {
		return token
	}
	return ""
}

func parseClaims(c *gin.Context) (*util.Claims, bool) {
	cfg := c.MustGet(util.ContextConfigKey).(*config.Config)
	tokenString := tokenFromRequest(c, cfg.Session.CookieName)
	if tokenString == "" {
		return nil, false
	}

	claims, err := util.ParseSessionToken(tokenString, cfg.JWT.Secret)
	if err != nil {
		logger.Log.Debug("Session token rejected", zap.Error(err))
		return nil, false
	}
	return claims, true
}

// SessionMiddleware 要求请求携带有效的会话令牌
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseClaims(c)
		if !ok {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set(util.ContextSessionKey, claims)
		c.Next()
	}
}

// OptionalSessionMiddleware 有令牌时解析，没有时放行
func OptionalSessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := parseClaims(c); ok {
			c.Set(util.ContextSessionKey, claims)
		}
		c.Next()
	}
}

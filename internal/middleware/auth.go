package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	KeyOperator = "operator"

	// AnonymousOperator 未启用认证且请求未声明操作人时使用
	AnonymousOperator = "anonymous"
)

// OperatorClaims 令牌中的操作人信息
type OperatorClaims struct {
	UserID string `json:"uid"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// Operator 取当前请求的操作人
func Operator(c *gin.Context) string {
	if op := c.GetString(KeyOperator); op != "" {
		return op
	}
	return AnonymousOperator
}

// OperatorAuth 识别操作人。secret 为空时信任 X-Operator 请求头；
// 否则要求 HS256 Bearer 令牌，uid 作为操作人。
func OperatorAuth(secret string) gin.HandlerFunc {
	if secret == "" {
		return func(c *gin.Context) {
			operator := strings.TrimSpace(c.GetHeader("X-Operator"))
			if operator == "" {
				operator = AnonymousOperator
			}
			c.Set(KeyOperator, operator)
			c.Next()
		}
	}

	return func(c *gin.Context) {
		var tokenString string
		parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			tokenString = parts[1]
		}
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    40100,
				"message": "Authorization is required",
			})
			c.Abort()
			return
		}

		claims := &OperatorClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid || claims.UserID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    40102,
				"message": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(KeyOperator, claims.UserID)
		c.Next()
	}
}

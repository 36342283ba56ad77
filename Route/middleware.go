package Route

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"conduit/service"
)

// credentialKey 上下文中保存令牌邮箱的键
const credentialKey = "credential"

// authMiddleware 解析 Authorization 头中的令牌。
// required 为 true 时缺失或无效直接 401；为 false 时静默按匿名放行，
// 公开接口带了有效令牌也能拿到个性化字段。
func authMiddleware(tokens *service.TokenManager, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c.GetHeader("Authorization"))
		if token == "" {
			if required {
				c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse("unauthorized request"))
				return
			}
			c.Next()
			return
		}

		email, err := tokens.Verify(token)
		if err != nil {
			if required {
				c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse("unauthorized request"))
				return
			}
			// 可选认证时验证失败按匿名处理
			c.Next()
			return
		}

		c.Set(credentialKey, email)
		c.Next()
	}
}

// extractToken 支持 "Token <jwt>" 与 "Bearer <jwt>" 两种前缀
func extractToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if parts[0] != "Token" && parts[0] != "Bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// credential 取出当前请求的认证邮箱，匿名时返回空串
func credential(c *gin.Context) string {
	email, _ := c.Get(credentialKey)
	s, _ := email.(string)
	return s
}

// requestIDMiddleware 为每个请求附加 X-Request-Id，便于日志关联
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-Id", id)
		c.Next()
	}
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"allumni-network/pkg/jwt"
	"allumni-network/pkg/redis"
	"allumni-network/pkg/response"
)

// 上下文键
const (
	CtxUserID = "user_id"
	CtxClaims = "claims"
)

// OptionalSession 会话中间件（可选）
// 携带 Authorization: Bearer <token> 时校验并注入会话；未携带时直接放行。
// 携带了但无效、过期或已注销时返回 401。
// rdb 为 nil 时跳过黑名单检查
func OptionalSession(jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) gin.HandlerFunc {
	return session(jwtMgr, rdb, logger, false)
}

// RequireSession 会话中间件（必需）
func RequireSession(jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) gin.HandlerFunc {
	return session(jwtMgr, rdb, logger, true)
}

func session(jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			if required {
				response.AbortWithError(c, http.StatusUnauthorized, "Sessão não informada")
				return
			}
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.AbortWithError(c, http.StatusUnauthorized, "Cabeçalho de autenticação inválido")
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.AbortWithError(c, http.StatusUnauthorized, "Sessão inválida ou expirada")
			return
		}

		if claims.TokenType != jwt.TokenTypeAccess {
			response.AbortWithError(c, http.StatusUnauthorized, "Sessão inválida ou expirada")
			return
		}

		if rdb != nil {
			revoked, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID)
			if err != nil {
				// Redis 出错时降级放行
				logger.Warn("检查 Token 黑名单失败", zap.Error(err))
			} else if revoked {
				response.AbortWithError(c, http.StatusUnauthorized, "Sessão encerrada")
				return
			}
		}

		// 将会话信息注入上下文
		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxClaims, claims)

		c.Next()
	}
}

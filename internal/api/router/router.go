package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"allumni-network/config"
	"allumni-network/internal/api/handler"
	"allumni-network/internal/api/middleware"
	"allumni-network/pkg/jwt"
	"allumni-network/pkg/redis"
	"allumni-network/pkg/response"
)

// 请求体上限：附件上限之外预留 JSON 包装与其他字段的空间
const bodyOverhead = 64 << 10

// Setup 初始化并返回 Gin 路由引擎
// rdb 为 nil 时跳过 Token 黑名单与限流
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.CustomRecovery(func(c *gin.Context, _ any) {
		response.InternalError(c)
	}))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(int64(cfg.Chat.MaxPayloadBytes) + bodyOverhead))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Rota não encontrada")
	})

	api := r.Group("/api")
	api.Use(middleware.OptionalSession(jwtMgr, rdb, logger))
	{
		// 认证模块
		auth := api.Group("/auth")
		auth.Use(middleware.RateLimit(rdb, cfg.Auth.RateLimit, time.Minute, logger))
		{
			auth.POST("/cadastro", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/logout", middleware.RequireSession(jwtMgr, rdb, logger), h.Auth.Logout)
		}

		// 资料模块
		api.GET("/perfil/:userId", h.Profile.GetProfile)
		api.PUT("/perfil/:userId", h.Profile.UpdateProfile)

		// 职位模块
		jobs := api.Group("/vagas")
		{
			jobs.GET("", h.Job.ListJobs)
			jobs.GET("/:id", h.Job.GetJob)
			jobs.POST("", h.Job.CreateJob)
			jobs.POST("/:id/candidatar", h.Job.Apply)
		}

		// 群组模块
		groups := api.Group("/grupos")
		{
			groups.GET("", h.Group.ListGroups)
			groups.GET("/usuario/:userId", h.Group.ListUserGroups)
			groups.POST("", h.Group.CreateGroup)
			groups.POST("/:id/entrar", h.Group.JoinGroup)
			groups.GET("/:id/membros", h.Group.ListMembers)
		}

		// 聊天模块
		chat := api.Group("/chat")
		{
			chat.GET("/privado/:userId1/:userId2", h.Chat.ListPrivate)
			chat.GET("/grupo/:grupoId", h.Chat.ListGroup)
			chat.POST("/enviar", h.Chat.Send)
		}

		// 管理模块（管理员身份由 Service 层逐次校验）
		admin := api.Group("/admin")
		{
			admin.GET("/usuarios", h.Admin.ListUsers)
			admin.GET("/usuarios/export", h.Export.ExportUsers)
			admin.PUT("/usuarios/:id/fechar", h.Admin.CloseAccount)
			admin.PUT("/usuarios/:id/suspender", h.Admin.SuspendAccount)
			admin.PUT("/usuarios/:id/reabrir", h.Admin.ReopenAccount)
			admin.PUT("/usuarios/:id/tornar-admin", h.Admin.Promote)
			admin.PUT("/usuarios/:id/remover-admin", h.Admin.Demote)
			admin.DELETE("/vagas/:id", h.Admin.RemoveJob)
			admin.DELETE("/grupos/:id", h.Admin.RemoveGroup)
		}
	}

	return r
}

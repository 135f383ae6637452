package service

import (
	"go.uber.org/zap"

	"allumni-network/config"
	"allumni-network/internal/repository"
	"allumni-network/pkg/jwt"
	"allumni-network/pkg/password"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth    AuthService
	Profile ProfileService
	Job     JobService
	Group   GroupService
	Chat    ChatService
	Admin   AdminService
	Export  ExportService
}

// NewService 创建 Service 聚合
// 两种存储后端共用同一套业务实现
func NewService(
	cfg *config.Config,
	store repository.Store,
	hasher password.Hasher,
	jwtMgr *jwt.Manager,
	revoker TokenRevoker,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:    NewAuthService(store, hasher, jwtMgr, revoker, logger),
		Profile: NewProfileService(store, logger),
		Job:     NewJobService(store, logger),
		Group:   NewGroupService(store, logger),
		Chat:    NewChatService(store, cfg.Chat.MaxPayloadBytes, logger),
		Admin:   NewAdminService(store, logger),
		Export:  NewExportService(store, logger),
	}
}

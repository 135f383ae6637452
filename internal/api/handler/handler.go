package handler

import "allumni-network/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth    *AuthHandler
	Profile *ProfileHandler
	Job     *JobHandler
	Group   *GroupHandler
	Chat    *ChatHandler
	Admin   *AdminHandler
	Export  *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(svc.Auth),
		Profile: NewProfileHandler(svc.Profile),
		Job:     NewJobHandler(svc.Job),
		Group:   NewGroupHandler(svc.Group),
		Chat:    NewChatHandler(svc.Chat),
		Admin:   NewAdminHandler(svc.Admin),
		Export:  NewExportHandler(svc.Export),
	}
}

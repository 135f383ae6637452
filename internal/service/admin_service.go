package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"allumni-network/internal/dto"
	"allumni-network/internal/model"
	"allumni-network/internal/repository"
)

// AdminService 管理业务接口
//
// 每次调用都重新读取调用者的管理员标记，不信任会话中缓存的身份。
// 级联删除按子记录 → 父记录顺序执行，不包裹事务；中途失败后重试即可补全。
type AdminService interface {
	ListUsers(ctx context.Context, adminID int64) ([]dto.UserView, error)
	// CloseAccount 删除账号及其资料、消息、成员关系、申请；其创建的职位和群组保留
	CloseAccount(ctx context.Context, targetID, adminID int64) error
	// SetAccountStatus 暂停（fechada）或恢复（ativa）账号，不删除数据
	SetAccountStatus(ctx context.Context, targetID, adminID int64, status string) error
	Promote(ctx context.Context, targetID, adminID int64) error
	Demote(ctx context.Context, targetID, adminID int64) error
	RemoveJob(ctx context.Context, jobID, adminID int64) error
	RemoveGroup(ctx context.Context, groupID, adminID int64) error
}

type adminService struct {
	store  repository.Store
	logger *zap.Logger
}

// NewAdminService 创建 AdminService 实例
func NewAdminService(store repository.Store, logger *zap.Logger) AdminService {
	return &adminService{store: store, logger: logger}
}

// requireAdmin 调用者必须存在、是管理员且账号正常
func requireAdmin(ctx context.Context, store repository.Store, logger *zap.Logger, adminID int64) error {
	if adminID == 0 {
		return ErrAdminIDRequired
	}
	var caller model.User
	if err := store.Get(ctx, repository.Users, adminID, &caller); err != nil {
		return storageError(logger, "查询管理员失败", err, ErrAdminOnly)
	}
	if !caller.IsAdmin || !caller.Active() {
		return ErrAdminOnly
	}
	return nil
}

// ──── ListUsers ────

func (s *adminService) ListUsers(ctx context.Context, adminID int64) ([]dto.UserView, error) {
	if err := requireAdmin(ctx, s.store, s.logger, adminID); err != nil {
		return nil, err
	}
	users, err := listUsersNewestFirst(ctx, s.store)
	if err != nil {
		return nil, storageError(s.logger, "查询用户列表失败", err, nil)
	}
	views := make([]dto.UserView, 0, len(users))
	for i := range users {
		views = append(views, toUserView(&users[i]))
	}
	return views, nil
}

func listUsersNewestFirst(ctx context.Context, store repository.Store) ([]model.User, error) {
	var users []model.User
	if err := store.List(ctx, repository.Users, nil, &users); err != nil {
		return nil, err
	}
	sort.SliceStable(users, func(i, j int) bool {
		if !users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].CreatedAt.After(users[j].CreatedAt)
		}
		return users[i].ID > users[j].ID
	})
	return users, nil
}

// ──── CloseAccount ────

func (s *adminService) CloseAccount(ctx context.Context, targetID, adminID int64) error {
	if err := requireAdmin(ctx, s.store, s.logger, adminID); err != nil {
		return err
	}
	if targetID == adminID {
		return ErrSelfClose
	}

	var target model.User
	if err := s.store.Get(ctx, repository.Users, targetID, &target); err != nil {
		return storageError(s.logger, "查询目标用户失败", err, ErrUserNotFound)
	}

	// 1. 资料
	if profile, err := findProfile(ctx, s.store, targetID); err != nil {
		return storageError(s.logger, "查询用户资料失败", err, nil)
	} else if profile != nil {
		if err := s.store.Delete(ctx, repository.Profiles, profile.ID); err != nil {
			return storageError(s.logger, "删除用户资料失败", err, nil)
		}
	}

	// 2. 作为发送者或接收者的消息
	for _, field := range []string{"remetente_id", "destinatario_id"} {
		if err := s.deleteWhere(ctx, repository.Messages, field, targetID); err != nil {
			return err
		}
	}

	// 3. 成员关系、职位申请
	if err := s.deleteWhere(ctx, repository.Memberships, "usuario_id", targetID); err != nil {
		return err
	}
	if err := s.deleteWhere(ctx, repository.Applications, "usuario_id", targetID); err != nil {
		return err
	}

	// 4. 用户本身
	if err := s.store.Delete(ctx, repository.Users, targetID); err != nil {
		return storageError(s.logger, "删除用户失败", err, nil)
	}

	s.logger.Info("账号已关闭", zap.Int64("user_id", targetID), zap.Int64("admin_id", adminID))
	return nil
}

// ──── SetAccountStatus ────

func (s *adminService) SetAccountStatus(ctx context.Context, targetID, adminID int64, status string) error {
	if status != model.AccountActive && status != model.AccountClosed {
		return ErrInvalidStatus
	}
	if err := requireAdmin(ctx, s.store, s.logger, adminID); err != nil {
		return err
	}
	if targetID == adminID && status == model.AccountClosed {
		return ErrSelfSuspend
	}
	return s.updateUser(ctx, targetID, repository.Fields{"status_conta": status})
}

// ──── Promote / Demote ────

func (s *adminService) Promote(ctx context.Context, targetID, adminID int64) error {
	if err := requireAdmin(ctx, s.store, s.logger, adminID); err != nil {
		return err
	}
	return s.updateUser(ctx, targetID, repository.Fields{"is_admin": true})
}

func (s *adminService) Demote(ctx context.Context, targetID, adminID int64) error {
	if err := requireAdmin(ctx, s.store, s.logger, adminID); err != nil {
		return err
	}
	if targetID == adminID {
		return ErrSelfDemote
	}
	return s.updateUser(ctx, targetID, repository.Fields{"is_admin": false})
}

// ──── RemoveJob / RemoveGroup ────

func (s *adminService) RemoveJob(ctx context.Context, jobID, adminID int64) error {
	if err := requireAdmin(ctx, s.store, s.logger, adminID); err != nil {
		return err
	}
	var job model.Job
	if err := s.store.Get(ctx, repository.Jobs, jobID, &job); err != nil {
		return storageError(s.logger, "查询职位失败", err, ErrJobNotFound)
	}

	if err := s.deleteWhere(ctx, repository.Applications, "vaga_id", jobID); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, repository.Jobs, jobID); err != nil {
		return storageError(s.logger, "删除职位失败", err, nil)
	}

	s.logger.Info("职位已移除", zap.Int64("job_id", jobID), zap.Int64("admin_id", adminID))
	return nil
}

func (s *adminService) RemoveGroup(ctx context.Context, groupID, adminID int64) error {
	if err := requireAdmin(ctx, s.store, s.logger, adminID); err != nil {
		return err
	}
	var group model.Group
	if err := s.store.Get(ctx, repository.Groups, groupID, &group); err != nil {
		return storageError(s.logger, "查询群组失败", err, ErrGroupNotFound)
	}

	if err := s.deleteWhere(ctx, repository.Messages, "grupo_id", groupID); err != nil {
		return err
	}
	if err := s.deleteWhere(ctx, repository.Memberships, "grupo_id", groupID); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, repository.Groups, groupID); err != nil {
		return storageError(s.logger, "删除群组失败", err, nil)
	}

	s.logger.Info("群组已移除", zap.Int64("group_id", groupID), zap.Int64("admin_id", adminID))
	return nil
}

// ── 辅助函数 ──

func (s *adminService) updateUser(ctx context.Context, userID int64, fields repository.Fields) error {
	fields["updated_at"] = time.Now().UTC()
	if err := s.store.Update(ctx, repository.Users, userID, fields); err != nil {
		return storageError(s.logger, "更新用户失败", err, ErrUserNotFound)
	}
	return nil
}

// deleteWhere 删除某集合中 field = id 的全部记录
func (s *adminService) deleteWhere(ctx context.Context, c repository.Collection, field string, id int64) error {
	var keys []model.Key
	if err := s.store.List(ctx, c, repository.Where(field, id), &keys); err != nil {
		return storageError(s.logger, "查询待删除记录失败", err, nil)
	}
	for _, k := range keys {
		if err := s.store.Delete(ctx, c, k.ID); err != nil {
			return storageError(s.logger, "级联删除失败", err, nil)
		}
	}
	return nil
}

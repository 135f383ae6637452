package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"

	"allumni-network/internal/dto"
	"allumni-network/internal/model"
	"allumni-network/internal/repository"
)

// GroupService 群组业务接口
type GroupService interface {
	// List 全部群组，按创建时间倒序
	List(ctx context.Context) ([]dto.GroupView, error)
	// ListByUser 用户所在的群组（含角色），按名称升序
	ListByUser(ctx context.Context, userID int64) ([]dto.GroupView, error)
	Create(ctx context.Context, req *dto.CreateGroupRequest) (int64, error)
	Join(ctx context.Context, groupID int64, req *dto.JoinGroupRequest) (int64, error)
	// ListMembers 群组成员，按加入时间升序
	ListMembers(ctx context.Context, groupID int64) ([]dto.MemberView, error)
}

type groupService struct {
	store  repository.Store
	logger *zap.Logger
}

// NewGroupService 创建 GroupService 实例
func NewGroupService(store repository.Store, logger *zap.Logger) GroupService {
	return &groupService{store: store, logger: logger}
}

// ──── List ────

func (s *groupService) List(ctx context.Context) ([]dto.GroupView, error) {
	var groups []model.Group
	if err := s.store.List(ctx, repository.Groups, nil, &groups); err != nil {
		return nil, storageError(s.logger, "查询群组列表失败", err, nil)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if !groups[i].CreatedAt.Equal(groups[j].CreatedAt) {
			return groups[i].CreatedAt.After(groups[j].CreatedAt)
		}
		return groups[i].ID > groups[j].ID
	})

	names := newNameCache(s.store)
	views := make([]dto.GroupView, 0, len(groups))
	for i := range groups {
		v, err := s.toView(ctx, names, &groups[i], "")
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

// ──── ListByUser ────

func (s *groupService) ListByUser(ctx context.Context, userID int64) ([]dto.GroupView, error) {
	var memberships []model.Membership
	if err := s.store.List(ctx, repository.Memberships, repository.Where("usuario_id", userID), &memberships); err != nil {
		return nil, storageError(s.logger, "查询用户群组失败", err, nil)
	}

	names := newNameCache(s.store)
	views := make([]dto.GroupView, 0, len(memberships))
	for _, m := range memberships {
		var g model.Group
		err := s.store.Get(ctx, repository.Groups, m.GroupID, &g)
		if errors.Is(err, repository.ErrNotFound) {
			continue // 群组已被移除
		}
		if err != nil {
			return nil, storageError(s.logger, "查询群组失败", err, nil)
		}
		v, err := s.toView(ctx, names, &g, m.Role)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}

	// 按名称逐字节排序，大写字母排在小写之前
	sort.SliceStable(views, func(i, j int) bool {
		if views[i].Name != views[j].Name {
			return views[i].Name < views[j].Name
		}
		return views[i].ID < views[j].ID
	})
	return views, nil
}

// ──── Create ────
//
// 先插入群组，再插入创建者的 admin 成员关系；两步之间无事务

func (s *groupService) Create(ctx context.Context, req *dto.CreateGroupRequest) (int64, error) {
	if blank(req.Name) || req.CreatedBy == 0 {
		return 0, ErrGroupFieldsRequired
	}

	var creator model.User
	if err := s.store.Get(ctx, repository.Users, req.CreatedBy, &creator); err != nil {
		return 0, storageError(s.logger, "查询群组创建者失败", err, ErrUserNotFound)
	}
	if !creator.Active() {
		return 0, ErrAccountClosed
	}

	groupType := req.Type
	if blank(groupType) {
		groupType = model.GroupPublic
	}
	now := time.Now().UTC()
	group := &model.Group{
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   req.CreatedBy,
		Type:        groupType,
		CreatedAt:   now,
	}
	id, err := s.store.Insert(ctx, repository.Groups, group)
	if err != nil {
		return 0, storageError(s.logger, "创建群组失败", err, nil)
	}

	membership := &model.Membership{
		GroupID:  id,
		UserID:   req.CreatedBy,
		Role:     model.MemberRoleAdmin,
		JoinedAt: now,
	}
	if _, err := s.store.Insert(ctx, repository.Memberships, membership); err != nil {
		s.logger.Error("群组已创建但写入创建者成员关系失败", zap.Int64("group_id", id), zap.Error(err))
		return 0, storageError(s.logger, "创建群组成员失败", err, nil)
	}
	return id, nil
}

// ──── Join ────

func (s *groupService) Join(ctx context.Context, groupID int64, req *dto.JoinGroupRequest) (int64, error) {
	if req.UserID == 0 {
		return 0, ErrUserIDRequired
	}

	var group model.Group
	if err := s.store.Get(ctx, repository.Groups, groupID, &group); err != nil {
		return 0, storageError(s.logger, "查询群组失败", err, ErrGroupNotFound)
	}
	var user model.User
	if err := s.store.Get(ctx, repository.Users, req.UserID, &user); err != nil {
		return 0, storageError(s.logger, "查询用户失败", err, ErrUserNotFound)
	}
	if !user.Active() {
		return 0, ErrAccountClosed
	}

	membership := &model.Membership{
		GroupID:  groupID,
		UserID:   req.UserID,
		Role:     model.MemberRoleMember,
		JoinedAt: time.Now().UTC(),
	}
	id, err := s.store.Insert(ctx, repository.Memberships, membership)
	if errors.Is(err, repository.ErrConstraintViolation) {
		return 0, ErrAlreadyMember
	}
	if err != nil {
		return 0, storageError(s.logger, "加入群组失败", err, nil)
	}
	return id, nil
}

// ──── ListMembers ────

func (s *groupService) ListMembers(ctx context.Context, groupID int64) ([]dto.MemberView, error) {
	var memberships []model.Membership
	if err := s.store.List(ctx, repository.Memberships, repository.Where("grupo_id", groupID), &memberships); err != nil {
		return nil, storageError(s.logger, "查询群组成员失败", err, nil)
	}

	sort.SliceStable(memberships, func(i, j int) bool {
		if !memberships[i].JoinedAt.Equal(memberships[j].JoinedAt) {
			return memberships[i].JoinedAt.Before(memberships[j].JoinedAt)
		}
		return memberships[i].ID < memberships[j].ID
	})

	members := make([]dto.MemberView, 0, len(memberships))
	for _, m := range memberships {
		var u model.User
		err := s.store.Get(ctx, repository.Users, m.UserID, &u)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, storageError(s.logger, "查询成员失败", err, nil)
		}
		members = append(members, dto.MemberView{
			ID:       u.ID,
			Name:     u.Name,
			Email:    u.Email,
			Course:   u.Course,
			Role:     m.Role,
			JoinedAt: m.JoinedAt,
		})
	}
	return members, nil
}

func (s *groupService) toView(ctx context.Context, names *nameCache, g *model.Group, role string) (dto.GroupView, error) {
	creator, err := names.name(ctx, g.CreatedBy)
	if err != nil {
		return dto.GroupView{}, storageError(s.logger, "查询群组创建者失败", err, nil)
	}
	var members []model.Membership
	if err := s.store.List(ctx, repository.Memberships, repository.Where("grupo_id", g.ID), &members); err != nil {
		return dto.GroupView{}, storageError(s.logger, "统计群组成员失败", err, nil)
	}
	return dto.GroupView{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		CreatedBy:   g.CreatedBy,
		Type:        g.Type,
		CreatedAt:   g.CreatedAt,
		CreatorName: creator,
		MemberCount: len(members),
		Role:        role,
	}, nil
}

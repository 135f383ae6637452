package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"allumni-network/internal/dto"
	"allumni-network/internal/model"
	"allumni-network/internal/repository"
)

// ProfileService 用户资料业务接口
type ProfileService interface {
	Get(ctx context.Context, userID int64) (*dto.ProfileResponse, error)
	Update(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) error
}

type profileService struct {
	store  repository.Store
	logger *zap.Logger
}

// NewProfileService 创建 ProfileService 实例
func NewProfileService(store repository.Store, logger *zap.Logger) ProfileService {
	return &profileService{store: store, logger: logger}
}

// ──── Get ────

func (s *profileService) Get(ctx context.Context, userID int64) (*dto.ProfileResponse, error) {
	var user model.User
	if err := s.store.Get(ctx, repository.Users, userID, &user); err != nil {
		return nil, storageError(s.logger, "查询用户失败", err, ErrUserNotFound)
	}
	profile, err := findProfile(ctx, s.store, userID)
	if err != nil {
		return nil, storageError(s.logger, "查询用户资料失败", err, nil)
	}
	return &dto.ProfileResponse{
		User:    toUserView(&user),
		Profile: toProfileView(profile),
	}, nil
}

// ──── Update ────
//
// 用户字段（nome / curso / ano_formatura）仅在非空时更新；
// 资料字段只要出现在请求中就更新，允许置空。资料不存在时首次写入即创建。

func (s *profileService) Update(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) error {
	now := time.Now().UTC()

	// 1. 用户字段
	userFields := repository.Fields{}
	if !blank(req.Name) {
		userFields["nome"] = req.Name
	}
	if !blank(req.Course) {
		userFields["curso"] = req.Course
	}
	if req.GraduationYear != nil && *req.GraduationYear != 0 {
		userFields["ano_formatura"] = *req.GraduationYear
	}
	if len(userFields) > 0 {
		userFields["updated_at"] = now
	}
	// 空字段集同样校验用户存在
	if err := s.store.Update(ctx, repository.Users, userID, userFields); err != nil {
		return storageError(s.logger, "更新用户失败", err, ErrUserNotFound)
	}

	// 2. 资料字段
	profileFields := repository.Fields{}
	setIfPresent(profileFields, "bio", req.Bio)
	setIfPresent(profileFields, "linkedin_url", req.LinkedinURL)
	setIfPresent(profileFields, "github_url", req.GithubURL)
	setIfPresent(profileFields, "telefone", req.Phone)
	setIfPresent(profileFields, "empresa_atual", req.Employer)
	setIfPresent(profileFields, "cargo_atual", req.JobTitle)
	setIfPresent(profileFields, "foto_perfil", req.Photo)
	if len(profileFields) == 0 {
		return nil
	}
	profileFields["updated_at"] = now

	existing, err := findProfile(ctx, s.store, userID)
	if err != nil {
		return storageError(s.logger, "查询用户资料失败", err, nil)
	}
	if existing != nil {
		if err := s.store.Update(ctx, repository.Profiles, existing.ID, profileFields); err != nil {
			return storageError(s.logger, "更新用户资料失败", err, nil)
		}
		return nil
	}

	profile := &model.Profile{
		UserID:      userID,
		Bio:         req.Bio,
		LinkedinURL: req.LinkedinURL,
		GithubURL:   req.GithubURL,
		Phone:       req.Phone,
		Employer:    req.Employer,
		JobTitle:    req.JobTitle,
		Photo:       req.Photo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := s.store.Insert(ctx, repository.Profiles, profile); err != nil {
		return storageError(s.logger, "创建用户资料失败", err, nil)
	}
	return nil
}

func setIfPresent(fields repository.Fields, column string, v *string) {
	if v != nil {
		fields[column] = *v
	}
}

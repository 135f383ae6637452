package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"allumni-network/internal/dto"
	"allumni-network/internal/model"
	"allumni-network/internal/repository"
	apperrors "allumni-network/pkg/errors"
	"allumni-network/pkg/jwt"
	"allumni-network/pkg/password"
)

// TokenRevoker 会话 Token 吊销（Redis 黑名单）
type TokenRevoker interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
}

// AuthService 认证业务接口
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (int64, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, claims *jwt.Claims) error
	// EnsureAdmin 启动时确保配置的管理员账号存在，返回是否新建
	EnsureAdmin(ctx context.Context, name, email, plain string) (bool, error)
}

type authService struct {
	store   repository.Store
	hasher  password.Hasher
	jwtMgr  *jwt.Manager // 为 nil 时不签发 Token
	revoker TokenRevoker // 为 nil 时登出不吊销
	logger  *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	store repository.Store,
	hasher password.Hasher,
	jwtMgr *jwt.Manager,
	revoker TokenRevoker,
	logger *zap.Logger,
) AuthService {
	return &authService{
		store:   store,
		hasher:  hasher,
		jwtMgr:  jwtMgr,
		revoker: revoker,
		logger:  logger,
	}
}

// ──── Register ────

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (int64, error) {
	if blank(req.Name) || blank(req.Email) || req.Password == "" {
		return 0, ErrRegisterFieldsRequired
	}

	// 1. 邮箱预检（唯一索引兜底并发注册）
	var existing model.User
	err := s.store.GetByUnique(ctx, repository.Users, "email", req.Email, &existing)
	if err == nil {
		return 0, ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return 0, storageError(s.logger, "查询邮箱失败", err, nil)
	}

	// 2. 创建用户
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return 0, err
	}
	year := req.GraduationYear
	if year != nil && *year == 0 {
		year = nil
	}
	user := &model.User{
		Name:           req.Name,
		Email:          req.Email,
		PasswordHash:   hash,
		Course:         nonEmpty(req.Course),
		GraduationYear: year,
		AccountType:    model.AccountTypeAlumni,
		Status:         model.AccountActive,
	}
	id, err := s.createUserWithProfile(ctx, user)
	if err != nil {
		return 0, err
	}

	s.logger.Info("用户注册成功", zap.Int64("user_id", id))
	return id, nil
}

// createUserWithProfile 插入用户后插入空资料；两步之间无事务
func (s *authService) createUserWithProfile(ctx context.Context, user *model.User) (int64, error) {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	id, err := s.store.Insert(ctx, repository.Users, user)
	if errors.Is(err, repository.ErrConstraintViolation) {
		return 0, ErrEmailTaken
	}
	if err != nil {
		return 0, storageError(s.logger, "创建用户失败", err, nil)
	}

	profile := &model.Profile{UserID: id, CreatedAt: now, UpdatedAt: now}
	if _, err := s.store.Insert(ctx, repository.Profiles, profile); err != nil {
		return 0, storageError(s.logger, "创建用户资料失败", err, nil)
	}
	return id, nil
}

// ──── Login ────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if blank(req.Email) || req.Password == "" {
		return nil, ErrLoginFieldsRequired
	}

	// 1. 查询用户
	var user model.User
	if err := s.store.GetByUnique(ctx, repository.Users, "email", req.Email, &user); err != nil {
		return nil, storageError(s.logger, "查询用户失败", err, ErrInvalidCredentials)
	}

	// 2. 验证密码，再检查账号状态
	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if !user.Active() {
		return nil, ErrAccountClosed
	}

	// 3. 附带资料
	profile, err := findProfile(ctx, s.store, user.ID)
	if err != nil {
		return nil, storageError(s.logger, "查询用户资料失败", err, nil)
	}

	resp := &dto.LoginResponse{
		Success: true,
		User: dto.SessionUser{
			UserView: toUserView(&user),
			Profile:  toProfileView(profile),
		},
	}

	// 4. 签发会话 Token
	if s.jwtMgr != nil {
		token, err := s.jwtMgr.GenerateSessionToken(user.ID, user.IsAdmin)
		if err != nil {
			s.logger.Error("生成会话 Token 失败", zap.Error(err))
			return nil, apperrors.Internal(err)
		}
		resp.Token = token
	}

	return resp, nil
}

// ──── Logout ────

func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if s.revoker == nil || claims == nil {
		return nil
	}
	if err := s.revoker.BlacklistToken(ctx, claims.ID, claims.Remaining()); err != nil {
		s.logger.Error("吊销会话 Token 失败", zap.Int64("user_id", claims.UserID), zap.Error(err))
		return apperrors.Internal(err)
	}
	return nil
}

// ──── EnsureAdmin ────

func (s *authService) EnsureAdmin(ctx context.Context, name, email, plain string) (bool, error) {
	if blank(email) || plain == "" {
		return false, nil
	}

	var existing model.User
	err := s.store.GetByUnique(ctx, repository.Users, "email", email, &existing)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return false, storageError(s.logger, "查询管理员账号失败", err, nil)
	}

	hash, err := s.hasher.Hash(plain)
	if err != nil {
		return false, err
	}
	if blank(name) {
		name = "Administrador"
	}
	id, err := s.createUserWithProfile(ctx, &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		AccountType:  model.AccountTypeAdmin,
		IsAdmin:      true,
		Status:       model.AccountActive,
	})
	if errors.Is(err, ErrEmailTaken) {
		// 并发启动时另一实例已创建
		return false, nil
	}
	if err != nil {
		return false, err
	}

	s.logger.Info("已创建初始管理员账号", zap.Int64("user_id", id), zap.String("email", email))
	return true, nil
}

// ── 辅助函数 ──

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// nonEmpty 空字符串视为未提供
func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

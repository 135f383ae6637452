package service

import (
	"context"
	"errors"

	"allumni-network/internal/dto"
	"allumni-network/internal/model"
	"allumni-network/internal/repository"
)

func toUserView(u *model.User) dto.UserView {
	return dto.UserView{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Course:         u.Course,
		GraduationYear: u.GraduationYear,
		AccountType:    u.AccountType,
		IsAdmin:        u.IsAdmin,
		Status:         u.Status,
		CreatedAt:      u.CreatedAt,
	}
}

// toProfileView 资料不存在时传 nil，得到空视图
func toProfileView(p *model.Profile) dto.ProfileView {
	if p == nil {
		return dto.ProfileView{}
	}
	return dto.ProfileView{
		ID:          p.ID,
		UserID:      p.UserID,
		Bio:         p.Bio,
		LinkedinURL: p.LinkedinURL,
		GithubURL:   p.GithubURL,
		Phone:       p.Phone,
		Employer:    p.Employer,
		JobTitle:    p.JobTitle,
		Photo:       p.Photo,
		UpdatedAt:   p.UpdatedAt,
	}
}

// findProfile 读取用户资料，不存在时返回 nil
func findProfile(ctx context.Context, store repository.Store, userID int64) (*model.Profile, error) {
	var p model.Profile
	err := store.GetByUnique(ctx, repository.Profiles, "usuario_id", userID, &p)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// nameCache 单次请求内的用户名缓存，用于补充创建者 / 发送者名称
type nameCache struct {
	store repository.Store
	names map[int64]string
}

func newNameCache(store repository.Store) *nameCache {
	return &nameCache{store: store, names: make(map[int64]string)}
}

// name 用户已删除时返回 model.UnknownName
func (c *nameCache) name(ctx context.Context, userID int64) (string, error) {
	if n, ok := c.names[userID]; ok {
		return n, nil
	}
	var u model.User
	err := c.store.Get(ctx, repository.Users, userID, &u)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.names[userID] = model.UnknownName
	case err != nil:
		return "", err
	default:
		c.names[userID] = u.Name
	}
	return c.names[userID], nil
}

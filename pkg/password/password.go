package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	apperrors "allumni-network/pkg/errors"
)

// Hasher 单向密码哈希与校验
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(plain, digest string) bool
}

// BcryptHasher 基于 bcrypt 的实现（自带盐、代价可调）
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher 创建 bcrypt 哈希器；cost 非法时回退到默认代价
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plain string) (string, error) {
	if plain == "" {
		return "", apperrors.Invalid("Senha é obrigatória")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("密码哈希失败: %w", err)
	}
	return string(hash), nil
}

func (h *BcryptHasher) Verify(plain, digest string) bool {
	if plain == "" || digest == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}

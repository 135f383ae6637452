package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"allumni-network/internal/dto"
	apperrors "allumni-network/pkg/errors"
)

// ErrNotLoggedIn 本地没有已登录用户
var ErrNotLoggedIn = apperrors.Unauthorized("Faça login para continuar")

// Holder 客户端本地的当前用户
//
// 当前用户以 JSON 形式保存在单个文件中，进程重启后依然有效。
// 不使用包级状态，调用方显式持有 Holder。
type Holder struct {
	path string
	mu   sync.Mutex
}

// NewHolder 创建以 path 为存储文件的 Holder
func NewHolder(path string) *Holder {
	return &Holder{path: path}
}

// Path 存储文件路径
func (h *Holder) Path() string { return h.path }

// Save 保存当前用户（覆盖已有记录）
func (h *Holder) Save(user *dto.SessionUser) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("序列化会话失败: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(h.path), 0o700); err != nil {
		return fmt.Errorf("创建会话目录失败: %w", err)
	}
	// 先写临时文件再重命名，避免中途失败留下半截内容
	tmp := h.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("写入会话失败: %w", err)
	}
	if err := os.Rename(tmp, h.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("写入会话失败: %w", err)
	}
	return nil
}

// Current 当前用户；未登录时返回 nil, nil
func (h *Holder) Current() (*dto.SessionUser, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	data, err := os.ReadFile(h.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("读取会话失败: %w", err)
	}

	var user dto.SessionUser
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("解析会话失败: %w", err)
	}
	return &user, nil
}

// Require 页面守卫：未登录返回 ErrNotLoggedIn
func (h *Holder) Require() (*dto.SessionUser, error) {
	user, err := h.Current()
	if err != nil {
		return nil, err
	}
	if user == nil || user.ID == 0 {
		return nil, ErrNotLoggedIn
	}
	return user, nil
}

// Clear 退出登录；文件不存在不视为错误
func (h *Holder) Clear() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := os.Remove(h.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("清除会话失败: %w", err)
	}
	return nil
}

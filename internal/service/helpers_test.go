package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"allumni-network/config"
	"allumni-network/internal/dto"
	"allumni-network/internal/repository"
	"allumni-network/pkg/database"
	apperrors "allumni-network/pkg/errors"
	"allumni-network/pkg/jwt"
	"allumni-network/pkg/password"
)

// ── 测试辅助 ──

const testPayloadLimit = 1024

type testEnv struct {
	ctx     context.Context
	store   repository.Store
	svc     *Service
	jwt     *jwt.Manager
	revoker *fakeRevoker
}

// newTestEnv 基于内存嵌入式存储构建完整的 Service
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	db, err := database.OpenEmbedded(database.MemoryPath)
	if err != nil {
		t.Fatalf("打开内存库失败: %v", err)
	}
	store, err := repository.NewEmbeddedStore(ctx, db)
	if err != nil {
		t.Fatalf("初始化存储失败: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	cfg := &config.Config{
		Auth: config.AuthConfig{JWTSecret: "test-secret-key-for-unit-testing", SessionTTL: time.Hour},
		Chat: config.ChatConfig{MaxPayloadBytes: testPayloadLimit},
	}
	revoker := &fakeRevoker{}
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := NewService(cfg, store, password.NewBcryptHasher(bcrypt.MinCost), jwtMgr, revoker, zap.NewNop())
	return &testEnv{ctx: ctx, store: store, svc: svc, jwt: jwtMgr, revoker: revoker}
}

// register 注册用户并返回 ID
func (e *testEnv) register(t *testing.T, name, email string) int64 {
	t.Helper()
	id, err := e.svc.Auth.Register(e.ctx, &dto.RegisterRequest{Name: name, Email: email, Password: "secret1"})
	if err != nil {
		t.Fatalf("注册 %s 失败: %v", email, err)
	}
	return id
}

// registerAdmin 注册用户并直接在存储中授予管理员
func (e *testEnv) registerAdmin(t *testing.T, name, email string) int64 {
	t.Helper()
	id := e.register(t, name, email)
	if err := e.store.Update(e.ctx, repository.Users, id, repository.Fields{"is_admin": true}); err != nil {
		t.Fatalf("授予管理员失败: %v", err)
	}
	return id
}

func (e *testEnv) createJob(t *testing.T, title string, creator int64) int64 {
	t.Helper()
	id, err := e.svc.Job.Create(e.ctx, &dto.CreateJobRequest{Title: title, Company: "Acme", CreatedBy: creator})
	if err != nil {
		t.Fatalf("创建职位失败: %v", err)
	}
	return id
}

func (e *testEnv) createGroup(t *testing.T, name string, creator int64) int64 {
	t.Helper()
	id, err := e.svc.Group.Create(e.ctx, &dto.CreateGroupRequest{Name: name, CreatedBy: creator})
	if err != nil {
		t.Fatalf("创建群组失败: %v", err)
	}
	return id
}

func (e *testEnv) sendToGroup(t *testing.T, sender, group int64, text string) int64 {
	t.Helper()
	id, err := e.svc.Chat.Send(e.ctx, &dto.SendMessageRequest{SenderID: sender, GroupID: &group, Content: text})
	if err != nil {
		t.Fatalf("发送群消息失败: %v", err)
	}
	return id
}

// expectKind 断言错误分类
func expectKind(t *testing.T, err error, want apperrors.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("期望 %s 错误，实际为 nil", want)
	}
	if got := apperrors.KindOf(err); got != want {
		t.Fatalf("期望 %s 错误，实际 %s: %v", want, got, err)
	}
}

type fakeRevoker struct {
	jti string
	ttl time.Duration
}

func (f *fakeRevoker) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	f.jti, f.ttl = jti, ttl
	return nil
}

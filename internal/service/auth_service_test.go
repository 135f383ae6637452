package service

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"allumni-network/internal/dto"
	"allumni-network/internal/model"
	"allumni-network/internal/repository"
	apperrors "allumni-network/pkg/errors"
)

func TestAuthService_RegisterThenLogin(t *testing.T) {
	env := newTestEnv(t)

	id := env.register(t, "Ana", "a@x.com")

	resp, err := env.svc.Auth.Login(env.ctx, &dto.LoginRequest{Email: "a@x.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}
	if !resp.Success || resp.User.ID != id {
		t.Errorf("期望登录用户 ID=%d，实际 %+v", id, resp.User)
	}
	if resp.User.IsAdmin {
		t.Error("新注册用户不应为管理员")
	}
	if resp.User.Status != model.AccountActive {
		t.Errorf("期望状态 ativa，实际 %s", resp.User.Status)
	}
	if resp.User.Profile.Empty() {
		t.Error("注册时应创建空资料")
	}
	if resp.Token == "" {
		t.Error("配置了 JWT 时应返回会话 Token")
	}

	raw, _ := json.Marshal(resp)
	if strings.Contains(string(raw), "senha") {
		t.Errorf("登录响应不应包含密码字段: %s", raw)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "Ana", "a@x.com")

	_, err := env.svc.Auth.Register(env.ctx, &dto.RegisterRequest{Name: "Outra", Email: "a@x.com", Password: "x"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("期望 ErrEmailTaken，实际: %v", err)
	}
	expectKind(t, err, apperrors.KindConflict)

	var users []model.User
	if err := env.store.List(env.ctx, repository.Users, nil, &users); err != nil {
		t.Fatalf("查询用户失败: %v", err)
	}
	if len(users) != 1 {
		t.Errorf("期望 1 个用户，实际 %d", len(users))
	}
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	env := newTestEnv(t)

	cases := []dto.RegisterRequest{
		{Email: "a@x.com", Password: "x"},
		{Name: "Ana", Password: "x"},
		{Name: "Ana", Email: "a@x.com"},
		{Name: "   ", Email: "a@x.com", Password: "x"},
	}
	for _, req := range cases {
		_, err := env.svc.Auth.Register(env.ctx, &req)
		expectKind(t, err, apperrors.KindInvalid)
	}
}

func TestAuthService_Register_OptionalFields(t *testing.T) {
	env := newTestEnv(t)
	course := "Ciências da Computação"
	year := 2020

	id, err := env.svc.Auth.Register(env.ctx, &dto.RegisterRequest{
		Name: "Mario", Email: "m@x.com", Password: "123456", Course: &course, GraduationYear: &year,
	})
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	var u model.User
	if err := env.store.Get(env.ctx, repository.Users, id, &u); err != nil {
		t.Fatalf("读取用户失败: %v", err)
	}
	if u.Course == nil || *u.Course != course {
		t.Errorf("期望课程 %q，实际 %v", course, u.Course)
	}
	if u.GraduationYear == nil || *u.GraduationYear != 2020 {
		t.Errorf("期望毕业年份 2020，实际 %v", u.GraduationYear)
	}
	if u.AccountType != model.AccountTypeAlumni {
		t.Errorf("期望默认类型 %s，实际 %s", model.AccountTypeAlumni, u.AccountType)
	}
	if u.PasswordHash == "123456" {
		t.Error("密码不应明文存储")
	}
}

func TestAuthService_Login_BadCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "Ana", "a@x.com")

	_, err := env.svc.Auth.Login(env.ctx, &dto.LoginRequest{Email: "a@x.com", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("密码错误期望 ErrInvalidCredentials，实际: %v", err)
	}

	_, err = env.svc.Auth.Login(env.ctx, &dto.LoginRequest{Email: "nobody@x.com", Password: "secret1"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("未知邮箱期望 ErrInvalidCredentials，实际: %v", err)
	}

	_, err = env.svc.Auth.Login(env.ctx, &dto.LoginRequest{Email: "a@x.com"})
	expectKind(t, err, apperrors.KindInvalid)
}

func TestAuthService_Login_ClosedAccount(t *testing.T) {
	env := newTestEnv(t)
	admin := env.registerAdmin(t, "Admin", "admin@x.com")
	id := env.register(t, "Ana", "a@x.com")

	if err := env.svc.Admin.SetAccountStatus(env.ctx, id, admin, model.AccountClosed); err != nil {
		t.Fatalf("暂停账号失败: %v", err)
	}

	_, err := env.svc.Auth.Login(env.ctx, &dto.LoginRequest{Email: "a@x.com", Password: "secret1"})
	if !errors.Is(err, ErrAccountClosed) {
		t.Errorf("期望 ErrAccountClosed，实际: %v", err)
	}
	expectKind(t, err, apperrors.KindForbidden)
}

func TestAuthService_Logout_RevokesToken(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "Ana", "a@x.com")

	resp, err := env.svc.Auth.Login(env.ctx, &dto.LoginRequest{Email: "a@x.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}
	claims, err := env.jwt.ParseToken(resp.Token)
	if err != nil {
		t.Fatalf("解析 Token 失败: %v", err)
	}

	if err := env.svc.Auth.Logout(env.ctx, claims); err != nil {
		t.Fatalf("登出失败: %v", err)
	}
	if env.revoker.jti != claims.ID {
		t.Errorf("期望吊销 JTI=%s，实际 %s", claims.ID, env.revoker.jti)
	}
	if env.revoker.ttl <= 0 {
		t.Errorf("吊销 TTL 应为正数，实际 %v", env.revoker.ttl)
	}
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	env := newTestEnv(t)

	created, err := env.svc.Auth.EnsureAdmin(env.ctx, "", "admin", "123456")
	if err != nil || !created {
		t.Fatalf("期望创建管理员，created=%v err=%v", created, err)
	}

	created, err = env.svc.Auth.EnsureAdmin(env.ctx, "", "admin", "123456")
	if err != nil || created {
		t.Fatalf("重复调用不应再创建，created=%v err=%v", created, err)
	}

	resp, err := env.svc.Auth.Login(env.ctx, &dto.LoginRequest{Email: "admin", Password: "123456"})
	if err != nil {
		t.Fatalf("管理员登录失败: %v", err)
	}
	if !resp.User.IsAdmin || resp.User.Name != "Administrador" {
		t.Errorf("期望默认管理员账号，实际 %+v", resp.User.UserView)
	}

	created, err = env.svc.Auth.EnsureAdmin(env.ctx, "X", "", "")
	if err != nil || created {
		t.Errorf("未配置邮箱时应跳过，created=%v err=%v", created, err)
	}
}

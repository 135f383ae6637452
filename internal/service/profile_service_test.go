package service

import (
	"encoding/json"
	"strings"
	"testing"

	"allumni-network/internal/dto"
	"allumni-network/internal/repository"
	apperrors "allumni-network/pkg/errors"
)

func strPtr(s string) *string { return &s }

func TestProfileService_Update_PartialLeavesOthersUnchanged(t *testing.T) {
	env := newTestEnv(t)
	id := env.register(t, "Ana", "a@x.com")

	err := env.svc.Profile.Update(env.ctx, id, &dto.UpdateProfileRequest{
		Course:   "Direito",
		Bio:      strPtr("Olá"),
		Employer: strPtr("Acme"),
		Phone:    strPtr("11 9999-0000"),
	})
	if err != nil {
		t.Fatalf("首次更新失败: %v", err)
	}

	before, err := env.svc.Profile.Get(env.ctx, id)
	if err != nil {
		t.Fatalf("读取资料失败: %v", err)
	}

	// 仅更新职位，其余字段保持不变
	if err := env.svc.Profile.Update(env.ctx, id, &dto.UpdateProfileRequest{JobTitle: strPtr("Dev")}); err != nil {
		t.Fatalf("二次更新失败: %v", err)
	}

	after, err := env.svc.Profile.Get(env.ctx, id)
	if err != nil {
		t.Fatalf("读取资料失败: %v", err)
	}
	if after.User.Name != "Ana" || *after.User.Course != "Direito" {
		t.Errorf("用户字段不应变化，实际 %+v", after.User)
	}
	if *after.Profile.Bio != *before.Profile.Bio || *after.Profile.Employer != "Acme" || *after.Profile.Phone != "11 9999-0000" {
		t.Errorf("未指定的资料字段不应变化，实际 %+v", after.Profile)
	}
	if after.Profile.JobTitle == nil || *after.Profile.JobTitle != "Dev" {
		t.Errorf("期望职位 Dev，实际 %v", after.Profile.JobTitle)
	}
	if after.Profile.LinkedinURL != nil {
		t.Errorf("未设置的字段应保持为空，实际 %v", *after.Profile.LinkedinURL)
	}
}

func TestProfileService_Update_BlankUserFieldsIgnored(t *testing.T) {
	env := newTestEnv(t)
	id := env.register(t, "Ana", "a@x.com")

	zero := 0
	if err := env.svc.Profile.Update(env.ctx, id, &dto.UpdateProfileRequest{Name: "", GraduationYear: &zero, Bio: strPtr("")}); err != nil {
		t.Fatalf("更新失败: %v", err)
	}

	got, _ := env.svc.Profile.Get(env.ctx, id)
	if got.User.Name != "Ana" {
		t.Errorf("空名称不应覆盖，实际 %q", got.User.Name)
	}
	if got.User.GraduationYear != nil {
		t.Errorf("年份 0 不应写入，实际 %v", *got.User.GraduationYear)
	}
	if got.Profile.Bio == nil || *got.Profile.Bio != "" {
		t.Errorf("资料字段允许置空，实际 %v", got.Profile.Bio)
	}
}

func TestProfileService_Update_CreatesMissingProfile(t *testing.T) {
	env := newTestEnv(t)
	id := env.register(t, "Ana", "a@x.com")

	// 模拟历史数据中缺失资料的用户
	got, _ := env.svc.Profile.Get(env.ctx, id)
	if err := env.store.Delete(env.ctx, repository.Profiles, got.Profile.ID); err != nil {
		t.Fatalf("删除资料失败: %v", err)
	}

	empty, err := env.svc.Profile.Get(env.ctx, id)
	if err != nil {
		t.Fatalf("读取资料失败: %v", err)
	}
	raw, _ := json.Marshal(empty)
	if !strings.Contains(string(raw), `"perfil":{}`) {
		t.Errorf("缺失资料应输出空对象，实际 %s", raw)
	}

	if err := env.svc.Profile.Update(env.ctx, id, &dto.UpdateProfileRequest{GithubURL: strPtr("https://github.com/ana")}); err != nil {
		t.Fatalf("更新失败: %v", err)
	}
	created, _ := env.svc.Profile.Get(env.ctx, id)
	if created.Profile.Empty() || *created.Profile.GithubURL != "https://github.com/ana" {
		t.Errorf("首次写入应创建资料，实际 %+v", created.Profile)
	}
}

func TestProfileService_UnknownUser(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Profile.Get(env.ctx, 404)
	expectKind(t, err, apperrors.KindNotFound)

	err = env.svc.Profile.Update(env.ctx, 404, &dto.UpdateProfileRequest{Bio: strPtr("x")})
	expectKind(t, err, apperrors.KindNotFound)
}

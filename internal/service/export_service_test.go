package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestExportService_ExportUsers(t *testing.T) {
	env := newTestEnv(t)
	admin := env.registerAdmin(t, "Admin", "admin@x.com")
	env.register(t, "Ana", "a@x.com")

	buf, filename, err := env.svc.Export.ExportUsers(env.ctx, admin)
	if err != nil {
		t.Fatalf("导出失败: %v", err)
	}
	if !strings.HasPrefix(filename, "usuarios_") || !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("文件名不符: %s", filename)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("读取导出文件失败: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(usersSheet)
	if err != nil {
		t.Fatalf("读取 Sheet 失败: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("期望表头 + 2 行，实际 %d 行", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][2] != "Email" || len(rows[0]) != len(userColumns) {
		t.Errorf("表头不符: %v", rows[0])
	}
	// 按注册时间倒序
	if rows[1][2] != "a@x.com" || rows[2][2] != "admin@x.com" {
		t.Errorf("数据行顺序不符: %v / %v", rows[1], rows[2])
	}
	if rows[2][6] != "Sim" || rows[1][6] != "Não" {
		t.Errorf("管理员列不符: %s / %s", rows[2][6], rows[1][6])
	}
	for _, row := range rows {
		for _, v := range row {
			if strings.HasPrefix(v, "$2a$") {
				t.Fatal("导出内容不应包含密码哈希")
			}
		}
	}
}

func TestExportService_NonAdminForbidden(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "Ana", "a@x.com")

	_, _, err := env.svc.Export.ExportUsers(env.ctx, user)
	if !errors.Is(err, ErrAdminOnly) {
		t.Errorf("期望 ErrAdminOnly，实际: %v", err)
	}
}

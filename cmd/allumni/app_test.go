package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cli struct {
	t       *testing.T
	db      string
	session string
}

func newCLI(t *testing.T) *cli {
	dir := t.TempDir()
	return &cli{t: t, db: filepath.Join(dir, "allumni.db"), session: filepath.Join(dir, "session.json")}
}

// exec 执行一条命令，返回退出码与标准输出
func (c *cli) exec(args ...string) (int, string, string) {
	c.t.Helper()
	var stdout, stderr bytes.Buffer
	full := append([]string{"-db", c.db, "-session", c.session, "-log-level", "error"}, args...)
	code := run(context.Background(), full, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func (c *cli) mustExec(args ...string) string {
	c.t.Helper()
	code, out, errOut := c.exec(args...)
	if code != 0 {
		c.t.Fatalf("%v 退出码 %d: %s", args, code, errOut)
	}
	return out
}

func decodeID(t *testing.T, out, key string) int64 {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(out), &m); err != nil {
		t.Fatalf("输出不是 JSON: %q", out)
	}
	v, ok := m[key].(float64)
	if !ok {
		t.Fatalf("输出缺少 %s: %q", key, out)
	}
	return int64(v)
}

func TestCLI_SessionLifecycle(t *testing.T) {
	c := newCLI(t)

	if code, _, errOut := c.exec("whoami"); code != 1 || !strings.Contains(errOut, "Faça login") {
		t.Fatalf("未登录时 whoami 应失败，实际 %d: %s", code, errOut)
	}

	c.mustExec("register", "-nome", "Ana", "-email", "a@x.com", "-senha", "secret1", "-curso", "CC", "-ano", "2020")
	if code, _, errOut := c.exec("register", "-nome", "Ana", "-email", "a@x.com", "-senha", "secret1"); code != 1 || !strings.Contains(errOut, "Email já cadastrado") {
		t.Errorf("重复注册应失败，实际 %d: %s", code, errOut)
	}
	if code, _, _ := c.exec("login", "-email", "a@x.com", "-senha", "wrong"); code != 1 {
		t.Error("错误密码应登录失败")
	}

	c.mustExec("login", "-email", "a@x.com", "-senha", "secret1")
	out := c.mustExec("whoami")
	if !strings.Contains(out, `"email": "a@x.com"`) || strings.Contains(out, "senha") {
		t.Errorf("whoami 输出不符: %s", out)
	}

	c.mustExec("profile-update", "-bio", "Olá", "-cargo", "Dev")
	out = c.mustExec("profile")
	if !strings.Contains(out, `"bio": "Olá"`) || !strings.Contains(out, `"cargo_atual": "Dev"`) {
		t.Errorf("资料未更新: %s", out)
	}

	c.mustExec("logout")
	if code, _, _ := c.exec("whoami"); code != 1 {
		t.Error("退出后 whoami 应失败")
	}
}

func TestCLI_JobsGroupsChat(t *testing.T) {
	c := newCLI(t)
	c.mustExec("register", "-nome", "Ana", "-email", "a@x.com", "-senha", "secret1")
	c.mustExec("login", "-email", "a@x.com", "-senha", "secret1")

	jobID := decodeID(t, c.mustExec("job-create", "-titulo", "Dev Go", "-empresa", "Acme", "-salario-min", "5000", "-salario-max", "8000"), "vagaId")
	if code, _, errOut := c.exec("job-create", "-titulo", "X", "-empresa", "Y", "-salario-min", "9", "-salario-max", "1"); code != 1 || !strings.Contains(errOut, "Salário") {
		t.Errorf("薪资区间非法应失败，实际 %d: %s", code, errOut)
	}
	c.mustExec("apply", "-vaga", itoa(jobID))
	if code, _, _ := c.exec("apply", "-vaga", itoa(jobID)); code != 1 {
		t.Error("重复申请应失败")
	}
	if out := c.mustExec("jobs"); !strings.Contains(out, `"criador_nome": "Ana"`) {
		t.Errorf("职位列表不符: %s", out)
	}

	groupID := decodeID(t, c.mustExec("group-create", "-nome", "CS Alumni"), "grupoId")
	if out := c.mustExec("groups", "-mine"); !strings.Contains(out, `"role": "admin"`) {
		t.Errorf("我的群组不符: %s", out)
	}

	img := filepath.Join(t.TempDir(), "foto.png")
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	if err := os.WriteFile(img, png, 0o600); err != nil {
		t.Fatal(err)
	}
	c.mustExec("send", "-grupo", itoa(groupID), "-texto", "oi")
	c.mustExec("send", "-grupo", itoa(groupID), "-arquivo", img)

	out := c.mustExec("chat", "-grupo", itoa(groupID))
	var msgs []map[string]interface{}
	if err := json.Unmarshal([]byte(out), &msgs); err != nil {
		t.Fatalf("群消息输出不是 JSON: %s", out)
	}
	if len(msgs) != 2 || msgs[0]["conteudo"] != "oi" || msgs[1]["tipo"] != "imagem" || msgs[1]["conteudo"] != "📷 Imagem" {
		t.Errorf("群消息不符: %v", msgs)
	}

	if code, _, errOut := c.exec("admin", "users"); code != 1 || !strings.Contains(errOut, "Apenas administradores") {
		t.Errorf("普通用户管理操作应被拒绝，实际 %d: %s", code, errOut)
	}
}

func TestCLI_UnknownCommand(t *testing.T) {
	c := newCLI(t)
	if code, _, errOut := c.exec("bogus"); code != 2 || !strings.Contains(errOut, "未知命令") {
		t.Errorf("未知命令应返回 2，实际 %d: %s", code, errOut)
	}
	if code, _, _ := c.exec(); code != 2 {
		t.Errorf("缺少命令应返回 2，实际 %d", code)
	}
}

func TestCLI_ConfigFileAndFlagOverride(t *testing.T) {
	dir := t.TempDir()
	fromConfig := filepath.Join(dir, "from-config.db")
	cfgPath := filepath.Join(dir, "config.yaml")
	yaml := "storage:\n  embedded_path: " + fromConfig + "\nchat:\n  poll_interval: 0s\n"
	if err := os.WriteFile(cfgPath, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	session := filepath.Join(dir, "session.json")

	runWith := func(args ...string) (int, string) {
		var stdout, stderr bytes.Buffer
		full := append([]string{"-config", cfgPath, "-session", session, "-log-level", "error"}, args...)
		return run(context.Background(), full, &stdout, &stderr), stderr.String()
	}

	// 配置文件中的轮询间隔非法，命令被拒绝
	if code, errOut := runWith("whoami"); code != 2 || !strings.Contains(errOut, "poll_interval") {
		t.Fatalf("配置文件未生效，实际 %d: %s", code, errOut)
	}

	// -poll 覆盖配置文件，数据库路径取自配置文件
	if code, errOut := runWith("-poll", "1s", "register", "-nome", "Ana", "-email", "a@x.com", "-senha", "secret1"); code != 0 {
		t.Fatalf("覆盖后应成功，实际 %d: %s", code, errOut)
	}
	if _, err := os.Stat(fromConfig); err != nil {
		t.Errorf("应使用 storage.embedded_path: %v", err)
	}

	// -db 覆盖 storage.embedded_path
	fromFlag := filepath.Join(dir, "from-flag.db")
	if code, errOut := runWith("-poll", "1s", "-db", fromFlag, "register", "-nome", "Bia", "-email", "b@x.com", "-senha", "secret1"); code != 0 {
		t.Fatalf("实际 %d: %s", code, errOut)
	}
	if _, err := os.Stat(fromFlag); err != nil {
		t.Errorf("-db 未覆盖配置: %v", err)
	}
}

func itoa(v int64) string {
	b, _ := json.Marshal(v)
	return string(b)
}

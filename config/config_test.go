package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Server:  ServerConfig{Port: 3000},
		Storage: StorageConfig{Driver: StorageDriverEmbedded, EmbeddedPath: "allumni.db"},
		Auth:    AuthConfig{JWTSecret: "0123456789abcdef", BcryptCost: 10},
		Chat:    ChatConfig{PollInterval: 3 * time.Second, MaxPayloadBytes: 1024},
	}
}

func TestLoad_DefaultsAndEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("ALLUMNI_AUTH_JWT_SECRET", "env-secret-at-least-16")
	t.Setenv("ALLUMNI_STORAGE_DRIVER", "embedded")
	t.Setenv("ALLUMNI_CHAT_POLL_INTERVAL", "5s")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("加载失败: %v", err)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("期望默认端口 3000，实际 %d", cfg.Server.Port)
	}
	if cfg.Storage.Driver != StorageDriverEmbedded || cfg.Storage.EmbeddedPath != "allumni.db" {
		t.Errorf("存储配置不符: %+v", cfg.Storage)
	}
	if cfg.Auth.SessionTTL != 24*time.Hour || cfg.Auth.BcryptCost != 10 {
		t.Errorf("认证默认值不符: %+v", cfg.Auth)
	}
	if cfg.Chat.PollInterval != 5*time.Second {
		t.Errorf("期望环境变量覆盖轮询间隔，实际 %v", cfg.Chat.PollInterval)
	}
	if cfg.Chat.MaxPayloadBytes != 5<<20 {
		t.Errorf("附件上限默认值不符: %d", cfg.Chat.MaxPayloadBytes)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	chdir(t, t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 8080
auth:
  jwt_secret: file-secret-at-least-16
admin:
  email: admin
  password: "123456"
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("加载失败: %v", err)
	}
	if cfg.Server.Port != 8080 || cfg.Log.Level != "debug" {
		t.Errorf("配置文件未生效: port=%d level=%s", cfg.Server.Port, cfg.Log.Level)
	}
	if cfg.Admin.Name != "Administrador" || cfg.Admin.Email != "admin" {
		t.Errorf("管理员配置不符: %+v", cfg.Admin)
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	chdir(t, t.TempDir())
	if _, err := Load(""); err == nil {
		t.Fatal("缺少 jwt_secret 时应失败")
	}
}

func TestLoadLocal_SkipsServerChecks(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("ALLUMNI_CHAT_POLL_INTERVAL", "750ms")
	t.Setenv("ALLUMNI_AUTH_BCRYPT_COST", "4")

	cfg, err := LoadLocal("")
	if err != nil {
		t.Fatalf("命令行配置不需要 jwt_secret: %v", err)
	}
	if cfg.Chat.PollInterval != 750*time.Millisecond || cfg.Auth.BcryptCost != 4 {
		t.Errorf("环境变量未生效: %+v %+v", cfg.Chat, cfg.Auth)
	}

	t.Setenv("ALLUMNI_AUTH_BCRYPT_COST", "2")
	if _, err := LoadLocal(""); err == nil || !strings.Contains(err.Error(), "bcrypt_cost") {
		t.Errorf("基础校验仍应生效，实际: %v", err)
	}

	// 覆盖在校验之前应用
	cfg, err = LoadLocal("", func(c *Config) { c.Auth.BcryptCost = 12 })
	if err != nil || cfg.Auth.BcryptCost != 12 {
		t.Errorf("覆盖未生效: %v", err)
	}
}

func TestValidateBase_IgnoresServerFields(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.JWTSecret = ""
	cfg.Server.Port = 0
	if err := cfg.ValidateBase(); err != nil {
		t.Errorf("基础校验不应检查密钥与端口: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("完整校验应拒绝空密钥")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"有效", func(c *Config) {}, ""},
		{"密钥过短", func(c *Config) { c.Auth.JWTSecret = "short" }, "jwt_secret"},
		{"端口非法", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"未知驱动", func(c *Config) { c.Storage.Driver = "mongo" }, "storage.driver"},
		{"嵌入式路径为空", func(c *Config) { c.Storage.EmbeddedPath = "" }, "embedded_path"},
		{"bcrypt 成本越界", func(c *Config) { c.Auth.BcryptCost = 2 }, "bcrypt_cost"},
		{"管理员只给邮箱", func(c *Config) { c.Admin.Email = "admin" }, "admin.email"},
		{"轮询间隔为零", func(c *Config) { c.Chat.PollInterval = 0 }, "poll_interval"},
		{"附件上限为负", func(c *Config) { c.Chat.MaxPayloadBytes = -1 }, "max_payload_bytes"},
		{"postgres", func(c *Config) { c.Storage.Driver = StorageDriverPostgres }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("不应报错: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("期望错误包含 %q，实际: %v", tt.wantErr, err)
			}
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := &DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "allumni", SSLMode: "disable", Timezone: "UTC"}
	want := "host=db port=5432 user=u password=p dbname=allumni sslmode=disable TimeZone=UTC"
	if got := c.DSN(); got != want {
		t.Errorf("DSN 不符:\n got %s\nwant %s", got, want)
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}

//go:build integration

package repository_test

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"allumni-network/internal/repository"
	"allumni-network/pkg/database"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=allumni password=allumni_password dbname=allumni_test sslmode=disable TimeZone=America/Sao_Paulo"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	sqlDB, err := testDB.DB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "获取 sql.DB 失败: %v\n", err)
		os.Exit(1)
	}
	if err := database.RunMigrations(sqlDB, zap.NewNop()); err != nil {
		fmt.Fprintf(os.Stderr, "迁移失败: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	os.Exit(code)
}

// truncateAll 清空全部集合并重置序列
func truncateAll(t *testing.T) {
	t.Helper()
	err := testDB.Exec(`TRUNCATE mensagens, grupo_membros, grupos, candidaturas, vagas, perfis, usuarios RESTART IDENTITY CASCADE`).Error
	if err != nil {
		t.Fatalf("清空测试数据失败: %v", err)
	}
}

// ═══════════════════════════════════════════════════════════
// GormStore 一致性测试
// ═══════════════════════════════════════════════════════════

func TestGormStore(t *testing.T) {
	s := &storeSuite{}
	s.open = func() repository.Store {
		truncateAll(s.T())
		return repository.NewGormStore(testDB)
	}
	suite.Run(t, s)
}

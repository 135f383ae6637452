package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"allumni-network/internal/model"
	"allumni-network/internal/repository"
	apperrors "allumni-network/pkg/errors"
)

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportUsers 导出全部用户为 Excel（仅管理员），返回内容与建议文件名
	ExportUsers(ctx context.Context, adminID int64) (*bytes.Buffer, string, error)
}

type exportService struct {
	store  repository.Store
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(store repository.Store, logger *zap.Logger) ExportService {
	return &exportService{store: store, logger: logger}
}

// usersSheet 用户表 Sheet 名
const usersSheet = "Usuarios"

var userColumns = []struct {
	title string
	width float64
}{
	{"ID", 8},
	{"Nome", 28},
	{"Email", 32},
	{"Curso", 28},
	{"Ano de formatura", 18},
	{"Tipo", 14},
	{"Admin", 8},
	{"Status", 10},
	{"Cadastrado em", 20},
}

// ═══════════════════════════════════════════════════════════
// ExportUsers 导出用户列表为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：单个 Sheet，首行表头，按注册时间倒序；不含密码

func (s *exportService) ExportUsers(ctx context.Context, adminID int64) (*bytes.Buffer, string, error) {
	if err := requireAdmin(ctx, s.store, s.logger, adminID); err != nil {
		return nil, "", err
	}

	users, err := listUsersNewestFirst(ctx, s.store)
	if err != nil {
		return nil, "", storageError(s.logger, "查询用户列表失败", err, nil)
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(usersSheet)
	if err != nil {
		return nil, "", s.generateFailed(err)
	}
	f.SetActiveSheet(idx)
	// 删除默认 Sheet1
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 表头
	for i, col := range userColumns {
		name := colName(i)
		f.SetColWidth(usersSheet, name, name, col.width)
		f.SetCellValue(usersSheet, cell(name, 1), col.title)
	}
	f.SetCellStyle(usersSheet, "A1", cell(colName(len(userColumns)-1), 1), headerStyle)
	f.SetPanes(usersSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	// 数据行
	for i := range users {
		if err := f.SetSheetRow(usersSheet, cell("A", i+2), userRow(&users[i])); err != nil {
			return nil, "", s.generateFailed(err)
		}
	}

	// 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, "", s.generateFailed(err)
	}

	filename := fmt.Sprintf("usuarios_%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}

func userRow(u *model.User) *[]interface{} {
	course := ""
	if u.Course != nil {
		course = *u.Course
	}
	var year interface{} = ""
	if u.GraduationYear != nil {
		year = *u.GraduationYear
	}
	admin := "Não"
	if u.IsAdmin {
		admin = "Sim"
	}
	return &[]interface{}{
		u.ID,
		u.Name,
		u.Email,
		course,
		year,
		u.AccountType,
		admin,
		u.Status,
		u.CreatedAt.Format("2006-01-02 15:04"),
	}
}

func (s *exportService) generateFailed(err error) error {
	s.logger.Error("生成 Excel 失败", zap.Error(err))
	return apperrors.Internal(err)
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

package main

import (
	"context"
	"encoding/base64"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"allumni-network/internal/dto"
	"allumni-network/internal/model"
	"allumni-network/internal/session"
	applogger "allumni-network/pkg/logger"
)

var commands map[string]command

func init() {
	commands = map[string]command{
		"register":       {"注册账号 -nome -email -senha [-curso] [-ano]", cmdRegister},
		"login":          {"登录 -email -senha", cmdLogin},
		"logout":         {"退出登录", cmdLogout},
		"whoami":         {"当前用户", cmdWhoami},
		"profile":        {"查看资料 [-user id]", cmdProfile},
		"profile-update": {"更新本人资料 [-nome] [-bio] [-empresa] [-cargo] ...", cmdProfileUpdate},
		"jobs":           {"在招职位", cmdJobs},
		"job":            {"职位详情 -id", cmdJob},
		"job-create":     {"发布职位 -titulo -empresa [...]", cmdJobCreate},
		"apply":          {"申请职位 -vaga [-mensagem]", cmdApply},
		"groups":         {"群组列表 [-mine]", cmdGroups},
		"group-create":   {"创建群组 -nome [-descricao]", cmdGroupCreate},
		"join":           {"加入群组 -grupo", cmdJoin},
		"members":        {"群组成员 -grupo", cmdMembers},
		"send":           {"发送消息 (-grupo|-para) [-texto] [-arquivo]", cmdSend},
		"chat":           {"群消息 -grupo [-follow]", cmdChat},
		"private":        {"私信 -com", cmdPrivate},
		"admin":          {"管理操作 <users|close|suspend|reopen|promote|demote|remove-job|remove-group|export> [-id] [-out]", cmdAdmin},
	}
}

// ── 认证 ──

func cmdRegister(ctx context.Context, a *app, args []string) error {
	fs := flagSet("register", a)
	name := fs.String("nome", "", "姓名")
	email := fs.String("email", "", "邮箱")
	pass := fs.String("senha", "", "密码")
	course := fs.String("curso", "", "专业")
	year := fs.Int("ano", 0, "毕业年份")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := &dto.RegisterRequest{Name: *name, Email: *email, Password: *pass, Course: optString(*course)}
	if *year != 0 {
		req.GraduationYear = year
	}
	id, err := a.svc.Auth.Register(ctx, req)
	if err != nil {
		return err
	}
	return a.print(map[string]interface{}{"success": true, "userId": id})
}

func cmdLogin(ctx context.Context, a *app, args []string) error {
	fs := flagSet("login", a)
	email := fs.String("email", "", "邮箱")
	pass := fs.String("senha", "", "密码")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resp, err := a.svc.Auth.Login(ctx, &dto.LoginRequest{Email: *email, Password: *pass})
	if err != nil {
		return err
	}
	if err := a.holder.Save(&resp.User); err != nil {
		return err
	}
	return a.print(resp)
}

func cmdLogout(_ context.Context, a *app, _ []string) error {
	return a.holder.Clear()
}

func cmdWhoami(_ context.Context, a *app, _ []string) error {
	user, err := a.holder.Require()
	if err != nil {
		return err
	}
	return a.print(user)
}

// ── 资料 ──

func cmdProfile(ctx context.Context, a *app, args []string) error {
	fs := flagSet("profile", a)
	userID := fs.Int64("user", 0, "用户 ID（默认当前用户）")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *userID == 0 {
		id, err := a.currentUserID()
		if err != nil {
			return err
		}
		*userID = id
	}

	resp, err := a.svc.Profile.Get(ctx, *userID)
	if err != nil {
		return err
	}
	return a.print(resp)
}

func cmdProfileUpdate(ctx context.Context, a *app, args []string) error {
	userID, err := a.currentUserID()
	if err != nil {
		return err
	}

	fs := flagSet("profile-update", a)
	var req dto.UpdateProfileRequest
	fs.StringVar(&req.Name, "nome", "", "姓名")
	fs.StringVar(&req.Course, "curso", "", "专业")
	year := fs.Int("ano", 0, "毕业年份")
	fields := map[string]**string{
		"bio":      &req.Bio,
		"linkedin": &req.LinkedinURL,
		"github":   &req.GithubURL,
		"telefone": &req.Phone,
		"empresa":  &req.Employer,
		"cargo":    &req.JobTitle,
	}
	values := make(map[string]*string, len(fields))
	for name := range fields {
		values[name] = fs.String(name, "", name)
	}
	photo := fs.String("foto", "", "头像图片文件")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// 只提交显式给出的参数
	fs.Visit(func(f *flag.Flag) {
		if target, ok := fields[f.Name]; ok {
			v := *values[f.Name]
			*target = &v
		}
	})
	if *year != 0 {
		req.GraduationYear = year
	}
	if *photo != "" {
		uri, err := dataURI(*photo)
		if err != nil {
			return err
		}
		req.Photo = &uri
	}

	if err := a.svc.Profile.Update(ctx, userID, &req); err != nil {
		return err
	}
	return a.print(map[string]interface{}{"success": true, "message": "Perfil atualizado com sucesso"})
}

// ── 职位 ──

func cmdJobs(ctx context.Context, a *app, _ []string) error {
	jobs, err := a.svc.Job.List(ctx)
	if err != nil {
		return err
	}
	return a.print(jobs)
}

func cmdJob(ctx context.Context, a *app, args []string) error {
	fs := flagSet("job", a)
	id := fs.Int64("id", 0, "职位 ID")
	if err := fs.Parse(args); err != nil {
		return err
	}
	job, err := a.svc.Job.Get(ctx, *id)
	if err != nil {
		return err
	}
	return a.print(job)
}

func cmdJobCreate(ctx context.Context, a *app, args []string) error {
	userID, err := a.currentUserID()
	if err != nil {
		return err
	}

	fs := flagSet("job-create", a)
	title := fs.String("titulo", "", "标题")
	company := fs.String("empresa", "", "公司")
	desc := fs.String("descricao", "", "描述")
	location := fs.String("local", "", "地点")
	kind := fs.String("tipo", "", "工作类型")
	reqs := fs.String("requisitos", "", "要求")
	salMin := fs.Float64("salario-min", 0, "最低薪资")
	salMax := fs.Float64("salario-max", 0, "最高薪资")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := &dto.CreateJobRequest{
		Title:          *title,
		Company:        *company,
		Description:    optString(*desc),
		Location:       optString(*location),
		EmploymentType: optString(*kind),
		Requirements:   optString(*reqs),
		CreatedBy:      userID,
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "salario-min":
			req.SalaryMin = salMin
		case "salario-max":
			req.SalaryMax = salMax
		}
	})

	id, err := a.svc.Job.Create(ctx, req)
	if err != nil {
		return err
	}
	return a.print(map[string]interface{}{"success": true, "vagaId": id})
}

func cmdApply(ctx context.Context, a *app, args []string) error {
	userID, err := a.currentUserID()
	if err != nil {
		return err
	}
	fs := flagSet("apply", a)
	jobID := fs.Int64("vaga", 0, "职位 ID")
	msg := fs.String("mensagem", "", "附言")
	if err := fs.Parse(args); err != nil {
		return err
	}

	id, err := a.svc.Job.Apply(ctx, *jobID, &dto.ApplyRequest{UserID: userID, Message: optString(*msg)})
	if err != nil {
		return err
	}
	return a.print(map[string]interface{}{"success": true, "candidaturaId": id})
}

// ── 群组 ──

func cmdGroups(ctx context.Context, a *app, args []string) error {
	fs := flagSet("groups", a)
	mine := fs.Bool("mine", false, "只显示我加入的群组")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if !*mine {
		groups, err := a.svc.Group.List(ctx)
		if err != nil {
			return err
		}
		return a.print(groups)
	}

	userID, err := a.currentUserID()
	if err != nil {
		return err
	}
	groups, err := a.svc.Group.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	return a.print(groups)
}

func cmdGroupCreate(ctx context.Context, a *app, args []string) error {
	userID, err := a.currentUserID()
	if err != nil {
		return err
	}
	fs := flagSet("group-create", a)
	name := fs.String("nome", "", "群组名称")
	desc := fs.String("descricao", "", "描述")
	if err := fs.Parse(args); err != nil {
		return err
	}

	id, err := a.svc.Group.Create(ctx, &dto.CreateGroupRequest{Name: *name, Description: optString(*desc), CreatedBy: userID})
	if err != nil {
		return err
	}
	return a.print(map[string]interface{}{"success": true, "grupoId": id})
}

func cmdJoin(ctx context.Context, a *app, args []string) error {
	userID, err := a.currentUserID()
	if err != nil {
		return err
	}
	fs := flagSet("join", a)
	groupID := fs.Int64("grupo", 0, "群组 ID")
	if err := fs.Parse(args); err != nil {
		return err
	}

	id, err := a.svc.Group.Join(ctx, *groupID, &dto.JoinGroupRequest{UserID: userID})
	if err != nil {
		return err
	}
	return a.print(map[string]interface{}{"success": true, "membroId": id})
}

func cmdMembers(ctx context.Context, a *app, args []string) error {
	fs := flagSet("members", a)
	groupID := fs.Int64("grupo", 0, "群组 ID")
	if err := fs.Parse(args); err != nil {
		return err
	}
	members, err := a.svc.Group.ListMembers(ctx, *groupID)
	if err != nil {
		return err
	}
	return a.print(members)
}

// ── 聊天 ──

func cmdSend(ctx context.Context, a *app, args []string) error {
	userID, err := a.currentUserID()
	if err != nil {
		return err
	}
	fs := flagSet("send", a)
	groupID := fs.Int64("grupo", 0, "群组 ID")
	to := fs.Int64("para", 0, "接收者 ID")
	text := fs.String("texto", "", "消息内容")
	file := fs.String("arquivo", "", "图片或音频文件")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := &dto.SendMessageRequest{SenderID: userID, Content: *text, GroupID: groupID, RecipientID: to}
	if *file != "" {
		uri, err := dataURI(*file)
		if err != nil {
			return err
		}
		req.Payload = &uri
	}

	id, err := a.svc.Chat.Send(ctx, req)
	if err != nil {
		return err
	}
	return a.print(map[string]interface{}{"success": true, "mensagemId": id})
}

func cmdChat(ctx context.Context, a *app, args []string) error {
	fs := flagSet("chat", a)
	groupID := fs.Int64("grupo", 0, "群组 ID")
	follow := fs.Bool("follow", false, "持续接收新消息，Ctrl-C 退出")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if !*follow {
		msgs, err := a.svc.Chat.ListGroup(ctx, *groupID, 0)
		if err != nil {
			return err
		}
		return a.print(msgs)
	}

	if _, err := a.currentUserID(); err != nil {
		return err
	}
	poller := session.NewPoller(a.svc.Chat, *groupID, a.pollInterval, applogger.Component(a.logger, "poller"))
	err := poller.Run(ctx, 0, func(msgs []dto.MessageView) {
		for _, m := range msgs {
			fmt.Fprintf(a.out, "[%s] %s: %s\n", m.CreatedAt.Local().Format("15:04"), m.SenderName, m.Content)
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func cmdPrivate(ctx context.Context, a *app, args []string) error {
	userID, err := a.currentUserID()
	if err != nil {
		return err
	}
	fs := flagSet("private", a)
	other := fs.Int64("com", 0, "对方用户 ID")
	if err := fs.Parse(args); err != nil {
		return err
	}

	msgs, err := a.svc.Chat.ListPrivate(ctx, userID, *other)
	if err != nil {
		return err
	}
	return a.print(msgs)
}

// ── 管理 ──

func cmdAdmin(ctx context.Context, a *app, args []string) error {
	adminID, err := a.currentUserID()
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return errors.New("缺少管理操作，例如: admin users")
	}

	fs := flagSet("admin "+args[0], a)
	id := fs.Int64("id", 0, "目标 ID")
	out := fs.String("out", "", "导出文件路径")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	admin := a.svc.Admin
	switch args[0] {
	case "users":
		users, err := admin.ListUsers(ctx, adminID)
		if err != nil {
			return err
		}
		return a.print(users)
	case "export":
		buf, filename, err := a.svc.Export.ExportUsers(ctx, adminID)
		if err != nil {
			return err
		}
		if *out == "" {
			*out = filename
		}
		if err := os.WriteFile(*out, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("写入导出文件失败: %w", err)
		}
		return a.print(map[string]interface{}{"success": true, "arquivo": *out})
	case "close":
		err = admin.CloseAccount(ctx, *id, adminID)
	case "suspend":
		err = admin.SetAccountStatus(ctx, *id, adminID, model.AccountClosed)
	case "reopen":
		err = admin.SetAccountStatus(ctx, *id, adminID, model.AccountActive)
	case "promote":
		err = admin.Promote(ctx, *id, adminID)
	case "demote":
		err = admin.Demote(ctx, *id, adminID)
	case "remove-job":
		err = admin.RemoveJob(ctx, *id, adminID)
	case "remove-group":
		err = admin.RemoveGroup(ctx, *id, adminID)
	default:
		return fmt.Errorf("未知的管理操作: %s", args[0])
	}
	if err != nil {
		return err
	}
	return a.print(map[string]interface{}{"success": true})
}

// dataURI 读取本地文件并编码为 data-URI
func dataURI(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("读取文件失败: %w", err)
	}
	mime := http.DetectContentType(data)
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

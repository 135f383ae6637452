package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"

	"allumni-network/internal/dto"
	"allumni-network/internal/model"
	"allumni-network/internal/repository"
)

// JobService 职位业务接口
type JobService interface {
	// List 仅返回开放中的职位，按创建时间倒序
	List(ctx context.Context) ([]dto.JobView, error)
	Get(ctx context.Context, jobID int64) (*dto.JobView, error)
	Create(ctx context.Context, req *dto.CreateJobRequest) (int64, error)
	Apply(ctx context.Context, jobID int64, req *dto.ApplyRequest) (int64, error)
}

type jobService struct {
	store  repository.Store
	logger *zap.Logger
}

// NewJobService 创建 JobService 实例
func NewJobService(store repository.Store, logger *zap.Logger) JobService {
	return &jobService{store: store, logger: logger}
}

// ──── List ────

func (s *jobService) List(ctx context.Context) ([]dto.JobView, error) {
	var jobs []model.Job
	if err := s.store.List(ctx, repository.Jobs, repository.Where("status", model.JobActive), &jobs); err != nil {
		return nil, storageError(s.logger, "查询职位列表失败", err, nil)
	}

	sort.SliceStable(jobs, func(i, j int) bool {
		if !jobs[i].CreatedAt.Equal(jobs[j].CreatedAt) {
			return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
		}
		return jobs[i].ID > jobs[j].ID
	})

	names := newNameCache(s.store)
	views := make([]dto.JobView, 0, len(jobs))
	for i := range jobs {
		v, err := s.toView(ctx, names, &jobs[i])
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

// ──── Get ────

func (s *jobService) Get(ctx context.Context, jobID int64) (*dto.JobView, error) {
	var job model.Job
	if err := s.store.Get(ctx, repository.Jobs, jobID, &job); err != nil {
		return nil, storageError(s.logger, "查询职位失败", err, ErrJobNotFound)
	}
	v, err := s.toView(ctx, newNameCache(s.store), &job)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ──── Create ────

func (s *jobService) Create(ctx context.Context, req *dto.CreateJobRequest) (int64, error) {
	if blank(req.Title) || blank(req.Company) || req.CreatedBy == 0 {
		return 0, ErrJobFieldsRequired
	}
	if req.SalaryMin != nil && req.SalaryMax != nil && *req.SalaryMin > *req.SalaryMax {
		return 0, ErrSalaryRange
	}

	var creator model.User
	if err := s.store.Get(ctx, repository.Users, req.CreatedBy, &creator); err != nil {
		return 0, storageError(s.logger, "查询职位创建者失败", err, ErrUserNotFound)
	}
	if !creator.Active() {
		return 0, ErrAccountClosed
	}

	job := &model.Job{
		Title:          req.Title,
		Description:    req.Description,
		Company:        req.Company,
		Location:       req.Location,
		EmploymentType: req.EmploymentType,
		SalaryMin:      req.SalaryMin,
		SalaryMax:      req.SalaryMax,
		Requirements:   req.Requirements,
		CreatedBy:      req.CreatedBy,
		Status:         model.JobActive,
		CreatedAt:      time.Now().UTC(),
	}
	id, err := s.store.Insert(ctx, repository.Jobs, job)
	if err != nil {
		return 0, storageError(s.logger, "创建职位失败", err, nil)
	}
	return id, nil
}

// ──── Apply ────

func (s *jobService) Apply(ctx context.Context, jobID int64, req *dto.ApplyRequest) (int64, error) {
	if req.UserID == 0 {
		return 0, ErrUserIDRequired
	}

	var job model.Job
	if err := s.store.Get(ctx, repository.Jobs, jobID, &job); err != nil {
		return 0, storageError(s.logger, "查询职位失败", err, ErrJobNotFound)
	}
	var applicant model.User
	if err := s.store.Get(ctx, repository.Users, req.UserID, &applicant); err != nil {
		return 0, storageError(s.logger, "查询申请人失败", err, ErrUserNotFound)
	}
	if !applicant.Active() {
		return 0, ErrAccountClosed
	}

	// 重复申请由 (vaga_id, usuario_id) 唯一索引判定
	app := &model.Application{
		JobID:     jobID,
		UserID:    req.UserID,
		Message:   req.Message,
		CreatedAt: time.Now().UTC(),
	}
	id, err := s.store.Insert(ctx, repository.Applications, app)
	if errors.Is(err, repository.ErrConstraintViolation) {
		return 0, ErrAlreadyApplied
	}
	if err != nil {
		return 0, storageError(s.logger, "创建职位申请失败", err, nil)
	}
	return id, nil
}

func (s *jobService) toView(ctx context.Context, names *nameCache, j *model.Job) (dto.JobView, error) {
	creator, err := names.name(ctx, j.CreatedBy)
	if err != nil {
		return dto.JobView{}, storageError(s.logger, "查询职位创建者失败", err, nil)
	}
	return dto.JobView{
		ID:             j.ID,
		Title:          j.Title,
		Description:    j.Description,
		Company:        j.Company,
		Location:       j.Location,
		EmploymentType: j.EmploymentType,
		SalaryMin:      j.SalaryMin,
		SalaryMax:      j.SalaryMax,
		Requirements:   j.Requirements,
		CreatedBy:      j.CreatedBy,
		Status:         j.Status,
		CreatedAt:      j.CreatedAt,
		CreatorName:    creator,
	}, nil
}

package handler

import (
	"github.com/gin-gonic/gin"

	"allumni-network/internal/dto"
	"allumni-network/internal/service"
	"allumni-network/pkg/response"
)

// JobHandler 职位模块 HTTP 处理器
type JobHandler struct {
	jobSvc service.JobService
}

// NewJobHandler 创建 JobHandler
func NewJobHandler(jobSvc service.JobService) *JobHandler {
	return &JobHandler{jobSvc: jobSvc}
}

// ListJobs 在招职位
// GET /api/vagas
func (h *JobHandler) ListJobs(c *gin.Context) {
	jobs, err := h.jobSvc.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, jobs)
}

// GetJob 职位详情
// GET /api/vagas/:id
func (h *JobHandler) GetJob(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	job, err := h.jobSvc.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, job)
}

// CreateJob 发布职位
// POST /api/vagas
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dto.CreateJobRequest
	if !bindJSON(c, &req) {
		return
	}
	req.CreatedBy = actingID(c, req.CreatedBy)

	id, err := h.jobSvc.Create(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"vagaId": id})
}

// Apply 申请职位
// POST /api/vagas/:id/candidatar
func (h *JobHandler) Apply(c *gin.Context) {
	jobID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.ApplyRequest
	if !bindJSON(c, &req) {
		return
	}
	req.UserID = actingID(c, req.UserID)

	id, err := h.jobSvc.Apply(c.Request.Context(), jobID, &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"candidaturaId": id})
}

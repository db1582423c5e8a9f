package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-board/internal/apperrors"
	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/middleware"
	"github.com/justsurfingit/job-board/internal/services"
)

type JobHandler struct {
	JobService *services.JobService
}

// NewJobHandler creates the handler with dependencies
func NewJobHandler(j *services.JobService) *JobHandler {
	return &JobHandler{JobService: j}
}

// GetAllJobs is GET /job/getall
func (h *JobHandler) GetAllJobs(c *gin.Context) {
	jobs, err := h.JobService.ListActive(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"jobs":    jobs,
	})
}

// PostJob is POST /job/post
func (h *JobHandler) PostJob(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		_ = c.Error(apperrors.BadRequest(middleware.MsgNotAuthorized, nil))
		return
	}

	var req dtos.JobCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.BadRequest("Invalid JSON format: "+err.Error(), err))
		return
	}

	job, err := h.JobService.Create(c.Request.Context(), user, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Job Posted Successfully!",
		"post":    job,
	})
}

// GetMyJobs is GET /job/getmyjobs
func (h *JobHandler) GetMyJobs(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		_ = c.Error(apperrors.BadRequest(middleware.MsgNotAuthorized, nil))
		return
	}

	jobs, err := h.JobService.ListMine(c.Request.Context(), user)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"myJobs":  jobs,
	})
}

// UpdateJob is PUT /job/update/:id
func (h *JobHandler) UpdateJob(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		_ = c.Error(apperrors.BadRequest(middleware.MsgNotAuthorized, nil))
		return
	}

	var req dtos.JobUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.BadRequest("Invalid JSON format: "+err.Error(), err))
		return
	}

	job, err := h.JobService.Update(c.Request.Context(), user, c.Param("id"), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"post":    job,
		"message": "Job Updated!",
	})
}

// DeleteJob is DELETE /job/delete/:id
func (h *JobHandler) DeleteJob(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		_ = c.Error(apperrors.BadRequest(middleware.MsgNotAuthorized, nil))
		return
	}

	if err := h.JobService.Delete(c.Request.Context(), user, c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Job Deleted!",
	})
}

// GetSingleJob is GET /job/:id
func (h *JobHandler) GetSingleJob(c *gin.Context) {
	job, err := h.JobService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"job":     job,
	})
}

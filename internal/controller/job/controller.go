// Package job provides HTTP handlers for job posting operations.
package job

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arsalankhan8/Cigul-Recruitment/internal/database"
	"github.com/arsalankhan8/Cigul-Recruitment/internal/model"
	"github.com/arsalankhan8/Cigul-Recruitment/internal/storage"
	"github.com/arsalankhan8/Cigul-Recruitment/internal/utilities"
)

const maxPageSize = 100

// JobController handles job posting related endpoints
type JobController struct {
	DB      *database.DBinstanceStruct
	Storage storage.Client
}

// NewJobController creates a new instance of JobController
func NewJobController(db *database.DBinstanceStruct, store storage.Client) *JobController {
	return &JobController{
		DB:      db,
		Storage: store,
	}
}

// jobForm carries operator input for create and update. List fields arrive as
// newline-separated textarea content and are split server-side.
type jobForm struct {
	Title            *string `json:"title"`
	Department       *string `json:"department"`
	WorkModel        *string `json:"workModel"`
	SalaryMinPKR     *int    `json:"salaryMinPKR"`
	SalaryMaxPKR     *int    `json:"salaryMaxPKR"`
	Requirements     *string `json:"requirements"`
	Responsibilities *string `json:"responsibilities"`
	Perks            *string `json:"perks"`
	Status           *string `json:"status"`
}

func (f *jobForm) applyTo(job *model.Job) {
	if f.Title != nil {
		job.Title = *f.Title
	}
	if f.Department != nil {
		job.Department = *f.Department
	}
	if f.WorkModel != nil {
		job.WorkModel = *f.WorkModel
	}
	if f.SalaryMinPKR != nil {
		job.SalaryMinPKR = f.SalaryMinPKR
	}
	if f.SalaryMaxPKR != nil {
		job.SalaryMaxPKR = f.SalaryMaxPKR
	}
	if f.Requirements != nil {
		job.Requirements = utilities.LinesToArray(*f.Requirements)
	}
	if f.Responsibilities != nil {
		job.Responsibilities = utilities.LinesToArray(*f.Responsibilities)
	}
	if f.Perks != nil {
		job.Perks = utilities.LinesToArray(*f.Perks)
	}
}

// CreateJobHandler handles the creation of a new job posting by an operator.
// @Summary Create job posting, draft by default
// @Tags Jobs
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 201 {object} model.Job "Successfully create job posting"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs [post]
func (jc *JobController) CreateJobHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var form jobForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	if form.Title == nil || form.Department == nil || form.WorkModel == nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "title, department and workModel are required",
		})
		return
	}
	if !utilities.Contains(model.WorkModels, *form.WorkModel) {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("workModel must be %q or %q", model.WorkModelInHouse, model.WorkModelRemote),
		})
		return
	}

	job := model.Job{Status: model.JobStatusDraft, CreatedBy: &user.ID}
	form.applyTo(&job)

	if form.Status != nil {
		if !utilities.Contains([]string{model.JobStatusDraft, model.JobStatusPublished, model.JobStatusArchived}, *form.Status) {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid job status"})
			return
		}
		job.Status = *form.Status
	}

	if err := jc.DB.Create(&job).Error; err != nil {
		if errors.Is(err, model.ErrSalaryRange) {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to create job: ", err),
		})
		return
	}

	c.JSON(http.StatusCreated, job)
}

// ListJobs fetches job postings that match query from the database
// and returns them in a paginated envelope. The careers page calls this
// with status=published; the dashboard without a status filter.
// @Summary List job postings based on query
// @Tags Jobs
// @Produce json
// @Param status query string false "Filter by lifecycle status"
// @Param search query string false "Substring match over title, department and work model, case insensitive"
// @Param page query int false "Page number, starting at 1"
// @Param limit query int false "Page size, capped at 100"
// @Success 200 {object} map[string]interface{} "items, total, page, limit, totalPages"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs [get]
func (jc *JobController) ListJobs(c *gin.Context) {
	rawStatus := c.Query("status")
	rawSearch := c.Query("search")

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	filter := func(tx *gorm.DB) *gorm.DB {
		if rawStatus != "" {
			tx = tx.Where("status = ?", rawStatus)
		}
		if rawSearch != "" {
			pattern := "%" + rawSearch + "%"
			tx = tx.Where("title ILIKE ? OR department ILIKE ? OR work_model ILIKE ?", pattern, pattern, pattern)
		}
		return tx
	}

	var total int64
	if err := jc.DB.Model(&model.Job{}).Scopes(filter).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to fetch jobs"})
		return
	}

	jobs := []model.Job{}
	if err := jc.DB.Scopes(filter).Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&jobs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to fetch jobs"})
		return
	}

	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      jobs,
		"total":      total,
		"page":       page,
		"limit":      limit,
		"totalPages": totalPages,
	})
}

// findJob parses the path id and loads the job, writing the error response
// itself. The bool result reports success.
func (jc *JobController) findJob(c *gin.Context, job *model.Job) bool {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid job id"})
		return false
	}

	if err := jc.DB.Where("id = ?", id).First(job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job not found"})
			return false
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job: %s", err.Error()),
		})
		return false
	}
	return true
}

// GetJobByID fetches a job posting by its ID.
// @Summary Get job posting by ID
// @Tags Jobs
// @Produce json
// @Param id path string true "Job id"
// @Success 200 {object} model.Job
// @Failure 400 {object} utilities.ErrorResponse "Invalid job id"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Router /jobs/{id} [get]
func (jc *JobController) GetJobByID(c *gin.Context) {
	var job model.Job
	if !jc.findJob(c, &job) {
		return
	}
	c.JSON(http.StatusOK, job)
}

// UpdateJob applies a partial edit to a job posting. Jobs are editable in
// every lifecycle state.
// @Summary Update job posting
// @Tags Jobs
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Job id"
// @Success 200 {object} model.Job "Updated job"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body or job id"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id} [put]
func (jc *JobController) UpdateJob(c *gin.Context) {
	var job model.Job
	if !jc.findJob(c, &job) {
		return
	}

	var form jobForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	if form.WorkModel != nil && !utilities.Contains(model.WorkModels, *form.WorkModel) {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("workModel must be %q or %q", model.WorkModelInHouse, model.WorkModelRemote),
		})
		return
	}

	form.applyTo(&job)
	// Lifecycle status changes go through the publish/archive endpoints only.

	if err := jc.DB.Save(&job).Error; err != nil {
		if errors.Is(err, model.ErrSalaryRange) {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update job: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, job)
}

// PublishJob moves a draft job to published. Re-publishing a published job
// just confirms the current state; archived is terminal.
// @Summary Publish job posting
// @Tags Jobs
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Job id"
// @Success 200 {object} model.Job "Published job"
// @Failure 400 {object} utilities.ErrorResponse "Invalid job id"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 409 {object} utilities.ErrorResponse "Job is archived"
// @Router /jobs/{id}/publish [patch]
func (jc *JobController) PublishJob(c *gin.Context) {
	var job model.Job
	if !jc.findJob(c, &job) {
		return
	}

	if job.Status == model.JobStatusArchived {
		c.JSON(http.StatusConflict, utilities.ErrorResponse{Error: "Archived jobs cannot be published"})
		return
	}

	if job.Status != model.JobStatusPublished {
		job.Status = model.JobStatusPublished
		if err := jc.DB.Save(&job).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to publish job: %s", err.Error()),
			})
			return
		}
	}

	c.JSON(http.StatusOK, job)
}

// ArchiveJob moves a job to the terminal archived state. Archiving an
// archived job confirms the current state.
// @Summary Archive job posting
// @Tags Jobs
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Job id"
// @Success 200 {object} model.Job "Archived job"
// @Failure 400 {object} utilities.ErrorResponse "Invalid job id"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Router /jobs/{id}/archive [patch]
func (jc *JobController) ArchiveJob(c *gin.Context) {
	var job model.Job
	if !jc.findJob(c, &job) {
		return
	}

	if job.Status != model.JobStatusArchived {
		job.Status = model.JobStatusArchived
		if err := jc.DB.Save(&job).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to archive job: %s", err.Error()),
			})
			return
		}
	}

	c.JSON(http.StatusOK, job)
}

// DeleteJob removes a job posting, its applications and their stored resumes.
// @Summary Delete job posting
// @Tags Jobs
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Job id"
// @Success 200 {object} utilities.MessageResponse "Job deleted"
// @Failure 400 {object} utilities.ErrorResponse "Invalid job id"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id} [delete]
func (jc *JobController) DeleteJob(c *gin.Context) {
	var job model.Job
	if !jc.findJob(c, &job) {
		return
	}

	var apps []model.Application
	if err := jc.DB.Where("job_id = ?", job.ID).Find(&apps).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve applications: %s", err.Error()),
		})
		return
	}

	if err := jc.DB.Delete(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to delete job: %s", err.Error()),
		})
		return
	}

	// Records are gone; stored files go best-effort.
	for _, app := range apps {
		if app.Resume.Path == "" {
			continue
		}
		if err := jc.Storage.Delete(app.Resume.Path); err != nil {
			log.Printf("failed to delete resume %s: %v", app.Resume.Path, err)
		}
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Job deleted"})
}

// Package pipeline provides the hiring dashboard endpoints: the per-job
// candidate counts overview, the kanban board, and candidate actions.
package pipeline

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arsalankhan8/Cigul-Recruitment/internal/database"
	"github.com/arsalankhan8/Cigul-Recruitment/internal/model"
	"github.com/arsalankhan8/Cigul-Recruitment/internal/storage"
	"github.com/arsalankhan8/Cigul-Recruitment/internal/utilities"
)

// PipelineController handles hiring pipeline related endpoints
type PipelineController struct {
	DB      *database.DBinstanceStruct
	Storage storage.Client
}

// NewPipelineController creates a new instance of PipelineController
func NewPipelineController(db *database.DBinstanceStruct, store storage.Client) *PipelineController {
	return &PipelineController{
		DB:      db,
		Storage: store,
	}
}

type jobCountsRow struct {
	JobID      uuid.UUID `gorm:"column:job_id"`
	Total      int       `gorm:"column:total"`
	Applied    int       `gorm:"column:applied"`
	Interview  int       `gorm:"column:interview"`
	Rejected   int       `gorm:"column:rejected"`
	Hired      int       `gorm:"column:hired"`
	NewLast24h int       `gorm:"column:new_last24h"`
}

// Overview returns every non-archived job, newest first, annotated with its
// candidate counts and the number of applications from the trailing 24 hours.
// Counts are computed live on every call; jobs without applications report
// all-zero counts.
// @Summary Pipeline overview
// @Tags Pipeline
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} map[string]interface{} "items"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /pipeline [get]
func (pc *PipelineController) Overview(c *gin.Context) {
	var jobs []model.Job
	if err := pc.DB.
		Where("status <> ?", model.JobStatusArchived).
		Order("created_at DESC").
		Find(&jobs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to load pipeline overview",
		})
		return
	}

	windowStart := time.Now().Add(-24 * time.Hour)

	// Go through the embedded gorm handle; the wrapper's Raw() returns the
	// underlying *sql.DB instead.
	var rows []jobCountsRow
	if err := pc.DB.DB.Raw(`
		SELECT job_id,
		       COUNT(*)                                            AS total,
		       COUNT(*) FILTER (WHERE status = 'applied')          AS applied,
		       COUNT(*) FILTER (WHERE status = 'interview')        AS interview,
		       COUNT(*) FILTER (WHERE status = 'rejected')         AS rejected,
		       COUNT(*) FILTER (WHERE status = 'hired')            AS hired,
		       COUNT(*) FILTER (WHERE created_at >= ?)             AS new_last24h
		FROM applications
		GROUP BY job_id`, windowStart).Scan(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to load pipeline overview",
		})
		return
	}

	countsByJob := make(map[uuid.UUID]jobCountsRow, len(rows))
	for _, row := range rows {
		countsByJob[row.JobID] = row
	}

	items := make([]model.PipelineOverviewItem, 0, len(jobs))
	for _, job := range jobs {
		counts := countsByJob[job.ID]
		items = append(items, model.PipelineOverviewItem{
			Job: job,
			Pipeline: model.PipelineCounts{
				Total:      counts.Total,
				Applied:    counts.Applied,
				Interview:  counts.Interview,
				Rejected:   counts.Rejected,
				Hired:      counts.Hired,
				NewLast24h: counts.NewLast24h,
			},
		})
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Board returns one job with its applications grouped into the four
// canonical columns. Legacy stored statuses are bucketed through
// NormalizeStatus without being rewritten.
// @Summary Per-job kanban board
// @Tags Pipeline
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param jobId path string true "Job id"
// @Success 200 {object} model.PipelineBoard
// @Failure 400 {object} utilities.ErrorResponse "Invalid job id"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /pipeline/jobs/{jobId} [get]
func (pc *PipelineController) Board(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("jobId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid job id"})
		return
	}

	var job model.Job
	if err := pc.DB.Where("id = ?", jobID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to load job pipeline",
		})
		return
	}

	var apps []model.Application
	if err := pc.DB.
		Where("job_id = ?", jobID).
		Order("created_at DESC").
		Find(&apps).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to load job pipeline",
		})
		return
	}

	columns := make(map[string][]model.Application, len(model.CanonicalStatuses))
	for _, status := range model.CanonicalStatuses {
		columns[status] = []model.Application{}
	}
	for _, app := range apps {
		bucket := NormalizeStatus(app.Status)
		columns[bucket] = append(columns[bucket], app)
	}

	c.JSON(http.StatusOK, model.PipelineBoard{
		Job:             job,
		TotalCandidates: len(apps),
		Columns:         columns,
	})
}

// findApplication parses the path id and loads the application, writing the
// error response itself. The bool result reports success.
func (pc *PipelineController) findApplication(c *gin.Context, app *model.Application) bool {
	appID, err := uuid.Parse(c.Param("appId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid application id"})
		return false
	}

	if err := pc.DB.Where("id = ?", appID).First(app).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Candidate not found"})
			return false
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to load candidate: %s", err.Error()),
		})
		return false
	}
	return true
}

// GetApplication returns one candidate with the job they applied to.
// @Summary Candidate detail
// @Tags Pipeline
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param appId path string true "Application id"
// @Success 200 {object} map[string]interface{} "application and job"
// @Failure 400 {object} utilities.ErrorResponse "Invalid application id"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Candidate not found"
// @Router /pipeline/applications/{appId} [get]
func (pc *PipelineController) GetApplication(c *gin.Context) {
	var app model.Application
	if !pc.findApplication(c, &app) {
		return
	}

	var job model.Job
	if err := pc.DB.Where("id = ?", app.JobID).First(&job).Error; err != nil &&
		!errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to load candidate: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"application": app,
		"job":         job,
	})
}

// UpdateStatus moves a candidate to one of the four canonical stages.
// Transitions are free in any direction; the update is a single atomic
// single-row write and no history is kept beyond the updated timestamp.
// @Summary Update candidate status
// @Tags Pipeline
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param appId path string true "Application id"
// @Success 200 {object} map[string]interface{} "Updated application"
// @Failure 400 {object} utilities.ErrorResponse "Invalid status or application id"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Candidate not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /pipeline/applications/{appId}/status [patch]
func (pc *PipelineController) UpdateStatus(c *gin.Context) {
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil ||
		!utilities.Contains(model.CanonicalStatuses, body.Status) {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid status"})
		return
	}

	var app model.Application
	if !pc.findApplication(c, &app) {
		return
	}

	if err := pc.DB.Model(&app).Update("status", body.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update status: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"application": app})
}

// DeleteApplication permanently removes a candidate record and its stored
// resume file.
// @Summary Delete candidate
// @Tags Pipeline
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param appId path string true "Application id"
// @Success 200 {object} utilities.MessageResponse "Candidate deleted"
// @Failure 400 {object} utilities.ErrorResponse "Invalid application id"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Candidate not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /pipeline/applications/{appId} [delete]
func (pc *PipelineController) DeleteApplication(c *gin.Context) {
	var app model.Application
	if !pc.findApplication(c, &app) {
		return
	}

	if err := pc.DB.Delete(&app).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to delete candidate: %s", err.Error()),
		})
		return
	}

	if app.Resume.Path != "" {
		if err := pc.Storage.Delete(app.Resume.Path); err != nil {
			log.Printf("failed to delete resume %s: %v", app.Resume.Path, err)
		}
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Candidate deleted"})
}

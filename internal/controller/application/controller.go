// Package application provides the public intake endpoint that accepts
// candidate applications against published job postings.
package application

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/arsalankhan8/Cigul-Recruitment/internal/database"
	"github.com/arsalankhan8/Cigul-Recruitment/internal/model"
	"github.com/arsalankhan8/Cigul-Recruitment/internal/storage"
	"github.com/arsalankhan8/Cigul-Recruitment/internal/utilities"
)

// MaxResumeSize caps uploaded resumes at 500 KB.
const MaxResumeSize = 500 * 1024

// allowedResumeTypes are the only accepted resume MIME types: PDF, DOC, DOCX.
var allowedResumeTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

var baseRequiredFields = []string{"fullName", "email", "portfolioUrl", "expYears", "pkrExpectation"}

// requiredFieldsFor returns the required form fields for a job's work model.
// Remote jobs additionally need country; in-house ones liveInKarachi
// (area stays optional).
func requiredFieldsFor(job *model.Job) []string {
	if job.IsRemote() {
		return append(append([]string{}, baseRequiredFields...), "country")
	}
	return append(append([]string{}, baseRequiredFields...), "liveInKarachi")
}

// ApplicationController handles the public application intake
type ApplicationController struct {
	DB      *database.DBinstanceStruct
	Storage storage.Client
}

// NewApplicationController creates a new instance of ApplicationController
func NewApplicationController(db *database.DBinstanceStruct, store storage.Client) *ApplicationController {
	return &ApplicationController{
		DB:      db,
		Storage: store,
	}
}

// ApplyHandler accepts a multipart application against a published job.
// Draft and archived jobs answer with the same not-found signal as missing
// ones, so drafts never leak. All validation happens before the resume is
// persisted or any record written.
// @Summary Apply to a published job
// @Tags Application
// @Accept mpfd
// @Produce json
// @Param id path string true "Job id"
// @Param resume formData file true "Resume file, PDF/DOC/DOCX up to 500 KB"
// @Success 201 {object} map[string]interface{} "Application received"
// @Failure 400 {object} utilities.ErrorResponse "Missing or malformed fields, invalid job id"
// @Failure 404 {object} utilities.ErrorResponse "Job not found or not accepting applications"
// @Failure 409 {object} utilities.ErrorResponse "Already applied with this email"
// @Failure 413 {object} utilities.ErrorResponse "Resume larger than 500 KB"
// @Failure 415 {object} utilities.ErrorResponse "Resume is not PDF, DOC or DOCX"
// @Failure 500 {object} utilities.ErrorResponse "Storage failure"
// @Router /jobs/{id}/apply [post]
func (ac *ApplicationController) ApplyHandler(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid job id"})
		return
	}

	var job model.Job
	if err := ac.DB.Where("id = ?", jobID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{
				Error: "Job not found or not accepting applications.",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job: %s", err.Error()),
		})
		return
	}
	if job.Status != model.JobStatusPublished {
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{
			Error: "Job not found or not accepting applications.",
		})
		return
	}

	rawFile, err := c.FormFile("resume")
	var maxBytesError *http.MaxBytesError
	if err != nil && (errors.As(err, &maxBytesError) ||
		strings.Contains(err.Error(), "request body too large")) {
		c.JSON(http.StatusRequestEntityTooLarge, utilities.ErrorResponse{
			Error: "Resume must not exceed 500 KB.",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Resume file is required."})
		return
	}

	mimeType := rawFile.Header.Get("Content-Type")
	if !allowedResumeTypes[mimeType] {
		c.JSON(http.StatusUnsupportedMediaType, utilities.ErrorResponse{
			Error: "Only PDF, DOC, or DOCX files are allowed.",
		})
		return
	}
	if rawFile.Size > MaxResumeSize {
		c.JSON(http.StatusRequestEntityTooLarge, utilities.ErrorResponse{
			Error: "Resume must not exceed 500 KB.",
		})
		return
	}

	missing := []string{}
	for _, field := range requiredFieldsFor(&job) {
		if strings.TrimSpace(c.PostForm(field)) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Missing required fields: %s", strings.Join(missing, ", ")),
		})
		return
	}

	application := model.Application{
		JobID:        job.ID,
		FullName:     strings.TrimSpace(c.PostForm("fullName")),
		Email:        strings.ToLower(strings.TrimSpace(c.PostForm("email"))),
		PortfolioURL: strings.TrimSpace(c.PostForm("portfolioUrl")),
		Status:       model.ApplicationStatusApplied,
		Meta: model.SubmissionMeta{
			IP:        c.ClientIP(),
			UserAgent: c.GetHeader("User-Agent"),
		},
	}

	if job.IsRemote() {
		country := c.PostForm("country")
		if !utilities.Contains(model.Countries, country) {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: "country must be Pakistan, Bangladesh, or Others.",
			})
			return
		}
		application.Country = &country
	} else {
		liveInKarachi := c.PostForm("liveInKarachi")
		if !utilities.Contains(model.ResidencyAnswers, liveInKarachi) {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: "liveInKarachi must be Yes or No.",
			})
			return
		}
		application.LiveInKarachi = &liveInKarachi
		application.Area = strings.TrimSpace(c.PostForm("area"))
	}

	expYears, errExp := strconv.Atoi(strings.TrimSpace(c.PostForm("expYears")))
	pkrExpectation, errPkr := strconv.Atoi(strings.TrimSpace(c.PostForm("pkrExpectation")))
	if errExp != nil || errPkr != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Experience years and PKR expectation must be numbers.",
		})
		return
	}
	if expYears < 0 || expYears > 60 || pkrExpectation < 0 {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Experience years must be 0-60 and PKR expectation non-negative.",
		})
		return
	}
	application.ExpYears = expYears
	application.PKRExpectation = pkrExpectation

	// Input is valid; persist the file, then the record.
	f, err := rawFile.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Cannot open file"})
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Println("Failed to close file")
		}
	}()

	storedName := storage.MakeFileName(rawFile.Filename)
	storedPath, err := ac.Storage.Save(storedName, f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to store resume: %s", err.Error()),
		})
		return
	}

	application.Resume = model.ResumeFile{
		OriginalName: rawFile.Filename,
		FileName:     storedName,
		MimeType:     mimeType,
		Size:         rawFile.Size,
		Path:         storedPath,
	}

	if err := ac.DB.Create(&application).Error; err != nil {
		// The record never made it; the stored file must not outlive it.
		if delErr := ac.Storage.Delete(storedPath); delErr != nil {
			log.Printf("failed to delete resume %s: %v", storedPath, delErr)
		}

		var pqErr *pgconn.PgError
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			// The unique index on (job_id, email) is the authoritative
			// duplicate check; no pre-read can race past it.
			c.JSON(http.StatusConflict, utilities.ErrorResponse{
				Error: "You have already applied to this job with this email.",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to submit application: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Application received.",
		"application": application,
	})
}

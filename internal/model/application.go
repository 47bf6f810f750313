package model

import (
	"time"

	"github.com/google/uuid"
)

// Canonical pipeline statuses. Every application lands in exactly one of
// these four buckets on the dashboard.
var (
	ApplicationStatusApplied   = "applied"
	ApplicationStatusInterview = "interview"
	ApplicationStatusRejected  = "rejected"
	ApplicationStatusHired     = "hired"
)

// CanonicalStatuses lists the four pipeline stages in board order.
var CanonicalStatuses = []string{
	ApplicationStatusApplied,
	ApplicationStatusInterview,
	ApplicationStatusRejected,
	ApplicationStatusHired,
}

// Country choices for remote applicants
var Countries = []string{"Pakistan", "Bangladesh", "Others"}

// Residency answers for in-house applicants
var ResidencyAnswers = []string{"Yes", "No"}

// ResumeFile holds metadata of the stored resume. The bytes themselves live
// with the storage client; only the returned path is recorded here.
type ResumeFile struct {
	OriginalName string `gorm:"type:text" json:"originalName"`
	FileName     string `gorm:"type:text" json:"fileName"`
	MimeType     string `gorm:"type:text" json:"mimeType"`
	Size         int64  `json:"size"`
	Path         string `gorm:"type:text" json:"path"`
}

// SubmissionMeta is captured verbatim at submission time and never re-validated.
type SubmissionMeta struct {
	IP        string `gorm:"type:text" json:"ip"`
	UserAgent string `gorm:"type:text" json:"userAgent"`
}

// Application represents one candidate submission against a job posting.
// The composite unique index enforces at most one application per
// (job, email) pair; concurrent duplicate inserts surface as a 23505
// violation from postgres rather than a racy pre-check.
type Application struct {
	ID    uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	JobID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_applications_job_email" json:"jobId"`
	Job   Job       `gorm:"foreignKey:JobID;references:ID" json:"-"`

	FullName     string `gorm:"type:text;not null" json:"fullName"`
	Email        string `gorm:"type:text;not null;uniqueIndex:idx_applications_job_email" json:"email"`
	PortfolioURL string `gorm:"type:text;not null" json:"portfolioUrl"`

	// Country is set for remote jobs, LiveInKarachi and Area for in-house ones.
	Country       *string `gorm:"type:text" json:"country,omitempty"`
	LiveInKarachi *string `gorm:"type:text" json:"liveInKarachi,omitempty"`
	Area          string  `gorm:"type:text" json:"area,omitempty"`

	ExpYears       int `json:"expYears"`
	PKRExpectation int `json:"pkrExpectation"`

	Resume ResumeFile     `gorm:"embedded;embeddedPrefix:resume_" json:"resume"`
	Meta   SubmissionMeta `gorm:"embedded;embeddedPrefix:meta_" json:"meta"`

	Status    string    `gorm:"type:text;default:'applied';index" json:"status"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

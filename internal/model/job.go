package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Job work models. The wire values are what the careers frontend submits.
var (
	WorkModelInHouse = "In-house (Karachi)"
	WorkModelRemote  = "Remote (Global)"
)

// Job lifecycle statuses
var (
	JobStatusDraft     = "draft"
	JobStatusPublished = "published"
	JobStatusArchived  = "archived"
)

// WorkModels lists every accepted work model value.
var WorkModels = []string{WorkModelInHouse, WorkModelRemote}

// ErrSalaryRange is raised when a job is saved with max salary below min.
var ErrSalaryRange = errors.New("max salary must be greater than or equal to min salary")

// EditableJobInfo is the part of a job posting that operators can create and edit
type EditableJobInfo struct {
	Title            string         `gorm:"type:text;not null" json:"title"`
	Department       string         `gorm:"type:text;not null" json:"department"`
	WorkModel        string         `gorm:"type:text;not null" json:"workModel"`
	SalaryMinPKR     *int           `gorm:"type:integer" json:"salaryMinPKR"`
	SalaryMaxPKR     *int           `gorm:"type:integer" json:"salaryMaxPKR"`
	Requirements     pq.StringArray `gorm:"type:text[]" json:"requirements"`
	Responsibilities pq.StringArray `gorm:"type:text[]" json:"responsibilities"`
	Perks            pq.StringArray `gorm:"type:text[]" json:"perks"`
}

// Job is gorm model for a job posting with its lifecycle status
type Job struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EditableJobInfo
	Status    string     `gorm:"type:text;default:'draft';index" json:"status"`
	CreatedBy *uuid.UUID `gorm:"type:uuid" json:"createdBy,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`

	Applications []Application `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"-"`
}

// BeforeSave enforces the salary range invariant on create and update.
func (j *Job) BeforeSave(_ *gorm.DB) error {
	if j.SalaryMinPKR != nil && j.SalaryMaxPKR != nil && *j.SalaryMaxPKR < *j.SalaryMinPKR {
		return ErrSalaryRange
	}
	return nil
}

// IsRemote reports whether the job accepts applicants outside Karachi.
func (j *Job) IsRemote() bool {
	return j.WorkModel == WorkModelRemote
}

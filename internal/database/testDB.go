package database

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	m "github.com/arsalankhan8/Cigul-Recruitment/internal/model"
	"github.com/arsalankhan8/Cigul-Recruitment/internal/utilities"
)

var testDBInstance *DBinstanceStruct
var teardown func(context.Context) error

// Exported seeded fixtures for tests
var (
	TestAdminUser m.User

	// Add exported plain password
	TestSeedPassword = "SeedPass123!"

	TestJobRemote   m.Job
	TestJobOnsite   m.Job
	TestJobDraft    m.Job
	TestJobArchived m.Job

	TestApplicationRemote m.Application
	TestApplicationLegacy m.Application
)

// GetTestDB starts a PostgreSQL test container and returns a teardown function,
// the DB instance, and any error encountered during setup.
func GetTestDB() (func(context.Context) error, *DBinstanceStruct, error) {

	if testDBInstance != nil && teardown != nil {
		return teardown, testDBInstance, nil
	}

	// Database configuration
	var (
		dbName = "database"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:latest",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		return nil, nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), nat.Port("5432/tcp"))
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	config := &DBConfig{
		useConstr: true,
		Constr:    fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", dbHost, dbPort.Port(), dbUser, dbPwd, dbName),
	}

	db, err := NewDBInstance(config)
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	if err := seedTestData(db); err != nil {
		_ = dbContainer.Terminate(context.Background())
		return nil, nil, err
	}

	testDBInstance = db
	teardown = dbContainer.Terminate

	return dbContainer.Terminate, db, nil
}

// seedTestData inserts the admin operator, sample jobs in every lifecycle
// state, and a couple of applications (one with a legacy status).
func seedTestData(db *DBinstanceStruct) error {
	var userCount int64
	if err := db.Model(&m.User{}).Count(&userCount).Error; err != nil {
		return err
	}

	if userCount > 0 {
		return loadTestData(db)
	}

	hashedPwd, err := utilities.HashPassword(TestSeedPassword)
	if err != nil {
		return err
	}

	TestAdminUser = m.User{
		Username: "admin_user",
		Password: hashedPwd,
		Role:     m.RoleAdmin,
	}
	if err := db.Create(&TestAdminUser).Error; err != nil {
		return err
	}

	salaryMin, salaryMax := 100000, 250000

	TestJobRemote = m.Job{
		EditableJobInfo: m.EditableJobInfo{
			Title:        "Senior Product Designer",
			Department:   "Design",
			WorkModel:    m.WorkModelRemote,
			SalaryMinPKR: &salaryMin,
			SalaryMaxPKR: &salaryMax,
			Requirements: []string{"5+ years of product design", "Strong portfolio"},
			Perks:        []string{"Remote-first", "Annual retreat"},
		},
		Status:    m.JobStatusPublished,
		CreatedBy: &TestAdminUser.ID,
	}
	TestJobOnsite = m.Job{
		EditableJobInfo: m.EditableJobInfo{
			Title:      "Office Coordinator",
			Department: "Operations",
			WorkModel:  m.WorkModelInHouse,
		},
		Status:    m.JobStatusPublished,
		CreatedBy: &TestAdminUser.ID,
	}
	TestJobDraft = m.Job{
		EditableJobInfo: m.EditableJobInfo{
			Title:      "Backend Engineer",
			Department: "Engineering",
			WorkModel:  m.WorkModelRemote,
		},
		Status: m.JobStatusDraft,
	}
	TestJobArchived = m.Job{
		EditableJobInfo: m.EditableJobInfo{
			Title:      "Marketing Intern",
			Department: "Marketing",
			WorkModel:  m.WorkModelInHouse,
		},
		Status: m.JobStatusArchived,
	}

	for _, job := range []*m.Job{&TestJobRemote, &TestJobOnsite, &TestJobDraft, &TestJobArchived} {
		if err := db.Create(job).Error; err != nil {
			return err
		}
	}

	country := "Pakistan"
	TestApplicationRemote = m.Application{
		JobID:          TestJobRemote.ID,
		FullName:       "Ayesha Khan",
		Email:          "ayesha@example.com",
		PortfolioURL:   "https://ayesha.design",
		Country:        &country,
		ExpYears:       6,
		PKRExpectation: 200000,
		Resume: m.ResumeFile{
			OriginalName: "ayesha_cv.pdf",
			FileName:     "1700000000_ayesha_cv.pdf",
			MimeType:     "application/pdf",
			Size:         120 * 1024,
			Path:         "/uploads/resumes/1700000000_ayesha_cv.pdf",
		},
		Meta:   m.SubmissionMeta{IP: "203.0.113.7", UserAgent: "seed"},
		Status: m.ApplicationStatusApplied,
	}
	TestApplicationLegacy = m.Application{
		JobID:          TestJobRemote.ID,
		FullName:       "Bilal Ahmed",
		Email:          "bilal@example.com",
		PortfolioURL:   "https://bilal.dev",
		Country:        &country,
		ExpYears:       4,
		PKRExpectation: 150000,
		Meta:           m.SubmissionMeta{IP: "203.0.113.8", UserAgent: "seed"},
		// legacy status still present in storage, normalized on read only
		Status: "shortlisted",
	}

	for _, app := range []*m.Application{&TestApplicationRemote, &TestApplicationLegacy} {
		if err := db.Create(app).Error; err != nil {
			return err
		}
	}

	return nil
}

// loadTestData reloads the seeded fixtures when the container already holds data.
func loadTestData(db *DBinstanceStruct) error {
	if err := db.Where("username = ?", "admin_user").First(&TestAdminUser).Error; err != nil {
		return err
	}
	jobs := map[string]*m.Job{
		"Senior Product Designer": &TestJobRemote,
		"Office Coordinator":      &TestJobOnsite,
		"Backend Engineer":        &TestJobDraft,
		"Marketing Intern":        &TestJobArchived,
	}
	for title, dst := range jobs {
		if err := db.Where("title = ?", title).First(dst).Error; err != nil {
			return err
		}
	}
	if err := db.Where("email = ?", "ayesha@example.com").First(&TestApplicationRemote).Error; err != nil {
		return err
	}
	return db.Where("email = ?", "bilal@example.com").First(&TestApplicationLegacy).Error
}

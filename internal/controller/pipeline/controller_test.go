package pipeline

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/arsalankhan8/Cigul-Recruitment/internal/auth"
	"github.com/arsalankhan8/Cigul-Recruitment/internal/database"
	"github.com/arsalankhan8/Cigul-Recruitment/internal/middleware"
	"github.com/arsalankhan8/Cigul-Recruitment/internal/model"
	"github.com/arsalankhan8/Cigul-Recruitment/internal/storage"
	"github.com/arsalankhan8/Cigul-Recruitment/internal/testutil"
)

var testDB *database.DBinstanceStruct

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	var err error
	var teardown func(context.Context) error
	teardown, testDB, err = database.GetTestDB()
	if err != nil {
		os.Exit(1)
	}
	m.Run()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if teardown != nil {
		_ = teardown(ctx)
	}
}

func pipelineEngine(t *testing.T) (*gin.Engine, *storage.LocalClient, string) {
	t.Helper()
	store, err := storage.NewLocalClient(t.TempDir())
	assert.NoError(t, err)

	token, err := auth.GetAccessToken(t, testDB, database.TestAdminUser.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	pc := NewPipelineController(testDB, store)
	r := gin.New()
	guarded := r.Group("/api/pipeline", middleware.RequireAuth(testDB), middleware.CheckRole(model.RoleAdmin))
	guarded.GET("", pc.Overview)
	guarded.GET("/jobs/:jobId", pc.Board)
	guarded.GET("/applications/:appId", pc.GetApplication)
	guarded.PATCH("/applications/:appId/status", pc.UpdateStatus)
	guarded.DELETE("/applications/:appId", pc.DeleteApplication)
	return r, store, token
}

func seedJob(t *testing.T, status string) model.Job {
	t.Helper()
	job := model.Job{
		EditableJobInfo: model.EditableJobInfo{
			Title:      "Test Role " + uuid.NewString()[:8],
			Department: "QA",
			WorkModel:  model.WorkModelRemote,
		},
		Status: status,
	}
	assert.NoError(t, testDB.Create(&job).Error)
	return job
}

func seedApp(t *testing.T, jobID uuid.UUID, status string, age time.Duration) model.Application {
	t.Helper()
	country := "Others"
	app := model.Application{
		JobID:          jobID,
		FullName:       "Candidate " + uuid.NewString()[:8],
		Email:          uuid.NewString()[:8] + "@example.com",
		PortfolioURL:   "https://example.com",
		Country:        &country,
		ExpYears:       2,
		PKRExpectation: 100000,
		Status:         status,
		CreatedAt:      time.Now().Add(-age),
	}
	assert.NoError(t, testDB.Create(&app).Error)
	return app
}

func testFileReader() io.Reader {
	return strings.NewReader("%PDF-1.4 test")
}

func findItem(items []interface{}, jobID uuid.UUID) map[string]interface{} {
	for _, raw := range items {
		item := raw.(map[string]interface{})
		if item["id"] == jobID.String() {
			return item
		}
	}
	return nil
}

func TestOverview_countsAndWindow(t *testing.T) {
	r, _, token := pipelineEngine(t)

	job := seedJob(t, model.JobStatusPublished)
	seedApp(t, job.ID, "applied", 23*time.Hour)
	seedApp(t, job.ID, "applied", time.Minute)
	seedApp(t, job.ID, "interview", 25*time.Hour)
	seedApp(t, job.ID, "rejected", 48*time.Hour)
	seedApp(t, job.ID, "hired", time.Hour)

	rec, resp := testutil.MakeJSONRequest(nil, token, r, "/api/pipeline", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)

	item := findItem(resp["items"].([]interface{}), job.ID)
	assert.NotNil(t, item)

	counts := item["pipeline"].(map[string]interface{})
	assert.Equal(t, float64(5), counts["total"])
	assert.Equal(t, float64(2), counts["applied"])
	assert.Equal(t, float64(1), counts["interview"])
	assert.Equal(t, float64(1), counts["rejected"])
	assert.Equal(t, float64(1), counts["hired"])
	// the 23h-old and two recent ones fall inside the trailing day,
	// the 25h and 48h-old ones do not
	assert.Equal(t, float64(3), counts["newLast24h"])

	// total equals the sum of the four stage counts
	sum := counts["applied"].(float64) + counts["interview"].(float64) +
		counts["rejected"].(float64) + counts["hired"].(float64)
	assert.Equal(t, counts["total"], sum)
}

func TestOverview_zeroCountJobsAndArchivedExclusion(t *testing.T) {
	r, _, token := pipelineEngine(t)

	empty := seedJob(t, model.JobStatusDraft)

	rec, resp := testutil.MakeJSONRequest(nil, token, r, "/api/pipeline", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
	items := resp["items"].([]interface{})

	// a job with zero applications still appears, with all-zero counts
	item := findItem(items, empty.ID)
	assert.NotNil(t, item)
	counts := item["pipeline"].(map[string]interface{})
	for _, key := range []string{"total", "applied", "interview", "rejected", "hired", "newLast24h"} {
		assert.Equal(t, float64(0), counts[key], key)
	}

	// archived jobs never appear
	assert.Nil(t, findItem(items, database.TestJobArchived.ID))

	// newest-created job comes first
	first := items[0].(map[string]interface{})
	assert.Equal(t, empty.ID.String(), first["id"])
}

func TestBoard_normalizesLegacyWithoutRewriting(t *testing.T) {
	r, _, token := pipelineEngine(t)

	job := seedJob(t, model.JobStatusPublished)
	seedApp(t, job.ID, "applied", time.Hour)
	legacy := seedApp(t, job.ID, "shortlisted", 2*time.Hour)
	seedApp(t, job.ID, "reviewed", 3*time.Hour)

	rec, resp := testutil.MakeJSONRequest(nil, token, r,
		"/api/pipeline/jobs/"+job.ID.String(), http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, float64(3), resp["totalCandidates"])
	columns := resp["columns"].(map[string]interface{})
	assert.Len(t, columns["applied"], 2)   // canonical + "reviewed"
	assert.Len(t, columns["interview"], 1) // "shortlisted"
	assert.Len(t, columns["rejected"], 0)
	assert.Len(t, columns["hired"], 0)

	// grouping is display-only; the stored value stays legacy
	var stored model.Application
	assert.NoError(t, testDB.Where("id = ?", legacy.ID).First(&stored).Error)
	assert.Equal(t, "shortlisted", stored.Status)
}

func TestBoard_missingJob(t *testing.T) {
	r, _, token := pipelineEngine(t)

	rec, _ := testutil.MakeJSONRequest(nil, token, r,
		"/api/pipeline/jobs/"+uuid.NewString(), http.MethodGet)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = testutil.MakeJSONRequest(nil, token, r,
		"/api/pipeline/jobs/garbage", http.MethodGet)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetApplication_detail(t *testing.T) {
	r, _, token := pipelineEngine(t)

	job := seedJob(t, model.JobStatusPublished)
	app := seedApp(t, job.ID, "applied", time.Hour)

	rec, resp := testutil.MakeJSONRequest(nil, token, r,
		"/api/pipeline/applications/"+app.ID.String(), http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)

	got := resp["application"].(map[string]interface{})
	assert.Equal(t, app.ID.String(), got["id"])
	gotJob := resp["job"].(map[string]interface{})
	assert.Equal(t, job.ID.String(), gotJob["id"])
}

func TestUpdateStatus_freeTransitions(t *testing.T) {
	r, _, token := pipelineEngine(t)

	job := seedJob(t, model.JobStatusPublished)
	app := seedApp(t, job.ID, "hired", time.Hour)

	// operators may move a hired candidate back to applied
	rec, resp := testutil.MakeJSONRequest(gin.H{"status": "applied"}, token, r,
		"/api/pipeline/applications/"+app.ID.String()+"/status", http.MethodPatch)
	assert.Equal(t, http.StatusOK, rec.Code)
	got := resp["application"].(map[string]interface{})
	assert.Equal(t, "applied", got["status"])

	var stored model.Application
	assert.NoError(t, testDB.Where("id = ?", app.ID).First(&stored).Error)
	assert.Equal(t, "applied", stored.Status)
}

func TestUpdateStatus_rejectsNonCanonical(t *testing.T) {
	r, _, token := pipelineEngine(t)
	app := seedApp(t, seedJob(t, model.JobStatusPublished).ID, "applied", time.Hour)

	for _, bad := range []string{"shortlisted", "on-hold", ""} {
		rec, _ := testutil.MakeJSONRequest(gin.H{"status": bad}, token, r,
			"/api/pipeline/applications/"+app.ID.String()+"/status", http.MethodPatch)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "status %q", bad)
	}

	rec, _ := testutil.MakeJSONRequest(gin.H{"status": "hired"}, token, r,
		"/api/pipeline/applications/"+uuid.NewString()+"/status", http.MethodPatch)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteApplication_removesRecordAndFile(t *testing.T) {
	r, store, token := pipelineEngine(t)

	job := seedJob(t, model.JobStatusPublished)
	app := seedApp(t, job.ID, "applied", time.Hour)

	// place a stored resume behind the record
	path, err := store.Save("del_cv.pdf", testFileReader())
	assert.NoError(t, err)
	assert.NoError(t, testDB.Model(&app).Updates(map[string]interface{}{
		"resume_file_name": "del_cv.pdf",
		"resume_path":      path,
	}).Error)

	rec, _ := testutil.MakeJSONRequest(nil, token, r,
		"/api/pipeline/applications/"+app.ID.String(), http.MethodDelete)
	assert.Equal(t, http.StatusOK, rec.Code)

	// record gone
	rec, _ = testutil.MakeJSONRequest(nil, token, r,
		"/api/pipeline/applications/"+app.ID.String(), http.MethodGet)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// file gone
	_, err = os.Stat(filepath.Join(store.BaseDir, "del_cv.pdf"))
	assert.True(t, os.IsNotExist(err))
}

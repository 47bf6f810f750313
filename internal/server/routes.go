package server

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	"github.com/arsalankhan8/Cigul-Recruitment/internal/auth"
	applicationctl "github.com/arsalankhan8/Cigul-Recruitment/internal/controller/application"
	jobctl "github.com/arsalankhan8/Cigul-Recruitment/internal/controller/job"
	pipelinectl "github.com/arsalankhan8/Cigul-Recruitment/internal/controller/pipeline"
	"github.com/arsalankhan8/Cigul-Recruitment/internal/middleware"
	"github.com/arsalankhan8/Cigul-Recruitment/internal/model"
	"github.com/arsalankhan8/Cigul-Recruitment/internal/storage"
)

// RegisterRoutes will register each http endpoint routes to bound Server instance
func (s *Server) RegisterRoutes() http.Handler {
	r := gin.Default()

	allowOriginsStr := os.Getenv("ALLOW_ORIGIN")
	allowOrigins := strings.Split(allowOriginsStr, ",")

	lAuth := auth.NewLocalAuthHandler(s.DB)
	jobs := jobctl.NewJobController(s.DB, s.Storage)
	intake := applicationctl.NewApplicationController(s.DB, s.Storage)
	pipeline := pipelinectl.NewPipelineController(s.DB, s.Storage)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(middleware.SafeHeader())

	// Resumes stored on disk are served statically, like the rest of the
	// upload directory.
	if local, ok := s.Storage.(*storage.LocalClient); ok {
		r.Static("/uploads/resumes", local.BaseDir)
	}

	r.GET("/", s.HelloHandler)
	r.GET("/health", s.healthHandler)

	api := r.Group("/api")
	{
		authRoute := api.Group("/auth")
		{
			authRoute.POST("login", middleware.EnvRateLimitMiddleware(), lAuth.LocalLoginHandler)
		}

		// Public careers endpoints
		api.GET("/jobs", jobs.ListJobs)
		api.GET("/jobs/:id", jobs.GetJobByID)
		api.POST("/jobs/:id/apply",
			middleware.EnvRateLimitMiddleware(),
			middleware.SizeLimit(applicationctl.MaxResumeSize),
			intake.ApplyHandler)

		// Dashboard endpoints
		needAuth := api.Group("")
		{
			needAuth.Use(middleware.RequireAuth(s.DB), middleware.CheckRole(model.RoleAdmin))

			needAuth.POST("/jobs", jobs.CreateJobHandler)
			needAuth.PUT("/jobs/:id", jobs.UpdateJob)
			needAuth.PATCH("/jobs/:id/publish", jobs.PublishJob)
			needAuth.PATCH("/jobs/:id/archive", jobs.ArchiveJob)
			needAuth.DELETE("/jobs/:id", jobs.DeleteJob)

			pipelineRoute := needAuth.Group("/pipeline")
			{
				pipelineRoute.GET("", pipeline.Overview)
				pipelineRoute.GET("/jobs/:jobId", pipeline.Board)
				pipelineRoute.GET("/applications/:appId", pipeline.GetApplication)
				pipelineRoute.PATCH("/applications/:appId/status", pipeline.UpdateStatus)
				pipelineRoute.DELETE("/applications/:appId", pipeline.DeleteApplication)
			}
		}
	}

	return r
}

// HelloHandler handle request by returning a liveness message
func (s *Server) HelloHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Cigul Recruitment API running"})
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.DB.Health())
}

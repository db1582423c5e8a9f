package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-board/internal/auth"
	"github.com/justsurfingit/job-board/internal/logging"
	"github.com/justsurfingit/job-board/internal/middleware"
)

type RouterDeps struct {
	Jobs        *JobHandler
	Users       *UserHandler
	Tokens      *auth.TokenManager
	Revoker     auth.Revoker
	UserFinder  middleware.UserFinder
	Log         *logging.Logger
	FrontendURL string
}

func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(d.Log))

	config := cors.DefaultConfig()
	if d.FrontendURL != "" {
		config.AllowOrigins = []string{d.FrontendURL}
		config.AllowCredentials = true
	} else {
		config.AllowAllOrigins = true
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(config))

	r.Use(middleware.ErrorHandler(d.Log))

	isAuthenticated := middleware.IsAuthenticated(d.Tokens, d.Revoker, d.UserFinder)

	api := r.Group("/api/v1")
	{
		api.GET("/health", HealthCheck)

		user := api.Group("/user")
		user.POST("/register", d.Users.Register)
		user.POST("/login", d.Users.Login)
		user.GET("/logout", isAuthenticated, d.Users.Logout)
		user.GET("/getuser", isAuthenticated, d.Users.GetUser)

		job := api.Group("/job")
		job.GET("/getall", d.Jobs.GetAllJobs)
		job.POST("/post", isAuthenticated, d.Jobs.PostJob)
		job.GET("/getmyjobs", isAuthenticated, d.Jobs.GetMyJobs)
		job.PUT("/update/:id", isAuthenticated, d.Jobs.UpdateJob)
		job.DELETE("/delete/:id", isAuthenticated, d.Jobs.DeleteJob)
		job.GET("/:id", isAuthenticated, d.Jobs.GetSingleJob)
	}

	return r
}

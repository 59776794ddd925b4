package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authApp "alfozan-insights/internal/application/auth"
	"alfozan-insights/internal/application/competitors"
	"alfozan-insights/internal/application/pipeline"
	"alfozan-insights/internal/application/projects"
	reportsApp "alfozan-insights/internal/application/reports"
	authinfra "alfozan-insights/internal/infrastructure/auth"
)

const (
	errCodeBadRequest         = "BAD_REQUEST"
	errCodeInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	errCodeUnauthorized       = "AUTH_UNAUTHORIZED"
	errCodeNotFound           = "NOT_FOUND"
	errCodeConflict           = "CONFLICT"
	errCodeInternal           = "INTERNAL_ERROR"
)

// Server 聚合 HTTP API 所需的全部用例。
type Server struct {
	projects    *projects.Service
	competitors *competitors.Service
	pipeline    *pipeline.UseCase
	reports     *reportsApp.UseCase
	snapshot    reportsApp.SnapshotReader
	loginUC     *authApp.LoginUseCase
	logoutUC    *authApp.LogoutUseCase
	tokens      *authinfra.JWTIssuer
}

// Deps 為建構 Server 的相依集合。
type Deps struct {
	Projects    *projects.Service
	Competitors *competitors.Service
	Pipeline    *pipeline.UseCase
	Reports     *reportsApp.UseCase
	Snapshot    reportsApp.SnapshotReader
	Login       *authApp.LoginUseCase
	Logout      *authApp.LogoutUseCase
	Tokens      *authinfra.JWTIssuer
}

// NewServer 建立 HTTP API 伺服器。
func NewServer(deps Deps) *Server {
	return &Server{
		projects:    deps.Projects,
		competitors: deps.Competitors,
		pipeline:    deps.Pipeline,
		reports:     deps.Reports,
		snapshot:    deps.Snapshot,
		loginUC:     deps.Login,
		logoutUC:    deps.Logout,
		tokens:      deps.Tokens,
	}
}

// Router 註冊所有路由並回傳 gin 引擎。
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), s.ginLogger(), corsMiddleware())

	api := r.Group("/api")
	api.GET("/health", s.handleHealth)
	api.POST("/auth/login", s.handleLogin)

	authed := api.Group("", s.requireAuth())
	authed.POST("/auth/logout", s.handleLogout)

	authed.GET("/projects", s.handleListProjects)
	authed.POST("/projects", s.handleCreateProject)
	authed.GET("/projects/:id", s.handleGetProject)
	authed.PUT("/projects/:id", s.handleUpdateProject)
	authed.DELETE("/projects/:id", s.handleDeleteProject)

	authed.GET("/competitors", s.handleListCompetitors)
	authed.POST("/competitors", s.handleCreateCompetitor)
	authed.GET("/competitors/:id", s.handleGetCompetitor)
	authed.PUT("/competitors/:id", s.handleUpdateCompetitor)
	authed.DELETE("/competitors/:id", s.handleDeleteCompetitor)

	authed.GET("/analytics", s.handleListMetrics)
	authed.GET("/dashboard", s.handleDashboard)
	authed.POST("/data/process", s.handleProcess)

	authed.POST("/export", s.handleExport)
	authed.GET("/download/:filename", s.handleDownload)

	return r
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "status": "healthy"})
}

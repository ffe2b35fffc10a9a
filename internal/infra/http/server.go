package http

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"secops/internal/config"
	"secops/internal/domain"
	"secops/internal/infra/auth/oidc"
	"secops/internal/infra/auth/rbac"
	"secops/internal/usecase"
)

// adminRoles guard the mutating project routes and all deletes.
var adminRoles = []string{"admin", "realm-admin"}

type Server struct {
	cfg    config.Config
	log    zerolog.Logger
	engine *gin.Engine

	authenticator domain.Authenticator
	authorizer    domain.Authorizer
	// authInitErr is set when OIDC configuration is absent or broken; guarded
	// routes then answer 500 instead of the process refusing to start.
	authInitErr error

	metrics *metrics

	projects        *usecase.ProjectService
	tasks           *usecase.TaskService
	vulnerabilities *usecase.VulnerabilityService

	limiter domain.RateLimiter
}

// ServerDeps carries the wired dependencies. Authenticator may be nil together
// with a non-nil AuthInitErr when auth could not be configured.
type ServerDeps struct {
	Authenticator   domain.Authenticator
	Authorizer      domain.Authorizer
	AuthInitErr     error
	Projects        *usecase.ProjectService
	Tasks           *usecase.TaskService
	Vulnerabilities *usecase.VulnerabilityService
	Limiter         domain.RateLimiter
}

// NewServer wires the default production dependencies from cfg.
func NewServer(cfg config.Config, log zerolog.Logger, projects *usecase.ProjectService, tasks *usecase.TaskService, vulns *usecase.VulnerabilityService, limiter domain.RateLimiter) *Server {
	deps := ServerDeps{
		Authorizer:      rbac.New(),
		Projects:        projects,
		Tasks:           tasks,
		Vulnerabilities: vulns,
		Limiter:         limiter,
	}
	auth, err := oidc.NewAuthenticator(cfg)
	if err != nil {
		deps.AuthInitErr = err
	} else {
		deps.Authenticator = auth
	}
	return NewServerWithDeps(cfg, log, deps)
}

func NewServerWithDeps(cfg config.Config, log zerolog.Logger, deps ServerDeps) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		cfg:             cfg,
		log:             log,
		engine:          gin.New(),
		authenticator:   deps.Authenticator,
		authorizer:      deps.Authorizer,
		authInitErr:     deps.AuthInitErr,
		metrics:         newMetrics(),
		projects:        deps.Projects,
		tasks:           deps.Tasks,
		vulnerabilities: deps.Vulnerabilities,
		limiter:         deps.Limiter,
	}
	if s.authenticator == nil && s.authInitErr == nil {
		s.authInitErr = errAuthNotConfigured
	}
	s.routes()
	return s
}

var errAuthNotConfigured = errors.New("oidc authenticator not configured")

func (s *Server) routes() {
	s.engine.Use(gin.Recovery())
	s.engine.Use(CorrelationID())
	s.engine.Use(RequestLogger(s.log))
	s.engine.Use(s.metrics.middleware())
	s.engine.Use(CORS(s.cfg))

	s.engine.GET("/", s.handleRoot)
	s.engine.GET("/health", s.handleHealth)
	s.engine.GET("/metrics", s.metrics.handler())

	api := s.engine.Group("/api")
	if s.limiter != nil && s.cfg.RateLimitRequests > 0 {
		api.Use(RateLimit(s.limiter, s.cfg.RateLimitRequests, s.cfg.RateLimitWindow()))
	}

	api.GET("/health", s.handleHealth)
	api.GET("/info", s.handleInfo)

	api.GET("/protected", s.requireAuth(), s.handleProtected)
	api.GET("/protected/admin", s.requireAuth(adminRoles...), s.handleProtectedAdmin)

	projects := api.Group("/projects")
	{
		projects.GET("", s.requireAuth(), s.handleListProjects)
		projects.POST("", s.requireAuth(adminRoles...), s.handleCreateProject)
		projects.GET("/:id", s.requireAuth(), s.handleGetProject)
		projects.PATCH("/:id", s.requireAuth(adminRoles...), s.handleUpdateProject)
		projects.DELETE("/:id", s.requireAuth(adminRoles...), s.handleDeleteProject)
	}

	tasks := api.Group("/tasks")
	{
		tasks.GET("", s.requireAuth(), s.handleListTasks)
		tasks.POST("", s.requireAuth(), s.handleCreateTask)
		tasks.GET("/:id", s.requireAuth(), s.handleGetTask)
		tasks.PATCH("/:id", s.requireAuth(), s.handleUpdateTask)
		tasks.DELETE("/:id", s.requireAuth(adminRoles...), s.handleDeleteTask)
	}

	vulns := api.Group("/vulnerabilities")
	{
		vulns.GET("", s.requireAuth(), s.handleListVulnerabilities)
		vulns.POST("", s.requireAuth(), s.handleCreateVulnerability)
		vulns.GET("/:id", s.requireAuth(), s.handleGetVulnerability)
		vulns.PATCH("/:id", s.requireAuth(), s.handleUpdateVulnerability)
		vulns.DELETE("/:id", s.requireAuth(adminRoles...), s.handleDeleteVulnerability)
	}
}

// Handler exposes the router for tests and custom servers.
func (s *Server) Handler() *gin.Engine { return s.engine }

func (s *Server) Run() error {
	s.log.Info().Str("addr", s.cfg.HTTPAddr).Msg("http server listening")
	return s.engine.Run(s.cfg.HTTPAddr)
}

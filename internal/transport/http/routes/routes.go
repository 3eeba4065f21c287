package routes

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/covenantlab/contract-platform/internal/core/domain"
	"github.com/covenantlab/contract-platform/internal/infra/config"
	"github.com/covenantlab/contract-platform/internal/infra/security"
	"github.com/covenantlab/contract-platform/internal/repository/postgres"
	"github.com/covenantlab/contract-platform/internal/transport/http/handlers"
	"github.com/covenantlab/contract-platform/internal/transport/http/middleware"
	"github.com/covenantlab/contract-platform/internal/usecase"
)

// Route declares one HTTP endpoint. Role is an explicit handler requirement,
// checked by strict equality, not metadata: a nil Role means the route is
// authenticated but not role-guarded.
type Route struct {
	Method  string
	Path    string
	Role    *domain.Role
	Handler gin.HandlerFunc
}

// DatabaseChecker exposes readiness behaviour for database connections.
type DatabaseChecker interface {
	Ping(ctx context.Context) error
}

// CacheChecker exposes readiness behaviour for cache backends.
type CacheChecker interface {
	HealthCheck(ctx context.Context) error
}

// Dependencies encapsulates the objects required to register routes.
type Dependencies struct {
	Config       *config.AppConfig
	Logger       *zap.Logger
	TokenCodec   *security.TokenCodec
	RateLimiter  *middleware.RateLimiter
	Metrics      *middleware.HTTPMetrics
	Repositories *postgres.Repositories
	Accounts     *usecase.AccountService
	Database     DatabaseChecker
	Cache        CacheChecker
}

func roleOf(role domain.Role) *domain.Role {
	return &role
}

// resourceRoutes builds the five uniform CRUD routes for one collection.
// Listing requires the VIEWER role; the remaining operations only require a
// valid token.
func resourceRoutes[T any](name string, resource *handlers.Resource[T]) []Route {
	base := "/" + name
	return []Route{
		{Method: "GET", Path: base, Role: roleOf(domain.RoleViewer), Handler: resource.List},
		{Method: "GET", Path: base + "/:id", Handler: resource.Get},
		{Method: "POST", Path: base, Handler: resource.Create},
		{Method: "PUT", Path: base + "/:id", Handler: resource.Update},
		{Method: "DELETE", Path: base + "/:id", Handler: resource.Delete},
	}
}

// Register configures the Gin engine with routes and middleware.
func Register(deps Dependencies) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.EnrichContext())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.CORS(deps.Config.App.AllowedOrigins))

	if deps.Metrics != nil {
		r.Use(deps.Metrics.Handler())
	}

	checks := map[string]handlers.ReadinessCheck{}
	if deps.Database != nil {
		checks["database"] = deps.Database.Ping
	}
	if deps.Cache != nil {
		checks["redis"] = deps.Cache.HealthCheck
	}
	healthHandler := handlers.NewHealthHandler(checks)

	r.GET("/healthz", healthHandler.Status)
	r.GET("/readyz", healthHandler.Ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authenticate := middleware.Authenticate(deps.TokenCodec)
	api := r.Group("/api")

	registerAccountRoutes(api, deps)

	for _, route := range buildResourceTable(deps.Repositories) {
		chain := []gin.HandlerFunc{authenticate}
		if route.Role != nil {
			chain = append(chain, middleware.RequireRole(*route.Role))
		}
		chain = append(chain, route.Handler)
		api.Handle(route.Method, route.Path, chain...)
	}

	return r
}

// registerAccountRoutes mounts the public signup and login endpoints with
// their rate limits, plus the guarded user CRUD surface.
func registerAccountRoutes(api *gin.RouterGroup, deps Dependencies) {
	accountHandler := handlers.NewAccountHandler(deps.Accounts)

	signupChain := []gin.HandlerFunc{}
	loginChain := []gin.HandlerFunc{}
	if deps.RateLimiter != nil {
		cfg := deps.Config.RateLimit
		signupChain = append(signupChain, deps.RateLimiter.Limit(middleware.RateLimitRule{
			Name:       "signup",
			Limit:      cfg.SignupMaxAttempts,
			Window:     cfg.WindowDuration,
			Identifier: middleware.ClientIPIdentifier(),
		}))
		loginChain = append(loginChain, deps.RateLimiter.Limit(middleware.RateLimitRule{
			Name:       "login",
			Limit:      cfg.LoginMaxAttempts,
			Window:     cfg.WindowDuration,
			Identifier: middleware.ClientIPIdentifier(),
		}))
	}

	api.POST("/users", append(signupChain, accountHandler.SignUp)...)
	api.POST("/users/login", append(loginChain, accountHandler.Login)...)
}

// buildResourceTable declares every CRUD collection. users gets sanitized
// responses and no generic POST (signup owns creation); the rest are plain.
func buildResourceTable(repos *postgres.Repositories) []Route {
	var table []Route

	users := handlers.NewResource[domain.User](repos.Users,
		handlers.WithSanitizedResponses[domain.User]())
	userBase := "/users"
	table = append(table,
		Route{Method: "GET", Path: userBase, Role: roleOf(domain.RoleViewer), Handler: users.List},
		Route{Method: "GET", Path: userBase + "/:id", Handler: users.Get},
		Route{Method: "PUT", Path: userBase + "/:id", Handler: users.Update},
		Route{Method: "DELETE", Path: userBase + "/:id", Handler: users.Delete},
	)

	table = append(table, resourceRoutes("organizations", handlers.NewResource[domain.Organization](
		repos.Organizations, handlers.WithPrepareCreate(prepareOrganization)))...)
	table = append(table, resourceRoutes("wallets", handlers.NewResource[domain.Wallet](
		repos.Wallets, handlers.WithPrepareCreate(prepareWallet)))...)
	table = append(table, resourceRoutes("contracts", handlers.NewResource[domain.Contract](
		repos.Contracts, handlers.WithPrepareCreate(prepareContract)))...)
	table = append(table, resourceRoutes("signatures", handlers.NewResource[domain.Signature](
		repos.Signatures, handlers.WithPrepareCreate(prepareSignature)))...)
	table = append(table, resourceRoutes("attachments", handlers.NewResource[domain.Attachment](
		repos.Attachments, handlers.WithPrepareCreate(prepareAttachment)))...)
	table = append(table, resourceRoutes("audit-logs", handlers.NewResource[domain.AuditLog](
		repos.AuditLogs, handlers.WithPrepareCreate(prepareAuditLog)))...)
	table = append(table, resourceRoutes("blockchain-transactions", handlers.NewResource[domain.BlockchainTransaction](
		repos.BlockchainTransactions, handlers.WithPrepareCreate(prepareBlockchainTransaction)))...)
	table = append(table, resourceRoutes("contract-templates", handlers.NewResource[domain.ContractTemplate](
		repos.ContractTemplates, handlers.WithPrepareCreate(prepareContractTemplate)))...)
	table = append(table, resourceRoutes("templates", handlers.NewResource[domain.TemplateVersion](
		repos.TemplateVersions, handlers.WithPrepareCreate(prepareTemplateVersion)))...)
	table = append(table, resourceRoutes("system-configs", handlers.NewResource[domain.SystemConfig](
		repos.SystemConfigs, handlers.WithPrepareCreate(prepareSystemConfig)))...)
	table = append(table, resourceRoutes("posts", handlers.NewResource[domain.Post](
		repos.Posts, handlers.WithPrepareCreate(preparePost)))...)
	table = append(table, resourceRoutes("categories", handlers.NewResource[domain.Category](
		repos.Categories, handlers.WithPrepareCreate(prepareCategory)))...)

	return table
}

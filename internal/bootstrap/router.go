package bootstrap

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/advocate-diary/advocate-backend/internal/api/http"
	"github.com/advocate-diary/advocate-backend/internal/auth"
	"github.com/advocate-diary/advocate-backend/internal/cases"
	"github.com/advocate-diary/advocate-backend/internal/clients"
	"github.com/advocate-diary/advocate-backend/internal/dashboard"
	"github.com/advocate-diary/advocate-backend/internal/db"
	"github.com/advocate-diary/advocate-backend/internal/documents"
	"github.com/advocate-diary/advocate-backend/internal/efiling"
	"github.com/advocate-diary/advocate-backend/internal/hearings"
	"github.com/advocate-diary/advocate-backend/internal/middleware"
	"github.com/advocate-diary/advocate-backend/internal/notifications"
	"github.com/advocate-diary/advocate-backend/internal/tasks"
	"github.com/advocate-diary/advocate-backend/internal/users"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins string

	DB    db.Querier
	Pool  *pgxpool.Pool // nil when the datastore is disabled
	Redis *redis.Client // nil when Redis is not configured

	// Verifier is nil in development; requests then authenticate via the
	// X-User-Id header instead of Firebase tokens.
	Verifier auth.TokenVerifier

	Log *slog.Logger
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(dep.Log))
	r.Use(corsMiddleware(dep.AllowedOrigins))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Pool, dep.Redis)
	healthHandler.RegisterRoutes(r)

	userRepo := users.NewRepo(dep.DB)
	caseRepo := cases.NewRepo(dep.DB)
	clientRepo := clients.NewRepo(dep.DB)
	hearingRepo := hearings.NewRepo(dep.DB)
	documentRepo := documents.NewRepo(dep.DB)
	taskRepo := tasks.NewRepo(dep.DB)
	notificationRepo := notifications.NewRepo(dep.DB)

	api := r.Group("/api")
	api.Use(middleware.RateLimit(50, 100))

	if dep.Verifier != nil {
		api.Use(auth.RequireAuth(dep.Verifier))
	} else {
		dep.Log.Warn("firebase verification disabled, using X-User-Id header identity")
		api.Use(auth.DevIdentity())
	}
	api.Use(auth.WithUser(userRepo))

	users.Register(api.Group("/users"), userRepo)
	cases.Register(api.Group("/cases"), caseRepo)
	clients.Register(api.Group("/clients"), clientRepo)
	hearings.Register(api.Group("/hearings"), hearingRepo)
	documents.Register(api.Group("/documents"), documentRepo)
	tasks.Register(api.Group("/tasks"), taskRepo)
	notifications.Register(api.Group("/notifications"), notificationRepo)

	dashboardSvc := dashboard.NewService(dashboard.NewRepo(dep.DB), dep.Log)
	dashboard.Register(api.Group("/dashboard"), dashboardSvc)

	// The e-filing wizard keeps drafts in Redis; without Redis the feature
	// is simply absent.
	if dep.Redis != nil {
		efilingSvc := efiling.NewService(efiling.NewRepo(dep.Redis), notificationRepo, dep.Log)
		efiling.Register(api.Group("/efiling"), efilingSvc)
	}

	return r
}

func corsMiddleware(allowedOrigins string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-User-Id", "X-Request-Id"},
		ExposeHeaders:    []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if allowedOrigins == "" || allowedOrigins == "*" {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	} else {
		for _, origin := range strings.Split(allowedOrigins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowOrigins = append(cfg.AllowOrigins, origin)
			}
		}
	}

	return cors.New(cfg)
}

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/kinshiphq/kinship/internal/middleware"
	"github.com/kinshiphq/kinship/internal/ws"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Log           *logrus.Logger
	Backend       Pinger
	Hub           *ws.Hub
	Contacts      ContactService
	Relationships RelationshipService
	Journal       JournalService
	Graph         GraphService
	Analytics     AnalyticsService
	ExportImport  ExportImportService
	APIKey        string
	CORSOrigins   []string
	Version       string
	Storage       string

	// Zero values fall back to the router defaults below.
	RateLimitRPS   int
	RateLimitBurst int
	MaxBodyBytes   int64
}

// Router-level defaults.
const (
	defaultMaxBodySize = 10 << 20 // 10 MB
	defaultRateLimit   = 20       // requests per second per IP
	defaultRateBurst   = 40       // token bucket burst size
)

func (d *RouterDeps) limits() (rps, burst int, body int64) {
	rps, burst, body = d.RateLimitRPS, d.RateLimitBurst, d.MaxBodyBytes
	if rps <= 0 {
		rps = defaultRateLimit
	}
	if burst <= 0 {
		burst = defaultRateBurst
	}
	if body <= 0 {
		body = defaultMaxBodySize
	}
	return rps, burst, body
}

// setupMiddleware configures all middleware on the Gin engine.
func setupMiddleware(ctx context.Context, r *gin.Engine, deps *RouterDeps) {
	rps, burst, body := deps.limits()

	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	r.Use(middleware.RequestID(deps.Log))
	r.Use(ginLogger(deps.Log))
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.MaxBodySize(body))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		ExposeHeaders:    []string{middleware.RequestIDHeader, "Content-Disposition"},
		MaxAge:           1 * time.Hour,
		AllowCredentials: false,
	}))
	r.Use(middleware.NewRateLimiter(ctx, rps, burst).Handler())
	r.Use(middleware.PrometheusMiddleware())

	// Metrics endpoint (unauthenticated, like health).
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// registerRoutes sets up all API route handlers on the given router group.
func registerRoutes(ctx context.Context, api *gin.RouterGroup, deps *RouterDeps) {
	log := deps.Log

	var counter ClientCounter
	if deps.Hub != nil {
		counter = deps.Hub
	}

	health := NewHealthHandler(deps.Backend, counter, log, deps.Version, deps.Storage)
	contacts := NewContactHandler(deps.Contacts, deps.Relationships, log)
	rels := NewRelationshipHandler(deps.Relationships, log)
	journal := NewJournalHandler(deps.Journal, log)
	graph := NewGraphHandler(deps.Graph, log)
	analytics := NewAnalyticsHandler(deps.Analytics, log)
	portability := NewExportImportHandler(deps.ExportImport, log)

	// Health and readiness are unauthenticated.
	api.GET("/health", health.Liveness)
	api.GET("/ready", health.Readiness)

	// All other API routes require the API key when one is configured.
	guard := middleware.NewBruteForceGuard(ctx, log)
	api.Use(middleware.BruteForceMiddleware(guard))
	api.Use(middleware.APIKeyAuth(deps.APIKey, log, guard))

	// Contacts.
	api.GET("/contacts", contacts.List)
	api.POST("/contacts", contacts.Create)
	api.GET("/contacts/:id", contacts.Get)
	api.PATCH("/contacts/:id", contacts.Update)
	api.DELETE("/contacts/:id", contacts.Delete)
	api.POST("/contacts/:id/interactions", contacts.AddInteraction)
	api.GET("/contacts/:id/relationships", contacts.Relationships)

	// Relationships.
	api.GET("/relationships", rels.List)
	api.POST("/relationships", rels.Upsert)
	api.GET("/relationships/between/:a/:b", rels.Between)
	api.PATCH("/relationships/:id", rels.Update)
	api.DELETE("/relationships/:id", rels.Delete)

	// Journal.
	api.GET("/journal", journal.List)
	api.POST("/journal", journal.Create)

	// Read models.
	api.GET("/graph", graph.Graph)
	api.GET("/graph/neighbors/:id", graph.Neighbors)
	api.GET("/analytics", analytics.Analytics)
	api.GET("/dashboard", analytics.Dashboard)

	// Portability.
	api.GET("/export", portability.Export)
	api.POST("/import", portability.Import)
	api.POST("/import/validate", portability.Validate)

	// Live feed.
	if deps.Hub != nil {
		api.GET("/ws", wsHandler(ctx, log, deps.Hub, deps.CORSOrigins))
	}
}

// NewRouter creates and configures the Gin engine with all middleware and routes.
func NewRouter(ctx context.Context, deps *RouterDeps) http.Handler {
	r := gin.New()
	setupMiddleware(ctx, r, deps)
	registerRoutes(ctx, r.Group("/api/v1"), deps)

	return r
}

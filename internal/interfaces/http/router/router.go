package router

import (
	"time"

	"github.com/erp/docimport/internal/infrastructure/logger"
	"github.com/erp/docimport/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// RootRegistrar registers routes outside the versioned API group
type RootRegistrar interface {
	RegisterRoutes(r gin.IRoutes)
}

// Router manages HTTP route registration
type Router struct {
	engine     *gin.Engine
	apiVersion string
	apiUse     []gin.HandlerFunc
	registrars []RouteRegistrar
	root       []RootRegistrar
	swagger    *middleware.SwaggerConfig
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// WithAPIMiddleware adds middleware that only applies to the versioned API
func WithAPIMiddleware(mw ...gin.HandlerFunc) RouterOption {
	return func(r *Router) {
		r.apiUse = append(r.apiUse, mw...)
	}
}

// WithSwagger serves the API documentation at /swagger/*any behind
// SwaggerProtection. The document itself is registered by importing the
// docs package.
func WithSwagger(cfg middleware.SwaggerConfig) RouterOption {
	return func(r *Router) {
		r.swagger = &cfg
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a RouteRegistrar mounted under /api/{version}
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// RegisterRoot adds a registrar mounted on the engine root
func (r *Router) RegisterRoot(registrar RootRegistrar) *Router {
	r.root = append(r.root, registrar)
	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	for _, registrar := range r.root {
		registrar.RegisterRoutes(r.engine)
	}
	if r.swagger != nil {
		r.engine.GET("/swagger/*any",
			middleware.SwaggerProtection(*r.swagger),
			ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.engine.Group("/api/" + r.apiVersion)
	if len(r.apiUse) > 0 {
		api.Use(r.apiUse...)
	}
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
	r.engine.NoRoute(middleware.NoRoute)
}

// EngineConfig holds the settings of the HTTP engine
type EngineConfig struct {
	ServiceName    string
	TracingEnabled bool
	Meter          metric.Meter
	RequestTimeout time.Duration
	TrustedProxies []string
}

// NewEngine creates a gin engine with the standard middleware chain:
// request ID, panic recovery, tracing, request logging, metrics and
// security headers.
func NewEngine(cfg EngineConfig, log *zap.Logger) (*gin.Engine, error) {
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, err
	}

	tracing := middleware.DefaultTracingConfig()
	tracing.Enabled = cfg.TracingEnabled
	if cfg.ServiceName != "" {
		tracing.ServiceName = cfg.ServiceName
	}

	engine.Use(
		middleware.RequestID(),
		logger.Recovery(log),
		middleware.TracingWithConfig(tracing),
		middleware.SpanAttributes(),
		logger.GinMiddleware(log),
		middleware.HTTPMetrics(cfg.Meter),
		middleware.Secure(),
		middleware.Timeout(cfg.RequestTimeout),
	)
	return engine, nil
}

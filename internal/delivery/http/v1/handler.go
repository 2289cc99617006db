package v1

import (
	"context"
	"time"

	tasksv1 "github.com/dmehra2102/TaskList/api/v1"
	"github.com/dmehra2102/TaskList/internal/domain"
	"github.com/dmehra2102/TaskList/internal/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Lister runs a validated listing query.
type Lister interface {
	List(ctx context.Context, q *domain.ListQuery) (*domain.ListResult, error)
}

// Pinger reports store reachability for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	logger *zap.Logger
	tasks  Lister
	store  Pinger
}

// New builds the handler. store may be nil, in which case /healthz always reports ok.
func New(logger *zap.Logger, tasks Lister, store Pinger) *Handler {
	return &Handler{
		logger: logger,
		tasks:  tasks,
		store:  store,
	}
}

type RouterConfig struct {
	ServiceName    string
	RequestTimeout time.Duration
	EnableTracing  bool
	EnableMetrics  bool
}

// NewRouter wires middleware and routes onto a fresh gin engine.
func NewRouter(logger *zap.Logger, h *Handler, cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestID())
	if cfg.EnableTracing {
		router.Use(middleware.Tracing(cfg.ServiceName))
	}
	if cfg.EnableMetrics {
		router.Use(middleware.Metrics())
	}
	router.Use(middleware.Logging(logger))
	router.Use(middleware.Timeout(cfg.RequestTimeout))

	router.GET("/healthz", h.HandleHealthz)
	router.GET(tasksv1.ListPath, h.HandleListTasks)

	router.NoRoute(func(c *gin.Context) {
		abort(c, newNotFoundError("route not found"))
	})

	return router
}

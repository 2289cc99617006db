package v1

import (
	"net/http"

	tasksv1 "github.com/dmehra2102/TaskList/api/v1"
	"github.com/dmehra2102/TaskList/internal/app"
	"github.com/dmehra2102/TaskList/internal/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HandleListTasks serves GET /api/tasks?limit=&page=&skip=&status=&search=
func (h *Handler) HandleListTasks(c *gin.Context) {
	requestID := middleware.RequestIDFrom(c)

	query, err := app.ValidateListParams(app.ParamsFromValues(c.Request.URL.Query()))
	if err != nil {
		h.logger.Debug("rejected list query",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		abort(c, mapError(err))
		return
	}

	result, err := h.tasks.List(c.Request.Context(), query)
	if err != nil {
		_ = c.Error(err)
		abort(c, mapError(err))
		return
	}

	h.logger.Debug("listed tasks",
		zap.String("request_id", requestID),
		zap.Int("returned", len(result.Items)),
		zap.Int64("total_items", result.Pagination.TotalItems),
	)

	c.JSON(http.StatusOK, tasksv1.NewListTasksResponse(result))
}

func (h *Handler) HandleHealthz(c *gin.Context) {
	if h.store != nil {
		if err := h.store.Ping(c.Request.Context()); err != nil {
			h.logger.Warn("health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

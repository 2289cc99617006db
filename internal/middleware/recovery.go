package middleware

import (
	"net/http"
	"runtime/debug"

	tasksv1 "github.com/dmehra2102/TaskList/api/v1"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered",
					zap.String("path", c.Request.URL.Path),
					zap.Any("panic", r),
					zap.String("stack", string(debug.Stack())),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, tasksv1.ErrorResponse{
					Error: "internal server error",
				})
			}
		}()

		c.Next()
	}
}

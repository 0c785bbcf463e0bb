package routes

import (
	"task-list/internal/controller"
	"task-list/internal/metrics"
	"task-list/internal/middleware"

	"github.com/gin-gonic/gin"
)

func Router(h *controller.Handler, m *metrics.Metrics) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(m))

	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
	if m != nil {
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	router.GET("/tasks", h.ListTasks)
	router.GET("/tasks/view", h.ViewTasks)
	router.POST("/tasks", h.CreateTask)
	router.PUT("/tasks/:id", h.UpdateTask)
	router.DELETE("/tasks/:id", h.DeleteTask)

	router.GET("/query", h.GetQuery)
	router.PUT("/query", h.SetQuery)

	return router
}

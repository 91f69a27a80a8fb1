package v1

import (
	"github.com/MGTheTrain/crypto-session-service/internal/domain/sessions"

	"github.com/gin-gonic/gin"
)

// SetupRoutes sets up all the API routes for version 1.
func SetupRoutes(r *gin.Engine,
	sessionService sessions.SessionService,
	pipelineService sessions.PipelineService) {

	v1 := r.Group(BasePath) // lookup in version file

	// Session Routes
	sessionHandler := NewSessionHandler(sessionService, pipelineService)
	v1.POST("/sessions", sessionHandler.Create)
	v1.GET("/sessions/:id", sessionHandler.GetByID)
	v1.DELETE("/sessions/:id", sessionHandler.DeleteByID)
	v1.DELETE("/sessions", sessionHandler.DeleteAll)
	v1.POST("/sessions/:id/operations", sessionHandler.RunOperation)
}

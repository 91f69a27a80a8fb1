//go:build unit
// +build unit

package v1

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// TestSetupRoutes_RoutesRegistered verifies that routes are properly registered
func TestSetupRoutes_RoutesRegistered(t *testing.T) {
	mockSessionService := new(MockSessionService)
	mockPipelineService := new(MockPipelineService)

	r := gin.Default()

	// Setup mocks to return nil
	mockSessionService.On("Create", mock.Anything, mock.Anything, mock.Anything).Return("", nil)
	mockSessionService.On("Info", mock.Anything, mock.Anything).Return(aesSessionInfo(), nil)
	mockSessionService.On("Destroy", mock.Anything, mock.Anything).Return(nil)
	mockSessionService.On("DestroyAll", mock.Anything).Return(nil)
	mockPipelineService.On("Run", mock.Anything, mock.Anything).Return(nil)

	SetupRoutes(r, mockSessionService, mockPipelineService)

	// Verify routes are registered by testing they respond (even with errors)
	tests := []struct {
		method string
		url    string
	}{
		{"POST", "/api/v1/css/sessions"},
		{"GET", "/api/v1/css/sessions/abc-123"},
		{"DELETE", "/api/v1/css/sessions/abc-123"},
		{"DELETE", "/api/v1/css/sessions"},
		{"POST", "/api/v1/css/sessions/abc-123/operations"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req, _ := http.NewRequest(tt.method, tt.url, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			// Just verify route exists (status != 404)
			assert.NotEqual(t, http.StatusNotFound, w.Code, "Route should be registered")
		})
	}
}

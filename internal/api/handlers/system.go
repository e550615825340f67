package handlers

import (
	"net/http"

	"github.com/ndewijer/Portfolio-Share-Backend/internal/api/response"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/service"
)

// SystemHandler handles system-related HTTP requests
type SystemHandler struct {
	systemService *service.SystemService
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(systemService *service.SystemService) *SystemHandler {
	return &SystemHandler{
		systemService: systemService,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status        string `json:"status"`
	Database      string `json:"database"`
	SchemaVersion int64  `json:"schemaVersion,omitempty"`
	Error         string `json:"error,omitempty"`
}

// Health checks the database and the preference store.
//
// Endpoint: GET /system/health
// Response: 200 OK with HealthResponse
// Error: 503 Service Unavailable if either store is unreachable
func (h *SystemHandler) Health(w http.ResponseWriter, _ *http.Request) {
	if err := h.systemService.CheckHealth(); err != nil {
		response.RespondJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:   "unhealthy",
			Database: "disconnected",
			Error:    err.Error(),
		})
		return
	}

	resp := HealthResponse{
		Status:   "healthy",
		Database: "connected",
	}
	// The version is informational; a failure to read it does not make the service unhealthy.
	if version, err := h.systemService.SchemaVersion(); err == nil {
		resp.SchemaVersion = version
	}

	response.RespondJSON(w, http.StatusOK, resp)
}

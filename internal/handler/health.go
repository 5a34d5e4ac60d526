package handler

import (
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/qaops/testcase-gateway/internal/models"
)

const version = "1.0.0"

// Health godoc
// @Summary Health check
// @Description Static liveness payload, no side effects.
// @Tags health
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Router /health [get]
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	sonic.ConfigDefault.NewEncoder(w).Encode(models.HealthResponse{
		Status:  "healthy",
		Version: version,
	})
}

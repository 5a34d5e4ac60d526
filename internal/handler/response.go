package handler

import (
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/qaops/testcase-gateway/internal/models"
)

// writeError sends the API's uniform JSON error body.
func writeError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	sonic.ConfigDefault.NewEncoder(w).Encode(models.ErrorResponse{Detail: detail})
}

package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/qaops/testcase-gateway/internal/service"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	xlsxDisposition = `attachment; filename=test_cases.xlsx`
)

type excelService interface {
	Generate(ctx context.Context, content string) ([]byte, error)
}

type ExcelHandler struct {
	service excelService
}

func NewExcelHandler(service excelService) *ExcelHandler {
	return &ExcelHandler{
		service: service,
	}
}

// GenerateExcel godoc
// @Summary Convert generated test cases into a spreadsheet
// @Description Forwards the text to the Excel generator and relays the binary file. Upstream failures pass their status code through with a generic detail.
// @Tags excel
// @Accept x-www-form-urlencoded
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param content formData string true "Test-case text to convert"
// @Success 200 {file} binary
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /generate-excel-proxy [post]
func (h *ExcelHandler) GenerateExcel(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	content := r.FormValue("content")
	if content == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}

	data, err := h.service.Generate(r.Context(), content)
	if err != nil {
		var upstream *service.UpstreamStatusError
		if errors.As(err, &upstream) {
			writeError(w, upstream.StatusCode, "excel generation service failed")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to reach excel generation service")
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", xlsxDisposition)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

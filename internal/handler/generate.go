package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/qaops/testcase-gateway/internal/ingest"
	"github.com/qaops/testcase-gateway/internal/models"
)

type testCaseService interface {
	GenerateStream(ctx context.Context, req *models.GenerateRequest) (<-chan models.StreamChunk, error)
}

type GenerateHandler struct {
	service        testCaseService
	maxUploadBytes int64
}

func NewGenerateHandler(service testCaseService, maxUploadBytes int64) *GenerateHandler {
	return &GenerateHandler{
		service:        service,
		maxUploadBytes: maxUploadBytes,
	}
}

// Generate godoc
// @Summary Generate test cases from images
// @Description Streams generated test cases as SSE. Each frame is raw text; the stream always ends with a literal [DONE] frame. Mid-stream failures are reported in-band, not through the HTTP status.
// @Tags generate
// @Accept multipart/form-data
// @Produce text/event-stream
// @Param images formData file true "One or more screenshots (PDF uploads are rendered page by page)"
// @Param language_mode formData string true "gherkin or traditional"
// @Param additional_info formData string false "Free-text requirements appended to the prompt"
// @Success 200 {string} string "data: <text> frames terminated by data: [DONE]"
// @Failure 400 {object} models.ErrorResponse
// @Router /api/generate-test-cases [post]
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid multipart form: %s", err))
		return
	}

	mode, err := models.ParseMode(r.FormValue("language_mode"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	headers := r.MultipartForm.File["images"]
	if len(headers) == 0 {
		writeError(w, http.StatusBadRequest, "at least one image is required")
		return
	}

	images, err := ingest.Files(headers)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	req := &models.GenerateRequest{
		Mode:           mode,
		AdditionalInfo: r.FormValue("additional_info"),
		Images:         images,
	}

	stream, err := h.service.GenerateStream(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	flusher := http.NewResponseController(w)

	// The status line is committed; from here every outcome, including
	// failure, is reported in-band and closed by the terminal frame.
	for chunk := range stream {
		if chunk.Err != nil {
			fmt.Fprintf(w, "data: Error: %v\n\n", chunk.Err)
			flusher.Flush()
			break
		}

		if chunk.Delta != "" {
			fmt.Fprintf(w, "data: %s\n\n", chunk.Delta)
			flusher.Flush()
		}

		if chunk.Done {
			break
		}
	}

	fmt.Fprint(w, "data: [DONE]\n\n")
	flusher.Flush()
}

package models

// HealthResponse is the static payload of GET /health.
type HealthResponse struct {
	Status  string `json:"status" example:"healthy"`
	Version string `json:"version" example:"1.0.0"`
}

// ErrorResponse is the JSON body of every non-streaming error.
type ErrorResponse struct {
	Detail string `json:"detail" example:"at least one image is required"`
}

// ExcelUpstreamRequest is the JSON body forwarded to the Excel generator.
type ExcelUpstreamRequest struct {
	Result string `json:"result"`
}

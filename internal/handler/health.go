package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"upright/internal/pipeline"
)

// HealthResponse reports liveness and the settings clients need to build
// requests.
type HealthResponse struct {
	Status         string    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
	OutputFormat   string    `json:"output_format"`
	MaxUploadBytes int64     `json:"max_upload_bytes"`
	MaxDimension   int       `json:"max_dimension"`
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(HealthResponse{
		Status:         "healthy",
		Timestamp:      time.Now().UTC(),
		OutputFormat:   h.config.OutputFormat,
		MaxUploadBytes: h.maxBytes(),
		MaxDimension:   pipeline.MaxDimension,
	})
}

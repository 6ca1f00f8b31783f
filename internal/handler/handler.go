package handler

import (
	"bytes"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"upright/internal/config"
	"upright/internal/middleware"
	"upright/internal/pipeline"
	"upright/internal/resize"
)

type Handler struct {
	config  *config.Config
	limiter *middleware.RateLimiter
}

// New builds a Handler from cfg. An invalid TrustedProxies value is logged
// and forwarded headers are then ignored.
func New(cfg *config.Config) *Handler {
	if cfg == nil {
		cfg = config.Load()
	}
	trusted, err := middleware.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		log.Printf("handler: %v; forwarded headers will be ignored", err)
		trusted = nil
	}
	return &Handler{
		config: cfg,
		limiter: middleware.NewRateLimiter(middleware.RateLimitConfig{
			RequestsPerMinute: cfg.RateLimitResize,
			TrustedProxies:    trusted,
		}),
	}
}

// Close releases background resources.
func (h *Handler) Close() {
	h.limiter.Close()
}

func (h *Handler) encodeOptions() pipeline.EncodeOptions {
	return pipeline.EncodeOptions{
		WebPQuality: h.config.WebPQuality,
		AVIFQuality: h.config.AVIFQuality,
		AVIFSpeed:   h.config.AVIFSpeed,
	}
}

func (h *Handler) maxBytes() int64 {
	if h.config.MaxUploadBytes <= 0 {
		return pipeline.DefaultMaxBytes
	}
	return h.config.MaxUploadBytes
}

// readBody buffers at most MaxUploadBytes+1 bytes of the request body so
// the pipeline can detect oversized uploads and seek for Exif data.
func (h *Handler) readBody(r *http.Request) (*bytes.Reader, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, h.maxBytes()+1))
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}

// statusFor maps pipeline and resize failures to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, pipeline.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, pipeline.ErrNotAnImage), errors.Is(err, pipeline.ErrInvalidDimensions):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, pipeline.ErrUnknownFormat), errors.Is(err, pipeline.ErrInvalidAngle),
		errors.Is(err, pipeline.ErrOutputTooLarge),
		errors.Is(err, resize.ErrUnsupportedContentMode):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeImage(w http.ResponseWriter, res *pipeline.Result) {
	w.Header().Set("Content-Type", res.ContentType())
	w.Header().Set("X-Image-Width", strconv.Itoa(res.Width))
	w.Header().Set("X-Image-Height", strconv.Itoa(res.Height))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(res.Data); err != nil {
		log.Printf("write response: %v", err)
	}
}

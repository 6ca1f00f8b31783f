package handler

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"upright/internal/pipeline"
)

// Rotate handles POST /rotate?angle=90|180|270|-90. The body image is made
// upright, turned counter-clockwise by angle and re-encoded.
func (h *Handler) Rotate(w http.ResponseWriter, r *http.Request) {
	angle, err := strconv.Atoi(r.URL.Query().Get("angle"))
	if err != nil {
		http.Error(w, "Invalid angle", http.StatusBadRequest)
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = h.config.OutputFormat
	}
	format, err = pipeline.NormalizeFormat(format)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	body, err := h.readBody(r)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	res, err := h.rotate(body, angle, format)
	if err != nil {
		status := statusFor(err)
		log.Printf("rotate failed (%d): %v", status, err)
		http.Error(w, http.StatusText(status), status)
		return
	}
	writeImage(w, res)
}

func (h *Handler) rotate(body *bytes.Reader, angle int, format string) (*pipeline.Result, error) {
	src, _, err := pipeline.Load(body, h.maxBytes(), 1)
	if err != nil {
		return nil, err
	}
	rotated, err := pipeline.RotateUpright(src, angle)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := pipeline.Encode(rotated.Image(), &buf, format, h.encodeOptions()); err != nil {
		return nil, fmt.Errorf("encode %s: %w", format, err)
	}
	p := rotated.PixelSize()
	return &pipeline.Result{Bitmap: rotated, Data: buf.Bytes(), Format: format, Width: p.X, Height: p.Y}, nil
}

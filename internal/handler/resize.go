package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"upright/internal/pipeline"
	"upright/internal/resize"
)

var errBadParam = errors.New("invalid parameter")

// Resize handles POST /resize. The request body is the source image; the
// response is the upright, resized image.
func (h *Handler) Resize(w http.ResponseWriter, r *http.Request) {
	opts, err := h.resizeOptions(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	body, err := h.readBody(r)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	res, err := pipeline.Process(body, opts)
	if err != nil {
		status := statusFor(err)
		log.Printf("resize failed (%d): %v", status, err)
		http.Error(w, http.StatusText(status), status)
		return
	}
	writeImage(w, res)
}

// resizeOptions parses w, h, mode, quality, format, scale and crop.
func (h *Handler) resizeOptions(q url.Values) (pipeline.Options, error) {
	opts := pipeline.Options{
		Format:   h.config.OutputFormat,
		Scale:    1,
		Encode:   h.encodeOptions(),
		MaxBytes: h.maxBytes(),
	}

	var err error
	if opts.Width, err = parseDimension(q, "w"); err != nil {
		return opts, err
	}
	if opts.Height, err = parseDimension(q, "h"); err != nil {
		return opts, err
	}

	if opts.Mode, err = pipeline.ParseMode(q.Get("mode")); err != nil {
		return opts, fmt.Errorf("%w: %v", errBadParam, err)
	}

	if v := q.Get("quality"); v != "" {
		if opts.Quality, err = resize.ParseQuality(v); err != nil {
			return opts, fmt.Errorf("%w: %v", errBadParam, err)
		}
	}
	if v := q.Get("format"); v != "" {
		opts.Format = v
	}
	if _, err := pipeline.NormalizeFormat(opts.Format); err != nil {
		return opts, fmt.Errorf("%w: %v", errBadParam, err)
	}
	if v := q.Get("scale"); v != "" {
		s, err := strconv.ParseFloat(v, 64)
		if err != nil || s <= 0 || s > 4 {
			return opts, fmt.Errorf("%w: scale %q", errBadParam, v)
		}
		opts.Scale = s
	}
	if v := q.Get("crop"); v != "" {
		if opts.Crop, err = strconv.ParseBool(v); err != nil {
			return opts, fmt.Errorf("%w: crop %q", errBadParam, v)
		}
	}
	return opts, nil
}

func parseDimension(q url.Values, key string) (float64, error) {
	v := q.Get(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || n < 0 || n > pipeline.MaxDimension {
		return 0, fmt.Errorf("%w: %s %q", errBadParam, key, v)
	}
	return n, nil
}

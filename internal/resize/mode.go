package resize

import (
	"fmt"
	"math"
	"strings"

	"upright/internal/geom"
)

// ContentMode is the policy for fitting a bitmap into a target box. Only
// Fit and Fill are resolvable; the remaining view content modes exist so
// callers can pass them through and get ErrUnsupportedContentMode.
type ContentMode int

const (
	Stretch ContentMode = iota
	Fit                 // contain: largest size fully inside the box
	Fill                // cover: smallest size covering the box
	Redraw
	Center
	Top
	Bottom
	LeftEdge
	RightEdge
	TopLeft
	TopRight
	BottomLeft
	BottomRight
)

var modeNames = [...]string{
	Stretch:     "stretch",
	Fit:         "fit",
	Fill:        "fill",
	Redraw:      "redraw",
	Center:      "center",
	Top:         "top",
	Bottom:      "bottom",
	LeftEdge:    "left",
	RightEdge:   "right",
	TopLeft:     "top-left",
	TopRight:    "top-right",
	BottomLeft:  "bottom-left",
	BottomRight: "bottom-right",
}

func (m ContentMode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("ContentMode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseContentMode maps a name such as "fit" to its ContentMode.
func ParseContentMode(s string) (ContentMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for m, n := range modeNames {
		if n == s {
			return ContentMode(m), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedContentMode, s)
}

// ResolveSize scales current uniformly so that it fits (Fit) or covers
// (Fill) target.
func ResolveSize(current, target geom.Size, mode ContentMode) (geom.Size, error) {
	hRatio := target.Width / current.Width
	vRatio := target.Height / current.Height

	var ratio float64
	switch mode {
	case Fit:
		ratio = math.Min(hRatio, vRatio)
	case Fill:
		ratio = math.Max(hRatio, vRatio)
	default:
		return geom.Size{}, fmt.Errorf("%w: %v", ErrUnsupportedContentMode, mode)
	}

	return current.Scaled(ratio), nil
}

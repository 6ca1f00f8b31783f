package resize

import (
	"fmt"
	"strings"

	"golang.org/x/image/draw"
)

// Quality selects the resampling filter used when drawing.
type Quality int

const (
	QualityDefault Quality = iota
	QualityNone
	QualityLow
	QualityMedium
	QualityHigh
)

var qualityNames = [...]string{
	QualityDefault: "default",
	QualityNone:    "none",
	QualityLow:     "low",
	QualityMedium:  "medium",
	QualityHigh:    "high",
}

func (q Quality) String() string {
	if q < 0 || int(q) >= len(qualityNames) {
		return fmt.Sprintf("Quality(%d)", int(q))
	}
	return qualityNames[q]
}

// ParseQuality maps a name such as "high" to its Quality. The empty
// string is QualityDefault.
func ParseQuality(s string) (Quality, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return QualityDefault, nil
	}
	for q, n := range qualityNames {
		if n == s {
			return Quality(q), nil
		}
	}
	return QualityDefault, fmt.Errorf("unknown interpolation quality %q", s)
}

func (q Quality) interpolator() draw.Interpolator {
	switch q {
	case QualityNone:
		return draw.NearestNeighbor
	case QualityLow:
		return draw.ApproxBiLinear
	case QualityHigh:
		return draw.CatmullRom
	default:
		return draw.BiLinear
	}
}

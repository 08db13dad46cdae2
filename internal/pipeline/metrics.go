package pipeline

import (
	"fmt"
	"time"
)

// ConversionStats summarises one run of the pipeline.
type ConversionStats struct {
	Width            int
	Height           int
	ForegroundPixels int
	Contours         int
	Paths            int
	Vertices         int

	BinarizeTime  time.Duration
	ExtractTime   time.Duration
	SerializeTime time.Duration
}

// ForegroundRatio is the share of mask pixels classified as foreground.
func (s ConversionStats) ForegroundRatio() float64 {
	total := s.Width * s.Height
	if total == 0 {
		return 0
	}
	return float64(s.ForegroundPixels) / float64(total)
}

func (s ConversionStats) Total() time.Duration {
	return s.BinarizeTime + s.ExtractTime + s.SerializeTime
}

// Fields formats the stats for structured logging.
func (s ConversionStats) Fields() map[string]interface{} {
	return map[string]interface{}{
		"size":         fmt.Sprintf("%dx%d", s.Width, s.Height),
		"foreground":   s.ForegroundPixels,
		"contours":     s.Contours,
		"paths":        s.Paths,
		"vertices":     s.Vertices,
		"binarize_ms":  s.BinarizeTime.Milliseconds(),
		"extract_ms":   s.ExtractTime.Milliseconds(),
		"serialize_ms": s.SerializeTime.Milliseconds(),
	}
}

func (s ConversionStats) String() string {
	return fmt.Sprintf("%dx%d, %d contours, %d paths, %.1f%% foreground, %v",
		s.Width, s.Height, s.Contours, s.Paths, 100*s.ForegroundRatio(), s.Total().Round(time.Millisecond))
}

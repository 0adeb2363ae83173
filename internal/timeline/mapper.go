package timeline

// Zoom bounds. MinZoom fits the entire timeline into the viewport; MaxZoom is
// maximum detail.
const (
	MinZoom = 0.01
	MaxZoom = 1.0
)

const (
	// targetRate is the pixel density guaranteed at maximum zoom (px/sec),
	// regardless of how long the timeline is.
	targetRate = 100.0

	// fallbackRate is used when the viewport or timeline length is degenerate.
	fallbackRate = 100.0
)

// PixelsPerSecond converts a zoom level into a time-to-pixel rate. At MinZoom
// the whole timeline exactly fills the viewport; the rate then interpolates
// linearly up to max(fit*100, targetRate) at MaxZoom. Pure and O(1); called on
// every render and every pointer-drag tick.
func PixelsPerSecond(zoom, viewportWidth, totalLength float64) float64 {
	if viewportWidth <= 0 || totalLength <= 0 {
		return fallbackRate
	}

	base := viewportWidth / totalLength

	factor := (zoom - MinZoom) / (MaxZoom - MinZoom)
	if factor < 0 {
		factor = 0
	}
	if factor > 1 {
		factor = 1
	}

	maxRate := base * 100.0
	if maxRate < targetRate {
		maxRate = targetRate
	}

	return base + factor*(maxRate-base)
}

// PixelsPerSecond returns the current mapping rate for this timeline's zoom,
// viewport and length.
func (t *Timeline) PixelsPerSecond() float64 {
	return PixelsPerSecond(t.ZoomLevel, t.ViewportWidth, t.TotalLength)
}

// TimeToX maps a time offset to a viewport x coordinate, accounting for scroll.
func (t *Timeline) TimeToX(sec float64) float64 {
	return sec*t.PixelsPerSecond() - t.ScrollOffset
}

// XToTime maps a viewport x coordinate back to a time offset.
func (t *Timeline) XToTime(x float64) float64 {
	return (x + t.ScrollOffset) / t.PixelsPerSecond()
}

// DeltaToSeconds converts a horizontal pointer delta into a time delta at the
// current zoom.
func (t *Timeline) DeltaToSeconds(dx float64) float64 {
	return dx / t.PixelsPerSecond()
}

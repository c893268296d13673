package viewport

// ElementSize is the pixel footprint of one bar.
type ElementSize struct {
	Width   float64
	Spacing float64
}

// Step returns the horizontal distance between two consecutive bars.
func (s ElementSize) Step() float64 {
	return s.Width + s.Spacing
}

// Scale returns the size grown by factor f.
func (s ElementSize) Scale(f float64) ElementSize {
	return ElementSize{Width: s.Width * f, Spacing: s.Spacing * f}
}

// Config holds configuration for the windowing engine.
type Config struct {
	// ZoomScale is the zoom level increment of one wheel notch.
	ZoomScale float64
	// MinZoomLevel and MaxZoomLevel bound the zoom level.
	MinZoomLevel float64
	MaxZoomLevel float64
	// ZoomLevel is the initial zoom level.
	ZoomLevel float64
	// ZoomGrowthPercent is how much an element grows at MaxZoomLevel.
	ZoomGrowthPercent float64
	// PaddingLeft is subtracted from the viewport width before fitting bars.
	PaddingLeft float64
	// ElementSize is the base element size at MinZoomLevel.
	ElementSize ElementSize
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		ZoomScale:         1,
		MinZoomLevel:      1,
		MaxZoomLevel:      8,
		ZoomLevel:         1,
		ZoomGrowthPercent: 15,
		PaddingLeft:       10,
		ElementSize:       ElementSize{Width: 4, Spacing: 1},
	}
}

func (c Config) normalized() Config {
	def := DefaultConfig()
	if c.ZoomScale <= 0 {
		c.ZoomScale = def.ZoomScale
	}
	if c.MinZoomLevel < 0 {
		c.MinZoomLevel = 0
	}
	if c.MaxZoomLevel < c.MinZoomLevel {
		c.MaxZoomLevel = c.MinZoomLevel
	}
	if c.ZoomGrowthPercent < 0 {
		c.ZoomGrowthPercent = 0
	}
	return c
}

package dataset

// Bar is one OHLC sample. Inside a Chunk, Time is seconds from the chunk's
// StartDate; bars handed out by the viewport carry absolute epoch seconds.
type Bar struct {
	Time       int64   `json:"Time"`
	Open       float64 `json:"Open"`
	High       float64 `json:"High"`
	Low        float64 `json:"Low"`
	Close      float64 `json:"Close"`
	TickVolume int64   `json:"TickVolume"`
}

// Down reports whether the bar closed below its open.
func (b Bar) Down() bool {
	return b.Open > b.Close
}

// Chunk is a contiguous, pre-batched segment of the series with its own base timestamp.
type Chunk struct {
	StartDate int64
	Bars      []Bar
}

// Len returns the number of bars in the chunk.
func (c Chunk) Len() int {
	return len(c.Bars)
}

// Absolute returns bars[start:end] with Time converted to epoch seconds.
// Bounds are clamped to the chunk.
func (c Chunk) Absolute(start, end int) []Bar {
	if start < 0 {
		start = 0
	}
	if end > len(c.Bars) {
		end = len(c.Bars)
	}
	if start >= end {
		return nil
	}
	out := make([]Bar, end-start)
	for i, b := range c.Bars[start:end] {
		b.Time += c.StartDate
		out[i] = b
	}
	return out
}

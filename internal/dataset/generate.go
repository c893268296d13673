package dataset

import "math"

// GenerateConfig controls synthetic series generation.
type GenerateConfig struct {
	// Start is the epoch second of the first bar.
	Start int64
	// Period is the bar duration in seconds.
	Period int64
	// BasePrice is the opening price of the first bar.
	BasePrice float64
	// Count is the total number of bars.
	Count int
	// ChunkSize is the number of bars per chunk.
	ChunkSize int
}

// DefaultGenerateConfig returns a GenerateConfig with reasonable defaults.
func DefaultGenerateConfig() GenerateConfig {
	return GenerateConfig{
		Start:     1_700_000_000,
		Period:    60,
		BasePrice: 1.1,
		Count:     5000,
		ChunkSize: 500,
	}
}

// Generate builds a deterministic random-walk series split into chunks.
func Generate(cfg GenerateConfig) (*Dataset, error) {
	bars := make([]Bar, 0, cfg.Count)
	price := cfg.BasePrice

	for i := 0; i < cfg.Count; i++ {
		// Random walk
		change := (float64(i%7) - 3) / 1000 * price
		if i%11 == 0 {
			change = -change
		}

		open := price
		price += change
		closePrice := price

		high := math.Max(open, closePrice) + math.Abs(change)*0.5
		low := math.Min(open, closePrice) - math.Abs(change)*0.5

		bars = append(bars, Bar{
			Time:       cfg.Start + int64(i)*cfg.Period,
			Open:       open,
			High:       high,
			Low:        low,
			Close:      closePrice,
			TickVolume: int64(100 + i%50),
		})
	}

	return FromBars(bars, cfg.ChunkSize)
}

package dataset

import (
	"errors"
	"fmt"
)

var (
	ErrUnorderedChunks  = errors.New("chunks are not ordered by start date")
	ErrUnorderedBars    = errors.New("bars are not ordered by time")
	ErrInvalidChunkSize = errors.New("chunk size must be positive")
)

// Dataset is an immutable ordered sequence of chunks.
type Dataset struct {
	chunks []Chunk
	length int
}

// New validates chunk ordering and returns a Dataset. The chunks slice is
// owned by the Dataset afterwards.
func New(chunks []Chunk) (*Dataset, error) {
	length := 0
	for i, c := range chunks {
		if i > 0 && c.StartDate <= chunks[i-1].StartDate {
			return nil, fmt.Errorf("chunk %d starts at %d after %d: %w", i, c.StartDate, chunks[i-1].StartDate, ErrUnorderedChunks)
		}
		length += len(c.Bars)
	}
	return &Dataset{chunks: chunks, length: length}, nil
}

// Len returns the total number of bars across all chunks.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return d.length
}

// NumChunks returns the number of chunks.
func (d *Dataset) NumChunks() int {
	if d == nil {
		return 0
	}
	return len(d.chunks)
}

// Chunk returns the chunk at index i.
func (d *Dataset) Chunk(i int) Chunk {
	return d.chunks[i]
}

// At returns the i-th bar of the flattened series with absolute time.
func (d *Dataset) At(i int) (Bar, bool) {
	if d == nil || i < 0 || i >= d.length {
		return Bar{}, false
	}
	for _, c := range d.chunks {
		if i < len(c.Bars) {
			b := c.Bars[i]
			b.Time += c.StartDate
			return b, true
		}
		i -= len(c.Bars)
	}
	return Bar{}, false
}

// FromBars splits a flat series of absolute-time bars into chunks of at most
// chunkSize bars. Each chunk starts at its first bar's time. Bar times must
// strictly increase.
func FromBars(bars []Bar, chunkSize int) (*Dataset, error) {
	if chunkSize <= 0 {
		return nil, ErrInvalidChunkSize
	}
	for i := 1; i < len(bars); i++ {
		if bars[i].Time <= bars[i-1].Time {
			return nil, fmt.Errorf("bar %d at %d follows %d: %w", i, bars[i].Time, bars[i-1].Time, ErrUnorderedBars)
		}
	}
	chunks := make([]Chunk, 0, (len(bars)+chunkSize-1)/chunkSize)
	for start := 0; start < len(bars); start += chunkSize {
		end := min(start+chunkSize, len(bars))
		base := bars[start].Time
		rel := make([]Bar, end-start)
		for i, b := range bars[start:end] {
			b.Time -= base
			rel[i] = b
		}
		chunks = append(chunks, Chunk{StartDate: base, Bars: rel})
	}
	return New(chunks)
}

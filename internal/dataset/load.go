package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
)

var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// jsonChunk mirrors the on-disk chunk layout: {ChunkStart, Bars}.
type jsonChunk struct {
	ChunkStart int64 `json:"ChunkStart"`
	Bars       []Bar `json:"Bars"`
}

// parquetRow is one flat bar row; rows sharing chunk_start form a chunk.
type parquetRow struct {
	ChunkStart int64   `parquet:"chunk_start"`
	Time       int64   `parquet:"time"`
	Open       float64 `parquet:"open"`
	High       float64 `parquet:"high"`
	Low        float64 `parquet:"low"`
	Close      float64 `parquet:"close"`
	TickVolume int64   `parquet:"tick_volume"`
}

// Load reads a dataset, picking the decoder from the file extension.
func Load(path string) (*Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadJSON(path)
	case ".parquet":
		return LoadParquet(path)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// LoadJSON reads an array of {ChunkStart, Bars} objects.
func LoadJSON(path string) (*Dataset, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	var raw []jsonChunk
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	chunks := make([]Chunk, len(raw))
	for i, c := range raw {
		chunks[i] = Chunk{StartDate: c.ChunkStart, Bars: c.Bars}
	}
	return New(chunks)
}

// LoadParquet reads flat rows and groups consecutive rows with the same
// chunk_start into a chunk.
func LoadParquet(path string) (*Dataset, error) {
	rows, err := parquet.ReadFile[parquetRow](path)
	if err != nil {
		return nil, fmt.Errorf("read parquet dataset: %w", err)
	}
	var chunks []Chunk
	for _, r := range rows {
		if len(chunks) == 0 || chunks[len(chunks)-1].StartDate != r.ChunkStart {
			chunks = append(chunks, Chunk{StartDate: r.ChunkStart})
		}
		last := &chunks[len(chunks)-1]
		last.Bars = append(last.Bars, Bar{
			Time:       r.Time,
			Open:       r.Open,
			High:       r.High,
			Low:        r.Low,
			Close:      r.Close,
			TickVolume: r.TickVolume,
		})
	}
	return New(chunks)
}

// WriteParquet stores the dataset as flat rows. Empty chunks are not
// representable in the flat layout and are dropped.
func WriteParquet(path string, d *Dataset) error {
	rows := make([]parquetRow, 0, d.Len())
	for i := 0; i < d.NumChunks(); i++ {
		c := d.Chunk(i)
		for _, b := range c.Bars {
			rows = append(rows, parquetRow{
				ChunkStart: c.StartDate,
				Time:       b.Time,
				Open:       b.Open,
				High:       b.High,
				Low:        b.Low,
				Close:      b.Close,
				TickVolume: b.TickVolume,
			})
		}
	}
	return parquet.WriteFile(path, rows)
}

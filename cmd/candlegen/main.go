// Command candlegen writes a synthetic chunked series to a Parquet file
// that candleview can load through CANDLEVIEW_DATA_PATH.
package main

import (
	"fmt"
	"os"

	"github.com/zappabad/candleview/internal/config"
	"github.com/zappabad/candleview/internal/dataset"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: candlegen <out.parquet>")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ds, err := dataset.Generate(cfg.Generate())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := dataset.WriteParquet(os.Args[1], ds); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d bars in %d chunks to %s\n", ds.Len(), ds.NumChunks(), os.Args[1])
}

// Command zx0bench compresses each argument file with the ZX0 optimizer and
// with a handful of general-purpose codecs, and prints a size/ratio/time
// comparison table. It exists to exercise the reference stack's non-core
// dependencies and give a quick sanity check that ZX0's optimal parser beats
// general-purpose codecs on small retro-computing-sized inputs.
package main

import (
	"bytes"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/gozx0/zx0"
	"github.com/gozx0/zx0/encode"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: zx0bench <file>...")
		os.Exit(1)
	}
	for _, path := range os.Args[1:] {
		if err := benchmarkFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "zx0bench: %s: %v\n", path, err)
		}
	}
}

type result struct {
	codec   string
	size    int
	elapsed time.Duration
	err     error
}

func benchmarkFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	results := []result{
		measure("zx0", func() (int, error) { return zx0Size(data, 32640) }),
		measure("zx0 -q", func() (int, error) { return zx0Size(data, 2176) }),
		measure("snappy", func() (int, error) { return len(snappy.Encode(nil, data)), nil }),
		measure("flate", func() (int, error) { return flateSize(data) }),
		measure("zstd", func() (int, error) { return zstdSize(data) }),
		measure("lz4", func() (int, error) { return lz4Size(data) }),
		measure("brotli", func() (int, error) { return brotliSize(data) }),
	}

	fmt.Printf("%s (%d bytes)\n", path, len(data))
	for _, r := range results {
		if r.err != nil {
			fmt.Printf("  %-8s  failed: %v\n", r.codec, r.err)
			continue
		}
		ratio := float64(r.size) / float64(len(data))
		fmt.Printf("  %-8s  %8d bytes  ratio %.3f  %v\n", r.codec, r.size, ratio, r.elapsed)
	}
	return nil
}

func measure(name string, f func() (int, error)) result {
	start := time.Now()
	size, err := f()
	return result{codec: name, size: size, elapsed: time.Since(start), err: err}
}

func zx0Size(data []byte, offsetLimit int) (int, error) {
	terminal, err := zx0.Optimize(data, 0, offsetLimit, runtime.NumCPU(), false)
	if err != nil {
		return 0, err
	}
	out, err := encode.Encode(terminal, data, 0, false)
	if err != nil {
		return 0, err
	}
	return len(out), nil
}

func flateSize(data []byte) (int, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return 0, err
	}
	if _, err := w.Write(data); err != nil {
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, err
	}
	return buf.Len(), nil
}

func zstdSize(data []byte) (int, error) {
	var buf bytes.Buffer
	w, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return 0, err
	}
	if _, err := w.Write(data); err != nil {
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, err
	}
	return buf.Len(), nil
}

func lz4Size(data []byte) (int, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if err := w.Apply(lz4.CompressionLevelOption(lz4.Level9)); err != nil {
		return 0, err
	}
	if _, err := w.Write(data); err != nil {
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, err
	}
	return buf.Len(), nil
}

func brotliSize(data []byte) (int, error) {
	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, brotli.BestCompression)
	if _, err := w.Write(data); err != nil {
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, err
	}
	return buf.Len(), nil
}

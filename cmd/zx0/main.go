// Command zx0 compresses and decompresses files using the ZX0 optimal
// parser and wire format.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/pierrec/xxHash/xxHash32"

	"github.com/gozx0/zx0"
	"github.com/gozx0/zx0/decode"
	"github.com/gozx0/zx0/encode"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "zx0:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("zx0", flag.ContinueOnError)
	decompress := fs.Bool("d", false, "decompress")
	backwards := fs.Bool("b", false, "compress/decompress from the end of the file backwards")
	force := fs.Bool("f", false, "force overwrite of an existing output file")
	quick := fs.Bool("q", false, "quick mode: limit matches to a 2176-byte offset window")
	threads := fs.Int("p", runtime.NumCPU(), "number of parallel search threads")
	checksum := fs.Int("c", 0, "verify the round trip with an xxHash32 checksum after compressing (value unused)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	_ = checksum

	rest := fs.Args()
	if len(rest) < 1 || len(rest) > 2 {
		return fmt.Errorf("usage: zx0 [-d] [-b] [-f] [-q] [-p N] [-c N] <input> [output]")
	}
	input := rest[0]
	var output string
	verifyChecksum := checksumFlagSet(fs)
	if len(rest) == 2 {
		output = rest[1]
	} else if *decompress {
		output = stripSuffix(input, ".zx0")
	} else {
		output = input + ".zx0"
	}

	toStdout := output == "-"

	if !toStdout && !*force {
		if _, err := os.Stat(output); err == nil {
			return fmt.Errorf("output file %q already exists (use -f to overwrite)", output)
		}
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("reading %s: %w", input, err)
	}

	verbose := !toStdout && isTerminal(os.Stderr) && !*decompress

	var result []byte
	if *decompress {
		result, err = decompressFile(data, *backwards)
	} else {
		result, err = compressFile(data, *quick, *threads, verbose, *backwards)
		if err == nil && verifyChecksum {
			if err = verifyRoundTrip(data, result, *backwards); err != nil {
				return err
			}
		}
	}
	if err != nil {
		return err
	}

	if toStdout {
		if _, err := os.Stdout.Write(result); err != nil {
			return fmt.Errorf("writing to stdout: %w", err)
		}
		return nil
	}

	if err := os.WriteFile(output, result, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	return nil
}

func checksumFlagSet(fs *flag.FlagSet) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "c" {
			set = true
		}
	})
	return set
}

func compressFile(data []byte, quick bool, threads int, verbose, backwards bool) ([]byte, error) {
	offsetLimit := 32640
	if quick {
		offsetLimit = 2176
	}
	if backwards {
		data = reversed(data)
	}
	terminal, err := zx0.Optimize(data, 0, offsetLimit, threads, verbose)
	if err != nil {
		return nil, fmt.Errorf("compressing: %w", err)
	}
	out, err := encode.Encode(terminal, data, 0, backwards)
	if err != nil {
		return nil, fmt.Errorf("compressing: %w", err)
	}
	if backwards {
		out = reversed(out)
	}
	return out, nil
}

func decompressFile(data []byte, backwards bool) ([]byte, error) {
	if backwards {
		data = reversed(data)
	}
	out, err := decode.Decode(data, backwards)
	if err != nil {
		return nil, fmt.Errorf("decompressing: %w", err)
	}
	if backwards {
		out = reversed(out)
	}
	return out, nil
}

// verifyRoundTrip decompresses compressed in-process and compares an
// xxHash32 checksum of the result against the original input, independent
// of the bytes.Equal check a caller could also run.
func verifyRoundTrip(original, compressed []byte, backwards bool) error {
	decoded, err := decompressFile(compressed, backwards)
	if err != nil {
		return fmt.Errorf("checksum verification: %w", err)
	}
	want := checksum32(original)
	got := checksum32(decoded)
	if want != got {
		return fmt.Errorf("checksum verification failed: want %08x, got %08x", want, got)
	}
	return nil
}

func checksum32(data []byte) uint32 {
	h := xxHash32.New(0)
	h.Write(data)
	return h.Sum32()
}

func reversed(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

func stripSuffix(name, suffix string) string {
	if len(name) > len(suffix) && name[len(name)-len(suffix):] == suffix {
		return name[:len(name)-len(suffix)]
	}
	return name + ".out"
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

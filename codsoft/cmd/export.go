package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/andybalholm/brotli"
)

// writeExport writes data to path. A ".br" suffix stores it brotli
// compressed.
func writeExport(path string, data []byte) (err error) {
	if !strings.HasSuffix(strings.ToLower(path), ".br") {
		return os.WriteFile(path, data, 0o644)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	bw := brotli.NewWriterLevel(f, brotli.BestCompression)
	if _, err := bw.Write(data); err != nil {
		return fmt.Errorf("unable to compress export: %w", err)
	}
	return bw.Close()
}

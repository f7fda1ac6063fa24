// Package debug provides debug capture utilities.
package debug

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Faultbox/sunshade/internal/engine/framebuffer"
)

// ScreenshotCapture writes timestamped PNG captures of the framebuffer.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
}

// NewScreenshotCapture creates a capture handler writing to outputDir
// with the given filename prefix.
func NewScreenshotCapture(outputDir, prefix string) *ScreenshotCapture {
	return &ScreenshotCapture{outputDir: outputDir, prefix: prefix}
}

// Capture writes the framebuffer as a PNG and returns the file path.
func (sc *ScreenshotCapture) Capture(fb *framebuffer.Framebuffer) (string, error) {
	if fb == nil {
		return "", errors.New("nil framebuffer")
	}

	// The output directory may not exist on first capture.
	if sc.outputDir != "" {
		if err := os.MkdirAll(sc.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := sc.GenerateFilename()

	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := fb.WritePNG(file); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}

	return filename, nil
}

// GenerateFilename returns the path the next capture would be written
// to, without touching the filesystem.
func (sc *ScreenshotCapture) GenerateFilename() string {
	name := fmt.Sprintf("%s_%s.png", sc.prefix, time.Now().Format("2006-01-02_15-04-05"))
	if sc.outputDir == "" {
		return name
	}
	return filepath.Join(sc.outputDir, name)
}

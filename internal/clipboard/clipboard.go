// Package clipboard publishes rendered boards to the system clipboard as PNG.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"sync"
)

var (
	initOnce     sync.Once
	initErr      error
	errNoDisplay = errors.New("clipboard requires DISPLAY or WAYLAND_DISPLAY")
)

// pngWriter is implemented per platform.
type pngWriter interface {
	writePNG(data []byte) error
}

var active pngWriter

func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

func ensureInit() error {
	initOnce.Do(func() {
		active, initErr = openBackend()
	})
	return initErr
}

// WriteImage encodes img as PNG and makes it the clipboard content.
func WriteImage(img image.Image) error {
	if img == nil {
		return errors.New("clipboard: nil image")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("clipboard: encode png: %w", err)
	}
	return WritePNG(buf.Bytes())
}

// WritePNG publishes already encoded PNG bytes.
func WritePNG(data []byte) error {
	if len(data) == 0 {
		return errors.New("clipboard: empty image")
	}
	if err := ensureInit(); err != nil {
		return err
	}
	return active.writePNG(data)
}

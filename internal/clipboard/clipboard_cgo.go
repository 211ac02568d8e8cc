//go:build (linux || freebsd || openbsd || netbsd || dragonfly || darwin || windows) && cgo

package clipboard

import (
	"runtime"

	"golang.design/x/clipboard"
)

type systemClipboard struct{}

func openBackend() (pngWriter, error) {
	if !hasDisplay() && runtime.GOOS != "darwin" && runtime.GOOS != "windows" {
		return nil, errNoDisplay
	}
	if err := clipboard.Init(); err != nil {
		return nil, err
	}
	return systemClipboard{}, nil
}

func (systemClipboard) writePNG(data []byte) error {
	clipboard.Write(clipboard.FmtImage, data)
	return nil
}

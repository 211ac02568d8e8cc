//go:build !(linux || freebsd || openbsd || netbsd || dragonfly || darwin || windows) || (!cgo && (darwin || windows))

package clipboard

import "errors"

func openBackend() (pngWriter, error) {
	return nil, errors.New("clipboard image operations are not supported on this platform")
}

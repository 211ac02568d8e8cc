// Package export writes boards to image files.
package export

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/example/designboard/internal/clipboard"
	"github.com/example/designboard/internal/notify"
	"github.com/example/designboard/internal/render"
	"github.com/example/designboard/internal/scene"
)

// DefaultScale is the supersampling multiplier applied to exports.
const DefaultScale = 2

// Result describes a completed export.
type Result struct {
	Path   string
	Width  int
	Height int
	Copied bool
}

// Filename returns the export name for t.
func Filename(t time.Time) string {
	return fmt.Sprintf("system-design-%d.png", t.UnixMilli())
}

// Service rasterizes scenes and writes them as PNG files. It never modifies
// the scene it is given.
type Service struct {
	Dir      string
	Scale    float64
	Now      func() time.Time
	Copy     bool
	Notifier *notify.Notifier

	// Rasterize and CopyImage default to the anti-aliased renderer and the
	// system clipboard.
	Rasterize func(*scene.Scene, float64) (image.Image, error)
	CopyImage func(image.Image) error
}

func (s *Service) scale() float64 {
	if s.Scale <= 0 {
		return DefaultScale
	}
	return s.Scale
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Image renders sc at the service scale.
func (s *Service) Image(sc *scene.Scene) (image.Image, error) {
	raster := s.Rasterize
	if raster == nil {
		raster = render.RasterizeVector
	}
	img, err := raster(sc, s.scale())
	if err != nil {
		return nil, fmt.Errorf("rasterize: %w", err)
	}
	return img, nil
}

// Export renders sc and writes it to Dir. Failures are reported through the
// notifier as well as returned.
func (s *Service) Export(ctx context.Context, sc *scene.Scene) (Result, error) {
	res, err := s.export(ctx, sc)
	if err != nil {
		s.Notifier.ExportFailed(err)
		return Result{}, err
	}
	s.Notifier.Exported(res.Path)
	if res.Copied {
		s.Notifier.Copy(filepath.Base(res.Path))
	}
	return res, nil
}

func (s *Service) export(ctx context.Context, sc *scene.Scene) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	img, err := s.Image(sc)
	if err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, Filename(s.now()))
	if err := writePNG(path, img); err != nil {
		return Result{}, err
	}
	b := img.Bounds()
	res := Result{Path: path, Width: b.Dx(), Height: b.Dy()}
	if s.Copy {
		if err := s.copyImage(img); err != nil {
			log.Printf("copy export to clipboard: %v", err)
		} else {
			res.Copied = true
		}
	}
	return res, nil
}

func (s *Service) copyImage(img image.Image) error {
	if s.CopyImage != nil {
		return s.CopyImage(img)
	}
	return clipboard.WriteImage(img)
}

// CopyToClipboard renders sc and places it on the clipboard without writing
// a file.
func (s *Service) CopyToClipboard(sc *scene.Scene) error {
	img, err := s.Image(sc)
	if err != nil {
		return err
	}
	if err := s.copyImage(img); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	s.Notifier.Copy("board")
	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

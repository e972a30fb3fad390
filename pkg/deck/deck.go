// Package deck assembles rendered slides into a single PDF document.
//
// Each slide becomes one full-bleed page at the slide's pixel
// dimensions. The document is written through a temp file and renamed
// into place, so a failing run never leaves a partial PDF behind.
package deck

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"codeberg.org/go-pdf/fpdf"
	"github.com/disintegration/imaging"

	"github.com/classdeck/classdeck/pkg/errors"
)

// WritePDF writes one page per slide to path, in order.
// An empty slide list is an explicit NO_SLIDES error rather than an
// empty document.
func WritePDF(pages []image.Image, path string) error {
	if len(pages) == 0 {
		return errors.New(errors.ErrCodeNoSlides, "no slides to write")
	}

	bounds := pages[0].Bounds()
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "L",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: float64(bounds.Dx()), Ht: float64(bounds.Dy())},
	})

	opts := fpdf.ImageOptions{ImageType: "JPG"}
	for i, page := range pages {
		var buf bytes.Buffer
		if err := imaging.Encode(&buf, page, imaging.JPEG); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode page %d", i+1)
		}

		name := fmt.Sprintf("slide-%d", i+1)
		pdf.AddPage()
		pdf.RegisterImageOptionsReader(name, opts, &buf)
		pdf.ImageOptions(name, 0, 0, float64(bounds.Dx()), float64(bounds.Dy()), false, opts, 0, "")
	}
	if err := pdf.Error(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "build PDF")
	}

	return writeAtomic(pdf, path)
}

// writeAtomic streams the document to a temp file next to path and
// renames it into place once the whole document has been written.
func writeAtomic(pdf *fpdf.Fpdf, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create output directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, ".classdeck-*.pdf")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create temp output")
	}

	if err := pdf.Output(tmp); err != nil {
		tmp.Close()
		_ = os.Remove(tmp.Name())
		return errors.Wrap(errors.ErrCodeInternal, err, "write PDF")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return errors.Wrap(errors.ErrCodeInternal, err, "close temp output")
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return errors.Wrap(errors.ErrCodeInternal, err, "finalize %s", path)
	}
	return nil
}

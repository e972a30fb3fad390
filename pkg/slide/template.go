// Package slide renders one fixed-layout slide per student.
//
// Every slide starts from a shared base template (background plus two
// logo instances) built once per run. The template is immutable; each
// slide works on its own copy of the pixel buffer so no slide can
// contaminate another.
package slide

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/classdeck/classdeck/pkg/errors"
)

// Canvas dimensions and fixed layout proportions. These are design
// constants of the slide, not deployment configuration.
const (
	CanvasWidth  = 1920
	CanvasHeight = 1080

	backgroundColor = "#212121"
	nameColor       = "#ffffff"
	awardColor      = "#adadad"

	// Horizontal anchors: text block on the left, portrait on the right.
	leftAnchorFrac  = 0.29
	rightAnchorFrac = 0.77

	// Name block: width-constrained only.
	nameMaxWidthFrac         = 0.50
	nameStartSizeFrac        = 0.13
	nameCenterFrac           = 0.45
	nameCenterWithAwardsFrac = 0.40 // shifted up to make room below

	// Achievement block: width- and height-constrained.
	awardMaxWidthFrac  = 0.45
	awardMaxHeightFrac = 0.33
	awardStartSizeFrac = 0.10
	awardSpacingFrac   = 0.03
	awardCenterFrac    = 2.0 / 3.0

	// Portrait height relative to the canvas.
	portraitHeightFrac = 0.90

	// Logo placement.
	smallLogoScale = 0.30
	smallLogoTop   = 175

	// maxAwards is the soft bound of the intended layout; longer lists
	// collapse to a single joined line.
	maxAwards = 3
)

// PortraitHeight is the pixel height portraits are resized to.
const PortraitHeight = int(CanvasHeight * portraitHeightFrac)

// Template is the immutable base canvas shared by all slides.
type Template struct {
	base *image.RGBA
}

// NewTemplate builds the base canvas: background fill, a small logo
// instance above the text region, and a full-size logo behind the
// portrait region. The logo's alpha channel is respected.
func NewTemplate(logoPath string) (*Template, error) {
	logo, err := imaging.Open(logoPath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open logo %s", logoPath)
	}

	dc := gg.NewContext(CanvasWidth, CanvasHeight)
	dc.SetHexColor(backgroundColor)
	dc.Clear()

	small := imaging.Resize(logo,
		int(float64(logo.Bounds().Dx())*smallLogoScale),
		int(float64(logo.Bounds().Dy())*smallLogoScale),
		imaging.Lanczos)
	dc.DrawImageAnchored(small, leftAnchorX(), smallLogoTop, 0.5, 0)

	dc.DrawImageAnchored(logo, rightAnchorX(), CanvasHeight/2, 0.5, 0.5)

	base, ok := dc.Image().(*image.RGBA)
	if !ok {
		return nil, errors.New(errors.ErrCodeInternal, "unexpected template image type %T", dc.Image())
	}
	return &Template{base: base}, nil
}

// NewCanvas returns a drawing context over a fresh copy of the base
// pixel buffer.
func (t *Template) NewCanvas() *gg.Context {
	clone := &image.RGBA{
		Pix:    make([]uint8, len(t.base.Pix)),
		Stride: t.base.Stride,
		Rect:   t.base.Rect,
	}
	copy(clone.Pix, t.base.Pix)
	return gg.NewContextForRGBA(clone)
}

// Base returns the shared base image. Callers must not mutate it.
func (t *Template) Base() image.Image {
	return t.base
}

// leftAnchorX is the horizontal center of the text region.
func leftAnchorX() int {
	w := float64(CanvasWidth)
	return int(w * leftAnchorFrac)
}

// rightAnchorX is the horizontal center of the portrait region.
func rightAnchorX() int {
	w := float64(CanvasWidth)
	return int(w * rightAnchorFrac)
}

package slide

import (
	"context"
	"image"
	"strings"

	"github.com/fogleman/gg"

	"github.com/classdeck/classdeck/pkg/errors"
	"github.com/classdeck/classdeck/pkg/layout"
	"github.com/classdeck/classdeck/pkg/photos"
	"github.com/classdeck/classdeck/pkg/report"
	"github.com/classdeck/classdeck/pkg/roster"
)

// Composer renders slides from a shared template.
type Composer struct {
	template  *Template
	nameFont  layout.FaceSource
	awardFont layout.FaceSource
	resizer   *photos.Resizer
	rep       *report.Reporter
}

// NewComposer creates a composer. The resizer may be nil when no
// student has a portrait (portraits then fail loudly if one appears).
func NewComposer(t *Template, nameFont, awardFont layout.FaceSource, resizer *photos.Resizer, rep *report.Reporter) *Composer {
	return &Composer{
		template:  t,
		nameFont:  nameFont,
		awardFont: awardFont,
		resizer:   resizer,
		rep:       rep,
	}
}

// Compose renders one student's slide. The caller owns the returned
// image; the template is never mutated.
//
// A layout that cannot fit is a hard error for the slide: clipped text
// must never reach the output document.
func (c *Composer) Compose(ctx context.Context, s *roster.Student) (image.Image, error) {
	dc := c.template.NewCanvas()

	awards := s.Awards
	if len(awards) > maxAwards {
		c.rep.Report(report.CodeTooManyAwards, "more than %d awards for %s (%s)", maxAwards, s.FullName(), s.ID)
		awards = []string{strings.Join(awards, ", ")}
	}

	if err := c.drawName(dc, s.FullName(), len(awards) > 0); err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "slide for %s", s.FullName())
	}
	if len(awards) > 0 {
		if err := c.drawAwards(dc, awards); err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "slide for %s", s.FullName())
		}
	}

	if s.PhotoPath != "" {
		portrait, err := c.resizer.Portrait(ctx, s.PhotoPath)
		if err != nil {
			return nil, err
		}
		dc.DrawImageAnchored(portrait, rightAnchorX(), CanvasHeight/2, 0.5, 0.5)
	}

	return dc.Image(), nil
}

// drawName fits and draws the student name in the left region. The
// block shifts upward when achievements will be drawn below it.
func (c *Composer) drawName(dc *gg.Context, name string, hasAwards bool) error {
	h := float64(CanvasHeight)
	start := int(h * nameStartSizeFrac)
	res, err := layout.Fit(c.nameFont, name, start, CanvasWidth*nameMaxWidthFrac, 0, 0)
	if err != nil {
		return err
	}

	centerY := CanvasHeight * nameCenterFrac
	if hasAwards {
		centerY = CanvasHeight * nameCenterWithAwardsFrac
	}

	face, err := c.nameFont.Face(res.Size)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)
	dc.SetHexColor(nameColor)
	drawBlock(dc, res, float64(leftAnchorX()), centerY)
	return nil
}

// drawAwards fits and draws the achievement block below the name. Each
// award is pre-wrapped at a fixed column width so only the font size
// varies during the fit search, never the line structure.
func (c *Composer) drawAwards(dc *gg.Context, awards []string) error {
	wrapped := make([]string, len(awards))
	for i, a := range awards {
		wrapped[i] = layout.Wrap(a, layout.DefaultWrapColumns)
	}
	block := strings.Join(wrapped, "\n")

	start := int(CanvasHeight * awardStartSizeFrac)
	res, err := layout.Fit(c.awardFont, block, start,
		CanvasWidth*awardMaxWidthFrac,
		CanvasHeight*awardMaxHeightFrac,
		CanvasHeight*awardSpacingFrac)
	if err != nil {
		return err
	}

	face, err := c.awardFont.Face(res.Size)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)
	dc.SetHexColor(awardColor)
	drawBlock(dc, res, float64(leftAnchorX()), CanvasHeight*awardCenterFrac)
	return nil
}

// drawBlock draws a fitted block with its center at (centerX, centerY),
// each line centered horizontally.
func drawBlock(dc *gg.Context, res *layout.Result, centerX, centerY float64) {
	top := centerY - res.Height/2
	for i, line := range res.Lines {
		baseline := top + float64(i)*(res.LineHeight+res.Spacing) + res.Ascent
		dc.DrawString(line.Text, centerX-line.Width/2, baseline)
	}
}

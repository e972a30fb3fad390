package slide

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/classdeck/classdeck/pkg/cache"
	"github.com/classdeck/classdeck/pkg/photos"
	"github.com/classdeck/classdeck/pkg/report"
	"github.com/classdeck/classdeck/pkg/roster"
)

// basicSource serves the fixed 7x13 bitmap face at every size. Its
// metrics are constant, so fits succeed at the starting size and the
// drawn glyph positions are fully deterministic.
type basicSource struct{}

func (basicSource) Face(size int) (font.Face, error) {
	return basicfont.Face7x13, nil
}

func writeLogo(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "logo.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create logo: %v", err)
	}
	defer f.Close()
	img := imaging.New(100, 50, image.White.C)
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode logo: %v", err)
	}
	return path
}

func newTestComposer(t *testing.T, rep *report.Reporter) *Composer {
	t.Helper()
	tpl, err := NewTemplate(writeLogo(t))
	if err != nil {
		t.Fatalf("NewTemplate: %v", err)
	}
	resizer := photos.NewResizer(cache.NewNullCache(), PortraitHeight)
	return NewComposer(tpl, basicSource{}, basicSource{}, resizer, rep)
}

// litRows returns the rows in [y0, y1) with at least one pixel in
// x ∈ [x0, x1) that differs from the slide background.
func litRows(t *testing.T, img image.Image, x0, x1, y0, y1 int) []int {
	t.Helper()
	bg := img.At(0, CanvasHeight-1) // bottom-left corner is always background
	var rows []int
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if img.At(x, y) != bg {
				rows = append(rows, y)
				break
			}
		}
	}
	return rows
}

func TestNewTemplate(t *testing.T) {
	tpl, err := NewTemplate(writeLogo(t))
	if err != nil {
		t.Fatalf("NewTemplate: %v", err)
	}

	bounds := tpl.Base().Bounds()
	if bounds.Dx() != CanvasWidth || bounds.Dy() != CanvasHeight {
		t.Errorf("template bounds = %v, want %dx%d", bounds, CanvasWidth, CanvasHeight)
	}
}

func TestNewTemplateMissingLogo(t *testing.T) {
	_, err := NewTemplate(filepath.Join(t.TempDir(), "absent.png"))
	if err == nil {
		t.Error("NewTemplate with missing logo: err = nil, want error")
	}
}

func TestNewCanvasIsolation(t *testing.T) {
	tpl, err := NewTemplate(writeLogo(t))
	if err != nil {
		t.Fatalf("NewTemplate: %v", err)
	}

	before := tpl.Base().At(0, 0)

	// Scribbling over one canvas must not leak into the template.
	dc := tpl.NewCanvas()
	dc.SetHexColor("#ff0000")
	dc.Clear()

	if got := tpl.Base().At(0, 0); got != before {
		t.Errorf("template mutated through canvas copy: %v != %v", got, before)
	}
	if got := tpl.NewCanvas().Image().At(0, 0); got != before {
		t.Errorf("second canvas saw first canvas's drawing: %v != %v", got, before)
	}
}

func TestComposeNameOnly(t *testing.T) {
	var rep report.Reporter
	c := newTestComposer(t, &rep)

	s := roster.Student{ID: "1001", FirstName: "Mai", LastName: "Nguyen"}
	img, err := c.Compose(context.Background(), &s)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != CanvasWidth || bounds.Dy() != CanvasHeight {
		t.Fatalf("slide bounds = %v", bounds)
	}

	// Without awards the name sits at the lower vertical anchor (45%
	// of height ≈ 486) and nothing is drawn in the achievement region.
	name := litRows(t, img, 0, CanvasWidth/2, 300, 600)
	if len(name) == 0 {
		t.Fatal("no name pixels drawn in the left region")
	}
	for _, y := range name {
		if y < 470 || y > 500 {
			t.Errorf("name pixel at row %d, want rows near 486", y)
		}
	}
	if below := litRows(t, img, 0, CanvasWidth/2, 600, 900); len(below) != 0 {
		t.Errorf("unexpected pixels in achievement region rows %v", below)
	}
	if rep.Count() != 0 {
		t.Errorf("unexpected issues: %v", rep.Issues())
	}
}

func TestComposeWithAwards(t *testing.T) {
	var rep report.Reporter
	c := newTestComposer(t, &rep)

	s := roster.Student{
		ID:        "1002",
		FirstName: "Alex",
		LastName:  "Chen",
		Awards:    []string{"Honour Roll", "Ontario Scholar"},
	}
	img, err := c.Compose(context.Background(), &s)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	// With awards the name shifts up to the 40% anchor (≈432)…
	name := litRows(t, img, 0, CanvasWidth/2, 300, 600)
	if len(name) == 0 {
		t.Fatal("no name pixels drawn")
	}
	for _, y := range name {
		if y < 415 || y > 450 {
			t.Errorf("name pixel at row %d, want rows near 432", y)
		}
	}

	// …and the achievement block appears around 2/3 height (≈720).
	awards := litRows(t, img, 0, CanvasWidth/2, 600, 900)
	if len(awards) == 0 {
		t.Error("no achievement pixels drawn")
	}
	for _, y := range awards {
		if y < 680 || y > 760 {
			t.Errorf("achievement pixel at row %d, want rows near 720", y)
		}
	}
}

func TestComposeTooManyAwards(t *testing.T) {
	var rep report.Reporter
	c := newTestComposer(t, &rep)

	s := roster.Student{
		ID:        "1003",
		FirstName: "Rio",
		LastName:  "Diaz",
		Awards:    []string{"A", "B", "C", "D"},
	}
	if _, err := c.Compose(context.Background(), &s); err != nil {
		t.Fatalf("Compose: %v", err)
	}

	if got := rep.CountByCode(report.CodeTooManyAwards); got != 1 {
		t.Errorf("CodeTooManyAwards count = %d, want 1", got)
	}
	// The collapse is a rendering fallback; the record itself keeps
	// its full award list.
	if len(s.Awards) != 4 {
		t.Errorf("student award list mutated to %v", s.Awards)
	}
}

func TestComposeWithPortrait(t *testing.T) {
	var rep report.Reporter
	c := newTestComposer(t, &rep)

	photo := filepath.Join(t.TempDir(), "1004.jpg")
	if err := imaging.Save(imaging.New(40, 80, image.White.C), photo); err != nil {
		t.Fatalf("save portrait: %v", err)
	}

	s := roster.Student{ID: "1004", FirstName: "Min", LastName: "Kim", PhotoPath: photo}
	img, err := c.Compose(context.Background(), &s)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	// The portrait is pasted centered at the right anchor; its center
	// pixel must be the portrait's white, not the background.
	r, g, b, _ := img.At(rightAnchorX(), CanvasHeight/2).RGBA()
	if r>>8 < 200 || g>>8 < 200 || b>>8 < 200 {
		t.Errorf("portrait center pixel = (%d,%d,%d), want white", r>>8, g>>8, b>>8)
	}
}

package pipeline

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/charmbracelet/log"

	"github.com/classdeck/classdeck/pkg/cache"
	"github.com/classdeck/classdeck/pkg/deck"
	"github.com/classdeck/classdeck/pkg/errors"
	"github.com/classdeck/classdeck/pkg/fonts"
	"github.com/classdeck/classdeck/pkg/layout"
	"github.com/classdeck/classdeck/pkg/photos"
	"github.com/classdeck/classdeck/pkg/report"
	"github.com/classdeck/classdeck/pkg/roster"
	"github.com/classdeck/classdeck/pkg/slide"
)

// Runner encapsulates pipeline execution with portrait caching.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store run results, so one Runner can serve multiple runs.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given portrait cache.
// If c is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute runs the complete load → compose → write pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	var rep report.Reporter

	result, students, err := r.load(&opts, &rep)
	if err != nil {
		return nil, err
	}

	// Stage 2: Compose
	composeStart := time.Now()
	composer, err := r.newComposer(&opts, &rep)
	if err != nil {
		return nil, err
	}

	pages := make([]image.Image, 0, len(students))
	for i := range students {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		img, err := composer.Compose(ctx, &students[i])
		if err != nil {
			return nil, err
		}
		pages = append(pages, img)
	}
	result.Slides = len(pages)
	result.Stats.ComposeTime = time.Since(composeStart)

	r.Logger.Info("composed slides",
		"slides", len(pages),
		"duration", result.Stats.ComposeTime)

	// Stage 3: Write
	writeStart := time.Now()
	if err := deck.WritePDF(pages, opts.OutputPath); err != nil {
		return nil, err
	}
	result.Stats.WriteTime = time.Since(writeStart)

	r.Logger.Info("wrote document",
		"path", opts.OutputPath,
		"duration", result.Stats.WriteTime)

	result.Issues = rep.Issues()
	return result, nil
}

// Check runs only the load stage: roster parsing and photo matching.
// It reports the same data issues a render run would, without touching
// fonts, the logo, or the output path.
func (r *Runner) Check(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateForCheck(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	var rep report.Reporter
	result, _, err := r.load(&opts, &rep)
	if err != nil {
		return nil, err
	}
	result.Issues = rep.Issues()
	return result, nil
}

// load parses the roster and resolves portraits, filling the result's
// load stats. An empty roster is an explicit NO_SLIDES error.
func (r *Runner) load(opts *Options, rep *report.Reporter) (*Result, []roster.Student, error) {
	start := time.Now()

	rr, err := roster.Load(opts.RosterPath, rep)
	if err != nil {
		return nil, nil, err
	}
	if len(rr.Students) == 0 {
		return nil, nil, errors.New(errors.ErrCodeNoSlides, "no attending students in %s", opts.RosterPath)
	}

	if err := photos.Resolve(rr.Students, opts.PhotoDirs, rr.NotAttending, rep); err != nil {
		return nil, nil, err
	}

	result := &Result{
		Students: len(rr.Students),
		Excluded: len(rr.NotAttending),
	}
	result.Stats.LoadTime = time.Since(start)

	r.Logger.Info("loaded roster",
		"students", result.Students,
		"excluded", result.Excluded,
		"duration", result.Stats.LoadTime)

	return result, rr.Students, nil
}

// newComposer builds the slide composer from the options: template,
// font faces, and the cached portrait resizer.
func (r *Runner) newComposer(opts *Options, rep *report.Reporter) (*slide.Composer, error) {
	template, err := slide.NewTemplate(opts.LogoPath)
	if err != nil {
		return nil, err
	}

	nameFace, err := r.faceSource(opts.NameFace, opts.NameFontPath)
	if err != nil {
		return nil, err
	}
	awardFace, err := r.faceSource(opts.AwardFace, opts.AwardFontPath)
	if err != nil {
		return nil, err
	}

	resizer := photos.NewResizer(r.Cache, slide.PortraitHeight)
	return slide.NewComposer(template, nameFace, awardFace, resizer, rep), nil
}

// faceSource returns the injected source if set, otherwise loads the
// font from disk.
func (r *Runner) faceSource(injected layout.FaceSource, path string) (layout.FaceSource, error) {
	if injected != nil {
		return injected, nil
	}
	return fonts.Load(path)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

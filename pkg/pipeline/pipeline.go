// Package pipeline runs the complete roster → slides → PDF pipeline.
//
// The pipeline consists of three stages:
//
//  1. Load: parse the roster export and resolve portrait photos
//  2. Compose: render one slide image per attending student
//  3. Write: assemble the slides into a single PDF
//
// The check command runs only the first stage; render runs all three.
// Centralizing the stages here keeps the CLI thin and gives tests a
// single entry point.
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/classdeck/classdeck/pkg/layout"
	"github.com/classdeck/classdeck/pkg/report"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
type Options struct {
	// Load options
	RosterPath string   // tab-separated roster export (required)
	PhotoDirs  []string // portrait directories in priority order

	// Compose options
	LogoPath      string // school logo image (required for render)
	NameFontPath  string // font for the student name
	AwardFontPath string // font for the achievement block

	// Write options
	OutputPath string // destination PDF (required for render)

	// Runtime options. The face sources override font loading from
	// disk when set; tests use this to render without font files.
	NameFace  layout.FaceSource
	AwardFace layout.FaceSource
	Logger    *log.Logger

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Students is the number of attending students in the roster.
	Students int

	// Excluded is the number of roster rows marked not attending.
	Excluded int

	// Slides is the number of slides written to the output document.
	// Zero for check runs.
	Slides int

	// Issues are the non-fatal data problems found during the run.
	Issues []report.Issue

	// Stats contains timing information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	LoadTime    time.Duration
	ComposeTime time.Duration
	WriteTime   time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields for a full render run.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForCheck(); err != nil {
		return err
	}
	if o.OutputPath == "" {
		return fmt.Errorf("output path is required")
	}
	if o.LogoPath == "" {
		return fmt.Errorf("logo path is required")
	}
	if o.NameFace == nil && o.NameFontPath == "" {
		return fmt.Errorf("name font is required")
	}
	if o.AwardFace == nil && o.AwardFontPath == "" {
		return fmt.Errorf("award font is required")
	}
	o.validated = true
	return nil
}

// ValidateForCheck checks required fields for the load stage only.
func (o *Options) ValidateForCheck() error {
	if o.RosterPath == "" {
		return fmt.Errorf("roster path is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/classdeck/classdeck/pkg/config"
	"github.com/classdeck/classdeck/pkg/report"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	configPath string // configuration file path
	roster     string // roster file override
	output     string // output PDF override
	noCache    bool   // disable the portrait cache
}

// renderCommand creates the render command, the main entry point: it
// runs the full roster → slides → PDF pipeline.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{configPath: defaultConfigFile}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the slideshow PDF",
		Long: `Render the slideshow PDF.

Reads the roster, matches portrait photos from the configured photo
directories, composes one slide per attending student, and writes the
finished document. Data problems that do not prevent rendering (missing
photos, malformed roster rows) are listed after the run.

Resized portraits are cached on disk so subsequent runs are fast; use
--no-cache to force resizing from the originals.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.configPath, cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}
			if opts.roster != "" {
				cfg.Roster = opts.roster
			}
			if opts.output != "" {
				cfg.Output = opts.output
			}
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runRender(ctx, cfg, opts.noCache)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", opts.configPath, "configuration file")
	cmd.Flags().StringVar(&opts.roster, "roster", "", "roster file (overrides config)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output PDF (overrides config)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the portrait cache")

	return cmd
}

// runRender executes the pipeline and reports the outcome.
func (c *CLI) runRender(ctx context.Context, cfg *config.Config, noCache bool) error {
	logger := loggerFromContext(ctx)
	logger.Debugf("Using roster %s", cfg.Roster)

	runner := c.newRunner(cfg, noCache)
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering slides...")
	spinner.Start()

	result, err := runner.Execute(ctx, pipelineOptions(cfg))
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	printSuccess("Rendered %d slides", result.Slides)
	printFile(cfg.Output)
	printStats(result.Students, result.Excluded, len(result.Issues))
	printIssues(result.Issues)
	return nil
}

// printIssues lists the non-fatal data problems found during a run.
func printIssues(issues []report.Issue) {
	if len(issues) == 0 {
		return
	}
	printWarning("%d data issues need review", len(issues))
	for _, issue := range issues {
		printDetail("%s", issue)
	}
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/classdeck/classdeck/pkg/config"
)

// checkCommand creates the check command: a dry run of the load stage
// that surfaces roster and photo problems before the ceremony rehearsal.
func (c *CLI) checkCommand() *cobra.Command {
	var (
		configPath = defaultConfigFile
		roster     string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the roster and photo matching without rendering",
		Long: `Validate the roster and photo matching without rendering.

Parses the roster and resolves portraits exactly like render does, then
lists every data issue found: missing student numbers, duplicate IDs,
malformed rows, unmatched photos, and students without a portrait.
No fonts, logo, or output file are touched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}
			if roster != "" {
				cfg.Roster = roster
			}
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runCheck(ctx, cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", configPath, "configuration file")
	cmd.Flags().StringVar(&roster, "roster", "", "roster file (overrides config)")

	return cmd
}

// runCheck runs the load stage and prints the findings.
func (c *CLI) runCheck(ctx context.Context, cfg *config.Config) error {
	logger := loggerFromContext(ctx)

	runner := c.newRunner(cfg, true)
	defer runner.Close()

	prog := newProgress(logger)
	result, err := runner.Check(ctx, pipelineOptions(cfg))
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}
	prog.done(fmt.Sprintf("Checked %d students", result.Students))

	if len(result.Issues) == 0 {
		printSuccess("Roster is clean")
	} else {
		printIssues(result.Issues)
	}
	printStats(result.Students, result.Excluded, len(result.Issues))
	return nil
}

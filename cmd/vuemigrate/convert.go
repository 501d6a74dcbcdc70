package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-vuemigrate/pkg/orchestrator"
)

var convertCmd = &cobra.Command{
	Use:   "convert [flags] [file...]",
	Short: "Convert components to the composition API",
	Long: `Convert rewrites each component's options script into a composition
script. Without arguments input.txt is converted into output.txt.`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringP("out", "o", "", "output file for a single input")
	convertCmd.Flags().String("out-dir", "", "directory receiving one converted file per input")
	convertCmd.Flags().Bool("stdout", false, "print converted documents to stdout")
	convertCmd.Flags().Bool("script-only", false, "write only the generated <script> block")
	convertCmd.Flags().String("formatter", "", "formatter name (beautify|passthrough), overrides the settings file")
	convertCmd.Flags().Int("width", -1, "preferred line width, 0 disables wrapping; overrides the settings file")
	convertCmd.Flags().IntP("jobs", "j", 0, "maximum conversions in flight (default GOMAXPROCS)")
	convertCmd.Flags().BoolP("force", "f", false, "overwrite existing outputs without asking")
}

func runConvert(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	flags := cmd.Flags()
	out, _ := flags.GetString("out")
	outDir, _ := flags.GetString("out-dir")
	toStdout, _ := flags.GetBool("stdout")
	scriptOnly, _ := flags.GetBool("script-only")
	formatter, _ := flags.GetString("formatter")
	width, _ := flags.GetInt("width")
	jobsLimit, _ := flags.GetInt("jobs")
	force, _ := flags.GetBool("force")

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if formatter != "" {
		settings.Format.Name = formatter
	}
	if width >= 0 {
		settings.Format.Width = width
	}
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}

	jobs, err := planJobs(args, planOptions{out: out, outDir: outDir, stdout: toStdout})
	if err != nil {
		return err
	}

	var ask confirmer
	if isTerminal(os.Stdin) && isTerminal(os.Stdout) {
		ask = surveyConfirmer{}
	}
	jobs, skipped, err := filterOverwrites(cmd.Context(), jobs, force, ask)
	if err != nil {
		return err
	}

	orch := orchestrator.New(append(settings.Options(), orchestrator.WithLogger(logger))...)
	render := renderDocument
	if scriptOnly {
		render = renderScript
	}
	results, err := runJobs(cmd.Context(), orch, jobs, jobsLimit, render)
	if err != nil {
		return err
	}

	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	failed, err := reportResults(cmd.OutOrStdout(), cmd.ErrOrStderr(), results, skipped, toStdout, quiet)
	if err != nil {
		return fmt.Errorf("convert: write report: %w", err)
	}
	if failed > 0 {
		return fmt.Errorf("convert: %d of %d files failed", failed, len(results))
	}
	return nil
}

// reportResults prints converted documents or a status line per file and
// returns the number of failures. Writing stops at the first output error.
func reportResults(stdout, stderr io.Writer, results []jobResult, skipped []job, toStdout, quiet bool) (int, error) {
	failed := 0
	for _, res := range results {
		if res.err != nil {
			failed++
			if err := writeLine(stderr, "%s %s: %v", color.RedString("failed"), res.job.input, res.err); err != nil {
				return failed, err
			}
			continue
		}
		if toStdout {
			if _, err := fmt.Fprint(stdout, res.content); err != nil {
				return failed, err
			}
			continue
		}
		if quiet {
			continue
		}
		status := color.GreenString("converted")
		if !res.changed {
			status = color.YellowString("unchanged")
		}
		if err := writeLine(stdout, "%s %s -> %s", status, res.job.input, res.job.output); err != nil {
			return failed, err
		}
	}
	if quiet {
		return failed, nil
	}
	for _, j := range skipped {
		if err := writeLine(stderr, "%s %s (kept existing %s)", color.YellowString("skipped"), j.input, j.output); err != nil {
			return failed, err
		}
	}
	return failed, nil
}

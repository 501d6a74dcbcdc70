package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-vuemigrate/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write a markdown report comparing a component with its conversion",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().String("input", defaultInput, "original component")
	reportCmd.Flags().String("output", defaultOutput, "converted component")
	reportCmd.Flags().String("expected", "", "hand-written expectation to compare against")
	reportCmd.Flags().String("report", "", "report destination (stdout if empty)")
	reportCmd.Flags().Bool("strict", false, "exit with an error when the output differs from --expected")
}

func runReport(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	flags := cmd.Flags()
	inputPath, _ := flags.GetString("input")
	outputPath, _ := flags.GetString("output")
	expectedPath, _ := flags.GetString("expected")
	reportPath, _ := flags.GetString("report")
	strict, _ := flags.GetBool("strict")

	doc := report.Document{}
	var err error
	if doc.Input, err = readText(inputPath); err != nil {
		return err
	}
	if doc.Output, err = readText(outputPath); err != nil {
		return err
	}
	if expectedPath != "" {
		if doc.Expected, err = readText(expectedPath); err != nil {
			return err
		}
		doc.HasExpected = true
	}

	markdown, err := report.Markdown(doc)
	if err != nil {
		return err
	}
	if reportPath == "" {
		if _, err := fmt.Fprint(cmd.OutOrStdout(), markdown); err != nil {
			return err
		}
	} else if err := os.WriteFile(reportPath, []byte(markdown), 0o644); err != nil {
		return fmt.Errorf("report: write %s: %w", reportPath, err)
	}

	if !doc.HasExpected {
		return nil
	}
	cmp := report.Compare(doc.Expected, doc.Output)
	if cmp.Match {
		return writeLine(cmd.ErrOrStderr(), "%s output matches %s", color.GreenString("ok"), expectedPath)
	}
	if err := writeLine(cmd.ErrOrStderr(), "%s output differs from %s at line %d", color.YellowString("diff"), expectedPath, cmp.Line); err != nil {
		return err
	}
	if strict {
		return fmt.Errorf("report: output differs from %s", expectedPath)
	}
	return nil
}

func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("report: read %s: %w", path, err)
	}
	return string(data), nil
}

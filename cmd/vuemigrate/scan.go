package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-vuemigrate/pkg/orchestrator"
	"github.com/goliatone/go-vuemigrate/pkg/sfc"
)

var scanCmd = &cobra.Command{
	Use:   "scan <file>",
	Short: "Print the scanned component model as YAML",
	Args:  cobra.ExactArgs(1),
	RunE:  runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}

	orch := orchestrator.New(append(settings.Options(), orchestrator.WithLogger(logger))...)
	component, err := orch.Scan(cmd.Context(), orchestrator.Request{Source: sfc.SourceFromFile(args[0])})
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(component); err != nil {
		return err
	}
	return enc.Close()
}

package main

import (
	"encoding/json"
	"fmt"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Build metadata, overridable via -ldflags.
var (
	Version   = "0.1.0-dev"
	GitCommit = ""
	BuildDate = ""
)

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

var versionFormat string

func init() {
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show build information",
	RunE: func(cmd *cobra.Command, args []string) error {
		payload := versionPayload{
			Tool:      "vuemigrate",
			Version:   Version,
			GoVersion: runtime.Version(),
			GitCommit: GitCommit,
			BuildDate: BuildDate,
		}
		out := cmd.OutOrStdout()
		switch strings.ToLower(versionFormat) {
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(payload)
		case "pretty":
			if err := writeLine(out, "%s %s (%s)", payload.Tool, color.New(color.FgGreen, color.Bold).Sprint(payload.Version), payload.GoVersion); err != nil {
				return err
			}
			if payload.GitCommit != "" {
				if err := writeLine(out, "commit: %s", payload.GitCommit); err != nil {
					return err
				}
			}
			if payload.BuildDate != "" {
				return writeLine(out, "built:  %s", payload.BuildDate)
			}
			return nil
		default:
			return fmt.Errorf("version: unsupported format %q", versionFormat)
		}
	},
}

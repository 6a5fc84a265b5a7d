package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/hestjs/create-hest-app/internal/branding"
	"github.com/hestjs/create-hest-app/internal/scaffold"
	"github.com/spf13/cobra"
)

var (
	versionShort bool
	versionJSON  bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print version info as JSON")
	rootCmd.AddCommand(versionCmd)
}

type versionInfo struct {
	Version   string   `json:"version"`
	Commit    string   `json:"commit"`
	Date      string   `json:"date"`
	GoVersion string   `json:"go"`
	Templates []string `json:"templates"`
}

func currentVersionInfo() versionInfo {
	info := versionInfo{
		Version:   buildVersion,
		Commit:    buildCommit,
		Date:      buildDate,
		GoVersion: runtime.Version(),
	}
	if catalog, err := scaffold.LoadCatalog(); err == nil {
		info.Templates = catalog.IDs()
	}
	return info
}

func (v versionInfo) write(w io.Writer) {
	fmt.Fprintf(w, "%s %s\n", branding.CLIName(), v.Version)
	fmt.Fprintf(w, "  commit:    %s\n", v.Commit)
	fmt.Fprintf(w, "  built:     %s (%s)\n", v.Date, v.GoVersion)
	if len(v.Templates) > 0 {
		fmt.Fprintf(w, "  templates: %s\n", strings.Join(v.Templates, ", "))
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and bundled template information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		info := currentVersionInfo()

		switch {
		case versionShort:
			fmt.Fprintln(out, info.Version)
		case versionJSON:
			data, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling version info: %w", err)
			}
			fmt.Fprintln(out, string(data))
		default:
			info.write(out)
		}
		return nil
	},
}

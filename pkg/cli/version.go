package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/getmockd/seedmock/internal/rng"
	"github.com/getmockd/seedmock/pkg/catalog"
	"github.com/getmockd/seedmock/pkg/cli/internal/output"
	"github.com/getmockd/seedmock/pkg/config"
	"github.com/spf13/cobra"
)

// VersionOutput is the `version --json` output. Stream identifies the
// random stream, so two builds with the same Stream produce the same data
// for the same seed.
type VersionOutput struct {
	Version   string   `json:"version"`
	Commit    string   `json:"commit"`
	Date      string   `json:"date"`
	Go        string   `json:"go"`
	Platform  string   `json:"platform"`
	Stream    string   `json:"stream"`
	Sources   []string `json:"sources"`
	IDFormats []string `json:"idFormats"`
}

// versionInfo fills in what the linker flags left at their defaults from
// the module build info. info may be nil.
func versionInfo(info *debug.BuildInfo) VersionOutput {
	out := VersionOutput{
		Version:  Version,
		Commit:   Commit,
		Date:     BuildDate,
		Go:       runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
		Stream:   rng.Algorithm,
		Sources: []string{
			string(catalog.SourceOpenAPI),
			string(catalog.SourceProto),
			string(catalog.SourceClient),
		},
	}
	for _, f := range config.IDFormats() {
		out.IDFormats = append(out.IDFormats, string(f))
	}
	if info == nil {
		return out
	}

	if out.Version == "dev" && info.Main.Version != "" {
		out.Version = info.Main.Version
	}
	dirty := false
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if out.Commit == "none" {
				out.Commit = s.Value
			}
		case "vcs.time":
			if out.Date == "unknown" {
				out.Date = s.Value
			}
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if dirty {
		out.Commit += "-dirty"
	}
	return out
}

// displayVersion prefixes release versions with "v".
func displayVersion(v string) string {
	switch {
	case v == "", v == "dev", v == "(devel)", strings.HasPrefix(v, "v"):
		return v
	default:
		return "v" + v
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show seedmock version and generator stream",
	RunE: func(cmd *cobra.Command, args []string) error {
		info, _ := debug.ReadBuildInfo()
		out := versionInfo(info)

		w := cmd.OutOrStdout()
		if jsonOutput {
			return output.JSON(w, out)
		}
		fmt.Fprintf(w, "seedmock %s (%s, %s)\n", displayVersion(out.Version), out.Commit, out.Date)
		fmt.Fprintf(w, "%s %s\n", out.Go, out.Platform)
		fmt.Fprintf(w, "stream:     %s\n", out.Stream)
		fmt.Fprintf(w, "sources:    %s\n", strings.Join(out.Sources, ", "))
		fmt.Fprintf(w, "id formats: %s\n", strings.Join(out.IDFormats, ", "))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

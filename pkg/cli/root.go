package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Persistent flags available to all subcommands
	configPath  string
	logLevel    string
	logFormat   string
	jsonOutput  bool
	selectPath  string
	sourceName  string
	openapiSrcs []string
	protoSrcs   []string
	importPaths []string
	clientSrcs  []string

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "seedmock",
	Short: "seedmock generates deterministic mock data from API descriptions",
	Long: `seedmock synthesizes realistic, reproducible API responses from OpenAPI
documents, Protocol Buffer definitions and generated TypeScript client packages.

The same seed and index always produce the same item, and paginated listings
behave as if backed by a stable dataset without persisting anything.

Configuration can be provided via flags, SEEDMOCK_* environment variables,
or a YAML file passed with --config.`,
	SilenceUsage:  true,
	SilenceErrors: true, // errors are printed by Main
}

// Main runs the command line and returns the process exit code.
func Main() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Path to a YAML configuration file")
	flags.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&logFormat, "log-format", "", "Log format (text, json)")
	flags.BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
	flags.StringVar(&selectPath, "select", "", "JSONPath expression applied to JSON output")
	flags.StringVarP(&sourceName, "source", "s", "", "Source to generate from")
	flags.StringArrayVar(&openapiSrcs, "openapi", nil, "OpenAPI or Swagger document as [name=]path (repeatable)")
	flags.StringArrayVar(&protoSrcs, "proto", nil, "Proto file as [name=]path (repeatable)")
	flags.StringArrayVarP(&importPaths, "import-path", "I", nil, "Proto import path (repeatable)")
	flags.StringArrayVar(&clientSrcs, "client", nil, "Generated client package as [name=]dir (repeatable)")
}

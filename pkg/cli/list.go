package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/getmockd/seedmock/pkg/catalog"
	"github.com/getmockd/seedmock/pkg/cli/internal/output"
	"github.com/getmockd/seedmock/pkg/schema"
)

// ModelOutput is one model in `models --json` output.
type ModelOutput struct {
	Source string   `json:"source"`
	Name   string   `json:"name"`
	Enum   []string `json:"enum,omitempty"`
	Keys   []string `json:"keys,omitempty"`
}

// EndpointOutput is one endpoint in `endpoints --json` output.
type EndpointOutput struct {
	Source string `json:"source"`
	schema.Endpoint
}

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List loaded sources",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(s *session, out io.Writer) error {
			infos := s.catalog.Sources()
			if structured() {
				if infos == nil {
					infos = []catalog.SourceInfo{}
				}
				return emit(out, infos)
			}
			w := output.Table(out)
			fmt.Fprintln(w, "NAME\tKIND\tORIGIN")
			for _, info := range infos {
				fmt.Fprintf(w, "%s\t%s\t%s\n", info.Name, info.Kind, info.Origin)
			}
			return w.Flush()
		})
	},
}

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List models and their wire keys",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(s *session, out io.Writer) error {
			names, err := s.sources()
			if err != nil {
				return err
			}
			var rows []ModelOutput
			for _, src := range names {
				models, err := s.catalog.Models(src)
				if err != nil {
					return err
				}
				for _, name := range models.Names() {
					m := models[name]
					rows = append(rows, ModelOutput{
						Source: src,
						Name:   name,
						Enum:   m.EnumValues,
						Keys:   m.WireKeys(),
					})
				}
			}
			if structured() {
				if rows == nil {
					rows = []ModelOutput{}
				}
				return emit(out, rows)
			}
			w := output.Table(out)
			fmt.Fprintln(w, "SOURCE\tMODEL\tFIELDS")
			for _, r := range rows {
				fields := strings.Join(r.Keys, ", ")
				if len(r.Enum) > 0 {
					fields = "enum: " + strings.Join(r.Enum, " | ")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", r.Source, r.Name, fields)
			}
			return w.Flush()
		})
	},
}

var endpointsCmd = &cobra.Command{
	Use:   "endpoints",
	Short: "List endpoints recovered from each source",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(s *session, out io.Writer) error {
			names, err := s.sources()
			if err != nil {
				return err
			}
			var rows []EndpointOutput
			for _, src := range names {
				eps, err := s.catalog.Endpoints(src)
				if err != nil {
					return err
				}
				for _, ep := range eps {
					rows = append(rows, EndpointOutput{Source: src, Endpoint: ep})
				}
			}
			if structured() {
				if rows == nil {
					rows = []EndpointOutput{}
				}
				return emit(out, rows)
			}
			w := output.Table(out)
			fmt.Fprintln(w, "SOURCE\tMETHOD\tPATH\tOPERATION\tRESPONSE")
			for _, r := range rows {
				resp := r.ResponseType
				if r.ResponseIsArray {
					resp += "[]"
				}
				if resp == "" {
					resp = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.Source, r.Method, r.Path, r.OperationID, resp)
			}
			return w.Flush()
		})
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(endpointsCmd)
}

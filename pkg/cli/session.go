package cli

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/getmockd/seedmock/pkg/catalog"
	"github.com/getmockd/seedmock/pkg/config"
	"github.com/getmockd/seedmock/pkg/logging"
)

// session is the state one command invocation works on.
type session struct {
	cfg     config.Config
	log     *slog.Logger
	catalog *catalog.Catalog
}

// loadConfig merges defaults, --config, the environment and log flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}
	return cfg, nil
}

// newSession loads configuration and registers every source flag.
func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log := logging.FromStrings(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())

	c := catalog.New(cfg)
	c.SetLogger(log)
	s := &session{cfg: cfg, log: log, catalog: c}

	for _, flag := range openapiSrcs {
		name, path, err := splitSource(flag)
		if err != nil {
			return nil, s.fail(err)
		}
		if err := c.LoadOpenAPI(name, path); err != nil {
			return nil, s.fail(err)
		}
	}
	for _, flag := range protoSrcs {
		name, path, err := splitSource(flag)
		if err != nil {
			return nil, s.fail(err)
		}
		if err := c.LoadProto(name, []string{path}, importPaths); err != nil {
			return nil, s.fail(err)
		}
	}
	for _, flag := range clientSrcs {
		name, dir, err := splitSource(flag)
		if err != nil {
			return nil, s.fail(err)
		}
		if err := c.LoadClient(name, dir); err != nil {
			return nil, s.fail(err)
		}
	}
	return s, nil
}

func (s *session) fail(err error) error {
	_ = s.catalog.Close()
	return err
}

// Close releases the catalog.
func (s *session) Close() error {
	return s.catalog.Close()
}

// source returns the --source value, or the only loaded source.
func (s *session) source() (string, error) {
	if sourceName != "" {
		return sourceName, nil
	}
	sources := s.catalog.Sources()
	switch len(sources) {
	case 0:
		return "", ErrNoSources
	case 1:
		return sources[0].Name, nil
	default:
		return "", ErrSourceAmbiguous
	}
}

// sources returns the names to list: --source alone, or every source.
func (s *session) sources() ([]string, error) {
	if sourceName != "" {
		return []string{sourceName}, nil
	}
	infos := s.catalog.Sources()
	if len(infos) == 0 {
		return nil, ErrNoSources
	}
	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name
	}
	return names, nil
}

// splitSource parses "[name=]path". Without a name the base name of path,
// minus its extension, is used.
func splitSource(flag string) (name, path string, err error) {
	name, path, ok := strings.Cut(flag, "=")
	if !ok {
		path = flag
		base := filepath.Base(filepath.Clean(path))
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if name == "" || path == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSource, flag)
	}
	return name, path, nil
}

// withSession runs fn with a session closed afterwards.
func withSession(cmd *cobra.Command, fn func(s *session, out io.Writer) error) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s, cmd.OutOrStdout())
}

package clientscan

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/getmockd/seedmock/pkg/logging"
	"github.com/getmockd/seedmock/pkg/schema"
)

// ErrNoSources is returned when a package has no api or model sources.
var ErrNoSources = errors.New("no client sources found")

// Source globs, relative to the package root.
const (
	APIGlob   = "**/apis/**/*.ts"
	ModelGlob = "**/models/**/*.ts"
)

// skippedFiles are generator support files with no endpoints or models.
var skippedFiles = map[string]bool{
	"index.ts":   true,
	"runtime.ts": true,
}

// Package is the metadata recovered from one client package.
type Package struct {
	Models    schema.Models     `json:"models"`
	Endpoints []schema.Endpoint `json:"endpoints"`
}

// Endpoint returns the endpoint with the given operation ID.
func (p *Package) Endpoint(operationID string) (schema.Endpoint, bool) {
	for _, ep := range p.Endpoints {
		if ep.OperationID == operationID {
			return ep, true
		}
	}
	return schema.Endpoint{}, false
}

// Scanner scans client packages. It holds no per-package state.
type Scanner struct {
	log *slog.Logger
}

// NewScanner creates a scanner that logs nothing.
func NewScanner() *Scanner {
	return &Scanner{log: logging.Nop()}
}

// SetLogger sets the logger used for skip diagnostics.
func (s *Scanner) SetLogger(log *slog.Logger) {
	if log == nil {
		log = logging.Nop()
	}
	s.log = log
}

// ScanFS scans the package rooted at fsys.
func (s *Scanner) ScanFS(fsys fs.FS) (*Package, error) {
	apiFiles, err := sources(fsys, APIGlob)
	if err != nil {
		return nil, err
	}
	modelFiles, err := sources(fsys, ModelGlob)
	if err != nil {
		return nil, err
	}
	if len(apiFiles) == 0 && len(modelFiles) == 0 {
		return nil, ErrNoSources
	}

	pkg := &Package{Models: make(schema.Models)}
	parents := make(map[string][]string)
	for _, name := range modelFiles {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		mf := s.scanModelFile(name, string(data))
		for _, m := range mf.models {
			if _, dup := pkg.Models[m.Name]; dup {
				s.log.Debug("duplicate model declaration", "file", name, "model", m.Name)
				continue
			}
			pkg.Models[m.Name] = m
		}
		for child, ps := range mf.parents {
			parents[child] = append(parents[child], ps...)
		}
	}
	for _, name := range apiFiles {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		pkg.Endpoints = append(pkg.Endpoints, s.scanAPIFile(name, string(data))...)
	}

	inherit(pkg.Models, parents)
	resolveEnumRefs(pkg.Models)

	s.log.Debug("scanned client package",
		"apiFiles", len(apiFiles),
		"modelFiles", len(modelFiles),
		"models", len(pkg.Models),
		"endpoints", len(pkg.Endpoints))
	return pkg, nil
}

// sources lists the .ts files matching pattern, sorted, without
// declaration files, node_modules or generator support files.
func sources(fsys fs.FS, pattern string) ([]string, error) {
	matches, err := doublestar.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("expanding glob pattern %s: %w", pattern, err)
	}
	out := matches[:0]
	for _, m := range matches {
		base := path.Base(m)
		if skippedFiles[base] || strings.HasSuffix(base, ".d.ts") || strings.Contains(m, "node_modules/") {
			continue
		}
		out = append(out, m)
	}
	sort.Strings(out)
	return out, nil
}

// inherit prepends parent fields (interface extends, or a FromJSONTyped
// spread) that the child does not redeclare.
func inherit(models schema.Models, parents map[string][]string) {
	done := make(map[string]bool)
	var resolve func(name string, visiting map[string]bool)
	resolve = func(name string, visiting map[string]bool) {
		if done[name] || visiting[name] {
			return
		}
		visiting[name] = true
		child := models[name]
		for _, pname := range parents[name] {
			parent := models[pname]
			if child == nil || parent == nil || parent.IsEnum() {
				continue
			}
			resolve(pname, visiting)
			var merged []schema.Field
			for _, f := range parent.Fields {
				if _, ok := child.Field(f.Name); !ok {
					merged = append(merged, f)
				}
			}
			child.Fields = append(merged, child.Fields...)
		}
		delete(visiting, name)
		done[name] = true
	}
	names := make([]string, 0, len(parents))
	for name := range parents {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		resolve(name, make(map[string]bool))
	}
}

// resolveEnumRefs marks fields that point at enum models as strings.
func resolveEnumRefs(models schema.Models) {
	for _, m := range models {
		for i, f := range m.Fields {
			if ref := models.Lookup(f.RefType); ref != nil && ref.IsEnum() {
				m.Fields[i].Type = schema.TypeString
			}
		}
	}
}

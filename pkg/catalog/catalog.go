package catalog

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/getmockd/seedmock/pkg/clientscan"
	"github.com/getmockd/seedmock/pkg/config"
	"github.com/getmockd/seedmock/pkg/logging"
	"github.com/getmockd/seedmock/pkg/modelgen"
	"github.com/getmockd/seedmock/pkg/openapi"
	"github.com/getmockd/seedmock/pkg/paginate"
	"github.com/getmockd/seedmock/pkg/protomock"
	"github.com/getmockd/seedmock/pkg/provider"
	"github.com/getmockd/seedmock/pkg/schema"
	"github.com/getmockd/seedmock/pkg/snapshot"
)

// SourceKind identifies the backend of a source.
type SourceKind string

// Source kinds.
const (
	SourceOpenAPI SourceKind = "openapi"
	SourceProto   SourceKind = "proto"
	SourceClient  SourceKind = "client"
)

// SourceInfo describes one registered source.
type SourceInfo struct {
	Name   string     `json:"name"`
	Kind   SourceKind `json:"kind"`
	Origin string     `json:"origin,omitempty"`
}

// Stats reports cache occupancy.
type Stats struct {
	Sources        int `json:"sources"`
	Snapshots      int `json:"snapshots"`
	ClientPackages int `json:"clientPackages"`
	Providers      int `json:"providers"`
}

type source struct {
	info  SourceInfo
	doc   *openapi.Document
	proto *protomock.Schema

	// dir is the client package root, loaded through the client cache.
	dir string
}

// Catalog registers sources and serves generated data from them.
type Catalog struct {
	mu        sync.RWMutex
	sources   map[string]*source
	providers map[string]provider.ItemProvider

	store   *snapshot.Store
	pages   *paginate.PageManager
	cursors *paginate.CursorManager
	clients *clientscan.Cache
	policy  *provider.IDPolicy

	openapiGen *openapi.Generator
	protoGen   *protomock.Generator
	modelOpts  modelgen.Options

	log *slog.Logger
}

// New creates a catalog from cfg. The snapshot sweep loop is not running
// until Start is called.
func New(cfg config.Config) *Catalog {
	store := snapshot.NewStore(cfg.Pagination)
	return &Catalog{
		sources:    make(map[string]*source),
		providers:  make(map[string]provider.ItemProvider),
		store:      store,
		pages:      paginate.NewPageManager(store, cfg.Pagination),
		cursors:    paginate.NewCursorManager(store, cfg.Cursor, cfg.Pagination),
		clients:    clientscan.NewCache(),
		policy:     provider.NewIDPolicy(cfg.ID),
		openapiGen: openapi.NewGenerator(openapi.OptionsFromConfig(cfg.Synth)),
		protoGen:   protomock.NewGenerator(protomock.OptionsFromConfig(cfg.Synth)),
		modelOpts:  modelgen.OptionsFromConfig(cfg.Synth),
		log:        logging.Nop(),
	}
}

// SetLogger sets the logger for the catalog and every component it owns.
func (c *Catalog) SetLogger(log *slog.Logger) {
	if log == nil {
		log = logging.Nop()
	}
	c.mu.Lock()
	c.log = log
	c.mu.Unlock()
	c.store.SetLogger(logging.Component(log, "snapshot"))
	c.cursors.SetLogger(logging.Component(log, "cursor"))
	c.clients.SetLogger(logging.Component(log, "clientscan"))
}

// Start starts the snapshot sweep loop.
func (c *Catalog) Start() { c.store.Start() }

// Close stops the sweep loop. It is safe to call more than once.
func (c *Catalog) Close() error {
	c.store.Stop()
	return nil
}

// Store returns the shared snapshot store.
func (c *Catalog) Store() *snapshot.Store { return c.store }

// Cursors returns the shared cursor manager.
func (c *Catalog) Cursors() *paginate.CursorManager { return c.cursors }

// ProtoGenerator returns the generator used for proto sources.
func (c *Catalog) ProtoGenerator() *protomock.Generator { return c.protoGen }

// IDPolicy returns the ID policy shared by every provider.
func (c *Catalog) IDPolicy() *provider.IDPolicy { return c.policy }

// AddOpenAPI registers doc under name, replacing any source of that name.
func (c *Catalog) AddOpenAPI(name string, doc *openapi.Document) {
	c.register(&source{
		info: SourceInfo{Name: name, Kind: SourceOpenAPI, Origin: doc.Source},
		doc:  doc,
	})
}

// LoadOpenAPI loads an OpenAPI or Swagger file and registers it.
func (c *Catalog) LoadOpenAPI(name, path string) error {
	doc, err := openapi.LoadFile(path)
	if err != nil {
		return fmt.Errorf("failed to load OpenAPI source %s: %w", name, err)
	}
	c.AddOpenAPI(name, doc)
	return nil
}

// AddProto registers a compiled proto schema under name.
func (c *Catalog) AddProto(name string, s *protomock.Schema) {
	var origin string
	if files := s.Files(); len(files) > 0 {
		origin = files[0].Path()
	}
	c.register(&source{
		info:  SourceInfo{Name: name, Kind: SourceProto, Origin: origin},
		proto: s,
	})
}

// LoadProto compiles proto files and registers the result.
func (c *Catalog) LoadProto(name string, paths, importPaths []string) error {
	s, err := protomock.ParseProtoFiles(paths, importPaths)
	if err != nil {
		return fmt.Errorf("failed to load proto source %s: %w", name, err)
	}
	c.AddProto(name, s)
	return nil
}

// LoadClient scans the client package at dir and registers it.
func (c *Catalog) LoadClient(name, dir string) error {
	if _, err := c.clients.Load(dir); err != nil {
		return fmt.Errorf("failed to scan client source %s: %w", name, err)
	}
	c.register(&source{
		info: SourceInfo{Name: name, Kind: SourceClient, Origin: dir},
		dir:  dir,
	})
	return nil
}

func (c *Catalog) register(src *source) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.sources[src.info.Name]; ok {
		c.log.Info("replacing source", "source", src.info.Name)
	}
	c.sources[src.info.Name] = src
	c.dropProviders(src.info.Name)
	c.log.Info("source registered", "source", src.info.Name, "kind", src.info.Kind, "origin", src.info.Origin)
}

// Remove unregisters the named source.
func (c *Catalog) Remove(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.sources[name]; !ok {
		return false
	}
	delete(c.sources, name)
	c.dropProviders(name)
	return true
}

// dropProviders must be called with c.mu held.
func (c *Catalog) dropProviders(name string) {
	prefix := name + "\x00"
	for k := range c.providers {
		if strings.HasPrefix(k, prefix) {
			delete(c.providers, k)
		}
	}
}

// Sources lists the registered sources sorted by name.
func (c *Catalog) Sources() []SourceInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]SourceInfo, 0, len(c.sources))
	for _, src := range c.sources {
		out = append(out, src.info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (c *Catalog) source(name string) (*source, error) {
	c.mu.RLock()
	src, ok := c.sources[name]
	c.mu.RUnlock()
	if !ok {
		return nil, &NotFoundError{Kind: KindSource, Name: name}
	}
	return src, nil
}

func (c *Catalog) clientPackage(src *source) (*clientscan.Package, error) {
	pkg, err := c.clients.Load(src.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan client source %s: %w", src.info.Name, err)
	}
	return pkg, nil
}

// ProtoSchema returns the schema of a proto source.
func (c *Catalog) ProtoSchema(name string) (*protomock.Schema, error) {
	src, err := c.source(name)
	if err != nil {
		return nil, err
	}
	if src.proto == nil {
		return nil, fmt.Errorf("%w: %s is %s, not %s", ErrWrongSourceKind, name, src.info.Kind, SourceProto)
	}
	return src.proto, nil
}

// Models returns the normalized models of a source.
func (c *Catalog) Models(name string) (schema.Models, error) {
	src, err := c.source(name)
	if err != nil {
		return nil, err
	}
	switch src.info.Kind {
	case SourceOpenAPI:
		return src.doc.Models(), nil
	case SourceProto:
		return src.proto.Models(), nil
	default:
		pkg, err := c.clientPackage(src)
		if err != nil {
			return nil, err
		}
		return pkg.Models, nil
	}
}

// Endpoints returns the endpoints of a source.
func (c *Catalog) Endpoints(name string) ([]schema.Endpoint, error) {
	src, err := c.source(name)
	if err != nil {
		return nil, err
	}
	switch src.info.Kind {
	case SourceOpenAPI:
		return src.doc.Endpoints(), nil
	case SourceProto:
		return src.proto.Endpoints(), nil
	default:
		pkg, err := c.clientPackage(src)
		if err != nil {
			return nil, err
		}
		return pkg.Endpoints, nil
	}
}

// Provider returns the item provider for model in the named source.
// Providers are cached until the source is replaced or Reset is called.
func (c *Catalog) Provider(sourceName, model string) (provider.ItemProvider, error) {
	key := sourceName + "\x00" + model
	c.mu.RLock()
	p, ok := c.providers[key]
	c.mu.RUnlock()
	if ok {
		return p, nil
	}

	src, err := c.source(sourceName)
	if err != nil {
		return nil, err
	}
	backend, err := c.newProvider(src, model)
	if err != nil {
		return nil, &NotFoundError{Kind: KindModel, Name: sourceName + "/" + model, Err: err}
	}
	p = scopedProvider{ItemProvider: backend, name: sourceName + "/" + backend.ModelName()}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.providers[key]; ok {
		return existing, nil
	}
	c.providers[key] = p
	return p, nil
}

func (c *Catalog) newProvider(src *source, model string) (provider.ItemProvider, error) {
	switch src.info.Kind {
	case SourceOpenAPI:
		return src.doc.Provider(model, c.openapiGen, c.policy)
	case SourceProto:
		return src.proto.Provider(model, c.protoGen, c.policy)
	default:
		pkg, err := c.clientPackage(src)
		if err != nil {
			return nil, err
		}
		return modelgen.NewGenerator(pkg.Models, c.modelOpts).Provider(model, c.policy)
	}
}

// scopedProvider prefixes the model name with the source name so
// same-named models of different sources get separate snapshots.
type scopedProvider struct {
	provider.ItemProvider
	name string
}

func (p scopedProvider) ModelName() string { return p.name }

// Item returns the item at index for seed. It matches the item at the
// same position of an unsorted page built from the same seed.
func (c *Catalog) Item(sourceName, model string, index int, seed string) (map[string]any, error) {
	p, err := c.Provider(sourceName, model)
	if err != nil {
		return nil, err
	}
	return p.GenerateItemWithID(p.GenerateID(index, seed), index, seed), nil
}

// Page returns one page of model.
func (c *Catalog) Page(sourceName, model string, req paginate.PageRequest) (paginate.PageResponse, error) {
	p, err := c.Provider(sourceName, model)
	if err != nil {
		return paginate.PageResponse{}, err
	}
	return c.pages.GetPagedResponse(p, req), nil
}

// Offset returns an offset window of model.
func (c *Catalog) Offset(sourceName, model string, req paginate.OffsetRequest) (paginate.OffsetResponse, error) {
	p, err := c.Provider(sourceName, model)
	if err != nil {
		return paginate.OffsetResponse{}, err
	}
	return c.pages.GetOffsetResponse(p, req), nil
}

// Cursor returns a cursor window of model.
func (c *Catalog) Cursor(sourceName, model string, req paginate.CursorRequest) (paginate.CursorResponse, error) {
	p, err := c.Provider(sourceName, model)
	if err != nil {
		return paginate.CursorResponse{}, err
	}
	return c.cursors.GetCursorResponse(p, req), nil
}

// Reset clears every snapshot, the provider cache and the client package
// cache. Sources stay registered.
func (c *Catalog) Reset() {
	c.mu.Lock()
	c.providers = make(map[string]provider.ItemProvider)
	log := c.log
	c.mu.Unlock()

	c.store.Reset()
	c.clients.Reset()
	log.Info("catalog reset")
}

// Stats returns current cache counts.
func (c *Catalog) Stats() Stats {
	c.mu.RLock()
	s := Stats{Sources: len(c.sources), Providers: len(c.providers)}
	c.mu.RUnlock()
	s.Snapshots = c.store.Len()
	s.ClientPackages = c.clients.Len()
	return s
}

package protomock

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bufbuild/protocompile"
	"github.com/bufbuild/protocompile/linker"
	"google.golang.org/protobuf/reflect/protoreflect"
)

// Schema represents compiled .proto file(s) and gives access to their
// services and message types.
type Schema struct {
	files    []protoreflect.FileDescriptor
	services map[string]*Service
	messages map[string]protoreflect.MessageDescriptor
	enums    map[string]protoreflect.EnumDescriptor
}

// Service describes a gRPC service and its methods.
type Service struct {
	// Name is the fully qualified service name (e.g., "package.ServiceName").
	Name string

	// Methods maps method names to their descriptors.
	Methods map[string]*Method

	desc protoreflect.ServiceDescriptor
}

// Method describes a gRPC method including its streaming characteristics.
type Method struct {
	Name string

	// FullName is the fully qualified method name (e.g., "package.Service.Method").
	FullName string

	InputType  string
	OutputType string

	ClientStreaming bool
	ServerStreaming bool

	desc protoreflect.MethodDescriptor
}

// ParseProtoFiles compiles .proto files from disk. importPaths lists
// directories searched for imports.
func ParseProtoFiles(paths []string, importPaths []string) (*Schema, error) {
	if len(paths) == 0 {
		return nil, ErrNoProtoFiles
	}

	resolver := &protocompile.SourceResolver{
		ImportPaths: importPaths,
	}
	fsResolver := &fileSystemResolver{
		importPaths: importPaths,
		basePaths:   paths,
	}

	compiler := protocompile.Compiler{
		Resolver: protocompile.WithStandardImports(
			protocompile.CompositeResolver{resolver, fsResolver},
		),
	}

	compiled, err := compiler.Compile(context.Background(), paths...)
	if err != nil {
		return nil, fmt.Errorf("failed to compile proto files: %w", err)
	}
	return newSchemaFromLinker(compiled), nil
}

// ParseProtoSources compiles in-memory sources keyed by file name.
// Imports between the sources resolve by those names.
func ParseProtoSources(sources map[string]string) (*Schema, error) {
	if len(sources) == 0 {
		return nil, ErrNoProtoFiles
	}
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)

	compiler := protocompile.Compiler{
		Resolver: protocompile.WithStandardImports(&protocompile.SourceResolver{
			Accessor: protocompile.SourceAccessorFromMap(sources),
		}),
	}
	compiled, err := compiler.Compile(context.Background(), names...)
	if err != nil {
		return nil, fmt.Errorf("failed to compile proto sources: %w", err)
	}
	return newSchemaFromLinker(compiled), nil
}

func newSchemaFromLinker(files linker.Files) *Schema {
	fds := make([]protoreflect.FileDescriptor, 0, len(files))
	for _, f := range files {
		fds = append(fds, f)
	}
	return NewSchema(fds...)
}

// NewSchema indexes already-built file descriptors.
func NewSchema(files ...protoreflect.FileDescriptor) *Schema {
	s := &Schema{
		files:    files,
		services: make(map[string]*Service),
		messages: make(map[string]protoreflect.MessageDescriptor),
		enums:    make(map[string]protoreflect.EnumDescriptor),
	}
	for _, file := range files {
		s.indexMessages(file.Messages())
		s.indexEnums(file.Enums())

		services := file.Services()
		for i := 0; i < services.Len(); i++ {
			svc := services.Get(i)
			sd := &Service{
				Name:    string(svc.FullName()),
				Methods: make(map[string]*Method),
				desc:    svc,
			}
			methods := svc.Methods()
			for j := 0; j < methods.Len(); j++ {
				m := methods.Get(j)
				sd.Methods[string(m.Name())] = &Method{
					Name:            string(m.Name()),
					FullName:        string(m.FullName()),
					InputType:       string(m.Input().FullName()),
					OutputType:      string(m.Output().FullName()),
					ClientStreaming: m.IsStreamingClient(),
					ServerStreaming: m.IsStreamingServer(),
					desc:            m,
				}
			}
			s.services[sd.Name] = sd
		}
	}
	return s
}

func (s *Schema) indexMessages(msgs protoreflect.MessageDescriptors) {
	for i := 0; i < msgs.Len(); i++ {
		md := msgs.Get(i)
		if md.IsMapEntry() {
			continue
		}
		s.messages[string(md.FullName())] = md
		s.indexMessages(md.Messages())
		s.indexEnums(md.Enums())
	}
}

func (s *Schema) indexEnums(enums protoreflect.EnumDescriptors) {
	for i := 0; i < enums.Len(); i++ {
		ed := enums.Get(i)
		s.enums[string(ed.FullName())] = ed
	}
}

// fileSystemResolver implements protocompile.Resolver for file system access.
type fileSystemResolver struct {
	importPaths []string
	basePaths   []string
}

func (r *fileSystemResolver) FindFileByPath(path string) (protocompile.SearchResult, error) {
	candidates := make([]string, 0, len(r.importPaths)+len(r.basePaths)+1)
	for _, importPath := range r.importPaths {
		candidates = append(candidates, filepath.Join(importPath, path))
	}
	for _, basePath := range r.basePaths {
		candidates = append(candidates, filepath.Join(filepath.Dir(basePath), path))
	}
	candidates = append(candidates, path)

	for _, full := range candidates {
		if _, err := os.Stat(full); err != nil {
			continue
		}
		rc, err := readFile(full)
		if err != nil {
			return protocompile.SearchResult{}, err
		}
		return protocompile.SearchResult{Source: rc}, nil
	}
	return protocompile.SearchResult{}, fs.ErrNotExist
}

func readFile(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// Service returns a service by its fully qualified name.
func (s *Schema) Service(name string) (*Service, error) {
	svc, ok := s.services[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrServiceNotFound, name)
	}
	return svc, nil
}

// ListServices returns all service names in sorted order.
func (s *Schema) ListServices() []string {
	names := make([]string, 0, len(s.services))
	for name := range s.services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListMessages returns all message full names in sorted order.
func (s *Schema) ListMessages() []string {
	names := make([]string, 0, len(s.messages))
	for name := range s.messages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Message resolves a message by full name, or by short name when that is
// unambiguous.
func (s *Schema) Message(name string) (protoreflect.MessageDescriptor, error) {
	name = strings.TrimPrefix(name, ".")
	if md, ok := s.messages[name]; ok {
		return md, nil
	}
	var found protoreflect.MessageDescriptor
	for full, md := range s.messages {
		if string(md.Name()) != name {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("%w: %s matches %s and %s", ErrAmbiguousMessage, name, found.FullName(), full)
		}
		found = md
	}
	if found == nil {
		return nil, fmt.Errorf("%w: %s", ErrMessageNotFound, name)
	}
	return found, nil
}

// Files returns the compiled file descriptors.
func (s *Schema) Files() []protoreflect.FileDescriptor {
	return s.files
}

// MethodCount returns the total number of methods across all services.
func (s *Schema) MethodCount() int {
	count := 0
	for _, svc := range s.services {
		count += len(svc.Methods)
	}
	return count
}

// Method returns a method by name.
func (s *Service) Method(name string) (*Method, error) {
	m, ok := s.Methods[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrMethodNotFound, s.Name, name)
	}
	return m, nil
}

// ListMethods returns all method names in sorted order.
func (s *Service) ListMethods() []string {
	names := make([]string, 0, len(s.Methods))
	for name := range s.Methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsUnary reports whether neither side streams.
func (m *Method) IsUnary() bool {
	return !m.ClientStreaming && !m.ServerStreaming
}

// StreamingType returns a string describing the streaming type.
func (m *Method) StreamingType() string {
	switch {
	case m.ClientStreaming && m.ServerStreaming:
		return "bidirectional"
	case m.ClientStreaming:
		return "client_streaming"
	case m.ServerStreaming:
		return "server_streaming"
	default:
		return "unary"
	}
}

// Input returns the request message descriptor.
func (m *Method) Input() protoreflect.MessageDescriptor {
	return m.desc.Input()
}

// Output returns the response message descriptor.
func (m *Method) Output() protoreflect.MessageDescriptor {
	return m.desc.Output()
}

var _ protoreflect.FileDescriptor = (linker.File)(nil)

package protomock

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/getmockd/seedmock/internal/rng"
	"github.com/getmockd/seedmock/pkg/config"
	"github.com/getmockd/seedmock/pkg/logging"
	"github.com/getmockd/seedmock/pkg/paginate"
	"github.com/getmockd/seedmock/pkg/provider"
)

// ServerOptions configure a Server.
type ServerOptions struct {
	// Addr is the listen address used by Start, e.g. ":50051".
	Addr string

	// Seed drives every synthesized response.
	Seed string

	// Policy resolves ID fields of list items. Nil uses the default policy.
	Policy *provider.IDPolicy

	// BackwardField names the bool request field, by proto or JSON name,
	// that asks for the window before the page token. Empty uses the
	// default cursor config's BackwardParam.
	BackwardField string
}

// Server is a gRPC server that answers every method of a Schema with
// synthesized responses.
type Server struct {
	schema  *Schema
	gen     *Generator
	cursors *paginate.CursorManager
	opts    ServerOptions

	grpcServer *grpc.Server
	listener   net.Listener
	mu         sync.RWMutex
	running    bool
	log        *slog.Logger
}

// NewServer creates a server. cursors may be nil, in which case list
// responses are synthesized like any other message.
func NewServer(schema *Schema, gen *Generator, cursors *paginate.CursorManager, opts ServerOptions) (*Server, error) {
	if schema == nil {
		return nil, ErrNilSchema
	}
	if gen == nil {
		gen = NewGenerator(DefaultOptions())
	}
	if opts.Policy == nil {
		opts.Policy = provider.DefaultIDPolicy()
	}
	if opts.BackwardField == "" {
		opts.BackwardField = config.Default().Cursor.BackwardParam
	}
	return &Server{
		schema:  schema,
		gen:     gen,
		cursors: cursors,
		opts:    opts,
		log:     logging.Nop(),
	}, nil
}

// SetLogger sets the operational logger for the server.
func (s *Server) SetLogger(log *slog.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if log != nil {
		s.log = log
	} else {
		s.log = logging.Nop()
	}
}

func (s *Server) logger() *slog.Logger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.log
}

// Start listens on opts.Addr and serves in the background.
func (s *Server) Start(ctx context.Context) error {
	lis, err := (&net.ListenConfig{}).Listen(ctx, "tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.opts.Addr, err)
	}
	if err := s.Serve(lis); err != nil {
		_ = lis.Close()
		return err
	}
	return nil
}

// Serve serves on lis in the background.
func (s *Server) Serve(lis net.Listener) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrServerAlreadyRunning
	}
	s.listener = lis
	s.grpcServer = grpc.NewServer(grpc.UnknownServiceHandler(s.handleStream))

	srv, log := s.grpcServer, s.log
	go func() {
		if err := srv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			log.Error("gRPC server error", "error", err)
		}
	}()

	s.running = true
	s.log.Info("gRPC server started", "addr", lis.Addr().String(), "services", len(s.schema.services))
	return nil
}

// Stop stops the server gracefully, forcing it down after timeout or
// when ctx is done.
func (s *Server) Stop(ctx context.Context, timeout time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	done := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		s.grpcServer.Stop()
	case <-ctx.Done():
		s.grpcServer.Stop()
	}
	s.running = false
	return nil
}

// Address returns the address the server is listening on.
func (s *Server) Address() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// handleStream serves every call; no service is registered explicitly.
func (s *Server) handleStream(_ any, stream grpc.ServerStream) error {
	fullMethod, ok := grpc.MethodFromServerStream(stream)
	if !ok {
		return status.Error(codes.Internal, "failed to get method from stream")
	}
	// Format: /package.ServiceName/MethodName
	parts := strings.Split(fullMethod, "/")
	if len(parts) != 3 {
		return status.Errorf(codes.Unimplemented, "invalid method path: %s", fullMethod)
	}
	svc, err := s.schema.Service(parts[1])
	if err != nil {
		return unimplemented(ReasonServiceNotFound, fullMethod, err)
	}
	method, err := svc.Method(parts[2])
	if err != nil {
		return unimplemented(ReasonMethodNotFound, fullMethod, err)
	}

	start := time.Now()
	sent, err := s.serve(stream, method)
	s.logger().Debug("grpc call",
		"method", fullMethod,
		"type", method.StreamingType(),
		"responses", sent,
		"duration", time.Since(start),
		"error", err)
	return err
}

// ErrorInfo reasons attached to Unimplemented statuses.
const (
	ReasonServiceNotFound = "SERVICE_NOT_FOUND"
	ReasonMethodNotFound  = "METHOD_NOT_FOUND"
)

// ErrorDomain is the ErrorInfo domain of statuses raised by the server.
const ErrorDomain = "seedmock"

// unimplemented builds an Unimplemented status carrying an ErrorInfo detail.
func unimplemented(reason, fullMethod string, err error) error {
	st := status.New(codes.Unimplemented, err.Error())
	detailed, derr := st.WithDetails(&errdetails.ErrorInfo{
		Reason:   reason,
		Domain:   ErrorDomain,
		Metadata: map[string]string{"method": fullMethod},
	})
	if derr != nil {
		return st.Err()
	}
	return detailed.Err()
}

func (s *Server) serve(stream grpc.ServerStream, m *Method) (int, error) {
	switch {
	case m.ClientStreaming && m.ServerStreaming:
		sent := 0
		for {
			req, err := s.recv(stream, m)
			if errors.Is(err, io.EOF) {
				return sent, nil
			}
			if err != nil {
				return sent, err
			}
			if err := s.send(stream, m, req, sent); err != nil {
				return sent, err
			}
			sent++
		}
	case m.ClientStreaming:
		var last *dynamicpb.Message
		for {
			req, err := s.recv(stream, m)
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return 0, err
			}
			last = req
		}
		if last == nil {
			last = dynamicpb.NewMessage(m.Input())
		}
		return 1, s.send(stream, m, last, 0)
	case m.ServerStreaming:
		req, err := s.recv(stream, m)
		if err != nil {
			return 0, err
		}
		n := rng.New(requestSeed(s.opts.Seed, m, req, -1)).IntRange(s.gen.opts.ArrayMin, s.gen.opts.ArrayMax)
		for i := 0; i < n; i++ {
			if err := stream.Context().Err(); err != nil {
				return i, status.FromContextError(err).Err()
			}
			if err := s.send(stream, m, req, i); err != nil {
				return i, err
			}
		}
		return n, nil
	default:
		req, err := s.recv(stream, m)
		if err != nil {
			return 0, err
		}
		return 1, s.send(stream, m, req, 0)
	}
}

func (s *Server) recv(stream grpc.ServerStream, m *Method) (*dynamicpb.Message, error) {
	req := dynamicpb.NewMessage(m.Input())
	if err := stream.RecvMsg(req); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, status.Errorf(codes.InvalidArgument, "failed to receive request: %v", err)
	}
	return req, nil
}

func (s *Server) send(stream grpc.ServerStream, m *Method, req proto.Message, n int) error {
	resp, err := s.Respond(m, req, n)
	if err != nil {
		return status.Errorf(codes.Internal, "failed to build response: %v", err)
	}
	if err := stream.SendMsg(resp); err != nil {
		return status.Errorf(codes.Internal, "failed to send response: %v", err)
	}
	return nil
}

// Respond synthesizes the n-th response of m to req. Cursor-shaped list
// responses are windowed through the cursor manager using the request's
// page_token and page_size.
func (s *Server) Respond(m *Method, req proto.Message, n int) (*dynamicpb.Message, error) {
	out := m.Output()
	data := s.gen.Generate(out, requestSeed(s.opts.Seed, m, req, n))

	if s.cursors != nil && ClassifyMessage(out).IsCursorBased {
		if items := ItemsField(out); items != nil {
			s.fillPage(data, out, items, m, req)
		}
	}
	return ToMessage(out, data)
}

func (s *Server) fillPage(data map[string]any, out protoreflect.MessageDescriptor, items protoreflect.FieldDescriptor, m *Method, req proto.Message) {
	p := NewProvider(items.Message(), s.gen, s.opts.Policy)
	var msg protoreflect.Message
	if req != nil {
		msg = req.ProtoReflect()
	}
	resp := s.cursors.GetCursorResponse(p, paginate.CursorRequest{
		Cursor:   stringField(msg, "page_token", "cursor"),
		Limit:    intField(msg, "page_size", "limit"),
		Seed:     s.opts.Seed + ":" + m.FullName,
		Backward: boolField(msg, s.opts.BackwardField),
	})

	list := make([]any, len(resp.Items))
	for i, item := range resp.Items {
		list[i] = item
	}
	data[items.JSONName()] = list

	if fd := out.Fields().ByName("next_page_token"); fd != nil && fd.Kind() == protoreflect.StringKind {
		data[fd.JSONName()] = resp.NextCursor
	}
	if fd := out.Fields().ByName("prev_page_token"); fd != nil && fd.Kind() == protoreflect.StringKind {
		data[fd.JSONName()] = resp.PrevCursor
	}
	if fd := out.Fields().ByName("has_more"); fd != nil && fd.Kind() == protoreflect.BoolKind {
		data[fd.JSONName()] = resp.HasMore
	}
}

// requestSeed mixes the server seed, method, response number and the
// deterministic encoding of the request.
func requestSeed(seed string, m *Method, req proto.Message, n int) uint32 {
	var raw []byte
	if req != nil {
		raw, _ = proto.MarshalOptions{Deterministic: true}.Marshal(req)
	}
	return rng.HashParts(seed, m.FullName, strconv.Itoa(n), string(raw))
}

func stringField(msg protoreflect.Message, names ...string) string {
	if msg == nil {
		return ""
	}
	for _, name := range names {
		fd := msg.Descriptor().Fields().ByName(protoreflect.Name(name))
		if fd != nil && fd.Kind() == protoreflect.StringKind && !fd.IsList() {
			return msg.Get(fd).String()
		}
	}
	return ""
}

func intField(msg protoreflect.Message, names ...string) int {
	if msg == nil {
		return 0
	}
	for _, name := range names {
		fd := msg.Descriptor().Fields().ByName(protoreflect.Name(name))
		if fd == nil || fd.IsList() {
			continue
		}
		switch fd.Kind() {
		case protoreflect.Int32Kind, protoreflect.Int64Kind, protoreflect.Sint32Kind, protoreflect.Sint64Kind,
			protoreflect.Sfixed32Kind, protoreflect.Sfixed64Kind:
			return int(msg.Get(fd).Int())
		case protoreflect.Uint32Kind, protoreflect.Uint64Kind, protoreflect.Fixed32Kind, protoreflect.Fixed64Kind:
			return int(msg.Get(fd).Uint())
		}
	}
	return 0
}

func boolField(msg protoreflect.Message, name string) bool {
	if msg == nil || name == "" {
		return false
	}
	fields := msg.Descriptor().Fields()
	fd := fields.ByName(protoreflect.Name(name))
	if fd == nil {
		fd = fields.ByJSONName(name)
	}
	if fd == nil || fd.Kind() != protoreflect.BoolKind || fd.IsList() {
		return false
	}
	return msg.Get(fd).Bool()
}

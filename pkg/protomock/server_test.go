package protomock

import (
	"context"
	"errors"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/getmockd/seedmock/pkg/config"
	"github.com/getmockd/seedmock/pkg/paginate"
	"github.com/getmockd/seedmock/pkg/snapshot"
)

func startServer(t *testing.T) (*Schema, *grpc.ClientConn) {
	t.Helper()
	s := loadSchema(t)
	cfg := config.Default()
	store := snapshot.NewStore(cfg.Pagination)
	cursors := paginate.NewCursorManager(store, cfg.Cursor, cfg.Pagination)

	srv, err := NewServer(s, NewGenerator(DefaultOptions()), cursors, ServerOptions{Seed: "grpc"})
	require.NoError(t, err)

	lis := bufconn.Listen(1 << 20)
	require.NoError(t, srv.Serve(lis))
	assert.ErrorIs(t, srv.Serve(lis), ErrServerAlreadyRunning)
	t.Cleanup(func() {
		_ = srv.Stop(context.Background(), time.Second)
	})

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return s, conn
}

func newMessage(t *testing.T, s *Schema, name string) *dynamicpb.Message {
	t.Helper()
	md, err := s.Message(name)
	require.NoError(t, err)
	return dynamicpb.NewMessage(md)
}

func TestNewServer_NilSchema(t *testing.T) {
	_, err := NewServer(nil, nil, nil, ServerOptions{})
	assert.ErrorIs(t, err, ErrNilSchema)
}

func TestServer_Unary(t *testing.T) {
	s, conn := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req := newMessage(t, s, "GetUserRequest")
	req.Set(req.Descriptor().Fields().ByName("user_id"), protoreflect.ValueOfString("u-1"))

	first := newMessage(t, s, "User")
	require.NoError(t, conn.Invoke(ctx, "/test.v1.UserService/GetUser", req, first))
	second := newMessage(t, s, "User")
	require.NoError(t, conn.Invoke(ctx, "/test.v1.UserService/GetUser", req, second))

	a, b := ToMap(first), ToMap(second)
	assert.NotEmpty(t, a["userId"])
	assert.Equal(t, a, b, "same request yields the same response")
}

func TestServer_ListUsersPages(t *testing.T) {
	s, conn := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	list := func(token string) map[string]any {
		req := newMessage(t, s, "ListUsersRequest")
		fields := req.Descriptor().Fields()
		req.Set(fields.ByName("page_size"), protoreflect.ValueOfInt32(2))
		req.Set(fields.ByName("page_token"), protoreflect.ValueOfString(token))
		resp := newMessage(t, s, "ListUsersResponse")
		require.NoError(t, conn.Invoke(ctx, "/test.v1.UserService/ListUsers", req, resp))
		return ToMap(resp)
	}

	page1 := list("")
	users := page1["users"].([]any)
	require.Len(t, users, 2)
	token, _ := page1["nextPageToken"].(string)
	require.NotEmpty(t, token)

	page2 := list(token)
	next := page2["users"].([]any)
	require.Len(t, next, 2)

	seen := map[any]bool{}
	for _, u := range append(users, next...) {
		id := u.(map[string]any)["userId"]
		assert.False(t, seen[id], "duplicate id %v", id)
		seen[id] = true
	}
}

func TestServer_ListUsersBackward(t *testing.T) {
	s, conn := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	list := func(token string, backward bool) []any {
		req := newMessage(t, s, "ListUsersRequest")
		fields := req.Descriptor().Fields()
		req.Set(fields.ByName("page_size"), protoreflect.ValueOfInt32(2))
		req.Set(fields.ByName("page_token"), protoreflect.ValueOfString(token))
		req.Set(fields.ByName("is_backward"), protoreflect.ValueOfBool(backward))
		resp := newMessage(t, s, "ListUsersResponse")
		require.NoError(t, conn.Invoke(ctx, "/test.v1.UserService/ListUsers", req, resp))
		users, _ := ToMap(resp)["users"].([]any)
		return users
	}
	userIDs := func(users []any) []any {
		out := make([]any, len(users))
		for i, u := range users {
			out[i] = u.(map[string]any)["userId"]
		}
		return out
	}

	req := newMessage(t, s, "ListUsersRequest")
	req.Set(req.Descriptor().Fields().ByName("page_size"), protoreflect.ValueOfInt32(2))
	resp := newMessage(t, s, "ListUsersResponse")
	require.NoError(t, conn.Invoke(ctx, "/test.v1.UserService/ListUsers", req, resp))
	first := ToMap(resp)
	token, _ := first["nextPageToken"].(string)
	require.NotEmpty(t, token)
	firstIDs := userIDs(first["users"].([]any))

	forward := userIDs(list(token, false))
	backward := userIDs(list(token, true))
	require.Len(t, backward, 2)
	assert.Equal(t, firstIDs, backward, "backward from the first token returns the first page")
	assert.NotEqual(t, forward, backward)
}

func TestServer_ServerStreaming(t *testing.T) {
	s, conn := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stream, err := conn.NewStream(ctx, &grpc.StreamDesc{ServerStreams: true}, "/test.v1.UserService/WatchUsers")
	require.NoError(t, err)
	require.NoError(t, stream.SendMsg(newMessage(t, s, "WatchRequest")))
	require.NoError(t, stream.CloseSend())

	received := 0
	for {
		msg := newMessage(t, s, "User")
		err := stream.RecvMsg(msg)
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		received++
	}
	assert.GreaterOrEqual(t, received, 1)
	assert.LessOrEqual(t, received, 3)
}

func TestServer_Bidirectional(t *testing.T) {
	s, conn := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stream, err := conn.NewStream(ctx, &grpc.StreamDesc{ServerStreams: true, ClientStreams: true}, "/test.v1.UserService/Chat")
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		require.NoError(t, stream.SendMsg(newMessage(t, s, "Comment")))
		require.NoError(t, stream.RecvMsg(newMessage(t, s, "Comment")))
	}
	require.NoError(t, stream.CloseSend())
	assert.ErrorIs(t, stream.RecvMsg(newMessage(t, s, "Comment")), io.EOF)
}

func TestServer_UnknownMethod(t *testing.T) {
	s, conn := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tests := []struct {
		method string
		reason string
	}{
		{"/test.v1.UserService/Missing", ReasonMethodNotFound},
		{"/test.v1.Nope/Get", ReasonServiceNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			err := conn.Invoke(ctx, tt.method, newMessage(t, s, "GetUserRequest"), newMessage(t, s, "User"))
			st, ok := status.FromError(err)
			require.True(t, ok)
			assert.Equal(t, codes.Unimplemented, st.Code())

			require.Len(t, st.Details(), 1)
			info, ok := st.Details()[0].(*errdetails.ErrorInfo)
			require.True(t, ok)
			assert.Equal(t, tt.reason, info.GetReason())
			assert.Equal(t, ErrorDomain, info.GetDomain())
			assert.Equal(t, tt.method, info.GetMetadata()["method"])
		})
	}
}

func TestServer_RespondWithoutCursors(t *testing.T) {
	s := loadSchema(t)
	srv, err := NewServer(s, nil, nil, ServerOptions{Seed: "plain"})
	require.NoError(t, err)

	svc, _ := s.Service("test.v1.UserService")
	m, _ := svc.Method("ListUsers")
	resp, err := srv.Respond(m, newMessage(t, s, "ListUsersRequest"), 0)
	require.NoError(t, err)
	users := ToMap(resp)["users"].([]any)
	assert.NotEmpty(t, users)
}

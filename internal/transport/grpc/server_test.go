package grpc

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/Raisondetr3/tasklist-service/internal/config"
	"github.com/Raisondetr3/tasklist-service/internal/repository/memory"
	"github.com/Raisondetr3/tasklist-service/internal/service"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

const bufConnSize = 1024 * 1024

type recordingDispatcher struct {
	mu       sync.Mutex
	messages []string
}

func (d *recordingDispatcher) Dispatch(_ context.Context, message string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.messages = append(d.messages, message)
}

func assertStatusCode(t *testing.T, err error, wantCode codes.Code) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected error with code %v, got nil", wantCode)
	}
	if status.Code(err) != wantCode {
		t.Fatalf("expected %v, got %v (%v)", wantCode, status.Code(err), err)
	}
}

func newTestClient(t *testing.T) (*TaskClient, *recordingDispatcher) {
	t.Helper()

	store := memory.NewStore()
	resolver := service.NewResolver(store.Tasks(), store.Goals())
	dispatcher := &recordingDispatcher{}
	taskService := service.NewTaskService(store.Tasks(), resolver, dispatcher)

	listener := bufconn.Listen(bufConnSize)
	srv := NewGRPCServer(config.Default(), taskService)

	go func() {
		_ = srv.Serve(listener)
	}()

	dialCtx, cancelDial := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelDial()

	conn, err := grpc.DialContext(
		dialCtx,
		"bufnet",
		grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) {
			return listener.Dial()
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("failed to dial bufconn server: %v", err)
	}

	t.Cleanup(func() {
		_ = conn.Close()
		stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Stop(stopCtx)
		_ = listener.Close()
	})

	return NewTaskClient(conn), dispatcher
}

func mustStruct(t *testing.T, m map[string]any) *structpb.Struct {
	t.Helper()

	s, err := structpb.NewStruct(m)
	if err != nil {
		t.Fatalf("structpb.NewStruct: %v", err)
	}
	return s
}

func TestGRPC_TaskLifecycle(t *testing.T) {
	client, dispatcher := newTestClient(t)
	ctx := context.Background()

	created, err := client.CreateTask(ctx, mustStruct(t, map[string]any{"title": "Laundry", "description": "wash"}))
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	id := int64(created.Fields["id"].GetNumberValue())
	if id != 1 {
		t.Fatalf("expected id 1, got %d", id)
	}
	if _, ok := created.Fields["goal_id"].GetKind().(*structpb.Value_NullValue); !ok {
		t.Fatalf("expected null goal_id")
	}

	done, err := client.MarkComplete(ctx, id)
	if err != nil {
		t.Fatalf("MarkComplete: %v", err)
	}
	if !done.Fields["is_complete"].GetBoolValue() {
		t.Fatalf("expected complete task")
	}
	if len(dispatcher.messages) != 1 {
		t.Fatalf("expected one notification, got %v", dispatcher.messages)
	}

	undone, err := client.MarkIncomplete(ctx, id)
	if err != nil {
		t.Fatalf("MarkIncomplete: %v", err)
	}
	if undone.Fields["is_complete"].GetBoolValue() {
		t.Fatalf("expected incomplete task")
	}

	updated, err := client.UpdateTask(ctx, mustStruct(t, map[string]any{"id": 1, "title": "Dishes", "description": "dry"}))
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if updated.Fields["title"].GetStringValue() != "Dishes" {
		t.Fatalf("unexpected title %v", updated.Fields["title"])
	}

	list, err := client.ListTasks(ctx, mustStruct(t, map[string]any{"title": "Dishes", "sort": "asc"}))
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(list.Values) != 1 {
		t.Fatalf("expected 1 task, got %d", len(list.Values))
	}

	if err := client.DeleteTask(ctx, id); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}

	_, err = client.GetTask(ctx, id)
	assertStatusCode(t, err, codes.NotFound)
}

func TestGRPC_ErrorCodes(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	_, err := client.GetTask(ctx, 0)
	assertStatusCode(t, err, codes.InvalidArgument)

	_, err = client.GetTask(ctx, 404)
	assertStatusCode(t, err, codes.NotFound)
	if msg := status.Convert(err).Message(); msg != "Task 404 not found" {
		t.Fatalf("unexpected message %q", msg)
	}

	_, err = client.CreateTask(ctx, mustStruct(t, map[string]any{"title": "only"}))
	assertStatusCode(t, err, codes.InvalidArgument)

	_, err = client.CreateTask(ctx, mustStruct(t, map[string]any{"title": "t", "description": "d", "extra": true}))
	assertStatusCode(t, err, codes.InvalidArgument)

	_, err = client.UpdateTask(ctx, mustStruct(t, map[string]any{"title": "t", "description": "d"}))
	assertStatusCode(t, err, codes.InvalidArgument)

	_, err = client.ListTasks(ctx, mustStruct(t, map[string]any{"sort": "sideways"}))
	assertStatusCode(t, err, codes.InvalidArgument)
}

func TestGRPC_RequestIDHeader(t *testing.T) {
	client, _ := newTestClient(t)

	ctx := metadata.AppendToOutgoingContext(context.Background(), "x-request-id", "req-42")

	var header metadata.MD
	if _, err := client.ListTasks(ctx, nil, grpc.Header(&header)); err != nil {
		t.Fatalf("ListTasks: %v", err)
	}

	if got := header.Get("x-request-id"); len(got) != 1 || got[0] != "req-42" {
		t.Fatalf("expected request id to be echoed, got %v", got)
	}
}

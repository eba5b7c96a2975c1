package notify

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Raisondetr3/tasklist-service/internal/config"
)

func newSlackStub(t *testing.T, response string) (*httptest.Server, *[]string) {
	t.Helper()

	var (
		mu     sync.Mutex
		bodies []string
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat.postMessage") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		bodies = append(bodies, string(body))
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)

	return srv, &bodies
}

func TestSlackNotifier_PostsToChannel(t *testing.T) {
	srv, bodies := newSlackStub(t, `{"ok":true,"channel":"C1","ts":"1.0"}`)

	n := NewSlackNotifier(config.NotifyConfig{
		SlackToken:   "xoxb-test",
		SlackChannel: "task-notifications",
		SlackAPIURL:  srv.URL + "/",
	})

	if err := n.Notify(context.Background(), "Someone just completed the task Laundry"); err != nil {
		t.Fatalf("Notify returned error: %v", err)
	}

	if len(*bodies) != 1 {
		t.Fatalf("expected 1 request, got %d", len(*bodies))
	}
	body := (*bodies)[0]
	if !strings.Contains(body, "task-notifications") || !strings.Contains(body, "Laundry") {
		t.Fatalf("unexpected request body %q", body)
	}
}

func TestSlackNotifier_ReturnsAPIError(t *testing.T) {
	srv, _ := newSlackStub(t, `{"ok":false,"error":"invalid_auth"}`)

	n := NewSlackNotifier(config.NotifyConfig{
		SlackToken:   "bad",
		SlackChannel: "task-notifications",
		SlackAPIURL:  srv.URL + "/",
	})

	if err := n.Notify(context.Background(), "hello"); err == nil {
		t.Fatalf("expected error for ok=false response")
	}
}

func TestNew_WithoutTokenIsNop(t *testing.T) {
	n := New(config.NotifyConfig{SlackChannel: "task-notifications"})
	if _, ok := n.(NopNotifier); !ok {
		t.Fatalf("expected NopNotifier, got %T", n)
	}
	if err := n.Notify(context.Background(), "x"); err != nil {
		t.Fatalf("NopNotifier returned error: %v", err)
	}
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
	err      error
	ctxErr   error
}

func (r *recordingNotifier) Notify(ctx context.Context, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
	r.ctxErr = ctx.Err()
	return r.err
}

func TestDispatcher_SurvivesCancelledRequest(t *testing.T) {
	rec := &recordingNotifier{err: errors.New("slack down")}
	d := NewDispatcher(rec, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d.Dispatch(ctx, "first")
	d.Dispatch(ctx, "second")
	d.Wait()

	if len(rec.messages) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(rec.messages))
	}
	if rec.ctxErr != nil {
		t.Fatalf("notification context must not inherit cancellation, got %v", rec.ctxErr)
	}
}

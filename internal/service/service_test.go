package service

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/Raisondetr3/tasklist-service/internal/errors"
	"github.com/Raisondetr3/tasklist-service/internal/repository/memory"
)

type recordingDispatcher struct {
	mu       sync.Mutex
	messages []string
}

func (d *recordingDispatcher) Dispatch(_ context.Context, message string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.messages = append(d.messages, message)
}

type fixture struct {
	store      *memory.Store
	tasks      TaskService
	goals      GoalService
	dispatcher *recordingDispatcher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	resolver := NewResolver(store.Tasks(), store.Goals())
	dispatcher := &recordingDispatcher{}

	return &fixture{
		store:      store,
		tasks:      NewTaskService(store.Tasks(), resolver, dispatcher),
		goals:      NewGoalService(store.Goals(), store.Tasks(), resolver),
		dispatcher: dispatcher,
	}
}

func goalTitle(title string) GoalInput {
	return func() (string, error) { return title, nil }
}

func taskIDs(ids ...string) TaskIDsInput {
	return func() ([]string, error) { return ids, nil }
}

func assertKind(t *testing.T, err error, want errors.Kind) {
	t.Helper()

	var serviceErr *errors.ServiceError
	if !stderrors.As(err, &serviceErr) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
	if serviceErr.Kind != want {
		t.Fatalf("expected kind %s, got %s (%s)", want, serviceErr.Kind, serviceErr.Message)
	}
}

func TestParseID(t *testing.T) {
	valid := map[string]int64{"1": 1, "42": 42, "0007": 7}
	for raw, want := range valid {
		got, err := ParseID(EntityTask, raw)
		if err != nil || got != want {
			t.Fatalf("ParseID(%q) = %d, %v; want %d", raw, got, err, want)
		}
	}

	for _, raw := range []string{"", "abc", "-1", "0", "+3", "1.5", " 1", "99999999999999999999"} {
		_, err := ParseID(EntityTask, raw)
		assertKind(t, err, errors.KindInvalidIdentifier)
	}

	_, err := ParseID(EntityGoal, "abc")
	if got := errors.FromError(err).Message; got != "Goal abc invalid" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestResolver(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.tasks.CreateTask(ctx, "T", "D")
	if err != nil {
		t.Fatal(err)
	}

	resolver := NewResolver(f.store.Tasks(), f.store.Goals())

	got, err := resolver.Task(ctx, "1")
	if err != nil || got.ID != created.ID {
		t.Fatalf("Task(1) = %+v, %v", got, err)
	}

	_, err = resolver.Task(ctx, "999")
	assertKind(t, err, errors.KindNotFound)
	if msg := errors.FromError(err).Message; msg != "Task 999 not found" {
		t.Fatalf("unexpected message %q", msg)
	}

	_, err = resolver.Goal(ctx, "5")
	assertKind(t, err, errors.KindNotFound)
}

func TestTaskService_CreateStartsIncompleteAndUnassigned(t *testing.T) {
	f := newFixture(t)

	task, err := f.tasks.CreateTask(context.Background(), "Laundry", "wash")
	if err != nil {
		t.Fatal(err)
	}
	if task.IsComplete() || task.GoalID != nil {
		t.Fatalf("unexpected new task %+v", task)
	}
}

func TestTaskService_MarkCompleteNotifiesOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("X", 3600))
	f.tasks.(*taskService).now = func() time.Time { return fixed }

	task, _ := f.tasks.CreateTask(ctx, "Laundry", "wash")

	done, err := f.tasks.MarkComplete(ctx, formatID(task.ID))
	if err != nil {
		t.Fatal(err)
	}
	if !done.IsComplete() {
		t.Fatalf("expected task to be complete")
	}
	if done.CompletedAt.Location() != time.UTC || !done.CompletedAt.Equal(fixed) {
		t.Fatalf("expected UTC completion time, got %s", done.CompletedAt)
	}

	if len(f.dispatcher.messages) != 1 || f.dispatcher.messages[0] != "Someone just completed the task Laundry" {
		t.Fatalf("unexpected notifications %v", f.dispatcher.messages)
	}

	undone, err := f.tasks.MarkIncomplete(ctx, formatID(task.ID))
	if err != nil {
		t.Fatal(err)
	}
	if undone.IsComplete() {
		t.Fatalf("expected task to be incomplete")
	}
	if len(f.dispatcher.messages) != 1 {
		t.Fatalf("mark incomplete must not notify")
	}
}

func TestTaskService_MarkCompleteMissingTaskDoesNotNotify(t *testing.T) {
	f := newFixture(t)

	_, err := f.tasks.MarkComplete(context.Background(), "12")
	assertKind(t, err, errors.KindNotFound)
	if len(f.dispatcher.messages) != 0 {
		t.Fatalf("expected no notifications, got %v", f.dispatcher.messages)
	}
}

func TestTaskService_ListFilterAndSort(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, title := range []string{"b", "a", "c", "b"} {
		if _, err := f.tasks.CreateTask(ctx, title, "d"); err != nil {
			t.Fatal(err)
		}
	}

	all, err := f.tasks.ListTasks(ctx, nil, "")
	if err != nil {
		t.Fatal(err)
	}
	for i, task := range all {
		if task.ID != int64(i+1) {
			t.Fatalf("expected id order, got %d at %d", task.ID, i)
		}
	}

	asc, _ := f.tasks.ListTasks(ctx, nil, "asc")
	if asc[0].Title != "a" || asc[3].Title != "c" {
		t.Fatalf("unexpected asc order")
	}

	title := "b"
	filtered, _ := f.tasks.ListTasks(ctx, &title, "desc")
	if len(filtered) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(filtered))
	}

	_, err = f.tasks.ListTasks(ctx, nil, "sideways")
	assertKind(t, err, errors.KindInvalidBody)
}

func TestTaskService_DeleteReturnsRemovedTask(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	task, _ := f.tasks.CreateTask(ctx, "T", "D")

	deleted, err := f.tasks.DeleteTask(ctx, formatID(task.ID))
	if err != nil {
		t.Fatal(err)
	}
	if deleted.Title != "T" {
		t.Fatalf("unexpected deleted task %+v", deleted)
	}

	_, err = f.tasks.GetTask(ctx, formatID(task.ID))
	assertKind(t, err, errors.KindNotFound)
}

func TestGoalService_UpdateAppliesTitle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	goal, _ := f.goals.CreateGoal(ctx, "old")

	updated, err := f.goals.UpdateGoal(ctx, formatID(goal.ID), goalTitle("new"))
	if err != nil {
		t.Fatal(err)
	}
	if updated.Title != "new" {
		t.Fatalf("expected title to change, got %q", updated.Title)
	}
}

func TestUpdate_ResolvesBeforeReadingInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	called := false
	_, err := f.tasks.UpdateTask(ctx, "404", func() (string, string, error) {
		called = true
		return "", "", errors.InvalidBody()
	})
	assertKind(t, err, errors.KindNotFound)
	if called {
		t.Fatalf("input must not be read for an unknown task")
	}

	_, err = f.goals.UpdateGoal(ctx, "abc", func() (string, error) {
		called = true
		return "", nil
	})
	assertKind(t, err, errors.KindInvalidIdentifier)

	_, _, err = f.goals.AssignTasks(ctx, "404", func() ([]string, error) {
		called = true
		return nil, nil
	})
	assertKind(t, err, errors.KindNotFound)
	if called {
		t.Fatalf("input must not be read for an unknown goal")
	}

	task, _ := f.tasks.CreateTask(ctx, "T", "D")
	_, err = f.tasks.UpdateTask(ctx, formatID(task.ID), func() (string, string, error) {
		return "", "", errors.InvalidBody()
	})
	if !stderrors.Is(err, errors.ErrInvalidBody) {
		t.Fatalf("expected invalid body, got %v", err)
	}

	got, _ := f.tasks.GetTask(ctx, formatID(task.ID))
	if got.Title != "T" {
		t.Fatalf("rejected input must not change the task, got %q", got.Title)
	}
}

func TestGoalService_AssignTasksIsAtomic(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	goal, _ := f.goals.CreateGoal(ctx, "G")
	t1, _ := f.tasks.CreateTask(ctx, "t1", "d")
	t2, _ := f.tasks.CreateTask(ctx, "t2", "d")

	_, ids, err := f.goals.AssignTasks(ctx, "1", taskIDs("1"))
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 1 || ids[0] != t1.ID {
		t.Fatalf("unexpected echoed ids %v", ids)
	}

	_, _, err = f.goals.AssignTasks(ctx, "1", taskIDs(formatID(t2.ID), "999"))
	assertKind(t, err, errors.KindNotFound)

	_, _, err = f.goals.AssignTasks(ctx, "1", taskIDs(formatID(t2.ID), "x"))
	assertKind(t, err, errors.KindInvalidIdentifier)

	withTasks, err := f.goals.GetGoalTasks(ctx, formatID(goal.ID))
	if err != nil {
		t.Fatal(err)
	}
	if len(withTasks.Tasks) != 1 || withTasks.Tasks[0].ID != t1.ID {
		t.Fatalf("previous assignment must survive a failed request, got %+v", withTasks.Tasks)
	}

	_, _, err = f.goals.AssignTasks(ctx, "1", taskIDs(formatID(t2.ID)))
	if err != nil {
		t.Fatal(err)
	}
	withTasks, _ = f.goals.GetGoalTasks(ctx, "1")
	if len(withTasks.Tasks) != 1 || withTasks.Tasks[0].ID != t2.ID {
		t.Fatalf("expected assignment to be replaced, got %+v", withTasks.Tasks)
	}
}

func TestGoalService_DeleteDetachesTasks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	goal, _ := f.goals.CreateGoal(ctx, "G")
	task, _ := f.tasks.CreateTask(ctx, "t", "d")
	if _, _, err := f.goals.AssignTasks(ctx, formatID(goal.ID), taskIDs(formatID(task.ID))); err != nil {
		t.Fatal(err)
	}

	deleted, err := f.goals.DeleteGoal(ctx, formatID(goal.ID))
	if err != nil {
		t.Fatal(err)
	}
	if deleted.Title != "G" {
		t.Fatalf("unexpected deleted goal %+v", deleted)
	}

	got, err := f.tasks.GetTask(ctx, formatID(task.ID))
	if err != nil {
		t.Fatalf("task must survive goal deletion: %v", err)
	}
	if got.GoalID != nil {
		t.Fatalf("expected goal_id to be cleared")
	}
}

func TestHealthService(t *testing.T) {
	store := memory.NewStore()
	svc := NewHealthService(store)

	if got := svc.Health(context.Background()).Status; got != StatusHealthy {
		t.Fatalf("expected healthy, got %q", got)
	}

	store.HealthErr = stderrors.New("db down")
	if got := svc.Health(context.Background()).Status; got != StatusUnhealthy {
		t.Fatalf("expected unhealthy, got %q", got)
	}
}

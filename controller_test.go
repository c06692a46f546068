package taskdeck

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Debug(interface{}, ...interface{}) {}
func (nopLogger) Info(interface{}, ...interface{})  {}
func (nopLogger) Warn(interface{}, ...interface{})  {}
func (nopLogger) Error(interface{}, ...interface{}) {}
func (nopLogger) Fatal(interface{}, ...interface{}) {}

type fakeUser struct {
	id       int
	email    string
	password string
}

type fakeUserRepo struct {
	users   []fakeUser
	inserts int
}

func (r *fakeUserRepo) InsertUser(_ context.Context, email, password string) (ExistingUserRecord, error) {
	r.inserts++
	for _, u := range r.users {
		if u.email == email {
			return ExistingUserRecord{}, ErrEmailTaken
		}
	}
	u := fakeUser{
		id:       len(r.users) + 1,
		email:    email,
		password: password,
	}
	r.users = append(r.users, u)
	return ExistingUserRecord{
		ID:         u.id,
		UserRecord: UserRecord{Email: email},
	}, nil
}

func (r *fakeUserRepo) Authenticate(_ context.Context, email, password string) (ExistingUserRecord, error) {
	for _, u := range r.users {
		if u.email == email && u.password == password {
			return ExistingUserRecord{
				ID:         u.id,
				UserRecord: UserRecord{Email: email},
			}, nil
		}
	}
	return ExistingUserRecord{}, ErrInvalidCredentials
}

type fakeTaskRepo struct {
	tasks   []ExistingTaskRecord
	nextID  int
	inserts int
	updates int
	deletes int
}

func (r *fakeTaskRepo) InsertTask(_ context.Context, task TaskRecord) (ExistingTaskRecord, error) {
	r.inserts++
	r.nextID++
	rec := ExistingTaskRecord{
		TaskRecord: task,
		ID:         r.nextID,
	}
	r.tasks = append(r.tasks, rec)
	return rec, nil
}

func (r *fakeTaskRepo) GetByUserID(_ context.Context, userID int) ([]ExistingTaskRecord, error) {
	var out []ExistingTaskRecord
	for _, t := range r.tasks {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) UpdateTask(_ context.Context, id int, updated UpdatableFields) error {
	r.updates++
	for i, t := range r.tasks {
		if t.ID == id {
			r.tasks[i].Title = updated.Title
			r.tasks[i].Description = updated.Description
			return nil
		}
	}
	// zero rows affected is a no-op
	return nil
}

func (r *fakeTaskRepo) DeleteTask(_ context.Context, id int) error {
	r.deletes++
	r.tasks = slices.DeleteFunc(r.tasks, func(t ExistingTaskRecord) bool {
		return t.ID == id
	})
	return nil
}

func newTestController(t *testing.T) (*Controller, *fakeUserRepo, *fakeTaskRepo) {
	t.Helper()
	users := &fakeUserRepo{}
	tasks := &fakeTaskRepo{}
	c, err := NewController(users, tasks, ParseEmailDomains(DefaultEmailDomains), nopLogger{})
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	return c, users, tasks
}

func loggedInController(t *testing.T) (*Controller, *fakeUserRepo, *fakeTaskRepo) {
	t.Helper()
	c, users, tasks := newTestController(t)
	ctx := context.Background()
	if err := c.Register(ctx, "user@gmail.com", "pw1", "pw1"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := c.Login(ctx, "user@gmail.com", "pw1"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	return c, users, tasks
}

func TestController_RegisterValidationNeverReachesStore(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		confirm  string
		wantErr  error
	}{
		{"domain not allow-listed", "user@example.com", "pw1", "pw1", ErrInvalidEmail},
		{"missing at", "usergmail.com", "pw1", "pw1", ErrInvalidEmail},
		{"wrong tld", "user@gmail.org", "pw1", "pw1", ErrInvalidEmail},
		{"trailing garbage", "user@gmail.com.br", "pw1", "pw1", ErrInvalidEmail},
		{"password mismatch", "user@gmail.com", "pw1", "pw2", ErrPasswordMismatch},
		{"empty password", "user@gmail.com", "", "", ErrEmptyPassword},
		{"whitespace password", "user@gmail.com", "   ", "   ", ErrEmptyPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, users, _ := newTestController(t)
			err := c.Register(context.Background(), tt.email, tt.password, tt.confirm)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Register: got %v, want %v", err, tt.wantErr)
			}
			if users.inserts != 0 {
				t.Fatalf("store called %d times for a validation failure", users.inserts)
			}
		})
	}
}

func TestController_RegisterThenLogin(t *testing.T) {
	c, users, _ := newTestController(t)
	ctx := context.Background()

	if err := c.Register(ctx, "user@gmail.com", "pw1", "pw1"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if users.inserts != 1 {
		t.Fatalf("expected 1 insert, got %d", users.inserts)
	}
	if c.State() != StateAnonymous {
		t.Fatal("registration must not log the user in")
	}

	if err := c.Login(ctx, "user@gmail.com", "pw1"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if c.State() != StateAuthenticated {
		t.Fatal("expected authenticated state after login")
	}
	if c.UserID() != 1 {
		t.Fatalf("expected user id 1, got %d", c.UserID())
	}
	if c.SessionToken() == uuid.Nil {
		t.Fatal("expected a session token after login")
	}
	if got := c.CurrentUser(); got.Email != "user@gmail.com" {
		t.Fatalf("CurrentUser: %+v", got)
	}
}

func TestController_RegisterDuplicateEmail(t *testing.T) {
	c, users, _ := newTestController(t)
	ctx := context.Background()

	if err := c.Register(ctx, "user@gmail.com", "pw1", "pw1"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	err := c.Register(ctx, "user@gmail.com", "other", "other")
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("got %v, want ErrEmailTaken", err)
	}
	if len(users.users) != 1 {
		t.Fatalf("expected 1 stored user, got %d", len(users.users))
	}
}

func TestController_LoginFailuresIndistinguishable(t *testing.T) {
	c, _, _ := newTestController(t)
	ctx := context.Background()
	if err := c.Register(ctx, "user@gmail.com", "pw1", "pw1"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	wrongPW := c.Login(ctx, "user@gmail.com", "nope")
	unknown := c.Login(ctx, "ghost@gmail.com", "pw1")
	if !errors.Is(wrongPW, ErrInvalidCredentials) || !errors.Is(unknown, ErrInvalidCredentials) {
		t.Fatalf("got %v / %v, want ErrInvalidCredentials for both", wrongPW, unknown)
	}
	if wrongPW.Error() != unknown.Error() {
		t.Fatalf("failures are distinguishable: %q vs %q", wrongPW, unknown)
	}
	if c.State() != StateAnonymous {
		t.Fatal("failed login must leave the session anonymous")
	}
}

func TestController_TaskOpsRequireAuth(t *testing.T) {
	c, _, tasks := newTestController(t)
	ctx := context.Background()

	if _, err := c.AddTask(ctx, "Buy milk", "", "", "", ""); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("AddTask: got %v, want ErrNotAuthenticated", err)
	}
	if _, err := c.Tasks(ctx); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("Tasks: got %v, want ErrNotAuthenticated", err)
	}
	if err := c.UpdateTask(ctx, 1, "t", ""); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("UpdateTask: got %v, want ErrNotAuthenticated", err)
	}
	if err := c.DeleteTask(ctx, 1); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("DeleteTask: got %v, want ErrNotAuthenticated", err)
	}
	if tasks.inserts+tasks.updates+tasks.deletes != 0 {
		t.Fatal("store reached while anonymous")
	}
}

func TestController_AddTaskDefaults(t *testing.T) {
	c, _, _ := loggedInController(t)

	task, err := c.AddTask(context.Background(), "Buy milk", "", "", "", "")
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if task.Priority != DefaultPriority {
		t.Fatalf("priority: got %q, want %q", task.Priority, DefaultPriority)
	}
	if task.Category != DefaultCategory {
		t.Fatalf("category: got %q, want %q", task.Category, DefaultCategory)
	}
	if task.UserID != c.UserID() {
		t.Fatalf("task owner: got %d, want %d", task.UserID, c.UserID())
	}
}

func TestController_EmptyTitleShortCircuits(t *testing.T) {
	c, _, tasks := loggedInController(t)
	ctx := context.Background()

	existing, err := c.AddTask(ctx, "Buy milk", "2L", "", "", "")
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	inserts := tasks.inserts

	for _, title := range []string{"", "   ", "\t"} {
		if _, err := c.AddTask(ctx, title, "", "", "", ""); !errors.Is(err, ErrEmptyTitle) {
			t.Fatalf("AddTask(%q): got %v, want ErrEmptyTitle", title, err)
		}
		if err := c.UpdateTask(ctx, existing.ID, title, "changed"); !errors.Is(err, ErrEmptyTitle) {
			t.Fatalf("UpdateTask(%q): got %v, want ErrEmptyTitle", title, err)
		}
	}
	if tasks.inserts != inserts || tasks.updates != 0 {
		t.Fatal("store reached with an empty title")
	}

	got, err := c.Tasks(ctx)
	if err != nil {
		t.Fatalf("Tasks: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Buy milk" {
		t.Fatalf("persisted task changed: %+v", got)
	}
}

func TestController_TasksScopedToUser(t *testing.T) {
	c, _, tasks := newTestController(t)
	ctx := context.Background()

	for _, email := range []string{"a@gmail.com", "b@gmail.com"} {
		if err := c.Register(ctx, email, "pw", "pw"); err != nil {
			t.Fatalf("Register(%s): %v", email, err)
		}
	}

	if err := c.Login(ctx, "a@gmail.com", "pw"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := c.AddTask(ctx, "task A", "", "", "", ""); err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	c.Logout()

	if err := c.Login(ctx, "b@gmail.com", "pw"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := c.AddTask(ctx, "task B", "", "", "", ""); err != nil {
		t.Fatalf("AddTask: %v", err)
	}

	got, err := c.Tasks(ctx)
	if err != nil {
		t.Fatalf("Tasks: %v", err)
	}
	if len(got) != 1 || got[0].Title != "task B" {
		t.Fatalf("expected only user b's task, got %+v", got)
	}
	if len(tasks.tasks) != 2 {
		t.Fatalf("expected 2 stored tasks, got %d", len(tasks.tasks))
	}
}

func TestController_Logout(t *testing.T) {
	c, _, _ := loggedInController(t)

	c.Logout()
	if c.State() != StateAnonymous {
		t.Fatal("expected anonymous state after logout")
	}
	if c.UserID() != 0 {
		t.Fatalf("user id not discarded: %d", c.UserID())
	}
	if got := c.CurrentUser(); got != (User{}) {
		t.Fatalf("session user not discarded: %+v", got)
	}
	if c.SessionToken() != uuid.Nil {
		t.Fatal("session token not discarded")
	}
	if _, err := c.Tasks(context.Background()); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("Tasks after logout: got %v, want ErrNotAuthenticated", err)
	}
}

func TestEmailPattern(t *testing.T) {
	tests := []struct {
		name    string
		domains []string
		email   string
		want    bool
	}{
		{"default gmail", ParseEmailDomains(DefaultEmailDomains), "joao.silva-1@gmail.com", true},
		{"default yahoo", ParseEmailDomains(DefaultEmailDomains), "x@yahoo.com", true},
		{"not listed", ParseEmailDomains(DefaultEmailDomains), "x@protonmail.com", false},
		{"custom domain", []string{"example"}, "x@example.com", true},
		{"custom excludes default", []string{"example"}, "x@gmail.com", false},
		{"dot not a wildcard", []string{"gmail"}, "x@gmailxcom", false},
		{"empty local part", []string{"gmail"}, "@gmail.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re, err := emailPattern(tt.domains)
			if err != nil {
				t.Fatalf("emailPattern: %v", err)
			}
			if got := re.MatchString(tt.email); got != tt.want {
				t.Fatalf("MatchString(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}

	if _, err := emailPattern(nil); err == nil {
		t.Fatal("expected error for empty allow-list")
	}
}

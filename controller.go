package taskdeck

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Validation failures are caught before any store call.
var (
	ErrInvalidEmail     = errors.New("insira um e-mail válido, como @gmail.com ou @hotmail.com")
	ErrPasswordMismatch = errors.New("as senhas não coincidem")
	ErrEmptyPassword    = errors.New("a senha não pode estar vazia")
	ErrEmptyTitle       = errors.New("o título da tarefa não pode estar vazio")
	ErrNotAuthenticated = errors.New("not logged in")
)

type State int

const (
	StateAnonymous State = iota
	StateAuthenticated
)

// Controller mediates between user-initiated actions and the repositories.
// It holds the session (current user id plus a per-login token) in memory
// for the process lifetime; there is no persisted session state.
type Controller struct {
	l     Logger
	users UserRepo
	tasks TaskRepo

	emailRe *regexp.Regexp

	// session
	userID int
	email  string
	token  uuid.UUID
}

func NewController(users UserRepo, tasks TaskRepo, emailDomains []string, logger Logger) (*Controller, error) {
	re, err := emailPattern(emailDomains)
	if err != nil {
		return nil, fmt.Errorf("invalid email domain allow-list: %w", err)
	}
	return &Controller{
		l:       logger,
		users:   users,
		tasks:   tasks,
		emailRe: re,
	}, nil
}

// emailPattern builds the login-identifier check from the configured domain
// allow-list, e.g. ^[\w.-]+@(?:gmail|hotmail|outlook|yahoo)\.com$
func emailPattern(domains []string) (*regexp.Regexp, error) {
	if len(domains) == 0 {
		return nil, fmt.Errorf("provide at least one domain")
	}
	quoted := make([]string, 0, len(domains))
	for _, d := range domains {
		d = strings.TrimSpace(d)
		if d == "" {
			return nil, fmt.Errorf("empty domain entry")
		}
		quoted = append(quoted, regexp.QuoteMeta(d))
	}
	return regexp.Compile(`^[\w.-]+@(?:` + strings.Join(quoted, "|") + `)\.com$`)
}

func (c *Controller) State() State {
	if c.userID == 0 {
		return StateAnonymous
	}
	return StateAuthenticated
}

// UserID returns the authenticated user's id, or 0 when anonymous.
func (c *Controller) UserID() int {
	return c.userID
}

// CurrentUser returns the authenticated user, or the zero User when
// anonymous.
func (c *Controller) CurrentUser() User {
	return User{
		ID:    c.userID,
		Email: c.email,
	}
}

// SessionToken identifies the current login; uuid.Nil when anonymous.
func (c *Controller) SessionToken() uuid.UUID {
	return c.token
}

func (c *Controller) Register(ctx context.Context, email, password, confirm string) error {
	if !c.emailRe.MatchString(email) {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(password) == "" {
		return ErrEmptyPassword
	}
	if password != confirm {
		return ErrPasswordMismatch
	}

	rec, err := c.users.InsertUser(ctx, email, password)
	if err != nil {
		return err
	}
	c.l.Info("registered user", "id", rec.ID, "email", email)
	return nil
}

func (c *Controller) Login(ctx context.Context, email, password string) error {
	rec, err := c.users.Authenticate(ctx, email, password)
	if err != nil {
		return err
	}

	c.userID = rec.ID
	c.email = rec.Email
	c.token = uuid.New()
	c.l.Info("logged in", "id", rec.ID, "session", c.token)
	return nil
}

// Logout discards the session; no store interaction.
func (c *Controller) Logout() {
	c.l.Info("logged out", "id", c.userID, "session", c.token)
	c.userID = 0
	c.email = ""
	c.token = uuid.Nil
}

// AddTask creates a task for the current user. Empty priority and category
// fall back to the quick-add defaults.
func (c *Controller) AddTask(ctx context.Context, title, description, priority, dueDate, category string) (Task, error) {
	if c.userID == 0 {
		return Task{}, ErrNotAuthenticated
	}
	if strings.TrimSpace(title) == "" {
		return Task{}, ErrEmptyTitle
	}
	if priority == "" {
		priority = DefaultPriority
	}
	if category == "" {
		category = DefaultCategory
	}

	rec, err := c.tasks.InsertTask(ctx, TaskRecord{
		Title:       title,
		Description: description,
		Priority:    priority,
		DueDate:     dueDate,
		Category:    category,
		UserID:      c.userID,
	})
	if err != nil {
		return Task{}, err
	}
	return taskFromRecord(rec), nil
}

// Tasks lists the current user's tasks in insertion order.
func (c *Controller) Tasks(ctx context.Context) ([]Task, error) {
	if c.userID == 0 {
		return nil, ErrNotAuthenticated
	}

	records, err := c.tasks.GetByUserID(ctx, c.userID)
	if err != nil {
		return nil, err
	}
	tasks := make([]Task, 0, len(records))
	for _, r := range records {
		tasks = append(tasks, taskFromRecord(r))
	}
	return tasks, nil
}

// UpdateTask overwrites a task's title and description. Updating an id that
// no longer exists is a no-op.
func (c *Controller) UpdateTask(ctx context.Context, id int, title, description string) error {
	if c.userID == 0 {
		return ErrNotAuthenticated
	}
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}

	return c.tasks.UpdateTask(ctx, id, UpdatableFields{
		Title:       title,
		Description: description,
	})
}

// DeleteTask removes a task. Deleting an id that no longer exists is a no-op.
func (c *Controller) DeleteTask(ctx context.Context, id int) error {
	if c.userID == 0 {
		return ErrNotAuthenticated
	}
	return c.tasks.DeleteTask(ctx, id)
}

func taskFromRecord(r ExistingTaskRecord) Task {
	return Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		DueDate:     r.DueDate,
		Category:    r.Category,
		UserID:      r.UserID,
	}
}

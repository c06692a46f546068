package taskdeck

type User struct {
	ID    int
	Email string
}

type Task struct {
	ID          int
	Title       string
	Description string
	Priority    string
	DueDate     string
	Category    string
	UserID      int
}

// Quick-add defaults, kept in Portuguese like the task labels themselves.
const (
	DefaultPriority = "Média"
	DefaultCategory = "Pessoal"
)

package main

import (
	"fmt"

	"github.com/pmarins/taskdeck"
)

type RegisteredMsg struct {
	email string
}

type LoggedInMsg struct{}

type TasksLoadedMsg struct {
	tasks []taskdeck.Task
}

// TaskMutatedMsg follows any successful add/update/delete and triggers a
// list refresh.
type TaskMutatedMsg struct{}

type ErrorMsg struct {
	err error
}

func errorMsg(format string, args ...any) ErrorMsg {
	return ErrorMsg{
		err: fmt.Errorf(format, args...),
	}
}

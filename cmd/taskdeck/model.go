package main

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pmarins/taskdeck"
)

const logo = `
	████████╗ █████╗ ███████╗██╗  ██╗██████╗ ███████╗ ██████╗██╗  ██╗
	╚══██╔══╝██╔══██╗██╔════╝██║ ██╔╝██╔══██╗██╔════╝██╔════╝██║ ██╔╝
	   ██║   ███████║███████╗█████╔╝ ██║  ██║█████╗  ██║     █████╔╝
	   ██║   ██╔══██║╚════██║██╔═██╗ ██║  ██║██╔══╝  ██║     ██╔═██╗
	   ██║   ██║  ██║███████║██║  ██╗██████╔╝███████╗╚██████╗██║  ██╗
	   ╚═╝   ╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝╚═════╝ ╚══════╝ ╚═════╝╚═╝  ╚═╝`

type screen int

const (
	screenLogin screen = iota
	screenRegister
	screenTasks
)

type dialog int

const (
	dialogNone dialog = iota
	dialogAdd
	dialogManage
)

type model struct {
	// children
	loginForm    form
	registerForm form
	taskForm     form
	vp           viewport.Model

	// supplied
	l    taskdeck.Logger
	ctrl *taskdeck.Controller

	// state
	screen   screen
	dialog   dialog
	tasks    []taskdeck.Task
	cursor   int
	manageID int
	alerts   []string
	quitting bool
	h        int

	// configuration
	cmdTimeout time.Duration
}

func newModel(ctrl *taskdeck.Controller, logger taskdeck.Logger, cmdTimeout time.Duration) model {
	return model{
		l:          logger,
		ctrl:       ctrl,
		cmdTimeout: cmdTimeout,
		loginForm: newForm(
			textField("Email", false),
			textField("Senha", true),
		),
		registerForm: newForm(
			textField("Email", false),
			textField("Senha", true),
			textField("Confirme a Senha", true),
		),
		taskForm: newForm(
			textField("Título da Tarefa", false),
			textField("Descrição da Tarefa", false),
		),
		vp: viewport.New(0, 0),
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// route input to whichever child was active when the message arrived,
	// so the keystroke that opens a dialog is not typed into it
	child := m.activeChild()
	m, cmd = m.updateParent(msg)
	childCmd := m.updateChild(child, msg)

	return m, tea.Batch(cmd, childCmd)
}

type child int

const (
	childLogin child = iota
	childRegister
	childTaskForm
	childViewport
)

func (m model) activeChild() child {
	switch {
	case m.dialog != dialogNone:
		return childTaskForm
	case m.screen == screenLogin:
		return childLogin
	case m.screen == screenRegister:
		return childRegister
	default:
		return childViewport
	}
}

func (m *model) updateChild(c child, msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch c {
	case childTaskForm:
		m.taskForm, cmd = m.taskForm.Update(msg)
	case childLogin:
		m.loginForm, cmd = m.loginForm.Update(msg)
	case childRegister:
		m.registerForm, cmd = m.registerForm.Update(msg)
	default:
		m.vp, cmd = m.vp.Update(msg)
	}
	return cmd
}

func (m model) updateParent(msg tea.Msg) (model, tea.Cmd) {
	switch msg := msg.(type) {
	case ErrorMsg:
		m.addAlert(msg.err.Error(), colorRed)
		return m, nil
	case RegisteredMsg:
		m.screen = screenLogin
		m.registerForm.reset()
		m.addAlert("usuário "+msg.email+" registrado com sucesso!", colorGreen)
		return m, nil
	case LoggedInMsg:
		m.screen = screenTasks
		m.loginForm.reset()
		m.alerts = nil
		return m, m.loadTasks
	case TaskMutatedMsg:
		m.dialog = dialogNone
		return m, m.loadTasks
	case TasksLoadedMsg:
		m.tasks = msg.tasks
		if m.cursor >= len(m.tasks) {
			m.cursor = max(0, len(m.tasks)-1)
		}
		m.vp.SetContent(m.renderTasks())
		m.resizeViewport()
		return m, nil
	case tea.WindowSizeMsg:
		m.h = msg.Height
		m.vp.Width = msg.Width
		m.resizeViewport()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	if m.dialog != dialogNone {
		return m.handleDialogKey(msg)
	}

	switch m.screen {
	case screenLogin:
		return m.handleLoginKey(msg)
	case screenRegister:
		return m.handleRegisterKey(msg)
	default:
		return m.handleTasksKey(msg)
	}
}

func (m model) handleLoginKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.loginForm.next()
		return m, nil
	case "shift+tab", "up":
		m.loginForm.prev()
		return m, nil
	case "enter":
		m.alerts = nil
		return m, m.login(m.loginForm.value(0), m.loginForm.value(1))
	case "ctrl+r":
		m.screen = screenRegister
		m.registerForm.reset()
		m.alerts = nil
		return m, textinput.Blink
	}
	return m, nil
}

func (m model) handleRegisterKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.registerForm.next()
		return m, nil
	case "shift+tab", "up":
		m.registerForm.prev()
		return m, nil
	case "enter":
		m.alerts = nil
		return m, m.register(
			m.registerForm.value(0),
			m.registerForm.value(1),
			m.registerForm.value(2),
		)
	case "esc":
		m.screen = screenLogin
		m.loginForm.reset()
		m.alerts = nil
		return m, textinput.Blink
	}
	return m, nil
}

func (m model) handleTasksKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "a":
		m.dialog = dialogAdd
		m.manageID = 0
		m.taskForm.reset()
		m.alerts = nil
		return m, textinput.Blink
	case "enter":
		if len(m.tasks) == 0 {
			return m, nil
		}
		t := m.tasks[m.cursor]
		m.dialog = dialogManage
		m.manageID = t.ID
		m.taskForm.setValues(t.Title, t.Description)
		m.alerts = nil
		return m, textinput.Blink
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.vp.SetContent(m.renderTasks())
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
			m.vp.SetContent(m.renderTasks())
		}
		return m, nil
	case "ctrl+l":
		m.ctrl.Logout()
		m.screen = screenLogin
		m.tasks = nil
		m.cursor = 0
		m.alerts = nil
		m.loginForm.reset()
		return m, textinput.Blink
	}
	return m, nil
}

func (m model) handleDialogKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.dialog = dialogNone
		return m, nil
	case "tab", "down":
		m.taskForm.next()
		return m, nil
	case "shift+tab", "up":
		m.taskForm.prev()
		return m, nil
	case "enter":
		title := m.taskForm.value(0)
		description := m.taskForm.value(1)
		m.alerts = nil
		if m.dialog == dialogManage {
			return m, m.updateTask(m.manageID, title, description)
		}
		return m, m.addTask(title, description)
	case "ctrl+x":
		if m.dialog == dialogManage {
			m.alerts = nil
			return m, m.deleteTask(m.manageID)
		}
		return m, nil
	}
	return m, nil
}

// commands

func (m model) login(email, password string) tea.Cmd {
	return func() tea.Msg {
		timeout, cancel := m.newTimeout()
		defer cancel()
		if err := m.ctrl.Login(timeout, email, password); err != nil {
			return ErrorMsg{
				err: err,
			}
		}
		return LoggedInMsg{}
	}
}

func (m model) register(email, password, confirm string) tea.Cmd {
	return func() tea.Msg {
		timeout, cancel := m.newTimeout()
		defer cancel()
		if err := m.ctrl.Register(timeout, email, password, confirm); err != nil {
			return ErrorMsg{
				err: err,
			}
		}
		return RegisteredMsg{
			email: email,
		}
	}
}

func (m model) loadTasks() tea.Msg {
	timeout, cancel := m.newTimeout()
	defer cancel()

	tasks, err := m.ctrl.Tasks(timeout)
	if err != nil {
		return ErrorMsg{
			err: err,
		}
	}
	return TasksLoadedMsg{
		tasks: tasks,
	}
}

func (m model) addTask(title, description string) tea.Cmd {
	return func() tea.Msg {
		timeout, cancel := m.newTimeout()
		defer cancel()
		if _, err := m.ctrl.AddTask(timeout, title, description, "", "", ""); err != nil {
			return ErrorMsg{
				err: err,
			}
		}
		return TaskMutatedMsg{}
	}
}

func (m model) updateTask(id int, title, description string) tea.Cmd {
	return func() tea.Msg {
		timeout, cancel := m.newTimeout()
		defer cancel()
		if err := m.ctrl.UpdateTask(timeout, id, title, description); err != nil {
			return ErrorMsg{
				err: err,
			}
		}
		return TaskMutatedMsg{}
	}
}

func (m model) deleteTask(id int) tea.Cmd {
	return func() tea.Msg {
		timeout, cancel := m.newTimeout()
		defer cancel()
		if err := m.ctrl.DeleteTask(timeout, id); err != nil {
			return ErrorMsg{
				err: err,
			}
		}
		return TaskMutatedMsg{}
	}
}

func (m model) newTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), m.cmdTimeout)
}

func (m *model) addAlert(alert string, c string) {
	m.alerts = append(m.alerts, colorize(c, alert))
}

// views

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch {
	case m.dialog == dialogAdd:
		body = strings.Join([]string{
			headerStyle.Render("Nova Tarefa"),
			"",
			m.taskForm.View(),
			"",
			faintStyle.Render("enter: adicionar • esc: cancelar"),
		}, "\n")
	case m.dialog == dialogManage:
		body = strings.Join([]string{
			headerStyle.Render("Gerenciar Tarefa"),
			"",
			m.taskForm.View(),
			"",
			faintStyle.Render("enter: salvar • ctrl+x: deletar • esc: cancelar"),
		}, "\n")
	case m.screen == screenLogin:
		body = strings.Join([]string{
			headerStyle.Render("Login"),
			"",
			m.loginForm.View(),
			"",
			faintStyle.Render("enter: login • ctrl+r: registrar-se"),
		}, "\n")
	case m.screen == screenRegister:
		body = strings.Join([]string{
			headerStyle.Render("Registrar-se"),
			"",
			m.registerForm.View(),
			"",
			faintStyle.Render("enter: registrar • esc: voltar ao login"),
		}, "\n")
	default:
		body = strings.Join([]string{
			headerStyle.Render("Suas Tarefas") + " " + faintStyle.Render(m.ctrl.CurrentUser().Email),
			"",
			m.vp.View(),
			"",
			faintStyle.Render("a: nova tarefa • enter: gerenciar • j/k: navegar • ctrl+l: voltar ao login"),
		}, "\n")
	}

	return lipgloss.JoinVertical(0, body, m.renderFooter())
}

func (m model) renderFooter() string {
	if m.quitting {
		return ""
	}

	var footer strings.Builder
	footer.WriteRune('\n')

	if len(m.alerts) > 0 {
		footer.WriteString(strings.Join(m.alerts, "\n"))
		footer.WriteString("\n\n")
	}

	footer.WriteString(faintStyle.Render("(ctrl+c to quit)"))
	footer.WriteRune('\n')

	return footer.String()
}

func (m model) renderTasks() string {
	if len(m.tasks) == 0 {
		return faintStyle.Render("nenhuma tarefa ainda")
	}

	var lines []string
	for i, t := range m.tasks {
		line := formatTaskLine(t)
		if i == m.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m *model) resizeViewport() {
	tasksHeight := lipgloss.Height(m.renderTasks())
	footerHeight := lipgloss.Height(m.renderFooter())
	// header and help lines around the viewport
	m.vp.Height = max(1, min(tasksHeight, m.h-footerHeight-4))
}

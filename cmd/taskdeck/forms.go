package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// form is a vertical stack of text inputs with one focused at a time.
type form struct {
	inputs []textinput.Model
	focus  int
}

func newForm(inputs ...textinput.Model) form {
	if len(inputs) > 0 {
		inputs[0].Focus()
	}
	return form{
		inputs: inputs,
	}
}

func textField(placeholder string, masked bool) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 280
	ti.PromptStyle = promptStyle
	if masked {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return ti
}

func (f form) Update(msg tea.Msg) (form, tea.Cmd) {
	cmds := make([]tea.Cmd, len(f.inputs))
	for i := range f.inputs {
		f.inputs[i], cmds[i] = f.inputs[i].Update(msg)
	}
	return f, tea.Batch(cmds...)
}

func (f form) View() string {
	views := make([]string, 0, len(f.inputs))
	for _, in := range f.inputs {
		views = append(views, in.View())
	}
	return strings.Join(views, "\n")
}

func (f *form) next() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + 1) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *form) prev() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + len(f.inputs) - 1) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *form) reset() {
	for i := range f.inputs {
		f.inputs[i].Reset()
		f.inputs[i].Blur()
	}
	f.focus = 0
	f.inputs[0].Focus()
}

// setValues pre-fills the inputs, e.g. for the manage-task dialog.
func (f *form) setValues(values ...string) {
	f.reset()
	for i, v := range values {
		if i >= len(f.inputs) {
			break
		}
		f.inputs[i].SetValue(v)
	}
}

func (f form) value(i int) string {
	return f.inputs[i].Value()
}

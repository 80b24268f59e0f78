package update

import (
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/lifequest/internal/views"
)

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldPassword
	fieldSelect
	fieldSlider
)

type formField struct {
	label string
	kind  fieldKind

	input textinput.Model

	options   []string
	optionIdx int

	min, max, level int
}

func newTextField(label, placeholder, value string) formField {
	in := textinput.New()
	in.Placeholder = placeholder
	in.SetValue(value)
	in.CharLimit = 120
	return formField{label: label, kind: fieldText, input: in}
}

func newPasswordField(label string) formField {
	in := textinput.New()
	in.EchoMode = textinput.EchoPassword
	in.EchoCharacter = '•'
	in.CharLimit = 120
	return formField{label: label, kind: fieldPassword, input: in}
}

func newSelectField(label string, options []string, selected int) formField {
	if selected < 0 || selected >= len(options) {
		selected = 0
	}
	return formField{label: label, kind: fieldSelect, options: options, optionIdx: selected}
}

func newSliderField(label string, min, max, level int) formField {
	if level < min {
		level = min
	}
	if level > max {
		level = max
	}
	return formField{label: label, kind: fieldSlider, min: min, max: max, level: level}
}

func (f formField) value() string {
	switch f.kind {
	case fieldSelect:
		if len(f.options) == 0 {
			return ""
		}
		return f.options[f.optionIdx]
	case fieldSlider:
		return strconv.Itoa(f.level)
	default:
		return f.input.Value()
	}
}

func (f formField) display() string {
	if f.kind == fieldSlider {
		bar := ""
		for i := f.min; i <= f.max; i++ {
			if i <= f.level {
				bar += "◆"
			} else {
				bar += "◇"
			}
		}
		return bar
	}
	if f.kind == fieldSelect {
		return "◂ " + f.value() + " ▸"
	}
	return f.input.View()
}

type formState struct {
	Title   string
	fields  []formField
	focus   int
	ErrText string
	Saving  bool
}

func newFormState(title string, fields ...formField) formState {
	f := formState{Title: title, fields: fields}
	f.syncFocus()
	return f
}

func (f *formState) syncFocus() {
	for i := range f.fields {
		if f.fields[i].kind == fieldSelect || f.fields[i].kind == fieldSlider {
			continue
		}
		if i == f.focus {
			f.fields[i].input.Focus()
		} else {
			f.fields[i].input.Blur()
		}
	}
}

func (f formState) focusCmd() tea.Cmd {
	return textinput.Blink
}

func (f *formState) cycle(delta int) {
	n := len(f.fields)
	if n == 0 {
		return
	}
	f.focus = (f.focus + delta + n) % n
	f.syncFocus()
}

// handleKey consumes navigation and editing keys. Enter and esc are the
// caller's to interpret; everything else lands here.
func (f *formState) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "down":
		f.cycle(1)
		return nil
	case "shift+tab", "up":
		f.cycle(-1)
		return nil
	}

	field := &f.fields[f.focus]
	switch field.kind {
	case fieldSelect:
		switch msg.String() {
		case "left", "h":
			field.optionIdx = (field.optionIdx - 1 + len(field.options)) % len(field.options)
		case "right", "l":
			field.optionIdx = (field.optionIdx + 1) % len(field.options)
		}
		return nil
	case fieldSlider:
		switch msg.String() {
		case "left", "h":
			if field.level > field.min {
				field.level--
			}
		case "right", "l":
			if field.level < field.max {
				field.level++
			}
		}
		return nil
	default:
		var cmd tea.Cmd
		field.input, cmd = field.input.Update(msg)
		return cmd
	}
}

func (f formState) renderData() views.FormData {
	data := views.FormData{
		Title:     f.Title,
		ErrorText: f.ErrText,
	}
	if f.Saving {
		data.Hint = "salvando…"
	}
	for i, field := range f.fields {
		data.Fields = append(data.Fields, views.FormFieldData{
			Label:   field.label,
			View:    field.display(),
			Focused: i == f.focus,
		})
	}
	return data
}

func (f formState) valueAt(i int) string {
	if i < 0 || i >= len(f.fields) {
		return ""
	}
	return f.fields[i].value()
}

func (f formState) sliderAt(i int) int {
	if i < 0 || i >= len(f.fields) || f.fields[i].kind != fieldSlider {
		return 0
	}
	return f.fields[i].level
}

func (f formState) selectIndexAt(i int) int {
	if i < 0 || i >= len(f.fields) || f.fields[i].kind != fieldSelect {
		return 0
	}
	return f.fields[i].optionIdx
}

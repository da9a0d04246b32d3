package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hy4ri/timeline-tui/internal/timeline"
	"github.com/hy4ri/timeline-tui/internal/tui/styles"
)

// FormField represents which field is currently focused in the form.
type FormField int

const (
	FormFieldName FormField = iota
	FormFieldStart
	FormFieldEnd
	FormFieldSubmit
)

const formFieldCount = 4

// ItemForm manages the state of the edit item form.
type ItemForm struct {
	ItemID int

	NameInput  textinput.Model
	StartInput textinput.Model
	EndInput   textinput.Model

	FocusedField FormField
	err          error
}

// NewItemForm creates a form pre-populated with item.
func NewItemForm(item timeline.Item) *ItemForm {
	nameInput := textinput.New()
	nameInput.Placeholder = "Item name"
	nameInput.CharLimit = 200
	nameInput.Width = 40
	nameInput.SetValue(item.Name)
	nameInput.Focus()

	startInput := textinput.New()
	startInput.Placeholder = timeline.DateLayout
	startInput.CharLimit = 10
	startInput.Width = 12
	startInput.SetValue(timeline.FormatDate(item.Start))

	endInput := textinput.New()
	endInput.Placeholder = timeline.DateLayout
	endInput.CharLimit = 10
	endInput.Width = 12
	endInput.SetValue(timeline.FormatDate(item.End))

	return &ItemForm{
		ItemID:       item.ID,
		NameInput:    nameInput,
		StartInput:   startInput,
		EndInput:     endInput,
		FocusedField: FormFieldName,
	}
}

// Update handles input for the form. Submit and cancel are handled by the parent.
func (f *ItemForm) Update(msg tea.Msg) (*ItemForm, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "tab", "down":
			f.nextField()
			return f, nil
		case "shift+tab", "up":
			f.prevField()
			return f, nil
		}
	}

	var cmd tea.Cmd
	switch f.FocusedField {
	case FormFieldName:
		f.NameInput, cmd = f.NameInput.Update(msg)
	case FormFieldStart:
		f.StartInput, cmd = f.StartInput.Update(msg)
	case FormFieldEnd:
		f.EndInput, cmd = f.EndInput.Update(msg)
	}
	return f, cmd
}

func (f *ItemForm) nextField() {
	f.blurCurrent()
	f.FocusedField = (f.FocusedField + 1) % formFieldCount
	f.focusCurrent()
}

func (f *ItemForm) prevField() {
	f.blurCurrent()
	f.FocusedField = (f.FocusedField - 1 + formFieldCount) % formFieldCount
	f.focusCurrent()
}

func (f *ItemForm) blurCurrent() {
	switch f.FocusedField {
	case FormFieldName:
		f.NameInput.Blur()
	case FormFieldStart:
		f.StartInput.Blur()
	case FormFieldEnd:
		f.EndInput.Blur()
	}
}

func (f *ItemForm) focusCurrent() {
	switch f.FocusedField {
	case FormFieldName:
		f.NameInput.Focus()
	case FormFieldStart:
		f.StartInput.Focus()
	case FormFieldEnd:
		f.EndInput.Focus()
	}
}

// Values parses the form. Dates must be YYYY-MM-DD.
func (f *ItemForm) Values() (name string, start, end time.Time, err error) {
	name = strings.TrimSpace(f.NameInput.Value())
	if name == "" {
		return "", time.Time{}, time.Time{}, errors.New("name is required")
	}
	start, err = timeline.ParseDate(f.StartInput.Value())
	if err != nil {
		return "", time.Time{}, time.Time{}, fmt.Errorf("start: %w", err)
	}
	end, err = timeline.ParseDate(f.EndInput.Value())
	if err != nil {
		return "", time.Time{}, time.Time{}, fmt.Errorf("end: %w", err)
	}
	return name, start, end, nil
}

// SetError shows err under the form until the next submit.
func (f *ItemForm) SetError(err error) {
	f.err = err
}

// View renders the form.
func (f *ItemForm) View() string {
	var b strings.Builder

	b.WriteString(styles.DialogTitle.Render(fmt.Sprintf("Edit Item #%d", f.ItemID)))
	b.WriteString("\n")

	b.WriteString(f.renderField("Name", f.NameInput.View(), FormFieldName))
	b.WriteString("\n")
	b.WriteString(f.renderField("Start", f.StartInput.View(), FormFieldStart))
	b.WriteString("\n")
	b.WriteString(f.renderField("End", f.EndInput.View(), FormFieldEnd))
	b.WriteString("\n\n")

	submitStyle := styles.HelpDesc
	if f.FocusedField == FormFieldSubmit {
		submitStyle = styles.HelpKey
	}
	b.WriteString(submitStyle.Render("[ Save Changes ]"))
	b.WriteString("\n\n")

	if f.err != nil {
		b.WriteString(styles.InputError.Render(f.err.Error()))
		b.WriteString("\n\n")
	}

	b.WriteString(styles.HelpDesc.Render("Tab: next field | Shift+Tab: previous | Enter: save | Esc: cancel"))
	return styles.Dialog.Render(b.String())
}

func (f *ItemForm) renderField(label, input string, field FormField) string {
	labelStyle := styles.InputLabel
	if f.FocusedField == field {
		labelStyle = labelStyle.Foreground(styles.Highlight)
	}
	return fmt.Sprintf("%s\n%s", labelStyle.Render(label), input)
}

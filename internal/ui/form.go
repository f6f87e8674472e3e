package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/codeprompt/companion/internal/models"
	"github.com/codeprompt/companion/internal/service"
)

// PromptForm handles prompt creation and editing
type PromptForm struct {
	inputs    []textinput.Model
	textarea  textarea.Model
	focused   int
	submitted bool
}

// Form field indices
const (
	labelField = iota
	categoryField
	tagsField
	languageField
	textField
)

// NewPromptForm creates an empty prompt form with helpful placeholders
func NewPromptForm() *PromptForm {
	inputs := make([]textinput.Model, 4)

	inputs[labelField] = textinput.New()
	inputs[labelField].Placeholder = "Prompt label"
	inputs[labelField].Focus()
	inputs[labelField].CharLimit = 100
	inputs[labelField].Width = 40

	inputs[categoryField] = textinput.New()
	inputs[categoryField].Placeholder = "general"
	inputs[categoryField].CharLimit = 50
	inputs[categoryField].Width = 40

	inputs[tagsField] = textinput.New()
	inputs[tagsField].Placeholder = "css, layout, responsive (comma-separated)"
	inputs[tagsField].CharLimit = 300
	inputs[tagsField].Width = 60

	inputs[languageField] = textinput.New()
	inputs[languageField].Placeholder = "javascript (optional)"
	inputs[languageField].CharLimit = 50
	inputs[languageField].Width = 40

	ta := textarea.New()
	ta.Placeholder = "Enter your prompt text here... Use ${name} for variables."
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.ShowLineNumbers = false
	ta.SetWidth(80)
	ta.SetHeight(10)

	return &PromptForm{
		inputs:   inputs,
		textarea: ta,
	}
}

// LoadPrompt fills the form from an existing prompt for editing.
func (f *PromptForm) LoadPrompt(prompt models.Prompt) {
	f.inputs[labelField].SetValue(prompt.Label)
	f.inputs[categoryField].SetValue(prompt.Category)
	f.inputs[tagsField].SetValue(strings.Join(prompt.Tags, ", "))
	f.inputs[languageField].SetValue(prompt.Language)
	f.textarea.SetValue(prompt.Text)
}

// Update handles form updates
func (f *PromptForm) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			f.nextField()
			return nil
		case "shift+tab":
			f.prevField()
			return nil
		case "ctrl+s":
			f.submitted = true
			return nil
		case "down", "enter":
			if f.focused != textField {
				f.nextField()
				return nil
			}
		case "up":
			if f.focused != textField {
				f.prevField()
				return nil
			}
		}

		// The textarea gets every other key unfiltered
		if f.focused == textField {
			var cmd tea.Cmd
			f.textarea, cmd = f.textarea.Update(msg)
			return cmd
		}
	}

	if f.focused != textField {
		var cmd tea.Cmd
		f.inputs[f.focused], cmd = f.inputs[f.focused].Update(msg)
		return cmd
	}
	return nil
}

// Resize updates form dimensions based on window size
func (f *PromptForm) Resize(width, height int) {
	available := height - 16
	if available < 5 {
		available = 5
	}
	taWidth := width - 8
	if taWidth < 40 {
		taWidth = 40
	}
	f.textarea.SetWidth(taWidth)
	f.textarea.SetHeight(available)
}

func (f *PromptForm) nextField() {
	if f.focused == textField {
		f.textarea.Blur()
	} else {
		f.inputs[f.focused].Blur()
	}

	f.focused++
	if f.focused > textField {
		f.focused = labelField
	}

	if f.focused == textField {
		f.textarea.Focus()
	} else {
		f.inputs[f.focused].Focus()
	}
}

func (f *PromptForm) prevField() {
	if f.focused == textField {
		f.textarea.Blur()
	} else {
		f.inputs[f.focused].Blur()
	}

	f.focused--
	if f.focused < labelField {
		f.focused = textField
	}

	if f.focused == textField {
		f.textarea.Focus()
	} else {
		f.inputs[f.focused].Focus()
	}
}

// IsInTextArea reports whether the multi-line text field has focus.
func (f *PromptForm) IsInTextArea() bool {
	return f.focused == textField
}

// ToDraft converts the form contents to a prompt draft.
func (f *PromptForm) ToDraft() service.PromptDraft {
	return service.PromptDraft{
		Label:    strings.TrimSpace(f.inputs[labelField].Value()),
		Category: strings.TrimSpace(f.inputs[categoryField].Value()),
		Tags:     splitTags(f.inputs[tagsField].Value()),
		Language: strings.TrimSpace(f.inputs[languageField].Value()),
		Text:     f.textarea.Value(),
	}
}

// ToPatch converts the form contents to an edit patch.
func (f *PromptForm) ToPatch() service.PromptPatch {
	draft := f.ToDraft()
	tags := draft.Tags
	if tags == nil {
		tags = []string{}
	}
	return service.PromptPatch{
		Label:    &draft.Label,
		Category: &draft.Category,
		Tags:     tags,
		Language: &draft.Language,
		Text:     &draft.Text,
	}
}

// IsSubmitted returns whether the form was submitted
func (f *PromptForm) IsSubmitted() bool {
	return f.submitted
}

// Reset clears the form
func (f *PromptForm) Reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.textarea.SetValue("")
	f.textarea.Blur()
	f.focused = labelField
	f.inputs[labelField].Focus()
	f.submitted = false
}

// View renders the form
func (f *PromptForm) View() string {
	var b strings.Builder

	fields := []struct {
		label string
		index int
	}{
		{"Label", labelField},
		{"Category", categoryField},
		{"Tags", tagsField},
		{"Language", languageField},
	}

	for _, field := range fields {
		b.WriteString(StyleFormLabel.Render(field.label))
		b.WriteString("\n")
		b.WriteString(f.inputs[field.index].View())
		b.WriteString("\n\n")
	}

	b.WriteString(StyleFormLabel.Render("Text"))
	b.WriteString("\n")
	b.WriteString(f.textarea.View())
	b.WriteString("\n")
	b.WriteString(StyleFormHelp.Render("Tab/Shift+Tab: switch fields • Ctrl+s: save • Esc: cancel"))

	return b.String()
}

func splitTags(s string) []string {
	var tags []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}

// TemplateForm handles template creation and editing
type TemplateForm struct {
	inputs    []textinput.Model
	textarea  textarea.Model
	focused   int
	submitted bool
}

const (
	templateNameField = iota
	templateDescriptionField
	templateContentField
)

// NewTemplateForm creates an empty template form
func NewTemplateForm() *TemplateForm {
	inputs := make([]textinput.Model, 2)

	inputs[templateNameField] = textinput.New()
	inputs[templateNameField].Placeholder = "Template name"
	inputs[templateNameField].Focus()
	inputs[templateNameField].CharLimit = 100
	inputs[templateNameField].Width = 40

	inputs[templateDescriptionField] = textinput.New()
	inputs[templateDescriptionField].Placeholder = "Brief description (optional)"
	inputs[templateDescriptionField].CharLimit = 255
	inputs[templateDescriptionField].Width = 60

	ta := textarea.New()
	ta.Placeholder = "Template content with ${variables}..."
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.ShowLineNumbers = false
	ta.SetWidth(80)
	ta.SetHeight(10)

	return &TemplateForm{
		inputs:   inputs,
		textarea: ta,
	}
}

// Update handles form updates
func (f *TemplateForm) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			f.nextField()
			return nil
		case "shift+tab":
			f.prevField()
			return nil
		case "ctrl+s":
			f.submitted = true
			return nil
		case "down", "enter":
			if f.focused != templateContentField {
				f.nextField()
				return nil
			}
		case "up":
			if f.focused != templateContentField {
				f.prevField()
				return nil
			}
		}

		if f.focused == templateContentField {
			var cmd tea.Cmd
			f.textarea, cmd = f.textarea.Update(msg)
			return cmd
		}
	}

	if f.focused != templateContentField {
		var cmd tea.Cmd
		f.inputs[f.focused], cmd = f.inputs[f.focused].Update(msg)
		return cmd
	}
	return nil
}

// Resize updates form dimensions based on window size
func (f *TemplateForm) Resize(width, height int) {
	available := height - 12
	if available < 5 {
		available = 5
	}
	taWidth := width - 8
	if taWidth < 40 {
		taWidth = 40
	}
	f.textarea.SetWidth(taWidth)
	f.textarea.SetHeight(available)
}

func (f *TemplateForm) nextField() {
	if f.focused == templateContentField {
		f.textarea.Blur()
	} else {
		f.inputs[f.focused].Blur()
	}

	f.focused++
	if f.focused > templateContentField {
		f.focused = templateNameField
	}

	if f.focused == templateContentField {
		f.textarea.Focus()
	} else {
		f.inputs[f.focused].Focus()
	}
}

func (f *TemplateForm) prevField() {
	if f.focused == templateContentField {
		f.textarea.Blur()
	} else {
		f.inputs[f.focused].Blur()
	}

	f.focused--
	if f.focused < templateNameField {
		f.focused = templateContentField
	}

	if f.focused == templateContentField {
		f.textarea.Focus()
	} else {
		f.inputs[f.focused].Focus()
	}
}

// IsInTextArea reports whether the content field has focus.
func (f *TemplateForm) IsInTextArea() bool {
	return f.focused == templateContentField
}

// Name returns the trimmed name field.
func (f *TemplateForm) Name() string {
	return strings.TrimSpace(f.inputs[templateNameField].Value())
}

// Description returns the trimmed description field.
func (f *TemplateForm) Description() string {
	return strings.TrimSpace(f.inputs[templateDescriptionField].Value())
}

// Content returns the template content.
func (f *TemplateForm) Content() string {
	return f.textarea.Value()
}

// IsSubmitted returns whether the form was submitted
func (f *TemplateForm) IsSubmitted() bool {
	return f.submitted
}

// Reset clears the form
func (f *TemplateForm) Reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.textarea.SetValue("")
	f.textarea.Blur()
	f.focused = templateNameField
	f.inputs[templateNameField].Focus()
	f.submitted = false
}

// View renders the form
func (f *TemplateForm) View() string {
	var b strings.Builder

	b.WriteString(StyleFormLabel.Render("Name"))
	b.WriteString("\n")
	b.WriteString(f.inputs[templateNameField].View())
	b.WriteString("\n\n")

	b.WriteString(StyleFormLabel.Render("Description"))
	b.WriteString("\n")
	b.WriteString(f.inputs[templateDescriptionField].View())
	b.WriteString("\n\n")

	b.WriteString(StyleFormLabel.Render("Content"))
	b.WriteString("\n")
	b.WriteString(f.textarea.View())
	b.WriteString("\n")
	b.WriteString(StyleFormHelp.Render("Tab/Shift+Tab: switch fields • Ctrl+s: save • Esc: cancel"))

	return b.String()
}

// FillForm collects values for template variables, one input per
// variable, in the order they appear in the text.
type FillForm struct {
	variables []string
	inputs    []textinput.Model
	focused   int
	submitted bool
}

// NewFillForm creates a fill form for the given variable names.
func NewFillForm(variables []string) *FillForm {
	inputs := make([]textinput.Model, len(variables))
	for i, name := range variables {
		inputs[i] = textinput.New()
		inputs[i].Placeholder = name
		inputs[i].CharLimit = 0
		inputs[i].Width = 60
	}
	if len(inputs) > 0 {
		inputs[0].Focus()
	}
	return &FillForm{variables: variables, inputs: inputs}
}

// Update handles form updates
func (f *FillForm) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			f.nextField()
			return nil
		case "shift+tab", "up":
			f.prevField()
			return nil
		case "enter":
			if f.focused == len(f.inputs)-1 {
				f.submitted = true
				return nil
			}
			f.nextField()
			return nil
		case "ctrl+s":
			f.submitted = true
			return nil
		}
	}

	if len(f.inputs) == 0 {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focused], cmd = f.inputs[f.focused].Update(msg)
	return cmd
}

func (f *FillForm) nextField() {
	if len(f.inputs) == 0 {
		return
	}
	f.inputs[f.focused].Blur()
	f.focused = (f.focused + 1) % len(f.inputs)
	f.inputs[f.focused].Focus()
}

func (f *FillForm) prevField() {
	if len(f.inputs) == 0 {
		return
	}
	f.inputs[f.focused].Blur()
	f.focused--
	if f.focused < 0 {
		f.focused = len(f.inputs) - 1
	}
	f.inputs[f.focused].Focus()
}

// Values returns the entered value per variable name. Empty inputs are
// omitted so those placeholders stay unreplaced.
func (f *FillForm) Values() map[string]string {
	values := make(map[string]string, len(f.variables))
	for i, name := range f.variables {
		if v := f.inputs[i].Value(); v != "" {
			values[name] = v
		}
	}
	return values
}

// IsSubmitted returns whether the form was submitted
func (f *FillForm) IsSubmitted() bool {
	return f.submitted
}

// View renders the form
func (f *FillForm) View() string {
	var b strings.Builder
	for i, name := range f.variables {
		b.WriteString(StyleFormLabel.Render(name))
		b.WriteString("\n")
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n\n")
	}
	b.WriteString(StyleFormHelp.Render("Enter: next/confirm • Ctrl+s: fill and copy • Esc: cancel"))
	return b.String()
}

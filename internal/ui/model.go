// Package ui implements the interactive terminal interface: a filterable
// prompt library with preview, creation and editing forms, template
// management, variable filling and a usage history view.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/codeprompt/companion/internal/analytics"
	"github.com/codeprompt/companion/internal/clipboard"
	apperrors "github.com/codeprompt/companion/internal/errors"
	"github.com/codeprompt/companion/internal/models"
	"github.com/codeprompt/companion/internal/renderer"
	"github.com/codeprompt/companion/internal/service"
	"github.com/codeprompt/companion/internal/template"
	"github.com/codeprompt/companion/internal/view"
)

// loadCompleteMsg carries the initial data load result.
type loadCompleteMsg struct {
	prompts   []models.Prompt
	templates []models.Template
}

func loadPromptsCmd(svc *service.Service, tracker *analytics.Tracker) tea.Cmd {
	return func() tea.Msg {
		prompts := svc.ListPrompts()
		tracker.Annotate(prompts)
		return loadCompleteMsg{
			prompts:   prompts,
			templates: svc.ListTemplates(),
		}
	}
}

// ViewMode represents the current view in the TUI
type ViewMode int

const (
	ViewLibrary ViewMode = iota
	ViewPromptDetail
	ViewCreatePrompt
	ViewEditPrompt
	ViewFillVariables
	ViewTemplateList
	ViewTemplateDetail
	ViewCreateTemplate
	ViewHistory
	ViewOverview
)

// Model represents the TUI application state
type Model struct {
	service *service.Service
	tracker *analytics.Tracker

	viewMode ViewMode

	// UI components
	promptList   list.Model
	templateList list.Model
	viewport     viewport.Model
	help         help.Model
	keys         KeyMap

	// Data
	prompts          []models.Prompt
	templates        []models.Template
	loading          bool
	selectedPrompt   *models.Prompt
	selectedTemplate *models.Template

	// Forms
	promptForm   *PromptForm
	templateForm *TemplateForm
	fillForm     *FillForm
	fillText     string

	deleteConfirm bool

	glamourRenderer *glamour.TermRenderer

	width  int
	height int

	statusMsg     string
	statusTimeout int

	errorHandler *apperrors.TUIErrorHandler

	err error
}

// KeyMap defines all key bindings
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Enter     key.Binding
	Back      key.Binding
	Quit      key.Binding
	Help      key.Binding
	Search    key.Binding
	Copy      key.Binding
	CopyJSON  key.Binding
	Favorite  key.Binding
	New       key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Templates key.Binding
	History   key.Binding
	Overview  key.Binding
}

// ShortHelp returns keybindings to show in the mini help view
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns keybindings to show in the full help view
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter, k.Back},
		{k.Search, k.Copy, k.CopyJSON, k.Favorite},
		{k.New, k.Edit, k.Delete},
		{k.Templates, k.History, k.Overview},
		{k.Help, k.Quit},
	}
}

var keys = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "move down"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "select"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy"),
	),
	CopyJSON: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy as JSON"),
	),
	Favorite: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "favorite"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Templates: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "templates"),
	),
	History: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "history"),
	),
	Overview: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "grouped view"),
	),
}

// NewModel creates a new TUI model
func NewModel(svc *service.Service, tracker *analytics.Tracker) (*Model, error) {
	initializeColors()

	l := list.New(nil, list.NewDefaultDelegate(), 80, 20)
	l.Title = ""
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	keyMap := list.DefaultKeyMap()
	keyMap.Filter = key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	)
	l.KeyMap = keyMap

	tl := list.New(nil, list.NewDefaultDelegate(), 80, 20)
	tl.Title = ""
	tl.SetShowStatusBar(false)
	tl.SetFilteringEnabled(true)
	tl.SetShowHelp(false)

	vp := viewport.New(80, 20)
	vp.Style = lipgloss.NewStyle()

	glamourRenderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(76),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create glamour renderer: %w", err)
	}

	return &Model{
		service:         svc,
		tracker:         tracker,
		viewMode:        ViewLibrary,
		promptList:      l,
		templateList:    tl,
		viewport:        vp,
		help:            help.New(),
		keys:            keys,
		loading:         true,
		glamourRenderer: glamourRenderer,
		errorHandler:    apperrors.NewTUIErrorHandler(false),
	}, nil
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return loadPromptsCmd(m.service, m.tracker)
}

// tickMsg is sent to clear the status message
type tickMsg time.Time

func clearStatusCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.statusTimeout > 0 {
			m.statusTimeout--
			if m.statusTimeout == 0 {
				m.statusMsg = ""
			} else {
				return m, clearStatusCmd()
			}
		}
		return m, nil

	case loadCompleteMsg:
		m.loading = false
		m.prompts = msg.prompts
		m.templates = msg.templates
		m.promptList.SetItems(promptItems(m.prompts))
		m.templateList.SetItems(templateItems(m.templates))
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		const reserved = 8
		availableHeight := msg.Height - reserved
		if availableHeight < 5 {
			availableHeight = 5
		}

		m.promptList.SetSize(msg.Width-4, availableHeight)
		m.templateList.SetSize(msg.Width-4, availableHeight)
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = availableHeight
		if m.promptForm != nil {
			m.promptForm.Resize(msg.Width, msg.Height)
		}
		if m.templateForm != nil {
			m.templateForm.Resize(msg.Width, msg.Height)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateActiveComponent(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Forms swallow almost everything
	switch m.viewMode {
	case ViewCreatePrompt, ViewEditPrompt:
		return m.handlePromptFormKey(msg)
	case ViewCreateTemplate:
		return m.handleTemplateFormKey(msg)
	case ViewFillVariables:
		return m.handleFillFormKey(msg)
	}

	// Let the active list handle keys while its filter input is open
	if m.viewMode == ViewLibrary && m.promptList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.promptList, cmd = m.promptList.Update(msg)
		return m, cmd
	}
	if m.viewMode == ViewTemplateList && m.templateList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.templateList, cmd = m.templateList.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.viewMode == ViewLibrary {
			return m, tea.Quit
		}
		m.backToLibrary()
		return m, nil

	case key.Matches(msg, m.keys.Back):
		switch m.viewMode {
		case ViewLibrary:
			// esc also clears an applied filter; the list handles that
		case ViewTemplateDetail:
			m.viewMode = ViewTemplateList
			return m, nil
		default:
			m.backToLibrary()
			return m, nil
		}

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch m.viewMode {
	case ViewLibrary:
		return m.handleLibraryKey(msg)
	case ViewPromptDetail:
		return m.handleDetailKey(msg)
	case ViewTemplateList:
		return m.handleTemplateListKey(msg)
	case ViewTemplateDetail:
		return m.handleTemplateDetailKey(msg)
	case ViewHistory, ViewOverview:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) backToLibrary() {
	m.viewMode = ViewLibrary
	m.selectedPrompt = nil
	m.selectedTemplate = nil
	m.promptForm = nil
	m.templateForm = nil
	m.fillForm = nil
	m.deleteConfirm = false
}

func (m Model) handleLibraryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Enter):
		if p, ok := m.promptList.SelectedItem().(models.Prompt); ok {
			m.selectedPrompt = &p
			m.viewMode = ViewPromptDetail
			m.renderDetail()
		}
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		if p, ok := m.promptList.SelectedItem().(models.Prompt); ok {
			return m.startCopy(p)
		}
		return m, nil

	case key.Matches(msg, m.keys.Favorite):
		if p, ok := m.promptList.SelectedItem().(models.Prompt); ok {
			if err := m.service.ToggleFavorite(p.ID); err != nil {
				return m.setError(err), clearStatusCmd()
			}
			model := m.setStatus("Favorite toggled")
			return model, tea.Batch(loadPromptsCmd(model.service, model.tracker), clearStatusCmd())
		}
		return m, nil

	case key.Matches(msg, m.keys.New):
		m.promptForm = NewPromptForm()
		m.promptForm.Resize(m.width, m.height)
		m.viewMode = ViewCreatePrompt
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		if p, ok := m.promptList.SelectedItem().(models.Prompt); ok {
			if p.BuiltIn {
				return m.setStatus("Built-in prompts cannot be edited"), clearStatusCmd()
			}
			m.selectedPrompt = &p
			m.promptForm = NewPromptForm()
			m.promptForm.LoadPrompt(p)
			m.promptForm.Resize(m.width, m.height)
			m.viewMode = ViewEditPrompt
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if p, ok := m.promptList.SelectedItem().(models.Prompt); ok {
			if p.BuiltIn {
				return m.setStatus("Built-in prompts cannot be deleted"), clearStatusCmd()
			}
			if !m.deleteConfirm {
				m.deleteConfirm = true
				return m.setStatus(fmt.Sprintf("Press d again to delete %q", p.Label)), clearStatusCmd()
			}
			m.deleteConfirm = false
			if err := m.service.DeletePrompt(p.ID); err != nil {
				return m.setError(err), clearStatusCmd()
			}
			model := m.setStatus("Prompt deleted")
			return model, tea.Batch(loadPromptsCmd(model.service, model.tracker), clearStatusCmd())
		}
		return m, nil

	case key.Matches(msg, m.keys.Templates):
		m.viewMode = ViewTemplateList
		return m, nil

	case key.Matches(msg, m.keys.History):
		m.viewMode = ViewHistory
		m.renderHistory()
		return m, nil

	case key.Matches(msg, m.keys.Overview):
		m.viewMode = ViewOverview
		m.renderOverview()
		return m, nil
	}

	m.deleteConfirm = false
	var cmd tea.Cmd
	m.promptList, cmd = m.promptList.Update(msg)
	return m, cmd
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Copy):
		if m.selectedPrompt != nil {
			return m.startCopy(*m.selectedPrompt)
		}
		return m, nil

	case key.Matches(msg, m.keys.CopyJSON):
		if m.selectedPrompt != nil {
			out, err := renderer.MessagesJSON(m.selectedPrompt.Text)
			if err != nil {
				return m.setError(err), clearStatusCmd()
			}
			if err := clipboard.Copy(out); err != nil {
				return m.setError(err), clearStatusCmd()
			}
			m.recordUsage(*m.selectedPrompt)
			return m.setStatus("Copied as JSON!"), clearStatusCmd()
		}
		return m, nil

	case key.Matches(msg, m.keys.Favorite):
		if m.selectedPrompt != nil {
			if err := m.service.ToggleFavorite(m.selectedPrompt.ID); err != nil {
				return m.setError(err), clearStatusCmd()
			}
			model := m.setStatus("Favorite toggled")
			return model, tea.Batch(loadPromptsCmd(model.service, model.tracker), clearStatusCmd())
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleTemplateListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Enter):
		if item, ok := m.templateList.SelectedItem().(templateItem); ok {
			m.selectedTemplate = &item.template
			m.viewMode = ViewTemplateDetail
			m.renderTemplateDetail()
		}
		return m, nil

	case key.Matches(msg, m.keys.New):
		m.templateForm = NewTemplateForm()
		m.templateForm.Resize(m.width, m.height)
		m.viewMode = ViewCreateTemplate
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if item, ok := m.templateList.SelectedItem().(templateItem); ok {
			if !m.deleteConfirm {
				m.deleteConfirm = true
				return m.setStatus(fmt.Sprintf("Press d again to delete %q", item.template.Name)), clearStatusCmd()
			}
			m.deleteConfirm = false
			if err := m.service.DeleteTemplate(item.template.ID); err != nil {
				return m.setError(err), clearStatusCmd()
			}
			model := m.setStatus("Template deleted")
			return model, tea.Batch(loadPromptsCmd(model.service, model.tracker), clearStatusCmd())
		}
		return m, nil
	}

	m.deleteConfirm = false
	var cmd tea.Cmd
	m.templateList, cmd = m.templateList.Update(msg)
	return m, cmd
}

func (m Model) handleTemplateDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Copy):
		if m.selectedTemplate != nil {
			m.fillText = m.selectedTemplate.Content
			variables := template.ExtractVariables(m.fillText)
			if len(variables) == 0 {
				return m.copyFilled(m.fillText, nil)
			}
			m.fillForm = NewFillForm(variables)
			m.viewMode = ViewFillVariables
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handlePromptFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.backToLibrary()
		return m, nil
	}

	cmd := m.promptForm.Update(msg)
	if !m.promptForm.IsSubmitted() {
		return m, cmd
	}

	if m.viewMode == ViewEditPrompt && m.selectedPrompt != nil {
		if err := m.service.EditPrompt(m.selectedPrompt.ID, m.promptForm.ToPatch()); err != nil {
			m.promptForm.submitted = false
			return m.setError(err), clearStatusCmd()
		}
		m.backToLibrary()
		model := m.setStatus("Prompt updated")
		return model, tea.Batch(loadPromptsCmd(model.service, model.tracker), clearStatusCmd())
	}

	if _, err := m.service.AddPrompt(m.promptForm.ToDraft()); err != nil {
		m.promptForm.submitted = false
		return m.setError(err), clearStatusCmd()
	}
	m.backToLibrary()
	model := m.setStatus("Prompt created")
	return model, tea.Batch(loadPromptsCmd(model.service, model.tracker), clearStatusCmd())
}

func (m Model) handleTemplateFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.viewMode = ViewTemplateList
		m.templateForm = nil
		return m, nil
	}

	cmd := m.templateForm.Update(msg)
	if !m.templateForm.IsSubmitted() {
		return m, cmd
	}

	if _, err := m.service.AddTemplate(m.templateForm.Name(), m.templateForm.Description(), m.templateForm.Content()); err != nil {
		m.templateForm.submitted = false
		return m.setError(err), clearStatusCmd()
	}
	m.viewMode = ViewTemplateList
	m.templateForm = nil
	model := m.setStatus("Template created")
	return model, tea.Batch(loadPromptsCmd(model.service, model.tracker), clearStatusCmd())
}

func (m Model) handleFillFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.backToLibrary()
		return m, nil
	}

	cmd := m.fillForm.Update(msg)
	if !m.fillForm.IsSubmitted() {
		return m, cmd
	}
	return m.copyFilled(m.fillText, m.fillForm.Values())
}

// startCopy begins the copy flow for a prompt: straight to the
// clipboard when the text has no variables, otherwise through the
// fill form first.
func (m Model) startCopy(p models.Prompt) (tea.Model, tea.Cmd) {
	m.selectedPrompt = &p
	m.fillText = p.Text
	variables := template.ExtractVariables(p.Text)
	if len(variables) == 0 {
		return m.copyFilled(p.Text, nil)
	}
	m.fillForm = NewFillForm(variables)
	m.viewMode = ViewFillVariables
	return m, nil
}

// copyFilled substitutes variables, copies the result and records usage.
func (m Model) copyFilled(text string, values map[string]string) (tea.Model, tea.Cmd) {
	resolver := template.ResolverFunc(func(ctx context.Context, name string) (string, bool, error) {
		if v, ok := values[name]; ok {
			return v, true, nil
		}
		if name == template.VarClipboard {
			if content, err := clipboard.Read(); err == nil {
				return content, true, nil
			}
		}
		return "", false, nil
	})

	filled, err := template.Fill(context.Background(), text, resolver)
	if err != nil {
		m.backToLibrary()
		return m.setError(err), clearStatusCmd()
	}
	if err := clipboard.Copy(filled); err != nil {
		m.backToLibrary()
		return m.setError(err), clearStatusCmd()
	}

	if m.selectedPrompt != nil {
		m.recordUsage(*m.selectedPrompt)
	}
	m.backToLibrary()
	model := m.setStatus("Copied to clipboard!")
	return model, tea.Batch(loadPromptsCmd(model.service, model.tracker), clearStatusCmd())
}

func (m *Model) recordUsage(p models.Prompt) {
	if err := m.tracker.RecordUsage(p.ID, p.Category); err != nil {
		m.statusMsg = fmt.Sprintf("Warning: %v", err)
		m.statusTimeout = 3
	}
}

func (m Model) setStatus(text string) Model {
	m.statusMsg = text
	m.statusTimeout = 3
	return m
}

// setError formats an error for the status line with a severity icon.
func (m Model) setError(err error) Model {
	icon, _ := m.errorHandler.GetErrorStyle(err)
	return m.setStatus(icon + " " + m.errorHandler.FormatError(err))
}

func (m Model) updateActiveComponent(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.viewMode {
	case ViewLibrary:
		m.promptList, cmd = m.promptList.Update(msg)
	case ViewTemplateList:
		m.templateList, cmd = m.templateList.Update(msg)
	default:
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

// Rendering

func (m *Model) renderDetail() {
	if m.selectedPrompt == nil {
		return
	}
	p := m.selectedPrompt

	var meta []string
	meta = append(meta, "Category: "+p.Category)
	if p.Language != "" {
		meta = append(meta, "Language: "+p.Language)
	}
	if len(p.Tags) > 0 {
		meta = append(meta, "Tags: "+strings.Join(p.Tags, ", "))
	}
	if vars := template.ExtractVariables(p.Text); len(vars) > 0 {
		meta = append(meta, "Variables: "+strings.Join(vars, ", "))
	}
	if p.UseCount > 0 {
		meta = append(meta, fmt.Sprintf("Used %dx", p.UseCount))
	}

	body, err := m.glamourRenderer.Render(p.Text)
	if err != nil {
		body = p.Text
	}

	m.viewport.SetContent(CreateMetadata(strings.Join(meta, " • ")) + "\n" + body)
	m.viewport.GotoTop()
}

func (m *Model) renderTemplateDetail() {
	if m.selectedTemplate == nil {
		return
	}
	t := m.selectedTemplate

	var b strings.Builder
	if t.Description != "" {
		b.WriteString(StyleTextMuted.Render(t.Description))
		b.WriteString("\n")
	}
	if len(t.Variables) > 0 {
		b.WriteString(CreateMetadata("Variables: " + strings.Join(t.Variables, ", ")))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(template.Preview(t.Content))

	m.viewport.SetContent(b.String())
	m.viewport.GotoTop()
}

func (m *Model) renderHistory() {
	history := view.History(m.prompts, m.service.Config().MaxHistoryItems)
	if len(history) == 0 {
		m.viewport.SetContent(StyleTextMuted.Render("No prompts used yet"))
		m.viewport.GotoTop()
		return
	}

	var b strings.Builder
	for _, p := range history {
		lastUsed := time.UnixMilli(p.LastUsed).Format("2006-01-02 15:04")
		b.WriteString(StyleText.Render(p.Label))
		b.WriteString("\n")
		b.WriteString(StyleTextDim.Render(fmt.Sprintf("  %s • used %dx", lastUsed, p.UseCount)))
		b.WriteString("\n\n")
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoTop()
}

func (m *Model) renderOverview() {
	sections := view.Sections(m.prompts, m.service.Config())

	var b strings.Builder
	for _, section := range sections {
		b.WriteString(StyleSubtitle.Render(section.Title))
		b.WriteString("\n")
		for _, p := range section.Prompts {
			marker := "  "
			if p.IsFavorite {
				marker = "★ "
			}
			b.WriteString(StyleText.Render(marker + p.Label))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoTop()
}

// View renders the TUI
func (m Model) View() string {
	if m.loading {
		return AddMainPadding(StyleTextMuted.Render("Loading prompts..."))
	}

	var b strings.Builder

	switch m.viewMode {
	case ViewLibrary:
		b.WriteString(CreateMainHeader("Prompt Library"))
		b.WriteString("\n")
		b.WriteString(m.promptList.View())
		b.WriteString("\n")
		if m.help.ShowAll {
			b.WriteString(m.help.View(m.keys))
		} else {
			b.WriteString(CreateHelp([]string{
				"Enter: view", "c: copy", "f: favorite", "n: new", "e: edit", "d: delete",
				"t: templates", "u: history", "g: grouped", "/: filter", "?: help", "q: quit",
			}, m.width))
		}

	case ViewPromptDetail:
		title := "Prompt"
		if m.selectedPrompt != nil {
			title = m.selectedPrompt.Label
		}
		b.WriteString(CreateSubPageHeader(title))
		b.WriteString("\n")
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
		b.WriteString(CreateHelp([]string{"c: copy", "y: copy as JSON", "f: favorite", "Esc: back"}, m.width))

	case ViewCreatePrompt:
		b.WriteString(CreateSubPageHeader("New Prompt"))
		b.WriteString("\n")
		b.WriteString(AddFormPadding(m.promptForm.View()))

	case ViewEditPrompt:
		b.WriteString(CreateSubPageHeader("Edit Prompt"))
		b.WriteString("\n")
		b.WriteString(AddFormPadding(m.promptForm.View()))

	case ViewFillVariables:
		b.WriteString(CreateSubPageHeader("Fill Variables"))
		b.WriteString("\n")
		b.WriteString(AddFormPadding(m.fillForm.View()))

	case ViewTemplateList:
		b.WriteString(CreateSubPageHeader("Templates"))
		b.WriteString("\n")
		b.WriteString(m.templateList.View())
		b.WriteString("\n")
		b.WriteString(CreateHelp([]string{"Enter: view", "n: new", "d: delete", "Esc: back"}, m.width))

	case ViewTemplateDetail:
		title := "Template"
		if m.selectedTemplate != nil {
			title = m.selectedTemplate.Name
		}
		b.WriteString(CreateSubPageHeader(title))
		b.WriteString("\n")
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
		b.WriteString(CreateHelp([]string{"c: fill and copy", "Esc: back"}, m.width))

	case ViewCreateTemplate:
		b.WriteString(CreateSubPageHeader("New Template"))
		b.WriteString("\n")
		b.WriteString(AddFormPadding(m.templateForm.View()))

	case ViewHistory:
		b.WriteString(CreateSubPageHeader("Recently Used"))
		b.WriteString("\n")
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
		b.WriteString(CreateHelp([]string{"↑/↓: scroll", "Esc: back"}, m.width))

	case ViewOverview:
		b.WriteString(CreateSubPageHeader("Library Overview"))
		b.WriteString("\n")
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
		b.WriteString(CreateHelp([]string{"↑/↓: scroll", "Esc: back"}, m.width))
	}

	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(CreateStatus(m.statusMsg, "info"))
	}

	return AddMainPadding(b.String())
}

func promptItems(prompts []models.Prompt) []list.Item {
	items := make([]list.Item, len(prompts))
	for i, p := range prompts {
		items[i] = p
	}
	return items
}

// templateItem adapts a template to the bubbles list.Item interface.
// The wrapper is needed because Template's Description field would
// collide with the interface's Description method.
type templateItem struct {
	template models.Template
}

func (t templateItem) FilterValue() string {
	return t.template.Name
}

func (t templateItem) Title() string {
	return t.template.Name
}

func (t templateItem) Description() string {
	var parts []string
	if t.template.Description != "" {
		parts = append(parts, t.template.Description)
	}
	if len(t.template.Variables) > 0 {
		parts = append(parts, "Variables: "+strings.Join(t.template.Variables, ", "))
	}
	if len(parts) == 0 {
		return "No description"
	}
	return strings.Join(parts, " • ")
}

func templateItems(templates []models.Template) []list.Item {
	items := make([]list.Item, len(templates))
	for i, t := range templates {
		items[i] = templateItem{template: t}
	}
	return items
}

// Package cli provides headless command-line interface functionality.
// Commands are dispatched by name and talk directly to the service,
// tracker and the pure search/view helpers; output goes to stdout in
// text or JSON form.
package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/codeprompt/companion/internal/analytics"
	"github.com/codeprompt/companion/internal/clipboard"
	apperrors "github.com/codeprompt/companion/internal/errors"
	"github.com/codeprompt/companion/internal/models"
	"github.com/codeprompt/companion/internal/renderer"
	"github.com/codeprompt/companion/internal/search"
	"github.com/codeprompt/companion/internal/service"
	"github.com/codeprompt/companion/internal/template"
	"github.com/codeprompt/companion/internal/view"
)

// CLI dispatches headless commands against the service layer.
type CLI struct {
	service      *service.Service
	tracker      *analytics.Tracker
	errorHandler *apperrors.CLIErrorHandler
}

// NewCLI creates a new CLI instance
func NewCLI(svc *service.Service, tracker *analytics.Tracker) *CLI {
	return &CLI{
		service:      svc,
		tracker:      tracker,
		errorHandler: apperrors.NewCLIErrorHandler(os.Getenv("VERBOSE") == "true"),
	}
}

// ExecuteCommand processes a CLI command and returns the result
func (c *CLI) ExecuteCommand(args []string) error {
	if len(args) == 0 {
		return c.printUsage()
	}

	command := args[0]
	commandArgs := args[1:]

	var err error
	switch command {
	case "list", "ls":
		err = c.listPrompts(commandArgs)
	case "search":
		err = c.searchPrompts(commandArgs)
	case "get", "show":
		err = c.showPrompt(commandArgs)
	case "create", "new":
		err = c.createPrompt(commandArgs)
	case "edit":
		err = c.editPrompt(commandArgs)
	case "delete", "rm":
		err = c.deletePrompt(commandArgs)
	case "copy":
		err = c.copyPrompt(commandArgs)
	case "render":
		err = c.renderPrompt(commandArgs)
	case "preview":
		err = c.previewPrompt(commandArgs)
	case "favorite", "fav":
		err = c.toggleFavorite(commandArgs)
	case "related":
		err = c.relatedPrompts(commandArgs)
	case "tags":
		err = c.listTags()
	case "categories":
		err = c.listCategories()
	case "history":
		err = c.showHistory()
	case "stats":
		err = c.showStats()
	case "template":
		err = c.handleTemplate(commandArgs)
	case "templates":
		err = c.listTemplates(commandArgs)
	case "export":
		err = c.exportPrompts(commandArgs)
	case "import":
		err = c.importPrompts(commandArgs)
	case "help":
		err = c.printUsage()
	default:
		err = apperrors.CommandNotFoundError(command)
	}

	if err != nil {
		return c.errorHandler.HandleError(err)
	}
	return nil
}

// annotatedPrompts returns the full prompt list with usage data joined in.
func (c *CLI) annotatedPrompts() []models.Prompt {
	prompts := c.service.ListPrompts()
	c.tracker.Annotate(prompts)
	return prompts
}

func (c *CLI) listPrompts(args []string) error {
	flags := parseFlags(args)
	prompts := c.annotatedPrompts()

	prompts = search.FilterByCategory(prompts, flags.value("category"))
	prompts = search.FilterByLanguage(prompts, flags.value("language"))
	if tags := flags.value("tag"); tags != "" {
		prompts = search.FilterByTags(prompts, splitList(tags))
	}
	if flags.has("favorites") {
		prompts = search.FilterFavorites(prompts)
	}

	order := flags.value("sort")
	if order == "" {
		order = c.service.Config().SortOrder
	}
	prompts = search.Sort(prompts, order)

	if flags.value("format") == "json" {
		return printJSON(prompts)
	}
	if len(prompts) == 0 {
		fmt.Println("No prompts found")
		return nil
	}
	for _, p := range prompts {
		printPromptLine(p)
	}
	return nil
}

func (c *CLI) searchPrompts(args []string) error {
	flags := parseFlags(args)
	if len(flags.positional) == 0 {
		return apperrors.InvalidCommandError("search", "query is required")
	}
	query := strings.Join(flags.positional, " ")

	prompts := c.annotatedPrompts()
	var results []models.Prompt
	if flags.has("fuzzy") {
		results = search.Fuzzy(prompts, query)
	} else {
		results = search.Search(prompts, query)
	}

	if flags.value("format") == "json" {
		return printJSON(results)
	}
	if len(results) == 0 {
		fmt.Printf("No prompts match %q\n", query)
		return nil
	}
	for _, p := range results {
		printPromptLine(p)
	}
	return nil
}

func (c *CLI) showPrompt(args []string) error {
	if len(args) == 0 {
		return apperrors.InvalidCommandError("show", "prompt id is required")
	}
	prompt, err := c.service.GetPrompt(args[0])
	if err != nil {
		return err
	}
	c.tracker.Annotate([]models.Prompt{prompt})

	fmt.Printf("ID:       %s\n", prompt.ID)
	fmt.Printf("Label:    %s\n", prompt.Label)
	fmt.Printf("Category: %s\n", prompt.Category)
	if prompt.Language != "" {
		fmt.Printf("Language: %s\n", prompt.Language)
	}
	if len(prompt.Tags) > 0 {
		fmt.Printf("Tags:     %s\n", strings.Join(prompt.Tags, ", "))
	}
	if prompt.IsFavorite {
		fmt.Println("Favorite: yes")
	}
	if vars := template.ExtractVariables(prompt.Text); len(vars) > 0 {
		fmt.Printf("Variables: %s\n", strings.Join(vars, ", "))
	}
	fmt.Println()

	rendered, err := renderer.Markdown(prompt.Text, 80)
	if err != nil {
		fmt.Println(prompt.Text)
		return nil
	}
	fmt.Print(rendered)
	return nil
}

func (c *CLI) createPrompt(args []string) error {
	flags := parseFlags(args)
	draft := service.PromptDraft{
		Label:    flags.value("label"),
		Text:     flags.value("text"),
		Category: flags.value("category"),
		Language: flags.value("language"),
		Tags:     splitList(flags.value("tags")),
	}

	prompt, err := c.service.AddPrompt(draft)
	if err != nil {
		return err
	}
	fmt.Printf("Created prompt %s (%s)\n", prompt.Label, prompt.ID)
	return nil
}

func (c *CLI) editPrompt(args []string) error {
	flags := parseFlags(args)
	if len(flags.positional) == 0 {
		return apperrors.InvalidCommandError("edit", "prompt id is required")
	}
	id := flags.positional[0]
	prompt, err := c.service.GetPrompt(id)
	if err != nil {
		return err
	}
	if prompt.BuiltIn {
		return apperrors.ReadOnlyError(fmt.Sprintf("Built-in prompt '%s'", id))
	}

	var patch service.PromptPatch
	if v, ok := flags.lookup("label"); ok {
		patch.Label = &v
	}
	if v, ok := flags.lookup("text"); ok {
		patch.Text = &v
	}
	if v, ok := flags.lookup("category"); ok {
		patch.Category = &v
	}
	if v, ok := flags.lookup("language"); ok {
		patch.Language = &v
	}
	if v, ok := flags.lookup("tags"); ok {
		patch.Tags = splitList(v)
	}

	if err := c.service.EditPrompt(id, patch); err != nil {
		return err
	}
	fmt.Printf("Edited prompt %s\n", id)
	return nil
}

func (c *CLI) deletePrompt(args []string) error {
	if len(args) == 0 {
		return apperrors.InvalidCommandError("delete", "prompt id is required")
	}
	if err := c.service.DeletePrompt(args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted prompt %s\n", args[0])
	return nil
}

func (c *CLI) copyPrompt(args []string) error {
	flags := parseFlags(args)
	if len(flags.positional) == 0 {
		return apperrors.InvalidCommandError("copy", "prompt id is required")
	}
	prompt, err := c.service.GetPrompt(flags.positional[0])
	if err != nil {
		return err
	}

	text, err := c.fillText(prompt.Text, flags)
	if err != nil {
		return err
	}

	if err := clipboard.Copy(text); err != nil {
		return apperrors.ClipboardError(err)
	}
	if err := c.tracker.RecordUsage(prompt.ID, prompt.Category); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to record usage: %v\n", err)
	}
	fmt.Println("Copied to clipboard!")
	return nil
}

func (c *CLI) renderPrompt(args []string) error {
	flags := parseFlags(args)
	if len(flags.positional) == 0 {
		return apperrors.InvalidCommandError("render", "prompt id is required")
	}
	prompt, err := c.service.GetPrompt(flags.positional[0])
	if err != nil {
		return err
	}

	text, err := c.fillText(prompt.Text, flags)
	if err != nil {
		return err
	}

	if flags.value("format") == "json" {
		out, err := renderer.MessagesJSON(text)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}
	fmt.Println(text)
	return nil
}

func (c *CLI) previewPrompt(args []string) error {
	if len(args) == 0 {
		return apperrors.InvalidCommandError("preview", "prompt id is required")
	}
	prompt, err := c.service.GetPrompt(args[0])
	if err != nil {
		return err
	}
	fmt.Println(template.Preview(prompt.Text))
	return nil
}

// fillText substitutes template variables using --var flags, the system
// clipboard for ${clipboard}, and interactive input for everything else.
func (c *CLI) fillText(text string, flags *flagSet) (string, error) {
	vars := make(template.MapResolver)
	for _, pair := range flags.values("var") {
		if key, value, ok := strings.Cut(pair, "="); ok {
			vars[key] = value
		}
	}

	resolver := template.ResolverFunc(func(ctx context.Context, name string) (string, bool, error) {
		if value, ok := vars[name]; ok {
			return value, true, nil
		}
		switch name {
		case template.VarClipboard:
			content, err := clipboard.Read()
			if err != nil {
				return "", false, nil
			}
			return content, true, nil
		case template.VarSelection, template.VarFileName, template.VarFileType:
			// No editor context in a terminal; leave unreplaced unless
			// supplied via --var.
			return "", false, nil
		}
		if flags.has("no-input") {
			return "", false, nil
		}
		fmt.Printf("Enter value for %s: ", name)
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", false, nil
		}
		return strings.TrimRight(line, "\r\n"), true, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	return template.Fill(ctx, text, resolver)
}

func (c *CLI) toggleFavorite(args []string) error {
	if len(args) == 0 {
		return apperrors.InvalidCommandError("favorite", "prompt id is required")
	}
	id := args[0]
	if _, err := c.service.GetPrompt(id); err != nil {
		return err
	}
	if err := c.service.ToggleFavorite(id); err != nil {
		return err
	}
	if c.service.IsFavorite(id) {
		fmt.Printf("Added %s to favorites\n", id)
	} else {
		fmt.Printf("Removed %s from favorites\n", id)
	}
	return nil
}

func (c *CLI) relatedPrompts(args []string) error {
	flags := parseFlags(args)
	if len(flags.positional) == 0 {
		return apperrors.InvalidCommandError("related", "prompt id is required")
	}
	prompt, err := c.service.GetPrompt(flags.positional[0])
	if err != nil {
		return err
	}

	limit := 5
	if v := flags.value("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	related := search.Related(prompt, c.annotatedPrompts(), limit)
	if len(related) == 0 {
		fmt.Println("No related prompts")
		return nil
	}
	for _, p := range related {
		printPromptLine(p)
	}
	return nil
}

func (c *CLI) listTags() error {
	tags := search.UniqueTags(c.service.ListPrompts())
	for _, tag := range tags {
		fmt.Println(tag)
	}
	return nil
}

func (c *CLI) listCategories() error {
	categories := search.UniqueCategories(c.service.ListPrompts())
	for _, category := range categories {
		fmt.Println(category)
	}
	return nil
}

func (c *CLI) showHistory() error {
	prompts := c.annotatedPrompts()
	history := view.History(prompts, c.service.Config().MaxHistoryItems)
	if len(history) == 0 {
		fmt.Println("No prompts used yet")
		return nil
	}
	for _, p := range history {
		lastUsed := time.UnixMilli(p.LastUsed).Format("2006-01-02 15:04")
		fmt.Printf("%-40s  last used %s\n", p.Label, lastUsed)
	}
	return nil
}

func (c *CLI) showStats() error {
	record := c.tracker.Snapshot()
	fmt.Printf("Total uses: %d\n", record.TotalUses())
	if len(record.CategoryUsage) == 0 {
		return nil
	}
	fmt.Println("\nBy category:")
	for _, category := range search.UniqueCategories(c.service.ListPrompts()) {
		if n := record.CategoryUsage[category]; n > 0 {
			fmt.Printf("  %-20s %d\n", category, n)
		}
	}
	return nil
}

func (c *CLI) listTemplates(args []string) error {
	flags := parseFlags(args)
	templates := c.service.ListTemplates()

	if flags.value("format") == "json" {
		return printJSON(templates)
	}
	if len(templates) == 0 {
		fmt.Println("No templates found")
		return nil
	}
	for _, t := range templates {
		line := fmt.Sprintf("%s  %s", t.ID, t.Name)
		if len(t.Variables) > 0 {
			line += fmt.Sprintf("  [%s]", strings.Join(t.Variables, ", "))
		}
		fmt.Println(line)
	}
	return nil
}

func (c *CLI) handleTemplate(args []string) error {
	if len(args) == 0 {
		return apperrors.InvalidCommandError("template", "subcommand is required (list, show, create, delete, render, preview)")
	}

	sub := args[0]
	subArgs := args[1:]

	switch sub {
	case "list":
		return c.listTemplates(subArgs)
	case "show":
		if len(subArgs) == 0 {
			return apperrors.InvalidCommandError("template show", "template id is required")
		}
		tmpl, err := c.service.GetTemplate(subArgs[0])
		if err != nil {
			return err
		}
		fmt.Printf("ID:          %s\n", tmpl.ID)
		fmt.Printf("Name:        %s\n", tmpl.Name)
		if tmpl.Description != "" {
			fmt.Printf("Description: %s\n", tmpl.Description)
		}
		if len(tmpl.Variables) > 0 {
			fmt.Printf("Variables:   %s\n", strings.Join(tmpl.Variables, ", "))
		}
		fmt.Printf("\n%s\n", tmpl.Content)
		return nil
	case "create":
		flags := parseFlags(subArgs)
		tmpl, err := c.service.AddTemplate(flags.value("name"), flags.value("description"), flags.value("content"))
		if err != nil {
			return err
		}
		fmt.Printf("Created template %s (%s)\n", tmpl.Name, tmpl.ID)
		return nil
	case "delete", "rm":
		if len(subArgs) == 0 {
			return apperrors.InvalidCommandError("template delete", "template id is required")
		}
		if err := c.service.DeleteTemplate(subArgs[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted template %s\n", subArgs[0])
		return nil
	case "render":
		flags := parseFlags(subArgs)
		if len(flags.positional) == 0 {
			return apperrors.InvalidCommandError("template render", "template id is required")
		}
		tmpl, err := c.service.GetTemplate(flags.positional[0])
		if err != nil {
			return err
		}
		text, err := c.fillText(tmpl.Content, flags)
		if err != nil {
			return err
		}
		fmt.Println(text)
		return nil
	case "preview":
		if len(subArgs) == 0 {
			return apperrors.InvalidCommandError("template preview", "template id is required")
		}
		tmpl, err := c.service.GetTemplate(subArgs[0])
		if err != nil {
			return err
		}
		fmt.Println(template.Preview(tmpl.Content))
		return nil
	default:
		return apperrors.CommandNotFoundError("template " + sub)
	}
}

func (c *CLI) exportPrompts(args []string) error {
	if len(args) == 0 {
		return apperrors.InvalidCommandError("export", "output file is required")
	}
	if err := c.service.ExportPrompts(args[0]); err != nil {
		return err
	}
	fmt.Printf("Exported prompts to %s\n", args[0])
	return nil
}

func (c *CLI) importPrompts(args []string) error {
	if len(args) == 0 {
		return apperrors.InvalidCommandError("import", "input file is required")
	}
	result, err := c.service.ImportPrompts(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d prompts\n", result.Imported)
	if result.Dropped > 0 {
		fmt.Printf("⚠️  %d invalid prompts were dropped\n", result.Dropped)
	}
	if result.Reassigned > 0 {
		fmt.Printf("%d prompts were given new ids to avoid conflicts\n", result.Reassigned)
	}
	return nil
}

func (c *CLI) printUsage() error {
	fmt.Println(`Commands:
  list, ls             List prompts (--category, --tag, --language, --favorites, --sort, --format json)
  search <query>       Search prompts (--fuzzy for fuzzy matching)
  get, show <id>       Show a prompt
  create, new          Create a prompt (--label, --text, --category, --tags, --language)
  edit <id>            Edit a prompt
  delete, rm <id>      Delete a prompt
  copy <id>            Fill variables and copy to clipboard
  render <id>          Fill variables and print (--var name=value, --format json)
  preview <id>         Print with placeholder stand-ins
  favorite, fav <id>   Toggle favorite status
  related <id>         Show similar prompts (--limit)
  tags                 List all tags
  categories           List all categories
  history              Show recently used prompts
  stats                Show usage statistics
  template <cmd>       Template management (list, show, create, delete, render, preview)
  templates            List templates
  export <file>        Export user prompts to a JSON file
  import <file>        Import prompts from a JSON file
  help                 Show this help`)
	return nil
}

// Helpers

func printPromptLine(p models.Prompt) {
	marker := " "
	if p.IsFavorite {
		marker = "★"
	}
	line := fmt.Sprintf("%s %-24s  %-40s  %s", marker, p.ID, p.Label, p.Category)
	if len(p.Tags) > 0 {
		line += "  [" + strings.Join(p.Tags, ", ") + "]"
	}
	fmt.Println(line)
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var parts []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}

// flagSet is a minimal --flag/--flag value parser for command args.
type flagSet struct {
	positional []string
	flags      map[string][]string
}

func parseFlags(args []string) *flagSet {
	fs := &flagSet{flags: make(map[string][]string)}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "--") {
			fs.positional = append(fs.positional, arg)
			continue
		}
		name := strings.TrimPrefix(arg, "--")
		if key, value, ok := strings.Cut(name, "="); ok {
			fs.flags[key] = append(fs.flags[key], value)
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "--") {
			fs.flags[name] = append(fs.flags[name], args[i+1])
			i++
		} else {
			fs.flags[name] = append(fs.flags[name], "")
		}
	}
	return fs
}

func (f *flagSet) has(name string) bool {
	_, ok := f.flags[name]
	return ok
}

func (f *flagSet) value(name string) string {
	if values := f.flags[name]; len(values) > 0 {
		return values[len(values)-1]
	}
	return ""
}

func (f *flagSet) values(name string) []string {
	return f.flags[name]
}

func (f *flagSet) lookup(name string) (string, bool) {
	if values := f.flags[name]; len(values) > 0 {
		return values[len(values)-1], true
	}
	return "", false
}

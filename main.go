package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/codeprompt/companion/internal/analytics"
	"github.com/codeprompt/companion/internal/cli"
	"github.com/codeprompt/companion/internal/config"
	"github.com/codeprompt/companion/internal/service"
	"github.com/codeprompt/companion/internal/storage"
	"github.com/codeprompt/companion/internal/ui"
)

var version = "0.1.0"

func printHelp() {
	fmt.Printf(`codeprompt - Terminal-based prompt snippet management

USAGE:
    codeprompt [OPTIONS] [COMMAND]

OPTIONS:
    --help          Show this help information
    --version       Print version information
    --init          Initialize the prompt library
    --dir           Override the data directory for this invocation

COMMANDS:
    (no command)       Start interactive TUI mode
    list, ls           List prompts
    search <query>     Search prompts (--fuzzy for fuzzy matching)
    get, show <id>     Show a specific prompt
    create, new        Create a new prompt
    edit <id>          Edit an existing prompt
    delete, rm <id>    Delete a prompt
    copy <id>          Fill variables and copy to clipboard
    render <id>        Fill variables and print
    preview <id>       Print with placeholder stand-ins
    favorite, fav <id> Toggle favorite status
    related <id>       Show similar prompts
    tags               List all tags
    categories         List all categories
    history            Show recently used prompts
    stats              Show usage statistics
    templates          List templates
    template           Template management (list, show, create, delete, render, preview)
    export <file>      Export user prompts
    import <file>      Import prompts
    help               Show CLI command help

EXAMPLES:
    codeprompt                                   # Start interactive mode
    codeprompt --init                            # Initialize the library
    codeprompt list --category react             # List prompts in a category
    codeprompt search "flex layout"              # Search prompts
    codeprompt create --label "Review" --text "Review this: ${selection}" --category general
    codeprompt render <id> --var name=Ada        # Fill variables and print
    codeprompt copy <id>                         # Copy to clipboard

STORAGE:
    Default directory: ~/.codeprompt
    Override with: CODEPROMPT_DIR=<path>
`)
}

func main() {
	var showVersion bool
	var initLib bool
	var showHelp bool
	var dataDir string

	flag.BoolVar(&showVersion, "version", false, "Print version information")
	flag.BoolVar(&initLib, "init", false, "Initialize the prompt library")
	flag.BoolVar(&showHelp, "help", false, "Show help information")
	flag.StringVar(&dataDir, "dir", "", "Override the data directory")
	flag.Parse()

	if showHelp {
		printHelp()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("codeprompt version %s\n", version)
		os.Exit(0)
	}

	if dataDir == "" {
		var err error
		dataDir, err = config.DataDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error resolving data directory: %v\n", err)
			os.Exit(1)
		}
	}

	cfg, err := config.Load(dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.NewStorage(dataDir)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	svc, err := service.NewService(cfg, store)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if initLib {
		if err := svc.InitLibrary(); err != nil {
			fmt.Println("Error initializing library:", err)
			os.Exit(1)
		}
		fmt.Println("Initialized codeprompt library")
		return
	}

	tracker, err := analytics.NewTracker(cfg, store)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	// CLI mode when any command is given
	args := flag.Args()
	if len(args) > 0 {
		cliHandler := cli.NewCLI(svc, tracker)
		if err := cliHandler.ExecuteCommand(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// No arguments provided - start TUI mode
	model, err := ui.NewModel(svc, tracker)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

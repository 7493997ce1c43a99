package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kmowery/tally/internal/extract"
	"github.com/kmowery/tally/internal/store"
	"github.com/kmowery/tally/internal/ui"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	ephemeral := flag.Bool("ephemeral", false, "keep tasks in memory only (no database)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("tally %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	var backend store.Backend
	if *ephemeral {
		backend = store.NewMemoryBackend()
	} else {
		sqlite, err := store.OpenSQLite()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
			os.Exit(1)
		}
		defer sqlite.Close()
		backend = sqlite
	}

	taskStore, err := store.New(backend)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading tasks: %v\n", err)
		os.Exit(1)
	}

	client := extract.NewOpenAIClient(
		os.Getenv("OPENAI_API_KEY"),
		os.Getenv("OPENAI_BASE_URL"),
		os.Getenv("OPENAI_MODEL"),
	)
	adapter := extract.NewAdapter(client, taskStore)

	app := ui.NewApp(taskStore, adapter)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
}

// Package main is the entry point for the Timeline TUI application.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hy4ri/timeline-tui/internal/config"
	appLog "github.com/hy4ri/timeline-tui/internal/log"
	"github.com/hy4ri/timeline-tui/internal/timeline"
	"github.com/hy4ri/timeline-tui/internal/tui"
)

const version = "0.1.0"

const helpText = `timeline-tui - Terminal timeline for dated items

USAGE:
    timeline-tui [OPTIONS] [ITEM_FILE]

    ITEM_FILE is a .yaml item file or an .ics calendar. When given it
    replaces the sources from the config file.

OPTIONS:
    -h, --help          Show this help message
    -v, --version       Show version information
    --init              Create a template config file
    --config PATH       Use another config file
    --granularity G     Start at day, week or month

CONFIGURATION:
    Config file: ~/.config/timeline-tui/config.yaml

KEYBINDINGS:
    Navigation:
        h/l, ←/→    Scroll one column
        H/L         Scroll one page
        j/k, ↑/↓    Select next/previous item
        Enter       Scroll the selected item into view
        d/w/m       Day, week or month columns
        +/-         Zoom in/out

    Items:
        </>         Move the selected item a day earlier/later
        e           Edit selected item
        y           Copy selected item
        Ctrl+s      Save items to the item file

    Other:
        f/F         Set/clear the focus date
        0           Reset the window
        r           Reload sources
        ?           Show help
        q           Quit

    Mouse:
        Drag a bar to move it, drag the grid to scroll, double click to
        set the focus date, Alt+wheel to zoom.
`

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		showHelp    bool
		showVersion bool
		initConfig  bool
		configPath  string
		granularity string
	)

	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version")
	flag.BoolVar(&showVersion, "v", false, "Show version (shorthand)")
	flag.BoolVar(&initConfig, "init", false, "Create template config file")
	flag.StringVar(&configPath, "config", "", "Path to the config file")
	flag.StringVar(&granularity, "granularity", "", "Initial granularity (day, week, month)")

	flag.Usage = func() {
		fmt.Print(helpText)
	}

	flag.Parse()

	if showHelp {
		fmt.Print(helpText)
		return nil
	}

	if showVersion {
		fmt.Printf("timeline-tui version %s\n", version)
		return nil
	}

	if initConfig {
		return createConfigTemplate()
	}

	if flag.NArg() > 1 {
		return fmt.Errorf("expected at most one item file, got %d", flag.NArg())
	}

	return runApp(configPath, granularity, flag.Arg(0))
}

// createConfigTemplate creates a template configuration file.
func createConfigTemplate() error {
	path, err := config.ConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Config file already exists: %s\n", path)
		fmt.Print("Overwrite? [y/N]: ")

		var response string
		fmt.Scanln(&response)

		if response != "y" && response != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := os.WriteFile(path, []byte(config.Template), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Config file created: %s\n\n", path)
	fmt.Println("Next steps:")
	fmt.Println("  1. Point 'sources' at your item files or calendars")
	fmt.Println("  2. Run 'timeline-tui' to start")

	return nil
}

// runApp loads the config, opens the log and starts the TUI.
func runApp(configPath, granularity, itemFile string) error {
	if configPath == "" {
		path, err := config.ConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
		configPath = path
	} else {
		path, err := config.ExpandPath(configPath)
		if err != nil {
			return err
		}
		configPath = path
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if granularity != "" {
		g, err := timeline.ParseGranularity(granularity)
		if err != nil {
			return err
		}
		cfg.Timeline.Granularity = g.String()
	}

	sources := cfg.Sources
	if itemFile != "" {
		sources = []config.SourceConfig{{Path: itemFile}}
	}

	logPath, err := cfg.LogPath()
	if err != nil {
		return fmt.Errorf("failed to resolve log path: %w", err)
	}
	appLog.SetLevel(appLog.ParseLevel(cfg.Log.Level))
	if err := appLog.Open(logPath); err != nil {
		// Non-fatal: run without a log file
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	defer appLog.Close()
	appLog.Info("starting", "version", version, "config", configPath, "sources", len(sources))

	app, err := tui.NewApp(cfg, sources)
	if err != nil {
		return err
	}
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}

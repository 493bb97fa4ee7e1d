/*
Package main implements the launchsift ranking server and CLI [DBG] application.

launchsift ranks a launcher's item pool against a live typed query using
letter-pair, substring and word-level similarity. It can operate as a
MessagePack IPC server for integration with launcher frontends, or as a CLI
application for testing and debugging.

The server mode keeps the whole library indexed in memory; every keystroke is
a new query generation that cancels the previous one, so results always
reflect the latest input.

# Usage

Start the server with default settings:

	launchsift -library /path/to/library.toml

Enable debug mode:

	launchsift -library /path/to/library.toml -d

Run in CLI mode for interactive testing:

	launchsift -c -limit 10

The library file holds repeated [[entry]] tables with the name, genres,
platforms, install state and last activity of each item. Without a library
file the binary runs on a small built-in demo set.

# Configuration

Runtime configuration is managed through a TOML file that supports ranking
parameters, server limits, and library settings:

	[search]
	threshold = 0.55
	max_results = 20
	async_delay_ms = 100
	install_status_first = true

	[server]
	max_query_len = 256
	default_limit = 20

The config file is automatically created with defaults if it doesn't exist.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. Ranking requests
are processed synchronously with timing information included in responses.

Send a ranking request:

	{"id": "req1", "q": "zelda", "l": 20}

Receive results ordered best first:

	{"id": "req1", "res": [{"t": "The Legend of Zelda", "s": 0.92, "r": 1}], "c": 1, "t": 3}

Parameter requests allow runtime adjustment of the ranking knobs:

	{"id": "cfg1", "action": "config_get"}
	{"id": "cfg2", "action": "config_set", "threshold": 0.4}

# Query Syntax

Plain text ranks the whole library. A leading comma or ampersand offers genre
filters that widen or narrow the view; "r:" scopes the search to recently
played entries. Sub-searches keep their prefix in the query, and deleting the
prefix pops back out.

# Command Line Flags

The following flags control application behavior:

	-library string
	    TOML library file to index (built-in demo set when empty)
	-config string
	    Custom config file path
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-limit int
	    Number of results to display in CLI mode (default from config)
	-version
	    Show current version
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"launchsift/internal/cli"
	"launchsift/internal/logger"
	"launchsift/pkg/config"
	"launchsift/pkg/library"
	"launchsift/pkg/search"
	"launchsift/pkg/server"
)

const (
	Version = "0.3.0"
	AppName = "launchsift"
	gh      = "https://github.com/bastiangx/launchsift"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires the library sources into a session and hands it to the server or
// the CLI. main() does not implement logic for them and only manages the flow.
func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	libraryPath := flag.String("library", "", "TOML library file to index")
	configPathFlag := flag.String("config", "", "Custom config file path")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	limit := flag.Int("limit", 0, "Number of results to display in CLI mode")

	flag.Parse()

	if *showVersion {
		showVersionInfo()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	appConfig, configPath, err := config.LoadConfigWithPriority(*configPathFlag)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", configPath)

	entries, err := loadLibrary(*libraryPath)
	if err != nil {
		log.Fatalf("Failed to load library: %v", err)
	}
	log.Debugf("Indexed %d library entries", len(entries))

	base := library.NewSource(func() []*library.Entry { return visible(entries, appConfig.Library.IncludeHidden) })
	filtered := library.NewFilteredSource(base)

	registry := search.NewRegistry()
	registry.AddSource("library", filtered)

	session := search.NewSession(registry, appConfig.Params(), nil)
	defer session.Close()
	session.Nav().Register(library.NewRecentSubSource(base, appConfig.Library.RecentPrefix, appConfig.Library.RecentMax))

	if *cliMode {
		log.SetReportTimestamp(false)
		cliLimit := *limit
		if cliLimit <= 0 {
			cliLimit = appConfig.Server.DefaultLimit
		}
		inputHandler := cli.NewInputHandler(session, cliLimit, appConfig.Server.MaxQueryLen)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	server.Version = Version
	srv := server.NewServer(session, appConfig, configPath, base)

	showStartupInfo(len(entries))

	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// loadLibrary reads the library file, or returns the demo set when no path is
// given.
func loadLibrary(path string) ([]*library.Entry, error) {
	if path == "" {
		log.Warn("No library file specified, running with demo entries...")
		return demoEntries(), nil
	}
	return library.LoadEntries(path)
}

func visible(entries []*library.Entry, includeHidden bool) []*library.Entry {
	if includeHidden {
		return entries
	}
	out := make([]*library.Entry, 0, len(entries))
	for _, e := range entries {
		if !e.Hidden {
			out = append(out, e)
		}
	}
	return out
}

// demoEntries is a tiny built-in library so the binary does something useful
// out of the box.
func demoEntries() []*library.Entry {
	day := 24 * time.Hour
	now := time.Now()
	return []*library.Entry{
		{ID: "demo-1", Name: "The Legend of Zelda: Breath of the Wild", Genres: []string{"Adventure"}, Platforms: []string{"Switch"}, Installed: true, LastActivity: now.Add(-2 * day)},
		{ID: "demo-2", Name: "Hades", Genres: []string{"Roguelike", "Action"}, Platforms: []string{"PC"}, Installed: true, LastActivity: now.Add(-1 * day)},
		{ID: "demo-3", Name: "Stardew Valley", Genres: []string{"Simulation", "RPG"}, Platforms: []string{"PC", "Switch"}, Installed: false},
		{ID: "demo-4", Name: "Disco Elysium", Genres: []string{"RPG"}, Platforms: []string{"PC"}, Installed: false, LastActivity: now.Add(-30 * day)},
		{ID: "demo-5", Name: "Celeste", Genres: []string{"Platformer"}, Platforms: []string{"PC", "Switch"}, Installed: true},
	}
}

// showVersionInfo prints the styled version banner.
func showVersionInfo() {
	banner := logger.NewWithConfig("", log.InfoLevel, false, false, log.TextFormatter)

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	banner.SetStyles(styles)

	banner.Print("")
	banner.Print("[ launchsift ] Ranks your library really fast!")
	banner.Print("", "version", Version)
	banner.Print("")
	banner.Print("use -h or --help to see available options")
	banner.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(entryCount int) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("============")
	println(" launchsift ")
	println("============")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Info("init: OK")
	log.Infof("library entries: [ %d ]", entryCount)
	log.Info("status: ready")
	println("============")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}

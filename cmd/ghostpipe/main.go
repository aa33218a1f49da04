// Copyright 2026 The Ghostpipe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the candidate post-processing server and CLI [DBG] application.

Ghostpipe takes raw AI code-completion candidates and prepares them for
display: duplicate right-context suffixes are trimmed, the remaining text is
re-indented against the surrounding document, stale or duplicate candidates
are flagged, and processed candidates are split into render chunks aligned to
the UI's sync points. It can operate as a MessagePack IPC server for
integration with editors, or as a CLI application for testing and debugging.

# Usage

Start the server with default settings:

	ghostpipe

Enable debug logging:

	ghostpipe -d

Run in CLI mode against a document snapshot, with the completion point at a
byte offset:

	ghostpipe -c -doc 'foo(bar)\nbaz' -inv 4

# Configuration

Runtime configuration is managed through a TOML file:

	[server]
	max_candidates = 16
	max_content_length = 16384
	max_document_length = 1048576

	[indent]
	tab_width = 4
	use_tabs = false

	[cli]
	max_input_length = 4096
	show_chunks = true

The config file is automatically created with defaults if it doesn't exist.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. A process request
carries the document snapshot, the invocation and caret offsets, the text the
user typed since invocation, and the raw candidates with their license
reference spans:

	{"id": "req1", "cmd": "process", "doc": "...", "inv": 120, "car": 123,
	 "u": "ret", "cs": [{"t": "return x"}]}

The response holds one flagged result per candidate in the original order.
Further commands: "chunks" splits a processed candidate along sync points,
"refilter" re-queries the last processed set as the user keeps typing, and
"health" answers with a status frame. See pkg/server for the full message
reference.

# Command Line Flags

The following flags control application behavior:

	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-config string
	    Custom config file path
	-doc string
	    Document snapshot for CLI mode ("\n" escapes accepted)
	-inv int
	    Completion invocation offset into the document for CLI mode
	-version
	    Show current version
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"ghostpipe/internal/cli"
	"ghostpipe/internal/logger"
	"ghostpipe/pkg/config"
	"ghostpipe/pkg/recommend"
	"ghostpipe/pkg/server"
	"ghostpipe/pkg/textbuf"
)

const (
	Version = "0.3.0"
	AppName = "ghostpipe"
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

// main calls other packages to initialize the server or CLI inputs.
// main() does not implement logic for them and only manages the flow.
func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	configPath := flag.String("config", "", "Custom config file path")
	docFlag := flag.String("doc", "", "Document snapshot for CLI mode")
	invFlag := flag.Int("inv", 0, "Invocation offset into the document for CLI mode")

	flag.Parse()

	if *showVersion {
		lg := logger.Default("")

		styles := log.DefaultStyles()
		styles.Values["version"] = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
		lg.SetStyles(styles)

		lg.Print("")
		lg.Print("[ Ghostpipe ] Post-processes AI completion candidates!")
		lg.Print("", "version", Version)
		lg.Print("")
		lg.Print("use -h or --help to see available options")

		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	appConfig, loadedPath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
		os.Exit(1)
	}
	if loadedPath != "" {
		log.Debugf("Using config file: (%s)", loadedPath)
	}

	proc := recommend.NewProcessor(textbuf.IndentOptions{
		TabWidth: appConfig.Indent.TabWidth,
		UseTabs:  appConfig.Indent.UseTabs,
	})

	if *cliMode {
		log.SetReportTimestamp(false)
		doc := strings.ReplaceAll(strings.ReplaceAll(*docFlag, "\\n", "\n"), "\\t", "\t")
		log.Debug("Input info:",
			"docLen", len(doc),
			"invocation", *invFlag,
			"showChunks", appConfig.CLI.ShowChunks)

		inputHandler := cli.NewInputHandler(proc, doc, *invFlag, appConfig.CLI.MaxInputLen, appConfig.CLI.ShowChunks)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
			os.Exit(1)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(proc, appConfig)

	showStartupInfo()

	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo() {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	log.Infof("%s %s", AppName, Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Info("init: OK")
	log.Info("status: ready")

	log.SetLevel(currentLevel)
}

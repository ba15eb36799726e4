// FILE: cmd/chess-client/main.go

// Package main implements an interactive debugging client for the chess server API.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"chessrules/internal/client/commands"
	"chessrules/internal/client/config"
	"chessrules/internal/client/display"
	"chessrules/internal/client/session"

	"github.com/chzyer/readline"
)

func main() {
	var (
		apiURL  = flag.String("api", "", "API base URL (overrides config)")
		cfgPath = flag.String("config", "", "Config file path (default: XDG config dir)")
		noColor = flag.Bool("no-color", false, "Disable colored output")
	)
	flag.Parse()

	cfg := config.Load()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.LoadFrom(*cfgPath); err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
			os.Exit(1)
		}
	}
	if *apiURL != "" {
		cfg.APIBaseURL = commands.NormalizeURL(*apiURL)
	}
	display.Init(*noColor || cfg.NoColor)

	s := session.New(cfg)
	registry := commands.NewRegistry(s)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          display.Prompt("chess"),
		HistoryFile:     config.HistoryFile(),
		AutoComplete:    completer(registry),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		display.Errorf("%s", err.Error())
		os.Exit(1)
	}
	defer rl.Close()

	display.Infof("Chess Debug Client")
	display.Infof("API: %s", s.APIBaseURL)
	fmt.Printf("Type 'help' for commands\n\n")

	for {
		rl.SetPrompt(buildPrompt(s))

		line, err := rl.Readline()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if line == "quit" {
			break
		}

		if strings.HasSuffix(line, " -v") {
			s.Verbose = true
			line = strings.TrimSuffix(line, " -v")
		} else {
			s.Verbose = false
		}

		if err := registry.Execute(line); errors.Is(err, commands.ErrExit) {
			break
		}
	}
}

func completer(r *commands.Registry) *readline.PrefixCompleter {
	var items []readline.PrefixCompleterInterface
	for _, name := range r.Names() {
		items = append(items, readline.PcItem(name))
	}
	return readline.NewPrefixCompleter(items...)
}

func buildPrompt(s *session.Session) string {
	promptStr := "chess"

	if s.CurrentGame != "" {
		id := s.CurrentGame
		if len(id) > 8 {
			id = id[:8]
		}
		promptStr += display.Yellow(" [") + display.White(id) + display.Yellow("]")
	}

	if g := s.CurrentGameState; g != nil {
		promptStr += " - Turn:" + display.ColorForTurn(g.Turn)
		if g.Status != "active" {
			promptStr += " (" + display.ColorForStatus(g.Status) + ")"
		}
	}

	return promptStr + display.Yellow(" > ")
}

// FILE: internal/client/commands/registry.go
package commands

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"chessrules/internal/client/api"
	"chessrules/internal/client/config"
	"chessrules/internal/client/display"
)

// ErrExit is returned by the exit command; the REPL stops on it
var ErrExit = errors.New("exit")

type Session interface {
	GetAPIBaseURL() string
	SetAPIBaseURL(string)
	GetConfig() *config.Config
	GetCurrentGame() string
	SetCurrentGame(string)
	GetLastMoveCount() int
	SetLastMoveCount(int)
	GetClient() *api.Client
	IsVerbose() bool
	GetGameState() *api.GameResponse
	SetGameState(*api.GameResponse)
}

// Command defines a client command with its handler
type Command struct {
	Name        string
	ShortName   string
	Description string
	Usage       string
	Group       string
	Handler     func(Session, []string) error
}

// Registry manages command registration and execution
type Registry struct {
	session  Session
	commands map[string]*Command
}

const (
	groupGame    = "Game Commands"
	groupUtility = "Utility Commands"
)

func NewRegistry(session Session) *Registry {
	r := &Registry{
		session:  session,
		commands: make(map[string]*Command),
	}

	r.registerGameCommands()
	r.registerDebugCommands()

	r.Register(&Command{
		Name:        "help",
		ShortName:   "?",
		Description: "Show available commands",
		Usage:       "help [command]",
		Group:       groupUtility,
		Handler:     r.helpHandler,
	})

	r.Register(&Command{
		Name:        "exit",
		ShortName:   "x",
		Description: "Exit the client",
		Usage:       "exit",
		Group:       groupUtility,
		Handler:     exitHandler,
	})

	return r
}

func (r *Registry) Register(cmd *Command) {
	r.commands[cmd.Name] = cmd
	if cmd.ShortName != "" {
		r.commands[cmd.ShortName] = cmd
	}
}

// Lookup finds a command by name or short name
func (r *Registry) Lookup(name string) (*Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Names returns the full command names, sorted, for completion
func (r *Registry) Names() []string {
	var names []string
	for key, cmd := range r.commands {
		if key == cmd.Name {
			names = append(names, key)
		}
	}
	sort.Strings(names)
	return names
}

// Execute runs one input line. Only ErrExit is returned; other command
// errors are printed.
func (r *Registry) Execute(input string) error {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return nil
	}

	cmdName := parts[0]
	args := parts[1:]

	cmd, exists := r.commands[cmdName]
	if !exists {
		display.Errorf("Unknown command: %s", cmdName)
		fmt.Println("Type 'help' for available commands")
		return nil
	}

	r.session.GetClient().SetVerbose(r.session.IsVerbose())

	if err := cmd.Handler(r.session, args); err != nil {
		if errors.Is(err, ErrExit) {
			return err
		}
		display.Errorf("Error: %s", err.Error())
	}
	return nil
}

func (r *Registry) helpHandler(s Session, args []string) error {
	if len(args) > 0 {
		cmd, exists := r.commands[args[0]]
		if !exists {
			return fmt.Errorf("unknown command: %s", args[0])
		}
		fmt.Printf("\n%s - %s\n", display.Cyan(cmd.Name), cmd.Description)
		if cmd.ShortName != "" {
			fmt.Printf("Short form: %s\n", display.Cyan(cmd.ShortName))
		}
		fmt.Printf("Usage: %s\n", cmd.Usage)
		return nil
	}

	fmt.Printf("\n%s\n\n", display.Cyan("Available Commands:"))

	for i, group := range []string{groupGame, groupUtility} {
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("%s\n", display.Yellow(group+":"))
		for _, name := range r.Names() {
			cmd := r.commands[name]
			if cmd.Group != group {
				continue
			}
			shortPart := "    "
			if cmd.ShortName != "" {
				shortPart = fmt.Sprintf("[%s] ", display.Cyan(cmd.ShortName))
			}
			fmt.Printf("  %s%-10s %s\n", shortPart, cmd.Name, cmd.Description)
		}
	}

	fmt.Printf("\nType 'help <command>' for detailed usage\n")
	fmt.Printf("Add '-v' to any command for verbose output\n")
	return nil
}

func exitHandler(s Session, args []string) error {
	display.Infof("Goodbye!")
	return ErrExit
}

// FILE: internal/client/commands/debug.go
package commands

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"chessrules/internal/client/display"
)

func (r *Registry) registerDebugCommands() {
	r.Register(&Command{
		Name:        "health",
		ShortName:   ".",
		Description: "Check server health",
		Usage:       "health",
		Group:       groupUtility,
		Handler:     healthHandler,
	})

	r.Register(&Command{
		Name:        "url",
		ShortName:   "/",
		Description: "Show or set API base URL",
		Usage:       "url [apiUrl] [save]",
		Group:       groupUtility,
		Handler:     urlHandler,
	})

	r.Register(&Command{
		Name:        "raw",
		ShortName:   ":",
		Description: "Send raw API request",
		Usage:       "raw <method> <path> [json-body]",
		Group:       groupUtility,
		Handler:     rawRequestHandler,
	})

	r.Register(&Command{
		Name:        "clear",
		ShortName:   "-",
		Description: "Clear screen",
		Usage:       "clear",
		Group:       groupUtility,
		Handler:     clearHandler,
	})
}

func healthHandler(s Session, args []string) error {
	resp, err := s.GetClient().Health()
	if err != nil {
		return err
	}

	display.Infof("Server Health:")
	fmt.Printf("  Status:  %s\n", resp.Status)
	t := time.Unix(resp.Time, 0)
	fmt.Printf("  Time:    %s\n", t.Format("2006-01-02 15:04:05"))
	fmt.Printf("  Games:   %d\n", resp.Games)
	if resp.Storage != "" {
		fmt.Printf("  Storage: %s\n", resp.Storage)
	}

	return nil
}

// NormalizeURL adds a scheme when missing
func NormalizeURL(url string) string {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "http://" + url
	}
	return strings.TrimRight(url, "/")
}

func urlHandler(s Session, args []string) error {
	if len(args) == 0 {
		fmt.Printf("Current API URL: %s\n", s.GetAPIBaseURL())
		return nil
	}

	url := NormalizeURL(args[0])
	s.SetAPIBaseURL(url)
	display.Infof("API URL set to: %s", url)

	if len(args) > 1 && args[1] == "save" {
		path, err := s.GetConfig().Save()
		if err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		display.Infof("Saved to %s", path)
	}
	return nil
}

func rawRequestHandler(s Session, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: raw <method> <path> [json-body]")
	}

	method := strings.ToUpper(args[0])
	path := args[1]

	body := ""
	if len(args) > 2 {
		body = strings.Join(args[2:], " ")
	}

	return s.GetClient().RawRequest(method, path, body)
}

func clearHandler(s Session, args []string) error {
	cmd := exec.Command("clear")
	cmd.Stdout = os.Stdout
	return cmd.Run()
}

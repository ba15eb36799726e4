// FILE: internal/client/api/client.go
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
)

var (
	requestColor = color.New(color.FgBlue)
	bodyColor    = color.New(color.FgCyan)
	okColor      = color.New(color.FgGreen)
	errColor     = color.New(color.FgRed)
)

// RequestError is returned for non-2xx responses
type RequestError struct {
	StatusCode int
	Response   ErrorResponse
}

func (e *RequestError) Error() string {
	if e.Response.Code != "" {
		return fmt.Sprintf("request failed with status %d (%s)", e.StatusCode, e.Response.Code)
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Verbose    bool
	Out        io.Writer // request and response trace
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			// Long-poll waits up to 25s on the server
			Timeout: 30 * time.Second,
		},
		Out: os.Stdout,
	}
}

func (c *Client) SetVerbose(v bool) {
	c.Verbose = v
}

// SetBaseURL updates the API base URL for the client
func (c *Client) SetBaseURL(url string) {
	c.BaseURL = strings.TrimRight(url, "/")
}

func (c *Client) doRequest(method, path string, body any, result any) error {
	var bodyReader io.Reader
	var bodyStr string
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return err
		}
		bodyReader = bytes.NewReader(jsonData)
		bodyStr = string(jsonData)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, bodyReader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	requestColor.Fprintf(c.Out, "\n[API] %s %s\n", method, path)
	if bodyStr != "" {
		if c.Verbose {
			bodyColor.Fprintln(c.Out, "Request Body:")
			fmt.Fprintln(c.Out, indent([]byte(bodyStr)))
		} else {
			requestColor.Fprintln(c.Out, bodyStr)
		}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		errColor.Fprintf(c.Out, "[ERROR] %s\n", err.Error())
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	statusColor := okColor
	if resp.StatusCode >= 400 {
		statusColor = errColor
	}
	statusColor.Fprintf(c.Out, "[%d %s]\n", resp.StatusCode, http.StatusText(resp.StatusCode))

	if c.Verbose && len(respBody) > 0 {
		bodyColor.Fprintln(c.Out, "Response Body:")
		fmt.Fprintln(c.Out, indent(respBody))
	}

	if resp.StatusCode >= 400 {
		reqErr := &RequestError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(respBody, &reqErr.Response); err == nil {
			if !c.Verbose {
				errColor.Fprintf(c.Out, "Error: %s\n", reqErr.Response.Error)
				if reqErr.Response.Code != "" {
					errColor.Fprintf(c.Out, "Code: %s\n", reqErr.Response.Code)
				}
				if reqErr.Response.Details != "" {
					errColor.Fprintf(c.Out, "Details: %s\n", reqErr.Response.Details)
				}
			}
		} else if !c.Verbose {
			errColor.Fprintln(c.Out, string(respBody))
		}
		return reqErr
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			errColor.Fprintf(c.Out, "Response parse error: %s\n", err.Error())
			okColor.Fprintf(c.Out, "Raw response: %s\n", string(respBody))
			return err
		}
	}

	return nil
}

// indent pretty prints JSON, falling back to the raw text
func indent(data []byte) string {
	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		return string(data)
	}
	return out.String()
}

// API Methods

func (c *Client) Health() (*HealthResponse, error) {
	var resp HealthResponse
	err := c.doRequest("GET", "/health", nil, &resp)
	return &resp, err
}

func (c *Client) CreateGame(fen string) (*GameResponse, error) {
	var resp GameResponse
	err := c.doRequest("POST", "/api/v1/games", &CreateGameRequest{FEN: fen}, &resp)
	return &resp, err
}

func (c *Client) GetGame(gameID string) (*GameResponse, error) {
	var resp GameResponse
	err := c.doRequest("GET", "/api/v1/games/"+gameID, nil, &resp)
	return &resp, err
}

func (c *Client) GetGameWithPoll(gameID string, moveCount int) (*GameResponse, error) {
	var resp GameResponse
	path := fmt.Sprintf("/api/v1/games/%s?wait=true&moveCount=%d", gameID, moveCount)
	err := c.doRequest("GET", path, nil, &resp)
	return &resp, err
}

func (c *Client) DeleteGame(gameID string) error {
	return c.doRequest("DELETE", "/api/v1/games/"+gameID, nil, nil)
}

func (c *Client) MakeMove(gameID, from, to, promotion string) (*MoveResponse, error) {
	req := &MoveRequest{From: from, To: to, Promotion: promotion}
	var resp MoveResponse
	err := c.doRequest("POST", "/api/v1/games/"+gameID+"/moves", req, &resp)
	return &resp, err
}

func (c *Client) GetMoves(gameID string) ([]MoveInfo, error) {
	var resp []MoveInfo
	err := c.doRequest("GET", "/api/v1/games/"+gameID+"/moves", nil, &resp)
	return resp, err
}

func (c *Client) GetValidMoves(gameID, position string) (*ValidMovesResponse, error) {
	var resp ValidMovesResponse
	err := c.doRequest("GET", "/api/v1/games/"+gameID+"/valid-moves/"+url.PathEscape(position), nil, &resp)
	return &resp, err
}

func (c *Client) GetBoard(gameID string) (*BoardResponse, error) {
	var resp BoardResponse
	err := c.doRequest("GET", "/api/v1/games/"+gameID+"/board", nil, &resp)
	return &resp, err
}

// RawRequest performs a raw HTTP request for debugging purposes
func (c *Client) RawRequest(method, path string, body string) error {
	var bodyData any
	if body != "" {
		if err := json.Unmarshal([]byte(body), &bodyData); err != nil {
			// Try as raw string
			bodyData = body
		}
	}

	return c.doRequest(method, path, bodyData, nil)
}

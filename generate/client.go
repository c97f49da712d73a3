package generate

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	j "github.com/goccy/go-json"

	"github.com/reoring/recmap/schema"
)

// Client is an HTTP Generator speaking the chat-completions wire shape.
type Client struct {
	BaseURL    string
	APIKey     string
	Model      string
	HTTPClient *http.Client
	Registry   *schema.Registry
}

// NewClient builds a Client with a sane default timeout.
func NewClient(baseURL, apiKey, model string, reg *schema.Registry) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		APIKey:     apiKey,
		Model:      model,
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
		Registry:   reg,
	}
}

var _ Generator = (*Client)(nil)

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// GenerateConfig asks the model for a candidate configuration. Transport and
// upstream failures come back as *UnavailableError; a syntactically broken
// completion is an ordinary error since retrying the same prompt may fix it
// but the dependency itself was reachable.
func (c *Client) GenerateConfig(ctx context.Context, req Request) (map[string]any, error) {
	body, err := j.Marshal(chatRequest{
		Model:       c.Model,
		Messages:    []chatMessage{{Role: "user", Content: c.prompt(req)}},
		Temperature: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("generate: encoding request: %w", err)
	}

	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("generate: building request: %w", err)
	}
	hreq.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		hreq.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTPClient.Do(hreq)
	if err != nil {
		return nil, &UnavailableError{Err: err}
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UnavailableError{Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UnavailableError{Err: fmt.Errorf("upstream status %d: %s", resp.StatusCode, truncate(string(data), 200))}
	}

	var cr chatResponse
	if err := j.Unmarshal(data, &cr); err != nil {
		return nil, fmt.Errorf("generate: decoding completion envelope: %w", err)
	}
	if len(cr.Choices) == 0 {
		return nil, fmt.Errorf("generate: completion has no choices")
	}

	var candidate map[string]any
	if err := j.Unmarshal([]byte(stripFences(cr.Choices[0].Message.Content)), &candidate); err != nil {
		return nil, fmt.Errorf("generate: completion is not a JSON object: %w", err)
	}
	return candidate, nil
}

func (c *Client) prompt(req Request) string {
	b := &strings.Builder{}
	b.WriteString("Draft a record-mapping configuration as a single JSON object with the keys ")
	b.WriteString(`name, sourceType, targetRepository, idField, fieldMappings and options. `)
	b.WriteString("Each fieldMappings entry has sourceField, targetField and an optional transform ")
	b.WriteString("(one of none, uppercase, lowercase, trim, number). Reply with JSON only.\n\n")
	fmt.Fprintf(b, "Source type: %s\n", req.SourceType.String())
	if ts, ok := c.Registry.Lookup(req.TargetRepository); ok {
		fmt.Fprintf(b, "Target repository: %s\n", ts.Name)
		fmt.Fprintf(b, "Required target fields: %s\n", strings.Join(ts.Required, ", "))
		fmt.Fprintf(b, "Optional target fields: %s\n", strings.Join(ts.Optional, ", "))
	} else {
		fmt.Fprintf(b, "Known target repositories: %s\n", strings.Join(c.Registry.Names(), ", "))
	}
	fmt.Fprintf(b, "\nSource sample:\n%s\n", req.SourceSample)
	return b.String()
}

// stripFences removes a surrounding markdown code fence from a completion.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:] // drop the language tag line
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

package std

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	tavilygo "github.com/diverged/tavily-go"
	tavilyModels "github.com/diverged/tavily-go/models"

	"github.com/toolbus/toolbus/pkg/tooldispatch"
)

// SearchConfig configures the web search tool.
type SearchConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// SearchTool performs a web search via the Tavily API.
type SearchTool struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewSearchTool creates the web search tool.
func NewSearchTool(cfg SearchConfig) *SearchTool {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &SearchTool{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// WithHTTPClient overrides the HTTP client, mainly for tests.
func (t *SearchTool) WithHTTPClient(client *http.Client) *SearchTool {
	t.httpClient = client
	return t
}

// Declaration implements tooldispatch.Tool.
func (t *SearchTool) Declaration() tooldispatch.Declaration {
	return tooldispatch.Declaration{
		Name:        "search",
		Description: "Search the web and return the top results with a short aggregated answer.",
		Parameters: &tooldispatch.Schema{
			Type: "object",
			Properties: map[string]*tooldispatch.Schema{
				"query": {Type: "string", Description: "Search query"},
			},
			Required: []string{"query"},
		},
	}
}

// Execute implements tooldispatch.Tool.
func (t *SearchTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	if err := tooldispatch.ValidateArgs(t.Declaration(), args); err != nil {
		return nil, err
	}
	if t.apiKey == "" {
		return nil, fmt.Errorf("search API key is not configured")
	}

	query, _ := args["query"].(string)

	client := tavilygo.NewClient(t.apiKey)
	if t.baseURL != "" {
		client.BaseURL = t.baseURL
	}
	if t.httpClient != nil {
		client.HTTPClient = t.httpClient
	}

	resp, err := tavilygo.Search(client, tavilyModels.SearchRequest{
		Query:         query,
		SearchDepth:   "basic",
		IncludeAnswer: true,
	})
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	return formatSearchResults(resp.Answer, resp.Results), nil
}

func formatSearchResults(answer string, results []tavilyModels.SearchResult) string {
	var b strings.Builder
	if answer != "" {
		fmt.Fprintf(&b, "Answer: %s\n", answer)
	}
	for _, result := range results {
		fmt.Fprintf(&b, "- %s (%s)\n  %s\n", result.Title, result.URL, result.Content)
	}
	if b.Len() == 0 {
		return "No results found."
	}
	return strings.TrimRight(b.String(), "\n")
}

package ellie

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// DefaultEnvironment is the Ellie.ai environment slug used when none is
// configured.
const DefaultEnvironment = "templates"

// Client fetches physical data models from the Ellie.ai API.
type Client struct {
	Environment string
	Token       string

	// HTTPClient defaults to http.DefaultClient. A fetch is a single request
	// with no retry; cancellation comes from the caller's context.
	HTTPClient *http.Client

	// BaseURL overrides the https://{environment}.ellie.ai origin, for tests.
	BaseURL string
}

// New creates a client for the given environment and API token.
func New(environment, token string) *Client {
	if environment == "" {
		environment = DefaultEnvironment
	}
	return &Client{Environment: environment, Token: token}
}

// FetchModel retrieves the raw model document for the given model ID.
// On a non-200 response the returned error carries the status code and the
// response body verbatim.
func (c *Client) FetchModel(ctx context.Context, modelID string) ([]byte, error) {
	if modelID == "" {
		return nil, fmt.Errorf("model ID is required")
	}
	if c.Token == "" {
		return nil, fmt.Errorf("API token is required")
	}

	u := fmt.Sprintf("%s/api/v1/models/%s?token=%s",
		c.origin(), url.PathEscape(modelID), url.QueryEscape(c.Token))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching model %s: %w", modelID, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if len(body) > 0 {
			return nil, fmt.Errorf("API request failed with status code %d: %s", resp.StatusCode, body)
		}
		return nil, fmt.Errorf("API request failed with status code %d", resp.StatusCode)
	}

	return body, nil
}

// origin resolves the request origin. An environment containing a dot is
// treated as a full hostname; a bare slug is expanded to {slug}.ellie.ai.
func (c *Client) origin() string {
	if c.BaseURL != "" {
		return strings.TrimSuffix(c.BaseURL, "/")
	}
	env := c.Environment
	if env == "" {
		env = DefaultEnvironment
	}
	if strings.Contains(env, ".") {
		return "https://" + env
	}
	return fmt.Sprintf("https://%s.ellie.ai", env)
}

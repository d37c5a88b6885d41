package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const defaultAPIURL = "https://api.github.com"

// Client talks to the GitHub REST API.
type Client struct {
	token  string
	apiURL string
	http   *retryablehttp.Client
}

// NewClient creates a GitHub client. Requires GITHUB_TOKEN; GITHUB_API_URL
// overrides the endpoint for GitHub Enterprise.
func NewClient() (*Client, error) {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("GITHUB_TOKEN environment variable is not set")
	}
	apiURL := os.Getenv("GITHUB_API_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.HTTPClient.Timeout = 60 * time.Second
	rc.Logger = nil

	return &Client{
		token:  token,
		apiURL: strings.TrimRight(apiURL, "/"),
		http:   rc,
	}, nil
}

var prRefRe = regexp.MustCompile(`^([^/\s]+)/([^#\s]+)#(\d+)$`)

// ParsePRRef splits "owner/repo#123" into its parts.
func ParsePRRef(ref string) (owner, repo string, number int, err error) {
	m := prRefRe.FindStringSubmatch(ref)
	if m == nil {
		return "", "", 0, fmt.Errorf("invalid PR reference %q, want owner/repo#number", ref)
	}
	number, _ = strconv.Atoi(m[3])
	return m[1], m[2], number, nil
}

// GetPRDiff fetches the unified diff for a pull request.
func (c *Client) GetPRDiff(ctx context.Context, owner, repo string, number int) (string, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/pulls/%d", c.apiURL, owner, repo, number)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/vnd.github.v3.diff")

	body, err := c.do(req)
	if err != nil {
		return "", fmt.Errorf("fetching PR #%d from %s/%s: %w", number, owner, repo, err)
	}
	return string(body), nil
}

// PostComment posts the review body as an issue comment on the pull request.
func (c *Client) PostComment(ctx context.Context, owner, repo string, number int, body string) error {
	url := fmt.Sprintf("%s/repos/%s/%s/issues/%d/comments", c.apiURL, owner, repo, number)

	payload, err := json.Marshal(map[string]string{"body": body})
	if err != nil {
		return fmt.Errorf("marshaling comment: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("Content-Type", "application/json")

	if _, err := c.do(req); err != nil {
		return fmt.Errorf("posting comment to %s/%s#%d: %w", owner, repo, number, err)
	}
	return nil
}

func (c *Client) do(req *retryablehttp.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("not found")
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("authentication failed: %s", string(body))
	case resp.StatusCode >= 300:
		return nil, fmt.Errorf("GitHub API error (status %d): %s", resp.StatusCode, string(body))
	}
	return body, nil
}

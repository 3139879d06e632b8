// Package redmine fetches issues from a Redmine-compatible tracker over its XML API.
package redmine

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/runoshun/git-issue-commit/internal/domain"
)

const (
	defaultHTTPTimeout = 30 * time.Second
	maxResponseBytes   = 4 << 20
)

// Ensure Client implements domain.IssueFetcher.
var _ domain.IssueFetcher = (*Client)(nil)

// Client retrieves issues from the tracker.
type Client struct {
	httpClient *http.Client
	logger     domain.Logger
}

// NewClient creates a Client with the given request timeout.
func NewClient(timeout time.Duration, logger domain.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return NewClientWithHTTPClient(&http.Client{Timeout: timeout}, logger)
}

// NewClientWithHTTPClient creates a Client with a custom HTTP client (for testing).
func NewClientWithHTTPClient(client *http.Client, logger domain.Logger) *Client {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Client{
		httpClient: client,
		logger:     logger,
	}
}

// namedRef is an element like <project id="1" name="core"/>.
type namedRef struct {
	Name string `xml:"name,attr"`
	ID   int    `xml:"id,attr"`
}

// issueResponse is the XML body of GET /issues/<id>.xml.
type issueResponse struct {
	XMLName     xml.Name  `xml:"issue"`
	ID          *string   `xml:"id"`
	Subject     *string   `xml:"subject"`
	Description string    `xml:"description"`
	Project     namedRef  `xml:"project"`
	Tracker     namedRef  `xml:"tracker"`
	Status      namedRef  `xml:"status"`
	Author      namedRef  `xml:"author"`
	AssignedTo  *namedRef `xml:"assigned_to"`
}

// FetchIssue retrieves a single issue. Transport failures and non-2xx
// responses return domain.ErrFetch; unparsable bodies return domain.ErrParse.
func (c *Client) FetchIssue(ctx context.Context, cfg domain.ResolvedConfig, issueID int) (*domain.Issue, error) {
	endpoint := domain.IssueXMLURL(cfg.BaseURL, issueID)
	if !cfg.IsSecure() {
		c.logger.Warn(issueID, "fetch", "tracker url is not https; the api key is sent in cleartext")
	}

	reqURL, err := withKey(endpoint, cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid tracker url %q: %w", domain.ErrFetch, cfg.BaseURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", domain.ErrFetch, err)
	}
	req.Header.Set("Accept", "application/xml")

	c.logger.Debug(issueID, "fetch", "GET "+endpoint)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// url.Error embeds the request URL, which carries the key.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, fmt.Errorf("%w: GET %s: %w", domain.ErrFetch, endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: GET %s: tracker returned %s", domain.ErrFetch, endpoint, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", domain.ErrFetch, err)
	}

	issue, err := parseIssue(body)
	if err != nil {
		return nil, err
	}
	issue.URL = domain.IssueURL(cfg.BaseURL, issue.ID)
	c.logger.Info(issueID, "fetch", fmt.Sprintf("fetched issue #%d %q", issue.ID, issue.Subject))
	return issue, nil
}

func withKey(endpoint, key string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("key", key)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func parseIssue(body []byte) (*domain.Issue, error) {
	var data issueResponse
	if err := xml.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("%w: issue response: %w", domain.ErrParse, err)
	}
	if data.ID == nil {
		return nil, fmt.Errorf("%w: issue response has no id", domain.ErrParse)
	}
	if data.Subject == nil {
		return nil, fmt.Errorf("%w: issue response has no subject", domain.ErrParse)
	}
	id, err := strconv.Atoi(*data.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: issue id %q: %w", domain.ErrParse, *data.ID, err)
	}

	issue := &domain.Issue{
		ID:          id,
		Subject:     *data.Subject,
		Description: data.Description,
		Project:     data.Project.Name,
		Tracker:     data.Tracker.Name,
		Status:      data.Status.Name,
		Author:      data.Author.Name,
	}
	if data.AssignedTo != nil {
		issue.AssignedTo = data.AssignedTo.Name
	}
	return issue, nil
}

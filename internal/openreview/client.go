// Package openreview is a rate-limited HTTP client for the OpenReview
// API v2: enough surface to enumerate a venue's submissions and fetch
// their PDF attachments.
package openreview

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	// BaseURL is the OpenReview API v2 base URL.
	BaseURL = "https://api2.openreview.net"

	// RateLimit is the request budget per second. OpenReview throttles
	// aggressively; stay well under it.
	RateLimit = 5.0

	// notesPageSize is the page size used when enumerating
	// submissions.
	notesPageSize = 1000
)

// Client is a rate-limited OpenReview API client.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	username   string
	password   string
	token      string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithCredentials sets the username/password used to log in before the
// first authenticated request.
func WithCredentials(username, password string) ClientOption {
	return func(c *Client) {
		c.username = username
		c.password = password
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// NewClient creates an OpenReview API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login exchanges the configured credentials for a bearer token. A
// client without credentials skips login; public venues do not require
// one.
func (c *Client) Login(ctx context.Context) error {
	if c.username == "" || c.password == "" {
		return nil
	}

	body, err := json.Marshal(map[string]string{"id": c.username, "password": c.password})
	if err != nil {
		return fmt.Errorf("marshaling login request: %w", err)
	}

	data, err := c.do(ctx, http.MethodPost, "/login", nil, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	var resp loginResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return fmt.Errorf("%w: parsing login response: %v", ErrInvalidResponse, err)
	}
	if resp.Token == "" {
		return fmt.Errorf("%w: login returned no token", ErrAuthError)
	}
	c.token = resp.Token
	return nil
}

// SubmissionInvitation derives the submission invitation ID for a
// venue from its group metadata: "<venue>/-/<submission_name>".
func (c *Client) SubmissionInvitation(ctx context.Context, venueID string) (string, error) {
	q := url.Values{"id": {venueID}}
	data, err := c.do(ctx, http.MethodGet, "/groups", q, nil)
	if err != nil {
		return "", err
	}

	var resp groupsResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("%w: parsing groups: %v", ErrInvalidResponse, err)
	}
	if len(resp.Groups) == 0 {
		return "", fmt.Errorf("%w: venue %s", ErrNotFound, venueID)
	}

	name := groupStringField(resp.Groups[0].Content, "submission_name")
	if name == "" {
		return "", fmt.Errorf("%w: venue %s has no submission_name", ErrInvalidResponse, venueID)
	}
	return venueID + "/-/" + name, nil
}

// Submissions returns all notes under an invitation, following
// pagination in submission order.
func (c *Client) Submissions(ctx context.Context, invitation string) ([]Note, error) {
	var all []Note
	offset := 0
	for {
		q := url.Values{
			"invitation": {invitation},
			"limit":      {strconv.Itoa(notesPageSize)},
			"offset":     {strconv.Itoa(offset)},
		}
		data, err := c.do(ctx, http.MethodGet, "/notes", q, nil)
		if err != nil {
			return nil, err
		}

		var resp notesResponse
		if err := json.Unmarshal(data, &resp); err != nil {
			return nil, fmt.Errorf("%w: parsing notes: %v", ErrInvalidResponse, err)
		}

		all = append(all, resp.Notes...)
		offset += len(resp.Notes)
		if len(resp.Notes) < notesPageSize || (resp.Count > 0 && offset >= resp.Count) {
			return all, nil
		}
	}
}

// DownloadPDF streams a note's PDF attachment to w.
func (c *Client) DownloadPDF(ctx context.Context, noteID string, w io.Writer) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	q := url.Values{"id": {noteID}, "name": {"pdf"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/attachment?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: note %s", ErrNoPDF, noteID)
	}
	if err := checkStatus(resp); err != nil {
		if apiErr, ok := err.(*APIError); ok {
			apiErr.NoteID = noteID
		}
		return err
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("writing pdf for %s: %w", noteID, err)
	}
	return nil
}

// do executes one rate-limited request and returns the response body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return data, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// checkStatus maps HTTP error statuses to client errors.
func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == 401 || resp.StatusCode == 403:
		return fmt.Errorf("%w: status %d", ErrAuthError, resp.StatusCode)
	case resp.StatusCode == 429:
		return fmt.Errorf("%w: status %d", ErrRateLimited, resp.StatusCode)
	case resp.StatusCode >= 400:
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
		}
	}
	return nil
}

// groupStringField reads a possibly value-wrapped string field from
// group content.
func groupStringField(content map[string]any, key string) string {
	v, ok := content[key]
	if !ok {
		return ""
	}
	if m, ok := v.(map[string]any); ok {
		v = m["value"]
	}
	s, _ := v.(string)
	return s
}

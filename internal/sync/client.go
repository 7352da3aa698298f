package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Entry is the wire form of one pushed activity.
type Entry struct {
	Date             string `json:"date"`
	Score            int    `json:"score"`
	TimeTakenSeconds int    `json:"timeTakenSeconds"`
}

// RemoteScore is one row pulled from the remote store. The remote schema
// only keeps date, score and time; solved/difficulty/hints are local-only.
type RemoteScore struct {
	Date      string `json:"date"`
	Score     int    `json:"score"`
	TimeTaken int    `json:"timeTaken"`
}

// Client is the remote sync boundary the reconciliation engine talks to.
type Client interface {
	// Push submits one batch of entries. The batch is atomic server-side:
	// either every entry is upserted in one transaction or none is.
	// Returns the server's acknowledged count.
	Push(ctx context.Context, entries []Entry) (int, error)

	// Pull fetches up to the most recent 365 remote entries for the
	// authenticated user, newest first.
	Pull(ctx context.Context) ([]RemoteScore, error)
}

// HTTPClient implements Client against the sync service's JSON API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient creates a client for the service at baseURL, authenticating
// every request with the given bearer token.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   30 * time.Second,
			Transport: &bearerTransport{base: http.DefaultTransport, token: token},
		},
	}
}

// bearerTransport injects the Authorization header on every request.
type bearerTransport struct {
	base  http.RoundTripper
	token string
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	cloned := req.Clone(req.Context())
	cloned.Header.Set("Authorization", "Bearer "+t.token)
	return t.base.RoundTrip(cloned)
}

type pushRequest struct {
	Entries []Entry `json:"entries"`
}

type pushResponse struct {
	Success bool `json:"success"`
	Synced  int  `json:"synced"`
}

type pullResponse struct {
	Scores []RemoteScore `json:"scores"`
}

// errorBody is the service's standard error envelope.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *HTTPClient) Push(ctx context.Context, entries []Entry) (int, error) {
	body, err := json.Marshal(pushRequest{Entries: entries})
	if err != nil {
		return 0, fmt.Errorf("encode push request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/sync/entries", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, &ConnectivityError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, statusError(resp)
	}

	var out pushResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("decode push response: %w", err)
	}
	if !out.Success {
		return 0, fmt.Errorf("push not acknowledged by server")
	}
	return out.Synced, nil
}

func (c *HTTPClient) Pull(ctx context.Context) ([]RemoteScore, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/sync/entries", nil)
	if err != nil {
		return nil, fmt.Errorf("build pull request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &ConnectivityError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	var out pullResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode pull response: %w", err)
	}
	return out.Scores, nil
}

// statusError maps a non-200 response onto the sync error taxonomy.
func statusError(resp *http.Response) error {
	var body errorBody
	_ = json.NewDecoder(resp.Body).Decode(&body)

	msg := body.Message
	if msg == "" {
		msg = body.Error
	}
	if msg == "" {
		msg = resp.Status
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &AuthError{Message: msg}
	case resp.StatusCode == http.StatusConflict:
		return &ConflictError{Message: msg}
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return &ValidationError{Message: msg}
	default:
		return fmt.Errorf("sync service error: %s", msg)
	}
}

package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Faeyinn/lestari.in---beyonder-team/internal/model"
)

const requestTimeout = 15 * time.Second

// APIError carries a server-reported error body so handlers can surface the
// platform's own message verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("upstream returned status %d", e.StatusCode)
}

// Client talks to the Lestari.in platform API. All report data lives there;
// this service never stores reports itself.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// Login exchanges admin credentials for an access/refresh token pair.
// POST /api/admin/login/ - non-2xx bodies carry {"detail": "..."}.
func (c *Client) Login(ctx context.Context, email, password string) (*model.TokenPair, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}

	resp, err := c.post(ctx, "/api/admin/login/", "", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.apiError(resp, "detail")
	}

	var pair model.TokenPair
	if err := json.NewDecoder(resp.Body).Decode(&pair); err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}
	return &pair, nil
}

// RefreshToken trades the refresh token for a new access token.
// POST /api/token/refresh/ - 2xx body is {"access": "..."}.
func (c *Client) RefreshToken(ctx context.Context, refresh string) (string, error) {
	body, err := json.Marshal(map[string]string{"refresh": refresh})
	if err != nil {
		return "", err
	}

	resp, err := c.post(ctx, "/api/token/refresh/", "", body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", c.apiError(resp, "detail")
	}

	var out struct {
		Access string `json:"access"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode refresh response: %w", err)
	}
	return out.Access, nil
}

// FetchReports retrieves the entire report collection in one authenticated
// read. The platform does not paginate this endpoint; all slicing happens on
// our side.
func (c *Client) FetchReports(ctx context.Context, token string) ([]model.RawReport, error) {
	resp, err := c.get(ctx, "/api/reports/all/", token)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.apiError(resp, "error")
	}

	var reports []model.RawReport
	if err := json.NewDecoder(resp.Body).Decode(&reports); err != nil {
		return nil, fmt.Errorf("decode reports: %w", err)
	}
	return reports, nil
}

// VerifyReport marks a report verified on the platform.
// POST /api/reports/verify/<id>/ with an empty body; 2xx bodies carry
// {"message": "..."}, failures carry {"error": "..."}.
func (c *Client) VerifyReport(ctx context.Context, token string, id int) (string, error) {
	resp, err := c.post(ctx, fmt.Sprintf("/api/reports/verify/%d/", id), token, nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", c.apiError(resp, "error")
	}

	var out struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode verify response: %w", err)
	}
	return out.Message, nil
}

// FetchLeaderboard returns the reporter leaderboard.
func (c *Client) FetchLeaderboard(ctx context.Context, token string) ([]model.LeaderboardUser, error) {
	resp, err := c.get(ctx, "/api/leaderboard/", token)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.apiError(resp, "error")
	}

	var users []model.LeaderboardUser
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, fmt.Errorf("decode leaderboard: %w", err)
	}
	return users, nil
}

func (c *Client) get(ctx context.Context, path, token string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req, token)
	return c.httpClient.Do(req)
}

func (c *Client) post(ctx context.Context, path, token string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req, token)
	return c.httpClient.Do(req)
}

func (c *Client) setHeaders(req *http.Request, token string) {
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// apiError extracts the named field from an error body. The platform is not
// consistent about the field name: login uses "detail", the report endpoints
// use "error".
func (c *Client) apiError(resp *http.Response, field string) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var body map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		if raw, ok := body[field]; ok {
			var msg string
			if json.Unmarshal(raw, &msg) == nil {
				apiErr.Message = msg
			}
		}
	}
	return apiErr
}

package identityapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Profile is the raw identity record returned by the identity service. Roles
// are unnormalized tags; identity.NormalizeRoles reduces them to the known
// set.
type Profile struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// Client resolves a credential into a Profile.
type Client interface {
	WhoAmI(ctx context.Context, credential string) (*Profile, error)
}

const defaultTimeout = 10 * time.Second

// HTTPClient talks to the identity service over HTTP.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) WhoAmI(ctx context.Context, credential string) (*Profile, error) {
	if credential == "" {
		return nil, errors.New("identity service: missing credential")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/whoami", nil)
	if err != nil {
		return nil, fmt.Errorf("identity service: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+credential)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("identity service: status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("identity service: decode response: %w", err)
	}
	if profile.Username == "" {
		return nil, errors.New("identity service: response has no username")
	}
	return &profile, nil
}

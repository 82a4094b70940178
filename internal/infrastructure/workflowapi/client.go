package workflowapi

//go:generate go run go.uber.org/mock/mockgen -destination=mocks/mock_client.go -package=mocks . Client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/orderdesk/orderdesk/internal/domain/order"
)

// Client is the typed surface of the remote workflow service. Every call
// carries the caller credential; the workflow service decides visibility and
// stage-transition legality.
type Client interface {
	ListOrders(ctx context.Context, credential string) ([]*order.Order, error)
	GetOrder(ctx context.Context, credential string, orderID int64) (*order.Order, error)
	CreateOrder(ctx context.Context, credential string, reference string, priority int) (*order.Order, error)
	UpdatePriority(ctx context.Context, credential string, orderID int64, priority int) (*order.Order, error)
	ClaimStage(ctx context.Context, credential string, orderID int64, stage order.Stage, assignee string) (*order.StageStatus, error)
	UpdateChecklist(ctx context.Context, credential string, orderID int64, stage order.Stage, taskIDs []int64, completed bool) (*order.StageStatus, error)
	CompleteStage(ctx context.Context, credential string, orderID int64, stage order.Stage, serviceMinutes *int, notes *string) (*order.StageStatus, error)
	FlagException(ctx context.Context, credential string, orderID int64, stage order.Stage, reason string) (*order.StageStatus, error)
	ApproveSkip(ctx context.Context, credential string, orderID int64, stage order.Stage, reason *string) (*order.StageStatus, error)
}

const defaultTimeout = 15 * time.Second

// HTTPClient talks JSON over HTTP to the workflow service.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient creates a workflow service client for the given base URL.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) ListOrders(ctx context.Context, credential string) ([]*order.Order, error) {
	var out struct {
		Orders []*order.Order `json:"orders"`
	}
	if err := c.do(ctx, credential, http.MethodGet, "/v1/orders", nil, &out); err != nil {
		return nil, err
	}
	return out.Orders, nil
}

func (c *HTTPClient) GetOrder(ctx context.Context, credential string, orderID int64) (*order.Order, error) {
	var out order.Order
	if err := c.do(ctx, credential, http.MethodGet, fmt.Sprintf("/v1/orders/%d", orderID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreateOrder(ctx context.Context, credential string, reference string, priority int) (*order.Order, error) {
	body := map[string]any{"reference": reference, "priority": priority}
	var out order.Order
	if err := c.do(ctx, credential, http.MethodPost, "/v1/orders", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdatePriority(ctx context.Context, credential string, orderID int64, priority int) (*order.Order, error) {
	body := map[string]any{"priority": priority}
	var out order.Order
	if err := c.do(ctx, credential, http.MethodPost, fmt.Sprintf("/v1/orders/%d/priority", orderID), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ClaimStage(ctx context.Context, credential string, orderID int64, stage order.Stage, assignee string) (*order.StageStatus, error) {
	body := map[string]any{"assignee": assignee}
	return c.stageCall(ctx, credential, orderID, stage, "claim", body)
}

func (c *HTTPClient) UpdateChecklist(ctx context.Context, credential string, orderID int64, stage order.Stage, taskIDs []int64, completed bool) (*order.StageStatus, error) {
	body := map[string]any{"taskIds": taskIDs, "completed": completed}
	return c.stageCall(ctx, credential, orderID, stage, "checklist", body)
}

func (c *HTTPClient) CompleteStage(ctx context.Context, credential string, orderID int64, stage order.Stage, serviceMinutes *int, notes *string) (*order.StageStatus, error) {
	body := map[string]any{}
	if serviceMinutes != nil {
		body["serviceMinutes"] = *serviceMinutes
	}
	if notes != nil {
		body["notes"] = *notes
	}
	return c.stageCall(ctx, credential, orderID, stage, "complete", body)
}

func (c *HTTPClient) FlagException(ctx context.Context, credential string, orderID int64, stage order.Stage, reason string) (*order.StageStatus, error) {
	body := map[string]any{"reason": reason}
	return c.stageCall(ctx, credential, orderID, stage, "exception", body)
}

func (c *HTTPClient) ApproveSkip(ctx context.Context, credential string, orderID int64, stage order.Stage, reason *string) (*order.StageStatus, error) {
	body := map[string]any{}
	if reason != nil {
		body["reason"] = *reason
	}
	return c.stageCall(ctx, credential, orderID, stage, "approve-skip", body)
}

func (c *HTTPClient) stageCall(ctx context.Context, credential string, orderID int64, stage order.Stage, op string, body any) (*order.StageStatus, error) {
	path := fmt.Sprintf("/v1/orders/%d/stages/%s/%s", orderID, stage, op)
	var out order.StageStatus
	if err := c.do(ctx, credential, http.MethodPost, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) do(ctx context.Context, credential, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("workflow service: marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("workflow service: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+credential)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("workflow service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("workflow service: status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("workflow service: decode response: %w", err)
	}
	return nil
}

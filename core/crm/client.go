package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ar-sync/core/apierror"

	"go.uber.org/zap"
)

const (
	companiesPath = "/crm/v3/objects/companies"
	searchPath    = companiesPath + "/search"

	maxResponseSize = 10 * 1024 * 1024
)

// Client talks to the HubSpot companies API.
type Client struct {
	cfg        Config
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient builds a client. The token is validated on every call rather than here,
// so a misconfigured client fails each operation without touching the network.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		cfg:     cfg,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
		logger: logger,
	}
}

// Search returns the companies whose filterField matches value under op.
func (c *Client) Search(ctx context.Context, filterField string, op Operator, value string, properties []string, limit int) ([]Company, error) {
	body := SearchRequest{
		FilterGroups: []FilterGroup{{
			Filters: []Filter{{PropertyName: filterField, Operator: op, Value: value}},
		}},
		Properties: properties,
		Limit:      limit,
	}

	var resp searchResponse
	if err := c.do(ctx, "search", http.MethodPost, searchPath, body, &resp); err != nil {
		return nil, err
	}
	if resp.Results == nil {
		return []Company{}, nil
	}
	return resp.Results, nil
}

// Create creates a company and returns it with its assigned id.
func (c *Client) Create(ctx context.Context, properties map[string]string) (*Company, error) {
	var company Company
	if err := c.do(ctx, "create", http.MethodPost, companiesPath, writeRequest{Properties: properties}, &company); err != nil {
		return nil, err
	}
	return &company, nil
}

// Update patches the given properties on company id.
func (c *Client) Update(ctx context.Context, id string, properties map[string]string) (*Company, error) {
	if id == "" {
		return nil, fmt.Errorf("hubspot: update: empty company id")
	}
	path := companiesPath + "/" + url.PathEscape(id)

	var company Company
	if err := c.do(ctx, "update", http.MethodPatch, path, writeRequest{Properties: properties}, &company); err != nil {
		return nil, err
	}
	return &company, nil
}

// apiStatus is the envelope HubSpot uses for errors.
type apiStatus struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	Category      string `json:"category"`
	CorrelationID string `json:"correlationId"`
}

func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	if err := c.cfg.Validate(); err != nil {
		return err
	}

	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("hubspot: %s: encode body: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("hubspot: %s: build request: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("HubSpot request failed", zap.String("op", op), zap.Error(err))
		return &apierror.TransportError{Service: serviceName, Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return &apierror.TransportError{Service: serviceName, Op: op, Err: err}
	}

	c.logger.Debug("HubSpot response", zap.String("op", op), zap.Int("status", resp.StatusCode))

	var status apiStatus
	if err := json.Unmarshal(raw, &status); err != nil {
		c.logger.Error("HubSpot response is not JSON",
			zap.String("op", op),
			zap.Int("status", resp.StatusCode),
			zap.String("raw", apierror.Snippet(string(raw), 500)),
		)
		if resp.StatusCode >= 300 {
			return &apierror.RemoteAPIError{Service: serviceName, Op: op, StatusCode: resp.StatusCode, Body: string(raw)}
		}
		return &apierror.ParseError{Service: serviceName, Op: op, Raw: string(raw), Err: err}
	}

	if status.Status == "error" || resp.StatusCode >= 300 {
		msg := status.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		c.logger.Error("HubSpot API error",
			zap.String("op", op),
			zap.Int("status", resp.StatusCode),
			zap.String("message", msg),
			zap.String("category", status.Category),
			zap.String("correlation_id", status.CorrelationID),
		)
		return &apierror.RemoteAPIError{
			Service:    serviceName,
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    msg,
			Body:       string(raw),
		}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &apierror.ParseError{Service: serviceName, Op: op, Raw: string(raw), Err: err}
	}
	return nil
}

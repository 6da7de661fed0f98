package erp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"ar-sync/core/apierror"
	"ar-sync/core/oauth1"

	"go.uber.org/zap"
)

// maxResponseSize caps how much of a response body is read (10MB).
const maxResponseSize = 10 * 1024 * 1024

// Row is one loosely-typed SuiteQL result row.
type Row map[string]any

// Client issues signed SuiteQL queries.
type Client struct {
	cfg        Config
	signer     *oauth1.Signer
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient validates the credentials and builds a client.
// A missing credential is returned as *apierror.AuthConfigError.
func NewClient(cfg Config, logger *zap.Logger, opts ...oauth1.Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}

	return &Client{
		cfg:    cfg,
		signer: oauth1.NewSigner(cfg.Credentials(), opts...),
		httpClient: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
		logger: logger,
	}, nil
}

type queryRequest struct {
	Q string `json:"q"`
}

type queryResponse struct {
	Items   []Row `json:"items"`
	HasMore bool  `json:"hasMore"`
}

// Query runs one SuiteQL statement and returns the result rows.
func (c *Client) Query(ctx context.Context, q string) ([]Row, error) {
	payload, err := json.Marshal(queryRequest{Q: q})
	if err != nil {
		return nil, fmt.Errorf("netsuite: encode query: %w", err)
	}

	body, err := c.do(ctx, "query", http.MethodPost, c.cfg.APIBaseURL()+SuiteQLPath, payload)
	if err != nil {
		return nil, err
	}

	var parsed queryResponse
	if err := c.decode("query", body, &parsed); err != nil {
		return nil, err
	}

	if parsed.HasMore {
		c.logger.Warn("SuiteQL result truncated to first page", zap.Int("rows", len(parsed.Items)))
	}
	if parsed.Items == nil {
		return []Row{}, nil
	}
	return parsed.Items, nil
}

// Customer is one entry of the customer record list.
type Customer struct {
	ID          string `json:"id"`
	CompanyName string `json:"companyName"`
	EntityID    string `json:"entityId"`
}

// DisplayName is the company name, or the entity id when the name is empty.
func (c Customer) DisplayName() string {
	if c.CompanyName != "" {
		return c.CompanyName
	}
	return c.EntityID
}

type customerList struct {
	Items   []Customer `json:"items"`
	HasMore bool       `json:"hasMore"`
}

// Customers lists up to limit customers through the record REST API.
// A limit <= 0 uses DefaultCustomerLimit.
func (c *Client) Customers(ctx context.Context, limit int) ([]Customer, error) {
	if limit <= 0 {
		limit = DefaultCustomerLimit
	}
	target := c.cfg.APIBaseURL() + CustomerRecordPath + "?limit=" + strconv.Itoa(limit)

	body, err := c.do(ctx, "customers", http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	var parsed customerList
	if err := c.decode("customers", body, &parsed); err != nil {
		return nil, err
	}
	if parsed.HasMore {
		c.logger.Warn("Customer list truncated", zap.Int("limit", limit))
	}
	if parsed.Items == nil {
		return []Customer{}, nil
	}
	return parsed.Items, nil
}

// do sends one signed request and returns the body of a successful response.
// Any status >= 400 is a *apierror.RemoteAPIError, whatever the body looks like.
func (c *Client) do(ctx context.Context, op, method, target string, payload []byte) ([]byte, error) {
	auth, err := c.signer.AuthorizationHeader(method, target)
	if err != nil {
		return nil, err
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, &apierror.SignatureError{Reason: err.Error()}
	}
	req.Header.Set("Authorization", auth)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Prefer", "transient")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("NetSuite request failed", zap.String("op", op), zap.Error(err))
		return nil, &apierror.TransportError{Service: serviceName, Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &apierror.TransportError{Service: serviceName, Op: op, Err: err}
	}

	c.logger.Info("NetSuite response", zap.String("op", op), zap.Int("status", resp.StatusCode))

	if resp.StatusCode >= 400 {
		c.logger.Error("NetSuite API error",
			zap.String("op", op),
			zap.Int("status", resp.StatusCode),
			zap.String("body", apierror.Snippet(string(body), 500)),
		)
		return nil, &apierror.RemoteAPIError{
			Service:    serviceName,
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    errorDetail(body),
			Body:       string(body),
		}
	}
	return body, nil
}

func (c *Client) decode(op string, body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		c.logger.Error("NetSuite response is not JSON",
			zap.String("op", op),
			zap.String("raw", apierror.Snippet(string(body), 500)),
		)
		return &apierror.ParseError{Service: serviceName, Op: op, Raw: string(body), Err: err}
	}
	return nil
}

// errorDetail extracts the first o:errorDetails entry NetSuite returns on failures.
func errorDetail(body []byte) string {
	var payload struct {
		Title        string `json:"title"`
		ErrorDetails []struct {
			Detail string `json:"detail"`
		} `json:"o:errorDetails"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if len(payload.ErrorDetails) > 0 && payload.ErrorDetails[0].Detail != "" {
		return payload.ErrorDetails[0].Detail
	}
	return payload.Title
}

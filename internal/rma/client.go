package rma

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/oakline/backoffice-backend/pkg/config"
	pkgerrors "github.com/oakline/backoffice-backend/pkg/errors"
	"github.com/oakline/backoffice-backend/pkg/logger"
)

// SubmissionResult carries the identifiers the modification backend assigned.
type SubmissionResult struct {
	SwapID   *uuid.UUID `json:"swap_id,omitempty"`
	ReturnID *uuid.UUID `json:"return_id,omitempty"`
	ClaimID  *uuid.UUID `json:"claim_id,omitempty"`
}

// Transport submits built modification payloads to the order backend.
type Transport interface {
	CreateSwap(ctx context.Context, orderID uuid.UUID, req *SwapRequest) (*SubmissionResult, error)
	CreateReturn(ctx context.Context, orderID uuid.UUID, req *ReturnRequest) (*SubmissionResult, error)
	CreateClaim(ctx context.Context, orderID uuid.UUID, req *ClaimRequest) (*SubmissionResult, error)
}

var (
	errBaseURLRequired      = errors.New("modification base url is required")
	errClientLoggerRequired = errors.New("modification client logger is required")
)

// Client is the HTTP transport to the modification backend, with centralized
// logging and error mapping.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *logger.Logger
}

// NewClient initializes the transport and validates its configuration.
func NewClient(cfg config.ModificationConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errClientLoggerRequired
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errBaseURLRequired
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: cfg.RequestTimeout},
		logger:  logg,
	}, nil
}

func (c *Client) CreateSwap(ctx context.Context, orderID uuid.UUID, req *SwapRequest) (*SubmissionResult, error) {
	path := fmt.Sprintf("/orders/%s/swaps", orderID)
	var payload struct {
		Swap struct {
			ID uuid.UUID `json:"id"`
		} `json:"swap"`
	}
	if err := c.post(ctx, "create_swap", path, req, &payload); err != nil {
		return nil, err
	}
	id := payload.Swap.ID
	return &SubmissionResult{SwapID: &id}, nil
}

func (c *Client) CreateReturn(ctx context.Context, orderID uuid.UUID, req *ReturnRequest) (*SubmissionResult, error) {
	path := fmt.Sprintf("/orders/%s/returns", orderID)
	var payload struct {
		Return struct {
			ID uuid.UUID `json:"id"`
		} `json:"return"`
	}
	if err := c.post(ctx, "create_return", path, req, &payload); err != nil {
		return nil, err
	}
	id := payload.Return.ID
	return &SubmissionResult{ReturnID: &id}, nil
}

func (c *Client) CreateClaim(ctx context.Context, orderID uuid.UUID, req *ClaimRequest) (*SubmissionResult, error) {
	path := fmt.Sprintf("/orders/%s/claims", orderID)
	var payload struct {
		Claim struct {
			ID uuid.UUID `json:"id"`
		} `json:"claim"`
	}
	if err := c.post(ctx, "create_claim", path, req, &payload); err != nil {
		return nil, err
	}
	id := payload.Claim.ID
	return &SubmissionResult{ClaimID: &id}, nil
}

func (c *Client) post(ctx context.Context, op, path string, body, out any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, fmt.Sprintf("encode %s payload", op))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, fmt.Sprintf("build %s request", op))
	}
	req.Header.Set("Content-Type", "application/json")

	c.log(ctx, "request", op, map[string]any{"path": path})

	resp, err := c.http.Do(req)
	if err != nil {
		c.log(ctx, "error", op, map[string]any{"error": err.Error()})
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("submit %s", op))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("read %s response", op))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := extractBackendMessage(raw)
		c.log(ctx, "error", op, map[string]any{"status": resp.StatusCode, "message": message})
		return pkgerrors.New(pkgerrors.CodeSubmission, message).
			WithDetails(map[string]any{"status": resp.StatusCode, "operation": op})
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("decode %s response", op))
		}
	}

	c.log(ctx, "response", op, map[string]any{"status": resp.StatusCode})
	return nil
}

// extractBackendMessage pulls the backend's own error message out of the body
// so the operator sees it word for word. Falls back to a generic message when
// the body is empty or not the expected shape.
func extractBackendMessage(raw []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if msg := strings.TrimSpace(payload.Message); msg != "" {
			return msg
		}
		if msg := strings.TrimSpace(payload.Error); msg != "" {
			return msg
		}
	}
	return "modification submission rejected"
}

func (c *Client) log(ctx context.Context, phase, op string, fields map[string]any) {
	if c == nil || c.logger == nil {
		return
	}
	logFields := map[string]any{
		"operation": op,
		"phase":     phase,
	}
	for k, v := range fields {
		logFields[k] = v
	}
	ctx = c.logger.WithFields(ctx, logFields)
	switch phase {
	case "error":
		cause := fields["error"]
		if cause == nil {
			cause = fields["message"]
		}
		c.logger.Error(ctx, fmt.Sprintf("modification %s", op), errors.New(fmt.Sprint(cause)))
	default:
		c.logger.Info(ctx, fmt.Sprintf("modification %s", phase))
	}
}

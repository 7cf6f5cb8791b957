package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kirillkom/documinds/internal/core/domain"
)

const (
	requestIDHeader  = "X-Request-Id"
	maxResponseBytes = 4 << 20
)

func (c *Client) postJSON(ctx context.Context, operation, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", operation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return domain.WrapError(domain.ErrNetwork, operation, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(requestIDHeader, requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("classifier_request_failed",
			"operation", operation,
			"request_id", requestID,
			"error", err,
		)
		return domain.WrapError(domain.ErrNetwork, operation, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return domain.WrapError(domain.ErrNetwork, operation, fmt.Errorf("read response: %w", err))
	}
	c.logger.Debug("classifier_request",
		"operation", operation,
		"request_id", requestID,
		"status", resp.StatusCode,
		"duration_ms", float64(time.Since(start).Microseconds())/1000.0,
	)

	if out == nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			c.logger.Warn("classifier_response_status",
				"operation", operation,
				"request_id", requestID,
				"status", resp.StatusCode,
			)
		}
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.WrapError(domain.ErrProtocol, operation, &HTTPStatusError{
			Operation:  operation,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(raw),
		})
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return domain.WrapError(domain.ErrProtocol, operation, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

package upstream

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/net4grad/alumni-web/internal/observability/metrics"
	"github.com/net4grad/alumni-web/internal/ports"
)

// RegisterCollege forwards a college registration body and returns the
// upstream response whatever its status. An error means no response was received.
func (c *Client) RegisterCollege(ctx context.Context, body []byte) (ports.RelayResponse, error) {
	const operation = "register_college"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(c.paths.Colleges), bytes.NewReader(body))
	if err != nil {
		return ports.RelayResponse{}, fmt.Errorf("create %s request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.metrics.Upstream(metrics.UpstreamMetric{Operation: operation, Duration: time.Since(start)})
		return ports.RelayResponse{}, fmt.Errorf("upstream %s request failed: %w", operation, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.DebugContext(ctx, "closing upstream body failed", "operation", operation, "error", cerr)
		}
	}()

	out, err := readBounded(resp.Body)
	c.metrics.Upstream(metrics.UpstreamMetric{
		Operation:  operation,
		StatusCode: resp.StatusCode,
		Duration:   time.Since(start),
	})
	if err != nil {
		return ports.RelayResponse{}, fmt.Errorf("read upstream %s response: %w", operation, err)
	}

	return ports.RelayResponse{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        out,
	}, nil
}

package lodestone

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/html"
)

// getPage fetches and parses one Lodestone page, waiting on the rate limiter
// first.
func (c *Client) getPage(ctx context.Context, req request, path string, query url.Values) (doc *html.Node, err error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	ctx, span := c.tracer.Start(ctx, "lodestone."+req.endpoint, trace.WithAttributes(
		attribute.String("lodestone.endpoint", req.endpoint),
		attribute.String("http.url", target),
	))
	defer span.End()

	start := time.Now()
	defer func() {
		c.metrics.observeRequest(req.endpoint, err, time.Since(start))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for Lodestone rate limiter: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build Lodestone request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to reach the Lodestone: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if statusErr := statusError(resp.StatusCode, req); statusErr != nil {
		c.logger.WarnContext(ctx, "Lodestone request failed",
			slog.String("endpoint", req.endpoint),
			slog.String("url", target),
			slog.Int("status", resp.StatusCode),
		)
		return nil, statusErr
	}

	return parseDocument(resp.Body)
}

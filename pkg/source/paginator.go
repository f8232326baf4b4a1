package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/firmdash/firmdash-sync/pkg/apperrors"
	"github.com/firmdash/firmdash-sync/pkg/mapping"
)

// PageOutcome distinguishes how a fetch ended.
type PageOutcome string

const (
	// OutcomeComplete means the source signalled end-of-data.
	OutcomeComplete PageOutcome = "complete"
	// OutcomeTruncated means the safety page bound was hit first. Records
	// fetched so far are valid but not the whole dataset.
	OutcomeTruncated PageOutcome = "truncated"
	// OutcomeFailed means a page request failed mid-fetch. Records from
	// earlier pages are retained.
	OutcomeFailed PageOutcome = "failed"
)

// envelope is the wrapped list response shape.
type envelope struct {
	Value    []mapping.Raw `json:"value"`
	NextLink string        `json:"@odata.nextLink"`
}

// FetchAll follows next-links from the given endpoint until the source is
// exhausted, the safety page bound is hit, or a page fails. Records
// accumulated before a failure or truncation are always returned. The error
// is non-nil only for the failed outcome; truncation is not an error, just a
// distinct outcome.
func (c *Client) FetchAll(ctx context.Context, endpoint string, params url.Values) ([]mapping.Raw, PageOutcome, error) {
	var records []mapping.Raw

	next := c.endpointURL(endpoint, params)
	for page := 0; next != ""; page++ {
		if err := ctx.Err(); err != nil {
			return records, OutcomeFailed, fmt.Errorf("%w: %s: %v", apperrors.ErrFetchFailed, endpoint, err)
		}
		if page >= c.maxPages {
			c.logger.Warn("Pagination hit safety bound",
				zap.String("endpoint", endpoint),
				zap.Int("max_pages", c.maxPages),
				zap.Int("records", len(records)))
			return records, OutcomeTruncated, nil
		}

		items, nextLink, err := c.fetchPage(ctx, next)
		if err != nil {
			c.logger.Error("Page fetch failed",
				zap.String("endpoint", endpoint),
				zap.Int("page", page),
				zap.Int("records_so_far", len(records)),
				zap.Error(err))
			return records, OutcomeFailed, fmt.Errorf("%w: %s page %d: %v", apperrors.ErrFetchFailed, endpoint, page, err)
		}

		records = append(records, items...)
		if nextLink == "" {
			break
		}
		next = c.resolveNextLink(nextLink)
	}

	c.logger.Debug("Fetch complete",
		zap.String("endpoint", endpoint),
		zap.Int("records", len(records)))
	return records, OutcomeComplete, nil
}

// fetchPage requests one page and extracts its items and next-link. List
// endpoints return either a {value: [...], @odata.nextLink?} envelope or a
// bare array; both shapes are supported.
func (c *Client) fetchPage(ctx context.Context, pageURL string) ([]mapping.Raw, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Value != nil {
		return env.Value, env.NextLink, nil
	}

	var bare []mapping.Raw
	if err := json.Unmarshal(body, &bare); err == nil {
		return bare, "", nil
	}

	return nil, "", fmt.Errorf("unrecognized response shape")
}

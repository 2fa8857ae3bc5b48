package remote

import (
	"context"
	"fmt"
	"net/http"
)

// LinkedETagHeader carries the entity tag of the canonical artifact, as
// opposed to the CDN object a HEAD request would otherwise be redirected to.
const LinkedETagHeader = "X-Linked-Etag"

// ProbeETag issues a HEAD request without following redirects and returns
// the linked entity tag, or "" when the registry does not send one.
func (c *Client) ProbeETag(ctx context.Context, url string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodHead, url)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDownload, err)
	}

	resp, err := c.probe.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: HEAD %s: %w", ErrDownload, url, err)
	}
	resp.Body.Close()

	etag := resp.Header.Get(LinkedETagHeader)
	c.logger.Debug("probed entity tag", "url", url, "status", resp.StatusCode, "etag", etag)
	return etag, nil
}

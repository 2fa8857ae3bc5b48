package remote

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/google/go-containerregistry/pkg/authn"
	"github.com/klauspost/compress/gzhttp"

	"github.com/paca-cli/paca/internal/ref"
)

// DefaultUserAgent is sent on every registry request.
const DefaultUserAgent = "llama-cpp"

// Config configures a Client.
type Config struct {
	// Endpoint is the registry base URL, see ResolveEndpoint.
	Endpoint string

	// UserAgent overrides DefaultUserAgent.
	UserAgent string

	// Auth supplies the bearer credential. Nil means anonymous.
	Auth authn.Authenticator

	// HTTPClient is the base client. Nil uses http.DefaultClient settings.
	HTTPClient *http.Client

	Logger Logger
}

// Client talks to a single registry endpoint.
//
// It holds three views of the same base client: api for JSON metadata
// (compressed responses negotiated by gzhttp), content for artifact bytes
// (identity encoding so byte ranges line up with the file), and probe,
// which never follows redirects and is only used for HEAD requests.
type Client struct {
	endpoint      string
	userAgent     string
	authorization string
	logger        Logger

	api     *http.Client
	content *http.Client
	probe   *http.Client
}

// New builds a Client from cfg.
func New(cfg Config) (*Client, error) {
	authz, err := authorizationHeader(cfg.Auth)
	if err != nil {
		return nil, err
	}

	base := cfg.HTTPClient
	if base == nil {
		base = http.DefaultClient
	}
	transport := base.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	content := *base
	api := *base
	api.Transport = gzhttp.Transport(transport)
	probe := *base
	probe.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	ua := cfg.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	logger := cfg.Logger
	if logger == nil {
		logger = Discard
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	return &Client{
		endpoint:      endpoint,
		userAgent:     ua,
		authorization: authz,
		logger:        logger,
		api:           &api,
		content:       &content,
		probe:         &probe,
	}, nil
}

func (c *Client) Endpoint() string { return c.endpoint }

// ManifestURL returns {endpoint}/v2/{owner}/{model}/manifests/{tag}.
func (c *Client) ManifestURL(r ref.ModelRef) string {
	return fmt.Sprintf("%s/v2/%s/manifests/%s", c.endpoint, r.Repo(), r.Tag)
}

// TreeURL returns {endpoint}/api/models/{owner}/{model}/tree/main/{subdir}.
func (c *Client) TreeURL(r ref.ModelRef, subdir string) string {
	return fmt.Sprintf("%s/api/models/%s/tree/main/%s", c.endpoint, r.Repo(), subdir)
}

// ResolveURL returns {endpoint}/{owner}/{model}/resolve/main/{filename}.
func (c *Client) ResolveURL(r ref.ModelRef, filename string) string {
	return fmt.Sprintf("%s/%s/resolve/main/%s", c.endpoint, r.Repo(), filename)
}

func (c *Client) newRequest(ctx context.Context, method, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	if c.authorization != "" {
		req.Header.Set("Authorization", c.authorization)
	}
	return req, nil
}

// getJSON issues a metadata GET and returns the full body of a 2xx response.
func (c *Client) getJSON(ctx context.Context, url string) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, url)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.api.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	return body, nil
}

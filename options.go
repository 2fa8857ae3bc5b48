package paca

import (
	"net/http"
	"os"

	"github.com/paca-cli/paca/internal/remote"
)

// DefaultConcurrency transfers files one at a time.
const DefaultConcurrency = 1

// Options configures Download.
type Options struct {
	CacheDir    string
	Getenv      func(string) string
	HTTPClient  *http.Client
	Concurrency int
	Progress    func(Progress)
	Logger      Logger
	Verify      VerifyMode
	UserAgent   string
}

// Option is a functional option for configuring Download.
type Option func(*Options)

func defaultOptions() *Options {
	return &Options{
		Getenv:      os.Getenv,
		Concurrency: DefaultConcurrency,
		Verify:      VerifyNone,
		UserAgent:   remote.DefaultUserAgent,
	}
}

// WithCacheDir overrides the cache directory.
func WithCacheDir(dir string) Option {
	return func(o *Options) { o.CacheDir = dir }
}

// WithEnv replaces os.Getenv for endpoint and token lookup.
func WithEnv(getenv func(string) string) Option {
	return func(o *Options) {
		if getenv != nil {
			o.Getenv = getenv
		}
	}
}

// WithHTTPClient sets the base HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *Options) { o.HTTPClient = c }
}

// WithConcurrency sets how many files are probed and transferred at once.
func WithConcurrency(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.Concurrency = n
		}
	}
}

// WithProgress registers a transfer progress callback. With concurrency
// above one it is called from several goroutines.
func WithProgress(fn func(Progress)) Option {
	return func(o *Options) { o.Progress = fn }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithVerify enables an integrity check after each transfer.
func WithVerify(mode VerifyMode) Option {
	return func(o *Options) { o.Verify = mode }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(o *Options) {
		if ua != "" {
			o.UserAgent = ua
		}
	}
}

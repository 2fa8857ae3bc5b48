// Package remote implements the registry side of model downloads.
//
// Based on the Hugging Face hub wire contract:
// - Tag manifests under /v2/{owner}/{model}/manifests/{tag}
// - Shard discovery through the /api/models/.../tree listing
// - Content under /{owner}/{model}/resolve/main/{file}, versioned by X-Linked-Etag
package remote

import (
	"context"

	"github.com/paca-cli/paca/internal/ref"
)

// Registry is the subset of Client used by the download orchestrator.
type Registry interface {
	// FetchManifest resolves a tag to its artifact files.
	FetchManifest(ctx context.Context, r ref.ModelRef) (Manifest, error)

	// ProbeETag returns the linked entity tag for a content URL without following redirects.
	ProbeETag(ctx context.Context, url string) (string, error)

	// DownloadFile streams url into dest, resuming at offset when the registry allows it.
	DownloadFile(ctx context.Context, url, dest string, offset int64, progress func(Progress)) error

	// ResolveURL returns the content URL for an artifact file.
	ResolveURL(r ref.ModelRef, filename string) string
}

var _ Registry = (*Client)(nil)

// Logger receives diagnostic messages as key/value pairs.
// Compatible with slog, zap, logrus adapters and similar loggers.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Discard drops every message.
var Discard Logger = nopLogger{}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

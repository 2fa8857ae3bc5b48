// Package store implements the local model cache.
//
// The cache is a single flat directory holding, per artifact file:
// - the content file, named from owner, model and the flattened artifact path
// - a validator sidecar ({content}.etag) with the entity tag of the last write
// - one manifest sidecar per model reference, written after every file is present
//
// Nothing in this package talks to the network and nothing here ever deletes
// a file.
package store

import (
	"fmt"
	"strings"

	"github.com/paca-cli/paca/internal/ref"
)

const (
	validatorSuffix = ".etag"
	manifestPrefix  = "manifest="
	manifestSuffix  = ".json"
)

// Store is the cache surface used by the download orchestrator.
type Store interface {
	// ContentPath returns the absolute path of a content file.
	ContentPath(filename string) string

	// Size reports the size of a content file and whether it exists.
	Size(filename string) (int64, bool)

	// ValidatorCurrent reports whether the stored validator equals remote exactly.
	ValidatorCurrent(filename, remote string) bool

	// SaveValidator overwrites the validator sidecar of a content file.
	SaveValidator(filename, etag string) error

	// SaveManifest overwrites the manifest sidecar of a model reference.
	SaveManifest(r ref.ModelRef, raw []byte) error
}

var _ Store = (*Local)(nil)

// CacheFilename names the content file of artifact within r.
// Subdirectory separators are flattened so the cache stays one level deep.
func CacheFilename(r ref.ModelRef, artifact string) string {
	return fmt.Sprintf("%s_%s_%s", r.Owner, r.Model, strings.ReplaceAll(artifact, "/", "_"))
}

// ManifestFilename names the manifest sidecar of r.
func ManifestFilename(r ref.ModelRef) string {
	return fmt.Sprintf("%s%s=%s=%s%s", manifestPrefix, r.Owner, r.Model, r.Tag, manifestSuffix)
}

// parseManifestFilename is the inverse of ManifestFilename.
func parseManifestFilename(name string) (ref.ModelRef, bool) {
	body, ok := strings.CutPrefix(name, manifestPrefix)
	if !ok {
		return ref.ModelRef{}, false
	}
	body, ok = strings.CutSuffix(body, manifestSuffix)
	if !ok {
		return ref.ModelRef{}, false
	}
	parts := strings.SplitN(body, "=", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return ref.ModelRef{}, false
	}
	return ref.ModelRef{Owner: parts[0], Model: parts[1], Tag: parts[2]}, true
}

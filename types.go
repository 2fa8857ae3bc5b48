package paca

import (
	"github.com/paca-cli/paca/internal/ref"
	"github.com/paca-cli/paca/internal/remote"
	"github.com/paca-cli/paca/internal/store"
)

// ModelRef identifies a model tag as owner/model:tag.
// Re-exported from internal/ref for convenience.
type ModelRef = ref.ModelRef

// ArtifactFile is one registry file of a model with its declared size.
type ArtifactFile = remote.ArtifactFile

// Manifest is the resolved file list of a model tag.
type Manifest = remote.Manifest

// Progress reports the state of a single file transfer.
type Progress = remote.Progress

// Logger receives diagnostic messages as key/value pairs.
type Logger = remote.Logger

// VerifyMode selects the integrity check run after each transfer.
type VerifyMode = store.VerifyMode

const (
	VerifyNone   = store.VerifyNone
	VerifySize   = store.VerifySize
	VerifySHA256 = store.VerifySHA256
)

// ParseModelRef parses "owner/model:tag".
func ParseModelRef(s string) (ModelRef, error) {
	return ref.Parse(s)
}

// ParseVerifyMode accepts "", "none", "size" and "sha256".
func ParseVerifyMode(s string) (VerifyMode, error) {
	return store.ParseVerifyMode(s)
}

// ResolveEndpoint returns the registry base URL from MODEL_ENDPOINT,
// HF_ENDPOINT or the public hub, looked up through getenv.
func ResolveEndpoint(getenv func(string) string) string {
	return remote.ResolveEndpoint(getenv)
}

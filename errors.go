package paca

import (
	"github.com/paca-cli/paca/internal/ref"
	"github.com/paca-cli/paca/internal/remote"
	"github.com/paca-cli/paca/internal/store"
)

// Errors returned by Download and ListCached. Match them with errors.Is.
var (
	ErrInvalidReference = ref.ErrInvalidReference
	ErrMissingTag       = ref.ErrMissingTag
	ErrMissingOwner     = ref.ErrMissingOwner

	ErrManifestFetch = remote.ErrManifestFetch
	ErrManifestParse = remote.ErrManifestParse
	ErrNoArtifact    = remote.ErrNoArtifact
	ErrShardListing  = remote.ErrShardListing
	ErrDownload      = remote.ErrDownload
	ErrFileWrite     = remote.ErrFileWrite

	ErrCacheDir  = store.ErrCacheDir
	ErrIntegrity = store.ErrIntegrity
)

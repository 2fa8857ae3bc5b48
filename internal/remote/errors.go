package remote

import "errors"

var (
	ErrManifestFetch = errors.New("paca: failed to fetch manifest")
	ErrManifestParse = errors.New("paca: failed to parse manifest")
	ErrNoArtifact    = errors.New("paca: no GGUF file found in manifest")
	ErrShardListing  = errors.New("paca: failed to list shard files")
	ErrDownload      = errors.New("paca: download request failed")
	ErrFileWrite     = errors.New("paca: failed to write file")
)

package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"path"

	"github.com/paca-cli/paca/internal/ref"
)

// ArtifactFile is one registry file making up a model tag.
type ArtifactFile struct {
	// Filename is relative to the repository root and may include a subdirectory.
	Filename string

	// Size is the expected size in bytes.
	Size uint64
}

// Manifest is the resolved file list for a tag.
type Manifest struct {
	// Files is a single file, or every shard sorted by filename.
	Files []ArtifactFile

	// RawBody is the manifest response exactly as received.
	RawBody []byte
}

type manifestResponse struct {
	GGUFFile *ggufFileInfo `json:"ggufFile"`
}

type ggufFileInfo struct {
	RFilename string `json:"rfilename"`
	Size      uint64 `json:"size"`
}

// FetchManifest fetches the tag manifest and, for sharded artifacts, the
// complete shard list from the tree listing.
func (c *Client) FetchManifest(ctx context.Context, r ref.ModelRef) (Manifest, error) {
	url := c.ManifestURL(r)
	raw, err := c.getJSON(ctx, url)
	if err != nil {
		return Manifest{}, fmt.Errorf("%w: %w", ErrManifestFetch, err)
	}

	var resp manifestResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return Manifest{}, fmt.Errorf("%w: %s: %w", ErrManifestParse, url, err)
	}
	if resp.GGUFFile == nil || resp.GGUFFile.RFilename == "" {
		return Manifest{}, fmt.Errorf("%w: %s", ErrNoArtifact, r)
	}

	declared := resp.GGUFFile
	count, sharded := ShardCount(declared.RFilename)
	if !sharded {
		c.logger.Debug("resolved single file", "model", r.String(), "file", declared.RFilename, "size", declared.Size)
		return Manifest{
			Files:   []ArtifactFile{{Filename: declared.RFilename, Size: declared.Size}},
			RawBody: raw,
		}, nil
	}

	files, err := c.listShards(ctx, r, declared.RFilename)
	if err != nil {
		return Manifest{}, err
	}
	if len(files) != count {
		c.logger.Warn("shard listing does not match declared count",
			"model", r.String(), "declared", count, "listed", len(files))
	}
	c.logger.Debug("resolved shards", "model", r.String(), "count", len(files))

	return Manifest{Files: files, RawBody: raw}, nil
}

func (c *Client) listShards(ctx context.Context, r ref.ModelRef, first string) ([]ArtifactFile, error) {
	url := c.TreeURL(r, shardDir(first))
	body, err := c.getJSON(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShardListing, err)
	}

	var entries []treeEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrShardListing, url, err)
	}

	ext := path.Ext(first)
	files := selectShards(entries, ext)
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s: no %s files listed", ErrShardListing, url, ext)
	}
	return files, nil
}

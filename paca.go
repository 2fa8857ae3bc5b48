package paca

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"

	"github.com/paca-cli/paca/internal/ref"
	"github.com/paca-cli/paca/internal/remote"
	"github.com/paca-cli/paca/internal/store"
)

// Download resolves model and brings every artifact file into the cache,
// returning the local paths in manifest order.
//
// Files completed before a failure stay in the cache as valid entries; a
// later call skips them and resumes the file that failed. The manifest
// sidecar is written only when all files succeed.
func Download(ctx context.Context, model string, opts ...Option) ([]string, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	r, err := ref.Parse(model)
	if err != nil {
		return nil, err
	}

	dir, err := store.ResolveDir(options.CacheDir)
	if err != nil {
		return nil, err
	}

	logger := options.Logger
	if logger == nil {
		logger = remote.Discard
	}

	client, err := remote.New(remote.Config{
		Endpoint:   remote.ResolveEndpoint(options.Getenv),
		UserAgent:  options.UserAgent,
		Auth:       remote.CredentialFromEnv(options.Getenv),
		HTTPClient: options.HTTPClient,
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create registry client: %w", err)
	}

	d := &downloader{
		ref:         r,
		registry:    client,
		cache:       store.NewLocal(dir),
		logger:      logger,
		progress:    options.Progress,
		verify:      options.Verify,
		concurrency: options.Concurrency,
	}
	return d.run(ctx)
}

// ListCached returns the model references with a complete download in
// cacheDir, or in the default cache directory when cacheDir is empty.
func ListCached(cacheDir string) ([]ModelRef, error) {
	dir, err := store.ResolveDir(cacheDir)
	if err != nil {
		return nil, err
	}
	return store.NewLocal(dir).ListManifests()
}

type downloader struct {
	ref         ref.ModelRef
	registry    remote.Registry
	cache       store.Store
	logger      Logger
	progress    func(Progress)
	verify      VerifyMode
	concurrency int
}

func (d *downloader) run(ctx context.Context) ([]string, error) {
	mf, err := d.registry.FetchManifest(ctx, d.ref)
	if err != nil {
		return nil, err
	}
	d.logger.Info("resolved manifest", "model", d.ref.String(), "files", len(mf.Files))

	paths := make([]string, len(mf.Files))
	if d.concurrency <= 1 || len(mf.Files) == 1 {
		for i, f := range mf.Files {
			i, f := i, f
			path, err := d.syncFile(ctx, f)
			if err != nil {
				return nil, err
			}
			paths[i] = path
		}
	} else {
		p := pool.New().
			WithMaxGoroutines(d.concurrency).
			WithContext(ctx).
			WithCancelOnError().
			WithFirstError()
		for i, f := range mf.Files {
			i, f := i, f
			p.Go(func(ctx context.Context) error {
				path, err := d.syncFile(ctx, f)
				if err != nil {
					return err
				}
				paths[i] = path
				return nil
			})
		}
		if err := p.Wait(); err != nil {
			return nil, err
		}
	}

	if err := d.cache.SaveManifest(d.ref, mf.RawBody); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileWrite, err)
	}
	return paths, nil
}

// syncFile makes one artifact file current and returns its local path.
func (d *downloader) syncFile(ctx context.Context, f ArtifactFile) (string, error) {
	name := store.CacheFilename(d.ref, f.Filename)
	dest := d.cache.ContentPath(name)
	url := d.registry.ResolveURL(d.ref, f.Filename)

	etag, err := d.registry.ProbeETag(ctx, url)
	if err != nil {
		return "", err
	}
	if etag == "" {
		d.logger.Warn("registry sent no entity tag, cached copy cannot be validated", "file", f.Filename)
	}

	var offset int64
	size, exists := d.cache.Size(name)
	if exists && d.cache.ValidatorCurrent(name, etag) {
		if uint64(size) >= f.Size {
			d.logger.Info("cached file is current", "file", f.Filename, "path", dest)
			return dest, nil
		}
		offset = size
		d.logger.Info("resuming transfer", "file", f.Filename, "offset", offset, "size", f.Size)
	} else {
		// Recorded before the transfer so an interrupted run is seen as
		// stale-but-present rather than complete.
		if err := d.cache.SaveValidator(name, etag); err != nil {
			return "", fmt.Errorf("%w: %w", ErrFileWrite, err)
		}
		d.logger.Info("downloading", "file", f.Filename, "size", f.Size)
	}

	if err := d.registry.DownloadFile(ctx, url, dest, offset, d.progress); err != nil {
		return "", err
	}

	if err := store.Verify(dest, f.Size, etag, d.verify); err != nil {
		if serr := d.cache.SaveValidator(name, ""); serr != nil {
			d.logger.Error("failed to reset validator", "file", f.Filename, "error", serr)
		}
		return "", err
	}
	if d.verify == VerifySHA256 {
		if _, ok := store.DigestFromETag(etag); !ok {
			d.logger.Debug("entity tag carries no digest, checked size only", "file", f.Filename)
		}
	}
	return dest, nil
}
